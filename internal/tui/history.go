package tui

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/tatianab/spirit-tracker/internal/engine"
	"github.com/tatianab/spirit-tracker/internal/history"
	"github.com/tatianab/spirit-tracker/internal/models"
)

const recapTimeout = 30 * time.Second

func (m model) openHistory(back screen) model {
	m.back = back
	m.screen = screenHistory
	m.historyCursor = min(m.historyCursor, max(m.history.Len()-1, 0))
	m.confirmDelete = false
	m.clearStatus()
	return m
}

func (m model) selectedGame() (models.GameResult, bool) {
	games := m.history.List()
	if m.historyCursor < 0 || m.historyCursor >= len(games) {
		return models.GameResult{}, false
	}
	return games[m.historyCursor], true
}

func (m model) updateHistory(msg tea.KeyMsg) (model, tea.Cmd) {
	deleteArmed := false
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, m.quit()
	case key.Matches(msg, m.keys.Back):
		m.screen = m.back
		m.clearStatus()
	case key.Matches(msg, m.keys.Up):
		m.historyCursor = max(m.historyCursor-1, 0)
	case key.Matches(msg, m.keys.Down):
		m.historyCursor = min(m.historyCursor+1, max(m.history.Len()-1, 0))
	case key.Matches(msg, m.keys.Confirm):
		if _, ok := m.selectedGame(); ok {
			m.screen = screenDetail
			m.viewport.GotoTop()
			m.refreshViewport()
		}
	case key.Matches(msg, m.keys.Delete):
		game, ok := m.selectedGame()
		if !ok {
			break
		}
		if !m.confirmDelete {
			deleteArmed = true
			m.setStatus(m.t("history.confirm_delete"))
			break
		}
		if err := m.history.Delete(context.Background(), game.ID); err != nil {
			m.setError(err.Error())
			break
		}
		m.clearStatus()
		m.historyCursor = min(m.historyCursor, max(m.history.Len()-1, 0))
	case key.Matches(msg, m.keys.Export):
		path, err := m.history.ExportFile(m.exportDir, m.now())
		if err != nil {
			m.logger.Error("export failed", "dir", m.exportDir, "error", err)
			m.setError(err.Error())
			break
		}
		m.logger.Info("history exported", "path", path, "games", m.history.Len())
		m.setStatus(m.tf("history.export_success", map[string]any{"path": path}))
	case key.Matches(msg, m.keys.Copy):
		var buf bytes.Buffer
		if err := m.history.Export(&buf); err != nil {
			m.setError(err.Error())
			break
		}
		if err := clipboard.WriteAll(buf.String()); err != nil {
			m.setError(m.tf("history.copy_failed", map[string]any{"error": err}))
			break
		}
		m.setStatus(m.t("history.copied"))
	case key.Matches(msg, m.keys.Import):
		m.screen = screenImport
		m.pending = nil
		m.importInput.Reset()
		m.clearStatus()
		return m, m.importInput.Focus()
	case key.Matches(msg, m.keys.Recap):
		if game, ok := m.selectedGame(); ok {
			return m.requestRecap(game)
		}
	}
	m.confirmDelete = deleteArmed
	return m, nil
}

func (m model) viewHistory() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(m.t("history.title")) + "\n\n")

	games := m.history.List()
	if len(games) == 0 {
		b.WriteString(subtleStyle.Render(m.t("history.empty")) + "\n")
		return b.String()
	}

	visible := len(games)
	if m.height > 0 {
		visible = max(m.height-10, 3)
	}
	start := 0
	if m.historyCursor >= visible {
		start = m.historyCursor - visible + 1
	}
	for i := start; i < min(start+visible, len(games)); i++ {
		line := m.historyLine(games[i])
		if i == m.historyCursor {
			line = selectedStyle.Render("> " + line)
		} else {
			line = "  " + line
		}
		b.WriteString(line + "\n")
	}
	return b.String()
}

func (m model) historyLine(g models.GameResult) string {
	date := g.Date
	if t, err := time.Parse(time.RFC3339, g.Date); err == nil {
		date = t.Local().Format(time.DateOnly)
	}
	parts := []string{
		date,
		outcomeStyle(g.Outcome).Render(fmt.Sprintf("%-10s", m.t("common."+string(g.Outcome)))),
		fmt.Sprintf("%4d %s", g.Score, m.t("common.points")),
		m.tf("common.players", map[string]any{"count": g.PlayerCount}),
		g.Duration,
	}
	if g.Adversary != nil {
		parts = append(parts, fmt.Sprintf("%s %d", adversaryLabel(g.Adversary), g.Adversary.Level))
	}
	if g.Outcome == models.Victory && g.TerrorLevel != nil {
		parts = append(parts, fmt.Sprintf("TL %d", *g.TerrorLevel))
	}
	return strings.Join(parts, "  ")
}

func adversaryLabel(a *models.ResultAdversary) string {
	if a.Name != "" {
		return a.Name
	}
	return a.ID
}

func (m model) updateDetail(msg tea.KeyMsg) (model, tea.Cmd) {
	var cmd tea.Cmd
	switch {
	case key.Matches(msg, m.keys.Back):
		m.screen = screenHistory
	case key.Matches(msg, m.keys.Recap):
		if game, ok := m.selectedGame(); ok {
			return m.requestRecap(game)
		}
	default:
		m.viewport, cmd = m.viewport.Update(msg)
	}
	return m, cmd
}

func (m model) renderDetail() string {
	g, ok := m.selectedGame()
	if !ok {
		return ""
	}
	var b strings.Builder
	title := m.t("details.victory_title")
	if g.Outcome == models.Defeat {
		title = m.t("details.defeat_title")
	}
	b.WriteString(outcomeStyle(g.Outcome).Render(fmt.Sprintf("%s · %d %s", title, g.Score, m.t("common.points"))) + "\n\n")
	b.WriteString(fmt.Sprintf("%s\n%s: %s\n", g.Date, m.t("common.duration"), g.Duration))
	b.WriteString(m.tf("common.difficulty", map[string]any{"value": g.Difficulty}) + "\n")
	if g.Rounds != nil {
		b.WriteString(fmt.Sprintf("%s: %d\n", m.t("details.rounds"), *g.Rounds))
	}
	if g.TerrorLevel != nil {
		b.WriteString(fmt.Sprintf("%s: %d\n", m.t("details.terror_level"), *g.TerrorLevel))
	}

	if g.Adversary != nil {
		b.WriteString("\n" + titleStyle.Render(m.t("details.adversary_title")) + "\n")
		b.WriteString(fmt.Sprintf("%s · %s\n", adversaryLabel(g.Adversary), m.tf("common.level", map[string]any{"level": g.Adversary.Level})))
	}
	if g.Scenario != "" {
		b.WriteString("\n" + titleStyle.Render(m.t("details.scenario_title")) + "\n" + g.Scenario + "\n")
	}

	b.WriteString("\n" + titleStyle.Render(m.t("details.spirits_title")) + "\n")
	for _, sp := range g.Spirits {
		b.WriteString("  • " + engine.SpiritName(sp.ID, m.tr) + "\n")
	}
	b.WriteString("\n" + titleStyle.Render(m.t("details.expansions_title")) + "\n")
	for _, exp := range g.Expansions {
		b.WriteString("  • " + m.t("expansions."+string(exp)) + "\n")
	}
	b.WriteString(m.renderRecap(g.ID))
	return b.String()
}

func (m model) requestRecap(g models.GameResult) (model, tea.Cmd) {
	if m.recap == nil {
		m.setStatus(m.t("details.recap_unavailable"))
		return m, nil
	}
	if m.recapLoading != "" || m.recaps[g.ID] != "" {
		return m, nil
	}
	m.recapLoading = g.ID
	m.refreshViewport()
	rc := m.recap
	return m, func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), recapTimeout)
		defer cancel()
		text, err := rc.Recap(ctx, g)
		return recapMsg{id: g.ID, text: text, err: err}
	}
}

func (m model) updateImport(msg tea.KeyMsg) (model, tea.Cmd) {
	var cmd tea.Cmd
	switch {
	case key.Matches(msg, m.keys.Back):
		m.pending = nil
		m.importInput.Blur()
		m.screen = screenHistory
		m.clearStatus()
		return m, nil
	case key.Matches(msg, m.keys.Confirm):
		if m.pending == nil {
			return m.readImport(), nil
		}
		added, err := m.history.MergeImport(context.Background(), m.pending)
		if err != nil {
			m.setError(m.tf("history.import_error", map[string]any{"error": err}))
			return m, nil
		}
		m.logger.Info("history imported", "candidates", len(m.pending), "added", added)
		m.pending = nil
		m.importInput.Blur()
		m.screen = screenHistory
		m.setStatus(m.tf("history.import_success", map[string]any{"count": added}))
		return m, nil
	}
	m.pending = nil
	m.importInput, cmd = m.importInput.Update(msg)
	return m, cmd
}

func (m model) readImport() model {
	path := strings.TrimSpace(m.importInput.Value())
	if path == "" {
		return m
	}
	games, err := history.ReadImportFile(path)
	switch {
	case errors.Is(err, history.ErrImportFormat):
		m.setError(m.t("history.import_error_format"))
	case err != nil:
		m.setError(m.tf("history.import_error", map[string]any{"error": err}))
	default:
		m.pending = games
		m.setStatus(m.tf("history.import_found", map[string]any{"count": len(games)}))
	}
	return m
}

func (m model) viewImport() string {
	return titleStyle.Render(m.t("history.import_prompt")) + "\n\n" + m.importInput.View() + "\n"
}

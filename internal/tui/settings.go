package tui

import (
	"fmt"
	"slices"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/tatianab/spirit-tracker/internal/engine"
	"github.com/tatianab/spirit-tracker/internal/models"
	"github.com/tatianab/spirit-tracker/internal/session"
)

type rowKind int

const (
	rowPlayers rowKind = iota
	rowExpansion
	rowAdversary
	rowLevel
	rowScenario
	rowSpirit
)

type settingsRow struct {
	kind      rowKind
	expansion models.ExpansionID
	spirit    models.Spirit
}

func (m model) settingsRows() []settingsRow {
	cat := m.engine.Catalog()
	rows := []settingsRow{{kind: rowPlayers}}
	for _, exp := range cat.Expansions {
		rows = append(rows, settingsRow{kind: rowExpansion, expansion: exp.ID})
	}
	rows = append(rows, settingsRow{kind: rowAdversary})
	if m.draft.HasAdversary() {
		rows = append(rows, settingsRow{kind: rowLevel})
	}
	rows = append(rows, settingsRow{kind: rowScenario})
	for _, sp := range cat.AvailableSpirits(m.draft.Expansions) {
		rows = append(rows, settingsRow{kind: rowSpirit, spirit: sp})
	}
	return rows
}

func (m model) openSettings(back screen) model {
	m.draft = m.session.Settings()
	m.cursor = 0
	m.settingsErr = ""
	m.back = back
	m.screen = screenSettings
	return m
}

func (m model) updateSettings(msg tea.KeyMsg) (model, tea.Cmd) {
	rows := m.settingsRows()

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, m.quit()
	case key.Matches(msg, m.keys.Up):
		m.cursor = max(m.cursor-1, 0)
	case key.Matches(msg, m.keys.Down):
		m.cursor = min(m.cursor+1, len(rows)-1)
	case key.Matches(msg, m.keys.Left):
		m.adjust(rows[m.cursor], -1)
	case key.Matches(msg, m.keys.Right), key.Matches(msg, m.keys.Toggle):
		m.adjust(rows[m.cursor], 1)
	case key.Matches(msg, m.keys.History):
		return m.openHistory(screenSettings), nil
	case key.Matches(msg, m.keys.Back):
		if m.session.Started() {
			m.screen = screenPlaying
		}
	case key.Matches(msg, m.keys.Confirm):
		return m.applySettings()
	}

	m.cursor = min(m.cursor, len(m.settingsRows())-1)
	return m, nil
}

func (m *model) adjust(row settingsRow, delta int) {
	cat := m.engine.Catalog()
	m.settingsErr = ""

	switch row.kind {
	case rowPlayers:
		m.draft.SetPlayerCount(m.draft.PlayerCount + delta)
	case rowExpansion:
		if row.expansion == models.ExpansionBase {
			return
		}
		m.draft.ToggleExpansion(row.expansion)
		m.pruneDraft()
	case rowAdversary:
		ids := []string{""}
		for _, a := range cat.AvailableAdversaries(m.draft.Expansions) {
			ids = append(ids, a.ID)
		}
		current := ""
		level := 0
		if m.draft.Adversary != nil {
			current, level = m.draft.Adversary.ID, m.draft.Adversary.Level
		}
		next := cycle(ids, current, delta)
		if next == "" {
			m.draft.Adversary = nil
		} else {
			m.draft.Adversary = &models.AdversaryRef{ID: next, Level: level}
		}
	case rowLevel:
		if m.draft.Adversary != nil {
			m.draft.Adversary.Level = min(max(m.draft.Adversary.Level+delta, 0), models.MaxLevel)
		}
	case rowScenario:
		ids := []string{""}
		for _, s := range cat.AvailableScenarios(m.draft.Expansions) {
			ids = append(ids, s.ID)
		}
		m.draft.Scenario = cycle(ids, m.draft.Scenario, delta)
	case rowSpirit:
		m.draft.ToggleSpirit(row.spirit)
	}
}

func cycle(ids []string, current string, delta int) string {
	i := max(slices.Index(ids, current), 0)
	n := len(ids)
	return ids[((i+delta)%n+n)%n]
}

// pruneDraft drops selections whose expansion is no longer enabled.
func (m *model) pruneDraft() {
	cat := m.engine.Catalog()
	available := cat.AvailableSpirits(m.draft.Expansions)
	m.draft.SelectedSpirits = slices.DeleteFunc(m.draft.SelectedSpirits, func(sp models.Spirit) bool {
		return !slices.ContainsFunc(available, func(a models.Spirit) bool { return a.ID == sp.ID })
	})
	if m.draft.HasAdversary() {
		advs := cat.AvailableAdversaries(m.draft.Expansions)
		if !slices.ContainsFunc(advs, func(a models.Adversary) bool { return a.ID == m.draft.Adversary.ID }) {
			m.draft.Adversary = nil
		}
	}
	if m.draft.Scenario != "" {
		scs := cat.AvailableScenarios(m.draft.Expansions)
		if !slices.ContainsFunc(scs, func(s models.Scenario) bool { return s.ID == m.draft.Scenario }) {
			m.draft.Scenario = ""
		}
	}
}

func (m model) applySettings() (model, tea.Cmd) {
	draft := m.draft.Clone()
	draft.Normalize()
	if err := draft.Validate(); err != nil {
		m.settingsErr = m.tf("settings.invalid", map[string]any{"error": err})
		return m, nil
	}
	m.settingsErr = ""
	m.clearStatus()

	m.session.Start(draft)
	switch m.session.State() {
	case session.AwaitingSetup:
		m.screen = screenSetup
		m.viewport.GotoTop()
		m.refreshViewport()
	default:
		m.screen = screenPlaying
	}
	return m.syncScoring(), nil
}

func (m model) viewSettings() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(m.t("header.title_main")+" · "+m.t("settings.title")) + "\n\n")

	rows := m.settingsRows()
	// Keep the cursor visible on short terminals.
	visible := len(rows)
	if m.height > 0 {
		visible = max(m.height-10, 5)
	}
	start := 0
	if m.cursor >= visible {
		start = m.cursor - visible + 1
	}
	end := min(start+visible, len(rows))

	for i := start; i < end; i++ {
		line := m.renderRow(rows[i])
		if i == m.cursor {
			line = selectedStyle.Render("> " + line)
		} else {
			line = "  " + line
		}
		b.WriteString(line + "\n")
	}
	if m.settingsErr != "" {
		b.WriteString("\n" + errorStyle.Render(m.settingsErr) + "\n")
	}
	return b.String()
}

func (m model) renderRow(row settingsRow) string {
	switch row.kind {
	case rowPlayers:
		return fmt.Sprintf("%s: ◀ %d ▶", m.t("settings.player_count"), m.draft.PlayerCount)
	case rowExpansion:
		return checkbox(m.draft.HasExpansion(row.expansion)) + " " + m.t("expansions."+string(row.expansion))
	case rowAdversary:
		name := m.t("common.none")
		if m.draft.HasAdversary() {
			name = m.engine.AdversaryName(m.draft.Adversary.ID, m.tr)
		}
		return fmt.Sprintf("%s: ◀ %s ▶", m.t("settings.adversary"), name)
	case rowLevel:
		level := m.draft.AdversaryLevel()
		return fmt.Sprintf("%s: ◀ %d ▶  %s", m.t("settings.level"), level,
			subtleStyle.Render(m.tf("common.difficulty", map[string]any{"value": m.engine.Difficulty(m.draft)})))
	case rowScenario:
		name := m.t("common.none")
		if m.draft.Scenario != "" {
			name = m.engine.ScenarioName(m.draft.Scenario, m.tr)
		}
		return fmt.Sprintf("%s: ◀ %s ▶", m.t("settings.scenario"), name)
	case rowSpirit:
		selected := slices.ContainsFunc(m.draft.SelectedSpirits, func(s models.Spirit) bool { return s.ID == row.spirit.ID })
		label := checkbox(selected) + " " + engine.SpiritName(row.spirit.ID, m.tr)
		if row.spirit.ID == firstSpiritID(m) {
			header := m.tf("settings.select_spirits", map[string]any{
				"selected": len(m.draft.SelectedSpirits),
				"count":    m.draft.PlayerCount,
			})
			label = subtleStyle.Render(header) + "\n    " + label
		}
		return label
	}
	return ""
}

func firstSpiritID(m model) string {
	spirits := m.engine.Catalog().AvailableSpirits(m.draft.Expansions)
	if len(spirits) == 0 {
		return ""
	}
	return spirits[0].ID
}

func checkbox(on bool) string {
	if on {
		return "[x]"
	}
	return "[ ]"
}

func (m model) updateSetup(msg tea.KeyMsg) (model, tea.Cmd) {
	var cmd tea.Cmd
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, m.quit()
	case key.Matches(msg, m.keys.Confirm):
		m.session.ConfirmSetup()
		m.screen = screenPlaying
		return m.syncScoring(), nil
	case key.Matches(msg, m.keys.Back):
		m.session.CancelSetup()
		return m.openSettings(screenSettings), nil
	default:
		m.viewport, cmd = m.viewport.Update(msg)
	}
	return m, cmd
}

func (m model) renderSetup() string {
	settings := m.session.Settings()
	var b strings.Builder
	if settings.HasAdversary() {
		b.WriteString(titleStyle.Render(fmt.Sprintf("%s · %s",
			m.engine.AdversaryName(settings.Adversary.ID, m.tr),
			m.tf("common.level", map[string]any{"level": settings.Adversary.Level}))) + "\n\n")
	}

	rules := m.engine.SetupRules(settings, m.tr)
	if len(rules) == 0 {
		b.WriteString(m.t("setup.no_changes") + "\n")
	}
	for _, r := range rules {
		b.WriteString(fmt.Sprintf("%d. %s\n   %s\n", r.Level, r.Name, r.Effect))
	}

	b.WriteString("\n")
	if fear := m.engine.FearCards(settings); fear != "" {
		b.WriteString(m.tf("setup.fear", map[string]any{"cards": fear}) + "\n")
	}
	b.WriteString(m.tf("setup.deck", map[string]any{"deck": formatDeck(m.session.Deck())}) + "\n")
	return b.String()
}

package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/tatianab/spirit-tracker/internal/engine"
	"github.com/tatianab/spirit-tracker/internal/models"
)

var roman = map[int]string{1: "I", 2: "II", 3: "III"}

// syncScoring switches to the scoring form when the session opened scoring
// on its own, e.g. on an exhausted invader deck.
func (m model) syncScoring() model {
	if m.session.ScoringOpen() && m.screen != screenScoring {
		m = m.openScoring()
	}
	return m
}

func (m model) updatePlaying(msg tea.KeyMsg) (model, tea.Cmd) {
	if m.session.Paused() {
		switch {
		case key.Matches(msg, m.keys.Pause):
			m.session.TogglePause()
		case key.Matches(msg, m.keys.Quit):
			return m, m.quit()
		}
		return m, nil
	}

	resetArmed := false
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, m.quit()
	case key.Matches(msg, m.keys.Next):
		m.session.Advance()
	case key.Matches(msg, m.keys.Prev):
		m.session.Retreat()
	case key.Matches(msg, m.keys.Jump):
		m.session.JumpToPhase(int(msg.Runes[0] - '1'))
	case key.Matches(msg, m.keys.Pause):
		m.session.TogglePause()
	case key.Matches(msg, m.keys.Rules):
		m.back = screenPlaying
		m.screen = screenRules
		m.viewport.GotoTop()
		m.refreshViewport()
	case key.Matches(msg, m.keys.Settings):
		return m.openSettings(screenPlaying), nil
	case key.Matches(msg, m.keys.History):
		return m.openHistory(screenPlaying), nil
	case key.Matches(msg, m.keys.Victory):
		m.session.OpenScoring(models.Victory)
	case key.Matches(msg, m.keys.Defeat):
		m.session.OpenScoring(models.Defeat)
	case key.Matches(msg, m.keys.Reset):
		if m.confirmReset {
			m.session.Reset()
			m.confirmReset = false
			m.clearStatus()
			return m.openSettings(screenSettings), nil
		}
		resetArmed = true
		m.setStatus(m.t("header.confirm_reset"))
	}
	if m.confirmReset && !resetArmed {
		m.clearStatus()
	}
	m.confirmReset = resetArmed
	return m.syncScoring(), nil
}

func (m model) viewPlaying() string {
	sess := m.session
	settings := sess.Settings()

	stage := m.t("common.deck_empty")
	if s, ok := sess.InvaderStage(); ok {
		stage = m.tf("common.stage", map[string]any{"stage": roman[s]})
	}
	header := lipgloss.JoinHorizontal(lipgloss.Top,
		titleStyle.Render(m.t("header.title_main")),
		"  ",
		m.tf("common.round", map[string]any{"round": sess.Round()}),
		"  ⏱ "+sess.Elapsed(),
		"  "+subtleStyle.Render(stage),
	)
	if settings.HasAdversary() {
		header += "  " + subtleStyle.Render(fmt.Sprintf("%s %d",
			m.engine.AdversaryName(settings.Adversary.ID, m.tr), settings.Adversary.Level))
	}

	if sess.Paused() {
		overlay := pausedStyle.Render(m.t("header.paused")) + "\n\n" + helpStyle.Render(m.t("header.paused_hint"))
		return header + "\n\n" + overlay
	}

	phases := sess.Phases()
	return header + "\n\n" + m.renderTimeline(phases) + "\n\n" + m.renderPhaseCard(phases)
}

func (m model) renderTimeline(phases []models.Phase) string {
	var cells []string
	for i, p := range phases {
		cell := fmt.Sprintf("%d %s", i+1, phaseIcon(p))
		if i == m.session.PhaseIndex() {
			cell = selectedStyle.Render(" " + cell + " ")
		} else {
			cell = categoryStyle(p.Category).Render(" " + cell + " ")
		}
		cells = append(cells, cell)
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, cells...)
}

func (m model) renderPhaseCard(phases []models.Phase) string {
	sess := m.session
	phase, ok := sess.CurrentPhase()
	if !ok {
		return ""
	}

	var b strings.Builder
	category := categoryStyle(phase.Category).Bold(true)
	b.WriteString(category.Render(phaseIcon(phase)+" "+engine.PhaseName(phase, m.tr)) + "  ")
	b.WriteString(subtleStyle.Render(m.t("categories."+phase.Category.String())+" · "+
		m.tf("common.phase_of", map[string]any{"index": sess.PhaseIndex() + 1, "total": len(phases)})) + "\n\n")
	b.WriteString(engine.PhaseDescription(phase, m.tr) + "\n")
	for _, step := range engine.PhaseSubsteps(phase, m.tr) {
		b.WriteString("  • " + step + "\n")
	}

	if hints := m.engine.ActiveHints(sess.Settings(), phase.ID, m.tr); len(hints) > 0 {
		var lines []string
		for _, h := range hints {
			lines = append(lines, fmt.Sprintf("[%d] %s", h.Level, h.Text))
		}
		b.WriteString("\n" + hintStyle.Render(m.t("play.hints")+"\n"+strings.Join(lines, "\n")) + "\n")
	}

	next := m.t("play.next_round")
	if !sess.IsLastPhase() {
		next = engine.PhaseName(phases[sess.PhaseIndex()+1], m.tr)
	}
	b.WriteString("\n" + subtleStyle.Render(m.t("play.upcoming")+": "+next))

	width := 70
	if m.width > 0 {
		width = min(m.width-4, 90)
	}
	return cardStyle.Width(width).Render(b.String())
}

func (m model) updateRules(msg tea.KeyMsg) (model, tea.Cmd) {
	var cmd tea.Cmd
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, m.quit()
	case key.Matches(msg, m.keys.Back), key.Matches(msg, m.keys.Rules):
		m.screen = m.back
	default:
		m.viewport, cmd = m.viewport.Update(msg)
	}
	return m, cmd
}

func (m model) renderRules() string {
	settings := m.session.Settings()
	if !settings.HasAdversary() {
		return m.t("rules.no_rules")
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render(fmt.Sprintf("%s · %s",
		m.engine.AdversaryName(settings.Adversary.ID, m.tr),
		m.tf("common.level", map[string]any{"level": settings.Adversary.Level}))) + "\n\n")

	if esc, ok := m.engine.Escalation(settings, m.tr); ok {
		b.WriteString(hintStyle.Render(m.t("rules.escalation")+": "+esc.Name) + "\n" + esc.Description + "\n\n")
	}
	if loss, ok := m.engine.LossCondition(settings, m.tr); ok {
		b.WriteString(hintStyle.Render(m.t("rules.loss_condition")+": "+loss.Name) + "\n" + loss.Description + "\n\n")
	}
	if levels := m.engine.ActiveLevels(settings, m.tr); len(levels) > 0 {
		b.WriteString(titleStyle.Render(m.t("rules.active_levels")) + "\n")
		for _, l := range levels {
			b.WriteString(fmt.Sprintf("%d. %s\n   %s\n", l.Level, l.Name, l.Effect))
		}
		b.WriteString("\n")
	}
	if fear := m.engine.FearCards(settings); fear != "" {
		b.WriteString(m.tf("setup.fear", map[string]any{"cards": fear}) + "\n")
	}
	b.WriteString(m.tf("setup.deck", map[string]any{"deck": formatDeck(m.session.Deck())}) + "\n")
	return b.String()
}

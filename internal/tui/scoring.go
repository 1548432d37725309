package tui

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/tatianab/spirit-tracker/internal/engine"
	"github.com/tatianab/spirit-tracker/internal/models"
	"github.com/tatianab/spirit-tracker/internal/session"
)

const (
	fieldDahan = iota
	fieldBlight
	fieldInvaders
	fieldDifficulty
	fieldTerror
	fieldCount
)

type scoringForm struct {
	outcome  models.Outcome
	defaults session.ScoringDefaults
	inputs   []textinput.Model
	// focus 0 is the outcome selector, focus i > 0 is inputs[i-1].
	focus int
	err   string
}

func newNumberInput(value string) textinput.Model {
	ti := textinput.New()
	ti.CharLimit = 4
	ti.Width = 6
	ti.Placeholder = "0"
	ti.SetValue(value)
	return ti
}

func (m model) openScoring() model {
	d := m.session.ScoringDefaults()
	f := scoringForm{
		outcome:  d.Outcome,
		defaults: d,
		inputs:   make([]textinput.Model, fieldCount),
	}
	f.inputs[fieldDahan] = newNumberInput("")
	f.inputs[fieldBlight] = newNumberInput("")
	f.inputs[fieldInvaders] = newNumberInput(strconv.Itoa(d.InvaderCards(d.Outcome)))
	f.inputs[fieldDifficulty] = newNumberInput(strconv.Itoa(d.Difficulty))
	f.inputs[fieldTerror] = newNumberInput("")
	f.inputs[fieldTerror].Placeholder = "-"
	f.setFocus(1)

	m.scoring = f
	m.screen = screenScoring
	m.clearStatus()
	return m
}

func (f *scoringForm) setFocus(i int) {
	n := len(f.inputs) + 1
	f.focus = (i%n + n) % n
	for j := range f.inputs {
		if j == f.focus-1 {
			f.inputs[j].Focus()
		} else {
			f.inputs[j].Blur()
		}
	}
}

func (f *scoringForm) setOutcome(o models.Outcome) {
	f.outcome = o
	f.inputs[fieldInvaders].SetValue(strconv.Itoa(f.defaults.InvaderCards(o)))
}

func (f *scoringForm) update(msg tea.Msg) tea.Cmd {
	if f.focus == 0 {
		return nil
	}
	var cmd tea.Cmd
	f.inputs[f.focus-1], cmd = f.inputs[f.focus-1].Update(msg)
	return cmd
}

func (f scoringForm) intField(i int) (int, bool) {
	v := strings.TrimSpace(f.inputs[i].Value())
	if v == "" {
		return 0, true
	}
	n, err := strconv.Atoi(v)
	return n, err == nil
}

func (m model) fieldLabel(i int) string {
	switch i {
	case fieldDahan:
		return m.t("scoring.input_dahan")
	case fieldBlight:
		return m.t("scoring.input_blight")
	case fieldInvaders:
		if m.scoring.outcome == models.Victory {
			return m.t("scoring.input_invader_cards_victory")
		}
		return m.t("scoring.input_invader_cards_defeat")
	case fieldDifficulty:
		return m.t("scoring.input_difficulty")
	case fieldTerror:
		return m.t("scoring.terror_level")
	}
	return ""
}

// countField reports whether field i counts pieces or cards and so cannot
// be negative. Difficulty can be, through a scenario.
func countField(i int) bool {
	return i == fieldDahan || i == fieldBlight || i == fieldInvaders
}

// completion reads the form. The second result names the first field that
// is not a number, or is a negative count.
func (m model) completion() (session.Completion, string) {
	f := m.scoring
	values := make([]int, fieldCount)
	for i := range values {
		n, ok := f.intField(i)
		if !ok || (n < 0 && countField(i)) {
			return session.Completion{}, m.fieldLabel(i)
		}
		values[i] = n
	}
	c := session.Completion{
		Outcome:      f.outcome,
		Dahan:        values[fieldDahan],
		Blight:       values[fieldBlight],
		InvaderCards: values[fieldInvaders],
		Difficulty:   values[fieldDifficulty],
	}
	if strings.TrimSpace(f.inputs[fieldTerror].Value()) != "" {
		tl := values[fieldTerror]
		c.TerrorLevel = &tl
	}
	return c, ""
}

func (m model) updateScoring(msg tea.KeyMsg) (model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Back):
		m.session.CloseScoring()
		if !m.session.ScoringOpen() {
			m.screen = screenPlaying
		}
		return m, nil
	case key.Matches(msg, m.keys.NextField):
		m.scoring.setFocus(m.scoring.focus + 1)
		return m, nil
	case key.Matches(msg, m.keys.PrevField):
		m.scoring.setFocus(m.scoring.focus - 1)
		return m, nil
	case m.scoring.focus == 0 && (key.Matches(msg, m.keys.Left) || key.Matches(msg, m.keys.Right) || key.Matches(msg, m.keys.Toggle)):
		if m.scoring.outcome == models.Victory {
			m.scoring.setOutcome(models.Defeat)
		} else {
			m.scoring.setOutcome(models.Victory)
		}
		return m, nil
	case key.Matches(msg, m.keys.Confirm):
		return m.submitScoring()
	}
	m.scoring.err = ""
	return m, m.scoring.update(msg)
}

func (m model) submitScoring() (model, tea.Cmd) {
	c, bad := m.completion()
	if bad != "" {
		m.scoring.err = m.tf("scoring.invalid_number", map[string]any{"field": bad})
		return m, nil
	}
	result, breakdown, err := m.session.Complete(context.Background(), c)
	if err != nil {
		m.scoring.err = err.Error()
		return m, nil
	}
	m.result = result
	m.breakdown = breakdown
	m.screen = screenResult
	return m, nil
}

func (m model) viewScoring() string {
	f := m.scoring
	var b strings.Builder
	b.WriteString(titleStyle.Render(m.t("scoring.title")) + "  " +
		subtleStyle.Render(m.t("common.duration")+": "+m.session.Elapsed()) + "\n\n")

	outcome := outcomeStyle(f.outcome).Render("◀ " + m.t("common."+string(f.outcome)) + " ▶")
	if f.focus == 0 {
		outcome = selectedStyle.Render("> ") + outcome
	} else {
		outcome = "  " + outcome
	}
	b.WriteString(outcome + "\n\n")

	for i, in := range f.inputs {
		b.WriteString(fmt.Sprintf("  %-40s %s\n", m.fieldLabel(i), in.View()))
	}

	if c, bad := m.completion(); bad == "" {
		bd := m.session.Score(c)
		b.WriteString("\n" + m.renderBreakdown(f.outcome, c.Difficulty, bd))
	}
	if f.err != "" {
		b.WriteString("\n" + errorStyle.Render(f.err) + "\n")
	}
	return b.String()
}

func (m model) renderBreakdown(outcome models.Outcome, difficulty int, bd models.ScoreBreakdown) string {
	mult := engine.InvaderMultiplier(outcome)
	lines := []string{
		fmt.Sprintf("  %-20s %4d  %s", m.t("scoring.breakdown_base"), bd.BaseScore,
			subtleStyle.Render(m.tf("common.difficulty", map[string]any{"value": difficulty}))),
		fmt.Sprintf("  %-20s %4d  %s", m.t("scoring.breakdown_invaders"), bd.InvaderScore,
			subtleStyle.Render(fmt.Sprintf("×%d", mult))),
		fmt.Sprintf("  %-20s %4d", m.t("scoring.breakdown_dahan"), bd.DahanPoints),
		fmt.Sprintf("  %-20s %4d", m.t("scoring.breakdown_blight"), -bd.BlightPenalty),
		titleStyle.Render(fmt.Sprintf("  %-20s %4d", m.t("scoring.total_score"), bd.Total)),
	}
	return strings.Join(lines, "\n") + "\n"
}

func (m model) updateResult(msg tea.KeyMsg) (model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, m.quit()
	case key.Matches(msg, m.keys.Recap):
		return m.requestRecap(m.result)
	case key.Matches(msg, m.keys.History):
		return m.openHistory(screenSettings), nil
	case key.Matches(msg, m.keys.Confirm), key.Matches(msg, m.keys.Back):
		return m.openSettings(screenSettings), nil
	}
	return m, nil
}

func (m model) viewResult() string {
	r := m.result
	var b strings.Builder
	title := m.t("scoring.victory_msg")
	if r.Outcome == models.Defeat {
		title = m.t("scoring.defeat_msg")
	}
	b.WriteString(outcomeStyle(r.Outcome).Render(title) + "\n\n")
	b.WriteString(m.renderBreakdown(r.Outcome, r.Difficulty, m.breakdown))
	b.WriteString("\n" + subtleStyle.Render(m.t("common.duration")+": "+r.Duration) + "\n")
	b.WriteString(m.renderRecap(r.ID))
	return b.String()
}

func (m model) renderRecap(id string) string {
	switch {
	case m.recapLoading == id:
		return "\n" + helpStyle.Render(m.t("details.recap_loading")) + "\n"
	case m.recaps[id] != "":
		width := 70
		if m.width > 0 {
			width = min(m.width-4, 90)
		}
		return "\n" + titleStyle.Render(m.t("details.recap_title")) + "\n" + cardStyle.Width(width).Render(m.recaps[id]) + "\n"
	}
	return ""
}

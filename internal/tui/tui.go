package tui

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/tatianab/spirit-tracker/internal/engine"
	"github.com/tatianab/spirit-tracker/internal/history"
	"github.com/tatianab/spirit-tracker/internal/i18n"
	"github.com/tatianab/spirit-tracker/internal/models"
	"github.com/tatianab/spirit-tracker/internal/session"
)

type screen int

const (
	screenSettings screen = iota
	screenSetup
	screenPlaying
	screenRules
	screenScoring
	screenResult
	screenHistory
	screenDetail
	screenImport
)

// Recapper writes a narrative recap of a finished game.
type Recapper interface {
	Recap(ctx context.Context, result models.GameResult) (string, error)
}

// Deps are the collaborators the UI drives.
type Deps struct {
	Session    *session.Session
	History    *history.Store
	Translator *i18n.Translator
	Recap      Recapper // nil disables recaps
	ExportDir  string
	Logger     *slog.Logger
	Now        func() time.Time
}

type model struct {
	session   *session.Session
	engine    *engine.Engine
	history   *history.Store
	tr        *i18n.Translator
	recap     Recapper
	exportDir string
	logger    *slog.Logger
	now       func() time.Time

	keys     keyMap
	help     help.Model
	viewport viewport.Model

	screen screen
	back   screen
	width  int
	height int

	draft       models.GameSettings
	cursor      int
	settingsErr string

	scoring   scoringForm
	result    models.GameResult
	breakdown models.ScoreBreakdown

	historyCursor int
	confirmDelete bool
	importInput   textinput.Model
	pending       []models.GameResult

	recaps       map[string]string
	recapLoading string

	confirmReset bool
	status       string
	statusErr    bool

	timerGen int
}

func NewModel(deps Deps) model {
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}
	now := deps.Now
	if now == nil {
		now = time.Now
	}

	ti := textinput.New()
	ti.Placeholder = "spirit-island-history.json"
	ti.CharLimit = 512
	ti.Width = 60

	m := model{
		session:     deps.Session,
		engine:      deps.Session.Engine(),
		history:     deps.History,
		tr:          deps.Translator,
		recap:       deps.Recap,
		exportDir:   deps.ExportDir,
		logger:      logger,
		now:         now,
		help:        help.New(),
		viewport:    viewport.New(80, 20),
		screen:      screenSettings,
		draft:       deps.Session.Settings(),
		importInput: ti,
		recaps:      map[string]string{},
		timerGen:    -1,
	}
	m.keys = newKeyMap(m.t)
	return m
}

func (m model) Init() tea.Cmd {
	return textinput.Blink
}

func (m model) t(key string) string {
	return m.tr.T(key, nil)
}

func (m model) tf(key string, params map[string]any) string {
	return m.tr.T(key, params)
}

type tickMsg struct {
	gen int
}

func tick(gen int) tea.Cmd {
	return tea.Tick(time.Second, func(time.Time) tea.Msg {
		return tickMsg{gen: gen}
	})
}

type recapMsg struct {
	id   string
	text string
	err  error
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.viewport.Width = max(msg.Width-4, 20)
		m.viewport.Height = max(msg.Height-8, 5)
		m.refreshViewport()
		return m, nil

	case tickMsg:
		// One pending tick per generation; a stale one stops here.
		if m.session.Tick(msg.gen) {
			return m, tick(msg.gen)
		}
		return m, nil

	case recapMsg:
		m.recapLoading = ""
		if msg.err != nil {
			m.logger.Error("recap failed", "game", msg.id, "error", msg.err)
			m.setError(msg.err.Error())
		} else {
			m.recaps[msg.id] = msg.text
		}
		m.refreshViewport()
		return m, nil

	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return m, m.quit()
		}
		if key.Matches(msg, m.keys.Help) && m.screen != screenScoring && m.screen != screenImport {
			m.help.ShowAll = !m.help.ShowAll
			return m, nil
		}
		switch m.screen {
		case screenSettings:
			m, cmd = m.updateSettings(msg)
		case screenSetup:
			m, cmd = m.updateSetup(msg)
		case screenPlaying:
			m, cmd = m.updatePlaying(msg)
		case screenRules:
			m, cmd = m.updateRules(msg)
		case screenScoring:
			m, cmd = m.updateScoring(msg)
		case screenResult:
			m, cmd = m.updateResult(msg)
		case screenHistory:
			m, cmd = m.updateHistory(msg)
		case screenDetail:
			m, cmd = m.updateDetail(msg)
		case screenImport:
			m, cmd = m.updateImport(msg)
		}

	default:
		switch m.screen {
		case screenScoring:
			cmd = m.scoring.update(msg)
		case screenImport:
			m.importInput, cmd = m.importInput.Update(msg)
		}
	}

	timer := m.syncTimer()
	return m, tea.Batch(cmd, timer)
}

// syncTimer schedules a tick when the session entered a new running timer
// generation.
func (m *model) syncTimer() tea.Cmd {
	gen, running := m.session.TimerGen()
	if !running || gen == m.timerGen {
		return nil
	}
	m.timerGen = gen
	return tick(gen)
}

func (m model) quit() tea.Cmd {
	m.session.Close()
	return tea.Quit
}

func (m *model) setStatus(s string) {
	m.status = s
	m.statusErr = false
}

func (m *model) setError(s string) {
	m.status = s
	m.statusErr = true
}

func (m *model) clearStatus() {
	m.status = ""
	m.statusErr = false
}

// refreshViewport renders the scrollable content of the current screen.
func (m *model) refreshViewport() {
	switch m.screen {
	case screenSetup:
		m.viewport.SetContent(m.renderSetup())
	case screenRules:
		m.viewport.SetContent(m.renderRules())
	case screenDetail:
		m.viewport.SetContent(m.renderDetail())
	}
}

func (m model) View() string {
	var s string

	switch m.screen {
	case screenSettings:
		s = m.viewSettings()
	case screenSetup:
		s = titleStyle.Render(m.t("setup.title")) + "\n\n" + m.viewport.View()
	case screenPlaying:
		s = m.viewPlaying()
	case screenRules:
		s = titleStyle.Render(m.t("rules.title")) + "\n\n" + m.viewport.View()
	case screenScoring:
		s = m.viewScoring()
	case screenResult:
		s = m.viewResult()
	case screenHistory:
		s = m.viewHistory()
	case screenDetail:
		s = m.viewport.View()
	case screenImport:
		s = m.viewImport()
	}

	parts := []string{s}
	if m.status != "" {
		if m.statusErr {
			parts = append(parts, errorStyle.Render(m.status))
		} else {
			parts = append(parts, statusStyle.Render(m.status))
		}
	}
	parts = append(parts, helpStyle.Render(m.helpView()))
	return "\n" + lipgloss.JoinVertical(lipgloss.Left, parts...) + "\n"
}

func (m model) helpView() string {
	var bindings []key.Binding
	switch m.screen {
	case screenSettings:
		bindings = []key.Binding{m.keys.Toggle, m.keys.Confirm, m.keys.History, m.keys.Back, m.keys.Quit}
	case screenSetup:
		bindings = []key.Binding{m.keys.Confirm, m.keys.Back, m.keys.Quit}
	case screenPlaying:
		bindings = []key.Binding{m.keys.Next, m.keys.Prev, m.keys.Jump, m.keys.Pause, m.keys.Rules,
			m.keys.Settings, m.keys.History, m.keys.Victory, m.keys.Defeat, m.keys.Reset, m.keys.Quit}
	case screenRules:
		bindings = []key.Binding{m.keys.Back, m.keys.Quit}
	case screenScoring:
		bindings = []key.Binding{m.keys.NextField, m.keys.Confirm, m.keys.Back}
	case screenResult:
		bindings = []key.Binding{m.keys.Confirm, m.keys.Recap, m.keys.History, m.keys.Quit}
	case screenHistory:
		bindings = []key.Binding{m.keys.Confirm, m.keys.Delete, m.keys.Export, m.keys.Copy, m.keys.Import, m.keys.Back, m.keys.Quit}
	case screenDetail:
		bindings = []key.Binding{m.keys.Recap, m.keys.Back}
	case screenImport:
		bindings = []key.Binding{m.keys.Confirm, m.keys.Back}
	}
	if m.help.ShowAll {
		var columns [][]key.Binding
		for len(bindings) > 0 {
			n := min(4, len(bindings))
			columns = append(columns, bindings[:n])
			bindings = bindings[n:]
		}
		return m.help.FullHelpView(columns)
	}
	return m.help.ShortHelpView(append(bindings, m.keys.Help))
}

// Run starts the UI and blocks until it exits.
func Run(deps Deps) error {
	p := tea.NewProgram(NewModel(deps), tea.WithAltScreen())
	_, err := p.Run()
	return err
}

func formatDeck(deck []int) string {
	s := ""
	for i, v := range deck {
		if i > 0 && v != deck[i-1] {
			s += "-"
		}
		s += fmt.Sprint(v)
	}
	return s
}

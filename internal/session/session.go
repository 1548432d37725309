// Package session tracks a game in progress: the round, the phase within the
// round, the play timer and the end-of-game scoring flow.
package session

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"time"

	"github.com/google/uuid"
	"github.com/tatianab/spirit-tracker/internal/engine"
	"github.com/tatianab/spirit-tracker/internal/history"
	"github.com/tatianab/spirit-tracker/internal/models"
)

// State is the coarse state of a session.
type State int

const (
	NotStarted State = iota
	AwaitingSetup
	Playing
	Paused
	Scoring
)

func (s State) String() string {
	switch s {
	case NotStarted:
		return "not started"
	case AwaitingSetup:
		return "awaiting setup"
	case Playing:
		return "playing"
	case Paused:
		return "paused"
	case Scoring:
		return "scoring"
	}
	return fmt.Sprintf("State(%d)", int(s))
}

// Session is the round/phase state machine. It is not safe for concurrent
// use; the UI event loop owns it.
type Session struct {
	engine  *engine.Engine
	history *history.Store
	tr      engine.Translator
	logger  *slog.Logger
	now     func() time.Time
	newID   func() string

	settings models.GameSettings
	deck     []int

	round      int
	phaseIndex int
	elapsed    int

	hasStarted     bool
	awaitingSetup  bool
	paused         bool
	scoringOpen    bool
	scoringOutcome models.Outcome

	// gen changes whenever a timer gate flips.
	gen int
}

// Option configures a Session.
type Option func(*Session)

// WithTranslator sets the translator used for names stored in results.
func WithTranslator(tr engine.Translator) Option {
	return func(s *Session) { s.tr = tr }
}

// WithLogger sets the session logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Session) { s.logger = logger }
}

// WithClock replaces time.Now for result dates.
func WithClock(now func() time.Time) Option {
	return func(s *Session) { s.now = now }
}

// WithIDs replaces the result id generator.
func WithIDs(newID func() string) Option {
	return func(s *Session) { s.newID = newID }
}

// New creates a session with default settings. hist may be nil, in which
// case completed games are not recorded.
func New(eng *engine.Engine, hist *history.Store, opts ...Option) *Session {
	s := &Session{
		engine:   eng,
		history:  hist,
		logger:   slog.Default(),
		now:      time.Now,
		newID:    uuid.NewString,
		settings: models.DefaultSettings(),
		round:    1,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.deck = s.buildDeck()
	return s
}

func (s *Session) buildDeck() []int {
	if !s.settings.HasAdversary() {
		return s.engine.BuildDeck("", 0)
	}
	return s.engine.BuildDeck(s.settings.Adversary.ID, s.settings.Adversary.Level)
}

// State reports the coarse session state.
func (s *Session) State() State {
	switch {
	case s.scoringOpen:
		return Scoring
	case s.awaitingSetup:
		return AwaitingSetup
	case !s.hasStarted:
		return NotStarted
	case s.paused:
		return Paused
	}
	return Playing
}

// Settings returns a copy of the current settings.
func (s *Session) Settings() models.GameSettings { return s.settings.Clone() }

// Deck returns a copy of the invader deck.
func (s *Session) Deck() []int { return slices.Clone(s.deck) }

func (s *Session) Round() int { return s.round }
func (s *Session) PhaseIndex() int { return s.phaseIndex }
func (s *Session) Started() bool { return s.hasStarted }
func (s *Session) Paused() bool { return s.paused }
func (s *Session) ScoringOpen() bool { return s.scoringOpen }
func (s *Session) ElapsedSeconds() int { return s.elapsed }
func (s *Session) Elapsed() string { return FormatElapsed(s.elapsed) }
func (s *Session) Engine() *engine.Engine { return s.engine }

// ScoringOutcome is the outcome the scoring flow was opened with.
func (s *Session) ScoringOutcome() models.Outcome { return s.scoringOutcome }

// Phases returns the phase list of the current round.
func (s *Session) Phases() []models.Phase {
	return s.engine.BuildPhases(s.round, s.settings, s.deck)
}

// CurrentPhase returns the phase at the current index.
func (s *Session) CurrentPhase() (models.Phase, bool) {
	phases := s.Phases()
	if s.phaseIndex < 0 || s.phaseIndex >= len(phases) {
		return models.Phase{}, false
	}
	return phases[s.phaseIndex], true
}

// InvaderStage returns the stage of the invader card for the current round.
// ok is false once the deck is exhausted.
func (s *Session) InvaderStage() (stage int, ok bool) {
	if s.round < 0 || s.round >= len(s.deck) {
		return 0, false
	}
	return s.deck[s.round], true
}

// IsLastPhase reports whether advancing starts a new round.
func (s *Session) IsLastPhase() bool {
	return s.phaseIndex >= len(s.Phases())-1
}

// Start applies settings and starts a new game. With an adversary the game
// waits for ConfirmSetup. Once a game is running Start only updates the
// settings.
func (s *Session) Start(settings models.GameSettings) {
	if s.hasStarted {
		s.UpdateSettings(settings)
		return
	}
	s.settings = settings.Clone()
	s.deck = s.buildDeck()
	if s.settings.HasAdversary() {
		s.awaitingSetup = true
		return
	}
	s.begin()
}

// ConfirmSetup starts the game after the adversary setup was acknowledged.
func (s *Session) ConfirmSetup() {
	if !s.awaitingSetup {
		return
	}
	s.begin()
}

// CancelSetup abandons a pending start.
func (s *Session) CancelSetup() {
	s.awaitingSetup = false
}

func (s *Session) begin() {
	s.awaitingSetup = false
	s.hasStarted = true
	s.round = 1
	s.phaseIndex = 0
	s.gen++
	s.logger.Info("game started", "players", s.settings.PlayerCount, "adversary", s.settings.Adversary, "deck", s.deck)
	s.checkDefeat()
}

// UpdateSettings replaces the settings, possibly mid-game. The phase index
// is clamped into the recomputed phase list.
func (s *Session) UpdateSettings(settings models.GameSettings) {
	s.settings = settings.Clone()
	s.deck = s.buildDeck()
	if n := len(s.Phases()); s.phaseIndex >= n {
		s.phaseIndex = n - 1
	}
	s.checkDefeat()
}

func (s *Session) interactive() bool {
	return s.hasStarted && !s.paused && !s.scoringOpen
}

// Advance moves to the next phase, or to the first phase of the next round.
func (s *Session) Advance() {
	if !s.interactive() {
		return
	}
	if s.IsLastPhase() {
		s.phaseIndex = 0
		s.round++
	} else {
		s.phaseIndex++
	}
	s.checkDefeat()
}

// CanRetreat reports whether Retreat would move.
func (s *Session) CanRetreat() bool {
	return s.hasStarted && (s.phaseIndex > 0 || s.round > 1)
}

// Retreat moves to the previous phase. At the start of a round it moves to
// the last phase of the previous round as computed from the current
// settings.
func (s *Session) Retreat() {
	if !s.interactive() || !s.CanRetreat() {
		return
	}
	if s.phaseIndex > 0 {
		s.phaseIndex--
	} else {
		s.round--
		s.phaseIndex = len(s.engine.BuildPhases(s.round, s.settings, s.deck)) - 1
	}
	s.checkDefeat()
}

// JumpToPhase selects a phase of the current round. It reports whether the
// jump happened.
func (s *Session) JumpToPhase(index int) bool {
	if !s.interactive() || index < 0 || index >= len(s.Phases()) {
		return false
	}
	s.phaseIndex = index
	s.checkDefeat()
	return true
}

// TogglePause pauses or resumes a running game.
func (s *Session) TogglePause() {
	if !s.hasStarted {
		return
	}
	s.paused = !s.paused
	s.gen++
}

// OpenScoring opens the scoring flow with a preselected outcome.
func (s *Session) OpenScoring(outcome models.Outcome) {
	if !s.hasStarted || s.scoringOpen {
		return
	}
	s.scoringOpen = true
	s.scoringOutcome = outcome
	s.gen++
}

// CloseScoring dismisses the scoring flow. A game whose deck is exhausted
// reopens it immediately.
func (s *Session) CloseScoring() {
	if !s.scoringOpen {
		return
	}
	s.scoringOpen = false
	s.gen++
	s.checkDefeat()
}

func (s *Session) checkDefeat() {
	if !s.hasStarted || s.scoringOpen {
		return
	}
	phase, ok := s.CurrentPhase()
	if !ok || phase.ID != models.PhaseInvaderExplore {
		return
	}
	if _, ok := s.InvaderStage(); ok {
		return
	}
	s.logger.Info("invader deck exhausted", "round", s.round, "deck_size", len(s.deck))
	s.OpenScoring(models.Defeat)
}

// Reset returns to the initial state, keeping the settings.
func (s *Session) Reset() {
	s.round = 1
	s.phaseIndex = 0
	s.elapsed = 0
	s.paused = false
	s.hasStarted = false
	s.awaitingSetup = false
	s.scoringOpen = false
	s.scoringOutcome = ""
	s.gen++
}

// TimerGen returns the current timer generation and whether the timer
// should be running.
func (s *Session) TimerGen() (gen int, running bool) {
	return s.gen, s.hasStarted && !s.paused && !s.scoringOpen
}

// Tick counts one second for the timer generation gen. Ticks from an older
// generation, or while a gate is closed, are dropped. It reports whether the
// tick counted.
func (s *Session) Tick(gen int) bool {
	if current, running := s.TimerGen(); gen != current || !running {
		return false
	}
	s.elapsed++
	return true
}

// Close invalidates any pending tick.
func (s *Session) Close() {
	s.gen++
}

// FormatElapsed renders seconds as MM:SS, or H:MM:SS from one hour on.
func FormatElapsed(seconds int) string {
	seconds = max(seconds, 0)
	h, m, sec := seconds/3600, seconds%3600/60, seconds%60
	if h > 0 {
		return fmt.Sprintf("%d:%02d:%02d", h, m, sec)
	}
	return fmt.Sprintf("%02d:%02d", m, sec)
}

// ScoringDefaults are the initial values of the scoring form.
type ScoringDefaults struct {
	Outcome    models.Outcome
	Difficulty int
	Remaining  int // invader cards still in the deck
	Discarded  int // invader cards drawn so far
}

// InvaderCards returns the card count the formula uses for outcome.
func (d ScoringDefaults) InvaderCards(outcome models.Outcome) int {
	if outcome == models.Victory {
		return d.Remaining
	}
	return d.Discarded
}

// ScoringDefaults derives the scoring form's initial values.
func (s *Session) ScoringDefaults() ScoringDefaults {
	remaining, discarded := engine.InvaderCardCounts(s.round, len(s.deck))
	outcome := s.scoringOutcome
	if outcome == "" {
		outcome = models.Victory
	}
	return ScoringDefaults{
		Outcome:    outcome,
		Difficulty: s.engine.Difficulty(s.settings),
		Remaining:  remaining,
		Discarded:  discarded,
	}
}

// Completion is the scoring form as submitted.
type Completion struct {
	Outcome      models.Outcome
	Difficulty   int
	Dahan        int
	Blight       int
	InvaderCards int
	TerrorLevel  *int
}

// Score computes the breakdown for c without recording anything.
func (s *Session) Score(c Completion) models.ScoreBreakdown {
	return engine.Score(engine.ScoreInput{
		Outcome:      c.Outcome,
		Difficulty:   c.Difficulty,
		Dahan:        c.Dahan,
		Blight:       c.Blight,
		PlayerCount:  s.settings.PlayerCount,
		InvaderCards: c.InvaderCards,
	})
}

// Complete scores the game, records it in the history and resets the
// session. On a history error the session is left as it was.
func (s *Session) Complete(ctx context.Context, c Completion) (models.GameResult, models.ScoreBreakdown, error) {
	breakdown := s.Score(c)
	result := s.result(c, breakdown)

	if s.history != nil {
		if err := s.history.Append(ctx, result); err != nil {
			return models.GameResult{}, breakdown, fmt.Errorf("record game: %w", err)
		}
	}
	s.logger.Info("game completed", "id", result.ID, "outcome", result.Outcome, "score", result.Score, "rounds", s.round)
	s.Reset()
	return result, breakdown, nil
}

func (s *Session) result(c Completion, breakdown models.ScoreBreakdown) models.GameResult {
	rounds := s.round
	r := models.GameResult{
		ID:          s.newID(),
		Date:        s.now().UTC().Format(time.RFC3339),
		Outcome:     c.Outcome,
		Score:       breakdown.Total,
		Difficulty:  c.Difficulty,
		PlayerCount: s.settings.PlayerCount,
		Spirits:     slices.Clone(s.settings.SelectedSpirits),
		Duration:    FormatElapsed(s.elapsed),
		Expansions:  slices.Clone(s.settings.Expansions),
		Rounds:      &rounds,
	}
	if c.TerrorLevel != nil {
		tl := *c.TerrorLevel
		r.TerrorLevel = &tl
	}
	cat := s.engine.Catalog()
	if s.settings.HasAdversary() {
		if adv, ok := cat.Adversary(s.settings.Adversary.ID); ok {
			r.Adversary = &models.ResultAdversary{
				ID:    adv.ID,
				Name:  s.engine.AdversaryName(adv.ID, s.tr),
				Level: s.settings.Adversary.Level,
			}
		}
	}
	if sc, ok := cat.Scenario(s.settings.Scenario); ok {
		r.Scenario = s.engine.ScenarioName(sc.ID, s.tr)
		r.ScenarioID = sc.ID
	}
	return r
}

package models

import (
	"errors"
	"fmt"
	"slices"
)

// ErrInvalidSettings is wrapped by GameSettings.Validate.
var ErrInvalidSettings = errors.New("invalid game settings")

const (
	MinPlayers = 1
	MaxPlayers = 6
	MaxLevel   = 6
)

// AdversaryRef selects an adversary and its level for a session.
type AdversaryRef struct {
	ID    string `json:"id"`
	Level int    `json:"level"`
}

// GameSettings is the session configuration.
type GameSettings struct {
	PlayerCount     int           `json:"playerCount"`
	Expansions      []ExpansionID `json:"expansions"`
	SelectedSpirits []Spirit      `json:"selectedSpirits"`
	Adversary       *AdversaryRef `json:"adversary,omitempty"`
	Scenario        string        `json:"scenario,omitempty"`
}

// DefaultSettings mirrors a fresh install: one player, base game only.
func DefaultSettings() GameSettings {
	return GameSettings{
		PlayerCount: 1,
		Expansions:  []ExpansionID{ExpansionBase},
	}
}

// HasExpansion reports whether id is enabled.
func (s GameSettings) HasExpansion(id ExpansionID) bool {
	return slices.Contains(s.Expansions, id)
}

// HasAdversary reports whether an adversary with a non-empty id is configured.
func (s GameSettings) HasAdversary() bool {
	return s.Adversary != nil && s.Adversary.ID != ""
}

// AdversaryLevel returns the configured level, or 0 without an adversary.
func (s GameSettings) AdversaryLevel() int {
	if s.Adversary == nil {
		return 0
	}
	return s.Adversary.Level
}

// Clone returns a deep copy so callers can edit settings without aliasing.
func (s GameSettings) Clone() GameSettings {
	out := s
	out.Expansions = slices.Clone(s.Expansions)
	out.SelectedSpirits = slices.Clone(s.SelectedSpirits)
	if s.Adversary != nil {
		adv := *s.Adversary
		out.Adversary = &adv
	}
	return out
}

// ToggleExpansion enables or disables id. Base cannot be disabled.
func (s *GameSettings) ToggleExpansion(id ExpansionID) {
	if i := slices.Index(s.Expansions, id); i >= 0 {
		s.Expansions = slices.Delete(s.Expansions, i, i+1)
	} else {
		s.Expansions = append(s.Expansions, id)
	}
	s.Normalize()
}

// ToggleSpirit selects or deselects sp. Selection stops at PlayerCount.
func (s *GameSettings) ToggleSpirit(sp Spirit) {
	i := slices.IndexFunc(s.SelectedSpirits, func(x Spirit) bool { return x.ID == sp.ID })
	if i >= 0 {
		s.SelectedSpirits = slices.Delete(s.SelectedSpirits, i, i+1)
		return
	}
	if len(s.SelectedSpirits) < s.PlayerCount {
		s.SelectedSpirits = append(s.SelectedSpirits, sp)
	}
}

// SetPlayerCount changes the player count, dropping surplus spirits.
func (s *GameSettings) SetPlayerCount(n int) {
	s.PlayerCount = min(max(n, MinPlayers), MaxPlayers)
	s.Normalize()
}

// Normalize restores the invariants the settings form relies on.
func (s *GameSettings) Normalize() {
	if !slices.Contains(s.Expansions, ExpansionBase) {
		s.Expansions = append(s.Expansions, ExpansionBase)
	}
	if s.PlayerCount >= 0 && len(s.SelectedSpirits) > s.PlayerCount {
		s.SelectedSpirits = s.SelectedSpirits[:s.PlayerCount]
	}
}

// Validate checks the settings before a game may start.
func (s GameSettings) Validate() error {
	if s.PlayerCount < MinPlayers || s.PlayerCount > MaxPlayers {
		return fmt.Errorf("%w: player count %d outside %d..%d", ErrInvalidSettings, s.PlayerCount, MinPlayers, MaxPlayers)
	}
	if len(s.SelectedSpirits) != s.PlayerCount {
		return fmt.Errorf("%w: %d spirits selected for %d players", ErrInvalidSettings, len(s.SelectedSpirits), s.PlayerCount)
	}
	if !s.HasExpansion(ExpansionBase) {
		return fmt.Errorf("%w: base game must be enabled", ErrInvalidSettings)
	}
	if s.Adversary != nil && (s.Adversary.Level < 0 || s.Adversary.Level > MaxLevel) {
		return fmt.Errorf("%w: adversary level %d outside 0..%d", ErrInvalidSettings, s.Adversary.Level, MaxLevel)
	}
	return nil
}

// Outcome is how a game ended.
type Outcome string

const (
	Victory Outcome = "victory"
	Defeat  Outcome = "defeat"
)

// ResultAdversary is the adversary as recorded in a GameResult.
type ResultAdversary struct {
	ID    string `json:"id,omitempty"`
	Name  string `json:"name,omitempty"`
	Level int    `json:"level"`
}

// GameResult is an immutable record of a completed game.
type GameResult struct {
	ID          string           `json:"id"`
	Date        string           `json:"date"` // RFC 3339
	Outcome     Outcome          `json:"outcome"`
	Score       int              `json:"score"`
	Difficulty  int              `json:"difficulty"`
	PlayerCount int              `json:"playerCount"`
	Spirits     []Spirit         `json:"spirits"`
	Duration    string           `json:"duration"`
	Expansions  []ExpansionID    `json:"expansions"`
	Adversary   *ResultAdversary `json:"adversary,omitempty"`
	Scenario    string           `json:"scenario,omitempty"`
	ScenarioID  string           `json:"scenarioId,omitempty"`
	Rounds      *int             `json:"rounds,omitempty"`
	TerrorLevel *int             `json:"terrorLevel,omitempty"`
}

// ScoreBreakdown exposes every component of a computed score.
type ScoreBreakdown struct {
	BaseScore     int `json:"baseScore"`
	InvaderScore  int `json:"invaderScore"`
	DahanPoints   int `json:"dahanPoints"`
	BlightPenalty int `json:"blightPenalty"`
	Total         int `json:"totalScore"`
}

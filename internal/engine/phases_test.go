package engine

import (
	"slices"
	"testing"

	"github.com/tatianab/spirit-tracker/internal/catalog"
	"github.com/tatianab/spirit-tracker/internal/models"
)

func settingsWith(expansions ...models.ExpansionID) models.GameSettings {
	s := models.DefaultSettings()
	s.Expansions = append(s.Expansions, expansions...)
	return s
}

func countPhase(phases []models.Phase, id string) int {
	n := 0
	for _, p := range phases {
		if p.ID == id {
			n++
		}
	}
	return n
}

func TestBuildPhasesEventPhase(t *testing.T) {
	e := newTestEngine(t)

	tests := []struct {
		name     string
		round    int
		settings models.GameSettings
		events   int
	}{
		{"base round 1", 1, settingsWith(), 0},
		{"base round 2", 2, settingsWith(), 0},
		{"base round 9", 9, settingsWith(models.ExpansionHorizons), 0},
		{"branch and claw round 1", 1, settingsWith(models.ExpansionBranchAndClaw), 0},
		{"branch and claw round 2", 2, settingsWith(models.ExpansionBranchAndClaw), 1},
		{"jagged earth round 5", 5, settingsWith(models.ExpansionJaggedEarth), 1},
	}
	for _, tt := range tests {
		phases := e.BuildPhases(tt.round, tt.settings, standard)
		if got := countPhase(phases, models.PhaseInvaderEvent); got != tt.events {
			t.Errorf("%s: expected %d event phases, got %d", tt.name, tt.events, got)
		}
		if want := catalog.CanonicalPhaseCount - 1 + tt.events; len(phases) != want {
			t.Errorf("%s: expected %d phases, got %d", tt.name, want, len(phases))
		}
	}
}

func TestBuildPhasesKeepsCatalogOrder(t *testing.T) {
	e := newTestEngine(t)
	phases := e.BuildPhases(2, settingsWith(models.ExpansionJaggedEarth), standard)
	for i, p := range phases {
		if p.ID != catalog.Default().Phases[i].ID {
			t.Fatalf("phase %d: expected %s, got %s", i, catalog.Default().Phases[i].ID, p.ID)
		}
	}
}

func withAdversary(id string, level int) models.GameSettings {
	s := settingsWith()
	s.Adversary = &models.AdversaryRef{ID: id, Level: level}
	return s
}

func TestBuildPhasesHighImmigrationLevel3(t *testing.T) {
	e := newTestEngine(t)
	settings := withAdversary("england", 3)
	deck := e.BuildDeck("england", 3)
	firstStageII := slices.Index(deck, 2)

	for round := 1; round <= firstStageII+6; round++ {
		phases := e.BuildPhases(round, settings, deck)
		present := countPhase(phases, models.PhaseEnglandHighImmigration) == 1
		want := round <= firstStageII+2
		if present != want {
			t.Errorf("round %d: expected high immigration present=%v, got %v", round, want, present)
		}
		if present {
			at := PhaseIndex(phases, models.PhaseEnglandHighImmigration)
			if phases[at+1].ID != models.PhaseInvaderRavage {
				t.Errorf("round %d: expected high immigration right before ravage, got %s after it", round, phases[at+1].ID)
			}
			if phases[at].Category != models.CategoryInvader {
				t.Errorf("round %d: expected invader category, got %s", round, phases[at].Category)
			}
		}
	}
}

func TestBuildPhasesHighImmigrationLevel4Persists(t *testing.T) {
	e := newTestEngine(t)
	for _, level := range []int{4, 5, 6} {
		settings := withAdversary("england", level)
		deck := e.BuildDeck("england", level)
		for _, round := range []int{1, 5, 12, 13, 1000} {
			if countPhase(e.BuildPhases(round, settings, deck), models.PhaseEnglandHighImmigration) != 1 {
				t.Errorf("level %d round %d: expected high immigration", level, round)
			}
		}
	}
}

func TestBuildPhasesNoInjectionBelowLevel3(t *testing.T) {
	e := newTestEngine(t)
	for _, s := range []models.GameSettings{withAdversary("england", 2), withAdversary("sweden", 6), withAdversary("prussia", 6)} {
		if countPhase(e.BuildPhases(1, s, standard), models.PhaseEnglandHighImmigration) != 0 {
			t.Errorf("%s %d: unexpected high immigration", s.Adversary.ID, s.Adversary.Level)
		}
	}
}

func TestShouldShowHighImmigration(t *testing.T) {
	tests := []struct {
		round, level int
		deck         []int
		want         bool
	}{
		{1, 3, standard, true},
		{5, 3, standard, true},
		{6, 3, standard, false},
		{50, 3, standard, false},
		{50, 3, []int{1, 1, 3, 3}, true},
		{50, 4, standard, true},
		{2, 3, []int{2, 1}, true},
		{3, 3, []int{2, 1}, false},
	}
	for _, tt := range tests {
		if got := ShouldShowHighImmigration(tt.round, tt.deck, tt.level); got != tt.want {
			t.Errorf("ShouldShowHighImmigration(%d, %v, %d) = %v, expected %v", tt.round, tt.deck, tt.level, got, tt.want)
		}
	}
}

func testCatalog(injection models.PhaseInjection) *catalog.Catalog {
	base := catalog.Default()
	levels := make([]models.AdversaryLevel, models.MaxLevel+1)
	for i := range levels {
		levels[i] = models.AdversaryLevel{Level: i, Difficulty: i}
	}
	return &catalog.Catalog{
		Phases: base.Phases,
		InjectedPhases: []models.Phase{
			{ID: "tide", Category: models.CategoryInvader, Name: "Tide"},
		},
		Adversaries: []models.Adversary{
			{ID: "tides", ExpansionID: models.ExpansionBase, Levels: levels, Injections: []models.PhaseInjection{injection}},
		},
	}
}

func TestBuildPhasesCustomInjection(t *testing.T) {
	e, err := NewEngine(testCatalog(models.PhaseInjection{
		Phase:    "tide",
		Before:   models.PhaseTimePasses,
		MinLevel: 1,
		When:     "Round % 2 == 0 && FirstIndex(3) > 0",
	}), nil)
	if err != nil {
		t.Fatalf("Failed to create engine: %v", err)
	}
	settings := withAdversary("tides", 1)

	if got := countPhase(e.BuildPhases(1, settings, standard), "tide"); got != 0 {
		t.Errorf("round 1: expected no tide phase, got %d", got)
	}
	phases := e.BuildPhases(2, settings, standard)
	at := PhaseIndex(phases, "tide")
	if at == -1 || phases[at+1].ID != models.PhaseTimePasses {
		t.Errorf("round 2: expected tide before time passes, got index %d", at)
	}

	settings.Adversary.Level = 0
	if got := countPhase(e.BuildPhases(2, settings, standard), "tide"); got != 0 {
		t.Errorf("level 0: expected no tide phase, got %d", got)
	}
}

func TestBuildPhasesSkipsMissingAnchor(t *testing.T) {
	e, err := NewEngine(testCatalog(models.PhaseInjection{Phase: "tide", Before: "no-such-phase"}), nil)
	if err != nil {
		t.Fatalf("Failed to create engine: %v", err)
	}
	phases := e.BuildPhases(2, withAdversary("tides", 6), standard)
	if countPhase(phases, "tide") != 0 {
		t.Error("Expected injection to be skipped without its anchor phase")
	}
}

func TestNewEngineRejectsBadCondition(t *testing.T) {
	_, err := NewEngine(testCatalog(models.PhaseInjection{Phase: "tide", Before: models.PhaseTimePasses, When: "Round +"}), nil)
	if err == nil {
		t.Error("Expected a compile error")
	}
}

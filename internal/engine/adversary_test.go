package engine

import (
	"testing"

	"github.com/tatianab/spirit-tracker/internal/models"
)

type mapTranslator map[string]string

func (m mapTranslator) T(key string, _ map[string]any) string {
	if s, ok := m[key]; ok {
		return s
	}
	return key
}

func TestResolve(t *testing.T) {
	tr := mapTranslator{"a.b": "Translated", "empty": ""}

	if got := Resolve(tr, "a.b", "fallback"); got != "Translated" {
		t.Errorf("Expected translation, got %q", got)
	}
	if got := Resolve(tr, "missing.key", "fallback"); got != "fallback" {
		t.Errorf("Expected fallback for a missing key, got %q", got)
	}
	if got := Resolve(tr, "empty", "fallback"); got != "fallback" {
		t.Errorf("Expected fallback for an empty translation, got %q", got)
	}
	if got := Resolve(nil, "a.b", "fallback"); got != "fallback" {
		t.Errorf("Expected fallback without a translator, got %q", got)
	}
}

func TestDifficulty(t *testing.T) {
	e := newTestEngine(t)

	s := withAdversary("england", 3)
	if got := e.Difficulty(s); got != 6 {
		t.Errorf("Expected difficulty 6, got %d", got)
	}
	s.Scenario = "destiny-unfolds"
	if got := e.Difficulty(s); got != 5 {
		t.Errorf("Expected difficulty 5 with scenario, got %d", got)
	}
	if got := e.Difficulty(models.DefaultSettings()); got != 0 {
		t.Errorf("Expected difficulty 0 without adversary, got %d", got)
	}
}

func TestActiveHints(t *testing.T) {
	e := newTestEngine(t)

	hints := e.ActiveHints(withAdversary("england", 3), models.PhaseInvaderBuild, nil)
	if len(hints) != 2 {
		t.Fatalf("Expected 2 build hints at level 3, got %d", len(hints))
	}
	if hints[0].ID != "indentured_servants" || hints[1].ID != "high_immigration" {
		t.Errorf("Unexpected hint order: %+v", hints)
	}

	if got := e.ActiveHints(withAdversary("england", 0), models.PhaseInvaderBuild, nil); len(got) != 0 {
		t.Errorf("Expected no hints at level 0, got %+v", got)
	}

	tr := mapTranslator{"adversary_data.sweden.hints.fine_steel": "Feiner Stahl"}
	hints = e.ActiveHints(withAdversary("sweden", 3), models.PhaseInvaderRavage, tr)
	if len(hints) != 2 || hints[1].Text != "Feiner Stahl" {
		t.Errorf("Expected translated fine steel hint, got %+v", hints)
	}

	if got := e.ActiveHints(models.DefaultSettings(), models.PhaseInvaderRavage, nil); got != nil {
		t.Errorf("Expected no hints without adversary, got %+v", got)
	}
}

func TestSetupRules(t *testing.T) {
	e := newTestEngine(t)

	rules := e.SetupRules(withAdversary("england", 6), nil)
	levels := []int{}
	for _, r := range rules {
		levels = append(levels, r.Level)
	}
	if len(levels) != 2 || levels[0] != 2 || levels[1] != 6 {
		t.Errorf("Expected england setup rules at levels 2 and 6, got %v", levels)
	}
	if rules[1].Effect == "" {
		t.Error("Expected the explicit setup rule text for level 6")
	}

	prussia := e.SetupRules(withAdversary("prussia", 3), nil)
	if len(prussia) != 3 {
		t.Errorf("Expected 3 prussia setup rules, got %d", len(prussia))
	}

	tr := mapTranslator{"adversary_data.england.levels.2.effect": "Aufbau"}
	if got := e.SetupRules(withAdversary("england", 2), tr); len(got) != 1 || got[0].Effect != "Aufbau" {
		t.Errorf("Expected translated setup effect, got %+v", got)
	}
}

func TestActiveLevelsAndRuleTexts(t *testing.T) {
	e := newTestEngine(t)
	s := withAdversary("england", 3)

	levels := e.ActiveLevels(s, nil)
	if len(levels) != 2 || levels[0].Level != 1 || levels[1].Level != 3 {
		t.Errorf("Expected levels 1 and 3, got %+v", levels)
	}

	if esc, ok := e.Escalation(s, nil); !ok || esc.Name != "Building Boom" {
		t.Errorf("Unexpected escalation %+v", esc)
	}
	if loss, ok := e.LossCondition(s, mapTranslator{"adversary_data.england.loss_condition.name": "Hauptstadt"}); !ok || loss.Name != "Hauptstadt" {
		t.Errorf("Unexpected loss condition %+v", loss)
	}
	if _, ok := e.LossCondition(withAdversary("sweden", 1), nil); ok {
		t.Error("Expected sweden to have no loss condition")
	}
	if got := e.FearCards(s); got != "4/5/4" {
		t.Errorf("Expected fear cards 4/5/4, got %q", got)
	}
}

func TestNames(t *testing.T) {
	e := newTestEngine(t)
	if got := e.AdversaryName("sweden", nil); got != "Kingdom of Sweden" {
		t.Errorf("Expected catalog name, got %q", got)
	}
	if got := e.AdversaryName("sweden", mapTranslator{"adversaries.sweden": "Schweden"}); got != "Schweden" {
		t.Errorf("Expected translated name, got %q", got)
	}
	phase := e.Catalog().Phases[0]
	if got := PhaseName(phase, nil); got != phase.Name {
		t.Errorf("Expected static phase name, got %q", got)
	}
	if got := len(PhaseSubsteps(phase, nil)); got != len(phase.Substeps) {
		t.Errorf("Expected %d substeps, got %d", len(phase.Substeps), got)
	}
}

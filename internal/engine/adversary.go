package engine

import (
	"fmt"
	"strings"

	"github.com/tatianab/spirit-tracker/internal/models"
)

// Resolve returns the translation of key, or fallback when the translator
// reports the key as missing by returning it unchanged.
func Resolve(tr Translator, key, fallback string) string {
	if tr == nil {
		return fallback
	}
	if s := tr.T(key, nil); s != "" && s != key {
		return s
	}
	return fallback
}

// Hint is an adversary reminder resolved for display.
type Hint struct {
	ID    string
	Level int
	Text  string
}

// LevelRule is one adversary level's text resolved for display.
type LevelRule struct {
	Level  int
	Name   string
	Effect string
}

// Difficulty is the starting difficulty of a session: the adversary level's
// difficulty plus the scenario's.
func (e *Engine) Difficulty(settings models.GameSettings) int {
	diff := 0
	if settings.Adversary != nil {
		if adv, ok := e.catalog.Adversary(settings.Adversary.ID); ok {
			if lvl, ok := adv.Level(settings.Adversary.Level); ok {
				diff += lvl.Difficulty
			}
		}
	}
	if settings.Scenario != "" {
		if sc, ok := e.catalog.Scenario(settings.Scenario); ok {
			diff += sc.Difficulty
		}
	}
	return diff
}

// AdversaryName returns the display name of an adversary.
func (e *Engine) AdversaryName(id string, tr Translator) string {
	fallback := id
	if adv, ok := e.catalog.Adversary(id); ok && adv.Name != "" {
		fallback = adv.Name
	}
	return Resolve(tr, "adversaries."+id, fallback)
}

// ScenarioName returns the display name of a scenario.
func (e *Engine) ScenarioName(id string, tr Translator) string {
	return Resolve(tr, "scenarios."+id, id)
}

// SpiritName returns the display name of a spirit.
func SpiritName(id string, tr Translator) string {
	return Resolve(tr, "spirits."+id, id)
}

// PhaseName returns the display name of p.
func PhaseName(p models.Phase, tr Translator) string {
	return Resolve(tr, "phases."+p.ID+".name", p.Name)
}

// PhaseDescription returns the display description of p.
func PhaseDescription(p models.Phase, tr Translator) string {
	return Resolve(tr, "phases."+p.ID+".desc", p.Description)
}

// PhaseSubsteps returns the display substeps of p.
func PhaseSubsteps(p models.Phase, tr Translator) []string {
	out := make([]string, len(p.Substeps))
	for i, s := range p.Substeps {
		out[i] = Resolve(tr, fmt.Sprintf("phases.%s.substeps.%d", p.ID, i), s)
	}
	return out
}

// ActiveHints returns the adversary hints for phaseID at the configured level.
func (e *Engine) ActiveHints(settings models.GameSettings, phaseID string, tr Translator) []Hint {
	if !settings.HasAdversary() {
		return nil
	}
	adv, ok := e.catalog.Adversary(settings.Adversary.ID)
	if !ok {
		return nil
	}
	var hints []Hint
	for _, rule := range adv.PhaseHints[phaseID] {
		if settings.Adversary.Level < rule.Level {
			continue
		}
		key := rule.Key
		if key == "" {
			key = fmt.Sprintf("adversary_data.%s.hints.%s", adv.ID, rule.ID)
		}
		text := Resolve(tr, key, rule.Hint)
		if text == "" {
			continue
		}
		hints = append(hints, Hint{ID: rule.ID, Level: rule.Level, Text: text})
	}
	return hints
}

func levelKey(advID string, level int, field string) string {
	return fmt.Sprintf("adversary_data.%s.levels.%d.%s", advID, level, field)
}

// SetupRules collects the setup instructions of levels 1..configured level.
// An explicit setup rule wins; otherwise setup levels, or levels whose effect
// mentions setup, contribute their effect text.
func (e *Engine) SetupRules(settings models.GameSettings, tr Translator) []LevelRule {
	if !settings.HasAdversary() {
		return nil
	}
	adv, ok := e.catalog.Adversary(settings.Adversary.ID)
	if !ok {
		return nil
	}
	var rules []LevelRule
	for i := 1; i <= settings.Adversary.Level; i++ {
		lvl, ok := adv.Level(i)
		if !ok {
			continue
		}
		name := Resolve(tr, levelKey(adv.ID, i, "name"), lvl.Name)
		effect := Resolve(tr, levelKey(adv.ID, i, "effect"), lvl.Effect)
		setup := Resolve(tr, levelKey(adv.ID, i, "setup_rule"), lvl.SetupRule)

		switch {
		case setup != "":
			rules = append(rules, LevelRule{Level: i, Name: name, Effect: setup})
		case lvl.IsSetup:
			rules = append(rules, LevelRule{Level: i, Name: name, Effect: effect})
		case strings.Contains(lvl.Effect, "Setup"):
			rules = append(rules, LevelRule{Level: i, Name: name, Effect: effect})
		}
	}
	return rules
}

// ActiveLevels returns the non-setup levels 1..configured level.
func (e *Engine) ActiveLevels(settings models.GameSettings, tr Translator) []LevelRule {
	if !settings.HasAdversary() {
		return nil
	}
	adv, ok := e.catalog.Adversary(settings.Adversary.ID)
	if !ok {
		return nil
	}
	var out []LevelRule
	for _, lvl := range adv.Levels {
		if lvl.Level == 0 || lvl.Level > settings.Adversary.Level || lvl.IsSetup {
			continue
		}
		out = append(out, LevelRule{
			Level:  lvl.Level,
			Name:   Resolve(tr, levelKey(adv.ID, lvl.Level, "name"), lvl.Name),
			Effect: Resolve(tr, levelKey(adv.ID, lvl.Level, "effect"), lvl.Effect),
		})
	}
	return out
}

// Escalation returns the adversary's escalation text, if it has one.
func (e *Engine) Escalation(settings models.GameSettings, tr Translator) (models.RuleText, bool) {
	return e.ruleText(settings, tr, "escalation", func(a *models.Adversary) *models.RuleText { return a.Escalation })
}

// LossCondition returns the adversary's additional loss condition, if any.
func (e *Engine) LossCondition(settings models.GameSettings, tr Translator) (models.RuleText, bool) {
	return e.ruleText(settings, tr, "loss_condition", func(a *models.Adversary) *models.RuleText { return a.LossCondition })
}

func (e *Engine) ruleText(settings models.GameSettings, tr Translator, field string, pick func(*models.Adversary) *models.RuleText) (models.RuleText, bool) {
	if !settings.HasAdversary() {
		return models.RuleText{}, false
	}
	adv, ok := e.catalog.Adversary(settings.Adversary.ID)
	if !ok {
		return models.RuleText{}, false
	}
	text := pick(adv)
	if text == nil {
		return models.RuleText{}, false
	}
	out := models.RuleText{
		Name:        Resolve(tr, fmt.Sprintf("adversary_data.%s.%s.name", adv.ID, field), text.Name),
		Description: Resolve(tr, fmt.Sprintf("adversary_data.%s.%s.description", adv.ID, field), text.Description),
	}
	if out.Name == "" && out.Description == "" {
		return models.RuleText{}, false
	}
	return out, true
}

// FearCards returns the fear deck layout at the configured level, e.g. "3/4/3".
func (e *Engine) FearCards(settings models.GameSettings) string {
	if !settings.HasAdversary() {
		return ""
	}
	adv, ok := e.catalog.Adversary(settings.Adversary.ID)
	if !ok {
		return ""
	}
	lvl, _ := adv.Level(settings.Adversary.Level)
	return lvl.FearCards
}

package engine

import (
	"slices"

	"github.com/expr-lang/expr/vm"
	"github.com/tatianab/spirit-tracker/internal/models"
)

// BuildPhases returns the phases played in round. The result is a fresh
// slice on every call.
func (e *Engine) BuildPhases(round int, settings models.GameSettings, deck []int) []models.Phase {
	events := settings.HasExpansion(models.ExpansionBranchAndClaw) || settings.HasExpansion(models.ExpansionJaggedEarth)

	phases := make([]models.Phase, 0, len(e.catalog.Phases)+1)
	for _, p := range e.catalog.Phases {
		if p.RequiresEvents && (round == 1 || !events) {
			continue
		}
		phases = append(phases, p)
	}

	if !settings.HasAdversary() {
		return phases
	}
	adv, ok := e.catalog.Adversary(settings.Adversary.ID)
	if !ok {
		return phases
	}
	level := settings.Adversary.Level
	env := RuleEnv{Round: round, Level: level, Deck: deck}

	for _, inj := range adv.Injections {
		if level < inj.MinLevel || !e.holds(adv.ID, inj, env) {
			continue
		}
		at := slices.IndexFunc(phases, func(p models.Phase) bool { return p.ID == inj.Before })
		if at == -1 {
			continue
		}
		injected, ok := e.catalog.InjectedPhase(inj.Phase)
		if !ok {
			continue
		}
		phases = slices.Insert(phases, at, injected)
	}
	return phases
}

func (e *Engine) holds(adversaryID string, inj models.PhaseInjection, env RuleEnv) bool {
	if inj.When == "" {
		return true
	}
	program, ok := e.programs[inj.When]
	if !ok {
		return false
	}
	result, err := vm.Run(program, env)
	if err != nil {
		e.logger.Warn("adversary rule condition error", "adversary", adversaryID, "phase", inj.Phase, "error", err)
		return false
	}
	match, _ := result.(bool)
	return match
}

// PhaseIndex returns the position of id in phases, or -1.
func PhaseIndex(phases []models.Phase, id string) int {
	return slices.IndexFunc(phases, func(p models.Phase) bool { return p.ID == id })
}

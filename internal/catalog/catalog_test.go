package catalog

import (
	"testing"

	"github.com/tatianab/spirit-tracker/internal/models"
)

func TestDefaultCatalog(t *testing.T) {
	c := Default()

	if len(c.Expansions) != 6 {
		t.Errorf("Expected 6 expansions, got %d", len(c.Expansions))
	}
	if c.Phases[0].ID != models.PhaseSpiritGrowth || c.Phases[len(c.Phases)-1].ID != models.PhaseTimePasses {
		t.Errorf("Unexpected phase order: first %s, last %s", c.Phases[0].ID, c.Phases[len(c.Phases)-1].ID)
	}

	events := 0
	for _, p := range c.Phases {
		if p.RequiresEvents {
			events++
			if p.ID != models.PhaseInvaderEvent {
				t.Errorf("Expected only the event phase to require events, got %s", p.ID)
			}
		}
	}
	if events != 1 {
		t.Errorf("Expected exactly one event phase, got %d", events)
	}

	if _, ok := c.InjectedPhase(models.PhaseEnglandHighImmigration); !ok {
		t.Error("Expected the high immigration phase template")
	}
}

func TestAdversaryLookup(t *testing.T) {
	c := Default()

	england, ok := c.Adversary("england")
	if !ok {
		t.Fatal("Expected england in catalog")
	}
	lvl, ok := england.Level(6)
	if !ok || lvl.Difficulty != 11 {
		t.Errorf("Expected england level 6 difficulty 11, got %+v", lvl)
	}
	if len(england.Injections) != 1 || england.Injections[0].Before != models.PhaseInvaderRavage {
		t.Errorf("Unexpected england injections: %+v", england.Injections)
	}

	sweden, _ := c.Adversary("sweden")
	if len(sweden.DeckRules) != 1 || sweden.DeckRules[0].MinLevel != 4 {
		t.Errorf("Unexpected sweden deck rules: %+v", sweden.DeckRules)
	}

	if _, ok := c.Adversary("atlantis"); ok {
		t.Error("Expected unknown adversary to be missing")
	}
}

func TestScenarioDifficultyMayBeNegative(t *testing.T) {
	s, ok := Default().Scenario("destiny-unfolds")
	if !ok {
		t.Fatal("Expected destiny-unfolds in catalog")
	}
	if s.Difficulty != -1 {
		t.Errorf("Expected difficulty -1, got %d", s.Difficulty)
	}
}

func TestAvailableSpirits(t *testing.T) {
	c := Default()

	base := c.AvailableSpirits(nil)
	if len(base) != 8 {
		t.Errorf("Expected 8 base spirits, got %d", len(base))
	}

	withBC := c.AvailableSpirits([]models.ExpansionID{models.ExpansionBase, models.ExpansionBranchAndClaw})
	if len(withBC) != 10 {
		t.Errorf("Expected 10 spirits with branch and claw, got %d", len(withBC))
	}

	advs := c.AvailableAdversaries([]models.ExpansionID{models.ExpansionBase})
	if len(advs) != 3 {
		t.Errorf("Expected 3 base adversaries, got %d", len(advs))
	}
}

func TestParseRejectsBrokenCatalog(t *testing.T) {
	broken := []byte(`
phases:
  - {id: a, category: spirit}
`)
	if _, err := Parse(broken); err == nil {
		t.Error("Expected an error for a catalog with too few phases")
	}
}

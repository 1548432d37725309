// Package catalog holds the static game content: expansions, spirits,
// adversaries, scenarios and the canonical phase order.
package catalog

import (
	_ "embed"
	"fmt"
	"slices"

	"github.com/tatianab/spirit-tracker/internal/models"
	"gopkg.in/yaml.v3"
)

//go:embed data/catalog.yaml
var catalogYAML []byte

// Catalog is the parsed, read-only game content.
type Catalog struct {
	Expansions     []models.Expansion `yaml:"expansions"`
	Spirits        []models.Spirit    `yaml:"spirits"`
	Adversaries    []models.Adversary `yaml:"adversaries"`
	Scenarios      []models.Scenario  `yaml:"scenarios"`
	Phases         []models.Phase     `yaml:"phases"`
	InjectedPhases []models.Phase     `yaml:"injectedPhases"`
}

// CanonicalPhaseCount is the number of phases in a full round.
const CanonicalPhaseCount = 11

var defaultCatalog = mustLoad()

// Default returns the embedded catalog. Callers must not mutate it.
func Default() *Catalog {
	return defaultCatalog
}

// Parse decodes and validates catalog content.
func Parse(data []byte) (*Catalog, error) {
	var c Catalog
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}
	if err := c.validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

func (c *Catalog) validate() error {
	if len(c.Phases) != CanonicalPhaseCount {
		return fmt.Errorf("catalog: expected %d phases, got %d", CanonicalPhaseCount, len(c.Phases))
	}
	seen := map[string]bool{}
	for _, p := range slices.Concat(c.Phases, c.InjectedPhases) {
		if seen[p.ID] {
			return fmt.Errorf("catalog: duplicate phase %q", p.ID)
		}
		seen[p.ID] = true
	}
	for _, a := range c.Adversaries {
		if len(a.Levels) != models.MaxLevel+1 {
			return fmt.Errorf("catalog: adversary %q has %d levels", a.ID, len(a.Levels))
		}
		for i, l := range a.Levels {
			if l.Level != i {
				return fmt.Errorf("catalog: adversary %q level %d out of order", a.ID, l.Level)
			}
		}
		for _, inj := range a.Injections {
			if !seen[inj.Phase] {
				return fmt.Errorf("catalog: adversary %q injects unknown phase %q", a.ID, inj.Phase)
			}
		}
	}
	return nil
}

// Adversary looks up an adversary by id.
func (c *Catalog) Adversary(id string) (*models.Adversary, bool) {
	for i := range c.Adversaries {
		if c.Adversaries[i].ID == id {
			return &c.Adversaries[i], true
		}
	}
	return nil, false
}

// Scenario looks up a scenario by id.
func (c *Catalog) Scenario(id string) (models.Scenario, bool) {
	for _, s := range c.Scenarios {
		if s.ID == id {
			return s, true
		}
	}
	return models.Scenario{}, false
}

// Spirit looks up a spirit by id.
func (c *Catalog) Spirit(id string) (models.Spirit, bool) {
	for _, s := range c.Spirits {
		if s.ID == id {
			return s, true
		}
	}
	return models.Spirit{}, false
}

// InjectedPhase returns the template for a dynamically inserted phase.
func (c *Catalog) InjectedPhase(id string) (models.Phase, bool) {
	for _, p := range c.InjectedPhases {
		if p.ID == id {
			return p, true
		}
	}
	return models.Phase{}, false
}

// AvailableSpirits returns spirits from the enabled expansions, base always included.
func (c *Catalog) AvailableSpirits(expansions []models.ExpansionID) []models.Spirit {
	var out []models.Spirit
	for _, s := range c.Spirits {
		if s.ExpansionID == models.ExpansionBase || slices.Contains(expansions, s.ExpansionID) {
			out = append(out, s)
		}
	}
	return out
}

// AvailableAdversaries returns adversaries from the enabled expansions.
func (c *Catalog) AvailableAdversaries(expansions []models.ExpansionID) []models.Adversary {
	var out []models.Adversary
	for _, a := range c.Adversaries {
		if a.ExpansionID == models.ExpansionBase || slices.Contains(expansions, a.ExpansionID) {
			out = append(out, a)
		}
	}
	return out
}

// AvailableScenarios returns scenarios from the enabled expansions.
func (c *Catalog) AvailableScenarios(expansions []models.ExpansionID) []models.Scenario {
	var out []models.Scenario
	for _, s := range c.Scenarios {
		if s.ExpansionID == models.ExpansionBase || slices.Contains(expansions, s.ExpansionID) {
			out = append(out, s)
		}
	}
	return out
}

func mustLoad() *Catalog {
	c, err := Parse(catalogYAML)
	if err != nil {
		panic(err)
	}
	return c
}

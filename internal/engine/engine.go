package engine

import (
	"fmt"
	"log/slog"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
	"github.com/tatianab/spirit-tracker/internal/catalog"
)

// Translator resolves localized text; a missing key is returned unchanged.
type Translator interface {
	T(key string, params map[string]any) string
}

// Engine applies the game rules described by a catalog.
type Engine struct {
	catalog  *catalog.Catalog
	programs map[string]*vm.Program // keyed by condition source
	logger   *slog.Logger
}

// NewEngine compiles every adversary rule condition in cat.
func NewEngine(cat *catalog.Catalog, logger *slog.Logger) (*Engine, error) {
	if cat == nil {
		cat = catalog.Default()
	}
	if logger == nil {
		logger = slog.Default()
	}
	e := &Engine{
		catalog:  cat,
		programs: map[string]*vm.Program{},
		logger:   logger,
	}
	for _, adv := range cat.Adversaries {
		for _, inj := range adv.Injections {
			if inj.When == "" {
				continue
			}
			if _, ok := e.programs[inj.When]; ok {
				continue
			}
			program, err := expr.Compile(inj.When, expr.Env(RuleEnv{}), expr.AsBool())
			if err != nil {
				return nil, fmt.Errorf("compile %s injection %q: %w", adv.ID, inj.Phase, err)
			}
			e.programs[inj.When] = program
		}
	}
	return e, nil
}

// Catalog returns the catalog the engine was built from.
func (e *Engine) Catalog() *catalog.Catalog {
	return e.catalog
}

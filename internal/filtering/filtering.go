// Package filtering trims the job catalog before ranking: family exclusions
// from configuration and duplicate titles left behind by scraping.
package filtering

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/fortemind/career-compass/internal/catalog"
)

// Filter represents a single filtering step applied to the catalog.
type Filter interface {
	Name() string
	IsEnabled() bool
	Apply(c *catalog.Catalog) (*catalog.Catalog, Step, error)
}

// Step describes the result of executing a filtering step.
type Step struct {
	Initial int
	Dropped int
	Left    int
}

// Filtering executes a fixed sequence of filters.
type Filtering struct {
	steps  []Filter
	logger *zap.Logger
}

// New creates a filtering pipeline with the given steps.
func New(steps []Filter, logger *zap.Logger) *Filtering {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Filtering{steps: steps, logger: logger}
}

// Run executes the filters sequentially and returns the surviving catalog.
// Catalog order is preserved: ranking tie-breaks depend on it.
func (f *Filtering) Run(c *catalog.Catalog) (*catalog.Catalog, error) {
	for _, step := range f.steps {
		if !step.IsEnabled() {
			f.logger.Debug("filter disabled", zap.String("name", step.Name()))
			continue
		}

		next, info, err := step.Apply(c)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", step.Name(), err)
		}

		f.logger.Info("filter step",
			zap.String("name", step.Name()),
			zap.Int("initial", info.Initial),
			zap.Int("dropped", info.Dropped),
			zap.Int("left", info.Left),
		)

		c = next
	}

	return c, nil
}

package filtering

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/spigell/hire-matcher/internal/marketplace"
)

// Filter represents a single eligibility step applied to a candidate pool.
type Filter interface {
	Name() string
	Disable(reason string)
	IsEnabled() bool

	Validate() error
	Apply(ctx context.Context, v *marketplace.Candidates) (*marketplace.Candidates, Step, error)
}

// Step describes the result of executing a filtering step.
type Step struct {
	Initial int
	Dropped int
	Left    int
}

// Status represents runtime information about a filter.
type Status struct {
	Name    string
	Enabled bool
	Reason  string
	Details map[string]string
}

// statusProvider is implemented by filters that can supply detailed status information.
type statusProvider interface {
	Status() Status
}

// DisableByName marks a filter with the provided name as disabled while keeping it in the list.
func DisableByName(steps []Filter, name, reason string) {
	for _, step := range steps {
		if step.Name() == name {
			step.Disable(reason)
		}
	}
}

// Run executes the supplied filters sequentially and returns the remaining candidates.
func Run(ctx context.Context, logger *zap.Logger, steps []Filter, v *marketplace.Candidates) (*marketplace.Candidates, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	for _, step := range steps {
		if !step.IsEnabled() {
			continue
		}
		if err := step.Validate(); err != nil {
			return nil, fmt.Errorf("%s: %w", step.Name(), err)
		}
	}

	for _, step := range steps {
		if !step.IsEnabled() {
			logger.Debug("filter disabled", zap.String("name", step.Name()))
			continue
		}

		next, info, err := step.Apply(ctx, v)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", step.Name(), err)
		}

		logger.Debug("filter step",
			zap.String("name", step.Name()),
			zap.Int("initial", info.Initial),
			zap.Int("dropped", info.Dropped),
			zap.Int("left", info.Left),
		)

		v = next
	}

	return v, nil
}

// Describe returns status entries for the provided filters.
func Describe(steps []Filter) []Status {
	statuses := make([]Status, 0, len(steps))
	for _, step := range steps {
		if reporter, ok := step.(statusProvider); ok {
			statuses = append(statuses, reporter.Status())
			continue
		}

		statuses = append(statuses, Status{
			Name:    step.Name(),
			Enabled: step.IsEnabled(),
		})
	}
	return statuses
}

// CandidatePool returns the default pipeline used before ranking candidates for a job.
// The completeness step is always present; exclusions are disabled when no ids are configured.
func CandidatePool(excluded []string) []Filter {
	steps := []Filter{
		NewRole(marketplace.RoleJobSeeker),
		NewCompletedPreferences(),
		NewExcludedCandidates(excluded),
	}
	if len(excluded) == 0 {
		DisableByName(steps, excludedCandidatesName, "no candidates configured")
	}
	return steps
}

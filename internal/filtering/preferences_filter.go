package filtering

import (
	"context"

	"github.com/spigell/hire-matcher/internal/marketplace"
)

type completedPreferencesFilter struct{}

// NewCompletedPreferences creates a filter that removes candidates without completed preferences.
func NewCompletedPreferences() Filter {
	return &completedPreferencesFilter{}
}

func (f *completedPreferencesFilter) Name() string { return "completed_preferences" }

// Disable is a no-op: ranking incomplete profiles is never allowed.
func (f *completedPreferencesFilter) Disable(string) {}

func (f *completedPreferencesFilter) IsEnabled() bool { return true }

func (f *completedPreferencesFilter) Validate() error { return nil }

func (f *completedPreferencesFilter) Apply(_ context.Context, v *marketplace.Candidates) (*marketplace.Candidates, Step, error) {
	initial := v.Len()
	excluded := v.Retain((*marketplace.Candidate).Eligible)

	return v, Step{Initial: initial, Dropped: len(excluded), Left: v.Len()}, nil
}

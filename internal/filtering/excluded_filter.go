package filtering

import (
	"context"
	"strconv"
	"strings"

	"github.com/spigell/hire-matcher/internal/marketplace"
)

const excludedCandidatesName = "excluded_candidates"

type excludedCandidatesFilter struct {
	enabled bool
	reason  string
	ids     []string
}

// NewExcludedCandidates creates a filter that removes candidates listed in the configuration.
func NewExcludedCandidates(ids []string) Filter {
	return &excludedCandidatesFilter{
		enabled: true,
		ids:     ids,
	}
}

func (f *excludedCandidatesFilter) Name() string { return excludedCandidatesName }

func (f *excludedCandidatesFilter) Disable(reason string) {
	f.enabled = false
	f.reason = reason
}

func (f *excludedCandidatesFilter) IsEnabled() bool { return f.enabled }

func (f *excludedCandidatesFilter) Validate() error { return nil }

func (f *excludedCandidatesFilter) Apply(_ context.Context, v *marketplace.Candidates) (*marketplace.Candidates, Step, error) {
	initial := v.Len()
	removed := v.Exclude(marketplace.CandidateIDField, f.ids)

	return v, Step{Initial: initial, Dropped: len(removed), Left: v.Len()}, nil
}

func (f *excludedCandidatesFilter) Status() Status {
	details := map[string]string{"count": strconv.Itoa(len(f.ids))}
	if len(f.ids) > 0 {
		details["ids"] = strings.Join(f.ids, ",")
	}
	return Status{Name: f.Name(), Enabled: f.enabled, Reason: f.reason, Details: details}
}

package filtering

import (
	"context"
	"fmt"
	"strings"

	"github.com/spigell/hire-matcher/internal/marketplace"
)

type roleFilter struct {
	role string
}

// NewRole creates a filter that keeps users with the given role only.
func NewRole(role string) Filter {
	return &roleFilter{role: role}
}

func (f *roleFilter) Name() string { return "role" }

func (f *roleFilter) Disable(string) {}

func (f *roleFilter) IsEnabled() bool { return true }

func (f *roleFilter) Validate() error {
	if strings.TrimSpace(f.role) == "" {
		return fmt.Errorf("role is required")
	}
	return nil
}

func (f *roleFilter) Apply(_ context.Context, v *marketplace.Candidates) (*marketplace.Candidates, Step, error) {
	initial := v.Len()
	excluded := v.Retain(func(c *marketplace.Candidate) bool {
		return c.GetStringField(marketplace.CandidateRoleField) == f.role
	})

	return v, Step{Initial: initial, Dropped: len(excluded), Left: v.Len()}, nil
}

func (f *roleFilter) Status() Status {
	return Status{Name: f.Name(), Enabled: true, Details: map[string]string{"role": f.role}}
}

package matching

import (
	"context"

	"github.com/spigell/hire-matcher/internal/marketplace"
)

// Store is everything the service reads and writes. Lookups of absent records
// return store.ErrNotFound.
type Store interface {
	User(ctx context.Context, id string) (*marketplace.User, error)
	UsersByRole(ctx context.Context, role string, limit int) ([]*marketplace.User, error)

	Job(ctx context.Context, id string) (*marketplace.Job, error)
	ActiveJobs(ctx context.Context, limit int) ([]*marketplace.Job, error)
	JobsByOwner(ctx context.Context, ownerID string) ([]*marketplace.Job, error)

	SeekerPreferences(ctx context.Context, userID string) (*marketplace.JobSeekerPreferences, error)
	SeekerPreferencesFor(ctx context.Context, userIDs []string) (map[string]*marketplace.JobSeekerPreferences, error)
	UpsertSeekerPreferences(ctx context.Context, p *marketplace.JobSeekerPreferences) error

	JobPreferences(ctx context.Context, jobID string) (*marketplace.StartupJobPreferences, error)
	UpsertJobPreferences(ctx context.Context, p *marketplace.StartupJobPreferences) error
}

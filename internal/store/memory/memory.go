// Package memory is an in-process store used for local runs, demos and tests.
package memory

import (
	"context"
	"sync"

	"github.com/spigell/hire-matcher/internal/marketplace"
	"github.com/spigell/hire-matcher/internal/store"
)

// Store keeps records in maps guarded by a mutex. Records are copied on the way in and out,
// and listings follow insertion order.
type Store struct {
	mu sync.RWMutex

	users     map[string]*marketplace.User
	userOrder []string
	jobs      map[string]*marketplace.Job
	jobOrder  []string

	seekerPrefs map[string]*marketplace.JobSeekerPreferences
	jobPrefs    map[string]*marketplace.StartupJobPreferences
}

func New() *Store {
	return &Store{
		users:       make(map[string]*marketplace.User),
		jobs:        make(map[string]*marketplace.Job),
		seekerPrefs: make(map[string]*marketplace.JobSeekerPreferences),
		jobPrefs:    make(map[string]*marketplace.StartupJobPreferences),
	}
}

// PutUser inserts or replaces a user.
func (s *Store) PutUser(u *marketplace.User) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[u.ID]; !ok {
		s.userOrder = append(s.userOrder, u.ID)
	}
	s.users[u.ID] = u.Clone()
}

// PutJob inserts or replaces a job posting.
func (s *Store) PutJob(j *marketplace.Job) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.jobs[j.ID]; !ok {
		s.jobOrder = append(s.jobOrder, j.ID)
	}
	s.jobs[j.ID] = j.Clone()
}

func (s *Store) User(_ context.Context, id string) (*marketplace.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	u, ok := s.users[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	return u.Clone(), nil
}

func (s *Store) UsersByRole(_ context.Context, role string, limit int) ([]*marketplace.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []*marketplace.User
	for _, id := range s.userOrder {
		if limit > 0 && len(out) == limit {
			break
		}
		if u := s.users[id]; u.Role == role {
			out = append(out, u.Clone())
		}
	}
	return out, nil
}

func (s *Store) Job(_ context.Context, id string) (*marketplace.Job, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	j, ok := s.jobs[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	return j.Clone(), nil
}

func (s *Store) ActiveJobs(_ context.Context, limit int) ([]*marketplace.Job, error) {
	return s.listJobs(limit, (*marketplace.Job).Active), nil
}

func (s *Store) JobsByOwner(_ context.Context, ownerID string) ([]*marketplace.Job, error) {
	return s.listJobs(0, func(j *marketplace.Job) bool { return j.PostedBy == ownerID }), nil
}

func (s *Store) listJobs(limit int, keep func(*marketplace.Job) bool) []*marketplace.Job {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []*marketplace.Job
	for _, id := range s.jobOrder {
		if limit > 0 && len(out) == limit {
			break
		}
		if j := s.jobs[id]; keep(j) {
			out = append(out, j.Clone())
		}
	}
	return out
}

func (s *Store) SeekerPreferences(_ context.Context, userID string) (*marketplace.JobSeekerPreferences, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.seekerPrefs[userID]
	if !ok {
		return nil, store.ErrNotFound
	}
	return p.Clone(), nil
}

func (s *Store) SeekerPreferencesFor(_ context.Context, userIDs []string) (map[string]*marketplace.JobSeekerPreferences, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make(map[string]*marketplace.JobSeekerPreferences, len(userIDs))
	for _, id := range userIDs {
		if p, ok := s.seekerPrefs[id]; ok {
			out[id] = p.Clone()
		}
	}
	return out, nil
}

func (s *Store) UpsertSeekerPreferences(_ context.Context, p *marketplace.JobSeekerPreferences) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.seekerPrefs[p.UserID] = p.Clone()
	return nil
}

func (s *Store) JobPreferences(_ context.Context, jobID string) (*marketplace.StartupJobPreferences, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.jobPrefs[jobID]
	if !ok {
		return nil, store.ErrNotFound
	}
	return p.Clone(), nil
}

func (s *Store) UpsertJobPreferences(_ context.Context, p *marketplace.StartupJobPreferences) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.jobPrefs[p.JobID] = p.Clone()
	return nil
}

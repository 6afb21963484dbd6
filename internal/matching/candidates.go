package matching

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"time"

	"go.uber.org/zap"

	"github.com/spigell/hire-matcher/internal/filtering"
	"github.com/spigell/hire-matcher/internal/logger"
	"github.com/spigell/hire-matcher/internal/marketplace"
	"github.com/spigell/hire-matcher/internal/scoring"
	"github.com/spigell/hire-matcher/internal/store"
)

const (
	candidateMatchesLimit = 50

	noCandidatesMessage = "No candidates with completed preferences found"
)

// CandidateRanking is the ranked candidate list for one job.
type CandidateRanking struct {
	TotalCandidates int                      `json:"total_candidates"`
	Matches         []scoring.CandidateMatch `json:"matches"`
	JobTitle        string                   `json:"job_title,omitempty"`
	Message         string                   `json:"message,omitempty"`
}

// RankCandidatePool sorts scored candidates by score, keeping input order on
// ties, and keeps the first 50.
func RankCandidatePool(matches []scoring.CandidateMatch) []scoring.CandidateMatch {
	ranked := slices.Clone(matches)
	slices.SortStableFunc(ranked, func(a, b scoring.CandidateMatch) int {
		return b.MatchScore - a.MatchScore
	})

	if len(ranked) > candidateMatchesLimit {
		ranked = ranked[:candidateMatchesLimit]
	}
	if ranked == nil {
		ranked = []scoring.CandidateMatch{}
	}

	return ranked
}

// RankCandidates scores the job seekers with completed preferences against a
// job posted by ownerID.
func (s *Service) RankCandidates(ctx context.Context, ownerID, jobID string) (*CandidateRanking, error) {
	log := logger.WithFields(s.logger, logger.JobFields(jobID, ownerID)...)

	job, err := s.ownedJob(ctx, ownerID, jobID)
	if err != nil {
		return nil, err
	}

	jobPrefs, err := s.store.JobPreferences(ctx, jobID)
	switch {
	case errors.Is(err, store.ErrNotFound):
		return nil, ErrJobPreferencesMissing
	case err != nil:
		return nil, fmt.Errorf("loading job preferences: %w", err)
	}

	pool, err := s.candidatePool(ctx)
	if err != nil {
		return nil, err
	}

	steps := filtering.CandidatePool(s.cfg.ExcludeCandidates)
	for _, status := range filtering.Describe(steps) {
		log.Debug("candidate filter",
			zap.String("filter", status.Name),
			zap.Bool("enabled", status.Enabled),
			zap.String("reason", status.Reason),
			zap.Any("details", status.Details),
		)
	}

	eligible, err := filtering.Run(ctx, log, steps, pool)
	if err != nil {
		return nil, fmt.Errorf("filtering candidates: %w", err)
	}

	if eligible.Len() == 0 {
		log.Info("no eligible candidates", zap.Int("pool", len(pool.Items)))
		return &CandidateRanking{
			Matches: []scoring.CandidateMatch{},
			Message: noCandidatesMessage,
		}, nil
	}

	started := time.Now()
	matches, err := scoreAll(ctx, s.cfg.Workers, eligible.Items, func(c *marketplace.Candidate) scoring.CandidateMatch {
		return scoring.ScoreCandidate(&c.User, c.Preferences, job, jobPrefs)
	})
	if err != nil {
		return nil, err
	}
	s.observe(pipelineCandidates, started, len(matches))

	ranking := &CandidateRanking{
		TotalCandidates: len(matches),
		Matches:         RankCandidatePool(matches),
		JobTitle:        job.Title,
	}

	log.Info("ranked candidates",
		zap.Int("total", ranking.TotalCandidates),
		zap.Int("returned", len(ranking.Matches)),
	)

	return ranking, nil
}

// ownedJob loads a job and hides it from everyone but its poster.
func (s *Service) ownedJob(ctx context.Context, ownerID, jobID string) (*marketplace.Job, error) {
	job, err := s.store.Job(ctx, jobID)
	if err != nil {
		return nil, fmt.Errorf("loading job: %w", notFound(err, ErrJobNotFound))
	}
	if job.PostedBy != ownerID {
		return nil, ErrJobNotFound
	}
	return job, nil
}

func (s *Service) candidatePool(ctx context.Context) (*marketplace.Candidates, error) {
	users, err := s.store.UsersByRole(ctx, marketplace.RoleJobSeeker, s.cfg.CandidatePoolLimit)
	if err != nil {
		return nil, fmt.Errorf("loading job seekers: %w", err)
	}

	ids := make([]string, 0, len(users))
	for _, user := range users {
		ids = append(ids, user.ID)
	}

	prefs, err := s.store.SeekerPreferencesFor(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("loading candidate preferences: %w", err)
	}

	items := make([]*marketplace.Candidate, 0, len(users))
	for _, user := range users {
		items = append(items, &marketplace.Candidate{User: *user, Preferences: prefs[user.ID]})
	}

	return marketplace.NewCandidates(items...), nil
}

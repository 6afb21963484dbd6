package matching

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"time"

	"go.uber.org/zap"

	"github.com/spigell/hire-matcher/internal/ai"
	"github.com/spigell/hire-matcher/internal/logger"
	"github.com/spigell/hire-matcher/internal/marketplace"
	"github.com/spigell/hire-matcher/internal/scoring"
	"github.com/spigell/hire-matcher/internal/store"
)

const (
	bestMatchesLimit    = 10
	goodMatchesLimit    = 10
	stretchMatchesLimit = 5
	narratedMatches     = 3

	noActiveJobsMessage = "No active jobs available right now. Check back soon!"
)

// JobRecommendations is the ranked and bucketed list of jobs for one seeker.
type JobRecommendations struct {
	TotalMatches   int                `json:"total_matches"`
	BestMatches    []scoring.JobMatch `json:"best_matches"`
	GoodMatches    []scoring.JobMatch `json:"good_matches"`
	StretchMatches []scoring.JobMatch `json:"stretch_matches"`
	AIInsights     string             `json:"ai_insights"`

	ranked []scoring.JobMatch
}

// BuildJobRecommendations sorts matches by score, keeping input order on ties,
// and partitions them by category. TotalMatches counts every match, not only
// the ones kept after truncation.
func BuildJobRecommendations(matches []scoring.JobMatch) *JobRecommendations {
	ranked := slices.Clone(matches)
	slices.SortStableFunc(ranked, func(a, b scoring.JobMatch) int {
		return b.MatchScore - a.MatchScore
	})

	rec := &JobRecommendations{
		TotalMatches:   len(ranked),
		BestMatches:    []scoring.JobMatch{},
		GoodMatches:    []scoring.JobMatch{},
		StretchMatches: []scoring.JobMatch{},
		ranked:         ranked,
	}

	for _, match := range ranked {
		switch match.MatchCategory {
		case scoring.CategoryBest:
			if len(rec.BestMatches) < bestMatchesLimit {
				rec.BestMatches = append(rec.BestMatches, match)
			}
		case scoring.CategoryGood:
			if len(rec.GoodMatches) < goodMatchesLimit {
				rec.GoodMatches = append(rec.GoodMatches, match)
			}
		default:
			if len(rec.StretchMatches) < stretchMatchesLimit {
				rec.StretchMatches = append(rec.StretchMatches, match)
			}
		}
	}

	return rec
}

// Top returns up to n matches of the full ranking.
func (r *JobRecommendations) Top(n int) []scoring.JobMatch {
	return r.ranked[:min(n, len(r.ranked))]
}

// RecommendJobs ranks active jobs for a seeker with completed preferences.
// limit caps how many active jobs are considered; non-positive uses the configured default.
func (s *Service) RecommendJobs(ctx context.Context, seekerID string, limit int) (*JobRecommendations, error) {
	log := logger.WithFields(s.logger, logger.SeekerFields(seekerID)...)

	prefs, err := s.store.SeekerPreferences(ctx, seekerID)
	switch {
	case errors.Is(err, store.ErrNotFound):
		return nil, ErrPreferencesIncomplete
	case err != nil:
		return nil, fmt.Errorf("loading preferences: %w", err)
	case !prefs.Completed:
		return nil, ErrPreferencesIncomplete
	}

	user, err := s.store.User(ctx, seekerID)
	if err != nil {
		return nil, fmt.Errorf("loading user: %w", notFound(err, ErrUserNotFound))
	}

	if limit <= 0 {
		limit = s.cfg.JobsLimit
	}

	jobs, err := s.store.ActiveJobs(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("loading active jobs: %w", err)
	}

	if len(jobs) == 0 {
		log.Info("no active jobs to recommend")
		return &JobRecommendations{
			BestMatches:    []scoring.JobMatch{},
			GoodMatches:    []scoring.JobMatch{},
			StretchMatches: []scoring.JobMatch{},
			AIInsights:     noActiveJobsMessage,
		}, nil
	}

	started := time.Now()
	matches, err := scoreAll(ctx, s.cfg.Workers, jobs, func(job *marketplace.Job) scoring.JobMatch {
		return scoring.ScoreJob(job, prefs, user)
	})
	if err != nil {
		return nil, err
	}
	s.observe(pipelineJobs, started, len(matches))

	rec := BuildJobRecommendations(matches)
	rec.AIInsights = s.narrate(ctx, recommendationRequest(user, prefs, rec.Top(narratedMatches)))

	log.Info("recommended jobs",
		zap.Int("total", rec.TotalMatches),
		zap.Int("best", len(rec.BestMatches)),
		zap.Int("good", len(rec.GoodMatches)),
		zap.Int("stretch", len(rec.StretchMatches)),
	)

	return rec, nil
}

func recommendationRequest(user *marketplace.User, prefs *marketplace.JobSeekerPreferences, top []scoring.JobMatch) ai.InsightRequest {
	summaries := make([]ai.MatchSummary, 0, len(top))
	for _, match := range top {
		summaries = append(summaries, ai.MatchSummary{
			Title:   match.JobTitle,
			Company: match.Company,
			Score:   match.MatchScore,
		})
	}

	return ai.InsightRequest{
		Audience:        ai.AudienceRecommendations,
		Name:            user.FullName,
		ExperienceLevel: string(prefs.ExperienceLevel),
		Skills:          seekerSkills(user, prefs),
		CareerGoals:     prefs.CareerGoals,
		WorkTypes:       prefs.WorkTypes,
		TopMatches:      summaries,
	}
}

func seekerSkills(user *marketplace.User, prefs *marketplace.JobSeekerPreferences) []string {
	skills := slices.Clone(user.Skills)
	if prefs != nil {
		skills = append(skills, prefs.HardSkills...)
	}
	return skills
}

package matching

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/spigell/hire-matcher/internal/ai"
	"github.com/spigell/hire-matcher/internal/marketplace"
	"github.com/spigell/hire-matcher/internal/store"
)

const otherRolesInsight = "AI insights available for job seekers and startups"

// Insight writes an on-demand career or hiring insight for the user.
// Narrator failures are returned as ErrNarratorUnavailable.
func (s *Service) Insight(ctx context.Context, userID string) (string, error) {
	user, err := s.store.User(ctx, userID)
	if err != nil {
		return "", fmt.Errorf("loading user: %w", notFound(err, ErrUserNotFound))
	}

	var req ai.InsightRequest
	switch user.Role {
	case marketplace.RoleJobSeeker:
		req, err = s.careerRequest(ctx, user)
	case marketplace.RoleStartup:
		req, err = s.hiringRequest(ctx, user)
	default:
		return otherRolesInsight, nil
	}
	if err != nil {
		return "", err
	}

	text, err := s.generate(ctx, req)
	if err == nil && strings.TrimSpace(text) == "" {
		err = errors.New("empty narrative")
	}
	if err != nil {
		s.logger.Warn("insight generation failed",
			zap.String("user_id", userID),
			zap.String("audience", string(req.Audience)),
			zap.Error(err),
		)
		return "", fmt.Errorf("%w: %w", ErrNarratorUnavailable, err)
	}

	return strings.TrimSpace(text), nil
}

func (s *Service) careerRequest(ctx context.Context, user *marketplace.User) (ai.InsightRequest, error) {
	req := ai.InsightRequest{
		Audience: ai.AudienceCareer,
		Name:     user.FullName,
		Skills:   user.Skills,
	}

	prefs, err := s.store.SeekerPreferences(ctx, user.ID)
	switch {
	case errors.Is(err, store.ErrNotFound):
		return req, nil
	case err != nil:
		return req, fmt.Errorf("loading preferences: %w", err)
	}

	req.ExperienceLevel = string(prefs.ExperienceLevel)
	req.Skills = seekerSkills(user, prefs)
	req.CareerGoals = prefs.CareerGoals
	req.WorkTypes = prefs.WorkTypes
	return req, nil
}

func (s *Service) hiringRequest(ctx context.Context, user *marketplace.User) (ai.InsightRequest, error) {
	jobs, err := s.store.JobsByOwner(ctx, user.ID)
	if err != nil {
		return ai.InsightRequest{}, fmt.Errorf("loading posted jobs: %w", err)
	}

	active := 0
	for _, job := range jobs {
		if job.Active() {
			active++
		}
	}

	return ai.InsightRequest{
		Audience:   ai.AudienceHiring,
		Name:       user.FullName,
		Company:    user.Company,
		ActiveJobs: active,
	}, nil
}

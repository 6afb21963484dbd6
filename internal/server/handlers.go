package server

import (
	"context"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v3"

	"github.com/spigell/hire-matcher/internal/marketplace"
	"github.com/spigell/hire-matcher/internal/matching"
)

// Matcher is the service surface the HTTP layer needs.
type Matcher interface {
	RecommendJobs(ctx context.Context, seekerID string, limit int) (*matching.JobRecommendations, error)
	RankCandidates(ctx context.Context, ownerID, jobID string) (*matching.CandidateRanking, error)
	SaveSeekerPreferences(ctx context.Context, userID string, prefs *marketplace.JobSeekerPreferences) (*marketplace.JobSeekerPreferences, error)
	SeekerPreferences(ctx context.Context, userID string) (*marketplace.JobSeekerPreferences, bool, error)
	SaveJobPreferences(ctx context.Context, ownerID, jobID string, prefs *marketplace.StartupJobPreferences) (*marketplace.StartupJobPreferences, error)
	JobPreferences(ctx context.Context, jobID string) (*marketplace.StartupJobPreferences, bool, error)
	Insight(ctx context.Context, userID string) (string, error)
}

type handler struct {
	matcher Matcher
}

func (h *handler) health(c fiber.Ctx) error {
	return ok(c, "", fiber.Map{"status": "healthy"})
}

func (h *handler) saveSeekerPreferences(c fiber.Ctx) error {
	var prefs marketplace.JobSeekerPreferences
	if err := c.Bind().Body(&prefs); err != nil {
		return NewAppError(fiber.StatusBadRequest, "Invalid request body", err)
	}

	saved, err := h.matcher.SaveSeekerPreferences(c.Context(), identity(c).UserID, &prefs)
	if err != nil {
		return err
	}

	return ok(c, "Preferences saved successfully", fiber.Map{
		"completed":   saved.Completed,
		"preferences": saved,
	})
}

func (h *handler) seekerPreferences(c fiber.Ctx) error {
	prefs, exists, err := h.matcher.SeekerPreferences(c.Context(), identity(c).UserID)
	if err != nil {
		return err
	}
	return ok(c, "", fiber.Map{"exists": exists, "preferences": prefs})
}

func (h *handler) jobMatches(c fiber.Ctx) error {
	limit, err := queryLimit(c)
	if err != nil {
		return err
	}

	rec, err := h.matcher.RecommendJobs(c.Context(), identity(c).UserID, limit)
	if err != nil {
		return err
	}
	return ok(c, "", rec)
}

func (h *handler) saveJobPreferences(c fiber.Ctx) error {
	var prefs marketplace.StartupJobPreferences
	if err := c.Bind().Body(&prefs); err != nil {
		return NewAppError(fiber.StatusBadRequest, "Invalid request body", err)
	}

	saved, err := h.matcher.SaveJobPreferences(c.Context(), identity(c).UserID, c.Params("job_id"), &prefs)
	if err != nil {
		return err
	}
	return ok(c, "Job preferences saved successfully", fiber.Map{"preferences": saved})
}

func (h *handler) jobPreferences(c fiber.Ctx) error {
	prefs, exists, err := h.matcher.JobPreferences(c.Context(), c.Params("job_id"))
	if err != nil {
		return err
	}
	return ok(c, "", fiber.Map{"exists": exists, "preferences": prefs})
}

func (h *handler) candidateMatches(c fiber.Ctx) error {
	ranking, err := h.matcher.RankCandidates(c.Context(), identity(c).UserID, c.Params("job_id"))
	if err != nil {
		return err
	}
	return ok(c, "", ranking)
}

func (h *handler) generateInsights(c fiber.Ctx) error {
	text, err := h.matcher.Insight(c.Context(), identity(c).UserID)
	if err != nil {
		return err
	}
	return ok(c, "", fiber.Map{"insight": text})
}

// queryLimit parses ?limit=N. Absent means the service default.
func queryLimit(c fiber.Ctx) (int, error) {
	raw := strings.TrimSpace(c.Query("limit"))
	if raw == "" {
		return 0, nil
	}

	limit, err := strconv.Atoi(raw)
	if err != nil || limit < 1 {
		return 0, NewAppError(fiber.StatusBadRequest, "limit must be a positive integer", err)
	}
	return limit, nil
}

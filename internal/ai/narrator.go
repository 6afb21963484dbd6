package ai

import (
	"context"
	"errors"
	"strings"
)

// Audience selects which kind of insight a narrator writes.
type Audience string

const (
	// AudienceRecommendations explains a job seeker's top job matches.
	AudienceRecommendations Audience = "recommendations"
	// AudienceCareer is an on-demand career insight for a job seeker.
	AudienceCareer Audience = "career"
	// AudienceHiring is an on-demand hiring insight for a startup.
	AudienceHiring Audience = "hiring"
)

const (
	FallbackDisabled    = "Complete your profile to get personalized AI insights!"
	FallbackUnavailable = "AI insights temporarily unavailable"
)

// ErrDisabled is returned by narrators that are switched off by configuration.
var ErrDisabled = errors.New("ai narrator is disabled")

// MatchSummary is the part of a job match a narrator is allowed to see.
type MatchSummary struct {
	Title   string `json:"title"`
	Company string `json:"company"`
	Score   int    `json:"score"`
}

// InsightRequest carries everything a narrator needs to write one insight.
type InsightRequest struct {
	Audience        Audience       `json:"audience"`
	Name            string         `json:"name"`
	Company         string         `json:"company,omitempty"`
	ExperienceLevel string         `json:"experience_level,omitempty"`
	Skills          []string       `json:"skills,omitempty"`
	CareerGoals     []string       `json:"career_goals,omitempty"`
	WorkTypes       []string       `json:"work_types,omitempty"`
	TopMatches      []MatchSummary `json:"top_matches,omitempty"`
	ActiveJobs      int            `json:"active_jobs,omitempty"`
}

// Narrator turns structured match data into free text.
type Narrator interface {
	Narrate(ctx context.Context, req InsightRequest) (string, error)
}

// Disabled is the narrator used when no AI provider is configured.
type Disabled struct{}

func (Disabled) Narrate(context.Context, InsightRequest) (string, error) {
	return "", ErrDisabled
}

// Fallback picks the text to show for a narration outcome. It never fails.
func Fallback(narrative string, err error) string {
	switch {
	case errors.Is(err, ErrDisabled):
		return FallbackDisabled
	case err != nil:
		return FallbackUnavailable
	case strings.TrimSpace(narrative) == "":
		return FallbackUnavailable
	default:
		return strings.TrimSpace(narrative)
	}
}

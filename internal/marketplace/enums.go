package marketplace

import "strings"

// ExperienceLevel is the self-reported (seeker) or desired (startup) seniority.
type ExperienceLevel string

const (
	ExperienceStudent ExperienceLevel = "student"
	ExperienceFresher ExperienceLevel = "fresher"
	Experience1To3    ExperienceLevel = "1-3yrs"
	Experience3To5    ExperienceLevel = "3-5yrs"
	Experience5Plus   ExperienceLevel = "5+yrs"
)

var experienceRanks = map[ExperienceLevel]int{
	ExperienceStudent: 0,
	ExperienceFresher: 1,
	Experience1To3:    2,
	Experience3To5:    3,
	Experience5Plus:   4,
}

// Rank returns the ordinal position of the level. Unknown levels rank as fresher.
func (l ExperienceLevel) Rank() int {
	if rank, ok := experienceRanks[l]; ok {
		return rank
	}
	return experienceRanks[ExperienceFresher]
}

func (l ExperienceLevel) Valid() bool {
	_, ok := experienceRanks[l]
	return ok
}

// Availability describes when a seeker can join.
type Availability string

const (
	AvailableImmediately Availability = "immediate"
	AvailableWithinDays  Availability = "within_x_days"
)

func (a Availability) Valid() bool {
	return a == AvailableImmediately || a == AvailableWithinDays
}

// StartupStage is the maturity of the company behind a job posting.
type StartupStage string

const (
	StageIdea   StartupStage = "idea"
	StageMVP    StartupStage = "mvp"
	StageEarly  StartupStage = "early"
	StageGrowth StartupStage = "growth"
	StageScale  StartupStage = "scale"
)

func (s StartupStage) Valid() bool {
	switch s {
	case StageIdea, StageMVP, StageEarly, StageGrowth, StageScale:
		return true
	default:
		return false
	}
}

// Early reports whether the stage favours learning-focused hires.
func (s StartupStage) Early() bool {
	return s == StageIdea || s == StageMVP || s == StageEarly
}

// Mature reports whether the stage favours growth-focused hires.
func (s StartupStage) Mature() bool {
	return s == StageGrowth || s == StageScale
}

const (
	RoleJobSeeker = "job_seeker"
	RoleStartup   = "startup"
	RoleMentor    = "mentor"
	RoleAdmin     = "admin"
)

const (
	JobStatusActive   = "active"
	JobStatusInactive = "inactive"
)

const (
	WorkTypeRemote = "remote"
	WorkTypeHybrid = "hybrid"
	WorkTypeOnsite = "onsite"
)

const (
	WorkingHoursFixed    = "fixed"
	WorkingHoursFlexible = "flexible"
)

// normalizeList lowercases and trims every entry, dropping empty ones.
func normalizeList(values []string) []string {
	if len(values) == 0 {
		return values
	}

	out := make([]string, 0, len(values))
	for _, v := range values {
		v = strings.ToLower(strings.TrimSpace(v))
		if v == "" {
			continue
		}
		out = append(out, v)
	}
	return out
}

// trimList trims every entry and drops empty ones, preserving case.
func trimList(values []string) []string {
	if len(values) == 0 {
		return values
	}

	out := make([]string, 0, len(values))
	for _, v := range values {
		v = strings.TrimSpace(v)
		if v == "" {
			continue
		}
		out = append(out, v)
	}
	return out
}

func normalizeToken(v string) string {
	return strings.ToLower(strings.TrimSpace(v))
}

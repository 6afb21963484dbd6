package scoring

import (
	"fmt"
	"slices"
	"strings"

	"github.com/spigell/hire-matcher/internal/marketplace"
)

// Candidate match weights in points.
const (
	mustHaveFull        = 40
	mustHavePartial     = 25
	mustHaveWeak        = 10
	bonusPerSkill       = 2
	bonusCap            = 10
	experienceExact     = 30
	experienceClose     = 20
	availabilityFull    = 15
	availabilityRelax   = 10
	workPreference      = 10
	careerGoalAlignment = 5
)

const (
	goalLearning = "learning"
	goalGrowth   = "growth"
)

// CandidateMatch is the compatibility of one job seeker with one job posting.
type CandidateMatch struct {
	UserID             string   `json:"user_id"`
	UserName           string   `json:"user_name"`
	MatchScore         int      `json:"match_score"`
	Strengths          []string `json:"strengths"`
	Gaps               []string `json:"gaps"`
	SkillMatch         int      `json:"skill_match"`
	ExperienceMatch    int      `json:"experience_match"`
	AvailabilityMatch  int      `json:"availability_match"`
	SuggestedQuestions []string `json:"suggested_questions"`
}

// ScoreCandidate computes how well the candidate fits the job and its hiring preferences.
// candidatePrefs may be nil; dimensions that depend on it are then skipped.
func ScoreCandidate(
	candidate *marketplace.User,
	candidatePrefs *marketplace.JobSeekerPreferences,
	job *marketplace.Job,
	jobPrefs *marketplace.StartupJobPreferences,
) CandidateMatch {
	name := strings.TrimSpace(candidate.FullName)
	if name == "" {
		name = "Unknown"
	}

	match := CandidateMatch{
		UserID:    candidate.ID,
		UserName:  name,
		Strengths: []string{},
		Gaps:      []string{},
	}

	var hardSkills []string
	if candidatePrefs != nil {
		hardSkills = candidatePrefs.HardSkills
	}
	skills := newSkillSet(candidate.Skills, hardSkills)

	total := 0
	total += scoreMustHave(&match, skills, newSkillSet(jobPrefs.MustHaveSkills))
	total += scoreGoodToHave(&match, skills, newSkillSet(jobPrefs.GoodToHaveSkills))
	total += scoreCandidateExperience(&match, candidatePrefs, jobPrefs)

	if candidatePrefs != nil {
		total += scoreAvailability(&match, candidatePrefs, jobPrefs)
		total += scoreWorkPreference(&match, candidatePrefs, job)
		total += scoreCareerGoals(&match, candidatePrefs, jobPrefs)
	}

	match.MatchScore = min(total, maxScore)
	match.SuggestedQuestions = InterviewQuestions(job, match.Strengths, match.Gaps)

	return match
}

func scoreMustHave(match *CandidateMatch, skills, mustHave *skillSet) int {
	if mustHave.Len() == 0 {
		return 0
	}

	percent, matched := overlapPercent(skills, mustHave)
	match.SkillMatch = percent

	switch {
	case percent >= 80:
		match.Strengths = append(match.Strengths, fmt.Sprintf("Has %d/%d required skills", len(matched), mustHave.Len()))
		return mustHaveFull
	case percent >= 50:
		match.Strengths = append(match.Strengths, fmt.Sprintf("Has most required skills (%d%%)", percent))
		match.Gaps = append(match.Gaps, "Missing some required skills")
		return mustHavePartial
	default:
		match.Gaps = append(match.Gaps, "Lacks several required skills")
		return mustHaveWeak
	}
}

func scoreGoodToHave(match *CandidateMatch, skills, goodToHave *skillSet) int {
	matched := skills.Intersect(goodToHave)
	if len(matched) == 0 {
		return 0
	}

	listed := matched[:min(len(matched), 3)]
	match.Strengths = append(match.Strengths, "Has bonus skills: "+strings.Join(listed, ", "))

	return min(bonusCap, bonusPerSkill*len(matched))
}

func scoreCandidateExperience(match *CandidateMatch, candidatePrefs *marketplace.JobSeekerPreferences, jobPrefs *marketplace.StartupJobPreferences) int {
	level := marketplace.ExperienceFresher
	if candidatePrefs != nil && candidatePrefs.ExperienceLevel != "" {
		level = candidatePrefs.ExperienceLevel
	}

	have, want := level.Rank(), jobPrefs.IdealExperience.Rank()
	distance := have - want
	if distance < 0 {
		distance = -distance
	}

	switch {
	case distance == 0:
		match.ExperienceMatch = 100
		match.Strengths = append(match.Strengths, fmt.Sprintf("Perfect experience match (%s)", level))
		return experienceExact
	case distance == 1:
		match.ExperienceMatch = 70
		match.Strengths = append(match.Strengths, "Close experience match")
		return experienceClose
	default:
		match.ExperienceMatch = 40
		if have < want {
			match.Gaps = append(match.Gaps, "Less experience than ideal")
		} else {
			match.Gaps = append(match.Gaps, "More experience than typical for role")
		}
		return 0
	}
}

func scoreAvailability(match *CandidateMatch, candidatePrefs *marketplace.JobSeekerPreferences, jobPrefs *marketplace.StartupJobPreferences) int {
	immediate := candidatePrefs.Availability == "" || candidatePrefs.Availability == marketplace.AvailableImmediately

	switch {
	case !jobPrefs.ImmediateJoiner:
		match.AvailabilityMatch = 70
		return availabilityRelax
	case immediate:
		match.AvailabilityMatch = 100
		match.Strengths = append(match.Strengths, "Available immediately")
		return availabilityFull
	default:
		match.AvailabilityMatch = 30
		match.Gaps = append(match.Gaps, "Not immediately available")
		return 0
	}
}

func scoreWorkPreference(match *CandidateMatch, candidatePrefs *marketplace.JobSeekerPreferences, job *marketplace.Job) int {
	location := strings.ToLower(job.Location)
	workTypes := lowerAll(candidatePrefs.WorkTypes)

	remote := strings.Contains(location, marketplace.WorkTypeRemote) && slices.Contains(workTypes, marketplace.WorkTypeRemote)
	hybrid := strings.Contains(location, marketplace.WorkTypeHybrid) && slices.Contains(workTypes, marketplace.WorkTypeHybrid)
	if !remote && !hybrid {
		return 0
	}

	match.Strengths = append(match.Strengths, "Work preference aligned")
	return workPreference
}

func scoreCareerGoals(match *CandidateMatch, candidatePrefs *marketplace.JobSeekerPreferences, jobPrefs *marketplace.StartupJobPreferences) int {
	stage := jobPrefs.StartupStage
	if stage == "" {
		return 0
	}

	aligned := (hasGoal(candidatePrefs.CareerGoals, goalLearning) && stage.Early()) ||
		(hasGoal(candidatePrefs.CareerGoals, goalGrowth) && stage.Mature())
	if !aligned {
		return 0
	}

	match.Strengths = append(match.Strengths, "Career goals match startup stage")
	return careerGoalAlignment
}

// hasGoal reports exact membership; "learning-focused" does not count as "learning".
func hasGoal(goals []string, goal string) bool {
	for _, g := range goals {
		if strings.ToLower(strings.TrimSpace(g)) == goal {
			return true
		}
	}
	return false
}

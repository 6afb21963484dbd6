package scoring

import (
	"fmt"
	"slices"
	"strings"

	"github.com/spigell/hire-matcher/internal/marketplace"
)

// Category is the coarse bucket a job match falls into.
type Category string

const (
	CategoryBest    Category = "best"
	CategoryGood    Category = "good"
	CategoryStretch Category = "stretch"
)

const (
	maxScore = 100

	bestThreshold = 75
	goodThreshold = 50
)

// Job match weights in points.
const (
	skillWeight         = 30
	jobTypeWeight       = 15
	remoteWeight        = 15
	hybridWeight        = 12
	locationWeight      = 10
	salaryFullWeight    = 20
	salaryCloseWeight   = 15
	experienceFullScore = 20
	experienceDefault   = 10
)

// CategoryFor buckets a score.
func CategoryFor(score int) Category {
	switch {
	case score >= bestThreshold:
		return CategoryBest
	case score >= goodThreshold:
		return CategoryGood
	default:
		return CategoryStretch
	}
}

// JobMatch is the compatibility of one job with one job seeker.
// Sub-scores are per-dimension confidences in 0..100, not the points behind MatchScore.
type JobMatch struct {
	JobID           string   `json:"job_id"`
	JobTitle        string   `json:"job_title"`
	Company         string   `json:"company"`
	MatchScore      int      `json:"match_score"`
	MatchCategory   Category `json:"match_category"`
	Reasons         []string `json:"reasons"`
	SkillMatch      int      `json:"skill_match"`
	SalaryMatch     int      `json:"salary_match"`
	LocationMatch   int      `json:"location_match"`
	ExperienceMatch int      `json:"experience_match"`
}

// ScoreJob computes how well job fits the seeker described by prefs and user.
// It is pure: identical inputs produce identical output.
func ScoreJob(job *marketplace.Job, prefs *marketplace.JobSeekerPreferences, user *marketplace.User) JobMatch {
	match := JobMatch{
		JobID:    job.ID,
		JobTitle: job.Title,
		Company:  job.Company,
		Reasons:  []string{},
	}

	var userSkills []string
	if user != nil {
		userSkills = user.Skills
	}

	total := 0
	total += scoreJobSkills(&match, newSkillSet(prefs.HardSkills, userSkills), newSkillSet(job.Requirements))
	total += scoreJobType(&match, job, prefs)
	total += scoreWorkType(&match, job, prefs)
	total += scoreSalary(&match, job, prefs)
	total += scoreJobExperience(&match, job, prefs)

	match.MatchCategory = CategoryFor(total)
	match.MatchScore = min(total, maxScore)

	return match
}

func scoreJobSkills(match *JobMatch, seeker, requirements *skillSet) int {
	if requirements.Len() == 0 || seeker.Len() == 0 {
		return 0
	}

	percent, _ := overlapPercent(seeker, requirements)
	match.SkillMatch = percent

	switch {
	case percent >= 80:
		match.Reasons = append(match.Reasons, fmt.Sprintf("✅ Excellent skill match (%d%%)", percent))
	case percent >= 50:
		match.Reasons = append(match.Reasons, fmt.Sprintf("✅ Good skill match (%d%%)", percent))
	default:
		match.Reasons = append(match.Reasons, fmt.Sprintf("⚠️ Partial skill match (%d%%)", percent))
	}

	// round half up
	return (percent*skillWeight + 50) / 100
}

func scoreJobType(match *JobMatch, job *marketplace.Job, prefs *marketplace.JobSeekerPreferences) int {
	jobType := strings.ToLower(strings.TrimSpace(job.JobType))
	if jobType == "" {
		return 0
	}

	for _, wanted := range prefs.JobTypes {
		if strings.ToLower(strings.TrimSpace(wanted)) == jobType {
			match.Reasons = append(match.Reasons, fmt.Sprintf("✅ Job type matches (%s)", job.JobType))
			return jobTypeWeight
		}
	}
	return 0
}

// scoreWorkType checks remote, then hybrid, then preferred locations; the first hit wins.
func scoreWorkType(match *JobMatch, job *marketplace.Job, prefs *marketplace.JobSeekerPreferences) int {
	location := strings.ToLower(job.Location)
	workTypes := lowerAll(prefs.WorkTypes)

	switch {
	case strings.Contains(location, marketplace.WorkTypeRemote) && slices.Contains(workTypes, marketplace.WorkTypeRemote):
		match.LocationMatch = 100
		match.Reasons = append(match.Reasons, "✅ Remote work preference matched")
		return remoteWeight
	case strings.Contains(location, marketplace.WorkTypeHybrid) && slices.Contains(workTypes, marketplace.WorkTypeHybrid):
		match.LocationMatch = 80
		match.Reasons = append(match.Reasons, "✅ Hybrid work preference matched")
		return hybridWeight
	}

	for _, preferred := range prefs.PreferredLocations {
		preferred = strings.ToLower(strings.TrimSpace(preferred))
		if preferred != "" && strings.Contains(location, preferred) {
			match.LocationMatch = 70
			match.Reasons = append(match.Reasons, "✅ Location preference matched")
			return locationWeight
		}
	}

	return 0
}

func scoreSalary(match *JobMatch, job *marketplace.Job, prefs *marketplace.JobSeekerPreferences) int {
	if prefs.SalaryMin == nil || *prefs.SalaryMin <= 0 || strings.TrimSpace(job.SalaryRange) == "" {
		return 0
	}

	salary, ok := ParseSalaryRange(job.SalaryRange)
	if !ok {
		return 0
	}

	minimum := *prefs.SalaryMin
	withinMax := prefs.SalaryMax == nil || salary.Average <= *prefs.SalaryMax

	switch {
	case minimum <= salary.Average && withinMax:
		match.SalaryMatch = 100
		match.Reasons = append(match.Reasons, "✅ Salary expectations aligned")
		return salaryFullWeight
	case float64(salary.Average) >= 0.8*float64(minimum):
		match.SalaryMatch = 75
		match.Reasons = append(match.Reasons, "✅ Salary close to expectations")
		return salaryCloseWeight
	default:
		match.SalaryMatch = 50
		match.Reasons = append(match.Reasons, "⚠️ Salary below expectations")
		return 0
	}
}

// scoreJobExperience is a keyword heuristic over the description and requirements.
// Only the entry-level and 1-3 years patterns earn full credit; everything else gets the default.
func scoreJobExperience(match *JobMatch, job *marketplace.Job, prefs *marketplace.JobSeekerPreferences) int {
	text := strings.ToLower(job.Description + " " + strings.Join(job.Requirements, " "))
	level := prefs.ExperienceLevel

	entryLevel := strings.Contains(text, "fresher") || strings.Contains(text, "intern")
	juniorLevel := strings.Contains(text, "1-3") || strings.Contains(text, "1 to 3")

	switch {
	case entryLevel && (level == marketplace.ExperienceStudent || level == marketplace.ExperienceFresher),
		juniorLevel && (level == marketplace.ExperienceFresher || level == marketplace.Experience1To3):
		match.ExperienceMatch = 100
		match.Reasons = append(match.Reasons, "✅ Experience level perfect match")
		return experienceFullScore
	default:
		match.ExperienceMatch = 50
		return experienceDefault
	}
}

func lowerAll(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		out = append(out, strings.ToLower(strings.TrimSpace(v)))
	}
	return out
}

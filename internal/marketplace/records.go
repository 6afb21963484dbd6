package marketplace

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrInvalid is wrapped by every validation failure of a marketplace record.
var ErrInvalid = errors.New("invalid record")

// User is the identity record of a marketplace participant.
type User struct {
	ID       string   `json:"id" bson:"id" mapstructure:"id"`
	FullName string   `json:"full_name" bson:"full_name" mapstructure:"full_name"`
	Role     string   `json:"role" bson:"role" mapstructure:"role"`
	Skills   []string `json:"skills" bson:"skills" mapstructure:"skills"`
	Company  string   `json:"company,omitempty" bson:"company,omitempty" mapstructure:"company"`
}

func (u *User) Normalize() {
	u.ID = trimToken(u.ID)
	u.Role = normalizeToken(u.Role)
	u.Skills = trimList(u.Skills)
}

func (u *User) Validate() error {
	if u.ID == "" {
		return fmt.Errorf("%w: user id is required", ErrInvalid)
	}
	return nil
}

// Job is a posting published by a startup.
type Job struct {
	ID           string   `json:"id" bson:"id" mapstructure:"id"`
	Title        string   `json:"title" bson:"title" mapstructure:"title"`
	Company      string   `json:"company" bson:"company" mapstructure:"company"`
	Description  string   `json:"description" bson:"description" mapstructure:"description"`
	Requirements []string `json:"requirements" bson:"requirements" mapstructure:"requirements"`
	Location     string   `json:"location" bson:"location" mapstructure:"location"`
	JobType      string   `json:"job_type" bson:"job_type" mapstructure:"job_type"`
	SalaryRange  string   `json:"salary_range,omitempty" bson:"salary_range,omitempty" mapstructure:"salary_range"`
	PostedBy     string   `json:"posted_by" bson:"posted_by" mapstructure:"posted_by"`
	CreatedAt    string   `json:"created_at,omitempty" bson:"created_at,omitempty" mapstructure:"created_at"`
	Status       string   `json:"status" bson:"status" mapstructure:"status"`
}

func (j *Job) Normalize() {
	j.ID = trimToken(j.ID)
	j.Status = normalizeToken(j.Status)
	if j.Status == "" {
		j.Status = JobStatusActive
	}
	j.Requirements = trimList(j.Requirements)
}

func (j *Job) Validate() error {
	if j.ID == "" {
		return fmt.Errorf("%w: job id is required", ErrInvalid)
	}
	if j.Status != JobStatusActive && j.Status != JobStatusInactive {
		return fmt.Errorf("%w: unknown job status %q", ErrInvalid, j.Status)
	}
	return nil
}

func (j *Job) Active() bool {
	return j.Status == JobStatusActive
}

// JobSeekerPreferences is the matching profile of a single job seeker.
type JobSeekerPreferences struct {
	UserID string `json:"user_id" bson:"user_id" mapstructure:"user_id"`

	JobTypes         []string        `json:"job_types" bson:"job_types" mapstructure:"job_types"`
	PreferredDomains []string        `json:"preferred_domains" bson:"preferred_domains" mapstructure:"preferred_domains"`
	ExperienceLevel  ExperienceLevel `json:"experience_level" bson:"experience_level" mapstructure:"experience_level"`

	WorkTypes          []string `json:"work_type" bson:"work_type" mapstructure:"work_type"`
	PreferredLocations []string `json:"preferred_locations" bson:"preferred_locations" mapstructure:"preferred_locations"`
	SalaryMin          *int     `json:"salary_min" bson:"salary_min" mapstructure:"salary_min"`
	SalaryMax          *int     `json:"salary_max" bson:"salary_max" mapstructure:"salary_max"`
	WorkingHours       string   `json:"working_hours" bson:"working_hours" mapstructure:"working_hours"`

	Availability     Availability `json:"availability" bson:"availability" mapstructure:"availability"`
	AvailabilityDays *int         `json:"availability_days" bson:"availability_days" mapstructure:"availability_days"`

	HardSkills  []string `json:"hard_skills" bson:"hard_skills" mapstructure:"hard_skills"`
	SoftSkills  []string `json:"soft_skills" bson:"soft_skills" mapstructure:"soft_skills"`
	CareerGoals []string `json:"career_goals" bson:"career_goals" mapstructure:"career_goals"`

	ResumeText string `json:"resume_text,omitempty" bson:"resume_text,omitempty" mapstructure:"resume_text"`
	Bio        string `json:"bio,omitempty" bson:"bio,omitempty" mapstructure:"bio"`

	Completed bool   `json:"completed" bson:"completed" mapstructure:"completed"`
	UpdatedAt string `json:"updated_at" bson:"updated_at" mapstructure:"updated_at"`
}

// Normalize lowercases enum-like fields and fills defaults for missing ones.
// Skill lists keep their case; scorers compare them case-insensitively.
func (p *JobSeekerPreferences) Normalize() {
	p.UserID = trimToken(p.UserID)
	p.JobTypes = trimList(p.JobTypes)
	p.PreferredDomains = trimList(p.PreferredDomains)
	p.ExperienceLevel = ExperienceLevel(normalizeToken(string(p.ExperienceLevel)))
	if p.ExperienceLevel == "" {
		p.ExperienceLevel = ExperienceFresher
	}
	p.WorkTypes = normalizeList(p.WorkTypes)
	p.PreferredLocations = trimList(p.PreferredLocations)
	p.WorkingHours = normalizeToken(p.WorkingHours)
	if p.WorkingHours == "" {
		p.WorkingHours = WorkingHoursFlexible
	}
	p.Availability = Availability(normalizeToken(string(p.Availability)))
	if p.Availability == "" {
		p.Availability = AvailableImmediately
	}
	p.HardSkills = trimList(p.HardSkills)
	p.SoftSkills = trimList(p.SoftSkills)
	p.CareerGoals = normalizeList(p.CareerGoals)
}

func (p *JobSeekerPreferences) Validate() error {
	if p.UserID == "" {
		return fmt.Errorf("%w: user id is required", ErrInvalid)
	}
	if !p.ExperienceLevel.Valid() {
		return fmt.Errorf("%w: unknown experience level %q", ErrInvalid, p.ExperienceLevel)
	}
	if !p.Availability.Valid() {
		return fmt.Errorf("%w: unknown availability %q", ErrInvalid, p.Availability)
	}
	if p.WorkingHours != WorkingHoursFixed && p.WorkingHours != WorkingHoursFlexible {
		return fmt.Errorf("%w: unknown working hours %q", ErrInvalid, p.WorkingHours)
	}
	if p.SalaryMin != nil && *p.SalaryMin < 0 {
		return fmt.Errorf("%w: salary_min must not be negative", ErrInvalid)
	}
	if p.SalaryMax != nil && *p.SalaryMax < 0 {
		return fmt.Errorf("%w: salary_max must not be negative", ErrInvalid)
	}
	if p.AvailabilityDays != nil && *p.AvailabilityDays < 0 {
		return fmt.Errorf("%w: availability_days must not be negative", ErrInvalid)
	}
	return nil
}

// Touch stamps the record with the current time.
func (p *JobSeekerPreferences) Touch(now time.Time) {
	p.UpdatedAt = now.UTC().Format(time.RFC3339)
}

// StartupJobPreferences is the hiring profile attached to one job posting.
type StartupJobPreferences struct {
	JobID string `json:"job_id" bson:"job_id" mapstructure:"job_id"`

	IdealExperience  ExperienceLevel `json:"ideal_experience" bson:"ideal_experience" mapstructure:"ideal_experience"`
	MustHaveSkills   []string        `json:"must_have_skills" bson:"must_have_skills" mapstructure:"must_have_skills"`
	GoodToHaveSkills []string        `json:"good_to_have_skills" bson:"good_to_have_skills" mapstructure:"good_to_have_skills"`
	HiringPriorities []string        `json:"hiring_priorities" bson:"hiring_priorities" mapstructure:"hiring_priorities"`
	TeamSize         *int            `json:"team_size" bson:"team_size" mapstructure:"team_size"`
	StartupStage     StartupStage    `json:"startup_stage,omitempty" bson:"startup_stage,omitempty" mapstructure:"startup_stage"`
	ImmediateJoiner  bool            `json:"immediate_joiner" bson:"immediate_joiner" mapstructure:"immediate_joiner"`
	FlexibilityDays  *int            `json:"flexibility_days" bson:"flexibility_days" mapstructure:"flexibility_days"`
	UpdatedAt        string          `json:"updated_at" bson:"updated_at" mapstructure:"updated_at"`
}

func (p *StartupJobPreferences) Normalize() {
	p.JobID = trimToken(p.JobID)
	p.IdealExperience = ExperienceLevel(normalizeToken(string(p.IdealExperience)))
	if p.IdealExperience == "" {
		p.IdealExperience = ExperienceFresher
	}
	p.MustHaveSkills = trimList(p.MustHaveSkills)
	p.GoodToHaveSkills = trimList(p.GoodToHaveSkills)
	p.HiringPriorities = normalizeList(p.HiringPriorities)
	p.StartupStage = StartupStage(normalizeToken(string(p.StartupStage)))
}

func (p *StartupJobPreferences) Validate() error {
	if p.JobID == "" {
		return fmt.Errorf("%w: job id is required", ErrInvalid)
	}
	if !p.IdealExperience.Valid() {
		return fmt.Errorf("%w: unknown ideal experience %q", ErrInvalid, p.IdealExperience)
	}
	if p.StartupStage != "" && !p.StartupStage.Valid() {
		return fmt.Errorf("%w: unknown startup stage %q", ErrInvalid, p.StartupStage)
	}
	if p.TeamSize != nil && *p.TeamSize < 0 {
		return fmt.Errorf("%w: team_size must not be negative", ErrInvalid)
	}
	if p.FlexibilityDays != nil && *p.FlexibilityDays < 0 {
		return fmt.Errorf("%w: flexibility_days must not be negative", ErrInvalid)
	}
	return nil
}

func (p *StartupJobPreferences) Touch(now time.Time) {
	p.UpdatedAt = now.UTC().Format(time.RFC3339)
}

func trimToken(v string) string {
	return strings.TrimSpace(v)
}

package scoring

import (
	"reflect"
	"testing"

	"github.com/spigell/hire-matcher/internal/marketplace"
)

func intPtr(v int) *int { return &v }

func seekerPrefs(mutate func(*marketplace.JobSeekerPreferences)) *marketplace.JobSeekerPreferences {
	prefs := &marketplace.JobSeekerPreferences{
		UserID:          "seeker-1",
		ExperienceLevel: marketplace.ExperienceFresher,
		Availability:    marketplace.AvailableImmediately,
		Completed:       true,
	}
	if mutate != nil {
		mutate(prefs)
	}
	return prefs
}

func TestScoreJobSkillOverlapScenario(t *testing.T) {
	job := &marketplace.Job{ID: "j1", Title: "Full-stack", Company: "Acme", Requirements: []string{"React", "Node", "MongoDB"}}
	prefs := seekerPrefs(func(p *marketplace.JobSeekerPreferences) {
		p.HardSkills = []string{"react", "node"}
	})

	match := ScoreJob(job, prefs, &marketplace.User{ID: "seeker-1"})

	if match.SkillMatch != 66 {
		t.Fatalf("expected skill_match 66, got %d", match.SkillMatch)
	}
	// 20 skill points plus the 10 point experience default.
	if match.MatchScore != 30 {
		t.Fatalf("expected match score 30, got %d", match.MatchScore)
	}
	if match.MatchCategory != CategoryStretch {
		t.Fatalf("expected stretch category, got %s", match.MatchCategory)
	}
	if match.Reasons[0] != "✅ Good skill match (66%)" {
		t.Fatalf("unexpected first reason: %q", match.Reasons[0])
	}
}

func TestScoreJobSkillEdgeCases(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name         string
		requirements []string
		prefSkills   []string
		userSkills   []string
		expectSkill  int
		expectPoints int
	}{
		{
			name:         "no requirements",
			requirements: nil,
			prefSkills:   []string{"go", "rust"},
			expectSkill:  0,
			expectPoints: 0,
		},
		{
			name:         "no seeker skills",
			requirements: []string{"Go"},
			expectSkill:  0,
			expectPoints: 0,
		},
		{
			name:         "requirements fully covered",
			requirements: []string{"Go", "Docker"},
			prefSkills:   []string{"docker", "GO", "kubernetes"},
			expectSkill:  100,
			expectPoints: 30,
		},
		{
			name:         "user profile skills count too",
			requirements: []string{"Go", "Docker"},
			prefSkills:   []string{"go"},
			userSkills:   []string{"Docker"},
			expectSkill:  100,
			expectPoints: 30,
		},
		{
			name:         "duplicate requirements collapse",
			requirements: []string{"Go", "go", "SQL"},
			prefSkills:   []string{"go"},
			expectSkill:  50,
			expectPoints: 15,
		},
		{
			name:         "exact match only",
			requirements: []string{"React.js"},
			prefSkills:   []string{"react"},
			expectSkill:  0,
			expectPoints: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			job := &marketplace.Job{ID: "j", Requirements: tt.requirements, Description: "senior role"}
			prefs := seekerPrefs(func(p *marketplace.JobSeekerPreferences) { p.HardSkills = tt.prefSkills })
			match := ScoreJob(job, prefs, &marketplace.User{ID: "u", Skills: tt.userSkills})

			if match.SkillMatch != tt.expectSkill {
				t.Fatalf("expected skill_match %d, got %d", tt.expectSkill, match.SkillMatch)
			}
			// experience default contributes 10 points for a "senior role" description
			if got := match.MatchScore - experienceDefault; got != tt.expectPoints {
				t.Fatalf("expected %d skill points, got %d", tt.expectPoints, got)
			}
		})
	}
}

func TestScoreJobWorkType(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name           string
		location       string
		workTypes      []string
		locations      []string
		expectLocation int
		expectPoints   int
	}{
		{name: "remote", location: "Remote, India", workTypes: []string{"remote"}, expectLocation: 100, expectPoints: 15},
		{name: "remote job hybrid preference", location: "Remote, India", workTypes: []string{"hybrid"}, expectLocation: 0, expectPoints: 0},
		{name: "hybrid", location: "Bengaluru (Hybrid)", workTypes: []string{"Hybrid"}, expectLocation: 80, expectPoints: 12},
		{name: "preferred city", location: "Pune, India", workTypes: []string{"onsite"}, locations: []string{"pune"}, expectLocation: 70, expectPoints: 10},
		{name: "remote wins over city", location: "Remote - Pune", workTypes: []string{"remote"}, locations: []string{"Pune"}, expectLocation: 100, expectPoints: 15},
		{name: "empty preferred location ignored", location: "Delhi", locations: []string{" "}, expectLocation: 0, expectPoints: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			job := &marketplace.Job{ID: "j", Location: tt.location, Description: "senior role"}
			prefs := seekerPrefs(func(p *marketplace.JobSeekerPreferences) {
				p.WorkTypes = tt.workTypes
				p.PreferredLocations = tt.locations
			})
			match := ScoreJob(job, prefs, nil)

			if match.LocationMatch != tt.expectLocation {
				t.Fatalf("expected location_match %d, got %d", tt.expectLocation, match.LocationMatch)
			}
			if got := match.MatchScore - experienceDefault; got != tt.expectPoints {
				t.Fatalf("expected %d location points, got %d", tt.expectPoints, got)
			}
		})
	}
}

func TestScoreJobSalary(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name         string
		salaryRange  string
		min, max     *int
		expectSalary int
		expectPoints int
		expectReason string
	}{
		{name: "within range", salaryRange: "10-15", min: intPtr(8), max: intPtr(20), expectSalary: 100, expectPoints: 20, expectReason: "✅ Salary expectations aligned"},
		{name: "no maximum", salaryRange: "40-60", min: intPtr(8), expectSalary: 100, expectPoints: 20, expectReason: "✅ Salary expectations aligned"},
		{name: "close to minimum", salaryRange: "7-8", min: intPtr(8), expectSalary: 75, expectPoints: 15, expectReason: "✅ Salary close to expectations"},
		{name: "above maximum counts as close", salaryRange: "25-30", min: intPtr(8), max: intPtr(20), expectSalary: 75, expectPoints: 15, expectReason: "✅ Salary close to expectations"},
		{name: "below expectations", salaryRange: "5-6", min: intPtr(8), expectSalary: 50, expectPoints: 0, expectReason: "⚠️ Salary below expectations"},
		{name: "formatted rupees", salaryRange: "₹10,00,000 - ₹15,00,000", min: intPtr(1000000), expectSalary: 100, expectPoints: 20, expectReason: "✅ Salary expectations aligned"},
		{name: "unparseable", salaryRange: "competitive", min: intPtr(8)},
		{name: "no minimum", salaryRange: "10-15"},
		{name: "zero minimum", salaryRange: "10-15", min: intPtr(0)},
		{name: "no salary range", min: intPtr(8)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			job := &marketplace.Job{ID: "j", SalaryRange: tt.salaryRange, Description: "senior role"}
			prefs := seekerPrefs(func(p *marketplace.JobSeekerPreferences) {
				p.SalaryMin = tt.min
				p.SalaryMax = tt.max
			})
			match := ScoreJob(job, prefs, nil)

			if match.SalaryMatch != tt.expectSalary {
				t.Fatalf("expected salary_match %d, got %d", tt.expectSalary, match.SalaryMatch)
			}
			if got := match.MatchScore - experienceDefault; got != tt.expectPoints {
				t.Fatalf("expected %d salary points, got %d", tt.expectPoints, got)
			}
			if tt.expectReason == "" {
				if len(match.Reasons) != 0 {
					t.Fatalf("expected no reasons, got %v", match.Reasons)
				}
				return
			}
			if len(match.Reasons) != 1 || match.Reasons[0] != tt.expectReason {
				t.Fatalf("unexpected reasons: %v", match.Reasons)
			}
		})
	}
}

func TestScoreJobExperience(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name         string
		description  string
		requirements []string
		level        marketplace.ExperienceLevel
		expectMatch  int
		expectPoints int
	}{
		{name: "internship for student", description: "Summer intern wanted", level: marketplace.ExperienceStudent, expectMatch: 100, expectPoints: 20},
		{name: "fresher keyword in requirements", requirements: []string{"Fresher welcome"}, level: marketplace.ExperienceFresher, expectMatch: 100, expectPoints: 20},
		{name: "fresher role for senior falls back to default", description: "fresher role", level: marketplace.Experience5Plus, expectMatch: 50, expectPoints: 10},
		{name: "1-3 years", description: "1-3 years of Go", level: marketplace.Experience1To3, expectMatch: 100, expectPoints: 20},
		{name: "1 to 3 years for fresher", description: "1 to 3 years", level: marketplace.ExperienceFresher, expectMatch: 100, expectPoints: 20},
		{name: "1-3 years for senior", description: "1-3 years", level: marketplace.Experience3To5, expectMatch: 50, expectPoints: 10},
		{name: "no keywords", description: "Lead engineer", level: marketplace.Experience5Plus, expectMatch: 50, expectPoints: 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			job := &marketplace.Job{ID: "j", Description: tt.description, Requirements: tt.requirements}
			prefs := seekerPrefs(func(p *marketplace.JobSeekerPreferences) { p.ExperienceLevel = tt.level })
			match := ScoreJob(job, prefs, nil)

			if match.ExperienceMatch != tt.expectMatch {
				t.Fatalf("expected experience_match %d, got %d", tt.expectMatch, match.ExperienceMatch)
			}
			if match.MatchScore != tt.expectPoints {
				t.Fatalf("expected %d points, got %d", tt.expectPoints, match.MatchScore)
			}
		})
	}
}

func TestScoreJobBestMatch(t *testing.T) {
	job := &marketplace.Job{
		ID:           "j1",
		Title:        "Backend Intern",
		Company:      "Acme",
		Description:  "Hiring freshers and interns",
		Requirements: []string{"Go", "Docker"},
		Location:     "Remote",
		JobType:      "Full-Time",
		SalaryRange:  "10-15",
	}
	prefs := seekerPrefs(func(p *marketplace.JobSeekerPreferences) {
		p.HardSkills = []string{"go", "docker"}
		p.JobTypes = []string{"full-time"}
		p.WorkTypes = []string{"remote"}
		p.SalaryMin = intPtr(10)
	})

	match := ScoreJob(job, prefs, nil)

	expected := JobMatch{
		JobID:         "j1",
		JobTitle:      "Backend Intern",
		Company:       "Acme",
		MatchScore:    100,
		MatchCategory: CategoryBest,
		Reasons: []string{
			"✅ Excellent skill match (100%)",
			"✅ Job type matches (Full-Time)",
			"✅ Remote work preference matched",
			"✅ Salary expectations aligned",
			"✅ Experience level perfect match",
		},
		SkillMatch:      100,
		SalaryMatch:     100,
		LocationMatch:   100,
		ExperienceMatch: 100,
	}

	if !reflect.DeepEqual(match, expected) {
		t.Fatalf("unexpected match:\n got %+v\nwant %+v", match, expected)
	}
}

func TestScoreJobDeterministicAndBounded(t *testing.T) {
	jobs := []*marketplace.Job{
		{ID: "a", Requirements: []string{"Go"}, Location: "Remote", JobType: "contract", SalaryRange: "1-2", Description: "intern"},
		{ID: "b", Requirements: []string{"Go", "Rust", "C"}, Location: "Hybrid Pune", SalaryRange: "abc"},
		{ID: "c", Location: "Onsite", SalaryRange: "100000-200000", Description: "1-3 yrs"},
		{ID: "d"},
	}
	prefsList := []*marketplace.JobSeekerPreferences{
		seekerPrefs(nil),
		seekerPrefs(func(p *marketplace.JobSeekerPreferences) {
			p.HardSkills = []string{"go", "rust"}
			p.JobTypes = []string{"contract"}
			p.WorkTypes = []string{"remote", "hybrid"}
			p.PreferredLocations = []string{"pune"}
			p.SalaryMin = intPtr(1)
			p.ExperienceLevel = marketplace.ExperienceStudent
		}),
	}

	for _, job := range jobs {
		for _, prefs := range prefsList {
			first := ScoreJob(job, prefs, nil)
			second := ScoreJob(job, prefs, nil)
			if !reflect.DeepEqual(first, second) {
				t.Fatalf("job %s: scoring is not deterministic", job.ID)
			}

			for name, v := range map[string]int{
				"match_score":      first.MatchScore,
				"skill_match":      first.SkillMatch,
				"salary_match":     first.SalaryMatch,
				"location_match":   first.LocationMatch,
				"experience_match": first.ExperienceMatch,
			} {
				if v < 0 || v > 100 {
					t.Fatalf("job %s: %s out of bounds: %d", job.ID, name, v)
				}
			}

			if first.MatchCategory != CategoryFor(first.MatchScore) {
				t.Fatalf("job %s: category %s inconsistent with score %d", job.ID, first.MatchCategory, first.MatchScore)
			}
		}
	}
}

func TestCategoryFor(t *testing.T) {
	t.Parallel()

	tests := []struct {
		score    int
		category Category
	}{
		{100, CategoryBest},
		{75, CategoryBest},
		{74, CategoryGood},
		{50, CategoryGood},
		{49, CategoryStretch},
		{0, CategoryStretch},
	}

	for _, tt := range tests {
		if got := CategoryFor(tt.score); got != tt.category {
			t.Fatalf("score %d: expected %s, got %s", tt.score, tt.category, got)
		}
	}
}

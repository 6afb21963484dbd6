package matching

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest"
	"go.uber.org/zap/zaptest/observer"

	"github.com/spigell/hire-matcher/internal/ai"
	"github.com/spigell/hire-matcher/internal/marketplace"
	"github.com/spigell/hire-matcher/internal/scoring"
	"github.com/spigell/hire-matcher/internal/store/memory"
)

type stubNarrator struct {
	mu       sync.Mutex
	text     string
	err      error
	requests []ai.InsightRequest
}

func (n *stubNarrator) Narrate(_ context.Context, req ai.InsightRequest) (string, error) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.requests = append(n.requests, req)
	return n.text, n.err
}

func (n *stubNarrator) last() ai.InsightRequest {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.requests[len(n.requests)-1]
}

// blockingNarrator ignores ctx and only returns once release is closed.
type blockingNarrator struct {
	release chan struct{}
}

func (n blockingNarrator) Narrate(context.Context, ai.InsightRequest) (string, error) {
	<-n.release
	return "too late", nil
}

func intPtr(v int) *int { return &v }

// marketplaceFixture holds a seeker, a startup owning two jobs and a pool of candidates.
func marketplaceFixture(t *testing.T) *memory.Store {
	t.Helper()

	st := memory.New()
	ctx := context.Background()

	st.PutUser(&marketplace.User{ID: "seeker-1", FullName: "Asha Rao", Role: marketplace.RoleJobSeeker, Skills: []string{"Go", "React"}})
	st.PutUser(&marketplace.User{ID: "seeker-2", FullName: "Ravi Kumar", Role: marketplace.RoleJobSeeker, Skills: []string{"Go"}})
	st.PutUser(&marketplace.User{ID: "seeker-3", FullName: "No Prefs", Role: marketplace.RoleJobSeeker})
	st.PutUser(&marketplace.User{ID: "seeker-4", FullName: "Half Done", Role: marketplace.RoleJobSeeker})
	st.PutUser(&marketplace.User{ID: "startup-1", FullName: "Founder", Role: marketplace.RoleStartup, Company: "Acme"})
	st.PutUser(&marketplace.User{ID: "startup-2", FullName: "Rival", Role: marketplace.RoleStartup, Company: "Other"})
	st.PutUser(&marketplace.User{ID: "mentor-1", FullName: "Guide", Role: marketplace.RoleMentor})

	st.PutJob(&marketplace.Job{
		ID: "job-1", Title: "Backend Intern", Company: "Acme", Description: "Intern role",
		Requirements: []string{"Go", "SQL"}, Location: "Remote", JobType: "internship",
		SalaryRange: "10-15", PostedBy: "startup-1", Status: marketplace.JobStatusActive,
	})
	st.PutJob(&marketplace.Job{
		ID: "job-2", Title: "Frontend Engineer", Company: "Acme",
		Requirements: []string{"React", "TypeScript"}, Location: "Bangalore",
		PostedBy: "startup-1", Status: marketplace.JobStatusActive,
	})
	st.PutJob(&marketplace.Job{
		ID: "job-3", Title: "Closed", Company: "Other",
		Requirements: []string{"Go"}, PostedBy: "startup-2", Status: marketplace.JobStatusInactive,
	})

	seekers := []*marketplace.JobSeekerPreferences{
		{
			UserID: "seeker-1", JobTypes: []string{"internship"}, ExperienceLevel: marketplace.ExperienceStudent,
			WorkTypes: []string{"remote"}, SalaryMin: intPtr(8), SalaryMax: intPtr(20),
			HardSkills: []string{"SQL"}, CareerGoals: []string{"learning"}, Completed: true,
		},
		{
			UserID: "seeker-2", ExperienceLevel: marketplace.Experience1To3,
			HardSkills: []string{"Kubernetes"}, Completed: true,
		},
		{UserID: "seeker-4", Completed: false},
	}
	for _, prefs := range seekers {
		prefs.Normalize()
		if err := st.UpsertSeekerPreferences(ctx, prefs); err != nil {
			t.Fatalf("seed preferences: %v", err)
		}
	}

	jobPrefs := &marketplace.StartupJobPreferences{
		JobID: "job-1", MustHaveSkills: []string{"go", "sql"}, GoodToHaveSkills: []string{"kubernetes"},
		IdealExperience: marketplace.ExperienceStudent, ImmediateJoiner: true,
	}
	jobPrefs.Normalize()
	if err := st.UpsertJobPreferences(ctx, jobPrefs); err != nil {
		t.Fatalf("seed job preferences: %v", err)
	}

	return st
}

func newTestService(t *testing.T, st Store, narrator ai.Narrator, cfg Config) *Service {
	t.Helper()
	return New(st, narrator, cfg, zaptest.NewLogger(t), NewMetrics(prometheus.NewRegistry()))
}

func TestRecommendJobsRequiresCompletedPreferences(t *testing.T) {
	t.Parallel()

	svc := newTestService(t, marketplaceFixture(t), nil, Config{})

	for _, id := range []string{"seeker-3", "seeker-4"} {
		if _, err := svc.RecommendJobs(context.Background(), id, 0); !errors.Is(err, ErrPreferencesIncomplete) {
			t.Fatalf("%s: expected ErrPreferencesIncomplete, got %v", id, err)
		}
	}
}

func TestRecommendJobsMissingUser(t *testing.T) {
	t.Parallel()

	st := marketplaceFixture(t)
	prefs := &marketplace.JobSeekerPreferences{UserID: "ghost", Completed: true}
	prefs.Normalize()
	if err := st.UpsertSeekerPreferences(context.Background(), prefs); err != nil {
		t.Fatalf("upsert: %v", err)
	}

	svc := newTestService(t, st, nil, Config{})
	if _, err := svc.RecommendJobs(context.Background(), "ghost", 0); !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestRecommendJobsWithoutActiveJobs(t *testing.T) {
	t.Parallel()

	st := memory.New()
	st.PutUser(&marketplace.User{ID: "seeker-1", Role: marketplace.RoleJobSeeker})
	prefs := &marketplace.JobSeekerPreferences{UserID: "seeker-1", Completed: true}
	prefs.Normalize()
	if err := st.UpsertSeekerPreferences(context.Background(), prefs); err != nil {
		t.Fatalf("upsert: %v", err)
	}

	narrator := &stubNarrator{text: "unused"}
	rec, err := newTestService(t, st, narrator, Config{}).RecommendJobs(context.Background(), "seeker-1", 0)
	if err != nil {
		t.Fatalf("recommend: %v", err)
	}

	if rec.TotalMatches != 0 || rec.AIInsights != noActiveJobsMessage {
		t.Fatalf("unexpected empty result: %+v", rec)
	}
	if rec.BestMatches == nil || rec.GoodMatches == nil || rec.StretchMatches == nil {
		t.Fatalf("expected empty lists, not nil: %+v", rec)
	}
	if len(narrator.requests) != 0 {
		t.Fatalf("narrator must not be called without jobs")
	}
}

func TestRecommendJobsNarrativeDoesNotAffectRanking(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		narrator ai.Narrator
		expect   string
	}{
		{name: "narrative", narrator: &stubNarrator{text: "  Great fits ahead.  "}, expect: "Great fits ahead."},
		{name: "failure", narrator: &stubNarrator{err: errors.New("boom")}, expect: ai.FallbackUnavailable},
		{name: "blank", narrator: &stubNarrator{text: "   "}, expect: ai.FallbackUnavailable},
		{name: "disabled", narrator: nil, expect: ai.FallbackDisabled},
	}

	baseline, err := newTestService(t, marketplaceFixture(t), nil, Config{}).RecommendJobs(context.Background(), "seeker-1", 0)
	if err != nil {
		t.Fatalf("baseline: %v", err)
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			rec, err := newTestService(t, marketplaceFixture(t), tt.narrator, Config{}).RecommendJobs(context.Background(), "seeker-1", 0)
			if err != nil {
				t.Fatalf("recommend: %v", err)
			}

			if rec.AIInsights != tt.expect {
				t.Fatalf("expected insights %q, got %q", tt.expect, rec.AIInsights)
			}

			if rec.TotalMatches != baseline.TotalMatches ||
				!reflect.DeepEqual(rec.BestMatches, baseline.BestMatches) ||
				!reflect.DeepEqual(rec.GoodMatches, baseline.GoodMatches) ||
				!reflect.DeepEqual(rec.StretchMatches, baseline.StretchMatches) {
				t.Fatalf("narrative outcome changed the ranking")
			}
		})
	}
}

func TestRecommendJobsScoresActiveJobsOnly(t *testing.T) {
	t.Parallel()

	narrator := &stubNarrator{text: "ok"}
	rec, err := newTestService(t, marketplaceFixture(t), narrator, Config{}).RecommendJobs(context.Background(), "seeker-1", 0)
	if err != nil {
		t.Fatalf("recommend: %v", err)
	}

	if rec.TotalMatches != 2 {
		t.Fatalf("expected the two active jobs to be scored, got %d", rec.TotalMatches)
	}

	// skills 30 + job type 15 + remote 15 + salary 20 + intern keyword 20
	if len(rec.BestMatches) != 1 || rec.BestMatches[0].JobID != "job-1" || rec.BestMatches[0].MatchScore != 100 {
		t.Fatalf("expected job-1 as the only best match, got %+v", rec.BestMatches)
	}

	req := narrator.last()
	if req.Audience != ai.AudienceRecommendations || req.Name != "Asha Rao" {
		t.Fatalf("unexpected narrative request: %+v", req)
	}
	if len(req.TopMatches) != 2 || req.TopMatches[0].Title != "Backend Intern" || req.TopMatches[0].Score != 100 {
		t.Fatalf("unexpected top matches: %+v", req.TopMatches)
	}
}

func TestRecommendJobsLimit(t *testing.T) {
	t.Parallel()

	rec, err := newTestService(t, marketplaceFixture(t), nil, Config{}).RecommendJobs(context.Background(), "seeker-1", 1)
	if err != nil {
		t.Fatalf("recommend: %v", err)
	}
	if rec.TotalMatches != 1 {
		t.Fatalf("expected limit to cap scored jobs, got %d", rec.TotalMatches)
	}
}

func TestRecommendJobsKeepsListingOrderOnTies(t *testing.T) {
	t.Parallel()

	st := memory.New()
	st.PutUser(&marketplace.User{ID: "seeker-1", Role: marketplace.RoleJobSeeker})
	prefs := &marketplace.JobSeekerPreferences{UserID: "seeker-1", Completed: true}
	prefs.Normalize()
	if err := st.UpsertSeekerPreferences(context.Background(), prefs); err != nil {
		t.Fatalf("upsert: %v", err)
	}

	var want []string
	for i := range 5 {
		id := fmt.Sprintf("job-%d", i)
		want = append(want, id)
		st.PutJob(&marketplace.Job{ID: id, Title: id, PostedBy: "startup-1", Status: marketplace.JobStatusActive})
	}

	rec, err := newTestService(t, st, nil, Config{Workers: 3}).RecommendJobs(context.Background(), "seeker-1", 0)
	if err != nil {
		t.Fatalf("recommend: %v", err)
	}

	var got []string
	for _, match := range rec.StretchMatches {
		got = append(got, match.JobID)
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("expected listing order %v, got %v", want, got)
	}
}

func TestBuildJobRecommendationsTruncatesBuckets(t *testing.T) {
	t.Parallel()

	var matches []scoring.JobMatch
	add := func(n, score int) {
		for range n {
			matches = append(matches, scoring.JobMatch{
				JobID:         fmt.Sprintf("job-%d", len(matches)),
				MatchScore:    score,
				MatchCategory: scoring.CategoryFor(score),
			})
		}
	}
	add(8, 30)
	add(12, 60)
	add(14, 90)

	rec := BuildJobRecommendations(matches)

	if rec.TotalMatches != 34 {
		t.Fatalf("expected total 34, got %d", rec.TotalMatches)
	}
	if len(rec.BestMatches) != 10 || len(rec.GoodMatches) != 10 || len(rec.StretchMatches) != 5 {
		t.Fatalf("unexpected bucket sizes %d/%d/%d", len(rec.BestMatches), len(rec.GoodMatches), len(rec.StretchMatches))
	}
	// first best match is the first 90 in input order
	if rec.BestMatches[0].JobID != "job-20" {
		t.Fatalf("expected job-20 first, got %s", rec.BestMatches[0].JobID)
	}
	if top := rec.Top(3); len(top) != 3 || top[2].JobID != "job-22" {
		t.Fatalf("unexpected top matches: %+v", top)
	}
	if matches[0].JobID != "job-0" {
		t.Fatalf("input must not be reordered")
	}
}

func TestRankCandidates(t *testing.T) {
	t.Parallel()

	ranking, err := newTestService(t, marketplaceFixture(t), nil, Config{}).RankCandidates(context.Background(), "startup-1", "job-1")
	if err != nil {
		t.Fatalf("rank: %v", err)
	}

	if ranking.TotalCandidates != 2 || ranking.JobTitle != "Backend Intern" {
		t.Fatalf("unexpected ranking: %+v", ranking)
	}
	if ranking.Matches[0].UserID != "seeker-1" || ranking.Matches[1].UserID != "seeker-2" {
		t.Fatalf("unexpected order: %+v", ranking.Matches)
	}
	if ranking.Matches[0].MatchScore < ranking.Matches[1].MatchScore {
		t.Fatalf("matches must be sorted by score")
	}
}

func TestRankCandidatesErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		owner  string
		job    string
		expect error
	}{
		{name: "unknown job", owner: "startup-1", job: "missing", expect: ErrJobNotFound},
		{name: "foreign job", owner: "startup-1", job: "job-3", expect: ErrJobNotFound},
		{name: "no job preferences", owner: "startup-1", job: "job-2", expect: ErrJobPreferencesMissing},
	}

	svc := newTestService(t, marketplaceFixture(t), nil, Config{})
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if _, err := svc.RankCandidates(context.Background(), tt.owner, tt.job); !errors.Is(err, tt.expect) {
				t.Fatalf("expected %v, got %v", tt.expect, err)
			}
		})
	}
}

func TestRankCandidatesExcludedPool(t *testing.T) {
	t.Parallel()

	svc := newTestService(t, marketplaceFixture(t), nil, Config{ExcludeCandidates: []string{"seeker-1", "seeker-2"}})

	ranking, err := svc.RankCandidates(context.Background(), "startup-1", "job-1")
	if err != nil {
		t.Fatalf("rank: %v", err)
	}
	if ranking.TotalCandidates != 0 || len(ranking.Matches) != 0 || ranking.Message != noCandidatesMessage {
		t.Fatalf("unexpected empty ranking: %+v", ranking)
	}
}

func TestRankCandidatesLogsFilterStatus(t *testing.T) {
	t.Parallel()

	core, logs := observer.New(zapcore.DebugLevel)
	svc := New(marketplaceFixture(t), nil, Config{}, zap.New(core), nil)

	if _, err := svc.RankCandidates(context.Background(), "startup-1", "job-1"); err != nil {
		t.Fatalf("rank: %v", err)
	}

	entries := logs.FilterMessage("candidate filter").All()
	if len(entries) != 3 {
		t.Fatalf("expected a status entry per filter, got %d", len(entries))
	}

	excluded := entries[2].ContextMap()
	if excluded["filter"] != "excluded_candidates" || excluded["enabled"] != false || excluded["reason"] != "no candidates configured" {
		t.Fatalf("unexpected excluded filter status: %v", excluded)
	}
}

func TestRankCandidatePoolKeepsTopFifty(t *testing.T) {
	t.Parallel()

	matches := make([]scoring.CandidateMatch, 0, 60)
	for i := range 60 {
		matches = append(matches, scoring.CandidateMatch{UserID: fmt.Sprintf("u%d", i), MatchScore: 50 + i%2*10})
	}

	ranked := RankCandidatePool(matches)
	if len(ranked) != candidateMatchesLimit {
		t.Fatalf("expected %d matches, got %d", candidateMatchesLimit, len(ranked))
	}
	if ranked[0].UserID != "u1" || ranked[30].UserID != "u0" {
		t.Fatalf("expected stable order within equal scores, got %s and %s", ranked[0].UserID, ranked[30].UserID)
	}

	if got := RankCandidatePool(nil); got == nil || len(got) != 0 {
		t.Fatalf("expected empty non-nil list, got %#v", got)
	}
}

func TestSeekerPreferencesRoundTrip(t *testing.T) {
	t.Parallel()

	svc := newTestService(t, marketplaceFixture(t), nil, Config{})
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return now }

	if _, exists, err := svc.SeekerPreferences(context.Background(), "seeker-3"); err != nil || exists {
		t.Fatalf("expected no preferences, got exists=%v err=%v", exists, err)
	}

	saved, err := svc.SaveSeekerPreferences(context.Background(), "seeker-3", &marketplace.JobSeekerPreferences{
		UserID:          "someone-else",
		ExperienceLevel: " Fresher ",
		WorkTypes:       []string{"Remote"},
		Completed:       true,
	})
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	if saved.UserID != "seeker-3" || saved.UpdatedAt != "2024-05-01T12:00:00Z" || saved.WorkTypes[0] != "remote" {
		t.Fatalf("unexpected saved record: %+v", saved)
	}

	stored, exists, err := svc.SeekerPreferences(context.Background(), "seeker-3")
	if err != nil || !exists || !stored.Completed {
		t.Fatalf("expected stored completed preferences, got %+v exists=%v err=%v", stored, exists, err)
	}

	_, err = svc.SaveSeekerPreferences(context.Background(), "seeker-3", &marketplace.JobSeekerPreferences{
		SalaryMin: intPtr(30), SalaryMax: intPtr(10),
	})
	if !errors.Is(err, marketplace.ErrInvalid) {
		t.Fatalf("expected ErrInvalid, got %v", err)
	}
}

func TestJobPreferencesOwnership(t *testing.T) {
	t.Parallel()

	svc := newTestService(t, marketplaceFixture(t), nil, Config{})
	prefs := &marketplace.StartupJobPreferences{MustHaveSkills: []string{"React"}, IdealExperience: "1-3yrs"}

	if _, err := svc.SaveJobPreferences(context.Background(), "startup-2", "job-2", prefs); !errors.Is(err, ErrJobNotFound) {
		t.Fatalf("expected ErrJobNotFound for a foreign job, got %v", err)
	}

	saved, err := svc.SaveJobPreferences(context.Background(), "startup-1", "job-2", prefs)
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	if saved.JobID != "job-2" || saved.UpdatedAt == "" {
		t.Fatalf("unexpected saved record: %+v", saved)
	}

	stored, exists, err := svc.JobPreferences(context.Background(), "job-2")
	if err != nil || !exists || stored.IdealExperience != marketplace.Experience1To3 {
		t.Fatalf("unexpected stored record: %+v exists=%v err=%v", stored, exists, err)
	}
}

func TestInsight(t *testing.T) {
	t.Parallel()

	t.Run("job seeker", func(t *testing.T) {
		t.Parallel()
		narrator := &stubNarrator{text: "Keep learning Go."}
		text, err := newTestService(t, marketplaceFixture(t), narrator, Config{}).Insight(context.Background(), "seeker-1")
		if err != nil || text != "Keep learning Go." {
			t.Fatalf("unexpected insight %q, err %v", text, err)
		}
		req := narrator.last()
		if req.Audience != ai.AudienceCareer || !reflect.DeepEqual(req.CareerGoals, []string{"learning"}) {
			t.Fatalf("unexpected request: %+v", req)
		}
	})

	t.Run("startup counts active jobs", func(t *testing.T) {
		t.Parallel()
		narrator := &stubNarrator{text: "Hire fast."}
		if _, err := newTestService(t, marketplaceFixture(t), narrator, Config{}).Insight(context.Background(), "startup-1"); err != nil {
			t.Fatalf("insight: %v", err)
		}
		req := narrator.last()
		if req.Audience != ai.AudienceHiring || req.ActiveJobs != 2 || req.Company != "Acme" {
			t.Fatalf("unexpected request: %+v", req)
		}
	})

	t.Run("other roles", func(t *testing.T) {
		t.Parallel()
		text, err := newTestService(t, marketplaceFixture(t), &stubNarrator{}, Config{}).Insight(context.Background(), "mentor-1")
		if err != nil || text != otherRolesInsight {
			t.Fatalf("unexpected insight %q, err %v", text, err)
		}
	})

	t.Run("narrator failure", func(t *testing.T) {
		t.Parallel()
		svc := newTestService(t, marketplaceFixture(t), &stubNarrator{err: errors.New("quota")}, Config{})
		if _, err := svc.Insight(context.Background(), "seeker-1"); !errors.Is(err, ErrNarratorUnavailable) {
			t.Fatalf("expected ErrNarratorUnavailable, got %v", err)
		}
	})

	t.Run("disabled narrator", func(t *testing.T) {
		t.Parallel()
		svc := newTestService(t, marketplaceFixture(t), nil, Config{})
		if _, err := svc.Insight(context.Background(), "startup-1"); !errors.Is(err, ErrNarratorUnavailable) {
			t.Fatalf("expected ErrNarratorUnavailable, got %v", err)
		}
	})

	t.Run("unknown user", func(t *testing.T) {
		t.Parallel()
		svc := newTestService(t, marketplaceFixture(t), nil, Config{})
		if _, err := svc.Insight(context.Background(), "ghost"); !errors.Is(err, ErrUserNotFound) {
			t.Fatalf("expected ErrUserNotFound, got %v", err)
		}
	})
}

func TestNarrativeMetrics(t *testing.T) {
	t.Parallel()

	metrics := NewMetrics(prometheus.NewRegistry())
	st := marketplaceFixture(t)

	failing := New(st, &stubNarrator{err: errors.New("down")}, Config{}, zaptest.NewLogger(t), metrics)
	if _, err := failing.RecommendJobs(context.Background(), "seeker-1", 0); err != nil {
		t.Fatalf("recommend: %v", err)
	}
	disabled := New(st, nil, Config{}, zaptest.NewLogger(t), metrics)
	if _, err := disabled.RecommendJobs(context.Background(), "seeker-1", 0); err != nil {
		t.Fatalf("recommend: %v", err)
	}

	if got := testutil.ToFloat64(metrics.narratives.WithLabelValues(outcomeFallback)); got != 1 {
		t.Fatalf("expected one fallback narrative, got %v", got)
	}
	if got := testutil.ToFloat64(metrics.narratives.WithLabelValues(outcomeDisabled)); got != 1 {
		t.Fatalf("expected one disabled narrative, got %v", got)
	}
	if got := testutil.ToFloat64(metrics.scoredItems.WithLabelValues(pipelineJobs)); got != 4 {
		t.Fatalf("expected four scored jobs, got %v", got)
	}
}

func TestScoreAllHonoursCancellation(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := scoreAll(ctx, 2, []int{1, 2, 3}, func(v int) int { return v }); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestNarrativeTimeoutWithUncooperativeNarrator(t *testing.T) {
	t.Parallel()

	narrator := blockingNarrator{release: make(chan struct{})}
	t.Cleanup(func() { close(narrator.release) })

	svc := newTestService(t, marketplaceFixture(t), narrator, Config{NarrativeTimeout: 50 * time.Millisecond})

	type outcome struct {
		rec *JobRecommendations
		err error
	}
	done := make(chan outcome, 1)
	go func() {
		rec, err := svc.RecommendJobs(context.Background(), "seeker-1", 0)
		done <- outcome{rec: rec, err: err}
	}()

	select {
	case got := <-done:
		if got.err != nil {
			t.Fatalf("recommend: %v", got.err)
		}
		if got.rec.AIInsights != ai.FallbackUnavailable || got.rec.TotalMatches != 2 {
			t.Fatalf("expected ranking with fallback narrative, got %+v", got.rec)
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("RecommendJobs still blocked after the narrative timeout")
	}

	insight := make(chan error, 1)
	go func() {
		_, err := svc.Insight(context.Background(), "seeker-1")
		insight <- err
	}()

	select {
	case err := <-insight:
		if !errors.Is(err, ErrNarratorUnavailable) || !errors.Is(err, context.DeadlineExceeded) {
			t.Fatalf("expected timed out insight to be unavailable, got %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("Insight still blocked after the narrative timeout")
	}
}

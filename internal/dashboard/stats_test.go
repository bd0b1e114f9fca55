package dashboard_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/saulo-duarte/classroom-lambda/internal/auth"
	"github.com/saulo-duarte/classroom-lambda/internal/dashboard"
	"github.com/saulo-duarte/classroom-lambda/internal/quiz"
	"github.com/saulo-duarte/classroom-lambda/internal/store/memstore"
)

var now = time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)

func intPtr(n int) *int { return &n }

func timePtr(t time.Time) *time.Time { return &t }

func TestScoreBand(t *testing.T) {
	cases := map[int]dashboard.Band{
		100: dashboard.BandGreat,
		80:  dashboard.BandGreat,
		79:  dashboard.BandGood,
		60:  dashboard.BandGood,
		59:  dashboard.BandKeepImproving,
		0:   dashboard.BandKeepImproving,
	}
	for score, want := range cases {
		if got := dashboard.ScoreBand(score); got != want {
			t.Errorf("ScoreBand(%d) = %s, want %s", score, got, want)
		}
	}
}

func TestComputeStats(t *testing.T) {
	quizzes := []*quiz.Quiz{
		{Status: quiz.StatusCompleted, Score: intPtr(50)},
		{Status: quiz.StatusCompleted, Score: intPtr(67)},
		{Status: quiz.StatusCompleted, Score: intPtr(100)},
		{Status: quiz.StatusPending},
		{Status: quiz.StatusInProgress},
	}

	st := dashboard.ComputeStats(quizzes)
	if st.CompletedQuizzes != 3 || st.PendingQuizzes != 2 {
		t.Errorf("counts = %d completed %d pending", st.CompletedQuizzes, st.PendingQuizzes)
	}
	// (50+67+100)/3 = 72.33
	if st.AverageScore != 72 || st.Band != dashboard.BandGood {
		t.Errorf("average = %d band %s", st.AverageScore, st.Band)
	}

	empty := dashboard.ComputeStats(nil)
	if empty.AverageScore != 0 || empty.Band != dashboard.BandKeepImproving {
		t.Errorf("unexpected empty stats: %+v", empty)
	}

	half := dashboard.ComputeStats([]*quiz.Quiz{
		{Status: quiz.StatusCompleted, Score: intPtr(50)},
		{Status: quiz.StatusCompleted, Score: intPtr(51)},
	})
	if half.AverageScore != 51 {
		t.Errorf("50.5 should round up, got %d", half.AverageScore)
	}
}

func TestComputeTeacherStats(t *testing.T) {
	created := now.Add(-24 * time.Hour)
	quizzes := []*quiz.Quiz{
		{Status: quiz.StatusPending},
		{Status: quiz.StatusPending},
		{Status: quiz.StatusInProgress},
		{Status: quiz.StatusCompleted, Score: intPtr(90), CreatedAt: created, CompletedAt: timePtr(created.Add(30 * time.Minute))},
		{Status: quiz.StatusCompleted, Score: intPtr(71), CreatedAt: created, CompletedAt: timePtr(created.Add(90 * time.Minute))},
		{Status: quiz.StatusCompleted},
	}

	st := dashboard.ComputeTeacherStats(quizzes)
	if st.PendingQuizzes != 2 || st.InProgressQuizzes != 1 || st.CompletedQuizzes != 3 {
		t.Errorf("counts = %+v", st)
	}
	// (90+71)/2 = 80.5, the unscored quiz is left out
	if st.AverageGrade != 81 {
		t.Errorf("average grade = %d, want 81", st.AverageGrade)
	}
	// (30+90)/2 = 60 minutes
	if st.ResponseTime != "1h" {
		t.Errorf("response time = %q, want 1h", st.ResponseTime)
	}

	empty := dashboard.ComputeTeacherStats([]*quiz.Quiz{{Status: quiz.StatusCompleted}})
	if empty.AverageGrade != 0 || empty.ResponseTime != "N/A" {
		t.Errorf("unexpected stats without scores: %+v", empty)
	}
}

func TestFormatResponseTime(t *testing.T) {
	cases := []struct {
		minutes float64
		want    string
	}{
		{0, "0m"},
		{12.4, "12m"},
		{12.5, "13m"},
		{59, "59m"},
		{60, "1h"},
		{89, "1h"},
		{90, "2h"},
		{1439, "24h"},
		{1440, "1d"},
		{2159, "1d"},
		{2160, "2d"},
	}
	for _, tc := range cases {
		if got := dashboard.FormatResponseTime(tc.minutes); got != tc.want {
			t.Errorf("FormatResponseTime(%v) = %q, want %q", tc.minutes, got, tc.want)
		}
	}
}

func TestBuildActivity(t *testing.T) {
	quizzes := []*quiz.Quiz{
		{
			ID: "a", Title: "Optics", Status: quiz.StatusCompleted,
			CreatedAt:   now.Add(-48 * time.Hour),
			CompletedAt: timePtr(now.Add(-5 * time.Minute)), CompletedByName: "Ana Souza",
			Score: intPtr(85),
		},
		{
			ID: "b", Title: "Waves", Status: quiz.StatusInProgress,
			CreatedAt: now.Add(-3 * time.Hour),
			StartedAt: timePtr(now.Add(-10 * time.Second)),
		},
		{
			ID: "c", Title: "Heat", Status: quiz.StatusPending,
			CreatedAt: now.Add(-time.Hour),
		},
	}

	feed := dashboard.BuildActivity(quizzes, now)
	if len(feed) != 5 {
		t.Fatalf("expected 5 entries, got %d", len(feed))
	}

	first := feed[0]
	if first.Kind != dashboard.ActivityStarted || first.User != "Student" || first.Initials != "ST" || first.TimeAgo != "just now" {
		t.Errorf("unexpected first entry: %+v", first)
	}

	second := feed[1]
	if second.Kind != dashboard.ActivityCompleted || second.Action != `completed "Optics" (85%)` || second.Initials != "AS" {
		t.Errorf("unexpected second entry: %+v", second)
	}
	if second.Band != dashboard.BandGreat || second.TimeAgo != "5m ago" {
		t.Errorf("unexpected band/time: %+v", second)
	}

	last := feed[4]
	if last.Kind != dashboard.ActivityCreated || last.QuizID != "a" || last.Initials != "T" || last.TimeAgo != "2d ago" {
		t.Errorf("unexpected last entry: %+v", last)
	}

	for i := 1; i < len(feed); i++ {
		if feed[i].At.After(feed[i-1].At) {
			t.Fatalf("feed not sorted newest first at %d", i)
		}
	}
}

func TestBuildActivityKeepsTwenty(t *testing.T) {
	var quizzes []*quiz.Quiz
	for i := 0; i < 30; i++ {
		quizzes = append(quizzes, &quiz.Quiz{
			ID:        string(rune('a' + i%26)),
			Status:    quiz.StatusPending,
			CreatedAt: now.Add(-time.Duration(i) * time.Minute),
		})
	}
	if got := len(dashboard.BuildActivity(quizzes, now)); got != dashboard.ActivityKeep {
		t.Errorf("feed length = %d, want %d", got, dashboard.ActivityKeep)
	}
}

func TestHandlers(t *testing.T) {
	store := memstore.New()
	ctx := context.Background()
	_, _ = store.Create(ctx, &quiz.Quiz{Title: "Heat", Status: quiz.StatusPending, CreatedAt: now})
	h := dashboard.Routes(dashboard.NewHandler(dashboard.NewService(store)))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/stats", nil))
	var st dashboard.Stats
	if err := json.Unmarshal(rec.Body.Bytes(), &st); err != nil || st.PendingQuizzes != 1 {
		t.Errorf("stats = %s (%v)", rec.Body, err)
	}

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/activity", nil))
	var feed []dashboard.Activity
	if err := json.Unmarshal(rec.Body.Bytes(), &feed); err != nil || len(feed) != 1 {
		t.Errorf("activity = %s (%v)", rec.Body, err)
	}
}

func TestTeacherStatsHandler(t *testing.T) {
	store := memstore.New()
	ctx := context.Background()
	_, _ = store.Create(ctx, &quiz.Quiz{Title: "Heat", Status: quiz.StatusPending, CreatedAt: now})
	_, _ = store.Create(ctx, &quiz.Quiz{Title: "Waves", Status: quiz.StatusInProgress, CreatedAt: now})
	h := dashboard.Routes(dashboard.NewHandler(dashboard.NewService(store)))

	serve := func(claims *auth.Claims) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, "/teacher-stats", nil)
		if claims != nil {
			req = req.WithContext(auth.WithClaims(req.Context(), claims))
		}
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		return rec
	}

	rec := serve(&auth.Claims{UserID: "teacher-1", Role: auth.RoleTeacher})
	var st dashboard.TeacherStats
	if err := json.Unmarshal(rec.Body.Bytes(), &st); err != nil || rec.Code != http.StatusOK {
		t.Fatalf("teacher stats = %d %s (%v)", rec.Code, rec.Body, err)
	}
	if st.PendingQuizzes != 1 || st.InProgressQuizzes != 1 || st.ResponseTime != "N/A" {
		t.Errorf("unexpected stats: %+v", st)
	}

	if rec := serve(&auth.Claims{UserID: "student-1", Role: auth.RoleStudent}); rec.Code != http.StatusForbidden {
		t.Errorf("student = %d, want 403", rec.Code)
	}
	if rec := serve(nil); rec.Code != http.StatusUnauthorized {
		t.Errorf("anonymous = %d, want 401", rec.Code)
	}
}

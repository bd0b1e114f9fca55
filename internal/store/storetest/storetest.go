// Package storetest holds the behaviour every quiz.Store implementation
// must share. Backends call Run from their own tests.
package storetest

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/saulo-duarte/classroom-lambda/internal/quiz"
)

func SampleQuiz(title string, createdAt time.Time) *quiz.Quiz {
	return &quiz.Quiz{
		Title:    title,
		Course:   "Physics",
		Duration: 10,
		Questions: quiz.QuestionList{
			{ID: "q1", Question: "2+2?", Options: []string{"3", "4"}, CorrectAnswer: 1},
			{ID: "q2", Question: "Unit of force?", Options: []string{"Newton", "Joule", "Watt"}, CorrectAnswer: 0},
		},
		Status:    quiz.StatusPending,
		CreatedBy: "teacher-1",
		CreatedAt: createdAt,
	}
}

func Run(t *testing.T, newStore func(t *testing.T) quiz.Store) {
	ctx := context.Background()
	base := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

	t.Run("create and fetch round trips questions", func(t *testing.T) {
		s := newStore(t)
		id, err := s.Create(ctx, SampleQuiz("Kinematics", base))
		if err != nil {
			t.Fatalf("create: %v", err)
		}
		if id == "" {
			t.Fatal("expected store to assign an id")
		}

		got, err := s.FetchByID(ctx, id)
		if err != nil {
			t.Fatalf("fetch: %v", err)
		}
		if got.ID != id || got.Title != "Kinematics" || got.Status != quiz.StatusPending {
			t.Errorf("unexpected quiz: %+v", got)
		}
		if len(got.Questions) != 2 || got.Questions[1].Options[0] != "Newton" || got.Questions[0].CorrectAnswer != 1 {
			t.Errorf("questions not preserved: %+v", got.Questions)
		}
	})

	t.Run("fetch unknown id is not found", func(t *testing.T) {
		s := newStore(t)
		_, err := s.FetchByID(ctx, "does-not-exist")
		if !errors.Is(err, quiz.ErrNotFound) {
			t.Errorf("expected ErrNotFound, got %v", err)
		}
	})

	t.Run("update changes only named fields", func(t *testing.T) {
		s := newStore(t)
		id, err := s.Create(ctx, SampleQuiz("Optics", base))
		if err != nil {
			t.Fatalf("create: %v", err)
		}

		startedAt := base.Add(time.Hour)
		err = s.Update(ctx, id, quiz.Fields{
			quiz.FieldStatus:        quiz.StatusInProgress,
			quiz.FieldStartedAt:     startedAt,
			quiz.FieldStartedBy:     "student-1",
			quiz.FieldStartedByName: "Ana",
		})
		if err != nil {
			t.Fatalf("update: %v", err)
		}

		got, err := s.FetchByID(ctx, id)
		if err != nil {
			t.Fatalf("fetch: %v", err)
		}
		if got.Status != quiz.StatusInProgress || got.StartedByName != "Ana" {
			t.Errorf("update not applied: %+v", got)
		}
		if got.StartedAt == nil || !got.StartedAt.Equal(startedAt) {
			t.Errorf("startedAt = %v, want %v", got.StartedAt, startedAt)
		}
		if got.Title != "Optics" || len(got.Questions) != 2 {
			t.Errorf("untouched fields changed: %+v", got)
		}
		if got.Score != nil || got.CompletedAt != nil {
			t.Errorf("completion fields should still be empty: %+v", got)
		}
	})

	t.Run("update unknown id is not found", func(t *testing.T) {
		s := newStore(t)
		err := s.Update(ctx, "does-not-exist", quiz.Fields{quiz.FieldStatus: quiz.StatusCompleted})
		if !errors.Is(err, quiz.ErrNotFound) {
			t.Errorf("expected ErrNotFound, got %v", err)
		}
	})

	t.Run("list filters by status and orders newest first", func(t *testing.T) {
		s := newStore(t)
		var ids []string
		for i, title := range []string{"first", "second", "third"} {
			id, err := s.Create(ctx, SampleQuiz(title, base.Add(time.Duration(i)*time.Minute)))
			if err != nil {
				t.Fatalf("create: %v", err)
			}
			ids = append(ids, id)
		}
		if err := s.Update(ctx, ids[1], quiz.Fields{quiz.FieldStatus: quiz.StatusCompleted, quiz.FieldScore: 50}); err != nil {
			t.Fatalf("update: %v", err)
		}

		pending := quiz.StatusPending
		got, err := s.List(ctx, quiz.ListQuery{Status: &pending, OrderBy: quiz.OrderCreatedAt, Desc: true})
		if err != nil {
			t.Fatalf("list: %v", err)
		}
		if len(got) != 2 || got[0].Title != "third" || got[1].Title != "first" {
			t.Errorf("unexpected listing: %v", titles(got))
		}

		limited, err := s.List(ctx, quiz.ListQuery{OrderBy: quiz.OrderCreatedAt, Desc: true, Limit: 1})
		if err != nil {
			t.Fatalf("list: %v", err)
		}
		if len(limited) != 1 || limited[0].Title != "third" {
			t.Errorf("unexpected limited listing: %v", titles(limited))
		}
	})
}

func titles(qs []*quiz.Quiz) []string {
	out := make([]string, 0, len(qs))
	for _, q := range qs {
		out = append(out, q.Title)
	}
	return out
}

package dashboard

import (
	"context"
	"time"

	"github.com/saulo-duarte/classroom-lambda/internal/config"
	"github.com/saulo-duarte/classroom-lambda/internal/quiz"
)

type Service interface {
	Stats(ctx context.Context) (*Stats, error)
	TeacherStats(ctx context.Context) (*TeacherStats, error)
	Activity(ctx context.Context) ([]Activity, error)
}

type service struct {
	store quiz.Store
	now   func() time.Time
}

func NewService(store quiz.Store) Service {
	return &service{
		store: store,
		now:   func() time.Time { return time.Now().UTC() },
	}
}

func (s *service) Stats(ctx context.Context) (*Stats, error) {
	quizzes, err := s.store.List(ctx, quiz.ListQuery{OrderBy: quiz.OrderCreatedAt, Desc: true})
	if err != nil {
		config.WithContext(ctx).WithError(err).Error("Failed to load quizzes for stats")
		return nil, err
	}
	st := ComputeStats(quizzes)
	return &st, nil
}

func (s *service) TeacherStats(ctx context.Context) (*TeacherStats, error) {
	quizzes, err := s.store.List(ctx, quiz.ListQuery{OrderBy: quiz.OrderCreatedAt, Desc: true})
	if err != nil {
		config.WithContext(ctx).WithError(err).Error("Failed to load quizzes for teacher stats")
		return nil, err
	}
	st := ComputeTeacherStats(quizzes)
	return &st, nil
}

func (s *service) Activity(ctx context.Context) ([]Activity, error) {
	quizzes, err := s.store.List(ctx, quiz.ListQuery{
		OrderBy: quiz.OrderUpdatedAt,
		Desc:    true,
		Limit:   ActivityFetchLimit,
	})
	if err != nil {
		config.WithContext(ctx).WithError(err).Error("Failed to load quizzes for activity")
		return nil, err
	}
	return BuildActivity(quizzes, s.now()), nil
}

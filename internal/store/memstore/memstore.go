package memstore

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/saulo-duarte/classroom-lambda/internal/quiz"
)

// Store keeps quizzes in process memory. Used for local runs and tests.
type Store struct {
	mu      sync.RWMutex
	quizzes map[string]*quiz.Quiz
	now     func() time.Time
}

func New() *Store {
	return &Store{
		quizzes: make(map[string]*quiz.Quiz),
		now:     func() time.Time { return time.Now().UTC() },
	}
}

func (s *Store) FetchByID(ctx context.Context, id string) (*quiz.Quiz, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	q, ok := s.quizzes[id]
	if !ok {
		return nil, quiz.ErrNotFound
	}
	return q.Clone(), nil
}

func (s *Store) List(ctx context.Context, lq quiz.ListQuery) ([]*quiz.Quiz, error) {
	s.mu.RLock()
	out := make([]*quiz.Quiz, 0, len(s.quizzes))
	for _, q := range s.quizzes {
		if lq.Status != nil && q.Status != *lq.Status {
			continue
		}
		if lq.CreatedBy != "" && q.CreatedBy != lq.CreatedBy {
			continue
		}
		out = append(out, q.Clone())
	}
	s.mu.RUnlock()

	key := func(q *quiz.Quiz) time.Time {
		if lq.OrderBy == quiz.OrderUpdatedAt {
			return q.UpdatedAt
		}
		return q.CreatedAt
	}
	sort.SliceStable(out, func(i, j int) bool {
		if lq.Desc {
			return key(out[i]).After(key(out[j]))
		}
		return key(out[i]).Before(key(out[j]))
	})

	if lq.Limit > 0 && len(out) > lq.Limit {
		out = out[:lq.Limit]
	}
	return out, nil
}

func (s *Store) Create(ctx context.Context, q *quiz.Quiz) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c := q.Clone()
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	now := s.now()
	if c.CreatedAt.IsZero() {
		c.CreatedAt = now
	}
	c.UpdatedAt = now
	s.quizzes[c.ID] = c
	return c.ID, nil
}

func (s *Store) Update(ctx context.Context, id string, fields quiz.Fields) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	q, ok := s.quizzes[id]
	if !ok {
		return quiz.ErrNotFound
	}

	c := q.Clone()
	if err := fields.ApplyTo(c); err != nil {
		return err
	}
	c.UpdatedAt = s.now()
	s.quizzes[id] = c
	return nil
}

// Put stores q as-is, keeping its id and timestamps.
func (s *Store) Put(q *quiz.Quiz) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.quizzes[q.ID] = q.Clone()
}

package quiz

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/saulo-duarte/classroom-lambda/internal/config"
	"github.com/saulo-duarte/classroom-lambda/internal/metrics"
	"github.com/sirupsen/logrus"
)

var (
	ErrAlreadyCompleted = errors.New("quiz already completed")
	ErrLoadFailed       = errors.New("failed to load quiz")
	ErrPersistFailed    = errors.New("failed to persist quiz transition")
	ErrUserRequired     = errors.New("user id required")
)

// Ref points at the quiz to open: either a snapshot the caller already
// fetched, or an id to fetch fresh.
type Ref struct {
	id       string
	snapshot *Quiz
}

func RefID(id string) Ref {
	return Ref{id: id}
}

func RefSnapshot(q *Quiz) Ref {
	return Ref{snapshot: q}
}

func (r Ref) ID() string {
	if r.snapshot != nil {
		return r.snapshot.ID
	}
	return r.id
}

// Controller drives the pending -> in_progress -> completed lifecycle of
// quizzes. It never writes a backward transition.
type Controller struct {
	store     Store
	now       func() time.Time
	publisher Publisher
	guard     StartGuard
}

type Option func(*Controller)

func WithClock(now func() time.Time) Option {
	return func(c *Controller) { c.now = now }
}

func WithPublisher(p Publisher) Option {
	return func(c *Controller) { c.publisher = p }
}

func WithStartGuard(g StartGuard) Option {
	return func(c *Controller) { c.guard = g }
}

func NewController(store Store, opts ...Option) *Controller {
	c := &Controller{
		store: store,
		now:   func() time.Time { return time.Now().UTC() },
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Open starts an attempt. A pending quiz is moved to in_progress before the
// session is returned; an in-progress quiz is resumed untouched; a completed
// quiz is refused.
func (c *Controller) Open(ctx context.Context, ref Ref, user User) (*Session, error) {
	log := config.WithContext(ctx).WithField("quiz_id", ref.ID())

	if user.ID == "" {
		return nil, ErrUserRequired
	}

	q, err := c.load(ctx, ref)
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			metrics.ObserveOpen("not_found")
			log.Warn("Quiz not found")
		default:
			metrics.ObserveOpen("load_failed")
			log.WithError(err).Error("Failed to load quiz")
		}
		return nil, err
	}

	switch q.Status {
	case StatusCompleted:
		metrics.ObserveOpen("already_completed")
		log.Info("Refusing to open completed quiz")
		return nil, ErrAlreadyCompleted
	case StatusPending:
		c.start(ctx, log, q, user)
		metrics.ObserveOpen("started")
	case StatusInProgress:
		metrics.ObserveOpen("resumed")
	}

	return newSession(c, q, user), nil
}

func (c *Controller) load(ctx context.Context, ref Ref) (*Quiz, error) {
	var q *Quiz
	if ref.snapshot != nil {
		q = ref.snapshot.Clone()
	} else {
		if ref.id == "" {
			return nil, ErrNotFound
		}
		fetched, err := c.store.FetchByID(ctx, ref.id)
		if err != nil {
			if errors.Is(err, ErrNotFound) {
				return nil, err
			}
			return nil, fmt.Errorf("%w: %v", ErrLoadFailed, err)
		}
		q = fetched
	}

	if q.Status == "" {
		q.Status = StatusPending
	}
	if !q.Status.IsValid() {
		return nil, fmt.Errorf("%w: unknown status %q", ErrLoadFailed, q.Status)
	}
	if q.Status == StatusCompleted {
		return q, nil
	}
	if len(q.Questions) == 0 {
		return nil, fmt.Errorf("%w: quiz has no questions", ErrLoadFailed)
	}
	if err := ValidateQuestions(q.Questions); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrLoadFailed, err)
	}
	if q.Duration <= 0 {
		return nil, fmt.Errorf("%w: invalid duration %d", ErrLoadFailed, q.Duration)
	}
	return q, nil
}

// start persists the pending -> in_progress write. Failures are logged and
// the attempt proceeds anyway.
func (c *Controller) start(ctx context.Context, log logrus.FieldLogger, q *Quiz, user User) {
	if !q.Status.CanAdvanceTo(StatusInProgress) {
		return
	}

	if c.guard != nil {
		acquired, err := c.guard.AcquireStart(ctx, q.ID, user.ID)
		if err != nil {
			log.WithError(err).Warn("Start guard unavailable, writing start anyway")
		} else if !acquired {
			log.Info("Another session owns the start transition")
			metrics.ObserveTransition("start", "skipped")
			q.Status = StatusInProgress
			return
		}
	}

	now := c.now()
	fields := Fields{
		FieldStatus:        StatusInProgress,
		FieldStartedAt:     now,
		FieldStartedBy:     user.ID,
		FieldStartedByName: user.Name,
	}

	if err := c.store.Update(ctx, q.ID, fields); err != nil {
		metrics.ObserveTransition("start", "failed")
		log.WithError(fmt.Errorf("%w: %v", ErrPersistFailed, err)).
			WithField("user_id", user.ID).
			Warn("Failed to update quiz status to in_progress")
	} else {
		metrics.ObserveTransition("start", "ok")
		log.WithField("started_by", user.ID).Info("Quiz moved from pending to in_progress")
	}

	q.Status = StatusInProgress
	q.StartedAt = &now
	q.StartedBy = user.ID
	q.StartedByName = user.Name

	c.publish(ctx, Event{
		Type:     EventStarted,
		QuizID:   q.ID,
		Title:    q.Title,
		UserID:   user.ID,
		UserName: user.Name,
		At:       now,
	})
}

func (c *Controller) complete(ctx context.Context, q *Quiz, user User, correct, total, score int) (time.Time, error) {
	log := config.WithContext(ctx).WithFields(logrus.Fields{
		"quiz_id": q.ID,
		"user_id": user.ID,
	})

	now := c.now()
	fields := Fields{
		FieldStatus:          StatusCompleted,
		FieldCompletedAt:     now,
		FieldCompletedBy:     user.ID,
		FieldCompletedByName: user.Name,
		FieldScore:           score,
		FieldCorrectAnswers:  correct,
		FieldTotalQuestions:  total,
	}

	if err := c.store.Update(ctx, q.ID, fields); err != nil {
		metrics.ObserveTransition("complete", "failed")
		log.WithError(err).Error("Failed to update quiz completion status")
		return now, fmt.Errorf("%w: %v", ErrPersistFailed, err)
	}

	metrics.ObserveTransition("complete", "ok")
	log.WithField("score", score).Info("Quiz submitted")

	if err := fields.ApplyTo(q); err != nil {
		log.WithError(err).Warn("Failed to apply completion fields locally")
	}

	c.publish(ctx, Event{
		Type:     EventCompleted,
		QuizID:   q.ID,
		Title:    q.Title,
		UserID:   user.ID,
		UserName: user.Name,
		Score:    intPtr(score),
		At:       now,
	})
	return now, nil
}

func (c *Controller) publish(ctx context.Context, ev Event) {
	if c.publisher == nil {
		return
	}
	if err := c.publisher.Publish(ctx, ev); err != nil {
		config.WithContext(ctx).WithError(err).WithField("event", ev.Type).Warn("Failed to publish quiz event")
	}
}

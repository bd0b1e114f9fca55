package quiz

import (
	"context"
	"fmt"
)

// Session is the in-memory state of one attempt. It is not safe for
// concurrent use; Countdown serializes ticks and answer selection.
type Session struct {
	controller *Controller
	quiz       *Quiz
	user       User
	answers    Answers
	remaining  int

	result     *ScoreResult
	persistErr error
}

func newSession(c *Controller, q *Quiz, user User) *Session {
	return &Session{
		controller: c,
		quiz:       q,
		user:       user,
		answers:    Answers{},
		remaining:  q.DurationSeconds(),
	}
}

func (s *Session) Quiz() *Quiz {
	return s.quiz.Clone()
}

func (s *Session) User() User {
	return s.user
}

func (s *Session) Answers() Answers {
	return s.answers.clone()
}

// Remaining is the countdown in seconds.
func (s *Session) Remaining() int {
	return s.remaining
}

func (s *Session) Submitted() bool {
	return s.result != nil
}

// SelectAnswer records the option for questionID, replacing any earlier
// choice. The index is trusted to come from the rendered options.
func (s *Session) SelectAnswer(questionID string, optionIndex int) {
	if s.result != nil {
		return
	}
	s.answers[questionID] = optionIndex
}

// Tick advances the countdown by one second and submits when it reaches
// zero. It returns a nil result while time remains.
func (s *Session) Tick(ctx context.Context) (*ScoreResult, error) {
	if s.result != nil {
		return nil, nil
	}
	if s.remaining > 0 {
		s.remaining--
	}
	if s.remaining > 0 {
		return nil, nil
	}
	return s.Submit(ctx)
}

// Submit scores the attempt and persists the completed transition. The
// score is returned even when the write fails; the error then wraps
// ErrPersistFailed. Later calls return the first outcome.
func (s *Session) Submit(ctx context.Context) (*ScoreResult, error) {
	if s.result != nil {
		r := *s.result
		return &r, s.persistErr
	}

	correct, total, score := Score(s.quiz.Questions, s.answers)

	completedAt, err := s.controller.complete(ctx, s.quiz, s.user, correct, total, score)
	s.result = &ScoreResult{
		QuizID:         s.quiz.ID,
		CorrectAnswers: correct,
		TotalQuestions: total,
		Score:          score,
		CompletedAt:    completedAt,
		Persisted:      err == nil,
	}
	s.persistErr = err

	r := *s.result
	return &r, err
}

// FormatRemaining renders seconds as m:ss.
func FormatRemaining(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%d:%02d", seconds/60, seconds%60)
}

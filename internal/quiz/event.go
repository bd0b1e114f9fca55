package quiz

import (
	"context"
	"time"
)

const (
	EventCreated   = "quiz.created"
	EventStarted   = "quiz.started"
	EventCompleted = "quiz.completed"
)

type Event struct {
	Type     string    `json:"type"`
	QuizID   string    `json:"quiz_id"`
	Title    string    `json:"title"`
	UserID   string    `json:"user_id"`
	UserName string    `json:"user_name,omitempty"`
	Score    *int      `json:"score,omitempty"`
	At       time.Time `json:"at"`
}

type Publisher interface {
	Publish(ctx context.Context, ev Event) error
}

// StartGuard lets at most one opener own the pending to in_progress write.
type StartGuard interface {
	AcquireStart(ctx context.Context, quizID, userID string) (bool, error)
}

package quiz

import (
	"context"
	"errors"
	"fmt"
	"time"
)

var ErrNotFound = errors.New("quiz not found")

// Document field names shared by every store implementation.
const (
	FieldStatus          = "status"
	FieldStartedAt       = "startedAt"
	FieldStartedBy       = "startedBy"
	FieldStartedByName   = "startedByName"
	FieldCompletedAt     = "completedAt"
	FieldCompletedBy     = "completedBy"
	FieldCompletedByName = "completedByName"
	FieldScore           = "score"
	FieldCorrectAnswers  = "correctAnswers"
	FieldTotalQuestions  = "totalQuestions"
)

type OrderField string

const (
	OrderCreatedAt OrderField = "createdAt"
	OrderUpdatedAt OrderField = "updatedAt"
)

type ListQuery struct {
	Status    *Status
	CreatedBy string
	OrderBy   OrderField
	Desc      bool
	Limit     int
}

// Store is the document collection holding quizzes.
type Store interface {
	FetchByID(ctx context.Context, id string) (*Quiz, error)
	List(ctx context.Context, q ListQuery) ([]*Quiz, error)
	Create(ctx context.Context, q *Quiz) (string, error)
	Update(ctx context.Context, id string, fields Fields) error
}

// Fields is a partial update: only the named fields change.
type Fields map[string]interface{}

// ApplyTo copies the named fields onto q.
func (f Fields) ApplyTo(q *Quiz) error {
	for name, v := range f {
		var ok bool
		switch name {
		case FieldStatus:
			var s Status
			s, ok = v.(Status)
			q.Status = s
		case FieldStartedAt:
			q.StartedAt, ok = timePtr(v)
		case FieldStartedBy:
			q.StartedBy, ok = v.(string)
		case FieldStartedByName:
			q.StartedByName, ok = v.(string)
		case FieldCompletedAt:
			q.CompletedAt, ok = timePtr(v)
		case FieldCompletedBy:
			q.CompletedBy, ok = v.(string)
		case FieldCompletedByName:
			q.CompletedByName, ok = v.(string)
		case FieldScore:
			q.Score, ok = intValue(v)
		case FieldCorrectAnswers:
			q.CorrectAnswers, ok = intValue(v)
		case FieldTotalQuestions:
			q.TotalQuestions, ok = intValue(v)
		default:
			return fmt.Errorf("unknown quiz field %q", name)
		}
		if !ok {
			return fmt.Errorf("invalid value %T for quiz field %q", v, name)
		}
	}
	return nil
}

func timePtr(v interface{}) (*time.Time, bool) {
	t, ok := v.(time.Time)
	if !ok {
		return nil, false
	}
	return &t, true
}

func intValue(v interface{}) (*int, bool) {
	n, ok := v.(int)
	if !ok {
		return nil, false
	}
	return &n, true
}

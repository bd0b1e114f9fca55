package quiz

import (
	"fmt"
	"time"
)

const (
	MinOptions = 2
	MaxOptions = 4
)

type Question struct {
	ID            string   `json:"id"`
	Question      string   `json:"question"`
	Options       []string `json:"options"`
	CorrectAnswer int      `json:"correctAnswer"`
}

type Quiz struct {
	ID        string       `json:"id"`
	Title     string       `json:"title"`
	Course    string       `json:"course"`
	Duration  int          `json:"duration"`
	Questions QuestionList `json:"questions"`
	Status    Status       `json:"status"`
	CreatedBy string       `json:"createdBy,omitempty"`
	CreatedAt time.Time    `json:"createdAt"`
	UpdatedAt time.Time    `json:"updatedAt"`

	StartedAt     *time.Time `json:"startedAt,omitempty"`
	StartedBy     string     `json:"startedBy,omitempty"`
	StartedByName string     `json:"startedByName,omitempty"`

	CompletedAt     *time.Time `json:"completedAt,omitempty"`
	CompletedBy     string     `json:"completedBy,omitempty"`
	CompletedByName string     `json:"completedByName,omitempty"`
	Score           *int       `json:"score,omitempty"`
	CorrectAnswers  *int       `json:"correctAnswers,omitempty"`
	TotalQuestions  *int       `json:"totalQuestions,omitempty"`
}

// DurationSeconds is the countdown length of an attempt.
func (q *Quiz) DurationSeconds() int {
	return q.Duration * 60
}

func (q *Quiz) Clone() *Quiz {
	if q == nil {
		return nil
	}
	c := *q
	c.Questions = make(QuestionList, len(q.Questions))
	for i, qu := range q.Questions {
		qu.Options = append([]string(nil), qu.Options...)
		c.Questions[i] = qu
	}
	c.StartedAt = cloneTime(q.StartedAt)
	c.CompletedAt = cloneTime(q.CompletedAt)
	c.Score = cloneInt(q.Score)
	c.CorrectAnswers = cloneInt(q.CorrectAnswers)
	c.TotalQuestions = cloneInt(q.TotalQuestions)
	return &c
}

// User identifies who attempts or authors a quiz. It is always passed in
// explicitly by the caller.
type User struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Answers maps a question id to the selected option index.
type Answers map[string]int

func (a Answers) clone() Answers {
	c := make(Answers, len(a))
	for k, v := range a {
		c[k] = v
	}
	return c
}

type ScoreResult struct {
	QuizID         string    `json:"quizId"`
	CorrectAnswers int       `json:"correctAnswers"`
	TotalQuestions int       `json:"totalQuestions"`
	Score          int       `json:"score"`
	CompletedAt    time.Time `json:"completedAt"`
	Persisted      bool      `json:"persisted"`
}

func (r ScoreResult) String() string {
	return fmt.Sprintf("You scored %d/%d (%d%%)", r.CorrectAnswers, r.TotalQuestions, r.Score)
}

func cloneTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	v := *t
	return &v
}

func cloneInt(n *int) *int {
	if n == nil {
		return nil
	}
	v := *n
	return &v
}

func intPtr(n int) *int {
	return &n
}

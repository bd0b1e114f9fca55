package quiz

import "time"

type CreateQuestionDTO struct {
	ID            string   `json:"id" validate:"max=64"`
	Question      string   `json:"question" validate:"required"`
	Options       []string `json:"options" validate:"min=2"`
	CorrectAnswer int      `json:"correctAnswer" validate:"gte=0"`
}

type CreateQuizDTO struct {
	Title     string              `json:"title" validate:"required,max=200"`
	Course    string              `json:"course" validate:"required,max=200"`
	Duration  int                 `json:"duration" validate:"gte=0,lte=600"`
	Questions []CreateQuestionDTO `json:"questions" validate:"required,min=1,dive"`
}

type SubmitQuizDTO struct {
	Answers Answers `json:"answers"`
}

// QuestionView is what a student sees: no correct answer.
type QuestionView struct {
	ID       string   `json:"id"`
	Question string   `json:"question"`
	Options  []string `json:"options"`
}

type QuizResponse struct {
	ID        string         `json:"id"`
	Title     string         `json:"title"`
	Course    string         `json:"course"`
	Duration  int            `json:"duration"`
	Questions []QuestionView `json:"questions"`
	Status    Status         `json:"status"`
	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`

	StartedAt       *time.Time `json:"startedAt,omitempty"`
	StartedByName   string     `json:"startedByName,omitempty"`
	CompletedAt     *time.Time `json:"completedAt,omitempty"`
	CompletedByName string     `json:"completedByName,omitempty"`
	Score           *int       `json:"score,omitempty"`
	CorrectAnswers  *int       `json:"correctAnswers,omitempty"`
	TotalQuestions  *int       `json:"totalQuestions,omitempty"`
}

type SessionResponse struct {
	Quiz             QuizResponse `json:"quiz"`
	RemainingSeconds int          `json:"remainingSeconds"`
	Remaining        string       `json:"remaining"`
}

type SubmitResponse struct {
	ScoreResult
	Message string `json:"message"`
}

func toQuizResponse(q *Quiz) QuizResponse {
	views := make([]QuestionView, 0, len(q.Questions))
	for _, qu := range q.Questions {
		views = append(views, QuestionView{
			ID:       qu.ID,
			Question: qu.Question,
			Options:  qu.Options,
		})
	}

	return QuizResponse{
		ID:              q.ID,
		Title:           q.Title,
		Course:          q.Course,
		Duration:        q.Duration,
		Questions:       views,
		Status:          q.Status,
		CreatedAt:       q.CreatedAt,
		UpdatedAt:       q.UpdatedAt,
		StartedAt:       q.StartedAt,
		StartedByName:   q.StartedByName,
		CompletedAt:     q.CompletedAt,
		CompletedByName: q.CompletedByName,
		Score:           q.Score,
		CorrectAnswers:  q.CorrectAnswers,
		TotalQuestions:  q.TotalQuestions,
	}
}

func toSessionResponse(s *Session) SessionResponse {
	return SessionResponse{
		Quiz:             toQuizResponse(s.quiz),
		RemainingSeconds: s.Remaining(),
		Remaining:        FormatRemaining(s.Remaining()),
	}
}

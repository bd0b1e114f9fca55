package dashboard

import "time"

type Band string

const (
	BandGreat         Band = "great"
	BandGood          Band = "good"
	BandKeepImproving Band = "keep_improving"
)

type Stats struct {
	CompletedQuizzes int  `json:"completedQuizzes"`
	PendingQuizzes   int  `json:"pendingQuizzes"`
	AverageScore     int  `json:"averageScore"`
	Band             Band `json:"band"`
}

// TeacherStats is the class overview shown to teachers.
type TeacherStats struct {
	PendingQuizzes    int    `json:"pendingQuizzes"`
	InProgressQuizzes int    `json:"inProgressQuizzes"`
	CompletedQuizzes  int    `json:"completedQuizzes"`
	AverageGrade      int    `json:"averageGrade"`
	ResponseTime      string `json:"responseTime"`
}

type ActivityKind string

const (
	ActivityCreated   ActivityKind = "created"
	ActivityStarted   ActivityKind = "started"
	ActivityCompleted ActivityKind = "completed"
)

type Activity struct {
	ID       string       `json:"id"`
	Kind     ActivityKind `json:"kind"`
	QuizID   string       `json:"quizId"`
	User     string       `json:"user"`
	Initials string       `json:"initials"`
	Action   string       `json:"action"`
	Band     Band         `json:"band,omitempty"`
	At       time.Time    `json:"at"`
	TimeAgo  string       `json:"timeAgo"`
}

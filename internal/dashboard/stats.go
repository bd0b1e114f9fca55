package dashboard

import (
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/saulo-duarte/classroom-lambda/internal/quiz"
	util "github.com/saulo-duarte/classroom-lambda/internal/utils"
)

const (
	ActivityFetchLimit = 30
	ActivityKeep       = 20
	anonymousStudent   = "Student"
	noResponseTime     = "N/A"
)

func ScoreBand(score int) Band {
	switch {
	case score >= 80:
		return BandGreat
	case score >= 60:
		return BandGood
	default:
		return BandKeepImproving
	}
}

// ComputeStats counts quizzes by status and averages the scores of the
// completed ones, rounded half up. In-progress quizzes count as pending.
func ComputeStats(quizzes []*quiz.Quiz) Stats {
	var st Stats
	sum, scored := 0, 0
	for _, q := range quizzes {
		switch q.Status {
		case quiz.StatusCompleted:
			st.CompletedQuizzes++
			if q.Score != nil {
				sum += *q.Score
				scored++
			}
		case quiz.StatusPending, quiz.StatusInProgress:
			st.PendingQuizzes++
		}
	}
	if scored > 0 {
		st.AverageScore = (2*sum + scored) / (2 * scored)
	}
	st.Band = ScoreBand(st.AverageScore)
	return st
}

// ComputeTeacherStats counts quizzes per status, averages the grades of
// scored completed quizzes and the time they took from creation to
// completion.
func ComputeTeacherStats(quizzes []*quiz.Quiz) TeacherStats {
	var st TeacherStats
	sum, scored := 0, 0
	var minutes float64
	timed := 0
	for _, q := range quizzes {
		switch q.Status {
		case quiz.StatusPending:
			st.PendingQuizzes++
		case quiz.StatusInProgress:
			st.InProgressQuizzes++
		case quiz.StatusCompleted:
			st.CompletedQuizzes++
			if q.Score == nil {
				continue
			}
			sum += *q.Score
			scored++
			if !q.CreatedAt.IsZero() && q.CompletedAt != nil {
				minutes += math.Abs(q.CompletedAt.Sub(q.CreatedAt).Minutes())
				timed++
			}
		}
	}
	if scored > 0 {
		st.AverageGrade = (2*sum + scored) / (2 * scored)
	}
	st.ResponseTime = noResponseTime
	if timed > 0 {
		st.ResponseTime = FormatResponseTime(minutes / float64(timed))
	}
	return st
}

// FormatResponseTime renders minutes as Nm below an hour, Nh below a day
// and Nd otherwise.
func FormatResponseTime(minutes float64) string {
	switch {
	case minutes < 60:
		return fmt.Sprintf("%dm", roundHalfUp(minutes))
	case minutes < 24*60:
		return fmt.Sprintf("%dh", roundHalfUp(minutes/60))
	default:
		return fmt.Sprintf("%dd", roundHalfUp(minutes/(24*60)))
	}
}

func roundHalfUp(v float64) int {
	return int(math.Floor(v + 0.5))
}

// BuildActivity turns recently updated quizzes into a feed, newest first.
func BuildActivity(quizzes []*quiz.Quiz, now time.Time) []Activity {
	var out []Activity
	for _, q := range quizzes {
		if !q.CreatedAt.IsZero() {
			a := newActivity(q, ActivityCreated, "you", fmt.Sprintf("created %q", q.Title), q.CreatedAt)
			a.Initials = "T"
			out = append(out, a)
		}
		if q.Status == quiz.StatusInProgress && q.StartedAt != nil {
			out = append(out, newActivity(q, ActivityStarted, actor(q.StartedByName), fmt.Sprintf("started %q", q.Title), *q.StartedAt))
		}
		if q.Status == quiz.StatusCompleted && q.CompletedAt != nil {
			score := 0
			if q.Score != nil {
				score = *q.Score
			}
			a := newActivity(q, ActivityCompleted, actor(q.CompletedByName), fmt.Sprintf("completed %q (%d%%)", q.Title, score), *q.CompletedAt)
			a.Band = ScoreBand(score)
			out = append(out, a)
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].At.After(out[j].At)
	})
	if len(out) > ActivityKeep {
		out = out[:ActivityKeep]
	}
	for i := range out {
		out[i].TimeAgo = util.TimeAgo(out[i].At, now)
	}
	return out
}

func newActivity(q *quiz.Quiz, kind ActivityKind, user, action string, at time.Time) Activity {
	return Activity{
		ID:       fmt.Sprintf("%s-%s", kind, q.ID),
		Kind:     kind,
		QuizID:   q.ID,
		User:     user,
		Initials: util.Initials(user),
		Action:   action,
		At:       at,
	}
}

func actor(name string) string {
	if name == "" {
		return anonymousStudent
	}
	return name
}

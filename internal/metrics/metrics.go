package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// Opens by outcome: started, resumed, already_completed, not_found, load_failed
	quizOpens = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "classroom_quiz_open_total",
			Help: "Total number of quiz open attempts",
		},
		[]string{"outcome"},
	)

	// Lifecycle writes by transition and outcome: ok, failed, skipped
	transitionWrites = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "classroom_quiz_transition_writes_total",
			Help: "Total number of quiz status transition writes",
		},
		[]string{"transition", "outcome"},
	)

	quizScores = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "classroom_quiz_score_percent",
			Help:    "Distribution of submitted quiz scores",
			Buckets: prometheus.LinearBuckets(0, 10, 11),
		},
	)

	autoSubmits = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "classroom_quiz_auto_submit_total",
			Help: "Total number of quizzes submitted by the countdown",
		},
	)
)

func ObserveOpen(outcome string) {
	quizOpens.WithLabelValues(outcome).Inc()
}

func ObserveTransition(transition, outcome string) {
	transitionWrites.WithLabelValues(transition, outcome).Inc()
}

func ObserveScore(score int) {
	quizScores.Observe(float64(score))
}

func ObserveAutoSubmit() {
	autoSubmits.Inc()
}

func Handler() http.Handler {
	return promhttp.Handler()
}

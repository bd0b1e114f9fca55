package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/saulo-duarte/classroom-lambda/internal/aiquiz"
	"github.com/saulo-duarte/classroom-lambda/internal/auth"
	"github.com/saulo-duarte/classroom-lambda/internal/config"
	"github.com/saulo-duarte/classroom-lambda/internal/dashboard"
	"github.com/saulo-duarte/classroom-lambda/internal/metrics"
	"github.com/saulo-duarte/classroom-lambda/internal/middlewares"
	"github.com/saulo-duarte/classroom-lambda/internal/quiz"
	"github.com/saulo-duarte/classroom-lambda/internal/user"
)

type RouterConfig struct {
	QuizHandler      *quiz.Handler
	DashboardHandler *dashboard.Handler
	AIQuizHandler    *aiquiz.Handler
	UserHandler      *user.Handler
}

func New(cfg RouterConfig) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middlewares.CorsMiddleware)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		config.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Handle("/metrics", metrics.Handler())

	r.Group(func(r chi.Router) {
		r.Use(auth.AuthMiddleware)

		r.Mount("/quizzes", quiz.Routes(cfg.QuizHandler))
		r.Mount("/dashboard", dashboard.Routes(cfg.DashboardHandler))
		r.Mount("/ai-quiz", aiquiz.Routes(cfg.AIQuizHandler))
		r.Mount("/users", user.Routes(cfg.UserHandler))
	})
	return r
}

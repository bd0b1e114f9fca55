package quiz

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/saulo-duarte/classroom-lambda/internal/auth"
	"github.com/saulo-duarte/classroom-lambda/internal/config"
)

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	claims, err := auth.GetUserClaimsFromContext(r.Context())
	if err != nil {
		log.Warn("User not authenticated")
		config.Error(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	if !claims.IsTeacher() {
		log.Warn("Only teachers can create quizzes")
		config.Error(w, http.StatusForbidden, "only teachers can create quizzes")
		return
	}

	var dto CreateQuizDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		log.WithError(err).Error("Invalid request body")
		config.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	q, err := h.service.Create(r.Context(), userFromClaims(claims), dto)
	if err != nil {
		writeError(w, err)
		return
	}

	config.JSON(w, http.StatusCreated, q)
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	claims, err := auth.GetUserClaimsFromContext(r.Context())
	if err != nil {
		config.Error(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	query := ListQuery{OrderBy: OrderCreatedAt, Desc: true}
	if raw := r.URL.Query().Get("status"); raw != "" {
		status := Status(raw)
		if !status.IsValid() {
			config.Error(w, http.StatusBadRequest, "invalid status")
			return
		}
		query.Status = &status
	}
	if raw := r.URL.Query().Get("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil || limit < 0 {
			config.Error(w, http.StatusBadRequest, "invalid limit")
			return
		}
		query.Limit = limit
	}

	quizzes, err := h.service.List(r.Context(), query)
	if err != nil {
		writeError(w, err)
		return
	}

	if claims.IsTeacher() {
		config.JSON(w, http.StatusOK, quizzes)
		return
	}
	views := make([]QuizResponse, 0, len(quizzes))
	for _, q := range quizzes {
		views = append(views, toQuizResponse(q))
	}
	config.JSON(w, http.StatusOK, views)
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	claims, err := auth.GetUserClaimsFromContext(r.Context())
	if err != nil {
		config.Error(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	q, err := h.service.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}

	if claims.IsTeacher() {
		config.JSON(w, http.StatusOK, q)
		return
	}
	config.JSON(w, http.StatusOK, toQuizResponse(q))
}

func (h *Handler) Start(w http.ResponseWriter, r *http.Request) {
	claims, err := auth.GetUserClaimsFromContext(r.Context())
	if err != nil {
		config.Error(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	session, err := h.service.Start(r.Context(), chi.URLParam(r, "id"), userFromClaims(claims))
	if err != nil {
		writeError(w, err)
		return
	}

	config.JSON(w, http.StatusOK, toSessionResponse(session))
}

func (h *Handler) Submit(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	claims, err := auth.GetUserClaimsFromContext(r.Context())
	if err != nil {
		config.Error(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var dto SubmitQuizDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		log.WithError(err).Error("Invalid request body")
		config.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	result, err := h.service.Submit(r.Context(), chi.URLParam(r, "id"), userFromClaims(claims), dto.Answers)
	if err != nil && !errors.Is(err, ErrPersistFailed) {
		writeError(w, err)
		return
	}

	// A failed completion write still reports the score to the student.
	config.JSON(w, http.StatusOK, SubmitResponse{
		ScoreResult: *result,
		Message:     result.String(),
	})
}

func userFromClaims(c *auth.Claims) User {
	return User{ID: c.UserID, Name: c.Name}
}

func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrNotFound):
		config.Error(w, http.StatusNotFound, "quiz not found")
	case errors.Is(err, ErrAlreadyCompleted):
		config.Error(w, http.StatusConflict, "this quiz has already been completed")
	case errors.Is(err, ErrLoadFailed):
		config.Error(w, http.StatusUnprocessableEntity, "failed to load quiz")
	case errors.Is(err, ErrValidation), errors.Is(err, ErrUserRequired):
		config.Error(w, http.StatusBadRequest, err.Error())
	default:
		config.Error(w, http.StatusInternalServerError, "internal server error")
	}
}

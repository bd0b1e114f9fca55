package aiquiz

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/saulo-duarte/classroom-lambda/internal/auth"
	"github.com/saulo-duarte/classroom-lambda/internal/config"
)

type Handler struct {
	service Service
}

func NewHandler(s Service) *Handler {
	return &Handler{service: s}
}

func (h *Handler) DraftQuestions(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	claims, err := auth.GetUserClaimsFromContext(r.Context())
	if err != nil {
		config.Error(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	if !claims.IsTeacher() {
		config.Error(w, http.StatusForbidden, "only teachers can draft questions")
		return
	}

	var req DraftRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		config.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	questions, err := h.service.DraftQuestions(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, ErrUnavailable):
			config.Error(w, http.StatusServiceUnavailable, err.Error())
		case errors.Is(err, ErrTopicMissing):
			config.Error(w, http.StatusBadRequest, err.Error())
		default:
			log.WithError(err).Error("Failed to draft questions")
			config.Error(w, http.StatusBadGateway, "failed to draft questions")
		}
		return
	}

	config.JSON(w, http.StatusCreated, questions)
}

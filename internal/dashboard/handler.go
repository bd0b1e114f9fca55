package dashboard

import (
	"net/http"

	"github.com/saulo-duarte/classroom-lambda/internal/auth"
	"github.com/saulo-duarte/classroom-lambda/internal/config"
)

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) Stats(w http.ResponseWriter, r *http.Request) {
	st, err := h.service.Stats(r.Context())
	if err != nil {
		config.Error(w, http.StatusInternalServerError, "internal server error")
		return
	}
	config.JSON(w, http.StatusOK, st)
}

func (h *Handler) TeacherStats(w http.ResponseWriter, r *http.Request) {
	claims, err := auth.GetUserClaimsFromContext(r.Context())
	if err != nil {
		config.Error(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	if !claims.IsTeacher() {
		config.Error(w, http.StatusForbidden, "only teachers can view class stats")
		return
	}

	st, err := h.service.TeacherStats(r.Context())
	if err != nil {
		config.Error(w, http.StatusInternalServerError, "internal server error")
		return
	}
	config.JSON(w, http.StatusOK, st)
}

func (h *Handler) Activity(w http.ResponseWriter, r *http.Request) {
	feed, err := h.service.Activity(r.Context())
	if err != nil {
		config.Error(w, http.StatusInternalServerError, "internal server error")
		return
	}
	if feed == nil {
		feed = []Activity{}
	}
	config.JSON(w, http.StatusOK, feed)
}

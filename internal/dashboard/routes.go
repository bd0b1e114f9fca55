package dashboard

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

func Routes(h *Handler) http.Handler {
	r := chi.NewRouter()

	r.Get("/stats", h.Stats)
	r.Get("/teacher-stats", h.TeacherStats)
	r.Get("/activity", h.Activity)

	return r
}

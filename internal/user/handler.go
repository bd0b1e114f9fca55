package user

import (
	"net/http"

	"github.com/saulo-duarte/classroom-lambda/internal/auth"
	"github.com/saulo-duarte/classroom-lambda/internal/config"
)

type Me struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Role      string `json:"role"`
	IsTeacher bool   `json:"isTeacher"`
}

type Handler struct{}

func NewHandler() *Handler {
	return &Handler{}
}

// GetUser returns the identity carried by the token; quiz attempts are
// attributed to this id and name.
func (h *Handler) GetUser(w http.ResponseWriter, r *http.Request) {
	claims, err := auth.GetUserClaimsFromContext(r.Context())
	if err != nil {
		config.WithContext(r.Context()).Warn("User not authenticated")
		config.Error(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	config.JSON(w, http.StatusOK, Me{
		ID:        claims.UserID,
		Name:      claims.Name,
		Role:      claims.Role,
		IsTeacher: claims.IsTeacher(),
	})
}

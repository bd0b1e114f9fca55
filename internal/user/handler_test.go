package user_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/saulo-duarte/classroom-lambda/internal/auth"
	"github.com/saulo-duarte/classroom-lambda/internal/user"
)

func TestGetUser(t *testing.T) {
	h := user.Routes(user.NewHandler())

	t.Run("returns token identity", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		req = req.WithContext(auth.WithClaims(req.Context(), &auth.Claims{UserID: "u1", Name: "Ana", Role: auth.RoleTeacher}))
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)

		var me user.Me
		if err := json.Unmarshal(rec.Body.Bytes(), &me); err != nil {
			t.Fatalf("decode: %v", err)
		}
		if me.ID != "u1" || me.Name != "Ana" || !me.IsTeacher {
			t.Errorf("unexpected identity: %+v", me)
		}
	})

	t.Run("without claims", func(t *testing.T) {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/me", nil))
		if rec.Code != http.StatusUnauthorized {
			t.Errorf("status = %d", rec.Code)
		}
	})
}

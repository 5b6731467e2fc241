package participants

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/ellarises/ellahub/internal/app/system/auth"
	"go.uber.org/zap"
)

func TestRoutes_RequireAdmin(t *testing.T) {
	h := NewHandler(nil, nil, zap.NewNop())
	router := Routes(h)

	t.Run("anonymous html redirects to login", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Accept", "text/html")
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		if rec.Code != http.StatusSeeOther {
			t.Fatalf("status = %d, want 303", rec.Code)
		}
		if loc := rec.Header().Get("Location"); !strings.HasPrefix(loc, "/login") {
			t.Errorf("redirect = %q, want /login...", loc)
		}
	})

	t.Run("participant gets forbidden", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req = auth.WithTestUser(req, &auth.SessionUser{ID: 9, Name: "Ana", Role: "participant"})
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		if rec.Code != http.StatusForbidden {
			t.Fatalf("status = %d, want 403", rec.Code)
		}
	})
}

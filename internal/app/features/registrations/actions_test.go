package registrations

import (
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/ellarises/ellahub/internal/app/system/auth"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func TestActionRoutes_AnonymousGets401(t *testing.T) {
	h := NewHandler(nil, nil, zap.NewNop())
	router := chi.NewRouter()
	ActionRoutes(router, h)

	req := httptest.NewRequest(http.MethodPost, "/register-event/3", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rec.Code)
	}
}

func TestHandleRegister_InvalidEventID(t *testing.T) {
	h := NewHandler(nil, nil, zap.NewNop())
	router := chi.NewRouter()
	ActionRoutes(router, h)

	req := httptest.NewRequest(http.MethodPost, "/register-event/abc", nil)
	req = auth.WithTestUser(req, &auth.SessionUser{ID: 5, Name: "Ana", Role: "participant"})
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	var body map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body["success"] != false {
		t.Errorf("success = %v, want false", body["success"])
	}
}

func TestPastDeadline(t *testing.T) {
	day := time.Date(2025, time.March, 10, 0, 0, 0, 0, time.UTC)
	tests := []struct {
		name  string
		date  sql.NullTime
		clock string
		now   time.Time
		want  bool
	}{
		{"no deadline", sql.NullTime{}, "", time.Date(2099, 1, 1, 0, 0, 0, 0, time.UTC), false},
		{"before deadline day", sql.NullTime{Time: day, Valid: true}, "",
			time.Date(2025, time.March, 9, 12, 0, 0, 0, time.UTC), false},
		{"on deadline day no time", sql.NullTime{Time: day, Valid: true}, "",
			time.Date(2025, time.March, 10, 18, 0, 0, 0, time.UTC), false},
		{"after deadline day", sql.NullTime{Time: day, Valid: true}, "",
			time.Date(2025, time.March, 11, 0, 0, 0, 0, time.UTC), true},
		{"after deadline time", sql.NullTime{Time: day, Valid: true}, "12:00:00",
			time.Date(2025, time.March, 10, 12, 30, 0, 0, time.UTC), true},
		{"before deadline time", sql.NullTime{Time: day, Valid: true}, "12:00:00",
			time.Date(2025, time.March, 10, 11, 0, 0, 0, time.UTC), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := pastDeadline(tt.date, tt.clock, tt.now); got != tt.want {
				t.Errorf("pastDeadline = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestHandleCheckIn_RequiresAdmin(t *testing.T) {
	h := NewHandler(nil, nil, zap.NewNop())
	router := chi.NewRouter()
	ActionRoutes(router, h)

	req := httptest.NewRequest(http.MethodPost, "/check-in/7", nil)
	req = auth.WithTestUser(req, &auth.SessionUser{ID: 5, Name: "Ana", Role: "participant"})
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusForbidden {
		t.Fatalf("status = %d, want 403", rec.Code)
	}
}

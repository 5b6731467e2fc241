package records

import (
	"database/sql"
	"database/sql/driver"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/ellarises/ellahub/internal/app/system/auth"
	"github.com/ellarises/ellahub/internal/app/system/registry"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// A write-only stub driver: every Exec reports one affected row, which is
// all the delete path needs.

func init() { sql.Register("recordsstub", stubDriver{}) }

type stubDriver struct{}

func (stubDriver) Open(string) (driver.Conn, error) { return stubConn{}, nil }

type stubConn struct{}

func (stubConn) Prepare(query string) (driver.Stmt, error) {
	return stubStmt{n: strings.Count(query, "$")}, nil
}
func (stubConn) Close() error              { return nil }
func (stubConn) Begin() (driver.Tx, error) { return nil, errors.New("transactions not supported") }

type stubStmt struct{ n int }

func (s stubStmt) Close() error  { return nil }
func (s stubStmt) NumInput() int { return s.n }
func (s stubStmt) Exec([]driver.Value) (driver.Result, error) {
	return driver.RowsAffected(1), nil
}
func (s stubStmt) Query([]driver.Value) (driver.Rows, error) {
	return nil, errors.New("queries not supported")
}

func newTestHandler(t *testing.T) *Handler {
	t.Helper()
	mgr, err := auth.NewSessionManager("0123456789abcdef0123456789abcdef", "ellahub_test", "", false, zap.NewNop())
	if err != nil {
		t.Fatalf("NewSessionManager: %v", err)
	}
	return NewHandler(nil, mgr, zap.NewNop())
}

func asAdmin(r *http.Request) *http.Request {
	return auth.WithTestUser(r, &auth.SessionUser{ID: 1, Name: "Admin", Role: "admin"})
}

func TestHandleDelete_UnknownTable(t *testing.T) {
	h := newTestHandler(t)
	router := chi.NewRouter()
	Routes(router, h)

	req := httptest.NewRequest(http.MethodPost, "/delete/secrets/1", nil)
	req = asAdmin(req)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
	var body map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body["success"] != false {
		t.Errorf("success = %v, want false", body["success"])
	}
}

func TestHandleAdd_RejectsUnknownField(t *testing.T) {
	h := newTestHandler(t)
	router := chi.NewRouter()
	Routes(router, h)

	form := strings.NewReader("milestone_title=First+Job&is_admin=1")
	req := httptest.NewRequest(http.MethodPost, "/add/milestones", form)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req = asAdmin(req)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestRoutes_AddRequiresAdmin(t *testing.T) {
	h := newTestHandler(t)
	router := chi.NewRouter()
	Routes(router, h)

	req := httptest.NewRequest(http.MethodGet, "/add/milestones", nil)
	req = auth.WithTestUser(req, &auth.SessionUser{ID: 7, Name: "Ana", Role: "participant"})
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusForbidden {
		t.Fatalf("status = %d, want 403", rec.Code)
	}
}

func TestProfileDelete_OtherUsersRowForbidden(t *testing.T) {
	h := newTestHandler(t)
	router := chi.NewRouter()
	Routes(router, h)

	// Participant 7 tries to delete users row 8: ownership fails before any
	// store call, so no DB is needed.
	req := httptest.NewRequest(http.MethodPost, "/profile-delete/users/8", nil)
	req = auth.WithTestUser(req, &auth.SessionUser{ID: 7, Name: "Ana", Role: "participant"})
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusForbidden {
		t.Fatalf("status = %d, want 403", rec.Code)
	}
}

func TestProfileDelete_OwnAccountSignsOut(t *testing.T) {
	db, err := sql.Open("recordsstub", "")
	if err != nil {
		t.Fatalf("open stub db: %v", err)
	}
	defer db.Close()

	mgr, err := auth.NewSessionManager("0123456789abcdef0123456789abcdef", "ellahub_test", "", false, zap.NewNop())
	if err != nil {
		t.Fatalf("NewSessionManager: %v", err)
	}
	h := NewHandler(db, mgr, zap.NewNop())
	router := chi.NewRouter()
	Routes(router, h)

	req := httptest.NewRequest(http.MethodPost, "/profile-delete/users/7", nil)
	req = auth.WithTestUser(req, &auth.SessionUser{ID: 7, Name: "Ana", Role: "participant"})
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", rec.Code, rec.Body.String())
	}
	var body map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body["success"] != true {
		t.Errorf("success = %v, want true", body["success"])
	}
	if body["redirect"] != "/" {
		t.Errorf("redirect = %v, want /", body["redirect"])
	}

	cleared := false
	for _, c := range rec.Result().Cookies() {
		if c.Name == "ellahub_test" && c.MaxAge < 0 {
			cleared = true
		}
	}
	if !cleared {
		t.Error("session cookie was not cleared")
	}
}

func TestSpecFieldsAreAllowListed(t *testing.T) {
	// Every form field must survive the registry allow-list, or the generic
	// add handler would reject its own form.
	for table, spec := range formSpecs {
		for _, f := range spec {
			form := url.Values{f.Name: {"x"}}
			e, ok := registry.Lookup(table)
			if !ok {
				t.Fatalf("table %q missing from registry", table)
			}
			if _, err := e.Fields(form); err != nil {
				t.Errorf("%s.%s rejected by allow-list: %v", table, f.Name, err)
			}
		}
	}
}

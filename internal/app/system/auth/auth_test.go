package auth

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"go.uber.org/zap"
)

func newTestManager(t *testing.T) *SessionManager {
	t.Helper()
	m, err := NewSessionManager("0123456789abcdef0123456789abcdef", "ellahub-session", "", false, zap.NewNop())
	if err != nil {
		t.Fatalf("NewSessionManager: %v", err)
	}
	return m
}

// carryCookies copies Set-Cookie headers from a response onto a new request.
func carryCookies(t *testing.T, rec *httptest.ResponseRecorder, req *http.Request) {
	t.Helper()
	for _, c := range rec.Result().Cookies() {
		req.AddCookie(c)
	}
}

func TestSignInThenLoadSessionUser(t *testing.T) {
	m := newTestManager(t)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/login", nil)
	if err := m.SignIn(rec, req, SessionUser{ID: 42, Name: "Ella", Role: "admin"}); err != nil {
		t.Fatalf("SignIn: %v", err)
	}

	next := httptest.NewRequest("GET", "/users", nil)
	carryCookies(t, rec, next)

	var got *SessionUser
	h := m.LoadSessionUser(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got, _ = CurrentUser(r)
	}))
	h.ServeHTTP(httptest.NewRecorder(), next)

	if got == nil {
		t.Fatal("no user loaded from session")
	}
	if got.ID != 42 || got.Name != "Ella" || got.Role != "admin" {
		t.Errorf("loaded user = %+v", got)
	}
}

func TestSignOutClearsSession(t *testing.T) {
	m := newTestManager(t)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/login", nil)
	if err := m.SignIn(rec, req, SessionUser{ID: 7, Name: "P", Role: "participant"}); err != nil {
		t.Fatalf("SignIn: %v", err)
	}

	outReq := httptest.NewRequest("GET", "/logout", nil)
	carryCookies(t, rec, outReq)
	outRec := httptest.NewRecorder()
	if err := m.SignOut(outRec, outReq); err != nil {
		t.Fatalf("SignOut: %v", err)
	}

	// Cookie must be expired so subsequent requests are unauthenticated.
	expired := false
	for _, c := range outRec.Result().Cookies() {
		if c.Name == "ellahub-session" && c.MaxAge < 0 {
			expired = true
		}
	}
	if !expired {
		t.Error("SignOut did not expire the session cookie")
	}
}

func TestFlashPopOnce(t *testing.T) {
	m := newTestManager(t)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/add/events", nil)
	m.SetFlash(rec, req, "Added Successfully!", "success")

	listReq := httptest.NewRequest("GET", "/events", nil)
	carryCookies(t, rec, listReq)
	listRec := httptest.NewRecorder()

	msg, typ := m.PopFlash(listRec, listReq)
	if msg != "Added Successfully!" || typ != "success" {
		t.Errorf("PopFlash = %q, %q", msg, typ)
	}

	// A second render must not see the message again.
	again := httptest.NewRequest("GET", "/events", nil)
	carryCookies(t, listRec, again)
	msg, _ = m.PopFlash(httptest.NewRecorder(), again)
	if msg != "" {
		t.Errorf("flash not cleared, got %q", msg)
	}
}

func TestPopFlashQueryFallback(t *testing.T) {
	m := newTestManager(t)
	req := httptest.NewRequest("GET", "/users?message=Deleted&messageType=danger", nil)
	msg, typ := m.PopFlash(httptest.NewRecorder(), req)
	if msg != "Deleted" || typ != "danger" {
		t.Errorf("PopFlash fallback = %q, %q", msg, typ)
	}
}

func TestRequireSignedIn(t *testing.T) {
	h := RequireSignedIn(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	// Anonymous HTML request redirects to login.
	req := httptest.NewRequest("GET", "/calendar", nil)
	req.Header.Set("Accept", "text/html")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusSeeOther {
		t.Errorf("anonymous HTML: code = %d, want 303", rec.Code)
	}
	if loc := rec.Header().Get("Location"); !strings.HasPrefix(loc, "/login?return=") {
		t.Errorf("redirect location = %q", loc)
	}

	// Anonymous API request gets 401.
	req = httptest.NewRequest("POST", "/register-event/3", nil)
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("anonymous API: code = %d, want 401", rec.Code)
	}

	// Signed-in request passes through.
	req = WithTestUser(httptest.NewRequest("GET", "/calendar", nil), &SessionUser{ID: 1, Role: "participant"})
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Errorf("signed in: code = %d, want 200", rec.Code)
	}
}

func TestRequireRole(t *testing.T) {
	h := RequireRole("admin")(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req := WithTestUser(httptest.NewRequest("POST", "/delete/users/1", nil), &SessionUser{ID: 2, Role: "participant"})
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusForbidden {
		t.Errorf("wrong role: code = %d, want 403", rec.Code)
	}

	req = WithTestUser(httptest.NewRequest("POST", "/delete/users/1", nil), &SessionUser{ID: 1, Role: "Admin"})
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Errorf("admin (case-insensitive): code = %d, want 200", rec.Code)
	}
}

func TestUserCtx_Visitor(t *testing.T) {
	role, name, id, ok := UserCtx(httptest.NewRequest("GET", "/", nil))
	if ok || role != "visitor" || name != "" || id != 0 {
		t.Errorf("UserCtx anonymous = %q %q %d %v", role, name, id, ok)
	}
}

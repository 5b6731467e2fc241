// Package login signs users in and out with email and password.
package login

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"strings"

	userstore "github.com/ellarises/ellahub/internal/app/store/users"
	"github.com/ellarises/ellahub/internal/app/system/auth"
	"github.com/ellarises/ellahub/internal/app/system/formutil"
	"github.com/ellarises/ellahub/internal/app/system/timeouts"
	"github.com/dalemusser/waffle/pantry/templates"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

type Handler struct {
	Log        *zap.Logger
	SessionMgr *auth.SessionManager
	Users      *userstore.Store
}

func NewHandler(db *sql.DB, sessionMgr *auth.SessionManager, logger *zap.Logger) *Handler {
	return &Handler{
		Log:        logger,
		SessionMgr: sessionMgr,
		Users:      userstore.New(db),
	}
}

type pageData struct {
	formutil.Base
	Email     string
	ReturnURL string
}

// ServeForm renders the sign-in page.
func (h *Handler) ServeForm(w http.ResponseWriter, r *http.Request) {
	var data pageData
	formutil.SetBase(&data.Base, r, "Sign in", "/")
	data.ReturnURL = safeReturn(r.URL.Query().Get("return"))
	data.Message, data.MessageType = h.SessionMgr.PopFlash(w, r)
	templates.Render(w, r, "login", data)
}

// HandleLogin verifies credentials and starts a session. Wrong email and
// wrong password get the same message so the form does not leak which
// accounts exist.
func (h *Handler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad form", http.StatusBadRequest)
		return
	}
	email := strings.TrimSpace(r.FormValue("email"))
	password := r.FormValue("password")
	returnURL := safeReturn(r.FormValue("return"))

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	u, err := h.Users.GetByEmail(ctx, email)
	if err != nil {
		if !errors.Is(err, sql.ErrNoRows) {
			h.Log.Error("lookup user for login", zap.Error(err))
		}
		h.renderFailed(w, r, email, returnURL)
		return
	}
	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) != nil {
		h.renderFailed(w, r, email, returnURL)
		return
	}

	if err := h.SessionMgr.SignIn(w, r, auth.SessionUser{
		ID:   u.ID,
		Name: u.FullName(),
		Role: u.Role,
	}); err != nil {
		h.Log.Error("save session on login", zap.Error(err))
		http.Error(w, "could not start session", http.StatusInternalServerError)
		return
	}

	h.Log.Info("user signed in", zap.Int64("user_id", u.ID), zap.String("role", u.Role))
	if returnURL == "" {
		returnURL = "/"
	}
	http.Redirect(w, r, returnURL, http.StatusSeeOther)
}

// HandleLogout ends the session and sends the visitor home.
func (h *Handler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	if err := h.SessionMgr.SignOut(w, r); err != nil {
		h.Log.Warn("clearing session on logout", zap.Error(err))
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (h *Handler) renderFailed(w http.ResponseWriter, r *http.Request, email, returnURL string) {
	var data pageData
	formutil.SetBase(&data.Base, r, "Sign in", "/")
	data.Email = email
	data.ReturnURL = returnURL
	data.SetError("Invalid email or password.")
	w.WriteHeader(http.StatusUnauthorized)
	templates.Render(w, r, "login", data)
}

// safeReturn keeps redirects on-site: only rooted paths pass through.
func safeReturn(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" || !strings.HasPrefix(raw, "/") || strings.HasPrefix(raw, "//") {
		return ""
	}
	return raw
}

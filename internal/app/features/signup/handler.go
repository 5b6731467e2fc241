// Package signup registers new participant accounts.
package signup

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
	"github.com/ellarises/ellahub/internal/domain/models"
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
	Form signupForm
}

type signupForm struct {
	FirstName        string
	LastName         string
	Email            string
	City             string
	SchoolOrEmployer string
	FieldOfInterest  string
}

// ServeForm renders the signup page.
func (h *Handler) ServeForm(w http.ResponseWriter, r *http.Request) {
	var data pageData
	formutil.SetBase(&data.Base, r, "Join Ella Rises", "/")
	templates.Render(w, r, "signup", data)
}

// HandleSignup creates a participant account and signs them in.
func (h *Handler) HandleSignup(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad form", http.StatusBadRequest)
		return
	}
	form := signupForm{
		FirstName:        strings.TrimSpace(r.FormValue("first_name")),
		LastName:         strings.TrimSpace(r.FormValue("last_name")),
		Email:            strings.TrimSpace(r.FormValue("email")),
		City:             strings.TrimSpace(r.FormValue("city")),
		SchoolOrEmployer: strings.TrimSpace(r.FormValue("school_or_employer")),
		FieldOfInterest:  strings.TrimSpace(r.FormValue("field_of_interest")),
	}
	password := r.FormValue("password")

	if form.FirstName == "" || form.LastName == "" || form.Email == "" {
		h.renderError(w, r, form, "First name, last name, and email are required.")
		return
	}
	if len(password) < 8 {
		h.renderError(w, r, form, "Password must be at least 8 characters.")
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		h.Log.Error("hash signup password", zap.Error(err))
		http.Error(w, "could not create account", http.StatusInternalServerError)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	id, err := h.Users.Create(ctx, models.User{
		FirstName:        form.FirstName,
		LastName:         form.LastName,
		Email:            form.Email,
		PasswordHash:     string(hash),
		City:             form.City,
		SchoolOrEmployer: form.SchoolOrEmployer,
		FieldOfInterest:  form.FieldOfInterest,
		Role:             "participant",
	})
	if err != nil {
		if errors.Is(err, userstore.ErrDuplicateEmail) {
			h.renderError(w, r, form, "An account with that email already exists.")
			return
		}
		h.Log.Error("create signup account", zap.Error(err))
		http.Error(w, "could not create account", http.StatusInternalServerError)
		return
	}

	if err := h.SessionMgr.SignIn(w, r, auth.SessionUser{
		ID:   id,
		Name: form.FirstName + " " + form.LastName,
		Role: "participant",
	}); err != nil {
		h.Log.Warn("sign in after signup", zap.Error(err))
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	h.Log.Info("participant signed up", zap.Int64("user_id", id))
	h.SessionMgr.SetFlash(w, r, "Welcome to Ella Rises!", "success")
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (h *Handler) renderError(w http.ResponseWriter, r *http.Request, form signupForm, msg string) {
	var data pageData
	formutil.SetBase(&data.Base, r, "Join Ella Rises", "/")
	data.Form = form
	data.SetError(msg)
	w.WriteHeader(http.StatusBadRequest)
	templates.Render(w, r, "signup", data)
}

// Package profile renders a participant's own page: their details,
// milestones, donations, and event registrations.
package profile

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	uierrors "github.com/ellarises/ellahub/internal/app/features/errors"
	donationstore "github.com/ellarises/ellahub/internal/app/store/donations"
	milestonestore "github.com/ellarises/ellahub/internal/app/store/milestones"
	registrationstore "github.com/ellarises/ellahub/internal/app/store/registrations"
	userstore "github.com/ellarises/ellahub/internal/app/store/users"
	"github.com/ellarises/ellahub/internal/app/system/auth"
	"github.com/ellarises/ellahub/internal/app/system/formutil"
	"github.com/ellarises/ellahub/internal/app/system/timeouts"
	"github.com/dalemusser/waffle/pantry/templates"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type Handler struct {
	Log           *zap.Logger
	SessionMgr    *auth.SessionManager
	Users         *userstore.Store
	Milestones    *milestonestore.Store
	Donations     *donationstore.Store
	Registrations *registrationstore.Store
}

func NewHandler(db *sql.DB, sessionMgr *auth.SessionManager, logger *zap.Logger) *Handler {
	return &Handler{
		Log:           logger,
		SessionMgr:    sessionMgr,
		Users:         userstore.New(db),
		Milestones:    milestonestore.New(db),
		Donations:     donationstore.New(db),
		Registrations: registrationstore.New(db),
	}
}

type milestoneVM struct {
	ID       int64
	Title    string
	Date     string
	Category string
}

type donationVM struct {
	ID     int64
	Date   string
	Amount string
}

type registrationVM struct {
	ID        int64
	EventID   int64
	EventName string
	EventDate string
	Status    string
}

type pageData struct {
	formutil.Base

	ProfileID        int64
	FullName         string
	Email            string
	City             string
	SchoolOrEmployer string
	FieldOfInterest  string
	IsOwn            bool

	Milestones    []milestoneVM
	Donations     []donationVM
	DonationTotal string
	Registrations []registrationVM
}

// ServeProfile renders the signed-in user's profile, or any user's when the
// viewer is an admin hitting /profile/{id}.
func (h *Handler) ServeProfile(w http.ResponseWriter, r *http.Request) {
	role, _, viewerID, ok := auth.UserCtx(r)
	if !ok {
		uierrors.RenderUnauthorized(w, r, "")
		return
	}

	profileID := viewerID
	if raw := chi.URLParam(r, "id"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			uierrors.RenderNotFound(w, r)
			return
		}
		if id != viewerID && role != "admin" {
			uierrors.RenderForbidden(w, r, "You can only view your own profile.", "/profile")
			return
		}
		profileID = id
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	u, err := h.Users.GetByID(ctx, profileID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			uierrors.RenderNotFound(w, r)
			return
		}
		h.Log.Error("load profile user", zap.Error(err))
		uierrors.RenderServerError(w, r)
		return
	}
	milestones, err := h.Milestones.ListByUser(ctx, profileID)
	if err != nil {
		h.Log.Error("load profile milestones", zap.Error(err))
		uierrors.RenderServerError(w, r)
		return
	}
	donations, err := h.Donations.ListByUser(ctx, profileID)
	if err != nil {
		h.Log.Error("load profile donations", zap.Error(err))
		uierrors.RenderServerError(w, r)
		return
	}
	regs, err := h.Registrations.ListByUser(ctx, profileID)
	if err != nil {
		h.Log.Error("load profile registrations", zap.Error(err))
		uierrors.RenderServerError(w, r)
		return
	}

	var data pageData
	formutil.SetBase(&data.Base, r, u.FullName(), "/")
	data.Message, data.MessageType = h.SessionMgr.PopFlash(w, r)
	data.ProfileID = u.ID
	data.FullName = u.FullName()
	data.Email = u.Email
	data.City = u.City
	data.SchoolOrEmployer = u.SchoolOrEmployer
	data.FieldOfInterest = u.FieldOfInterest
	data.IsOwn = u.ID == viewerID

	for _, m := range milestones {
		vm := milestoneVM{ID: m.ID, Title: m.Title, Category: m.Category}
		if m.Date.Valid {
			vm.Date = m.Date.Time.Format("Jan 2, 2006")
		}
		data.Milestones = append(data.Milestones, vm)
	}

	var total float64
	for _, d := range donations {
		vm := donationVM{ID: d.ID}
		if d.Date.Valid {
			vm.Date = d.Date.Time.Format("Jan 2, 2006")
		}
		if d.Amount.Valid {
			vm.Amount = fmt.Sprintf("$%.2f", d.Amount.Float64)
			total += d.Amount.Float64
		}
		data.Donations = append(data.Donations, vm)
	}
	data.DonationTotal = fmt.Sprintf("$%.2f", total)

	for _, reg := range regs {
		vm := registrationVM{
			ID:        reg.ID,
			EventID:   reg.EventID,
			EventName: reg.EventName,
			Status:    reg.Status,
		}
		if reg.EventDate.Valid {
			vm.EventDate = reg.EventDate.Time.Format("Jan 2, 2006")
		}
		data.Registrations = append(data.Registrations, vm)
	}

	templates.Render(w, r, "profile", data)
}

// HandleSetLanguage stores the language choice on the session.
func (h *Handler) HandleSetLanguage(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Language string `json:"language"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || strings.TrimSpace(body.Language) == "" {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(map[string]any{"success": false, "error": "language required"})
		return
	}
	if err := h.SessionMgr.SetLanguage(w, r, strings.TrimSpace(body.Language)); err != nil {
		h.Log.Warn("save language preference", zap.Error(err))
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{"success": true})
}

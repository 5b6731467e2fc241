package registrations

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	registrationstore "github.com/ellarises/ellahub/internal/app/store/registrations"
	"github.com/ellarises/ellahub/internal/app/system/auth"
	"github.com/ellarises/ellahub/internal/app/system/timeouts"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// HandleRegister signs the current user up for an event. Responds with JSON
// because the calendar calls it from script.
func (h *Handler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	_, _, userID, ok := auth.UserCtx(r)
	if !ok {
		writeJSON(w, http.StatusUnauthorized, map[string]any{
			"success": false, "error": "sign in to register",
		})
		return
	}
	eventID, err := strconv.ParseInt(chi.URLParam(r, "eventID"), 10, 64)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]any{
			"success": false, "error": "invalid event",
		})
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	event, err := h.Events.GetByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			writeJSON(w, http.StatusNotFound, map[string]any{
				"success": false, "error": "event not found",
			})
			return
		}
		h.Log.Error("load event for registration", zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, map[string]any{
			"success": false, "error": "registration failed",
		})
		return
	}
	if pastDeadline(event.DeadlineDate, event.DeadlineTime, time.Now()) {
		writeJSON(w, http.StatusConflict, map[string]any{
			"success": false, "error": "the registration deadline for this event has passed",
		})
		return
	}

	if _, err := h.Registrations.Register(ctx, userID, eventID, time.Now()); err != nil {
		if errors.Is(err, registrationstore.ErrAlreadyRegistered) {
			writeJSON(w, http.StatusConflict, map[string]any{
				"success": false, "error": "you are already registered for this event",
			})
			return
		}
		h.Log.Error("register for event", zap.Error(err),
			zap.Int64("user_id", userID), zap.Int64("event_id", eventID))
		writeJSON(w, http.StatusInternalServerError, map[string]any{
			"success": false, "error": "registration failed",
		})
		return
	}

	h.Log.Info("registered for event",
		zap.Int64("user_id", userID), zap.Int64("event_id", eventID))
	writeJSON(w, http.StatusOK, map[string]any{"success": true})
}

// HandleCancel cancels the current user's registration for an event. The row
// is kept with a cancelled status.
func (h *Handler) HandleCancel(w http.ResponseWriter, r *http.Request) {
	_, _, userID, ok := auth.UserCtx(r)
	if !ok {
		writeJSON(w, http.StatusUnauthorized, map[string]any{
			"success": false, "error": "sign in first",
		})
		return
	}
	eventID, err := strconv.ParseInt(chi.URLParam(r, "eventID"), 10, 64)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]any{
			"success": false, "error": "invalid event",
		})
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	if err := h.Registrations.Cancel(ctx, userID, eventID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			writeJSON(w, http.StatusNotFound, map[string]any{
				"success": false, "error": "no active registration for this event",
			})
			return
		}
		h.Log.Error("cancel registration", zap.Error(err),
			zap.Int64("user_id", userID), zap.Int64("event_id", eventID))
		writeJSON(w, http.StatusInternalServerError, map[string]any{
			"success": false, "error": "cancellation failed",
		})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true})
}

// HandleCheckIn marks a registration attended and stamps the check-in time.
func (h *Handler) HandleCheckIn(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]any{
			"success": false, "error": "invalid registration",
		})
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	if err := h.Registrations.CheckIn(ctx, id, time.Now()); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			writeJSON(w, http.StatusNotFound, map[string]any{
				"success": false, "error": "registration not found",
			})
			return
		}
		h.Log.Error("check in registration", zap.Error(err), zap.Int64("id", id))
		writeJSON(w, http.StatusInternalServerError, map[string]any{
			"success": false, "error": "check-in failed",
		})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true})
}

// pastDeadline reports whether the registration deadline has passed. Without
// a deadline time the whole deadline day still counts.
func pastDeadline(date sql.NullTime, clock string, now time.Time) bool {
	if !date.Valid {
		return false
	}
	deadline := date.Time
	cutoff := time.Date(deadline.Year(), deadline.Month(), deadline.Day(),
		23, 59, 59, 0, now.Location())
	for _, layout := range []string{"15:04:05", "15:04"} {
		if t, err := time.Parse(layout, clock); err == nil {
			cutoff = time.Date(deadline.Year(), deadline.Month(), deadline.Day(),
				t.Hour(), t.Minute(), t.Second(), 0, now.Location())
			break
		}
	}
	return now.After(cutoff)
}

func writeJSON(w http.ResponseWriter, status int, body map[string]any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

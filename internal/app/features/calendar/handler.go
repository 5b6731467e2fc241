package calendar

import (
	"context"
	"database/sql"
	"net/http"
	"time"

	uierrors "github.com/ellarises/ellahub/internal/app/features/errors"
	eventstore "github.com/ellarises/ellahub/internal/app/store/events"
	registrationstore "github.com/ellarises/ellahub/internal/app/store/registrations"
	"github.com/ellarises/ellahub/internal/app/system/auth"
	"github.com/ellarises/ellahub/internal/app/system/formutil"
	"github.com/ellarises/ellahub/internal/app/system/timeouts"
	"github.com/dalemusser/waffle/pantry/templates"
	"go.uber.org/zap"
)

type Handler struct {
	Log           *zap.Logger
	Events        *eventstore.Store
	Registrations *registrationstore.Store
}

func NewHandler(db *sql.DB, logger *zap.Logger) *Handler {
	return &Handler{
		Log:           logger,
		Events:        eventstore.New(db),
		Registrations: registrationstore.New(db),
	}
}

type pageData struct {
	formutil.Base
	Months []monthGrid
}

// ServeCalendar renders the three-month calendar. Anonymous visitors get the
// same grid without the register buttons.
func (h *Handler) ServeCalendar(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	now := time.Now()
	from, to := queryWindow(now)

	events, err := h.Events.ListWindow(ctx, from, to)
	if err != nil {
		h.Log.Error("load calendar events", zap.Error(err))
		uierrors.RenderServerError(w, r)
		return
	}
	counts, err := h.Registrations.CountsByEvent(ctx, from, to)
	if err != nil {
		h.Log.Error("load registration counts", zap.Error(err))
		uierrors.RenderServerError(w, r)
		return
	}

	mine := map[int64]bool{}
	if _, _, userID, ok := auth.UserCtx(r); ok {
		mine, err = h.Registrations.ActiveEventIDs(ctx, userID)
		if err != nil {
			h.Log.Error("load user registrations", zap.Error(err))
			uierrors.RenderServerError(w, r)
			return
		}
	}

	var data pageData
	formutil.SetBase(&data.Base, r, "Event calendar", "/")
	data.Months = buildMonths(gridStart(now), 3, events, counts, mine, now)

	templates.Render(w, r, "calendar", data)
}

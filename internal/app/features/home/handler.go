// Package home renders the public landing page.
package home

import (
	"context"
	"database/sql"
	"net/http"
	"time"

	eventstore "github.com/ellarises/ellahub/internal/app/store/events"
	"github.com/ellarises/ellahub/internal/app/system/auth"
	"github.com/ellarises/ellahub/internal/app/system/formutil"
	"github.com/ellarises/ellahub/internal/app/system/timeouts"
	"github.com/dalemusser/waffle/pantry/templates"
	"go.uber.org/zap"
)

type Handler struct {
	Log        *zap.Logger
	SessionMgr *auth.SessionManager
	Events     *eventstore.Store
}

func NewHandler(db *sql.DB, sessionMgr *auth.SessionManager, logger *zap.Logger) *Handler {
	return &Handler{
		Log:        logger,
		SessionMgr: sessionMgr,
		Events:     eventstore.New(db),
	}
}

type pageData struct {
	formutil.Base
	Upcoming []upcomingEvent
}

type upcomingEvent struct {
	Name     string
	Date     string
	Location string
}

// ServeHome renders the landing page with the next few upcoming events.
// The page still renders if the event query fails; the section is just empty.
func (h *Handler) ServeHome(w http.ResponseWriter, r *http.Request) {
	var data pageData
	formutil.SetBase(&data.Base, r, "Ella Rises", "/")
	if msg, typ := h.SessionMgr.PopFlash(w, r); msg != "" {
		data.SetFlash(msg, typ)
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	now := time.Now()
	events, err := h.Events.ListWindow(ctx, now, now.AddDate(0, 3, 0))
	if err != nil {
		h.Log.Warn("load upcoming events for home", zap.Error(err))
	}
	for i, e := range events {
		if i == 3 {
			break
		}
		u := upcomingEvent{Name: e.Name, Location: e.Location}
		if e.Date.Valid {
			u.Date = e.Date.Time.Format("January 2, 2006")
		}
		data.Upcoming = append(data.Upcoming, u)
	}

	templates.Render(w, r, "home", data)
}

// Package events is the admin maintenance screen for events, served at
// /events.
package events

import (
	"database/sql"

	eventstore "github.com/ellarises/ellahub/internal/app/store/events"
	eventtypestore "github.com/ellarises/ellahub/internal/app/store/eventtypes"
	"github.com/ellarises/ellahub/internal/app/system/auth"
	"go.uber.org/zap"
)

type Handler struct {
	Log        *zap.Logger
	SessionMgr *auth.SessionManager
	Events     *eventstore.Store
	Types      *eventtypestore.Store
}

func NewHandler(db *sql.DB, sessionMgr *auth.SessionManager, logger *zap.Logger) *Handler {
	return &Handler{
		Log:        logger,
		SessionMgr: sessionMgr,
		Events:     eventstore.New(db),
		Types:      eventtypestore.New(db),
	}
}

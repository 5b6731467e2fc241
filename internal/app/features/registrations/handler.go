// Package registrations covers event sign-ups: the admin maintenance screen
// and the participant-facing register, cancel, and check-in actions.
package registrations

import (
	"database/sql"

	eventstore "github.com/ellarises/ellahub/internal/app/store/events"
	registrationstore "github.com/ellarises/ellahub/internal/app/store/registrations"
	"github.com/ellarises/ellahub/internal/app/system/auth"
	"go.uber.org/zap"
)

type Handler struct {
	Log           *zap.Logger
	SessionMgr    *auth.SessionManager
	Registrations *registrationstore.Store
	Events        *eventstore.Store
}

func NewHandler(db *sql.DB, sessionMgr *auth.SessionManager, logger *zap.Logger) *Handler {
	return &Handler{
		Log:           logger,
		SessionMgr:    sessionMgr,
		Registrations: registrationstore.New(db),
		Events:        eventstore.New(db),
	}
}

// Package participants is the admin maintenance screen for participant
// accounts, served at /users.
package participants

import (
	"database/sql"

	userstore "github.com/ellarises/ellahub/internal/app/store/users"
	"github.com/ellarises/ellahub/internal/app/system/auth"
	"go.uber.org/zap"
)

// Handler is the feature-level handler for the participants screen.
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

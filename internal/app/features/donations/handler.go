// Package donations is the admin maintenance screen for donations.
package donations

import (
	"database/sql"

	donationstore "github.com/ellarises/ellahub/internal/app/store/donations"
	userstore "github.com/ellarises/ellahub/internal/app/store/users"
	"github.com/ellarises/ellahub/internal/app/system/auth"
	"go.uber.org/zap"
)

type Handler struct {
	Log        *zap.Logger
	SessionMgr *auth.SessionManager
	Donations  *donationstore.Store
	Users      *userstore.Store
}

func NewHandler(db *sql.DB, sessionMgr *auth.SessionManager, logger *zap.Logger) *Handler {
	return &Handler{
		Log:        logger,
		SessionMgr: sessionMgr,
		Donations:  donationstore.New(db),
		Users:      userstore.New(db),
	}
}

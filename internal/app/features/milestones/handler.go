// Package milestones is the admin maintenance screen for participant
// milestones.
package milestones

import (
	"database/sql"

	milestonestore "github.com/ellarises/ellahub/internal/app/store/milestones"
	"github.com/ellarises/ellahub/internal/app/system/auth"
	"go.uber.org/zap"
)

type Handler struct {
	Log        *zap.Logger
	SessionMgr *auth.SessionManager
	Milestones *milestonestore.Store
}

func NewHandler(db *sql.DB, sessionMgr *auth.SessionManager, logger *zap.Logger) *Handler {
	return &Handler{
		Log:        logger,
		SessionMgr: sessionMgr,
		Milestones: milestonestore.New(db),
	}
}

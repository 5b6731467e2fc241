// Package surveys is the admin maintenance screen for post-event survey
// results.
package surveys

import (
	"database/sql"

	eventstore "github.com/ellarises/ellahub/internal/app/store/events"
	registrationstore "github.com/ellarises/ellahub/internal/app/store/registrations"
	surveystore "github.com/ellarises/ellahub/internal/app/store/surveys"
	"github.com/ellarises/ellahub/internal/app/system/auth"
	"go.uber.org/zap"
)

type Handler struct {
	Log           *zap.Logger
	SessionMgr    *auth.SessionManager
	Surveys       *surveystore.Store
	Events        *eventstore.Store
	Registrations *registrationstore.Store
}

func NewHandler(db *sql.DB, sessionMgr *auth.SessionManager, logger *zap.Logger) *Handler {
	return &Handler{
		Log:           logger,
		SessionMgr:    sessionMgr,
		Surveys:       surveystore.New(db),
		Events:        eventstore.New(db),
		Registrations: registrationstore.New(db),
	}
}

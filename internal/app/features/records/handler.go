// Package records implements the generic record-maintenance routes: one add,
// edit, and delete flow shared by every registered entity, plus the
// profile-scoped variants participants use on their own data. Which tables
// and columns are reachable is decided solely by the entity registry.
package records

import (
	"database/sql"

	eventstore "github.com/ellarises/ellahub/internal/app/store/events"
	eventtypestore "github.com/ellarises/ellahub/internal/app/store/eventtypes"
	recordstore "github.com/ellarises/ellahub/internal/app/store/records"
	registrationstore "github.com/ellarises/ellahub/internal/app/store/registrations"
	userstore "github.com/ellarises/ellahub/internal/app/store/users"
	"github.com/ellarises/ellahub/internal/app/system/auth"
	"go.uber.org/zap"
)

type Handler struct {
	Log           *zap.Logger
	SessionMgr    *auth.SessionManager
	Records       *recordstore.Store
	Users         *userstore.Store
	Events        *eventstore.Store
	Types         *eventtypestore.Store
	Registrations *registrationstore.Store
}

func NewHandler(db *sql.DB, sessionMgr *auth.SessionManager, logger *zap.Logger) *Handler {
	return &Handler{
		Log:           logger,
		SessionMgr:    sessionMgr,
		Records:       recordstore.New(db),
		Users:         userstore.New(db),
		Events:        eventstore.New(db),
		Types:         eventtypestore.New(db),
		Registrations: registrationstore.New(db),
	}
}

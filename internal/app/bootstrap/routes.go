// internal/app/bootstrap/routes.go
package bootstrap

import (
	"net/http"

	"github.com/dalemusser/waffle/config"
	"github.com/dalemusser/waffle/pantry/fileserver"
	"github.com/dalemusser/waffle/pantry/templates"
	calendarfeature "github.com/ellarises/ellahub/internal/app/features/calendar"
	chatbotfeature "github.com/ellarises/ellahub/internal/app/features/chatbot"
	donationsfeature "github.com/ellarises/ellahub/internal/app/features/donations"
	errorsfeature "github.com/ellarises/ellahub/internal/app/features/errors"
	eventsfeature "github.com/ellarises/ellahub/internal/app/features/events"
	healthfeature "github.com/ellarises/ellahub/internal/app/features/health"
	homefeature "github.com/ellarises/ellahub/internal/app/features/home"
	loginfeature "github.com/ellarises/ellahub/internal/app/features/login"
	milestonesfeature "github.com/ellarises/ellahub/internal/app/features/milestones"
	participantsfeature "github.com/ellarises/ellahub/internal/app/features/participants"
	profilefeature "github.com/ellarises/ellahub/internal/app/features/profile"
	recordsfeature "github.com/ellarises/ellahub/internal/app/features/records"
	registrationsfeature "github.com/ellarises/ellahub/internal/app/features/registrations"
	signupfeature "github.com/ellarises/ellahub/internal/app/features/signup"
	surveysfeature "github.com/ellarises/ellahub/internal/app/features/surveys"
	"github.com/ellarises/ellahub/internal/app/system/auth"
	"github.com/ellarises/ellahub/internal/app/system/chatapi"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// BuildHandler constructs the root HTTP handler (router) for this WAFFLE app.
//
// WAFFLE calls this after configuration, DB connections, schema setup, and
// any Startup hooks have completed. EllaHub initializes the template engine,
// applies session middleware, and registers the public pages (home, calendar,
// chat, signup), the participant pages (profile, event registration), and the
// admin maintenance screens for every table.
func BuildHandler(coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) (http.Handler, error) {
	// Create the session manager using app config.
	// Secure cookies are enabled in production mode.
	secure := coreCfg.Env == "prod"
	sessionMgr, err := auth.NewSessionManager(appCfg.SessionKey, appCfg.SessionName, appCfg.SessionDomain, secure, logger)
	if err != nil {
		logger.Error("session manager init failed", zap.Error(err))
		return nil, err
	}

	// Initialize and boot the template engine once at startup.
	// Dev mode enables template reloading for faster iteration.
	eng := templates.New(coreCfg.Env == "dev")
	if err := eng.Boot(logger); err != nil {
		logger.Error("template engine boot failed", zap.Error(err))
		return nil, err
	}
	templates.UseEngine(eng, logger)

	chatClient := chatapi.New(appCfg.ChatAPIBaseURL, appCfg.ChatAPIKey, appCfg.ChatModel, logger)

	r := chi.NewRouter()

	// Global auth middleware: loads the session user into context if logged
	// in, making it available to all handlers via auth.CurrentUser(r).
	r.Use(sessionMgr.LoadSessionUser)

	// Health check endpoint for load balancers and orchestrators
	healthHandler := healthfeature.NewHandler(deps.DB, logger)
	r.Mount("/health", healthfeature.Routes(healthHandler))

	// Static assets with pre-compressed file support (gzip/brotli)
	r.Handle("/static/*", fileserver.Handler("/static", "public"))

	// Public pages and authentication, registered at the site root
	homefeature.Routes(r, homefeature.NewHandler(deps.DB, sessionMgr, logger))
	loginfeature.Routes(r, loginfeature.NewHandler(deps.DB, sessionMgr, logger))
	signupfeature.Routes(r, signupfeature.NewHandler(deps.DB, sessionMgr, logger))
	chatbotfeature.Routes(r, chatbotfeature.NewHandler(chatClient, logger))
	errorsfeature.Routes(r)

	// Participant pages: profile, event registration actions, and the
	// self-service edit/delete endpoints of the generic record handler
	profilefeature.Routes(r, profilefeature.NewHandler(deps.DB, sessionMgr, logger))
	recordsfeature.Routes(r, recordsfeature.NewHandler(deps.DB, sessionMgr, logger))

	registrationsHandler := registrationsfeature.NewHandler(deps.DB, sessionMgr, logger)
	registrationsfeature.ActionRoutes(r, registrationsHandler)

	// Three-month event calendar
	r.Mount("/calendar", calendarfeature.Routes(calendarfeature.NewHandler(deps.DB, logger)))

	// Admin maintenance screens, one list page per table
	r.Mount("/users", participantsfeature.Routes(participantsfeature.NewHandler(deps.DB, sessionMgr, logger)))
	r.Mount("/events", eventsfeature.Routes(eventsfeature.NewHandler(deps.DB, sessionMgr, logger)))
	r.Mount("/event_registrations", registrationsfeature.Routes(registrationsHandler))
	r.Mount("/surveys", surveysfeature.Routes(surveysfeature.NewHandler(deps.DB, sessionMgr, logger)))
	r.Mount("/donations", donationsfeature.Routes(donationsfeature.NewHandler(deps.DB, sessionMgr, logger)))
	r.Mount("/milestones", milestonesfeature.Routes(milestonesfeature.NewHandler(deps.DB, sessionMgr, logger)))

	// Anything unmatched gets the styled 404 page.
	r.NotFound(func(w http.ResponseWriter, req *http.Request) {
		errorsfeature.RenderNotFound(w, req)
	})

	return r, nil
}

package auth

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/gorilla/securecookie"
	"github.com/gorilla/sessions"
	"go.uber.org/zap"
)

/*─────────────────────────────────────────────────────────────────────────────*
 | Session constants                                                           |
 *─────────────────────────────────────────────────────────────────────────────*/

const (
	isAuthKey    = "is_authenticated"
	userIDKey    = "user_id"
	userNameKey  = "user_name"
	userRoleKey  = "user_role"
	languageKey  = "language"
	flashMsgKey  = "flash_message"
	flashTypeKey = "flash_type"
)

// SessionUser is what we cache in the session & inject into r.Context().
type SessionUser struct {
	ID       int64
	Name     string
	Role     string // participant | sponsor | admin
	Language string
}

type ctxKey string

const currentUserKey ctxKey = "currentUser"

// CurrentUser returns the user & "found?" flag.
func CurrentUser(r *http.Request) (*SessionUser, bool) {
	u, ok := r.Context().Value(currentUserKey).(*SessionUser)
	return u, ok
}

func withUser(r *http.Request, u *SessionUser) *http.Request {
	return r.WithContext(context.WithValue(r.Context(), currentUserKey, u))
}

// WithTestUser injects a session user directly into the request context.
// Handler tests use this to bypass the cookie round-trip.
func WithTestUser(r *http.Request, u *SessionUser) *http.Request {
	return withUser(r, u)
}

/*─────────────────────────────────────────────────────────────────────────────*
 | Session manager                                                             |
 *─────────────────────────────────────────────────────────────────────────────*/

// SessionManager wraps the cookie store with the operations handlers need:
// sign-in/out, the context-loading middleware, flash messages, and the
// per-session language preference.
type SessionManager struct {
	store *sessions.CookieStore
	name  string
	log   *zap.Logger
}

// NewSessionManager builds the cookie store. In dev (secure=false) an empty
// key falls back to a random one so the app still boots; production requires
// an explicit key.
func NewSessionManager(sessionKey, name, domain string, secure bool, logger *zap.Logger) (*SessionManager, error) {
	if sessionKey == "" {
		if secure {
			return nil, fmt.Errorf("session key is empty; provide ≥32 random chars")
		}
		logger.Warn("session key is empty; using a random dev-only key")
		sessionKey = string(securecookie.GenerateRandomKey(32))
	}
	if len(sessionKey) < 32 {
		logger.Warn("session key is short; 32+ chars recommended",
			zap.Int("length", len(sessionKey)))
	}

	store := sessions.NewCookieStore([]byte(sessionKey))
	opts := &sessions.Options{
		Domain:   domain,
		Path:     "/",
		Secure:   secure,
		HttpOnly: true,
	}
	if secure {
		opts.SameSite = http.SameSiteNoneMode
	} else {
		opts.SameSite = http.SameSiteLaxMode
	}
	store.Options = opts

	return &SessionManager{store: store, name: name, log: logger}, nil
}

func (m *SessionManager) session(r *http.Request) *sessions.Session {
	sess, _ := m.store.Get(r, m.name)
	return sess
}

// LoadSessionUser injects the user into context if they are logged in.
func (m *SessionManager) LoadSessionUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sess := m.session(r)
		if isAuth, _ := sess.Values[isAuthKey].(bool); isAuth {
			id, _ := sess.Values[userIDKey].(int64)
			u := &SessionUser{
				ID:       id,
				Name:     getString(sess, userNameKey),
				Role:     getString(sess, userRoleKey),
				Language: getString(sess, languageKey),
			}
			r = withUser(r, u)
		}
		next.ServeHTTP(w, r)
	})
}

// SignIn stores the user in the session.
func (m *SessionManager) SignIn(w http.ResponseWriter, r *http.Request, u SessionUser) error {
	sess := m.session(r)
	sess.Values[isAuthKey] = true
	sess.Values[userIDKey] = u.ID
	sess.Values[userNameKey] = u.Name
	sess.Values[userRoleKey] = u.Role
	if u.Language != "" {
		sess.Values[languageKey] = u.Language
	}
	return sess.Save(r, w)
}

// SignOut clears the authenticated session by expiring the cookie.
func (m *SessionManager) SignOut(w http.ResponseWriter, r *http.Request) error {
	sess := m.session(r)
	sess.Values = map[any]any{}
	sess.Options.MaxAge = -1
	return sess.Save(r, w)
}

// SetFlash stores a one-time message shown on the next page render.
func (m *SessionManager) SetFlash(w http.ResponseWriter, r *http.Request, msg, typ string) {
	sess := m.session(r)
	sess.Values[flashMsgKey] = msg
	sess.Values[flashTypeKey] = typ
	if err := sess.Save(r, w); err != nil {
		m.log.Warn("saving flash message failed", zap.Error(err))
	}
}

// PopFlash returns and clears the pending flash message. When none is set it
// falls back to the message/messageType query parameters (delete flows
// redirect with those instead of a session write).
func (m *SessionManager) PopFlash(w http.ResponseWriter, r *http.Request) (msg, typ string) {
	sess := m.session(r)
	msg = getString(sess, flashMsgKey)
	typ = getString(sess, flashTypeKey)
	if msg != "" {
		delete(sess.Values, flashMsgKey)
		delete(sess.Values, flashTypeKey)
		if err := sess.Save(r, w); err != nil {
			m.log.Warn("clearing flash message failed", zap.Error(err))
		}
		if typ == "" {
			typ = "success"
		}
		return msg, typ
	}
	if qm := r.URL.Query().Get("message"); qm != "" {
		qt := r.URL.Query().Get("messageType")
		if qt == "" {
			qt = "success"
		}
		return qm, qt
	}
	return "", "success"
}

// SetLanguage stores the language preference on the session.
func (m *SessionManager) SetLanguage(w http.ResponseWriter, r *http.Request, lang string) error {
	sess := m.session(r)
	sess.Values[languageKey] = lang
	return sess.Save(r, w)
}

/*─────────────────────────────────────────────────────────────────────────────*
 | Route gates                                                                 |
 *─────────────────────────────────────────────────────────────────────────────*/

// RequireSignedIn ensures there is a user in context (set by LoadSessionUser).
// HTML requests are redirected to /login with a return URL; API callers get a
// plain 401.
func RequireSignedIn(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := CurrentUser(r); ok {
			next.ServeHTTP(w, r)
			return
		}
		if wantsHTML(r) {
			ret := url.QueryEscape(r.URL.RequestURI())
			http.Redirect(w, r, "/login?return="+ret, http.StatusSeeOther)
			return
		}
		http.Error(w, "unauthorized", http.StatusUnauthorized)
	})
}

// RequireRole ensures the signed-in user has one of the allowed roles.
// Signed-out users get 401 semantics; wrong-role users get 403.
func RequireRole(allowed ...string) func(http.Handler) http.Handler {
	set := make(map[string]struct{}, len(allowed))
	for _, role := range allowed {
		set[strings.ToLower(strings.TrimSpace(role))] = struct{}{}
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			u, ok := CurrentUser(r)
			if !ok {
				if wantsHTML(r) {
					ret := url.QueryEscape(r.URL.RequestURI())
					http.Redirect(w, r, "/login?return="+ret, http.StatusSeeOther)
					return
				}
				http.Error(w, "unauthorized", http.StatusUnauthorized)
				return
			}
			if _, has := set[strings.ToLower(u.Role)]; !has {
				if wantsHTML(r) {
					http.Redirect(w, r, "/forbidden", http.StatusSeeOther)
					return
				}
				http.Error(w, "forbidden", http.StatusForbidden)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// UserCtx returns the current user's role (lowercased), name, ID, and a found
// flag. ok=false yields the "visitor" role so templates can branch safely.
func UserCtx(r *http.Request) (role, name string, userID int64, ok bool) {
	u, ok := CurrentUser(r)
	if !ok {
		return "visitor", "", 0, false
	}
	return strings.ToLower(u.Role), u.Name, u.ID, true
}

// IsAdmin reports whether the current request's user is an admin.
func IsAdmin(r *http.Request) bool {
	role, _, _, ok := UserCtx(r)
	return ok && role == "admin"
}

func wantsHTML(r *http.Request) bool {
	return strings.Contains(r.Header.Get("Accept"), "text/html")
}

func getString(sess *sessions.Session, key string) string {
	s, _ := sess.Values[key].(string)
	return s
}

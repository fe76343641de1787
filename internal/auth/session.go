package auth

import (
	"encoding/gob"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/gatherly/app/internal/models"
	"github.com/gatherly/app/internal/repositories"
	"github.com/gorilla/sessions"
	"github.com/labstack/echo/v4"
)

const (
	sessionName    = "gatherly_session"
	userIDKey      = "user_id"
	currentUserKey = "currentUser"

	// Lifetime of a "remember me" session cookie. Without remember-me
	// the cookie lasts until the browser closes.
	rememberDuration = 30 * 24 * time.Hour
)

// Flash is one user-visible notice carried across a redirect.
type Flash struct {
	Category string
	Message  string
}

func init() {
	gob.Register(Flash{})
}

// SessionManager tracks the authenticated identity across requests on
// top of a signed cookie store.
type SessionManager struct {
	store *sessions.CookieStore
	users repositories.UserRepository
}

// NewSessionManager creates a new SessionManager
func NewSessionManager(secret []byte, users repositories.UserRepository) *SessionManager {
	store := sessions.NewCookieStore(secret)
	store.Options = &sessions.Options{
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
	return &SessionManager{store: store, users: users}
}

// Login establishes a session identity for the user.
func (m *SessionManager) Login(c echo.Context, user *models.User, remember bool) error {
	session, _ := m.store.Get(c.Request(), sessionName)
	session.Values[userIDKey] = user.ID
	if remember {
		session.Options.MaxAge = int(rememberDuration.Seconds())
	} else {
		session.Options.MaxAge = 0
	}
	c.Set(currentUserKey, user)
	return session.Save(c.Request(), c.Response())
}

// Logout tears down the session unconditionally.
func (m *SessionManager) Logout(c echo.Context) error {
	session, _ := m.store.Get(c.Request(), sessionName)
	delete(session.Values, userIDKey)
	session.Options.MaxAge = -1
	c.Set(currentUserKey, nil)
	return session.Save(c.Request(), c.Response())
}

// CurrentUser returns the user loaded by LoadUser, or nil for
// anonymous requests.
func (m *SessionManager) CurrentUser(c echo.Context) *models.User {
	user, _ := c.Get(currentUserKey).(*models.User)
	return user
}

// LoadUser resolves the session cookie to a user record and stores it
// in the request context. A session pointing at a deleted user is
// treated as anonymous.
func (m *SessionManager) LoadUser() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			session, err := m.store.Get(c.Request(), sessionName)
			if err == nil {
				if id, ok := session.Values[userIDKey].(uint); ok {
					if user, err := m.users.GetUserByID(id); err == nil {
						c.Set(currentUserKey, user)
					}
				}
			}
			return next(c)
		}
	}
}

// RequireLogin redirects anonymous callers to the login form,
// preserving the originally requested path in the next parameter.
func (m *SessionManager) RequireLogin() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if m.CurrentUser(c) == nil {
				target := "/login?next=" + url.QueryEscape(c.Request().URL.Path)
				return c.Redirect(http.StatusSeeOther, target)
			}
			return next(c)
		}
	}
}

// AddFlash queues a notice for the next rendered page.
func (m *SessionManager) AddFlash(c echo.Context, category, message string) {
	session, _ := m.store.Get(c.Request(), sessionName)
	session.AddFlash(Flash{Category: category, Message: message})
	if err := session.Save(c.Request(), c.Response()); err != nil {
		c.Logger().Errorf("save flash: %v", err)
	}
}

// Flashes drains and returns all queued notices.
func (m *SessionManager) Flashes(c echo.Context) []Flash {
	session, _ := m.store.Get(c.Request(), sessionName)
	raw := session.Flashes()
	if len(raw) > 0 {
		if err := session.Save(c.Request(), c.Response()); err != nil {
			c.Logger().Errorf("clear flashes: %v", err)
		}
	}
	flashes := make([]Flash, 0, len(raw))
	for _, v := range raw {
		if f, ok := v.(Flash); ok {
			flashes = append(flashes, f)
		}
	}
	return flashes
}

// SafeRedirectTarget reports whether next is a same-site relative path.
// Absolute URLs and protocol-relative ("//host") values are rejected so
// the post-login redirect cannot be pointed at another host.
func SafeRedirectTarget(next string) bool {
	if next == "" || !strings.HasPrefix(next, "/") || strings.HasPrefix(next, "//") {
		return false
	}
	u, err := url.Parse(next)
	if err != nil {
		return false
	}
	return u.Scheme == "" && u.Host == ""
}

package middleware

import (
	"time"

	"github.com/gatherly/app/internal/auth"
	"github.com/gatherly/app/internal/repositories"
	"github.com/labstack/echo/v4"
)

// TouchLastSeen updates the authenticated user's last-seen timestamp
// before every handler. Anonymous requests pass through untouched, and
// a failed write never fails the request.
func TouchLastSeen(users repositories.UserRepository, sessions *auth.SessionManager) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if user := sessions.CurrentUser(c); user != nil {
				now := time.Now().UTC()
				if err := users.TouchLastSeen(user.ID, now); err != nil {
					c.Logger().Errorf("touch last seen for user %d: %v", user.ID, err)
				} else {
					user.LastSeen = now
				}
			}
			return next(c)
		}
	}
}

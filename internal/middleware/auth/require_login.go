package auth

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/inventory_admin/internal/logging"
	"github.com/Skotchmaster/inventory_admin/internal/tokens"
)

const (
	SessionCookie = "session"
	LoginPath     = "/Login"

	ctxUserID   = "user_id"
	ctxUserName = "user_name"
)

// UserChecker confirms that the user behind a session still exists.
type UserChecker interface {
	Exists(ctx context.Context, id uint) (bool, error)
}

// RequireLogin lets a request through only with a valid session cookie whose
// user still exists, and redirects to the login page otherwise. A nil users
// trusts the token alone.
func RequireLogin(secret []byte, users UserChecker) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ctx := c.Request().Context()
			l := logging.FromContext(ctx).With("middleware", "require_login")

			cookie, err := c.Cookie(SessionCookie)
			if err != nil || cookie.Value == "" {
				return c.Redirect(http.StatusFound, LoginPath)
			}

			claims, err := tokens.SessionClaimsFromToken(cookie.Value, secret)
			if err != nil {
				l.Info("session_rejected", "reason", "invalid session token", "error", err)
				return c.Redirect(http.StatusFound, LoginPath)
			}
			id, err := claims.UserID()
			if err != nil {
				l.Warn("session_rejected", "reason", "bad subject", "error", err)
				return c.Redirect(http.StatusFound, LoginPath)
			}

			if users != nil {
				ok, err := users.Exists(ctx, id)
				if err != nil {
					l.Error("session_check_failed", "status", 500, "user_id", id, "error", err)
					return echo.NewHTTPError(http.StatusInternalServerError, "cannot verify session")
				}
				if !ok {
					l.Info("session_rejected", "reason", "user no longer exists", "user_id", id)
					c.SetCookie(&http.Cookie{Name: SessionCookie, Path: "/", MaxAge: -1, HttpOnly: true})
					return c.Redirect(http.StatusFound, LoginPath)
				}
			}

			c.Set(ctxUserID, id)
			c.Set(ctxUserName, claims.Name)
			return next(c)
		}
	}
}

// CurrentUser reports the user attached by RequireLogin.
func CurrentUser(c echo.Context) (uint, string, bool) {
	id, ok := c.Get(ctxUserID).(uint)
	if !ok {
		return 0, "", false
	}
	name, _ := c.Get(ctxUserName).(string)
	return id, name, true
}

package httpserver

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/inventory_admin/internal/logging"
	"github.com/Skotchmaster/inventory_admin/internal/middleware/auth"
	"github.com/Skotchmaster/inventory_admin/internal/middleware/csrf"
	"github.com/Skotchmaster/inventory_admin/internal/service"
	"github.com/Skotchmaster/inventory_admin/internal/transport"
)

const invalidLoginMessage = "Invalid username or password."

type AuthHTTP struct {
	Svc          *service.AuthService
	CookieSecure bool
}

func (h *AuthHTTP) LoginPage(c echo.Context) error {
	return c.Render(http.StatusOK, "Login/Index", LoginView{CSRFToken: csrf.Token(c)})
}

func (h *AuthHTTP) Login(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth.login")

	var req transport.LoginForm
	if err := c.Bind(&req); err != nil {
		l.Warn("login_failed", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	sess, err := h.Svc.Login(ctx, req.Name, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			return c.Render(http.StatusOK, "Login/Index", LoginView{
				Form:      transport.LoginForm{Name: req.Name},
				Error:     invalidLoginMessage,
				CSRFToken: csrf.Token(c),
			})
		}
		l.Error("login_failed", "status", 500, "reason", "cannot load users", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "internal server error")
	}

	c.SetCookie(CreateCookie(auth.SessionCookie, sess.Token, "/", sess.ExpiresAt, h.CookieSecure))
	l.Info("login_success", "user_id", sess.UserID)
	return c.Redirect(http.StatusFound, "/Dashboard")
}

func (h *AuthHTTP) RegisterPage(c echo.Context) error {
	return c.Render(http.StatusOK, "Login/Registrar", LoginView{CSRFToken: csrf.Token(c)})
}

func (h *AuthHTTP) Register(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth.register")

	var req transport.LoginForm
	if err := c.Bind(&req); err != nil {
		l.Warn("register_failed", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	if _, err := h.Svc.Register(ctx, req.Name, req.Password); err != nil {
		if errors.Is(err, service.ErrValidation) || errors.Is(err, service.ErrNotFound) {
			return c.Render(http.StatusOK, "Login/Registrar", LoginView{
				Form:      transport.LoginForm{Name: req.Name},
				Errors:    service.FieldErrors(err),
				Error:     "Registration failed.",
				CSRFToken: csrf.Token(c),
			})
		}
		l.Error("register_failed", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "internal server error")
	}

	l.Info("register_success")
	return c.Redirect(http.StatusFound, auth.LoginPath)
}

func (h *AuthHTTP) Logout(c echo.Context) error {
	c.SetCookie(DeleteCookie(auth.SessionCookie, "/", h.CookieSecure))
	return c.Redirect(http.StatusFound, auth.LoginPath)
}

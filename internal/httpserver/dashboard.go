package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/inventory_admin/internal/logging"
	"github.com/Skotchmaster/inventory_admin/internal/middleware/auth"
	"github.com/Skotchmaster/inventory_admin/internal/middleware/csrf"
	"github.com/Skotchmaster/inventory_admin/internal/service"
)

type DashboardHTTP struct {
	Svc *service.DashboardService
}

func (h *DashboardHTTP) Index(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "dashboard.index")

	sum, err := h.Svc.Summary(ctx)
	if err != nil {
		l.Error("dashboard_failed", "status", 500, "reason", "cannot count records", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot load dashboard")
	}

	_, name, _ := auth.CurrentUser(c)
	return c.Render(http.StatusOK, "Dashboard/Index", DashboardView{User: name, Summary: sum, CSRFToken: csrf.Token(c)})
}

package httpserver

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/Skotchmaster/inventory_admin/internal/db"
	"github.com/Skotchmaster/inventory_admin/internal/logging"
)

func live(c echo.Context) error { return c.NoContent(http.StatusOK) }

func ready(gdb *gorm.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx, cancel := context.WithTimeout(c.Request().Context(), 2*time.Second)
		defer cancel()

		if err := db.Ping(ctx, gdb); err != nil {
			logging.FromContext(ctx).Warn("ready_failed", "status", 503, "error", err)
			return c.NoContent(http.StatusServiceUnavailable)
		}
		return c.NoContent(http.StatusOK)
	}
}

package httpserver

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/inventory_admin/internal/logging"
	"github.com/Skotchmaster/inventory_admin/internal/middleware/csrf"
	"github.com/Skotchmaster/inventory_admin/internal/models"
	"github.com/Skotchmaster/inventory_admin/internal/repo"
	"github.com/Skotchmaster/inventory_admin/internal/service"
)

const conflictMessage = "The record was changed by someone else after you opened it. Reload it and try again."

// Form is a submitted entity form that can be parsed into a model.
type Form[T any] interface {
	Model() (*T, error)
}

// OptionsFunc loads the select lists an entity form needs, keyed by name.
type OptionsFunc func(ctx context.Context) (map[string][]repo.Option, error)

// Resource exposes one entity set under /<Name>.
type Resource[T any, PT interface {
	*T
	models.Entity
}, F Form[T]] struct {
	Name    string
	Svc     *service.CrudService[T, PT]
	ToForm  func(*T) F
	Options OptionsFunc
}

func (r *Resource[T, PT, F]) Mount(g *echo.Group) {
	g.GET("", r.Index)
	g.GET("/Index", r.Index)
	g.GET("/Details/:id", r.Details)
	g.GET("/Create", r.CreateForm)
	g.POST("/Create", r.Create)
	g.GET("/Edit/:id", r.EditForm)
	g.POST("/Edit/:id", r.Edit)
	g.GET("/Delete/:id", r.DeleteForm)
	g.POST("/Delete/:id", r.Delete)
}

func (r *Resource[T, PT, F]) logger(c echo.Context, op string) *slog.Logger {
	return logging.FromContext(c.Request().Context()).With("handler", strings.ToLower(r.Name)+"."+op)
}

func (r *Resource[T, PT, F]) view(name string) string { return r.Name + "/" + name }

func (r *Resource[T, PT, F]) index() string { return "/" + r.Name }

// fail maps a service error that has no form to go back to.
func (r *Resource[T, PT, F]) fail(c echo.Context, l *slog.Logger, event string, err error) error {
	switch {
	case errors.Is(err, service.ErrNotFound), errors.Is(err, service.ErrIDMismatch):
		l.Warn(event, "status", 404, "reason", "record not found", "error", err)
		return echo.NewHTTPError(http.StatusNotFound, "record not found")
	case errors.Is(err, service.ErrStoreUnavailable):
		l.Error(event, "status", 500, "reason", "entity set unavailable", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, fmt.Sprintf("entity set '%s' is unavailable", strings.ToLower(r.Name)))
	default:
		l.Error(event, "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "internal server error")
	}
}

func (r *Resource[T, PT, F]) Index(c echo.Context) error {
	l := r.logger(c, "index")

	items, err := r.Svc.List(c.Request().Context())
	if err != nil {
		return r.fail(c, l, "list_failed", err)
	}
	return c.Render(http.StatusOK, r.view("Index"), ListView[T]{Entity: r.Name, Items: items})
}

func (r *Resource[T, PT, F]) Details(c echo.Context) error {
	l := r.logger(c, "details")

	item, err := r.Svc.Get(c.Request().Context(), pathID(c))
	if err != nil {
		return r.fail(c, l, "details_failed", err)
	}
	return c.Render(http.StatusOK, r.view("Details"), DetailView[T]{Entity: r.Name, Item: item})
}

func (r *Resource[T, PT, F]) CreateForm(c echo.Context) error {
	var empty F
	return r.renderForm(c, http.StatusOK, "Create", empty, nil, "")
}

func (r *Resource[T, PT, F]) Create(c echo.Context) error {
	ctx := c.Request().Context()
	l := r.logger(c, "create")

	var f F
	if err := c.Bind(&f); err != nil {
		l.Warn("create_failed", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	m, err := f.Model()
	if err != nil {
		return r.renderForm(c, http.StatusOK, "Create", f, service.FieldErrors(err), "")
	}

	if _, err := r.Svc.Create(ctx, m); err != nil {
		if errors.Is(err, service.ErrValidation) {
			return r.renderForm(c, http.StatusOK, "Create", f, service.FieldErrors(err), "")
		}
		return r.fail(c, l, "create_failed", err)
	}

	l.Info("create_success")
	return c.Redirect(http.StatusFound, r.index())
}

func (r *Resource[T, PT, F]) EditForm(c echo.Context) error {
	l := r.logger(c, "edit_form")

	item, err := r.Svc.Get(c.Request().Context(), pathID(c))
	if err != nil {
		return r.fail(c, l, "edit_form_failed", err)
	}
	return r.renderForm(c, http.StatusOK, "Edit", r.ToForm(item), nil, "")
}

func (r *Resource[T, PT, F]) Edit(c echo.Context) error {
	ctx := c.Request().Context()
	l := r.logger(c, "edit")
	id := pathID(c)

	var f F
	if err := c.Bind(&f); err != nil {
		l.Warn("edit_failed", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	m, perr := f.Model()
	if id == 0 || PT(m).Meta().ID != id {
		return r.fail(c, l, "edit_failed", service.ErrIDMismatch)
	}
	if perr != nil {
		return r.renderForm(c, http.StatusOK, "Edit", f, service.FieldErrors(perr), "")
	}

	if err := r.Svc.Update(ctx, id, m); err != nil {
		switch {
		case errors.Is(err, service.ErrValidation):
			return r.renderForm(c, http.StatusOK, "Edit", f, service.FieldErrors(err), "")
		case errors.Is(err, service.ErrConflict):
			l.Warn("edit_failed", "status", 409, "reason", "concurrent update")
			return r.renderForm(c, http.StatusConflict, "Edit", f, nil, conflictMessage)
		}
		return r.fail(c, l, "edit_failed", err)
	}

	l.Info("edit_success", "id", id)
	return c.Redirect(http.StatusFound, r.index())
}

func (r *Resource[T, PT, F]) DeleteForm(c echo.Context) error {
	l := r.logger(c, "delete_form")

	item, err := r.Svc.Get(c.Request().Context(), pathID(c))
	if err != nil {
		return r.fail(c, l, "delete_form_failed", err)
	}
	return c.Render(http.StatusOK, r.view("Delete"), DeleteView[T]{Entity: r.Name, Item: item, CSRFToken: csrf.Token(c)})
}

// Delete removes the record if it is still there. A record that is already
// gone is not an error.
func (r *Resource[T, PT, F]) Delete(c echo.Context) error {
	ctx := c.Request().Context()
	l := r.logger(c, "delete")
	id := pathID(c)

	err := r.Svc.Delete(ctx, id)
	switch {
	case err == nil:
		l.Info("delete_success", "id", id)
	case errors.Is(err, service.ErrNotFound):
		l.Info("delete_noop", "id", id)
	case errors.Is(err, service.ErrInUse):
		l.Warn("delete_failed", "status", 409, "reason", "record in use", "error", err)
		item, gerr := r.Svc.Get(ctx, id)
		if gerr != nil {
			return r.fail(c, l, "delete_failed", gerr)
		}
		return c.Render(http.StatusConflict, r.view("Delete"), DeleteView[T]{
			Entity:    r.Name,
			Item:      item,
			Message:   "This record is still referenced and cannot be deleted: " + err.Error(),
			CSRFToken: csrf.Token(c),
		})
	default:
		return r.fail(c, l, "delete_failed", err)
	}
	return c.Redirect(http.StatusFound, r.index())
}

func (r *Resource[T, PT, F]) renderForm(c echo.Context, code int, mode string, f F, errs map[string]string, msg string) error {
	v := FormView[F]{
		Entity:    r.Name,
		Mode:      strings.ToLower(mode),
		Form:      f,
		Errors:    errs,
		Message:   msg,
		CSRFToken: csrf.Token(c),
	}
	if r.Options != nil {
		opts, err := r.Options(c.Request().Context())
		if err != nil {
			return r.fail(c, r.logger(c, strings.ToLower(mode)), "options_failed", err)
		}
		v.Options = opts
	}
	return c.Render(code, r.view(mode), v)
}

// pathID returns 0 for anything that is not a positive integer that fits a
// signed 64-bit key; no record has id 0.
func pathID(c echo.Context) uint {
	n, err := strconv.ParseUint(c.Param("id"), 10, 63)
	if err != nil {
		return 0
	}
	return uint(n)
}

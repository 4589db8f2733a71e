// Package view renders the view models produced by the HTTP handlers.
package view

import (
	"encoding/json"
	"fmt"
	"html/template"
	"io"

	"github.com/labstack/echo/v4"
)

// Page is the envelope written by the JSON renderer.
type Page struct {
	View string `json:"view"`
	Data any    `json:"data"`
}

// JSON renders every view model as a JSON document naming the view.
type JSON struct{}

func (JSON) Render(w io.Writer, name string, data any, c echo.Context) error {
	if c != nil {
		c.Response().Header().Set(echo.HeaderContentType, echo.MIMEApplicationJSONCharsetUTF8)
	}
	return json.NewEncoder(w).Encode(Page{View: name, Data: data})
}

// Templates renders views through html/template files named after the view,
// e.g. "Products/Index".
type Templates struct {
	t *template.Template
}

func NewTemplates(glob string) (*Templates, error) {
	t, err := template.ParseGlob(glob)
	if err != nil {
		return nil, fmt.Errorf("parse templates %q: %w", glob, err)
	}
	return &Templates{t: t}, nil
}

func (t *Templates) Render(w io.Writer, name string, data any, _ echo.Context) error {
	return t.t.ExecuteTemplate(w, name, data)
}

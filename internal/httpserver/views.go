package httpserver

import (
	"github.com/Skotchmaster/inventory_admin/internal/repo"
	"github.com/Skotchmaster/inventory_admin/internal/service"
	"github.com/Skotchmaster/inventory_admin/internal/transport"
)

// View models handed to the renderer. Templates address them by these
// json names as well.

type ListView[T any] struct {
	Entity string `json:"entity"`
	Items  []T    `json:"items"`
}

type DetailView[T any] struct {
	Entity string `json:"entity"`
	Item   *T     `json:"item"`
}

type FormView[F any] struct {
	Entity    string                   `json:"entity"`
	Mode      string                   `json:"mode"`
	Form      F                        `json:"form"`
	Errors    map[string]string        `json:"errors,omitempty"`
	Message   string                   `json:"message,omitempty"`
	Options   map[string][]repo.Option `json:"options,omitempty"`
	CSRFToken string                   `json:"csrf_token"`
}

type DeleteView[T any] struct {
	Entity    string `json:"entity"`
	Item      *T     `json:"item"`
	Message   string `json:"message,omitempty"`
	CSRFToken string `json:"csrf_token"`
}

type LoginView struct {
	Form      transport.LoginForm `json:"form"`
	Error     string              `json:"error,omitempty"`
	Errors    map[string]string   `json:"errors,omitempty"`
	CSRFToken string              `json:"csrf_token"`
}

type DashboardView struct {
	User      string          `json:"user"`
	Summary   service.Summary `json:"summary"`
	CSRFToken string          `json:"csrf_token"`
}

package service

import (
	"errors"
	"sort"
	"strings"

	"github.com/Skotchmaster/inventory_admin/internal/repo"
)

var (
	ErrNotFound           = repo.ErrNotFound
	ErrConflict           = repo.ErrStale
	ErrInUse              = repo.ErrInUse
	ErrIDMismatch         = errors.New("id does not match the submitted record")
	ErrValidation         = errors.New("validation failed")
	ErrStoreUnavailable   = errors.New("entity set is unavailable")
	ErrInvalidCredentials = errors.New("invalid username or password")
)

// ValidationError carries one message per offending form field.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Add(field, msg string) {
	if e.Fields == nil {
		e.Fields = make(map[string]string)
	}
	if _, ok := e.Fields[field]; !ok {
		e.Fields[field] = msg
	}
}

func (e *ValidationError) Merge(other *ValidationError) {
	if other == nil {
		return
	}
	for f, msg := range other.Fields {
		e.Add(f, msg)
	}
}

func (e *ValidationError) Empty() bool { return len(e.Fields) == 0 }

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+e.Fields[k])
	}
	return ErrValidation.Error() + ": " + strings.Join(parts, "; ")
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

// FieldErrors extracts per-field messages from err, or nil when err is not
// a validation failure.
func FieldErrors(err error) map[string]string {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve.Fields
	}
	return nil
}

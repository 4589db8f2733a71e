package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/Skotchmaster/inventory_admin/internal/logging"
	"github.com/Skotchmaster/inventory_admin/internal/models"
	"github.com/Skotchmaster/inventory_admin/internal/mykafka"
	"github.com/Skotchmaster/inventory_admin/internal/repo"
)

// Repository is the storage contract the CRUD service runs on.
type Repository[T any] interface {
	List(ctx context.Context) ([]T, error)
	Get(ctx context.Context, id uint) (*T, error)
	Create(ctx context.Context, item *T) error
	Update(ctx context.Context, item *T) error
	Delete(ctx context.Context, id uint) error
	Exists(ctx context.Context, id uint) (bool, error)
	Count(ctx context.Context) (int64, error)
}

// Hooks customise a CrudService for one entity. current is nil on create.
type Hooks[T any] struct {
	// Prepare normalises the candidate and may report extra field errors.
	Prepare func(ctx context.Context, candidate, current *T) error
	// Check verifies rows the candidate points at.
	Check func(ctx context.Context, candidate *T) error
	// BeforeWrite runs once the candidate is known to be valid.
	BeforeWrite func(ctx context.Context, candidate, current *T) error
}

// EntityEvent is published after every successful write.
type EntityEvent struct {
	Type   string `json:"type"`
	Entity string `json:"entity"`
	ID     uint   `json:"id"`
}

// CrudService is the uniform list/get/create/update/delete workflow shared by
// every entity.
type CrudService[T any, PT interface {
	*T
	models.Entity
}] struct {
	Kind   string
	Repo   Repository[T]
	Hooks  Hooks[T]
	Events mykafka.Publisher
}

func NewCrud[T any, PT interface {
	*T
	models.Entity
}](kind string, r Repository[T], events mykafka.Publisher) *CrudService[T, PT] {
	if events == nil {
		events = mykafka.Discard{}
	}
	return &CrudService[T, PT]{Kind: kind, Repo: r, Events: events}
}

func (s *CrudService[T, PT]) unavailable(err error) error {
	return fmt.Errorf("%w: %s: %v", ErrStoreUnavailable, s.Kind, err)
}

func (s *CrudService[T, PT]) List(ctx context.Context) ([]T, error) {
	items, err := s.Repo.List(ctx)
	if err != nil {
		logging.FromContext(ctx).Error("list_failed", "svc", s.Kind+".list", "error", err)
		return nil, s.unavailable(err)
	}
	return items, nil
}

func (s *CrudService[T, PT]) Get(ctx context.Context, id uint) (*T, error) {
	item, err := s.Repo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrNotFound
		}
		logging.FromContext(ctx).Error("get_failed", "svc", s.Kind+".get", "id", id, "error", err)
		return nil, s.unavailable(err)
	}
	return item, nil
}

func (s *CrudService[T, PT]) Exists(ctx context.Context, id uint) (bool, error) {
	ok, err := s.Repo.Exists(ctx, id)
	if err != nil {
		return false, s.unavailable(err)
	}
	return ok, nil
}

func (s *CrudService[T, PT]) Count(ctx context.Context) (int64, error) {
	n, err := s.Repo.Count(ctx)
	if err != nil {
		return 0, s.unavailable(err)
	}
	return n, nil
}

// admit runs the hooks and validation against work.
func (s *CrudService[T, PT]) admit(ctx context.Context, work, current *T) error {
	ve := &ValidationError{}
	if s.Hooks.Prepare != nil {
		if err := s.Hooks.Prepare(ctx, work, current); err != nil {
			var pve *ValidationError
			if !errors.As(err, &pve) {
				return err
			}
			ve.Merge(pve)
		}
	}

	if err := validateStruct(work); err != nil {
		var sve *ValidationError
		if !errors.As(err, &sve) {
			return err
		}
		ve.Merge(sve)
	}
	if !ve.Empty() {
		return ve
	}

	if s.Hooks.Check != nil {
		if err := s.Hooks.Check(ctx, work); err != nil {
			return err
		}
	}
	if s.Hooks.BeforeWrite != nil {
		return s.Hooks.BeforeWrite(ctx, work, current)
	}
	return nil
}

// Create validates candidate and stores a copy of it. On failure the
// candidate is returned untouched so the form can be shown again.
func (s *CrudService[T, PT]) Create(ctx context.Context, candidate *T) (*T, error) {
	l := logging.FromContext(ctx).With("svc", s.Kind+".create")

	work := *candidate
	if err := s.admit(ctx, &work, nil); err != nil {
		l.Warn("create_rejected", "reason", err.Error())
		return candidate, err
	}

	if err := s.Repo.Create(ctx, &work); err != nil {
		l.Error("create_failed", "error", err)
		return candidate, s.unavailable(err)
	}

	id := PT(&work).Meta().ID
	s.publish(ctx, "created", id)
	l.Info("created", "id", id)
	return &work, nil
}

// Update replaces the stored record id with candidate. A zero version in the
// candidate means the caller did not track one; the version read here is
// used instead.
func (s *CrudService[T, PT]) Update(ctx context.Context, id uint, candidate *T) error {
	l := logging.FromContext(ctx).With("svc", s.Kind+".update", "id", id)

	meta := PT(candidate).Meta()
	if meta.ID != id {
		l.Warn("update_rejected", "reason", "id mismatch", "record_id", meta.ID)
		return ErrIDMismatch
	}

	current, err := s.Get(ctx, id)
	if err != nil {
		return err
	}

	work := *candidate
	if PT(&work).Meta().Version == 0 {
		PT(&work).Meta().Version = PT(current).Meta().Version
	}

	if err := s.admit(ctx, &work, current); err != nil {
		l.Warn("update_rejected", "reason", err.Error())
		return err
	}

	if err := s.Repo.Update(ctx, &work); err != nil {
		switch {
		case errors.Is(err, repo.ErrNotFound):
			return ErrNotFound
		case errors.Is(err, repo.ErrStale):
			l.Warn("update_conflict", "version", PT(&work).Meta().Version)
			return ErrConflict
		}
		l.Error("update_failed", "error", err)
		return s.unavailable(err)
	}

	s.publish(ctx, "updated", id)
	l.Info("updated", "version", PT(&work).Meta().Version)
	return nil
}

func (s *CrudService[T, PT]) Delete(ctx context.Context, id uint) error {
	l := logging.FromContext(ctx).With("svc", s.Kind+".delete", "id", id)

	if err := s.Repo.Delete(ctx, id); err != nil {
		switch {
		case errors.Is(err, repo.ErrNotFound):
			return ErrNotFound
		case errors.Is(err, repo.ErrInUse):
			l.Warn("delete_rejected", "reason", err.Error())
			return err
		}
		l.Error("delete_failed", "error", err)
		return s.unavailable(err)
	}

	s.publish(ctx, "deleted", id)
	l.Info("deleted")
	return nil
}

// publish is best effort: the write already happened.
func (s *CrudService[T, PT]) publish(ctx context.Context, action string, id uint) {
	ev := EntityEvent{Type: s.Kind + "_" + action, Entity: s.Kind, ID: id}
	if err := s.Events.PublishEvent(ctx, mykafka.TopicEntityEvents, fmt.Sprint(id), ev); err != nil {
		logging.FromContext(ctx).Warn("publish_failed", "svc", s.Kind+"."+action, "error", err)
	}
}

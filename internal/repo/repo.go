package repo

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Skotchmaster/inventory_admin/internal/models"
)

var (
	ErrNotFound = errors.New("record not found")
	ErrStale    = errors.New("record was modified concurrently")
	ErrInUse    = errors.New("record is still referenced")
)

// Reference names a column in another table that points at this one.
// Rows referenced through any of them cannot be deleted.
type Reference struct {
	Model  any
	Column string
	Name   string
}

// GormRepo is the storage side of the CRUD contract, shared by every entity.
type GormRepo[T any, PT interface {
	*T
	models.Entity
}] struct {
	DB         *gorm.DB
	Preloads   []string
	References []Reference
}

func New[T any, PT interface {
	*T
	models.Entity
}](db *gorm.DB) *GormRepo[T, PT] {
	return &GormRepo[T, PT]{DB: db}
}

// WithPreloads makes List and Get join-fetch the named associations.
func (r *GormRepo[T, PT]) WithPreloads(names ...string) *GormRepo[T, PT] {
	r.Preloads = append(r.Preloads, names...)
	return r
}

// WithReferences registers the tables whose rows block deletion.
func (r *GormRepo[T, PT]) WithReferences(refs ...Reference) *GormRepo[T, PT] {
	r.References = append(r.References, refs...)
	return r
}

func (r *GormRepo[T, PT]) joined(ctx context.Context) *gorm.DB {
	q := r.DB.WithContext(ctx)
	for _, p := range r.Preloads {
		q = q.Preload(p)
	}
	return q
}

func (r *GormRepo[T, PT]) List(ctx context.Context) ([]T, error) {
	items := make([]T, 0)
	if err := r.joined(ctx).Order("id ASC").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *GormRepo[T, PT]) Get(ctx context.Context, id uint) (*T, error) {
	if id == 0 {
		return nil, ErrNotFound
	}
	var item T
	if err := r.joined(ctx).First(&item, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &item, nil
}

func (r *GormRepo[T, PT]) Create(ctx context.Context, item *T) error {
	meta := PT(item).Meta()
	meta.ID = 0
	meta.Version = 1
	if err := r.DB.WithContext(ctx).Omit(clause.Associations).Create(item).Error; err != nil {
		meta.ID = 0
		return err
	}
	return nil
}

// Update writes every column of item, provided the stored row still has the
// version item was read at. On success item carries the new version.
func (r *GormRepo[T, PT]) Update(ctx context.Context, item *T) error {
	meta := PT(item).Meta()
	expected := meta.Version
	meta.Version = expected + 1

	res := r.DB.WithContext(ctx).
		Model(new(T)).
		Where("id = ? AND version = ?", meta.ID, expected).
		Select("*").
		Omit("id", clause.Associations).
		Updates(item)
	if res.Error != nil {
		meta.Version = expected
		return res.Error
	}
	if res.RowsAffected > 0 {
		return nil
	}

	meta.Version = expected
	exists, err := r.Exists(ctx, meta.ID)
	if err != nil {
		return err
	}
	if !exists {
		return ErrNotFound
	}
	return ErrStale
}

func (r *GormRepo[T, PT]) Delete(ctx context.Context, id uint) error {
	if id == 0 {
		return ErrNotFound
	}
	for _, ref := range r.References {
		var n int64
		if err := r.DB.WithContext(ctx).Model(ref.Model).Where(ref.Column+" = ?", id).Count(&n).Error; err != nil {
			return err
		}
		if n > 0 {
			return fmt.Errorf("%w by %d %s", ErrInUse, n, ref.Name)
		}
	}

	res := r.DB.WithContext(ctx).Delete(new(T), id)
	if res.Error != nil {
		if errors.Is(res.Error, gorm.ErrForeignKeyViolated) {
			return fmt.Errorf("%w: %v", ErrInUse, res.Error)
		}
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *GormRepo[T, PT]) Exists(ctx context.Context, id uint) (bool, error) {
	var n int64
	if err := r.DB.WithContext(ctx).Model(new(T)).Where("id = ?", id).Count(&n).Error; err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r *GormRepo[T, PT]) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := r.DB.WithContext(ctx).Model(new(T)).Count(&n).Error; err != nil {
		return 0, err
	}
	return n, nil
}

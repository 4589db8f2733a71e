package repo

import (
	"context"

	"gorm.io/gorm"
)

// Option is one entry of a select list rendered in entity forms.
type Option struct {
	Value uint   `json:"value"`
	Label string `json:"label"`
}

// Options lists id/name pairs of model, ordered by id.
func Options(ctx context.Context, db *gorm.DB, model any) ([]Option, error) {
	opts := make([]Option, 0)
	err := db.WithContext(ctx).
		Model(model).
		Select("id AS value, name AS label").
		Order("id ASC").
		Scan(&opts).Error
	if err != nil {
		return nil, err
	}
	return opts, nil
}

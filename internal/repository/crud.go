package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"
)

// Crud implements the generic get-all/get-one/create/update/delete contract
// shared by every resource type. Resource-specific repos embed it and add
// their own queries on top.
type Crud[T any] struct {
	db    *gorm.DB
	table string
}

func NewCrud[T any](db *gorm.DB, table string) *Crud[T] {
	return &Crud[T]{db: db, table: table}
}

func (c *Crud[T]) query(ctx context.Context, filter Filter, preloads ...string) *gorm.DB {
	var model T
	q := c.db.WithContext(ctx).Model(&model)
	if !filter.Empty() {
		q = q.Where(map[string]any(filter))
	}
	for _, p := range preloads {
		q = q.Preload(p)
	}
	return q
}

func (c *Crud[T]) GetAll(ctx context.Context, filter Filter, opts ListOptions, preloads ...string) ([]T, error) {
	var list []T
	err := opts.Apply(c.query(ctx, filter, preloads...)).Find(&list).Error
	return list, err
}

// Count returns the number of documents matching the filter. With an empty
// filter the cheap planner estimate from pg_class is used instead of a
// sequential scan; a non-positive estimate falls back to the exact count.
func (c *Crud[T]) Count(ctx context.Context, filter Filter) (int64, error) {
	if filter.Empty() {
		var estimate int64
		err := c.db.WithContext(ctx).
			Raw(`SELECT reltuples::bigint FROM pg_class WHERE relname = ?`, c.table).
			Scan(&estimate).Error
		if err == nil && estimate > 0 {
			return estimate, nil
		}
	}
	var total int64
	err := c.query(ctx, filter).Count(&total).Error
	return total, err
}

func (c *Crud[T]) GetOne(ctx context.Context, filter Filter, preloads ...string) (*T, error) {
	var doc T
	err := c.query(ctx, filter, preloads...).First(&doc).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &doc, nil
}

func (c *Crud[T]) CreateOne(ctx context.Context, doc *T) error {
	return c.db.WithContext(ctx).Create(doc).Error
}

// UpdateOne applies the sanitized, partially filled document to the single
// record matching the filter and refetches it with the caller's preloads.
// Only non-zero fields are written; gorm stamps updated_at server-side on
// every update (a client value never survives the body whitelist anyway).
// Returns nil, nil when nothing matched.
func (c *Crud[T]) UpdateOne(ctx context.Context, filter Filter, updates *T, preloads ...string) (*T, error) {
	res := c.query(ctx, filter).Updates(updates)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, nil
	}
	return c.GetOne(ctx, filter, preloads...)
}

func (c *Crud[T]) DeleteOne(ctx context.Context, filter Filter) (bool, error) {
	var model T
	res := c.db.WithContext(ctx).Where(map[string]any(filter)).Delete(&model)
	return res.RowsAffected > 0, res.Error
}

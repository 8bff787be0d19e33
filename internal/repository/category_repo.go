package repository

import (
	"context"

	"github.com/kstarostin/campfire-store-api/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CategoryRepo interface {
	CountChildren(ctx context.Context, id uuid.UUID) (int64, error)

	Crud() *Crud[models.Category]
}

type categoryRepo struct {
	db   *gorm.DB
	crud *Crud[models.Category]
}

func NewCategoryRepo(db *gorm.DB) CategoryRepo {
	return &categoryRepo{db: db, crud: NewCrud[models.Category](db, "categories")}
}

func (r *categoryRepo) Crud() *Crud[models.Category] { return r.crud }

func (r *categoryRepo) CountChildren(ctx context.Context, id uuid.UUID) (int64, error) {
	var cnt int64
	err := r.db.WithContext(ctx).Model(&models.Category{}).
		Where("parent_category_id = ?", id).Count(&cnt).Error
	return cnt, err
}

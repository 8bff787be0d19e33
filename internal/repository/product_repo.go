package repository

import (
	"context"
	"errors"

	"github.com/kstarostin/campfire-store-api/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ProductRepo interface {
	Create(ctx context.Context, p *models.Product) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Product, error)
	ListByIDs(ctx context.Context, ids []uuid.UUID) ([]models.Product, error)
	UpdateImages(ctx context.Context, id uuid.UUID, images models.ImageContainers) error
	CountByCategory(ctx context.Context, categoryID uuid.UUID) (int64, error)

	Crud() *Crud[models.Product]
}

type productRepo struct {
	db   *gorm.DB
	crud *Crud[models.Product]
}

func NewProductRepo(db *gorm.DB) ProductRepo {
	return &productRepo{db: db, crud: NewCrud[models.Product](db, "products")}
}

func (r *productRepo) Crud() *Crud[models.Product] { return r.crud }

func (r *productRepo) Create(ctx context.Context, p *models.Product) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *productRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	var p models.Product
	err := r.db.WithContext(ctx).First(&p, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &p, err
}

func (r *productRepo) ListByIDs(ctx context.Context, ids []uuid.UUID) ([]models.Product, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var list []models.Product
	err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&list).Error
	return list, err
}

func (r *productRepo) UpdateImages(ctx context.Context, id uuid.UUID, images models.ImageContainers) error {
	return r.db.WithContext(ctx).Model(&models.Product{}).Where("id = ?", id).
		Update("images", images).Error
}

func (r *productRepo) CountByCategory(ctx context.Context, categoryID uuid.UUID) (int64, error) {
	var cnt int64
	err := r.db.WithContext(ctx).Model(&models.Product{}).
		Where("category_id = ?", categoryID).Count(&cnt).Error
	return cnt, err
}

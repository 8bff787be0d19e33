package repository

import (
	"context"
	"errors"

	"github.com/kstarostin/campfire-store-api/internal/models"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type EntryRepo interface {
	Create(ctx context.Context, e *models.GenericOrderEntry) error
	GetByIDForParent(ctx context.Context, id, parentID uuid.UUID) (*models.GenericOrderEntry, error)
	ListByParent(ctx context.Context, parentID uuid.UUID) ([]models.GenericOrderEntry, error)
	UpdateQuantity(ctx context.Context, id uuid.UUID, quantity int) error
	UpdatePrice(ctx context.Context, id uuid.UUID, price decimal.Decimal) error
	DeleteByIDForParent(ctx context.Context, id, parentID uuid.UUID) (bool, error)
	// SumLineTotals computes Σ price × quantity for the parent cart/order.
	SumLineTotals(ctx context.Context, parentID uuid.UUID) (decimal.Decimal, error)

	Crud() *Crud[models.GenericOrderEntry]
}

type entryRepo struct {
	db   *gorm.DB
	crud *Crud[models.GenericOrderEntry]
}

func NewEntryRepo(db *gorm.DB) EntryRepo {
	return &entryRepo{db: db, crud: NewCrud[models.GenericOrderEntry](db, "generic_order_entries")}
}

func (r *entryRepo) Crud() *Crud[models.GenericOrderEntry] { return r.crud }

func (r *entryRepo) Create(ctx context.Context, e *models.GenericOrderEntry) error {
	return r.db.WithContext(ctx).Create(e).Error
}

func (r *entryRepo) GetByIDForParent(ctx context.Context, id, parentID uuid.UUID) (*models.GenericOrderEntry, error) {
	var e models.GenericOrderEntry
	err := r.db.WithContext(ctx).Preload("ProductData").
		First(&e, "id = ? AND parent_id = ?", id, parentID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &e, err
}

func (r *entryRepo) ListByParent(ctx context.Context, parentID uuid.UUID) ([]models.GenericOrderEntry, error) {
	var rows []models.GenericOrderEntry
	err := r.db.WithContext(ctx).
		Where("parent_id = ?", parentID).
		Order("created_at ASC").
		Find(&rows).Error
	return rows, err
}

func (r *entryRepo) UpdateQuantity(ctx context.Context, id uuid.UUID, quantity int) error {
	return r.db.WithContext(ctx).Model(&models.GenericOrderEntry{}).Where("id = ?", id).
		Update("quantity", quantity).Error
}

func (r *entryRepo) UpdatePrice(ctx context.Context, id uuid.UUID, price decimal.Decimal) error {
	return r.db.WithContext(ctx).Model(&models.GenericOrderEntry{}).Where("id = ?", id).
		Update("price", price).Error
}

func (r *entryRepo) DeleteByIDForParent(ctx context.Context, id, parentID uuid.UUID) (bool, error) {
	res := r.db.WithContext(ctx).
		Where("id = ? AND parent_id = ?", id, parentID).
		Delete(&models.GenericOrderEntry{})
	return res.RowsAffected > 0, res.Error
}

func (r *entryRepo) SumLineTotals(ctx context.Context, parentID uuid.UUID) (decimal.Decimal, error) {
	var total decimal.Decimal
	err := r.db.WithContext(ctx).Model(&models.GenericOrderEntry{}).
		Select("COALESCE(SUM(price * quantity), 0)").
		Where("parent_id = ?", parentID).
		Scan(&total).Error
	return total, err
}

package repository

import (
	"context"
	"errors"

	"github.com/kstarostin/campfire-store-api/internal/models"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type GenericOrderRepo interface {
	Create(ctx context.Context, o *models.GenericOrder) error
	GetByID(ctx context.Context, id uuid.UUID, kind models.OrderKind) (*models.GenericOrder, error)
	GetByIDForUser(ctx context.Context, id, userID uuid.UUID, kind models.OrderKind) (*models.GenericOrder, error)
	CountCartsForUser(ctx context.Context, userID uuid.UUID) (int64, error)
	UpdateCurrency(ctx context.Context, id uuid.UUID, currency string) error
	UpdateTotal(ctx context.Context, id uuid.UUID, total decimal.Decimal) error
	// ConvertToOrder flips the discriminator in place, preserving the id.
	ConvertToOrder(ctx context.Context, cartID uuid.UUID, status models.OrderStatus) error

	WithTx(ctx context.Context, fn func(txOrders GenericOrderRepo, txEntries EntryRepo) error) error
	Crud() *Crud[models.GenericOrder]
}

type genericOrderRepo struct {
	db   *gorm.DB
	crud *Crud[models.GenericOrder]
}

func NewGenericOrderRepo(db *gorm.DB) GenericOrderRepo {
	return &genericOrderRepo{db: db, crud: NewCrud[models.GenericOrder](db, "generic_orders")}
}

func (r *genericOrderRepo) Crud() *Crud[models.GenericOrder] { return r.crud }

func (r *genericOrderRepo) Create(ctx context.Context, o *models.GenericOrder) error {
	return r.db.WithContext(ctx).Create(o).Error
}

func (r *genericOrderRepo) GetByID(ctx context.Context, id uuid.UUID, kind models.OrderKind) (*models.GenericOrder, error) {
	var ord models.GenericOrder
	err := r.db.WithContext(ctx).
		Preload("Entries").Preload("Owner").
		First(&ord, "id = ? AND kind = ?", id, kind).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &ord, err
}

func (r *genericOrderRepo) GetByIDForUser(ctx context.Context, id, userID uuid.UUID, kind models.OrderKind) (*models.GenericOrder, error) {
	var ord models.GenericOrder
	err := r.db.WithContext(ctx).
		Preload("Entries").Preload("Owner").
		First(&ord, "id = ? AND user_id = ? AND kind = ?", id, userID, kind).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &ord, err
}

func (r *genericOrderRepo) CountCartsForUser(ctx context.Context, userID uuid.UUID) (int64, error) {
	var cnt int64
	err := r.db.WithContext(ctx).Model(&models.GenericOrder{}).
		Where("user_id = ? AND kind = ?", userID, models.KindCart).
		Count(&cnt).Error
	return cnt, err
}

func (r *genericOrderRepo) UpdateCurrency(ctx context.Context, id uuid.UUID, currency string) error {
	return r.db.WithContext(ctx).Model(&models.GenericOrder{}).Where("id = ?", id).
		Update("currency", currency).Error
}

func (r *genericOrderRepo) UpdateTotal(ctx context.Context, id uuid.UUID, total decimal.Decimal) error {
	return r.db.WithContext(ctx).Model(&models.GenericOrder{}).Where("id = ?", id).
		Update("total", total).Error
}

func (r *genericOrderRepo) ConvertToOrder(ctx context.Context, cartID uuid.UUID, status models.OrderStatus) error {
	return r.db.WithContext(ctx).Model(&models.GenericOrder{}).
		Where("id = ? AND kind = ?", cartID, models.KindCart).
		Updates(map[string]any{
			"kind":   models.KindOrder,
			"status": status,
		}).Error
}

func (r *genericOrderRepo) WithTx(ctx context.Context, fn func(txOrders GenericOrderRepo, txEntries EntryRepo) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(NewGenericOrderRepo(tx), NewEntryRepo(tx))
	})
}

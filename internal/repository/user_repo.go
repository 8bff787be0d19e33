package repository

import (
	"context"
	"errors"
	"time"

	"github.com/kstarostin/campfire-store-api/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type UserRepo interface {
	Create(ctx context.Context, u *models.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	// GetByIDOrEmail resolves the path parameter of /users/:userId, which may
	// be either a uuid or an email address.
	GetByIDOrEmail(ctx context.Context, idOrEmail string) (*models.User, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	UpdatePassword(ctx context.Context, id uuid.UUID, hash string, changedAt time.Time) error
	UpdatePhoto(ctx context.Context, id uuid.UUID, photo *models.ImageContainer) error

	Crud() *Crud[models.User]
}

type userRepo struct {
	db   *gorm.DB
	crud *Crud[models.User]
}

func NewUserRepo(db *gorm.DB) UserRepo {
	return &userRepo{db: db, crud: NewCrud[models.User](db, "users")}
}

func (r *userRepo) Crud() *Crud[models.User] { return r.crud }

func (r *userRepo) Create(ctx context.Context, u *models.User) error {
	return r.db.WithContext(ctx).Create(u).Error
}

func (r *userRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	var u models.User
	err := r.db.WithContext(ctx).First(&u, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &u, err
}

func (r *userRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	var u models.User
	err := r.db.WithContext(ctx).First(&u, "email = ?", email).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &u, err
}

func (r *userRepo) GetByIDOrEmail(ctx context.Context, idOrEmail string) (*models.User, error) {
	if id, err := uuid.Parse(idOrEmail); err == nil {
		return r.GetByID(ctx, id)
	}
	return r.GetByEmail(ctx, idOrEmail)
}

func (r *userRepo) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var cnt int64
	err := r.db.WithContext(ctx).Model(&models.User{}).Where("email = ?", email).Count(&cnt).Error
	return cnt > 0, err
}

func (r *userRepo) UpdatePassword(ctx context.Context, id uuid.UUID, hash string, changedAt time.Time) error {
	return r.db.WithContext(ctx).Model(&models.User{}).Where("id = ?", id).Updates(map[string]any{
		"password":            hash,
		"password_changed_at": changedAt,
	}).Error
}

func (r *userRepo) UpdatePhoto(ctx context.Context, id uuid.UUID, photo *models.ImageContainer) error {
	return r.db.WithContext(ctx).Model(&models.User{}).Where("id = ?", id).
		Update("photo", photo).Error
}

package service

import (
	"context"
	"net/http"
	"time"

	"github.com/kstarostin/campfire-store-api/config"
	"github.com/kstarostin/campfire-store-api/internal/models"
	"github.com/kstarostin/campfire-store-api/internal/repository"

	"go.uber.org/zap"
)

type UserService struct {
	users  repository.UserRepo
	hasher PasswordHasher
	locale config.Locale
	now    func() time.Time
	log    *zap.Logger
}

func NewUserService(users repository.UserRepo, hasher PasswordHasher, locale config.Locale, log *zap.Logger) *UserService {
	return &UserService{users: users, hasher: hasher, locale: locale, now: time.Now, log: log}
}

// GetByIDOrEmail resolves /users/:userId, which accepts a uuid or an email.
func (s *UserService) GetByIDOrEmail(ctx context.Context, idOrEmail string) (*models.User, error) {
	user, err := s.users.GetByIDOrEmail(ctx, idOrEmail)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return user, nil
}

type UserUpdate struct {
	Name              *string
	Email             *string
	Password          *string
	Roles             models.Roles
	DeliveryAddresses models.Addresses
	BillingAddresses  models.Addresses
}

// Update applies whitelisted changes. All input is validated before anything
// is written, so a rejected update never leaves partial state behind. A
// password change is rehashed and the changed-at stamp is set slightly before
// save time to tolerate token-issue races.
func (s *UserService) Update(ctx context.Context, idOrEmail string, upd UserUpdate) (*models.User, error) {
	user, err := s.GetByIDOrEmail(ctx, idOrEmail)
	if err != nil {
		return nil, err
	}

	if upd.Password != nil && len(*upd.Password) < 8 {
		return nil, NewAppError(http.StatusBadRequest, "Password must be at least 8 characters long.")
	}
	if len(upd.Roles) > 0 {
		// Роли меняет только администратор, иначе user повышает сам себя.
		acting, ok := UserFromContext(ctx)
		if !ok || !acting.Roles.Has("admin") {
			return nil, NewAppError(http.StatusForbidden, "You do not have permission to change user roles.")
		}
		for _, role := range upd.Roles {
			if !config.Contains(s.locale.AllowedRoles, role) {
				return nil, NewAppError(http.StatusBadRequest, "Allowed roles are %v.", s.locale.AllowedRoles)
			}
		}
	}

	if upd.Password != nil {
		hash, err := s.hasher.Hash(*upd.Password)
		if err != nil {
			return nil, err
		}
		changedAt := s.now().Add(-time.Second)
		if err := s.users.UpdatePassword(ctx, user.ID, hash, changedAt); err != nil {
			return nil, err
		}
	}

	changes := &models.User{
		Roles:             upd.Roles,
		DeliveryAddresses: upd.DeliveryAddresses,
		BillingAddresses:  upd.BillingAddresses,
	}
	if upd.Name != nil {
		changes.Name = *upd.Name
	}
	if upd.Email != nil {
		changes.Email = *upd.Email
	}

	updated, err := s.users.Crud().UpdateOne(ctx, repository.Filter{"id": user.ID}, changes)
	if err != nil {
		return nil, err
	}
	if updated == nil {
		return nil, ErrUserNotFound
	}
	return updated, nil
}

func (s *UserService) Delete(ctx context.Context, idOrEmail string) error {
	user, err := s.GetByIDOrEmail(ctx, idOrEmail)
	if err != nil {
		return err
	}
	deleted, err := s.users.Crud().DeleteOne(ctx, repository.Filter{"id": user.ID})
	if err != nil {
		return err
	}
	if !deleted {
		return ErrUserNotFound
	}
	return nil
}

// AttachPhoto replaces the user's photo container.
func (s *UserService) AttachPhoto(ctx context.Context, idOrEmail string, photo *models.ImageContainer) (*models.User, error) {
	user, err := s.GetByIDOrEmail(ctx, idOrEmail)
	if err != nil {
		return nil, err
	}
	if err := s.users.UpdatePhoto(ctx, user.ID, photo); err != nil {
		return nil, err
	}
	user.Photo = photo
	return user, nil
}

// DeletePhoto removes the uploaded photo. "No photo uploaded" and "wrong photo
// id" are distinct conditions with distinct messages.
func (s *UserService) DeletePhoto(ctx context.Context, idOrEmail, photoID string) (*models.User, error) {
	user, err := s.GetByIDOrEmail(ctx, idOrEmail)
	if err != nil {
		return nil, err
	}
	if user.Photo == nil || user.Photo.ID == "" {
		return nil, NewAppError(http.StatusBadRequest, "This user has no uploaded photo.")
	}
	if user.Photo.ID != photoID {
		return nil, NewAppError(http.StatusBadRequest, "The photo ID does not match the user's photo.")
	}
	if err := s.users.UpdatePhoto(ctx, user.ID, nil); err != nil {
		return nil, err
	}
	user.Photo = nil
	s.log.Info("user photo deleted", zap.String("user", user.ID.String()), zap.String("photo", photoID))
	return user, nil
}

package service_test

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/kstarostin/campfire-store-api/internal/models"
	"github.com/kstarostin/campfire-store-api/internal/service"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newUserService(users *MockUserRepo, hasher *MockPasswordHasher) *service.UserService {
	return service.NewUserService(users, hasher, testLocale(), zap.NewNop())
}

func strPtr(s string) *string { return &s }

func subjectUser(id uuid.UUID) *models.User {
	return &models.User{
		ID:    id,
		Name:  "Sam",
		Email: "sam@example.com",
		Roles: models.Roles{"user"},
	}
}

func TestUserUpdate_RejectedUpdateWritesNothing(t *testing.T) {
	subject := subjectUser(uuid.New())
	passwordPersisted := false
	users := &MockUserRepo{
		GetByIDOrEmailFunc: func(ctx context.Context, idOrEmail string) (*models.User, error) {
			return subject, nil
		},
		UpdatePasswordFunc: func(ctx context.Context, id uuid.UUID, hash string, changedAt time.Time) error {
			passwordPersisted = true
			return nil
		},
	}
	svc := newUserService(users, &MockPasswordHasher{})

	admin := &models.User{ID: uuid.New(), Roles: models.Roles{"admin"}}
	ctx := service.WithUser(context.Background(), admin)

	_, err := svc.Update(ctx, subject.ID.String(), service.UserUpdate{
		Password: strPtr("new-password-123"),
		Roles:    models.Roles{"superadmin"},
	})
	require.Error(t, err)
	appErr, ok := service.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, appErr.Code)
	assert.False(t, passwordPersisted, "rejected update must not have persisted the password")
}

func TestUserUpdate_ShortPasswordRejectedBeforeHashing(t *testing.T) {
	subject := subjectUser(uuid.New())
	users := &MockUserRepo{
		GetByIDOrEmailFunc: func(ctx context.Context, idOrEmail string) (*models.User, error) {
			return subject, nil
		},
	}
	hashed := false
	hasher := &MockPasswordHasher{
		HashFunc: func(password string) (string, error) {
			hashed = true
			return "hashed_" + password, nil
		},
	}
	svc := newUserService(users, hasher)

	_, err := svc.Update(context.Background(), subject.ID.String(), service.UserUpdate{
		Password: strPtr("short"),
	})
	require.Error(t, err)
	appErr, ok := service.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, appErr.Code)
	assert.False(t, hashed)
}

func TestUserUpdate_NonAdminCanNotChangeRoles(t *testing.T) {
	subject := subjectUser(uuid.New())
	users := &MockUserRepo{
		GetByIDOrEmailFunc: func(ctx context.Context, idOrEmail string) (*models.User, error) {
			return subject, nil
		},
	}
	svc := newUserService(users, &MockPasswordHasher{})

	// владелец записи, но не админ
	ctx := service.WithUser(context.Background(), subject)

	_, err := svc.Update(ctx, subject.ID.String(), service.UserUpdate{
		Roles: models.Roles{"user", "admin"},
	})
	require.Error(t, err)
	appErr, ok := service.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusForbidden, appErr.Code)
}

func TestUserUpdate_NoActingUserCanNotChangeRoles(t *testing.T) {
	subject := subjectUser(uuid.New())
	users := &MockUserRepo{
		GetByIDOrEmailFunc: func(ctx context.Context, idOrEmail string) (*models.User, error) {
			return subject, nil
		},
	}
	svc := newUserService(users, &MockPasswordHasher{})

	_, err := svc.Update(context.Background(), subject.ID.String(), service.UserUpdate{
		Roles: models.Roles{"admin"},
	})
	require.Error(t, err)
	appErr, ok := service.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusForbidden, appErr.Code)
}

func TestUserDeletePhoto_Messages(t *testing.T) {
	withPhoto := subjectUser(uuid.New())
	withPhoto.Photo = &models.ImageContainer{ID: "user_abc"}
	users := &MockUserRepo{
		GetByIDOrEmailFunc: func(ctx context.Context, idOrEmail string) (*models.User, error) {
			return withPhoto, nil
		},
	}
	svc := newUserService(users, &MockPasswordHasher{})

	_, err := svc.DeletePhoto(context.Background(), withPhoto.ID.String(), "user_other")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "does not match")

	updated, err := svc.DeletePhoto(context.Background(), withPhoto.ID.String(), "user_abc")
	require.NoError(t, err)
	assert.Nil(t, updated.Photo)

	noPhoto := subjectUser(uuid.New())
	users.GetByIDOrEmailFunc = func(ctx context.Context, idOrEmail string) (*models.User, error) {
		return noPhoto, nil
	}
	_, err = svc.DeletePhoto(context.Background(), noPhoto.ID.String(), "user_abc")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no uploaded photo")
}

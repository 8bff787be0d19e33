package service_test

import (
	"context"
	"time"

	"github.com/kstarostin/campfire-store-api/internal/models"
	"github.com/kstarostin/campfire-store-api/internal/repository"
	"github.com/kstarostin/campfire-store-api/internal/service"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Моки для всех зависимостей сервисов

// MockUserRepo
type MockUserRepo struct {
	CreateFunc         func(ctx context.Context, u *models.User) error
	GetByIDFunc        func(ctx context.Context, id uuid.UUID) (*models.User, error)
	GetByEmailFunc     func(ctx context.Context, email string) (*models.User, error)
	GetByIDOrEmailFunc func(ctx context.Context, idOrEmail string) (*models.User, error)
	ExistsByEmailFunc  func(ctx context.Context, email string) (bool, error)
	UpdatePasswordFunc func(ctx context.Context, id uuid.UUID, hash string, changedAt time.Time) error
	UpdatePhotoFunc    func(ctx context.Context, id uuid.UUID, photo *models.ImageContainer) error
}

func (m *MockUserRepo) Create(ctx context.Context, u *models.User) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, u)
	}
	return nil
}

func (m *MockUserRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *MockUserRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	if m.GetByEmailFunc != nil {
		return m.GetByEmailFunc(ctx, email)
	}
	return nil, nil
}

func (m *MockUserRepo) GetByIDOrEmail(ctx context.Context, idOrEmail string) (*models.User, error) {
	if m.GetByIDOrEmailFunc != nil {
		return m.GetByIDOrEmailFunc(ctx, idOrEmail)
	}
	return nil, nil
}

func (m *MockUserRepo) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	if m.ExistsByEmailFunc != nil {
		return m.ExistsByEmailFunc(ctx, email)
	}
	return false, nil
}

func (m *MockUserRepo) UpdatePassword(ctx context.Context, id uuid.UUID, hash string, changedAt time.Time) error {
	if m.UpdatePasswordFunc != nil {
		return m.UpdatePasswordFunc(ctx, id, hash, changedAt)
	}
	return nil
}

func (m *MockUserRepo) UpdatePhoto(ctx context.Context, id uuid.UUID, photo *models.ImageContainer) error {
	if m.UpdatePhotoFunc != nil {
		return m.UpdatePhotoFunc(ctx, id, photo)
	}
	return nil
}

func (m *MockUserRepo) Crud() *repository.Crud[models.User] { return nil }

// MockPasswordHasher
type MockPasswordHasher struct {
	HashFunc    func(password string) (string, error)
	CompareFunc func(hash, password string) bool
}

func (m *MockPasswordHasher) Hash(password string) (string, error) {
	if m.HashFunc != nil {
		return m.HashFunc(password)
	}
	return "hashed_" + password, nil
}

func (m *MockPasswordHasher) Compare(hash, password string) bool {
	if m.CompareFunc != nil {
		return m.CompareFunc(hash, password)
	}
	return hash == "hashed_"+password
}

// MockTokenProvider
type MockTokenProvider struct {
	SignFunc  func(ctx context.Context, sub uuid.UUID, ttl time.Duration) (string, time.Time, error)
	ParseFunc func(ctx context.Context, token string) (*service.Claims, error)
}

func (m *MockTokenProvider) Sign(ctx context.Context, sub uuid.UUID, ttl time.Duration) (string, time.Time, error) {
	if m.SignFunc != nil {
		return m.SignFunc(ctx, sub, ttl)
	}
	return "access_token", time.Now().Add(ttl), nil
}

func (m *MockTokenProvider) Parse(ctx context.Context, token string) (*service.Claims, error) {
	if m.ParseFunc != nil {
		return m.ParseFunc(ctx, token)
	}
	return &service.Claims{
		UserID:   uuid.New(),
		JTI:      "jti",
		IssuedAt: time.Now(),
		Exp:      time.Now().Add(time.Hour),
	}, nil
}

// MockTokenDenylist
type MockTokenDenylist struct {
	RevokeFunc    func(ctx context.Context, jti string, ttl time.Duration) error
	IsRevokedFunc func(ctx context.Context, jti string) (bool, error)
}

func (m *MockTokenDenylist) Revoke(ctx context.Context, jti string, ttl time.Duration) error {
	if m.RevokeFunc != nil {
		return m.RevokeFunc(ctx, jti, ttl)
	}
	return nil
}

func (m *MockTokenDenylist) IsRevoked(ctx context.Context, jti string) (bool, error) {
	if m.IsRevokedFunc != nil {
		return m.IsRevokedFunc(ctx, jti)
	}
	return false, nil
}

// MockOrderRepo
type MockOrderRepo struct {
	CreateFunc            func(ctx context.Context, o *models.GenericOrder) error
	GetByIDFunc           func(ctx context.Context, id uuid.UUID, kind models.OrderKind) (*models.GenericOrder, error)
	GetByIDForUserFunc    func(ctx context.Context, id, userID uuid.UUID, kind models.OrderKind) (*models.GenericOrder, error)
	CountCartsForUserFunc func(ctx context.Context, userID uuid.UUID) (int64, error)
	UpdateCurrencyFunc    func(ctx context.Context, id uuid.UUID, currency string) error
	UpdateTotalFunc       func(ctx context.Context, id uuid.UUID, total decimal.Decimal) error
	ConvertToOrderFunc    func(ctx context.Context, cartID uuid.UUID, status models.OrderStatus) error

	// TxEntries is handed to WithTx callbacks alongside the repo itself.
	TxEntries repository.EntryRepo
}

func (m *MockOrderRepo) Create(ctx context.Context, o *models.GenericOrder) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, o)
	}
	return nil
}

func (m *MockOrderRepo) GetByID(ctx context.Context, id uuid.UUID, kind models.OrderKind) (*models.GenericOrder, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id, kind)
	}
	return nil, nil
}

func (m *MockOrderRepo) GetByIDForUser(ctx context.Context, id, userID uuid.UUID, kind models.OrderKind) (*models.GenericOrder, error) {
	if m.GetByIDForUserFunc != nil {
		return m.GetByIDForUserFunc(ctx, id, userID, kind)
	}
	return nil, nil
}

func (m *MockOrderRepo) CountCartsForUser(ctx context.Context, userID uuid.UUID) (int64, error) {
	if m.CountCartsForUserFunc != nil {
		return m.CountCartsForUserFunc(ctx, userID)
	}
	return 0, nil
}

func (m *MockOrderRepo) UpdateCurrency(ctx context.Context, id uuid.UUID, currency string) error {
	if m.UpdateCurrencyFunc != nil {
		return m.UpdateCurrencyFunc(ctx, id, currency)
	}
	return nil
}

func (m *MockOrderRepo) UpdateTotal(ctx context.Context, id uuid.UUID, total decimal.Decimal) error {
	if m.UpdateTotalFunc != nil {
		return m.UpdateTotalFunc(ctx, id, total)
	}
	return nil
}

func (m *MockOrderRepo) ConvertToOrder(ctx context.Context, cartID uuid.UUID, status models.OrderStatus) error {
	if m.ConvertToOrderFunc != nil {
		return m.ConvertToOrderFunc(ctx, cartID, status)
	}
	return nil
}

func (m *MockOrderRepo) WithTx(ctx context.Context, fn func(txOrders repository.GenericOrderRepo, txEntries repository.EntryRepo) error) error {
	return fn(m, m.TxEntries)
}

func (m *MockOrderRepo) Crud() *repository.Crud[models.GenericOrder] { return nil }

// MockEntryRepo
type MockEntryRepo struct {
	CreateFunc              func(ctx context.Context, e *models.GenericOrderEntry) error
	GetByIDForParentFunc    func(ctx context.Context, id, parentID uuid.UUID) (*models.GenericOrderEntry, error)
	ListByParentFunc        func(ctx context.Context, parentID uuid.UUID) ([]models.GenericOrderEntry, error)
	UpdateQuantityFunc      func(ctx context.Context, id uuid.UUID, quantity int) error
	UpdatePriceFunc         func(ctx context.Context, id uuid.UUID, price decimal.Decimal) error
	DeleteByIDForParentFunc func(ctx context.Context, id, parentID uuid.UUID) (bool, error)
	SumLineTotalsFunc       func(ctx context.Context, parentID uuid.UUID) (decimal.Decimal, error)
}

func (m *MockEntryRepo) Create(ctx context.Context, e *models.GenericOrderEntry) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, e)
	}
	return nil
}

func (m *MockEntryRepo) GetByIDForParent(ctx context.Context, id, parentID uuid.UUID) (*models.GenericOrderEntry, error) {
	if m.GetByIDForParentFunc != nil {
		return m.GetByIDForParentFunc(ctx, id, parentID)
	}
	return nil, nil
}

func (m *MockEntryRepo) ListByParent(ctx context.Context, parentID uuid.UUID) ([]models.GenericOrderEntry, error) {
	if m.ListByParentFunc != nil {
		return m.ListByParentFunc(ctx, parentID)
	}
	return nil, nil
}

func (m *MockEntryRepo) UpdateQuantity(ctx context.Context, id uuid.UUID, quantity int) error {
	if m.UpdateQuantityFunc != nil {
		return m.UpdateQuantityFunc(ctx, id, quantity)
	}
	return nil
}

func (m *MockEntryRepo) UpdatePrice(ctx context.Context, id uuid.UUID, price decimal.Decimal) error {
	if m.UpdatePriceFunc != nil {
		return m.UpdatePriceFunc(ctx, id, price)
	}
	return nil
}

func (m *MockEntryRepo) DeleteByIDForParent(ctx context.Context, id, parentID uuid.UUID) (bool, error) {
	if m.DeleteByIDForParentFunc != nil {
		return m.DeleteByIDForParentFunc(ctx, id, parentID)
	}
	return false, nil
}

func (m *MockEntryRepo) SumLineTotals(ctx context.Context, parentID uuid.UUID) (decimal.Decimal, error) {
	if m.SumLineTotalsFunc != nil {
		return m.SumLineTotalsFunc(ctx, parentID)
	}
	return decimal.Zero, nil
}

func (m *MockEntryRepo) Crud() *repository.Crud[models.GenericOrderEntry] { return nil }

// MockProductRepo
type MockProductRepo struct {
	CreateFunc          func(ctx context.Context, p *models.Product) error
	GetByIDFunc         func(ctx context.Context, id uuid.UUID) (*models.Product, error)
	ListByIDsFunc       func(ctx context.Context, ids []uuid.UUID) ([]models.Product, error)
	UpdateImagesFunc    func(ctx context.Context, id uuid.UUID, images models.ImageContainers) error
	CountByCategoryFunc func(ctx context.Context, categoryID uuid.UUID) (int64, error)
}

func (m *MockProductRepo) Create(ctx context.Context, p *models.Product) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, p)
	}
	return nil
}

func (m *MockProductRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *MockProductRepo) ListByIDs(ctx context.Context, ids []uuid.UUID) ([]models.Product, error) {
	if m.ListByIDsFunc != nil {
		return m.ListByIDsFunc(ctx, ids)
	}
	return nil, nil
}

func (m *MockProductRepo) UpdateImages(ctx context.Context, id uuid.UUID, images models.ImageContainers) error {
	if m.UpdateImagesFunc != nil {
		return m.UpdateImagesFunc(ctx, id, images)
	}
	return nil
}

func (m *MockProductRepo) CountByCategory(ctx context.Context, categoryID uuid.UUID) (int64, error) {
	if m.CountByCategoryFunc != nil {
		return m.CountByCategoryFunc(ctx, categoryID)
	}
	return 0, nil
}

func (m *MockProductRepo) Crud() *repository.Crud[models.Product] { return nil }

// MockCategoryRepo
type MockCategoryRepo struct {
	CountChildrenFunc func(ctx context.Context, id uuid.UUID) (int64, error)
}

func (m *MockCategoryRepo) CountChildren(ctx context.Context, id uuid.UUID) (int64, error) {
	if m.CountChildrenFunc != nil {
		return m.CountChildrenFunc(ctx, id)
	}
	return 0, nil
}

func (m *MockCategoryRepo) Crud() *repository.Crud[models.Category] { return nil }

// MockEventBus
type MockEventBus struct {
	PublishOrderPlacedFunc func(ctx context.Context, ev service.OrderPlacedEvent) error
}

func (m *MockEventBus) PublishOrderPlaced(ctx context.Context, ev service.OrderPlacedEvent) error {
	if m.PublishOrderPlacedFunc != nil {
		return m.PublishOrderPlacedFunc(ctx, ev)
	}
	return nil
}

package repository_test

import (
	"context"
	"testing"

	"github.com/kstarostin/campfire-store-api/internal/migrate"
	"github.com/kstarostin/campfire-store-api/internal/models"
	"github.com/kstarostin/campfire-store-api/internal/repository"
	"github.com/kstarostin/campfire-store-api/pkg/testutil"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func setupDB(t *testing.T) *gorm.DB {
	t.Helper()
	db := testutil.SetupTestPostgres(t)
	if err := migrate.MigrateStoreDB(context.Background(), db, zap.NewNop(), migrate.DefaultMigrateOptions()); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func createUser(t *testing.T, repo repository.UserRepo, email string) *models.User {
	t.Helper()
	u := &models.User{Name: "Test", Email: email, Password: "hash", Roles: models.Roles{"user"}}
	if err := repo.Create(context.Background(), u); err != nil {
		t.Fatalf("create user: %v", err)
	}
	return u
}

func TestUserRepo(t *testing.T) {
	db := setupDB(t)
	repo := repository.NewUserRepo(db)
	ctx := context.Background()

	user := createUser(t, repo, "test@example.com")

	// уникальность email
	dup := &models.User{Name: "Dup", Email: "test@example.com", Password: "hash", Roles: models.Roles{"user"}}
	if err := repo.Create(ctx, dup); err == nil {
		t.Fatal("expected unique constraint error, got nil")
	}

	got, err := repo.GetByID(ctx, user.ID)
	if err != nil || got == nil {
		t.Fatalf("GetByID: %v %v", got, err)
	}

	got, err = repo.GetByIDOrEmail(ctx, "test@example.com")
	if err != nil || got == nil {
		t.Fatalf("GetByIDOrEmail by email: %v %v", got, err)
	}
	got, err = repo.GetByIDOrEmail(ctx, user.ID.String())
	if err != nil || got == nil {
		t.Fatalf("GetByIDOrEmail by id: %v %v", got, err)
	}

	missing, err := repo.GetByIDOrEmail(ctx, "nobody@example.com")
	if err != nil {
		t.Fatalf("GetByIDOrEmail missing: %v", err)
	}
	if missing != nil {
		t.Fatal("expected nil for unknown email")
	}
}

func TestGenericOrderRepo_OneCartPerUser(t *testing.T) {
	db := setupDB(t)
	users := repository.NewUserRepo(db)
	orders := repository.NewGenericOrderRepo(db)
	ctx := context.Background()

	user := createUser(t, users, "cart@example.com")

	first := &models.GenericOrder{Kind: models.KindCart, UserID: user.ID, Currency: "USD"}
	if err := orders.Create(ctx, first); err != nil {
		t.Fatalf("create first cart: %v", err)
	}

	second := &models.GenericOrder{Kind: models.KindCart, UserID: user.ID, Currency: "USD"}
	if err := orders.Create(ctx, second); err == nil {
		t.Fatal("expected partial unique index to reject a second cart")
	}

	count, err := orders.CountCartsForUser(ctx, user.ID)
	if err != nil || count != 1 {
		t.Fatalf("CountCartsForUser: count=%d err=%v", count, err)
	}
}

func TestGenericOrderRepo_ConvertToOrderPreservesID(t *testing.T) {
	db := setupDB(t)
	users := repository.NewUserRepo(db)
	orders := repository.NewGenericOrderRepo(db)
	ctx := context.Background()

	user := createUser(t, users, "convert@example.com")

	cart := &models.GenericOrder{Kind: models.KindCart, UserID: user.ID, Currency: "USD"}
	if err := orders.Create(ctx, cart); err != nil {
		t.Fatalf("create cart: %v", err)
	}

	if err := orders.ConvertToOrder(ctx, cart.ID, "open"); err != nil {
		t.Fatalf("ConvertToOrder: %v", err)
	}

	asCart, err := orders.GetByID(ctx, cart.ID, models.KindCart)
	if err != nil {
		t.Fatalf("GetByID cart: %v", err)
	}
	if asCart != nil {
		t.Fatal("cart should be gone after conversion")
	}

	asOrder, err := orders.GetByID(ctx, cart.ID, models.KindOrder)
	if err != nil || asOrder == nil {
		t.Fatalf("GetByID order: %v %v", asOrder, err)
	}
	if asOrder.Status != "open" {
		t.Fatalf("expected default status open, got %s", asOrder.Status)
	}

	// after conversion a new cart is allowed again
	next := &models.GenericOrder{Kind: models.KindCart, UserID: user.ID, Currency: "USD"}
	if err := orders.Create(ctx, next); err != nil {
		t.Fatalf("create next cart after conversion: %v", err)
	}
}

func TestEntryRepo_SumLineTotals(t *testing.T) {
	db := setupDB(t)
	users := repository.NewUserRepo(db)
	orders := repository.NewGenericOrderRepo(db)
	products := repository.NewProductRepo(db)
	entries := repository.NewEntryRepo(db)
	ctx := context.Background()

	user := createUser(t, users, "entries@example.com")
	cart := &models.GenericOrder{Kind: models.KindCart, UserID: user.ID, Currency: "USD"}
	if err := orders.Create(ctx, cart); err != nil {
		t.Fatalf("create cart: %v", err)
	}

	prices := models.Prices{{Currency: "USD", Value: decimal.NewFromInt(10)}}
	p1 := &models.Product{Name: "Tent A", Slug: "tent-a", Prices: prices}
	p2 := &models.Product{Name: "Tent B", Slug: "tent-b", Prices: prices}
	for _, p := range []*models.Product{p1, p2} {
		if err := products.Create(ctx, p); err != nil {
			t.Fatalf("create product: %v", err)
		}
	}

	e1 := &models.GenericOrderEntry{ParentID: cart.ID, ProductID: p1.ID, Quantity: 2, Price: decimal.NewFromFloat(19.99)}
	e2 := &models.GenericOrderEntry{ParentID: cart.ID, ProductID: p2.ID, Quantity: 1, Price: decimal.NewFromFloat(5.50)}
	for _, e := range []*models.GenericOrderEntry{e1, e2} {
		if err := entries.Create(ctx, e); err != nil {
			t.Fatalf("create entry: %v", err)
		}
	}

	// same product twice in one cart is rejected
	dup := &models.GenericOrderEntry{ParentID: cart.ID, ProductID: p1.ID, Quantity: 1, Price: decimal.NewFromInt(10)}
	if err := entries.Create(ctx, dup); err == nil {
		t.Fatal("expected unique constraint on (parent, product)")
	}

	// the refetch after an update keeps the caller's preloads
	updated, err := orders.Crud().UpdateOne(ctx, repository.Filter{"id": cart.ID}, &models.GenericOrder{DeliveryNote: "ring twice"}, "Entries")
	if err != nil || updated == nil {
		t.Fatalf("UpdateOne: %v %v", updated, err)
	}
	if len(updated.Entries) != 2 {
		t.Fatalf("expected 2 preloaded entries after update, got %d", len(updated.Entries))
	}

	total, err := entries.SumLineTotals(ctx, cart.ID)
	if err != nil {
		t.Fatalf("SumLineTotals: %v", err)
	}
	want := decimal.NewFromFloat(45.48) // 2×19.99 + 5.50
	if !total.Equal(want) {
		t.Fatalf("expected %s, got %s", want, total)
	}

	deleted, err := entries.DeleteByIDForParent(ctx, e2.ID, cart.ID)
	if err != nil || !deleted {
		t.Fatalf("DeleteByIDForParent: deleted=%v err=%v", deleted, err)
	}
	total, err = entries.SumLineTotals(ctx, cart.ID)
	if err != nil || !total.Equal(decimal.NewFromFloat(39.98)) {
		t.Fatalf("SumLineTotals after delete: %s err=%v", total, err)
	}
}

func TestCrud_GetAllWithFilterAndPagination(t *testing.T) {
	db := setupDB(t)
	products := repository.NewProductRepo(db)
	ctx := context.Background()

	prices := models.Prices{{Currency: "USD", Value: decimal.NewFromInt(10)}}
	names := []string{"Alpha", "Beta", "Gamma", "Delta"}
	for _, name := range names {
		p := &models.Product{Name: name, Slug: "slug-" + name, Manufacturer: "Campfire", Prices: prices}
		if err := products.Create(ctx, p); err != nil {
			t.Fatalf("create product: %v", err)
		}
	}

	crud := products.Crud()

	list, err := crud.GetAll(ctx, repository.Filter{"manufacturer": "Campfire"}, repository.ListOptions{
		Page: 1, Limit: 2, Sort: []string{"name"},
	})
	if err != nil {
		t.Fatalf("GetAll: %v", err)
	}
	if len(list) != 2 {
		t.Fatalf("expected 2 products per page, got %d", len(list))
	}
	if list[0].Name != "Alpha" || list[1].Name != "Beta" {
		t.Fatalf("unexpected sort order: %s, %s", list[0].Name, list[1].Name)
	}

	count, err := crud.Count(ctx, repository.Filter{"manufacturer": "Campfire"})
	if err != nil || count != 4 {
		t.Fatalf("Count: count=%d err=%v", count, err)
	}

	one, err := crud.GetOne(ctx, repository.Filter{"name": "Gamma"})
	if err != nil || one == nil {
		t.Fatalf("GetOne: %v %v", one, err)
	}

	missing, err := crud.GetOne(ctx, repository.Filter{"name": "Omega"})
	if err != nil {
		t.Fatalf("GetOne missing: %v", err)
	}
	if missing != nil {
		t.Fatal("expected nil for unknown product")
	}

	updated, err := crud.UpdateOne(ctx, repository.Filter{"id": one.ID}, &models.Product{Manufacturer: "Bonfire"})
	if err != nil || updated == nil {
		t.Fatalf("UpdateOne: %v %v", updated, err)
	}
	if updated.Manufacturer != "Bonfire" {
		t.Fatalf("expected updated manufacturer, got %s", updated.Manufacturer)
	}

	deleted, err := crud.DeleteOne(ctx, repository.Filter{"id": one.ID})
	if err != nil || !deleted {
		t.Fatalf("DeleteOne: deleted=%v err=%v", deleted, err)
	}
	if deleted, _ = crud.DeleteOne(ctx, repository.Filter{"id": uuid.New()}); deleted {
		t.Fatal("expected false for unknown id")
	}
}

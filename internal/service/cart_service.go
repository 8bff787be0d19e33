package service

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/kstarostin/campfire-store-api/config"
	"github.com/kstarostin/campfire-store-api/internal/models"
	"github.com/kstarostin/campfire-store-api/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// CartService owns carts, cart/order entries, pricing and order placement.
type CartService struct {
	orders   repository.GenericOrderRepo
	entries  repository.EntryRepo
	products repository.ProductRepo

	events EventBus // nil отключает публикацию
	locale config.Locale
	now    func() time.Time
	log    *zap.Logger
}

func NewCartService(
	orders repository.GenericOrderRepo,
	entries repository.EntryRepo,
	products repository.ProductRepo,
	events EventBus,
	locale config.Locale,
	log *zap.Logger,
) *CartService {
	return &CartService{
		orders:   orders,
		entries:  entries,
		products: products,
		events:   events,
		locale:   locale,
		now:      time.Now,
		log:      log,
	}
}

// CreateCart creates the user's single session cart. The pre-check gives the
// friendly message; the partial unique index on (user_id) WHERE kind='Cart'
// closes the race two concurrent requests would otherwise win together.
func (s *CartService) CreateCart(ctx context.Context, userID uuid.UUID, currency string) (*models.GenericOrder, error) {
	if currency == "" {
		currency = CurrencyFromContext(ctx, s.locale.DefaultCurrency)
	}
	if !config.Contains(s.locale.AllowedCurrencies, currency) {
		return nil, NewAppError(http.StatusBadRequest, "Allowed currencies are %v.", s.locale.AllowedCurrencies)
	}

	existing, err := s.orders.CountCartsForUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if existing > 0 {
		return nil, NewAppError(http.StatusBadRequest,
			"The user with ID %s already have a cart. One cart is allowed per user.", userID)
	}

	cart := &models.GenericOrder{
		Kind:     models.KindCart,
		UserID:   userID,
		Currency: currency,
		Total:    decimal.Zero,
	}
	if err := s.orders.Create(ctx, cart); err != nil {
		if isUniqueViolation(err) {
			return nil, NewAppError(http.StatusBadRequest,
				"The user with ID %s already have a cart. One cart is allowed per user.", userID)
		}
		return nil, err
	}
	return cart, nil
}

type CartUpdate struct {
	Currency        *string
	DeliveryAddress *models.Address
	BillingAddress  *models.Address
	DeliveryNote    *string
}

// UpdateCart applies whitelisted cart changes. A currency switch validates
// and rewrites every entry price and the total inside one transaction —
// either the whole cart moves to the new currency or nothing does.
func (s *CartService) UpdateCart(ctx context.Context, userID, cartID uuid.UUID, upd CartUpdate) (*models.GenericOrder, error) {
	cart, err := s.orders.GetByIDForUser(ctx, cartID, userID, models.KindCart)
	if err != nil {
		return nil, err
	}
	if cart == nil {
		return nil, ErrNotFound
	}

	if upd.Currency != nil && *upd.Currency != cart.Currency {
		if err := s.switchCurrency(ctx, cart, *upd.Currency); err != nil {
			return nil, err
		}
	}

	if upd.DeliveryAddress != nil || upd.BillingAddress != nil || upd.DeliveryNote != nil {
		changes := &models.GenericOrder{
			DeliveryAddress: upd.DeliveryAddress,
			BillingAddress:  upd.BillingAddress,
		}
		if upd.DeliveryNote != nil {
			changes.DeliveryNote = *upd.DeliveryNote
		}
		updated, err := s.orders.Crud().UpdateOne(ctx, repository.Filter{"id": cartID}, changes)
		if err != nil {
			return nil, err
		}
		if updated == nil {
			return nil, ErrNotFound
		}
	}
	return s.orders.GetByID(ctx, cartID, models.KindCart)
}

// switchCurrency rejects the whole switch unless every entry's product has a
// strictly positive price in the target currency; accepted switches rewrite
// each entry's unit price and recompute the total, all in one transaction.
func (s *CartService) switchCurrency(ctx context.Context, cart *models.GenericOrder, newCurrency string) error {
	if !config.Contains(s.locale.AllowedCurrencies, newCurrency) {
		return NewAppError(http.StatusBadRequest, "Allowed currencies are %v.", s.locale.AllowedCurrencies)
	}

	return s.orders.WithTx(ctx, func(txOrders repository.GenericOrderRepo, txEntries repository.EntryRepo) error {
		entries, err := txEntries.ListByParent(ctx, cart.ID)
		if err != nil {
			return err
		}

		productIDs := make([]uuid.UUID, 0, len(entries))
		for _, e := range entries {
			productIDs = append(productIDs, e.ProductID)
		}
		products, err := s.products.ListByIDs(ctx, productIDs)
		if err != nil {
			return err
		}
		priceByProduct := make(map[uuid.UUID]decimal.Decimal, len(products))
		var invalid []string
		for _, p := range products {
			if price, ok := p.Prices.ForCurrency(newCurrency); ok && price.Value.IsPositive() {
				priceByProduct[p.ID] = price.Value
			} else {
				invalid = append(invalid, p.ID.String())
			}
		}
		if len(invalid) > 0 {
			return NewAppError(http.StatusBadRequest,
				"The following entry products have no valid prices for the new currency %s: [%s].",
				newCurrency, strings.Join(invalid, ", "))
		}

		total := decimal.Zero
		for _, e := range entries {
			price := priceByProduct[e.ProductID]
			if err := txEntries.UpdatePrice(ctx, e.ID, price); err != nil {
				return err
			}
			total = total.Add(price.Mul(decimal.NewFromInt(int64(e.Quantity))))
		}
		if err := txOrders.UpdateCurrency(ctx, cart.ID, newCurrency); err != nil {
			return err
		}
		return txOrders.UpdateTotal(ctx, cart.ID, total)
	})
}

// unitPrice looks up the product's price for the cart currency. A missing or
// non-positive price is always an operational 400, never a 404/500 split.
func (s *CartService) unitPrice(product *models.Product, currency string) (decimal.Decimal, error) {
	price, ok := product.Prices.ForCurrency(currency)
	if !ok || !price.Value.IsPositive() {
		return decimal.Zero, NewAppError(http.StatusBadRequest,
			"The product %s doesn't have a valid price for the session cart currency %s.", product.ID, currency)
	}
	return price.Value, nil
}

// AddEntry snapshots the product's unit price in the cart currency and
// recomputes the cart total.
func (s *CartService) AddEntry(ctx context.Context, userID, cartID, productID uuid.UUID, quantity int) (*models.GenericOrderEntry, error) {
	if quantity < 1 {
		return nil, NewAppError(http.StatusBadRequest, "Entry quantity must be at least 1.")
	}
	cart, err := s.orders.GetByIDForUser(ctx, cartID, userID, models.KindCart)
	if err != nil {
		return nil, err
	}
	if cart == nil {
		return nil, ErrNotFound
	}
	product, err := s.products.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, NewAppError(http.StatusNotFound, "Can not find a product by ID %s.", productID)
	}
	price, err := s.unitPrice(product, cart.Currency)
	if err != nil {
		return nil, err
	}

	entry := &models.GenericOrderEntry{
		ParentID:  cartID,
		ProductID: productID,
		Quantity:  quantity,
		Price:     price,
	}
	if err := s.entries.Create(ctx, entry); err != nil {
		if isUniqueViolation(err) {
			return nil, NewAppError(http.StatusBadRequest, "The product is already in the cart. Update the entry quantity instead.")
		}
		return nil, err
	}
	if err := s.recalculate(ctx, cartID); err != nil {
		return nil, err
	}
	return entry, nil
}

// UpdateEntry changes the quantity. The price snapshot stays; only totals move.
func (s *CartService) UpdateEntry(ctx context.Context, cartID, entryID uuid.UUID, quantity int) (*models.GenericOrderEntry, error) {
	if quantity < 1 {
		return nil, NewAppError(http.StatusBadRequest, "Entry quantity must be at least 1.")
	}
	entry, err := s.entries.GetByIDForParent(ctx, entryID, cartID)
	if err != nil {
		return nil, err
	}
	if entry == nil {
		return nil, ErrNotFound
	}
	if err := s.entries.UpdateQuantity(ctx, entryID, quantity); err != nil {
		return nil, err
	}
	if err := s.recalculate(ctx, cartID); err != nil {
		return nil, err
	}
	entry.Quantity = quantity
	return entry, nil
}

func (s *CartService) DeleteEntry(ctx context.Context, cartID, entryID uuid.UUID) error {
	deleted, err := s.entries.DeleteByIDForParent(ctx, entryID, cartID)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrNotFound
	}
	return s.recalculate(ctx, cartID)
}

// recalculate stores Σ price × quantity as the cart total. The stored value
// is a cache — it is never trusted from clients and always recomputed here.
func (s *CartService) recalculate(ctx context.Context, cartID uuid.UUID) error {
	total, err := s.entries.SumLineTotals(ctx, cartID)
	if err != nil {
		return err
	}
	return s.orders.UpdateTotal(ctx, cartID, total)
}

// PlaceOrder transforms the user's cart into an order in place: the
// discriminator flips, the id is preserved, the default status is set.
func (s *CartService) PlaceOrder(ctx context.Context, userID, cartID uuid.UUID) (*models.GenericOrder, error) {
	var placed *models.GenericOrder
	err := s.orders.WithTx(ctx, func(txOrders repository.GenericOrderRepo, txEntries repository.EntryRepo) error {
		cart, err := txOrders.GetByIDForUser(ctx, cartID, userID, models.KindCart)
		if err != nil {
			return err
		}
		if cart == nil {
			return NewAppError(http.StatusNotFound, "The cart with requested ID does not belong to this user")
		}
		if err := txOrders.ConvertToOrder(ctx, cartID, models.OrderStatus(s.locale.DefaultOrderStatus)); err != nil {
			return err
		}
		placed, err = txOrders.GetByID(ctx, cartID, models.KindOrder)
		return err
	})
	if err != nil {
		return nil, err
	}

	if s.events != nil && placed != nil {
		evEntries := make([]OrderEntryEvent, 0, len(placed.Entries))
		for _, e := range placed.Entries {
			evEntries = append(evEntries, OrderEntryEvent{
				ProductID: e.ProductID,
				Quantity:  e.Quantity,
				Price:     e.Price,
				LineTotal: e.LineTotal(),
			})
		}
		if err := s.events.PublishOrderPlaced(ctx, OrderPlacedEvent{
			OrderID:  placed.ID,
			UserID:   placed.UserID,
			Currency: placed.Currency,
			Total:    placed.Total,
			Entries:  evEntries,
			PlacedAt: s.now(),
		}); err != nil {
			s.log.Warn("failed to publish order placed event", zap.Error(err))
		}
	}
	return placed, nil
}

func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "duplicate key value violates unique constraint")
}

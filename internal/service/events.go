package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type OrderEntryEvent struct {
	ProductID uuid.UUID       `json:"product_id"`
	Quantity  int             `json:"quantity"`
	Price     decimal.Decimal `json:"price"`
	LineTotal decimal.Decimal `json:"line_total"`
}

type OrderPlacedEvent struct {
	OrderID  uuid.UUID         `json:"order_id"`
	UserID   uuid.UUID         `json:"user_id"`
	Currency string            `json:"currency"`
	Total    decimal.Decimal   `json:"total"`
	Entries  []OrderEntryEvent `json:"entries"`
	PlacedAt time.Time         `json:"placed_at"`
}

type EventBus interface {
	PublishOrderPlaced(ctx context.Context, e OrderPlacedEvent) error
}

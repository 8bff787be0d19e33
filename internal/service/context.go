package service

import (
	"context"

	"github.com/kstarostin/campfire-store-api/internal/models"
)

type ctxKey string

const (
	ctxUserKey     ctxKey = "user"
	ctxLanguageKey ctxKey = "language"
	ctxCurrencyKey ctxKey = "currency"
)

func WithUser(ctx context.Context, u *models.User) context.Context {
	return context.WithValue(ctx, ctxUserKey, u)
}

func UserFromContext(ctx context.Context) (*models.User, bool) {
	u, ok := ctx.Value(ctxUserKey).(*models.User)
	return u, ok
}

func WithLanguage(ctx context.Context, lang string) context.Context {
	return context.WithValue(ctx, ctxLanguageKey, lang)
}

// LanguageFromContext returns the resolved session language, or fallback.
func LanguageFromContext(ctx context.Context, fallback string) string {
	if v, ok := ctx.Value(ctxLanguageKey).(string); ok && v != "" {
		return v
	}
	return fallback
}

func WithCurrency(ctx context.Context, currency string) context.Context {
	return context.WithValue(ctx, ctxCurrencyKey, currency)
}

// CurrencyFromContext returns the resolved session currency, or fallback.
func CurrencyFromContext(ctx context.Context, fallback string) string {
	if v, ok := ctx.Value(ctxCurrencyKey).(string); ok && v != "" {
		return v
	}
	return fallback
}

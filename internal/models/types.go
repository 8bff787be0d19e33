package models

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// LocalizedText holds one value per supported language code.
// Stored as jsonb, e.g. {"en": "Tent", "de": "Zelt"}.
type LocalizedText map[string]string

// Value returns the localization for lang, falling back to fallback.
func (t LocalizedText) Value(lang, fallback string) string {
	if v, ok := t[lang]; ok {
		return v
	}
	return t[fallback]
}

// Price is one product price tagged with its currency.
type Price struct {
	Currency string          `json:"currency"`
	Value    decimal.Decimal `json:"value"`
}

type Prices []Price

// ForCurrency returns the price entry for the currency, if present.
func (ps Prices) ForCurrency(currency string) (Price, bool) {
	for _, p := range ps {
		if p.Currency == currency {
			return p, true
		}
	}
	return Price{}, false
}

// HasPositive reports whether a strictly positive price exists for the currency.
func (ps Prices) HasPositive(currency string) bool {
	p, ok := ps.ForCurrency(currency)
	return ok && p.Value.IsPositive()
}

// Address is a delivery or billing address, optionally referencing a Title.
type Address struct {
	TitleID    *uuid.UUID `json:"title,omitempty"`
	Name       string     `json:"name"`
	Phone      string     `json:"phone,omitempty"`
	Street     string     `json:"street"`
	House      string     `json:"house,omitempty"`
	PostalCode string     `json:"postalCode"`
	Town       string     `json:"town"`
	Country    string     `json:"country"`
}

type Addresses []Address

// Image is a single stored image variant.
type Image struct {
	URL      string `json:"url"`
	AltText  string `json:"altText,omitempty"`
	MimeType string `json:"mimeType"`
}

// ImageContainer groups the size variants of one logical image.
type ImageContainer struct {
	ID        string `json:"id"`
	Thumbnail *Image `json:"thumbnail,omitempty"`
	Small     *Image `json:"small,omitempty"`
	Medium    *Image `json:"medium,omitempty"`
	Large     *Image `json:"large,omitempty"`
	Original  *Image `json:"original,omitempty"`
}

type ImageContainers []ImageContainer

type Roles []string

func (r Roles) Has(role string) bool {
	for _, v := range r {
		if v == role {
			return true
		}
	}
	return false
}

package sanitize_test

import (
	"testing"

	"github.com/kstarostin/campfire-store-api/internal/models"
	"github.com/kstarostin/campfire-store-api/internal/sanitize"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSanitizer_Product_KeepsSessionLanguageAndCurrency(t *testing.T) {
	s := sanitize.New("en", "USD")

	p := &models.Product{
		Name: "Trekking Tent",
		DescriptionI18n: models.LocalizedText{
			"en": "A tent",
			"de": "Ein Zelt",
		},
		Prices: models.Prices{
			{Currency: "USD", Value: decimal.NewFromInt(100)},
			{Currency: "EUR", Value: decimal.NewFromInt(90)},
		},
	}

	out := s.Product(p)

	require.NotNil(t, out)
	assert.Equal(t, models.LocalizedText{"en": "A tent"}, out.DescriptionI18n)
	require.Len(t, out.Prices, 1)
	assert.Equal(t, "USD", out.Prices[0].Currency)
}

func TestSanitizer_Product_MissingLanguageYieldsEmptyText(t *testing.T) {
	s := sanitize.New("fr", "USD")

	p := &models.Product{
		DescriptionI18n: models.LocalizedText{"en": "A tent"},
		Prices:          models.Prices{{Currency: "EUR", Value: decimal.NewFromInt(90)}},
	}

	out := s.Product(p)

	assert.Empty(t, out.DescriptionI18n)
	assert.Empty(t, out.Prices)
}

func TestSanitizer_Category_RecursesIntoSubCategories(t *testing.T) {
	s := sanitize.New("de", "EUR")

	c := &models.Category{
		NameI18n: models.LocalizedText{"en": "Tents", "de": "Zelte"},
		SubCategories: []models.Category{
			{NameI18n: models.LocalizedText{"en": "Family tents", "de": "Familienzelte"}},
		},
	}

	out := s.Category(c)

	assert.Equal(t, models.LocalizedText{"de": "Zelte"}, out.NameI18n)
	require.Len(t, out.SubCategories, 1)
	assert.Equal(t, models.LocalizedText{"de": "Familienzelte"}, out.SubCategories[0].NameI18n)
}

func TestSanitizer_GenericOrder_RecursesIntoEntryProducts(t *testing.T) {
	s := sanitize.New("en", "USD")

	o := &models.GenericOrder{
		Kind: models.KindCart,
		Entries: []models.GenericOrderEntry{
			{
				Quantity: 2,
				ProductData: &models.Product{
					DescriptionI18n: models.LocalizedText{"en": "A tent", "de": "Ein Zelt"},
					Prices: models.Prices{
						{Currency: "USD", Value: decimal.NewFromInt(100)},
						{Currency: "EUR", Value: decimal.NewFromInt(90)},
					},
				},
			},
		},
	}

	out := s.GenericOrder(o)

	product := out.Entries[0].ProductData
	require.NotNil(t, product)
	assert.Equal(t, models.LocalizedText{"en": "A tent"}, product.DescriptionI18n)
	require.Len(t, product.Prices, 1)
	assert.Equal(t, "USD", product.Prices[0].Currency)
}

func TestSanitizer_NilDocuments(t *testing.T) {
	s := sanitize.New("en", "USD")

	assert.Nil(t, s.Product(nil))
	assert.Nil(t, s.Category(nil))
	assert.Nil(t, s.GenericOrder(nil))
	assert.Nil(t, s.Currency(nil))
}

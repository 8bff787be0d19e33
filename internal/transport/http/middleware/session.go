package middleware

import (
	"github.com/kstarostin/campfire-store-api/config"
	"github.com/kstarostin/campfire-store-api/internal/service"

	"github.com/gin-gonic/gin"
)

// Session resolves the storefront language and currency for the request from
// the query string. Unknown values silently fall back to the configured
// defaults so a broken link never breaks browsing.
func Session(locale config.Locale) gin.HandlerFunc {
	return func(c *gin.Context) {
		language := c.Query("language")
		if !config.Contains(locale.AllowedLanguages, language) {
			language = locale.DefaultLanguage
		}
		currency := c.Query("currency")
		if !config.Contains(locale.AllowedCurrencies, currency) {
			currency = locale.DefaultCurrency
		}

		ctx := service.WithLanguage(c.Request.Context(), language)
		ctx = service.WithCurrency(ctx, currency)
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}

package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/kstarostin/campfire-store-api/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func bindContext(t *testing.T, body string) *gin.Context {
	t.Helper()
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")
	return c
}

func TestBindWhitelisted_DropsServerManagedFields(t *testing.T) {
	r := &Resource[models.User]{
		Name: "user", Plural: "users",
		Whitelist: []string{"name", "email", "deliveryAddresses"},
	}
	c := bindContext(t, `{
		"name": "Sam",
		"email": "sam@example.com",
		"roles": ["admin"],
		"photo": {"id": "user_abc"}
	}`)

	doc, err := r.bindWhitelisted(c)
	require.NoError(t, err)
	assert.Equal(t, "Sam", doc.Name)
	assert.Equal(t, "sam@example.com", doc.Email)
	assert.Empty(t, doc.Roles)
	assert.Nil(t, doc.Photo)
}

func TestBindWhitelisted_DropsTotalOnCartBody(t *testing.T) {
	r := &Resource[models.GenericOrder]{
		Name: "cart", Plural: "carts",
		Whitelist: []string{"deliveryNote"},
	}
	c := bindContext(t, `{"deliveryNote": "ring twice", "total": 9999, "kind": "Order"}`)

	doc, err := r.bindWhitelisted(c)
	require.NoError(t, err)
	assert.Equal(t, "ring twice", doc.DeliveryNote)
	assert.True(t, doc.Total.IsZero())
	assert.Empty(t, doc.Kind)
}

func TestBindWhitelisted_EmptyWhitelistKeepsBody(t *testing.T) {
	r := &Resource[models.Currency]{Name: "currency", Plural: "currencies"}
	c := bindContext(t, `{"code": "USD", "nameI18n": {"en": "US Dollar"}}`)

	doc, err := r.bindWhitelisted(c)
	require.NoError(t, err)
	assert.Equal(t, "USD", doc.Code)
	assert.Equal(t, "US Dollar", doc.NameI18n["en"])
}

func TestBindWhitelisted_InvalidBody(t *testing.T) {
	r := &Resource[models.User]{Name: "user", Plural: "users"}
	c := bindContext(t, `{"name":`)

	_, err := r.bindWhitelisted(c)
	require.Error(t, err)
}

package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/kstarostin/campfire-store-api/internal/models"
	"github.com/kstarostin/campfire-store-api/internal/sanitize"
	"github.com/kstarostin/campfire-store-api/internal/service"
	"github.com/kstarostin/campfire-store-api/internal/transport/http/dto"

	"github.com/gin-gonic/gin"
)

// LookupHandler covers the lookup writes that need code validation; reads and
// the rest of the crud stay on the generic factory.
type LookupHandler struct {
	lookups   *service.LookupService
	responder *Responder

	whitelist []string
}

func NewLookupHandler(lookups *service.LookupService, r *Responder) *LookupHandler {
	return &LookupHandler{
		lookups:   lookups,
		responder: r,
		whitelist: []string{"code", "nameI18n"},
	}
}

func bindLookup[T any](c *gin.Context, whitelist []string) (*T, error) {
	body := map[string]any{}
	if err := c.ShouldBindJSON(&body); err != nil {
		return nil, service.NewAppError(http.StatusBadRequest, "Invalid request body: %v", err)
	}
	raw, err := json.Marshal(sanitize.Body(body, whitelist))
	if err != nil {
		return nil, err
	}
	var doc T
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, service.NewAppError(http.StatusBadRequest, "Invalid request body: %v", err)
	}
	return &doc, nil
}

func (h *LookupHandler) CreateCurrency(c *gin.Context) {
	doc, err := bindLookup[models.Currency](c, h.whitelist)
	if err != nil {
		h.responder.Error(c, err)
		return
	}
	created, err := h.lookups.CreateCurrency(c.Request.Context(), doc)
	if err != nil {
		h.responder.Error(c, err)
		return
	}
	s := sessionSanitizer(c)
	c.JSON(http.StatusCreated, dto.NewData("currency", s.Currency(created)))
}

func (h *LookupHandler) CreateLanguage(c *gin.Context) {
	doc, err := bindLookup[models.Language](c, h.whitelist)
	if err != nil {
		h.responder.Error(c, err)
		return
	}
	created, err := h.lookups.CreateLanguage(c.Request.Context(), doc)
	if err != nil {
		h.responder.Error(c, err)
		return
	}
	s := sessionSanitizer(c)
	c.JSON(http.StatusCreated, dto.NewData("language", s.Language(created)))
}

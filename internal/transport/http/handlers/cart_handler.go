package handlers

import (
	"net/http"

	"github.com/kstarostin/campfire-store-api/internal/metrics"
	"github.com/kstarostin/campfire-store-api/internal/models"
	"github.com/kstarostin/campfire-store-api/internal/repository"
	"github.com/kstarostin/campfire-store-api/internal/service"
	"github.com/kstarostin/campfire-store-api/internal/transport/http/dto"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// CartHandler serves the nested cart, entry and order routes. The subject
// user and the addressed cart/order are resolved by middleware before any of
// these run.
type CartHandler struct {
	carts     *service.CartService
	orders    repository.GenericOrderRepo
	entries   repository.EntryRepo
	metrics   *metrics.AppMetrics
	responder *Responder

	subjectUser func(c *gin.Context) (*models.User, bool)
	order       func(c *gin.Context) (*models.GenericOrder, bool)
}

func NewCartHandler(
	carts *service.CartService,
	orders repository.GenericOrderRepo,
	entries repository.EntryRepo,
	m *metrics.AppMetrics,
	r *Responder,
	subjectUser func(c *gin.Context) (*models.User, bool),
	order func(c *gin.Context) (*models.GenericOrder, bool),
) *CartHandler {
	return &CartHandler{
		carts:       carts,
		orders:      orders,
		entries:     entries,
		metrics:     m,
		responder:   r,
		subjectUser: subjectUser,
		order:       order,
	}
}

type createCartRequest struct {
	Currency string `json:"currency"`
}

func (h *CartHandler) CreateCart(c *gin.Context) {
	subject, ok := h.subjectUser(c)
	if !ok {
		h.responder.Error(c, service.ErrNotFound)
		return
	}
	var req createCartRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			h.responder.BadRequest(c, "Invalid request body: %v", err)
			return
		}
	}
	cart, err := h.carts.CreateCart(c.Request.Context(), subject.ID, req.Currency)
	if err != nil {
		h.responder.Error(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.NewData("cart", cart))
}

// GetResolved returns the cart or order the middleware already loaded.
func (h *CartHandler) GetResolved(name string) gin.HandlerFunc {
	return func(c *gin.Context) {
		order, ok := h.order(c)
		if !ok {
			h.responder.Error(c, service.ErrNotFound)
			return
		}
		s := sessionSanitizer(c)
		c.JSON(http.StatusOK, dto.NewData(name, s.GenericOrder(order)))
	}
}

type cartUpdateRequest struct {
	Currency        *string         `json:"currency"`
	DeliveryAddress *models.Address `json:"deliveryAddress"`
	BillingAddress  *models.Address `json:"billingAddress"`
	DeliveryNote    *string         `json:"deliveryNote"`
}

func (h *CartHandler) UpdateCart(c *gin.Context) {
	subject, ok := h.subjectUser(c)
	if !ok {
		h.responder.Error(c, service.ErrNotFound)
		return
	}
	cart, ok := h.order(c)
	if !ok {
		h.responder.Error(c, service.ErrNotFound)
		return
	}
	var req cartUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.responder.BadRequest(c, "Invalid request body: %v", err)
		return
	}
	updated, err := h.carts.UpdateCart(c.Request.Context(), subject.ID, cart.ID, service.CartUpdate{
		Currency:        req.Currency,
		DeliveryAddress: req.DeliveryAddress,
		BillingAddress:  req.BillingAddress,
		DeliveryNote:    req.DeliveryNote,
	})
	if err != nil {
		h.responder.Error(c, err)
		return
	}
	s := sessionSanitizer(c)
	c.JSON(http.StatusOK, dto.NewData("cart", s.GenericOrder(updated)))
}

func (h *CartHandler) DeleteCart(c *gin.Context) {
	cart, ok := h.order(c)
	if !ok {
		h.responder.Error(c, service.ErrNotFound)
		return
	}
	deleted, err := h.orders.Crud().DeleteOne(c.Request.Context(), repository.Filter{
		"id":   cart.ID,
		"kind": models.KindCart,
	})
	if err != nil {
		h.responder.Error(c, err)
		return
	}
	if !deleted {
		h.responder.Error(c, service.ErrNotFound)
		return
	}
	c.Status(http.StatusNoContent)
}

type addEntryRequest struct {
	Product  uuid.UUID `json:"product" binding:"required"`
	Quantity int       `json:"quantity"`
}

func (h *CartHandler) AddEntry(c *gin.Context) {
	subject, ok := h.subjectUser(c)
	if !ok {
		h.responder.Error(c, service.ErrNotFound)
		return
	}
	cart, ok := h.order(c)
	if !ok {
		h.responder.Error(c, service.ErrNotFound)
		return
	}
	var req addEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.responder.BadRequest(c, "Invalid request body: %v", err)
		return
	}
	if req.Quantity == 0 {
		req.Quantity = 1
	}
	entry, err := h.carts.AddEntry(c.Request.Context(), subject.ID, cart.ID, req.Product, req.Quantity)
	if err != nil {
		h.responder.Error(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.NewData("entry", entry))
}

type updateEntryRequest struct {
	Quantity int `json:"quantity" binding:"required"`
}

func (h *CartHandler) UpdateEntry(c *gin.Context) {
	cart, ok := h.order(c)
	if !ok {
		h.responder.Error(c, service.ErrNotFound)
		return
	}
	entryID, err := uuid.Parse(c.Param("entryId"))
	if err != nil {
		h.responder.Error(c, service.ErrNotFound)
		return
	}
	var req updateEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.responder.BadRequest(c, "Invalid request body: %v", err)
		return
	}
	entry, err := h.carts.UpdateEntry(c.Request.Context(), cart.ID, entryID, req.Quantity)
	if err != nil {
		h.responder.Error(c, err)
		return
	}
	s := sessionSanitizer(c)
	c.JSON(http.StatusOK, dto.NewData("entry", s.Entry(entry)))
}

func (h *CartHandler) DeleteEntry(c *gin.Context) {
	cart, ok := h.order(c)
	if !ok {
		h.responder.Error(c, service.ErrNotFound)
		return
	}
	entryID, err := uuid.Parse(c.Param("entryId"))
	if err != nil {
		h.responder.Error(c, service.ErrNotFound)
		return
	}
	if err := h.carts.DeleteEntry(c.Request.Context(), cart.ID, entryID); err != nil {
		h.responder.Error(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *CartHandler) GetEntry(c *gin.Context) {
	cart, ok := h.order(c)
	if !ok {
		h.responder.Error(c, service.ErrNotFound)
		return
	}
	entryID, err := uuid.Parse(c.Param("entryId"))
	if err != nil {
		h.responder.Error(c, service.ErrNotFound)
		return
	}
	entry, err := h.entries.GetByIDForParent(c.Request.Context(), entryID, cart.ID)
	if err != nil {
		h.responder.Error(c, err)
		return
	}
	if entry == nil {
		h.responder.Error(c, service.ErrNotFound)
		return
	}
	s := sessionSanitizer(c)
	c.JSON(http.StatusOK, dto.NewData("entry", s.Entry(entry)))
}

func (h *CartHandler) ListEntries(c *gin.Context) {
	cart, ok := h.order(c)
	if !ok {
		h.responder.Error(c, service.ErrNotFound)
		return
	}
	entries, err := h.entries.ListByParent(c.Request.Context(), cart.ID)
	if err != nil {
		h.responder.Error(c, err)
		return
	}
	s := sessionSanitizer(c)
	entries = s.Entries(entries)
	c.JSON(http.StatusOK, dto.ListResponse{
		Status:         "success",
		ResultsFound:   len(entries),
		ResultsPerPage: len(entries),
		ResultsTotal:   int64(len(entries)),
		CurrentPage:    1,
		Pages:          1,
		Data:           map[string]any{"entries": entries},
	})
}

type placeOrderRequest struct {
	Cart uuid.UUID `json:"cart" binding:"required"`
}

// PlaceOrder turns the addressed cart into an order and responds with the
// result under its preserved ID.
func (h *CartHandler) PlaceOrder(c *gin.Context) {
	subject, ok := h.subjectUser(c)
	if !ok {
		h.responder.Error(c, service.ErrNotFound)
		return
	}
	var req placeOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.responder.BadRequest(c, "Invalid request body: %v", err)
		return
	}
	order, err := h.carts.PlaceOrder(c.Request.Context(), subject.ID, req.Cart)
	if err != nil {
		h.responder.Error(c, err)
		return
	}
	total, _ := order.Total.Float64()
	h.metrics.RecordOrderPlaced(c.Request.Context(), order.Currency, total)

	s := sessionSanitizer(c)
	c.JSON(http.StatusCreated, dto.NewData("order", s.GenericOrder(order)))
}

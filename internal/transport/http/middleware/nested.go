package middleware

import (
	"github.com/kstarostin/campfire-store-api/internal/models"
	"github.com/kstarostin/campfire-store-api/internal/repository"
	"github.com/kstarostin/campfire-store-api/internal/service"
	"github.com/kstarostin/campfire-store-api/internal/transport/http/handlers"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	ctxSubjectUser = "subjectUser"
	ctxOrder       = "genericOrder"
)

// ResolveSubjectUser loads the user the path addresses (:userId, id or
// email). A missing user is always a 404 — the rest of the chain can rely on
// the subject existing.
func ResolveSubjectUser(users *service.UserService, r *handlers.Responder) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, err := users.GetByIDOrEmail(c.Request.Context(), c.Param("userId"))
		if err != nil {
			r.Error(c, err)
			return
		}
		c.Set(ctxSubjectUser, user)
		c.Next()
	}
}

// ResolveOrder verifies the nested :cartId/:orderId belongs to the subject
// user. Any broken relation in the chain is a 404, never a 500.
func ResolveOrder(orders repository.GenericOrderRepo, r *handlers.Responder, param string, kind models.OrderKind) gin.HandlerFunc {
	return func(c *gin.Context) {
		subject, ok := SubjectUser(c)
		if !ok {
			r.Error(c, service.ErrNotFound)
			return
		}
		id, err := uuid.Parse(c.Param(param))
		if err != nil {
			r.Error(c, service.ErrNotFound)
			return
		}
		order, err := orders.GetByIDForUser(c.Request.Context(), id, subject.ID, kind)
		if err != nil {
			r.Error(c, err)
			return
		}
		if order == nil {
			r.Error(c, service.ErrNotFound)
			return
		}
		c.Set(ctxOrder, order)
		c.Next()
	}
}

func SubjectUser(c *gin.Context) (*models.User, bool) {
	v, ok := c.Get(ctxSubjectUser)
	if !ok {
		return nil, false
	}
	u, ok := v.(*models.User)
	return u, ok
}

func Order(c *gin.Context) (*models.GenericOrder, bool) {
	v, ok := c.Get(ctxOrder)
	if !ok {
		return nil, false
	}
	o, ok := v.(*models.GenericOrder)
	return o, ok
}

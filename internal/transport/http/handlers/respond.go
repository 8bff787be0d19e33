package handlers

import (
	"errors"
	"net/http"
	"runtime/debug"
	"strings"

	"github.com/kstarostin/campfire-store-api/internal/service"
	"github.com/kstarostin/campfire-store-api/internal/transport/http/dto"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Responder centralizes error mapping so every handler fails the same way.
type Responder struct {
	Dev bool
	Log *zap.Logger
}

func statusLabel(code int) string {
	if code >= 500 {
		return "error"
	}
	return "fail"
}

// Error normalizes storage, token and validation errors into the API error
// envelope. Unknown errors stay a generic 500 in production.
func (r *Responder) Error(c *gin.Context, err error) {
	code, message, operational := classify(err)

	if r.Dev {
		resp := dto.ErrorResponse{
			Status:  statusLabel(code),
			Message: message,
			Error:   err.Error(),
			Stack:   string(debug.Stack()),
		}
		c.AbortWithStatusJSON(code, resp)
		return
	}

	if !operational {
		r.Log.Error("unhandled error", zap.Error(err))
		c.AbortWithStatusJSON(http.StatusInternalServerError, dto.ErrorResponse{
			Status:  "error",
			Message: "Something went wrong...",
		})
		return
	}
	c.AbortWithStatusJSON(code, dto.ErrorResponse{
		Status:  statusLabel(code),
		Message: message,
	})
}

func classify(err error) (code int, message string, operational bool) {
	if appErr, ok := service.AsAppError(err); ok {
		return appErr.Code, appErr.Message, true
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return http.StatusNotFound, "No document found with this ID", true
	}
	msg := err.Error()
	switch {
	case strings.Contains(msg, "duplicate key value violates unique constraint"):
		return http.StatusBadRequest, "Duplicate field value. Please use another value.", true
	case strings.Contains(msg, "invalid UUID"):
		return http.StatusBadRequest, "Invalid ID: " + msg, true
	case errors.Is(err, jwt.ErrTokenExpired):
		return http.StatusUnauthorized, "Your token has expired. Please log in again.", true
	case errors.Is(err, jwt.ErrTokenMalformed),
		errors.Is(err, jwt.ErrSignatureInvalid),
		errors.Is(err, jwt.ErrTokenInvalidClaims):
		return http.StatusUnauthorized, "Invalid token. Please log in again.", true
	}
	return http.StatusInternalServerError, "Something went wrong...", false
}

// BadRequest is a shortcut for transport-level validation failures.
func (r *Responder) BadRequest(c *gin.Context, format string, args ...any) {
	r.Error(c, service.NewAppError(http.StatusBadRequest, format, args...))
}

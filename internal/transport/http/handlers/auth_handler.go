package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/kstarostin/campfire-store-api/internal/images"
	"github.com/kstarostin/campfire-store-api/internal/service"
	"github.com/kstarostin/campfire-store-api/internal/transport/http/dto"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	auth      *service.AuthService
	cookieTTL time.Duration
	responder *Responder
}

func NewAuthHandler(auth *service.AuthService, cookieTTL time.Duration, r *Responder) *AuthHandler {
	return &AuthHandler{auth: auth, cookieTTL: cookieTTL, responder: r}
}

func (h *AuthHandler) setTokenCookie(c *gin.Context, token string, ttl time.Duration) {
	secure := c.Request.TLS != nil
	c.SetCookie("jwt", token, int(ttl.Seconds()), "/", "", secure, true)
}

func (h *AuthHandler) Signup(c *gin.Context) {
	var req dto.SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.responder.BadRequest(c, "Invalid request body: %v", err)
		return
	}
	user, token, err := h.auth.Signup(c.Request.Context(), service.SignupInput{
		Name:            req.Name,
		Email:           strings.ToLower(req.Email),
		Password:        req.Password,
		PasswordConfirm: req.PasswordConfirm,
		Photo:           images.Placeholder(req.Name),
	})
	if err != nil {
		h.responder.Error(c, err)
		return
	}
	h.setTokenCookie(c, token, h.cookieTTL)
	c.JSON(http.StatusCreated, dto.AuthResponse{
		Status: "success",
		Token:  token,
		Data:   map[string]any{"user": user},
	})
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.responder.BadRequest(c, "Invalid request body: %v", err)
		return
	}
	user, token, err := h.auth.Login(c.Request.Context(), strings.ToLower(req.Email), req.Password)
	if err != nil {
		h.responder.Error(c, err)
		return
	}
	h.setTokenCookie(c, token, h.cookieTTL)
	c.JSON(http.StatusOK, dto.AuthResponse{
		Status: "success",
		Token:  token,
		Data:   map[string]any{"user": user},
	})
}

// Logout overwrites the auth cookie with a short-lived dummy and pushes the
// token's jti into the denylist so it stops working before its natural expiry.
func (h *AuthHandler) Logout(c *gin.Context) {
	if token := h.extractToken(c); token != "" {
		if err := h.auth.Logout(c.Request.Context(), token); err != nil {
			h.responder.Error(c, err)
			return
		}
	}
	c.SetCookie("jwt", "loggedout", 5, "/", "", c.Request.TLS != nil, true)
	c.JSON(http.StatusOK, gin.H{"status": "success"})
}

func (h *AuthHandler) extractToken(c *gin.Context) string {
	authz := c.GetHeader("Authorization")
	if authz != "" {
		parts := strings.SplitN(authz, " ", 2)
		if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
			return strings.TrimSpace(parts[1])
		}
	}
	if cookie, err := c.Cookie("jwt"); err == nil {
		return cookie
	}
	return ""
}

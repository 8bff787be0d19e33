package middleware

import (
	"strings"

	"github.com/kstarostin/campfire-store-api/internal/service"
	"github.com/kstarostin/campfire-store-api/internal/transport/http/handlers"

	"github.com/gin-gonic/gin"
)

// extractToken берёт токен из заголовка Authorization или из cookie "jwt"
func extractToken(c *gin.Context) string {
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

// Protect authenticates the request and stashes the acting user into the
// request context for downstream handlers.
func Protect(auth *service.AuthService, r *handlers.Responder) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := extractToken(c)
		if token == "" {
			r.Error(c, service.ErrUnauthorized)
			return
		}
		user, err := auth.Authenticate(c.Request.Context(), token)
		if err != nil {
			r.Error(c, err)
			return
		}
		c.Request = c.Request.WithContext(service.WithUser(c.Request.Context(), user))
		c.Next()
	}
}

// RestrictTo allows the listed roles. The pseudo-role "me" additionally
// admits the acting user when the path's :userId names them.
func RestrictTo(auth *service.AuthService, r *handlers.Responder, roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := service.UserFromContext(c.Request.Context())
		if !ok {
			r.Error(c, service.ErrUnauthorized)
			return
		}
		if err := auth.Authorize(user, roles, c.Param("userId")); err != nil {
			r.Error(c, err)
			return
		}
		c.Next()
	}
}

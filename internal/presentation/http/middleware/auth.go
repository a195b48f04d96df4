package middleware

import (
	"strings"

	"github.com/bacdepzai/orderdesk/internal/domain/enum"
	"github.com/bacdepzai/orderdesk/internal/presentation/http/dto/response"
	"github.com/bacdepzai/orderdesk/internal/presentation/http/handler"
	"github.com/gin-gonic/gin"
)

// RoleResolver maps a bearer token to a role.
type RoleResolver interface {
	RoleFromToken(token string) enum.Role
}

// RoleMiddleware sets the caller's role. A missing or invalid token is SALE;
// the PIN gate is the only way to become OWNER.
func RoleMiddleware(resolver RoleResolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(handler.RoleKey, resolver.RoleFromToken(bearerToken(c)))
		c.Next()
	}
}

// RequireOwner rejects callers without the owner role
func RequireOwner() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !handler.GetRole(c).IsOwner() {
			response.Forbidden(c, "This action requires the owner role")
			c.Abort()
			return
		}
		c.Next()
	}
}

// bearerToken extracts the token from "Bearer <token>"
func bearerToken(c *gin.Context) string {
	parts := strings.Split(c.GetHeader("Authorization"), " ")
	if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
		return ""
	}
	return parts[1]
}

package middleware

import (
	"context"
	"strings"

	"FoodOrder/jwt"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// TokenAuthenticator verifies a bearer token and returns its claims.
type TokenAuthenticator interface {
	Authenticate(ctx context.Context, token string) (*jwt.Claims, error)
}

// AuthMiddleware reads an optional bearer token. A valid token stores the
// caller in the context; a missing or bad one leaves the request anonymous
// and lets the authorization policy decide.
func AuthMiddleware(auth TokenAuthenticator, log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		token := strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))
		if token == "" || token == authHeader {
			c.Next()
			return
		}

		claims, err := auth.Authenticate(c.Request.Context(), token)
		if err != nil {
			log.Debug("reject bearer token", zap.String("path", c.Request.URL.Path), zap.Error(err))
			c.Next()
			return
		}

		c.Set(TokenKey, token)
		c.Set(UserIDKey, claims.UserID)
		c.Set(RoleKey, claims.Role)
		c.Next()
	}
}

package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"barriotips/api/internal/security"
)

const (
	ContextClaims = "token_claims"
	ContextUser   = "current_user"
)

// Authenticate verifies the bearer token and attaches its claims to the
// request context. Requests without a valid token are rejected before any
// store access happens.
func Authenticate(tokens *security.TokenService) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenStr, err := security.TokenFromHeader(c.GetHeader("Authorization"))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing_token"})
			return
		}

		claims, err := tokens.Verify(tokenStr)
		if err != nil {
			body := gin.H{"error": "invalid_token"}
			if errors.Is(err, security.ErrTokenExpired) {
				body = gin.H{"error": "token_expired"}
			}
			c.AbortWithStatusJSON(http.StatusUnauthorized, body)
			return
		}

		c.Set(ContextClaims, *claims)
		c.Next()
	}
}

// ClaimsFrom returns the verified token claims attached by Authenticate.
func ClaimsFrom(c *gin.Context) (security.Claims, bool) {
	val, exists := c.Get(ContextClaims)
	if !exists {
		return security.Claims{}, false
	}
	claims, ok := val.(security.Claims)
	return claims, ok
}

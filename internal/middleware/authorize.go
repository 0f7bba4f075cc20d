package middleware

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"barriotips/api/internal/models"
)

// UserLoader is the role-lookup capability the authorization stage needs;
// it is satisfied by repository.UserRepository.
type UserLoader interface {
	GetByID(ctx context.Context, id string) (models.User, error)
}

// RequireRoles re-fetches the current user by the verified claim's id and
// checks role membership. With no roles given it acts as an
// authenticated-only pass-through that still attaches the loaded user.
// The token's role snapshot is deliberately not trusted here; the live
// record decides.
func RequireRoles(loader UserLoader, roles ...models.UserRole) gin.HandlerFunc {
	roleSet := make(map[models.UserRole]struct{}, len(roles))
	for _, role := range roles {
		roleSet[role] = struct{}{}
	}

	return func(c *gin.Context) {
		claims, ok := ClaimsFrom(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}

		user, err := loader.GetByID(c.Request.Context(), claims.UserID)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "user_not_found"})
			return
		}

		if len(roleSet) > 0 {
			if _, ok := roleSet[user.Role]; !ok {
				c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "forbidden"})
				return
			}
		}

		c.Set(ContextUser, user)
		c.Next()
	}
}

// UserFrom returns the user record attached by RequireRoles.
func UserFrom(c *gin.Context) (models.User, bool) {
	val, exists := c.Get(ContextUser)
	if !exists {
		return models.User{}, false
	}
	user, ok := val.(models.User)
	return user, ok
}

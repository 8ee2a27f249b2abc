package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/hkn-dev/tutoring-api/internal/models"
	appErrors "github.com/hkn-dev/tutoring-api/pkg/errors"
	"github.com/hkn-dev/tutoring-api/pkg/response"
)

// RequireRoles enforces role-based access control for routes. The RBAC
// check runs before the handler, so a rejected caller never reaches any
// data access.
func RequireRoles(roles ...models.UserRole) gin.HandlerFunc {
	allowed := make(map[models.UserRole]struct{}, len(roles))
	for _, role := range roles {
		allowed[role] = struct{}{}
	}

	return func(c *gin.Context) {
		claimsValue, exists := c.Get(ContextUserKey)
		if !exists {
			response.Error(c, appErrors.ErrUnauthorized)
			c.Abort()
			return
		}
		claims, ok := claimsValue.(*models.JWTClaims)
		if !ok {
			response.Error(c, appErrors.ErrUnauthorized)
			c.Abort()
			return
		}

		if _, ok := allowed[claims.Role]; ok {
			c.Next()
			return
		}

		response.Error(c, appErrors.ErrForbidden)
		c.Abort()
	}
}

// RequireStaff allows staff and admin identities only.
func RequireStaff() gin.HandlerFunc {
	return RequireRoles(models.RoleStaff, models.RoleAdmin)
}

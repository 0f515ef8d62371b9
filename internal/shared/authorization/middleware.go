package authorization

import (
	"github.com/gin-gonic/gin"

	"github.com/opsdesk/opsdesk/internal/shared/constants"
)

func RequireAdmin() gin.HandlerFunc {
	return RequireRoles(RoleAdmin)
}

// RequireRoles aborts the request unless the authenticated principal holds
// one of the given roles. It must run after the auth middleware.
func RequireRoles(roles ...UserRole) gin.HandlerFunc {
	allowed := make(map[UserRole]bool, len(roles))
	for _, r := range roles {
		allowed[r] = true
	}
	return func(c *gin.Context) {
		userRole := ParseUserRole(c.GetString(constants.ContextKeyUserRole))
		if !allowed[userRole] {
			c.JSON(403, gin.H{
				"error": "insufficient role",
			})
			c.Abort()
			return
		}
		c.Next()
	}
}

// CanAccessResourceByOwnerID grants access to the owner or any admin.
func CanAccessResourceByOwnerID(userID uint, userRole UserRole, resourceOwnerID uint) bool {
	if userRole.IsAdmin() {
		return true
	}
	return userID == resourceOwnerID
}

package routes

import (
	"github.com/gin-gonic/gin"

	userhandlers "github.com/opsdesk/opsdesk/internal/interfaces/http/handlers/user"
	"github.com/opsdesk/opsdesk/internal/interfaces/http/middleware"
)

// UserRouteConfig holds dependencies for user management routes.
type UserRouteConfig struct {
	UserHandler          *userhandlers.UserHandler
	AuthMiddleware       *middleware.AuthMiddleware
	PermissionMiddleware *middleware.PermissionMiddleware
}

// SetupUserRoutes configures user routes. Profile routes are open to any
// authenticated user; the rest are admin operations gated by policy.
func SetupUserRoutes(engine *gin.Engine, cfg *UserRouteConfig) {
	users := engine.Group("/api/users")
	users.Use(cfg.AuthMiddleware.RequireAuth())
	{
		users.GET("/me", cfg.UserHandler.GetMe)
		users.PUT("/me", cfg.UserHandler.UpdateProfile)

		users.GET("",
			cfg.PermissionMiddleware.RequirePermission("user", "read"),
			cfg.UserHandler.ListUsers)
		users.GET("/:id",
			cfg.UserHandler.GetUser)
		users.PUT("/:id/role",
			cfg.PermissionMiddleware.RequirePermission("user", "change_role"),
			cfg.UserHandler.ChangeRole)
		users.PUT("/:id/status",
			cfg.PermissionMiddleware.RequirePermission("user", "change_status"),
			cfg.UserHandler.SetStatus)
	}
}

package routes

import (
	"github.com/gin-gonic/gin"

	authhandlers "github.com/opsdesk/opsdesk/internal/interfaces/http/handlers/auth"
	"github.com/opsdesk/opsdesk/internal/interfaces/http/middleware"
)

// AuthRouteConfig holds dependencies for authentication routes.
type AuthRouteConfig struct {
	AuthHandler *authhandlers.AuthHandler
	RateLimiter *middleware.RateLimiter // may be nil when rate limiting is disabled
}

// SetupAuthRoutes configures authentication routes.
func SetupAuthRoutes(engine *gin.Engine, cfg *AuthRouteConfig) {
	auth := engine.Group("/api/auth")
	{
		if cfg.RateLimiter != nil {
			auth.POST("/register", cfg.RateLimiter.Limit(), cfg.AuthHandler.Register)
			auth.POST("/login", cfg.RateLimiter.Limit(), cfg.AuthHandler.Login)
		} else {
			auth.POST("/register", cfg.AuthHandler.Register)
			auth.POST("/login", cfg.AuthHandler.Login)
		}
		auth.POST("/refresh", cfg.AuthHandler.Refresh)
	}
}

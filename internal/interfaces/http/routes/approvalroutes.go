package routes

import (
	"github.com/gin-gonic/gin"

	approvalhandlers "github.com/opsdesk/opsdesk/internal/interfaces/http/handlers/approval"
	"github.com/opsdesk/opsdesk/internal/interfaces/http/middleware"
)

// ApprovalRouteConfig holds dependencies for the approval queue routes.
type ApprovalRouteConfig struct {
	ApprovalHandler      *approvalhandlers.ApprovalHandler
	AuthMiddleware       *middleware.AuthMiddleware
	PermissionMiddleware *middleware.PermissionMiddleware
}

// SetupApprovalRoutes configures the approver work queue.
func SetupApprovalRoutes(engine *gin.Engine, cfg *ApprovalRouteConfig) {
	approvals := engine.Group("/api/approvals")
	approvals.Use(cfg.AuthMiddleware.RequireAuth())
	{
		approvals.GET("/pending",
			cfg.PermissionMiddleware.RequirePermission("approval", "read"),
			cfg.ApprovalHandler.ListPending)
	}
}

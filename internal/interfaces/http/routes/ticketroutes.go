package routes

import (
	"github.com/gin-gonic/gin"

	approvalhandlers "github.com/opsdesk/opsdesk/internal/interfaces/http/handlers/approval"
	tickethandlers "github.com/opsdesk/opsdesk/internal/interfaces/http/handlers/ticket"
	"github.com/opsdesk/opsdesk/internal/interfaces/http/middleware"
	"github.com/opsdesk/opsdesk/internal/shared/authorization"
)

// TicketRouteConfig holds dependencies for ticket routes.
type TicketRouteConfig struct {
	TicketHandler        *tickethandlers.TicketHandler
	ApprovalHandler      *approvalhandlers.ApprovalHandler
	AuthMiddleware       *middleware.AuthMiddleware
	PermissionMiddleware *middleware.PermissionMiddleware
}

// SetupTicketRoutes configures ticket routes. Role gating here is coarse;
// relationship checks (creator, assignee) live in the use cases and the
// workflow table.
func SetupTicketRoutes(engine *gin.Engine, cfg *TicketRouteConfig) {
	tickets := engine.Group("/api/tickets")
	tickets.Use(cfg.AuthMiddleware.RequireAuth())
	{
		tickets.POST("",
			cfg.PermissionMiddleware.RequirePermission("ticket", "create"),
			cfg.TicketHandler.CreateTicket)
		tickets.GET("",
			cfg.PermissionMiddleware.RequirePermission("ticket", "read"),
			cfg.TicketHandler.ListTickets)

		tickets.GET("/stats",
			authorization.RequireRoles(authorization.RoleApprover, authorization.RoleAdmin),
			cfg.TicketHandler.GetStats)

		tickets.POST("/:id/transition",
			cfg.PermissionMiddleware.RequirePermission("ticket", "transition"),
			cfg.TicketHandler.TransitionTicket)
		tickets.POST("/:id/assign",
			cfg.PermissionMiddleware.RequirePermission("ticket", "assign"),
			cfg.TicketHandler.AssignTicket)

		tickets.POST("/:id/comments",
			cfg.PermissionMiddleware.RequirePermission("comment", "create"),
			cfg.TicketHandler.AddComment)
		tickets.GET("/:id/comments",
			cfg.PermissionMiddleware.RequirePermission("comment", "read"),
			cfg.TicketHandler.ListComments)

		tickets.POST("/:id/attachments",
			cfg.PermissionMiddleware.RequirePermission("attachment", "create"),
			cfg.TicketHandler.AddAttachment)

		tickets.GET("/:id/approvals",
			cfg.PermissionMiddleware.RequirePermission("approval", "read"),
			cfg.ApprovalHandler.ListHistory)

		tickets.GET("/:id",
			cfg.PermissionMiddleware.RequirePermission("ticket", "read"),
			cfg.TicketHandler.GetTicket)
		tickets.PUT("/:id",
			cfg.PermissionMiddleware.RequirePermission("ticket", "update"),
			cfg.TicketHandler.UpdateTicket)
		tickets.DELETE("/:id",
			cfg.PermissionMiddleware.RequirePermission("ticket", "delete"),
			cfg.TicketHandler.DeleteTicket)
	}
}

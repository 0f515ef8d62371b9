package http

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	ticketusecases "github.com/opsdesk/opsdesk/internal/application/ticket/usecases"
	userusecases "github.com/opsdesk/opsdesk/internal/application/user/usecases"
	"github.com/opsdesk/opsdesk/internal/domain/shared/events"
	"github.com/opsdesk/opsdesk/internal/domain/ticket"
	"github.com/opsdesk/opsdesk/internal/infrastructure/auth"
	"github.com/opsdesk/opsdesk/internal/infrastructure/config"
	"github.com/opsdesk/opsdesk/internal/infrastructure/email"
	"github.com/opsdesk/opsdesk/internal/infrastructure/permission"
	"github.com/opsdesk/opsdesk/internal/infrastructure/repository"
	approvalhandlers "github.com/opsdesk/opsdesk/internal/interfaces/http/handlers/approval"
	authhandlers "github.com/opsdesk/opsdesk/internal/interfaces/http/handlers/auth"
	tickethandlers "github.com/opsdesk/opsdesk/internal/interfaces/http/handlers/ticket"
	userhandlers "github.com/opsdesk/opsdesk/internal/interfaces/http/handlers/user"
	"github.com/opsdesk/opsdesk/internal/interfaces/http/middleware"
	"github.com/opsdesk/opsdesk/internal/interfaces/http/routes"
	"github.com/opsdesk/opsdesk/internal/shared/db"
	"github.com/opsdesk/opsdesk/internal/shared/logger"
	"github.com/opsdesk/opsdesk/internal/shared/services/markdown"
)

// Router wires repositories, use cases, handlers and middleware into a
// gin engine.
type Router struct {
	engine               *gin.Engine
	cfg                  *config.Config
	authHandler          *authhandlers.AuthHandler
	userHandler          *userhandlers.UserHandler
	ticketHandler        *tickethandlers.TicketHandler
	approvalHandler      *approvalhandlers.ApprovalHandler
	authMiddleware       *middleware.AuthMiddleware
	permissionMiddleware *middleware.PermissionMiddleware
	rateLimiter          *middleware.RateLimiter
	logger               logger.Interface
}

// NewRouter builds the full dependency graph. The event dispatcher is
// owned by the caller so audit subscribers can be registered before the
// server starts.
func NewRouter(
	gdb *gorm.DB,
	redisClient *redis.Client,
	dispatcher events.EventDispatcher,
	cfg *config.Config,
	log logger.Interface,
) (*Router, error) {
	engine := gin.New()

	// Repositories.
	userRepo := repository.NewUserRepository(gdb)
	ticketRepo := repository.NewTicketRepository(gdb)
	commentRepo := repository.NewCommentRepository(gdb)
	approvalRepo := repository.NewApprovalRepository(gdb)
	attachmentRepo := repository.NewAttachmentRepository(gdb)

	// Infrastructure services.
	txManager := db.NewTransactionManager(gdb)
	hasher := auth.NewBcryptPasswordHasher(cfg.Auth.Password.BcryptCost)
	jwtSvc := auth.NewJWTService(cfg.Auth.JWT.Secret, cfg.Auth.JWT.AccessExpMinutes, cfg.Auth.JWT.RefreshExpDays)
	markdownSvc := markdown.NewMarkdownService()
	numberGen := ticket.NewDefaultNumberGenerator()

	var notifier ticketusecases.Notifier
	if cfg.Email.Enabled {
		notifier = email.NewSMTPNotifier(cfg.Email)
	} else {
		notifier = email.NewNoopNotifier()
	}

	enforcer, err := permission.NewEnforcer(gdb, log)
	if err != nil {
		return nil, fmt.Errorf("failed to build permission enforcer: %w", err)
	}
	if err := permission.InitDefaultPolicies(enforcer, log); err != nil {
		return nil, fmt.Errorf("failed to seed permission policies: %w", err)
	}

	// User use cases.
	registerUC := userusecases.NewRegisterUserUseCase(userRepo, hasher, cfg.Auth.Password.MinLength, log)
	loginUC := userusecases.NewLoginUserUseCase(userRepo, hasher, jwtSvc, log)
	refreshUC := userusecases.NewRefreshTokenUseCase(userRepo, jwtSvc, log)
	getUserUC := userusecases.NewGetUserUseCase(userRepo, log)
	listUsersUC := userusecases.NewListUsersUseCase(userRepo, log)
	updateProfileUC := userusecases.NewUpdateProfileUseCase(userRepo, log)
	changeRoleUC := userusecases.NewChangeRoleUseCase(userRepo, log)
	setStatusUC := userusecases.NewSetUserStatusUseCase(userRepo, log)

	// Ticket use cases.
	createTicketUC := ticketusecases.NewCreateTicketUseCase(ticketRepo, userRepo, numberGen, dispatcher, log)
	updateTicketUC := ticketusecases.NewUpdateTicketUseCase(ticketRepo, dispatcher, log)
	assignTicketUC := ticketusecases.NewAssignTicketUseCase(ticketRepo, userRepo, dispatcher, notifier, log)
	transitionUC := ticketusecases.NewTransitionTicketUseCase(ticketRepo, approvalRepo, userRepo, txManager, dispatcher, notifier, log)
	deleteTicketUC := ticketusecases.NewDeleteTicketUseCase(ticketRepo, log)
	getTicketUC := ticketusecases.NewGetTicketUseCase(ticketRepo, commentRepo, attachmentRepo, log)
	listTicketsUC := ticketusecases.NewListTicketsUseCase(ticketRepo, log)
	addCommentUC := ticketusecases.NewAddCommentUseCase(ticketRepo, commentRepo, markdownSvc, dispatcher, log)
	listCommentsUC := ticketusecases.NewListCommentsUseCase(ticketRepo, commentRepo, markdownSvc, log)
	addAttachmentUC := ticketusecases.NewAddAttachmentUseCase(ticketRepo, attachmentRepo, dispatcher, cfg.Workflow.AttachmentMaxBytes, log)
	pendingUC := ticketusecases.NewListPendingApprovalsUseCase(ticketRepo, cfg.Workflow.PendingQueuePageSize, log)
	historyUC := ticketusecases.NewListApprovalHistoryUseCase(ticketRepo, approvalRepo, log)
	statsUC := ticketusecases.NewGetTicketStatsUseCase(ticketRepo, log)

	// Handlers.
	authHandler := authhandlers.NewAuthHandler(registerUC, loginUC, refreshUC)
	userHandler := userhandlers.NewUserHandler(getUserUC, listUsersUC, updateProfileUC, changeRoleUC, setStatusUC)
	ticketHandler := tickethandlers.NewTicketHandler(
		createTicketUC, updateTicketUC, assignTicketUC, transitionUC, deleteTicketUC,
		getTicketUC, listTicketsUC, addCommentUC, listCommentsUC, addAttachmentUC, statsUC,
	)
	approvalHandler := approvalhandlers.NewApprovalHandler(pendingUC, historyUC)

	// Middleware.
	authMiddleware := middleware.NewAuthMiddleware(jwtSvc, log)
	permissionMiddleware := middleware.NewPermissionMiddleware(enforcer, log)

	var rateLimiter *middleware.RateLimiter
	if cfg.RateLimit.Enabled && redisClient != nil {
		rateLimiter = middleware.NewRateLimiter(redisClient, cfg.RateLimit.AuthPerMinute, time.Minute)
	}

	return &Router{
		engine:               engine,
		cfg:                  cfg,
		authHandler:          authHandler,
		userHandler:          userHandler,
		ticketHandler:        ticketHandler,
		approvalHandler:      approvalHandler,
		authMiddleware:       authMiddleware,
		permissionMiddleware: permissionMiddleware,
		rateLimiter:          rateLimiter,
		logger:               log,
	}, nil
}

// SetupRoutes configures all HTTP routes.
func (r *Router) SetupRoutes() {
	r.engine.Use(middleware.RequestLogger(r.logger))
	r.engine.Use(middleware.Recovery())
	r.engine.Use(middleware.CORS(r.cfg.CORS.AllowedOrigins))
	r.engine.Use(middleware.SecurityHeaders())

	r.engine.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	routes.SetupAuthRoutes(r.engine, &routes.AuthRouteConfig{
		AuthHandler: r.authHandler,
		RateLimiter: r.rateLimiter,
	})

	routes.SetupUserRoutes(r.engine, &routes.UserRouteConfig{
		UserHandler:          r.userHandler,
		AuthMiddleware:       r.authMiddleware,
		PermissionMiddleware: r.permissionMiddleware,
	})

	routes.SetupTicketRoutes(r.engine, &routes.TicketRouteConfig{
		TicketHandler:        r.ticketHandler,
		ApprovalHandler:      r.approvalHandler,
		AuthMiddleware:       r.authMiddleware,
		PermissionMiddleware: r.permissionMiddleware,
	})

	routes.SetupApprovalRoutes(r.engine, &routes.ApprovalRouteConfig{
		ApprovalHandler:      r.approvalHandler,
		AuthMiddleware:       r.authMiddleware,
		PermissionMiddleware: r.permissionMiddleware,
	})
}

// GetEngine returns the gin engine, mainly for tests.
func (r *Router) GetEngine() *gin.Engine {
	return r.engine
}

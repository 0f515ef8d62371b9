package user

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/opsdesk/opsdesk/internal/application/user/usecases"
	"github.com/opsdesk/opsdesk/internal/shared/authorization"
	"github.com/opsdesk/opsdesk/internal/shared/constants"
	"github.com/opsdesk/opsdesk/internal/shared/errors"
	"github.com/opsdesk/opsdesk/internal/shared/logger"
	"github.com/opsdesk/opsdesk/internal/shared/utils"
)

type UserHandler struct {
	getUserUC       usecases.GetUserExecutor
	listUsersUC     usecases.ListUsersExecutor
	updateProfileUC usecases.UpdateProfileExecutor
	changeRoleUC    usecases.ChangeRoleExecutor
	setStatusUC     usecases.SetUserStatusExecutor
	logger          logger.Interface
}

func NewUserHandler(
	getUserUC usecases.GetUserExecutor,
	listUsersUC usecases.ListUsersExecutor,
	updateProfileUC usecases.UpdateProfileExecutor,
	changeRoleUC usecases.ChangeRoleExecutor,
	setStatusUC usecases.SetUserStatusExecutor,
) *UserHandler {
	return &UserHandler{
		getUserUC:       getUserUC,
		listUsersUC:     listUsersUC,
		updateProfileUC: updateProfileUC,
		changeRoleUC:    changeRoleUC,
		setStatusUC:     setStatusUC,
		logger:          logger.NewLogger(),
	}
}

func principal(c *gin.Context) (uint, authorization.UserRole) {
	return c.GetUint(constants.ContextKeyUserID),
		authorization.ParseUserRole(c.GetString(constants.ContextKeyUserRole))
}

// GetMe handles GET /users/me
func (h *UserHandler) GetMe(c *gin.Context) {
	actorID, actorRole := principal(c)

	result, err := h.getUserUC.Execute(c.Request.Context(), usecases.GetUserQuery{
		UserID:    actorID,
		ActorID:   actorID,
		ActorRole: actorRole,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result)
}

// GetUser handles GET /users/:id
func (h *UserHandler) GetUser(c *gin.Context) {
	userID, err := utils.ParseUintParam(c, "id")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	actorID, actorRole := principal(c)

	result, err := h.getUserUC.Execute(c.Request.Context(), usecases.GetUserQuery{
		UserID:    userID,
		ActorID:   actorID,
		ActorRole: actorRole,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result)
}

// ListUsers handles GET /users
func (h *UserHandler) ListUsers(c *gin.Context) {
	page, pageSize := utils.ParsePagination(c)

	result, err := h.listUsersUC.Execute(c.Request.Context(), usecases.ListUsersQuery{
		Role:     c.Query("role"),
		Status:   c.Query("status"),
		Page:     page,
		PageSize: pageSize,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.ListSuccessResponse(c, result.Users, result.Total, result.Page, result.PageSize)
}

// UpdateProfile handles PUT /users/me
func (h *UserHandler) UpdateProfile(c *gin.Context) {
	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponseWithError(c, errors.NewValidationError("invalid request body", err.Error()))
		return
	}

	actorID, actorRole := principal(c)

	result, err := h.updateProfileUC.Execute(c.Request.Context(), usecases.UpdateProfileCommand{
		UserID:    actorID,
		ActorID:   actorID,
		ActorRole: actorRole,
		Name:      req.Name,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Profile updated successfully", result)
}

// ChangeRole handles PUT /users/:id/role
func (h *UserHandler) ChangeRole(c *gin.Context) {
	userID, err := utils.ParseUintParam(c, "id")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req ChangeRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponseWithError(c, errors.NewValidationError("invalid request body", err.Error()))
		return
	}

	actorID, _ := principal(c)

	result, err := h.changeRoleUC.Execute(c.Request.Context(), usecases.ChangeRoleCommand{
		UserID:  userID,
		ActorID: actorID,
		Role:    req.Role,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Role updated successfully", result)
}

// SetStatus handles PUT /users/:id/status
func (h *UserHandler) SetStatus(c *gin.Context) {
	userID, err := utils.ParseUintParam(c, "id")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req SetStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponseWithError(c, errors.NewValidationError("invalid request body", err.Error()))
		return
	}

	actorID, _ := principal(c)

	result, err := h.setStatusUC.Execute(c.Request.Context(), usecases.SetUserStatusCommand{
		UserID:  userID,
		ActorID: actorID,
		Disable: req.Disable,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Status updated successfully", result)
}

package usecases

import (
	"context"

	"github.com/opsdesk/opsdesk/internal/application/user/dto"
	"github.com/opsdesk/opsdesk/internal/domain/user"
	vo "github.com/opsdesk/opsdesk/internal/domain/user/valueobjects"
	"github.com/opsdesk/opsdesk/internal/shared/authorization"
	"github.com/opsdesk/opsdesk/internal/shared/errors"
	"github.com/opsdesk/opsdesk/internal/shared/logger"
)

type ListUsersQuery struct {
	Role     string
	Status   string
	Page     int
	PageSize int
}

type ListUsersResult struct {
	Users    []dto.UserDTO
	Total    int64
	Page     int
	PageSize int
}

// ListUsersUseCase is admin-only; the route guard enforces it.
type ListUsersUseCase struct {
	userRepo user.UserRepository
	logger   logger.Interface
}

func NewListUsersUseCase(userRepo user.UserRepository, logger logger.Interface) *ListUsersUseCase {
	return &ListUsersUseCase{userRepo: userRepo, logger: logger}
}

func (uc *ListUsersUseCase) Execute(ctx context.Context, query ListUsersQuery) (*ListUsersResult, error) {
	filter := user.UserFilter{
		Page:     query.Page,
		PageSize: query.PageSize,
	}

	if query.Role != "" {
		role := authorization.UserRole(query.Role)
		if !role.IsValid() {
			return nil, errors.NewValidationError("invalid role filter", query.Role)
		}
		filter.Role = &role
	}
	if query.Status != "" {
		status := vo.Status(query.Status)
		if !status.IsValid() {
			return nil, errors.NewValidationError("invalid status filter", query.Status)
		}
		filter.Status = &status
	}

	users, total, err := uc.userRepo.List(ctx, filter)
	if err != nil {
		uc.logger.Errorw("failed to list users", "error", err)
		return nil, errors.NewInternalError("failed to list users")
	}

	return &ListUsersResult{
		Users:    dto.ToUserDTOs(users),
		Total:    total,
		Page:     query.Page,
		PageSize: query.PageSize,
	}, nil
}

package usecases

import (
	"context"
	stderrors "errors"

	"github.com/opsdesk/opsdesk/internal/application/user/dto"
	"github.com/opsdesk/opsdesk/internal/domain/user"
	"github.com/opsdesk/opsdesk/internal/shared/authorization"
	"github.com/opsdesk/opsdesk/internal/shared/errors"
	"github.com/opsdesk/opsdesk/internal/shared/logger"
)

type GetUserQuery struct {
	UserID    uint
	ActorID   uint
	ActorRole authorization.UserRole
}

type GetUserUseCase struct {
	userRepo user.UserRepository
	logger   logger.Interface
}

func NewGetUserUseCase(userRepo user.UserRepository, logger logger.Interface) *GetUserUseCase {
	return &GetUserUseCase{userRepo: userRepo, logger: logger}
}

func (uc *GetUserUseCase) Execute(ctx context.Context, query GetUserQuery) (*dto.UserDTO, error) {
	if !authorization.CanAccessResourceByOwnerID(query.ActorID, query.ActorRole, query.UserID) {
		return nil, errors.NewForbiddenError("you cannot view this user")
	}

	u, err := uc.userRepo.GetByID(ctx, query.UserID)
	if err != nil {
		if stderrors.Is(err, user.ErrNotFound) {
			return nil, errors.NewNotFoundError("user not found")
		}
		uc.logger.Errorw("failed to load user", "user_id", query.UserID, "error", err)
		return nil, errors.NewInternalError("failed to load user")
	}

	return dto.ToUserDTO(u), nil
}

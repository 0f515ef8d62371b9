package usecases

import (
	"context"
	stderrors "errors"

	"github.com/opsdesk/opsdesk/internal/application/user/dto"
	"github.com/opsdesk/opsdesk/internal/domain/user"
	vo "github.com/opsdesk/opsdesk/internal/domain/user/valueobjects"
	"github.com/opsdesk/opsdesk/internal/shared/authorization"
	"github.com/opsdesk/opsdesk/internal/shared/errors"
	"github.com/opsdesk/opsdesk/internal/shared/logger"
)

type UpdateProfileCommand struct {
	UserID    uint
	ActorID   uint
	ActorRole authorization.UserRole
	Name      string
}

type UpdateProfileUseCase struct {
	userRepo user.UserRepository
	logger   logger.Interface
}

func NewUpdateProfileUseCase(userRepo user.UserRepository, logger logger.Interface) *UpdateProfileUseCase {
	return &UpdateProfileUseCase{userRepo: userRepo, logger: logger}
}

func (uc *UpdateProfileUseCase) Execute(ctx context.Context, cmd UpdateProfileCommand) (*dto.UserDTO, error) {
	if !authorization.CanAccessResourceByOwnerID(cmd.ActorID, cmd.ActorRole, cmd.UserID) {
		return nil, errors.NewForbiddenError("you cannot edit this user")
	}

	name, err := vo.NewName(cmd.Name)
	if err != nil {
		return nil, errors.NewValidationError(err.Error())
	}

	u, err := uc.userRepo.GetByID(ctx, cmd.UserID)
	if err != nil {
		if stderrors.Is(err, user.ErrNotFound) {
			return nil, errors.NewNotFoundError("user not found")
		}
		uc.logger.Errorw("failed to load user", "user_id", cmd.UserID, "error", err)
		return nil, errors.NewInternalError("failed to load user")
	}

	if err := u.UpdateProfile(name); err != nil {
		return nil, errors.NewValidationError(err.Error())
	}

	if err := uc.userRepo.Update(ctx, u); err != nil {
		uc.logger.Errorw("failed to update user", "user_id", u.ID(), "error", err)
		return nil, errors.NewInternalError("failed to update user")
	}

	return dto.ToUserDTO(u), nil
}

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

type ChangeRoleCommand struct {
	UserID  uint
	ActorID uint
	Role    string
}

// ChangeRoleUseCase grants or revokes elevated roles. Admin-only; an
// admin cannot demote themselves, which keeps at least one admin around.
type ChangeRoleUseCase struct {
	userRepo user.UserRepository
	logger   logger.Interface
}

func NewChangeRoleUseCase(userRepo user.UserRepository, logger logger.Interface) *ChangeRoleUseCase {
	return &ChangeRoleUseCase{userRepo: userRepo, logger: logger}
}

func (uc *ChangeRoleUseCase) Execute(ctx context.Context, cmd ChangeRoleCommand) (*dto.UserDTO, error) {
	role := authorization.UserRole(cmd.Role)
	if !role.IsValid() {
		return nil, errors.NewValidationError("invalid role", cmd.Role)
	}

	if cmd.UserID == cmd.ActorID && !role.IsAdmin() {
		return nil, errors.NewConflictError("admins cannot demote themselves")
	}

	u, err := uc.userRepo.GetByID(ctx, cmd.UserID)
	if err != nil {
		if stderrors.Is(err, user.ErrNotFound) {
			return nil, errors.NewNotFoundError("user not found")
		}
		uc.logger.Errorw("failed to load user", "user_id", cmd.UserID, "error", err)
		return nil, errors.NewInternalError("failed to load user")
	}

	if err := u.ChangeRole(role); err != nil {
		return nil, errors.NewValidationError(err.Error())
	}

	if err := uc.userRepo.Update(ctx, u); err != nil {
		uc.logger.Errorw("failed to update user role", "user_id", u.ID(), "error", err)
		return nil, errors.NewInternalError("failed to update user")
	}

	uc.logger.Infow("user role changed", "user_id", u.ID(), "role", role.String(), "admin_id", cmd.ActorID)

	return dto.ToUserDTO(u), nil
}

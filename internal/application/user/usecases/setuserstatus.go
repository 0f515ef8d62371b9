package usecases

import (
	"context"
	stderrors "errors"

	"github.com/opsdesk/opsdesk/internal/application/user/dto"
	"github.com/opsdesk/opsdesk/internal/domain/user"
	"github.com/opsdesk/opsdesk/internal/shared/errors"
	"github.com/opsdesk/opsdesk/internal/shared/logger"
)

type SetUserStatusCommand struct {
	UserID  uint
	ActorID uint
	Disable bool
}

// SetUserStatusUseCase disables or re-enables an account. Admin-only;
// disabled accounts cannot log in or refresh tokens.
type SetUserStatusUseCase struct {
	userRepo user.UserRepository
	logger   logger.Interface
}

func NewSetUserStatusUseCase(userRepo user.UserRepository, logger logger.Interface) *SetUserStatusUseCase {
	return &SetUserStatusUseCase{userRepo: userRepo, logger: logger}
}

func (uc *SetUserStatusUseCase) Execute(ctx context.Context, cmd SetUserStatusCommand) (*dto.UserDTO, error) {
	if cmd.Disable && cmd.UserID == cmd.ActorID {
		return nil, errors.NewConflictError("admins cannot disable their own account")
	}

	u, err := uc.userRepo.GetByID(ctx, cmd.UserID)
	if err != nil {
		if stderrors.Is(err, user.ErrNotFound) {
			return nil, errors.NewNotFoundError("user not found")
		}
		uc.logger.Errorw("failed to load user", "user_id", cmd.UserID, "error", err)
		return nil, errors.NewInternalError("failed to load user")
	}

	if cmd.Disable {
		err = u.Disable()
	} else {
		err = u.Enable()
	}
	if err != nil {
		return nil, errors.NewConflictError(err.Error())
	}

	if err := uc.userRepo.Update(ctx, u); err != nil {
		uc.logger.Errorw("failed to update user status", "user_id", u.ID(), "error", err)
		return nil, errors.NewInternalError("failed to update user")
	}

	uc.logger.Infow("user status changed", "user_id", u.ID(), "status", u.Status().String(), "admin_id", cmd.ActorID)

	return dto.ToUserDTO(u), nil
}

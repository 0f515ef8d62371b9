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

type RegisterUserCommand struct {
	Email    string
	Name     string
	Password string
}

type RegisterUserResult struct {
	User *dto.UserDTO
}

// RegisterUserUseCase creates a requester account. Elevated roles are
// granted separately by an admin through ChangeRole.
type RegisterUserUseCase struct {
	userRepo    user.UserRepository
	hasher      PasswordHasher
	minPassword int
	logger      logger.Interface
}

func NewRegisterUserUseCase(userRepo user.UserRepository, hasher PasswordHasher, minPassword int, logger logger.Interface) *RegisterUserUseCase {
	return &RegisterUserUseCase{
		userRepo:    userRepo,
		hasher:      hasher,
		minPassword: minPassword,
		logger:      logger,
	}
}

func (uc *RegisterUserUseCase) Execute(ctx context.Context, cmd RegisterUserCommand) (*RegisterUserResult, error) {
	email, err := vo.NewEmail(cmd.Email)
	if err != nil {
		return nil, errors.NewValidationError(err.Error())
	}

	name, err := vo.NewName(cmd.Name)
	if err != nil {
		return nil, errors.NewValidationError(err.Error())
	}

	if len(cmd.Password) < uc.minPassword {
		return nil, errors.NewValidationError("password is too short")
	}

	hash, err := uc.hasher.Hash(cmd.Password)
	if err != nil {
		uc.logger.Errorw("failed to hash password", "error", err)
		return nil, errors.NewInternalError("failed to hash password")
	}

	u, err := user.NewUser(email, name, hash, authorization.RoleRequester)
	if err != nil {
		return nil, errors.NewValidationError(err.Error())
	}

	if err := uc.userRepo.Save(ctx, u); err != nil {
		if stderrors.Is(err, user.ErrEmailTaken) {
			return nil, errors.NewConflictError("email is already registered")
		}
		uc.logger.Errorw("failed to save user", "email", email.String(), "error", err)
		return nil, errors.NewInternalError("failed to save user")
	}

	uc.logger.Infow("user registered", "user_id", u.ID(), "email", email.String())

	return &RegisterUserResult{User: dto.ToUserDTO(u)}, nil
}

package usecases

import (
	"context"
	stderrors "errors"

	"github.com/opsdesk/opsdesk/internal/application/user/dto"
	"github.com/opsdesk/opsdesk/internal/domain/user"
	"github.com/opsdesk/opsdesk/internal/shared/errors"
	"github.com/opsdesk/opsdesk/internal/shared/logger"
)

type LoginUserCommand struct {
	Email    string
	Password string
}

type LoginUserResult struct {
	User   *dto.UserDTO
	Tokens *dto.TokenPairDTO
}

type LoginUserUseCase struct {
	userRepo user.UserRepository
	hasher   PasswordHasher
	tokens   TokenService
	logger   logger.Interface
}

func NewLoginUserUseCase(userRepo user.UserRepository, hasher PasswordHasher, tokens TokenService, logger logger.Interface) *LoginUserUseCase {
	return &LoginUserUseCase{
		userRepo: userRepo,
		hasher:   hasher,
		tokens:   tokens,
		logger:   logger,
	}
}

func (uc *LoginUserUseCase) Execute(ctx context.Context, cmd LoginUserCommand) (*LoginUserResult, error) {
	u, err := uc.userRepo.GetByEmail(ctx, cmd.Email)
	if err != nil {
		if stderrors.Is(err, user.ErrNotFound) {
			// Same response as a bad password so emails cannot be probed.
			return nil, errors.NewUnauthorizedError("invalid email or password")
		}
		uc.logger.Errorw("failed to load user by email", "error", err)
		return nil, errors.NewInternalError("failed to load user")
	}

	if err := uc.hasher.Compare(u.PasswordHash(), cmd.Password); err != nil {
		return nil, errors.NewUnauthorizedError("invalid email or password")
	}

	if !u.CanAuthenticate() {
		return nil, errors.NewForbiddenError("account is disabled")
	}

	accessToken, expiresAt, err := uc.tokens.GenerateAccessToken(u.ID(), u.Role())
	if err != nil {
		uc.logger.Errorw("failed to generate access token", "user_id", u.ID(), "error", err)
		return nil, errors.NewInternalError("failed to generate tokens")
	}

	refreshToken, err := uc.tokens.GenerateRefreshToken(u.ID())
	if err != nil {
		uc.logger.Errorw("failed to generate refresh token", "user_id", u.ID(), "error", err)
		return nil, errors.NewInternalError("failed to generate tokens")
	}

	uc.logger.Infow("user logged in", "user_id", u.ID())

	return &LoginUserResult{
		User: dto.ToUserDTO(u),
		Tokens: &dto.TokenPairDTO{
			AccessToken:  accessToken,
			RefreshToken: refreshToken,
			ExpiresAt:    expiresAt,
		},
	}, nil
}

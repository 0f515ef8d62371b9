package usecases

import (
	"context"
	stderrors "errors"

	"github.com/opsdesk/opsdesk/internal/application/user/dto"
	"github.com/opsdesk/opsdesk/internal/domain/user"
	"github.com/opsdesk/opsdesk/internal/shared/errors"
	"github.com/opsdesk/opsdesk/internal/shared/logger"
)

type RefreshTokenCommand struct {
	RefreshToken string
}

type RefreshTokenResult struct {
	Tokens *dto.TokenPairDTO
}

// RefreshTokenUseCase exchanges a valid refresh token for a fresh pair.
// The user is re-read so role changes and disables take effect here.
type RefreshTokenUseCase struct {
	userRepo user.UserRepository
	tokens   TokenService
	logger   logger.Interface
}

func NewRefreshTokenUseCase(userRepo user.UserRepository, tokens TokenService, logger logger.Interface) *RefreshTokenUseCase {
	return &RefreshTokenUseCase{userRepo: userRepo, tokens: tokens, logger: logger}
}

func (uc *RefreshTokenUseCase) Execute(ctx context.Context, cmd RefreshTokenCommand) (*RefreshTokenResult, error) {
	if cmd.RefreshToken == "" {
		return nil, errors.NewValidationError("refresh token is required")
	}

	userID, err := uc.tokens.ValidateRefreshToken(cmd.RefreshToken)
	if err != nil {
		return nil, errors.NewUnauthorizedError("invalid refresh token")
	}

	u, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		if stderrors.Is(err, user.ErrNotFound) {
			return nil, errors.NewUnauthorizedError("invalid refresh token")
		}
		uc.logger.Errorw("failed to load user", "user_id", userID, "error", err)
		return nil, errors.NewInternalError("failed to load user")
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

	return &RefreshTokenResult{
		Tokens: &dto.TokenPairDTO{
			AccessToken:  accessToken,
			RefreshToken: refreshToken,
			ExpiresAt:    expiresAt,
		},
	}, nil
}

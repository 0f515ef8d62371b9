package usecases

import (
	"context"
	"time"

	"github.com/opsdesk/opsdesk/internal/application/user/dto"
	"github.com/opsdesk/opsdesk/internal/shared/authorization"
)

// PasswordHasher abstracts the bcrypt hashing done in infrastructure.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Compare(hash, password string) error
}

// TokenService issues and verifies the JWT pair used by the API.
type TokenService interface {
	GenerateAccessToken(userID uint, role authorization.UserRole) (string, time.Time, error)
	GenerateRefreshToken(userID uint) (string, error)
	ValidateRefreshToken(token string) (uint, error)
}

type RegisterUserExecutor interface {
	Execute(ctx context.Context, cmd RegisterUserCommand) (*RegisterUserResult, error)
}

type LoginUserExecutor interface {
	Execute(ctx context.Context, cmd LoginUserCommand) (*LoginUserResult, error)
}

type RefreshTokenExecutor interface {
	Execute(ctx context.Context, cmd RefreshTokenCommand) (*RefreshTokenResult, error)
}

type GetUserExecutor interface {
	Execute(ctx context.Context, query GetUserQuery) (*dto.UserDTO, error)
}

type ListUsersExecutor interface {
	Execute(ctx context.Context, query ListUsersQuery) (*ListUsersResult, error)
}

type UpdateProfileExecutor interface {
	Execute(ctx context.Context, cmd UpdateProfileCommand) (*dto.UserDTO, error)
}

type ChangeRoleExecutor interface {
	Execute(ctx context.Context, cmd ChangeRoleCommand) (*dto.UserDTO, error)
}

type SetUserStatusExecutor interface {
	Execute(ctx context.Context, cmd SetUserStatusCommand) (*dto.UserDTO, error)
}

package usecases

import (
	"context"
	stderrors "errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/opsdesk/opsdesk/internal/domain/user"
	vo "github.com/opsdesk/opsdesk/internal/domain/user/valueobjects"
	"github.com/opsdesk/opsdesk/internal/shared/authorization"
	"github.com/opsdesk/opsdesk/internal/shared/errors"
)

func testUser(t *testing.T, status vo.Status) *user.User {
	t.Helper()
	email, err := vo.NewEmail("alice@example.com")
	require.NoError(t, err)
	name, err := vo.NewName("Alice")
	require.NoError(t, err)
	now := time.Now()
	u, err := user.ReconstructUser(1, email, name, "stored-hash", authorization.RoleRequester, status, now, now)
	require.NoError(t, err)
	return u
}

func TestLoginUser_Success(t *testing.T) {
	repo := &mockUserRepository{
		GetByEmailFunc: func(ctx context.Context, email string) (*user.User, error) {
			return testUser(t, vo.StatusActive), nil
		},
	}
	uc := NewLoginUserUseCase(repo, &mockPasswordHasher{}, &mockTokenService{}, newTestLogger())

	result, err := uc.Execute(context.Background(), LoginUserCommand{
		Email:    "alice@example.com",
		Password: "correct horse",
	})

	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", result.User.Email)
	assert.Equal(t, "access-token", result.Tokens.AccessToken)
	assert.Equal(t, "refresh-token", result.Tokens.RefreshToken)
}

func TestLoginUser_WrongPassword(t *testing.T) {
	repo := &mockUserRepository{
		GetByEmailFunc: func(ctx context.Context, email string) (*user.User, error) {
			return testUser(t, vo.StatusActive), nil
		},
	}
	hasher := &mockPasswordHasher{
		CompareFunc: func(hash, password string) error {
			return stderrors.New("mismatch")
		},
	}
	uc := NewLoginUserUseCase(repo, hasher, &mockTokenService{}, newTestLogger())

	_, err := uc.Execute(context.Background(), LoginUserCommand{
		Email:    "alice@example.com",
		Password: "wrong",
	})

	require.Error(t, err)
	appErr := errors.GetAppError(err)
	require.NotNil(t, appErr)
	assert.Equal(t, errors.ErrorTypeUnauthorized, appErr.Type)
}

func TestLoginUser_UnknownEmailLooksLikeBadPassword(t *testing.T) {
	repo := &mockUserRepository{
		GetByEmailFunc: func(ctx context.Context, email string) (*user.User, error) {
			return nil, user.ErrNotFound
		},
	}
	uc := NewLoginUserUseCase(repo, &mockPasswordHasher{}, &mockTokenService{}, newTestLogger())

	_, err := uc.Execute(context.Background(), LoginUserCommand{
		Email:    "nobody@example.com",
		Password: "whatever",
	})

	require.Error(t, err)
	appErr := errors.GetAppError(err)
	require.NotNil(t, appErr)
	assert.Equal(t, errors.ErrorTypeUnauthorized, appErr.Type)
	assert.Equal(t, "invalid email or password", appErr.Message)
}

func TestLoginUser_DisabledAccount(t *testing.T) {
	repo := &mockUserRepository{
		GetByEmailFunc: func(ctx context.Context, email string) (*user.User, error) {
			return testUser(t, vo.StatusDisabled), nil
		},
	}
	uc := NewLoginUserUseCase(repo, &mockPasswordHasher{}, &mockTokenService{}, newTestLogger())

	_, err := uc.Execute(context.Background(), LoginUserCommand{
		Email:    "alice@example.com",
		Password: "correct horse",
	})

	require.Error(t, err)
	assert.True(t, errors.IsForbiddenError(err))
}

package usecases

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/opsdesk/opsdesk/internal/domain/user"
	"github.com/opsdesk/opsdesk/internal/shared/errors"
)

func TestRegisterUser_Success(t *testing.T) {
	var saved *user.User
	repo := &mockUserRepository{
		SaveFunc: func(ctx context.Context, u *user.User) error {
			saved = u
			return u.SetID(1)
		},
	}
	uc := NewRegisterUserUseCase(repo, &mockPasswordHasher{}, 8, newTestLogger())

	result, err := uc.Execute(context.Background(), RegisterUserCommand{
		Email:    "Bob@Example.com",
		Name:     "Bob",
		Password: "long enough",
	})

	require.NoError(t, err)
	require.NotNil(t, saved)
	assert.Equal(t, "bob@example.com", result.User.Email)
	assert.Equal(t, "requester", result.User.Role)
	assert.Equal(t, "active", result.User.Status)
	assert.Equal(t, "hashed:long enough", saved.PasswordHash())
}

func TestRegisterUser_ShortPassword(t *testing.T) {
	uc := NewRegisterUserUseCase(&mockUserRepository{}, &mockPasswordHasher{}, 8, newTestLogger())

	_, err := uc.Execute(context.Background(), RegisterUserCommand{
		Email:    "bob@example.com",
		Name:     "Bob",
		Password: "short",
	})

	require.Error(t, err)
	assert.True(t, errors.IsValidationError(err))
}

func TestRegisterUser_InvalidEmail(t *testing.T) {
	uc := NewRegisterUserUseCase(&mockUserRepository{}, &mockPasswordHasher{}, 8, newTestLogger())

	_, err := uc.Execute(context.Background(), RegisterUserCommand{
		Email:    "not-an-email",
		Name:     "Bob",
		Password: "long enough",
	})

	require.Error(t, err)
	assert.True(t, errors.IsValidationError(err))
}

func TestRegisterUser_DuplicateEmail(t *testing.T) {
	repo := &mockUserRepository{
		SaveFunc: func(ctx context.Context, u *user.User) error {
			return user.ErrEmailTaken
		},
	}
	uc := NewRegisterUserUseCase(repo, &mockPasswordHasher{}, 8, newTestLogger())

	_, err := uc.Execute(context.Background(), RegisterUserCommand{
		Email:    "bob@example.com",
		Name:     "Bob",
		Password: "long enough",
	})

	require.Error(t, err)
	assert.True(t, errors.IsConflictError(err))
}

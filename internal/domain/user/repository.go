package user

import (
	"context"
	"errors"

	"github.com/opsdesk/opsdesk/internal/shared/authorization"
	vo "github.com/opsdesk/opsdesk/internal/domain/user/valueobjects"
)

var (
	// ErrNotFound is returned when a user id or email does not resolve.
	ErrNotFound = errors.New("user not found")

	// ErrEmailTaken is returned by Save when the email is already in use.
	ErrEmailTaken = errors.New("email already registered")
)

type UserRepository interface {
	Save(ctx context.Context, user *User) error
	Update(ctx context.Context, user *User) error
	GetByID(ctx context.Context, userID uint) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	List(ctx context.Context, filter UserFilter) ([]*User, int64, error)
}

type UserFilter struct {
	Role     *authorization.UserRole
	Status   *vo.Status
	Page     int
	PageSize int
}

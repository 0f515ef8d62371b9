// Package user holds the user aggregate: identity, credentials, role, and
// account state.
package user

import (
	"fmt"
	"time"

	vo "github.com/opsdesk/opsdesk/internal/domain/user/valueobjects"
	"github.com/opsdesk/opsdesk/internal/shared/authorization"
)

// User represents the user aggregate root.
type User struct {
	id           uint
	email        *vo.Email
	name         *vo.Name
	passwordHash string
	role         authorization.UserRole
	status       vo.Status
	createdAt    time.Time
	updatedAt    time.Time
}

// NewUser creates a new active user. The password hash must already be
// computed; the aggregate never sees plaintext credentials.
func NewUser(email *vo.Email, name *vo.Name, passwordHash string, role authorization.UserRole) (*User, error) {
	if email == nil {
		return nil, fmt.Errorf("email is required")
	}
	if name == nil {
		return nil, fmt.Errorf("name is required")
	}
	if passwordHash == "" {
		return nil, fmt.Errorf("password hash is required")
	}
	if !role.IsValid() {
		return nil, fmt.Errorf("invalid role: %s", role)
	}

	now := time.Now()
	return &User{
		email:        email,
		name:         name,
		passwordHash: passwordHash,
		role:         role,
		status:       vo.StatusActive,
		createdAt:    now,
		updatedAt:    now,
	}, nil
}

// ReconstructUser rebuilds a user from persistence.
func ReconstructUser(
	id uint,
	email *vo.Email,
	name *vo.Name,
	passwordHash string,
	role authorization.UserRole,
	status vo.Status,
	createdAt, updatedAt time.Time,
) (*User, error) {
	if id == 0 {
		return nil, fmt.Errorf("user ID cannot be zero")
	}
	if email == nil {
		return nil, fmt.Errorf("email is required")
	}
	if name == nil {
		return nil, fmt.Errorf("name is required")
	}
	if !role.IsValid() {
		return nil, fmt.Errorf("invalid role: %s", role)
	}
	if !status.IsValid() {
		return nil, fmt.Errorf("invalid status: %s", status)
	}

	return &User{
		id:           id,
		email:        email,
		name:         name,
		passwordHash: passwordHash,
		role:         role,
		status:       status,
		createdAt:    createdAt,
		updatedAt:    updatedAt,
	}, nil
}

func (u *User) ID() uint {
	return u.id
}

func (u *User) Email() *vo.Email {
	return u.email
}

func (u *User) Name() *vo.Name {
	return u.name
}

func (u *User) PasswordHash() string {
	return u.passwordHash
}

func (u *User) Role() authorization.UserRole {
	return u.role
}

func (u *User) Status() vo.Status {
	return u.status
}

func (u *User) CreatedAt() time.Time {
	return u.createdAt
}

func (u *User) UpdatedAt() time.Time {
	return u.updatedAt
}

func (u *User) SetID(id uint) error {
	if u.id != 0 {
		return fmt.Errorf("user ID is already set")
	}
	if id == 0 {
		return fmt.Errorf("user ID cannot be zero")
	}
	u.id = id
	return nil
}

// UpdateProfile changes the display name.
func (u *User) UpdateProfile(name *vo.Name) error {
	if name == nil {
		return fmt.Errorf("name is required")
	}
	u.name = name
	u.updatedAt = time.Now()
	return nil
}

// ChangeRole moves the user to a new role.
func (u *User) ChangeRole(role authorization.UserRole) error {
	if !role.IsValid() {
		return fmt.Errorf("invalid role: %s", role)
	}
	u.role = role
	u.updatedAt = time.Now()
	return nil
}

// ChangePassword replaces the stored credential hash.
func (u *User) ChangePassword(passwordHash string) error {
	if passwordHash == "" {
		return fmt.Errorf("password hash is required")
	}
	u.passwordHash = passwordHash
	u.updatedAt = time.Now()
	return nil
}

// Disable soft-disables the account. Disabled users keep their history but
// can no longer authenticate.
func (u *User) Disable() error {
	if u.status.IsDisabled() {
		return fmt.Errorf("user is already disabled")
	}
	u.status = vo.StatusDisabled
	u.updatedAt = time.Now()
	return nil
}

// Enable re-activates a disabled account.
func (u *User) Enable() error {
	if u.status.IsActive() {
		return fmt.Errorf("user is already active")
	}
	u.status = vo.StatusActive
	u.updatedAt = time.Now()
	return nil
}

// CanAuthenticate reports whether login is permitted.
func (u *User) CanAuthenticate() bool {
	return u.status.IsActive()
}

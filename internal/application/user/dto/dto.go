// Package dto defines the user read models returned by use cases.
package dto

import (
	"time"

	"github.com/opsdesk/opsdesk/internal/domain/user"
)

type UserDTO struct {
	ID        uint      `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Role      string    `json:"role"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func ToUserDTO(u *user.User) *UserDTO {
	return &UserDTO{
		ID:        u.ID(),
		Email:     u.Email().String(),
		Name:      u.Name().String(),
		Role:      u.Role().String(),
		Status:    u.Status().String(),
		CreatedAt: u.CreatedAt(),
		UpdatedAt: u.UpdatedAt(),
	}
}

func ToUserDTOs(users []*user.User) []UserDTO {
	result := make([]UserDTO, 0, len(users))
	for _, u := range users {
		result = append(result, *ToUserDTO(u))
	}
	return result
}

// TokenPairDTO carries the access/refresh token pair issued at login.
type TokenPairDTO struct {
	AccessToken  string    `json:"access_token"`
	RefreshToken string    `json:"refresh_token"`
	ExpiresAt    time.Time `json:"expires_at"`
}

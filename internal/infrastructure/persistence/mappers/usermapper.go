package mappers

import (
	"fmt"
	"time"

	"github.com/opsdesk/opsdesk/internal/domain/user"
	vo "github.com/opsdesk/opsdesk/internal/domain/user/valueobjects"
	"github.com/opsdesk/opsdesk/internal/infrastructure/persistence/models"
	"github.com/opsdesk/opsdesk/internal/shared/authorization"
)

type UserMapper interface {
	ToModel(u *user.User) *models.UserModel
	ToDomain(model *models.UserModel) (*user.User, error)
}

type UserMapperImpl struct{}

func NewUserMapper() UserMapper {
	return &UserMapperImpl{}
}

func (m *UserMapperImpl) ToModel(u *user.User) *models.UserModel {
	return &models.UserModel{
		ID:           u.ID(),
		Email:        u.Email().String(),
		Name:         u.Name().String(),
		PasswordHash: u.PasswordHash(),
		Role:         u.Role().String(),
		Status:       u.Status().String(),
		CreatedAt:    u.CreatedAt().UnixMilli(),
		UpdatedAt:    u.UpdatedAt().UnixMilli(),
	}
}

func (m *UserMapperImpl) ToDomain(model *models.UserModel) (*user.User, error) {
	email, err := vo.NewEmail(model.Email)
	if err != nil {
		return nil, fmt.Errorf("invalid stored email (id=%d): %w", model.ID, err)
	}
	name, err := vo.NewName(model.Name)
	if err != nil {
		return nil, fmt.Errorf("invalid stored name (id=%d): %w", model.ID, err)
	}

	return user.ReconstructUser(
		model.ID,
		email,
		name,
		model.PasswordHash,
		authorization.UserRole(model.Role),
		vo.Status(model.Status),
		time.UnixMilli(model.CreatedAt),
		time.UnixMilli(model.UpdatedAt),
	)
}

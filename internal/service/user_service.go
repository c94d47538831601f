package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/campushub/campus-events/internal/apperr"
	"github.com/campushub/campus-events/internal/models"
	"github.com/campushub/campus-events/internal/repository"
	"gorm.io/gorm"
)

type UserService interface {
	CreateUser(ctx context.Context, user *models.User) error
	GetUser(ctx context.Context, id uint) (*models.User, error)
}

type userService struct {
	users repository.UserRepository
}

func NewUserService(users repository.UserRepository) UserService {
	return &userService{users: users}
}

func (s *userService) CreateUser(ctx context.Context, user *models.User) error {
	if !user.Role.Valid() {
		return apperr.Validationf("role must be one of participant, organizer, hod")
	}

	// Role is fixed at signup; there is no update path.
	_, err := s.users.FindByEmail(ctx, user.Email)
	if err == nil {
		return apperr.Conflictf("a user with this email already exists")
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	if err := s.users.Create(ctx, user); err != nil {
		return fmt.Errorf("create user: %w", err)
	}
	return nil
}

func (s *userService) GetUser(ctx context.Context, id uint) (*models.User, error) {
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFoundf("user %d not found", id)
		}
		return nil, err
	}
	return user, nil
}

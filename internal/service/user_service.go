package service

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"

	"blog-service/internal/apperr"
	"blog-service/internal/model"
	"blog-service/internal/repository"
)

type UserService interface {
	GetUser(ctx context.Context, userID uuid.UUID) (*model.User, error)
	EditStatus(ctx context.Context, userID uuid.UUID, status string) (*model.User, error)
}

type userService struct {
	userRepo repository.UserRepository
}

func NewUserService(userRepo repository.UserRepository) UserService {
	return &userService{userRepo: userRepo}
}

func (s *userService) GetUser(ctx context.Context, userID uuid.UUID) (*model.User, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperr.NotFound("User not Found!")
		}
		return nil, err
	}
	return user, nil
}

func (s *userService) EditStatus(ctx context.Context, userID uuid.UUID, status string) (*model.User, error) {
	user, err := s.GetUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	if err := s.userRepo.UpdateStatus(ctx, userID, status); err != nil {
		return nil, err
	}

	user.Status = status
	return user, nil
}

package services

import (
	"context"
	"errors"

	"safecheck-backend/models"
	"safecheck-backend/repository"
)

type UserService struct {
	ctx  context.Context
	repo repository.UserRepositoryInterface
}

func NewUserService(ctx context.Context, repo repository.UserRepositoryInterface) *UserService {
	return &UserService{
		ctx:  ctx,
		repo: repo,
	}
}

func (s *UserService) CreateUser(user *models.User) (*models.User, error) {
	return s.repo.CreateUser(s.ctx, user)
}

func (s *UserService) GetUserByID(id string) (*models.User, error) {
	return s.getOne(id)
}

func (s *UserService) GetUserByEmail(email string) (*models.User, error) {
	return s.getOne(email)
}

func (s *UserService) GetUserByUsername(username string) (*models.User, error) {
	return s.getOne(username)
}

func (s *UserService) getOne(key string) (*models.User, error) {
	users, err := s.repo.GetUser(key)
	if err != nil {
		return nil, err
	}
	if len(users) == 0 {
		return nil, errors.New("user not found")
	}
	return users[0], nil
}

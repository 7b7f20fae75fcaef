// FILE: internal/service/user_service.go
package service

import (
	"context"
	"errors"

	"chat-relay-be/internal/dto"
	"chat-relay-be/internal/repository/specification"
	"chat-relay-be/internal/repository/unitofwork"

	"github.com/google/uuid"
)

type IUserService interface {
	GetProfile(ctx context.Context, userId uuid.UUID) (*dto.UserDTO, error)
	UpdateTheme(ctx context.Context, userId uuid.UUID, req *dto.UpdateThemeRequest) error
}

type userService struct {
	uowFactory unitofwork.RepositoryFactory
}

func NewUserService(uowFactory unitofwork.RepositoryFactory) IUserService {
	return &userService{uowFactory: uowFactory}
}

func (s *userService) GetProfile(ctx context.Context, userId uuid.UUID) (*dto.UserDTO, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	user, err := uow.UserRepository().FindOne(ctx, specification.ByID{ID: userId})
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, errors.New("user not found")
	}

	return &dto.UserDTO{
		Id:          user.Id,
		Email:       user.Email,
		DisplayName: user.DisplayName,
		Theme:       user.Theme,
		CreatedAt:   user.CreatedAt,
	}, nil
}

func (s *userService) UpdateTheme(ctx context.Context, userId uuid.UUID, req *dto.UpdateThemeRequest) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	return uow.UserRepository().UpdateTheme(ctx, userId, req.Theme)
}

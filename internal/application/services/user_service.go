package services

import (
	"context"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/staybook/backend/internal/application/dto"
	"github.com/staybook/backend/internal/domain/entities"
	"github.com/staybook/backend/internal/domain/repositories"
)

// UserService handles business logic for users
type UserService struct {
	repo   repositories.UserRepository
	logger zerolog.Logger
}

// NewUserService creates a new user service
func NewUserService(repo repositories.UserRepository, logger zerolog.Logger) *UserService {
	return &UserService{
		repo:   repo,
		logger: logger.With().Str("service", "user").Logger(),
	}
}

// CreateUser registers a new user under a generated ID
func (s *UserService) CreateUser(ctx context.Context, input dto.CreateUserDTO) (*entities.User, error) {
	if err := dto.Validate(input); err != nil {
		return nil, err
	}

	user, err := entities.NewUser(uuid.New().String(), input.Name)
	if err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, user); err != nil {
		return nil, err
	}

	s.logger.Info().Str("user_id", user.ID()).Msg("user created")
	return user, nil
}

// GetUser retrieves a user by ID
func (s *UserService) GetUser(ctx context.Context, id string) (*entities.User, error) {
	return s.repo.GetByID(ctx, id)
}

package services_test

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/staybook/backend/internal/application/dto"
	"github.com/staybook/backend/internal/application/services"
	"github.com/staybook/backend/internal/domain/entities"
	apperrors "github.com/staybook/backend/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestUserService_CreateUser(t *testing.T) {
	ctx := context.Background()
	repo := new(MockUserRepository)
	service := services.NewUserService(repo, zerolog.Nop())

	repo.On("Create", ctx, mock.AnythingOfType("*entities.User")).Return(nil)

	user, err := service.CreateUser(ctx, dto.CreateUserDTO{Name: "Maria"})
	require.NoError(t, err)
	assert.NotEmpty(t, user.ID())
	assert.Equal(t, "Maria", user.Name())
	repo.AssertExpectations(t)
}

func TestUserService_CreateUser_Invalid(t *testing.T) {
	ctx := context.Background()

	for _, name := range []string{"", "  "} {
		repo := new(MockUserRepository)
		service := services.NewUserService(repo, zerolog.Nop())

		_, err := service.CreateUser(ctx, dto.CreateUserDTO{Name: name})

		require.Error(t, err)
		assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeValidation))
		repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	}
}

func TestUserService_GetUser(t *testing.T) {
	ctx := context.Background()
	repo := new(MockUserRepository)
	service := services.NewUserService(repo, zerolog.Nop())

	user, err := entities.NewUser("u-1", "Maria")
	require.NoError(t, err)
	repo.On("GetByID", ctx, "u-1").Return(user, nil)

	loaded, err := service.GetUser(ctx, "u-1")
	require.NoError(t, err)
	assert.Same(t, user, loaded)
}

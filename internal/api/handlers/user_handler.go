package handlers

import (
	"context"
	"net/http"
	"strings"

	"github.com/staybook/backend/internal/application/dto"
	"github.com/staybook/backend/internal/domain/entities"
)

// UserService defines the user operations used by the handler
type UserService interface {
	CreateUser(ctx context.Context, input dto.CreateUserDTO) (*entities.User, error)
	GetUser(ctx context.Context, id string) (*entities.User, error)
}

// UserHandler handles user-related HTTP requests
type UserHandler struct {
	service UserService
}

// NewUserHandler creates a new user handler
func NewUserHandler(service UserService) *UserHandler {
	return &UserHandler{service: service}
}

type userResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

func toUserResponse(user *entities.User) userResponse {
	return userResponse{ID: user.ID(), Name: user.Name()}
}

// CreateUser handles POST /users
func (h *UserHandler) CreateUser(w http.ResponseWriter, r *http.Request) {
	var input dto.CreateUserDTO
	if err := decodeJSON(r, &input); err != nil {
		respondWithBadRequest(w, err)
		return
	}

	if strings.TrimSpace(input.Name) == "" {
		respondWithError(w, http.StatusBadRequest, "O campo nome é obrigatório.")
		return
	}

	user, err := h.service.CreateUser(r.Context(), input)
	if err != nil {
		respondWithBadRequest(w, err)
		return
	}

	respondWithJSON(w, http.StatusCreated, map[string]interface{}{
		"message": "User created successfully",
		"user":    toUserResponse(user),
	})
}

// GetUser handles GET /users/{id}
func (h *UserHandler) GetUser(w http.ResponseWriter, r *http.Request) {
	user, err := h.service.GetUser(r.Context(), r.PathValue("id"))
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, toUserResponse(user))
}

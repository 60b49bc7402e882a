package handlers

import (
	"context"
	"net/http"
	"strings"

	"github.com/staybook/backend/internal/application/dto"
	"github.com/staybook/backend/internal/domain/entities"
	"github.com/staybook/backend/internal/domain/repositories"
)

// PropertyService defines the property operations used by the handler
type PropertyService interface {
	CreateProperty(ctx context.Context, input dto.CreatePropertyDTO) (*entities.Property, error)
	GetProperty(ctx context.Context, id string) (*entities.Property, error)
	ListProperties(ctx context.Context, filter repositories.PropertyFilter) ([]*entities.Property, error)
}

// PropertyHandler handles property-related HTTP requests
type PropertyHandler struct {
	service PropertyService
}

// NewPropertyHandler creates a new property handler
func NewPropertyHandler(service PropertyService) *PropertyHandler {
	return &PropertyHandler{service: service}
}

type propertyResponse struct {
	ID                string  `json:"id"`
	Name              string  `json:"name"`
	Description       string  `json:"description"`
	MaxGuests         int     `json:"maxGuests"`
	BasePricePerNight float64 `json:"basePricePerNight"`
}

func toPropertyResponse(property *entities.Property) propertyResponse {
	return propertyResponse{
		ID:                property.ID(),
		Name:              property.Name(),
		Description:       property.Description(),
		MaxGuests:         property.MaxGuests(),
		BasePricePerNight: property.BasePricePerNight(),
	}
}

// CreateProperty handles POST /properties
func (h *PropertyHandler) CreateProperty(w http.ResponseWriter, r *http.Request) {
	var input dto.CreatePropertyDTO
	if err := decodeJSON(r, &input); err != nil {
		respondWithBadRequest(w, err)
		return
	}

	if strings.TrimSpace(input.Name) == "" {
		respondWithError(w, http.StatusBadRequest, "O nome da propriedade é obrigatório.")
		return
	}
	if input.MaxGuests <= 0 {
		respondWithError(w, http.StatusBadRequest, "A capacidade máxima deve ser maior que zero.")
		return
	}
	if input.BasePricePerNight == 0 {
		respondWithError(w, http.StatusBadRequest, "O preço base por noite é obrigatório.")
		return
	}
	if strings.TrimSpace(input.Description) == "" {
		respondWithError(w, http.StatusBadRequest, "A descrição da propriedade é obrigatória.")
		return
	}

	property, err := h.service.CreateProperty(r.Context(), input)
	if err != nil {
		respondWithBadRequest(w, err)
		return
	}

	respondWithJSON(w, http.StatusCreated, map[string]interface{}{
		"message":  "Property created successfully",
		"property": toPropertyResponse(property),
	})
}

// GetProperty handles GET /properties/{id}
func (h *PropertyHandler) GetProperty(w http.ResponseWriter, r *http.Request) {
	property, err := h.service.GetProperty(r.Context(), r.PathValue("id"))
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, toPropertyResponse(property))
}

// ListProperties handles GET /properties?minGuests=&limit=&offset=
func (h *PropertyHandler) ListProperties(w http.ResponseWriter, r *http.Request) {
	var filter repositories.PropertyFilter
	var err error
	if filter.MinGuests, err = queryInt(r, "minGuests"); err != nil {
		respondWithAppError(w, err)
		return
	}
	if filter.Limit, err = queryInt(r, "limit"); err != nil {
		respondWithAppError(w, err)
		return
	}
	if filter.Offset, err = queryInt(r, "offset"); err != nil {
		respondWithAppError(w, err)
		return
	}

	properties, err := h.service.ListProperties(r.Context(), filter)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	response := make([]propertyResponse, 0, len(properties))
	for _, property := range properties {
		response = append(response, toPropertyResponse(property))
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"properties": response,
		"count":      len(response),
	})
}

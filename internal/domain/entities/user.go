package entities

import (
	"strings"

	apperrors "github.com/staybook/backend/pkg/errors"
)

// User represents a guest of the platform
type User struct {
	id   string
	name string
}

// NewUser creates a validated user
func NewUser(id, name string) (*User, error) {
	if strings.TrimSpace(name) == "" {
		return nil, apperrors.NewValidationError("O nome é obrigatório")
	}
	return &User{id: id, name: name}, nil
}

func (u *User) ID() string { return u.id }
func (u *User) Name() string { return u.name }

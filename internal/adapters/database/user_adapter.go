package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/doug-martin/goqu/v9"
	"github.com/staybook/backend/internal/adapters/database/mappers"
	"github.com/staybook/backend/internal/adapters/database/records"
	"github.com/staybook/backend/internal/domain/entities"
	"github.com/staybook/backend/internal/domain/repositories"
	"github.com/staybook/backend/internal/infrastructure/clients/postgres"
	apperrors "github.com/staybook/backend/pkg/errors"
)

const usersTable = "users"

// UserAdapter implements the UserRepository interface
type UserAdapter struct {
	client *postgres.Client
	db     *goqu.Database
}

// NewUserAdapter creates a new user adapter
func NewUserAdapter(client *postgres.Client) repositories.UserRepository {
	return &UserAdapter{
		client: client,
		db:     goqu.New("postgres", client.DB()),
	}
}

// Create stores a new user
func (a *UserAdapter) Create(ctx context.Context, user *entities.User) error {
	record := mappers.UserToPersistence(user)
	now := time.Now()

	query, args, err := a.db.Insert(usersTable).Rows(goqu.Record{
		"id":         record.ID,
		"name":       record.Name,
		"created_at": now,
		"updated_at": now,
	}).ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build insert query", err)
	}

	if _, err := a.client.DB().ExecContext(ctx, query, args...); err != nil {
		return apperrors.NewInternalError("failed to create user", err)
	}

	return nil
}

// GetByID retrieves a user by ID
func (a *UserAdapter) GetByID(ctx context.Context, id string) (*entities.User, error) {
	query, args, err := a.db.Select("id", "name").
		From(usersTable).
		Where(goqu.Ex{"id": id}).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build query", err)
	}

	record := &records.UserRecord{}
	err = a.client.DB().QueryRowContext(ctx, query, args...).Scan(&record.ID, &record.Name)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("user with id %s not found", id))
	}
	if err != nil {
		return nil, apperrors.NewInternalError("failed to get user", err)
	}

	return mappers.UserToDomain(record)
}

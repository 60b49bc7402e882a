package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres"
	"github.com/staybook/backend/internal/adapters/database/mappers"
	"github.com/staybook/backend/internal/adapters/database/records"
	"github.com/staybook/backend/internal/domain/entities"
	"github.com/staybook/backend/internal/domain/repositories"
	"github.com/staybook/backend/internal/infrastructure/clients/postgres"
	"github.com/staybook/backend/internal/infrastructure/observability"
	apperrors "github.com/staybook/backend/pkg/errors"
)

const propertiesTable = "properties"

var propertyColumns = []interface{}{"id", "name", "description", "max_guests", "base_price_per_night"}

// PropertyAdapter implements the PropertyRepository interface
type PropertyAdapter struct {
	client *postgres.Client
	db     *goqu.Database
}

// NewPropertyAdapter creates a new property adapter
func NewPropertyAdapter(client *postgres.Client) repositories.PropertyRepository {
	return &PropertyAdapter{
		client: client,
		db:     goqu.New("postgres", client.DB()),
	}
}

// Create stores a new property
func (a *PropertyAdapter) Create(ctx context.Context, property *entities.Property) error {
	record := mappers.PropertyToPersistence(property)
	now := time.Now()

	query, args, err := a.db.Insert(propertiesTable).Rows(goqu.Record{
		"id":                   record.ID,
		"name":                 record.Name,
		"description":          record.Description,
		"max_guests":           record.MaxGuests,
		"base_price_per_night": record.BasePricePerNight,
		"created_at":           now,
		"updated_at":           now,
	}).ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build insert query", err)
	}

	if _, err := a.client.DB().ExecContext(ctx, query, args...); err != nil {
		return apperrors.NewInternalError("failed to create property", err)
	}

	return nil
}

// GetByID retrieves a property by ID
func (a *PropertyAdapter) GetByID(ctx context.Context, id string) (*entities.Property, error) {
	query, args, err := a.db.Select(propertyColumns...).
		From(propertiesTable).
		Where(goqu.Ex{"id": id}).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build query", err)
	}

	record, err := scanPropertyRecord(a.client.DB().QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("property with id %s not found", id))
	}
	if err != nil {
		return nil, apperrors.NewInternalError("failed to get property", err)
	}

	return mappers.PropertyToDomain(record)
}

// List retrieves properties ordered by name
func (a *PropertyAdapter) List(ctx context.Context, filter repositories.PropertyFilter) ([]*entities.Property, error) {
	ds := a.db.Select(propertyColumns...).From(propertiesTable)

	if filter.MinGuests > 0 {
		ds = ds.Where(goqu.C("max_guests").Gte(filter.MinGuests))
	}

	ds = ds.Order(goqu.I("name").Asc(), goqu.I("id").Asc())

	if filter.Limit > 0 {
		ds = ds.Limit(uint(filter.Limit))
	}
	if filter.Offset > 0 {
		ds = ds.Offset(uint(filter.Offset))
	}

	query, args, err := ds.ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build list query", err)
	}

	rows, err := a.client.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to list properties", err)
	}
	defer rows.Close()

	properties := make([]*entities.Property, 0)
	for rows.Next() {
		record, err := scanPropertyRecord(rows)
		if err != nil {
			return nil, apperrors.NewInternalError("failed to scan property", err)
		}

		// rows the mapper rejects are skipped so one bad row does not hide the rest
		property, err := mappers.PropertyToDomain(record)
		if err != nil {
			observability.LoggerFromContext(ctx).Warn().
				Err(err).
				Str("property_id", record.ID).
				Msg("skipping unreadable property row")
			continue
		}
		properties = append(properties, property)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewInternalError("failed to iterate properties", err)
	}

	return properties, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanPropertyRecord(row rowScanner) (*records.PropertyRecord, error) {
	record := &records.PropertyRecord{}
	var description sql.NullString

	err := row.Scan(
		&record.ID,
		&record.Name,
		&description,
		&record.MaxGuests,
		&record.BasePricePerNight,
	)
	if err != nil {
		return nil, err
	}

	record.Description = description.String
	return record, nil
}

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

const bookingsTable = "bookings"

// BookingAdapter implements the BookingRepository interface
type BookingAdapter struct {
	client *postgres.Client
	db     *goqu.Database
}

// NewBookingAdapter creates a new booking adapter
func NewBookingAdapter(client *postgres.Client) repositories.BookingRepository {
	return &BookingAdapter{
		client: client,
		db:     goqu.New("postgres", client.DB()),
	}
}

// Create stores a new booking
func (a *BookingAdapter) Create(ctx context.Context, booking *entities.Booking) error {
	record := mappers.BookingToPersistence(booking)
	now := time.Now()

	query, args, err := a.db.Insert(bookingsTable).Rows(goqu.Record{
		"id":          record.ID,
		"property_id": record.Property.ID,
		"guest_id":    record.Guest.ID,
		"start_date":  record.StartDate,
		"end_date":    record.EndDate,
		"guest_count": record.GuestCount,
		"total_price": *record.TotalPrice,
		"status":      record.Status,
		"created_at":  now,
		"updated_at":  now,
	}).ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build insert query", err)
	}

	if _, err := a.client.DB().ExecContext(ctx, query, args...); err != nil {
		return apperrors.NewInternalError("failed to create booking", err)
	}

	return nil
}

// GetByID retrieves a booking with its property and guest
func (a *BookingAdapter) GetByID(ctx context.Context, id string) (*entities.Booking, error) {
	query, args, err := a.selectBookings().
		Where(goqu.Ex{"b.id": id}).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build query", err)
	}

	record, err := scanBookingRecord(a.client.DB().QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("booking with id %s not found", id))
	}
	if err != nil {
		return nil, apperrors.NewInternalError("failed to get booking", err)
	}

	return mappers.BookingToDomain(record)
}

// Update persists the booking's status and total price
func (a *BookingAdapter) Update(ctx context.Context, booking *entities.Booking) error {
	record := mappers.BookingToPersistence(booking)

	query, args, err := a.db.Update(bookingsTable).
		Set(goqu.Record{
			"status":      record.Status,
			"total_price": *record.TotalPrice,
			"updated_at":  time.Now(),
		}).
		Where(goqu.Ex{"id": record.ID}).
		ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build update query", err)
	}

	result, err := a.client.DB().ExecContext(ctx, query, args...)
	if err != nil {
		return apperrors.NewInternalError("failed to update booking", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return apperrors.NewInternalError("failed to get rows affected", err)
	}
	if rowsAffected == 0 {
		return apperrors.NewNotFoundError(fmt.Sprintf("booking with id %s not found", record.ID))
	}

	return nil
}

// ListByGuest retrieves the bookings of a guest, most recent stay first
func (a *BookingAdapter) ListByGuest(ctx context.Context, guestID string, filter repositories.BookingFilter) ([]*entities.Booking, error) {
	ds := a.selectBookings().Where(goqu.Ex{"b.guest_id": guestID})

	if filter.Status != "" {
		ds = ds.Where(goqu.Ex{"b.status": string(filter.Status)})
	}

	ds = ds.Order(goqu.I("b.start_date").Desc())

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
		return nil, apperrors.NewInternalError("failed to list bookings", err)
	}
	defer rows.Close()

	bookings := make([]*entities.Booking, 0)
	for rows.Next() {
		record, err := scanBookingRecord(rows)
		if err != nil {
			return nil, apperrors.NewInternalError("failed to scan booking", err)
		}

		booking, err := mappers.BookingToDomain(record)
		if err != nil {
			return nil, err
		}
		bookings = append(bookings, booking)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewInternalError("failed to iterate bookings", err)
	}

	return bookings, nil
}

func (a *BookingAdapter) selectBookings() *goqu.SelectDataset {
	return a.db.From(goqu.T(bookingsTable).As("b")).
		Select(
			"b.id", "b.start_date", "b.end_date", "b.guest_count", "b.total_price", "b.status",
			"p.id", "p.name", "p.description", "p.max_guests", "p.base_price_per_night",
			"u.id", "u.name",
		).
		InnerJoin(goqu.T(propertiesTable).As("p"), goqu.On(goqu.I("b.property_id").Eq(goqu.I("p.id")))).
		InnerJoin(goqu.T(usersTable).As("u"), goqu.On(goqu.I("b.guest_id").Eq(goqu.I("u.id"))))
}

func scanBookingRecord(row rowScanner) (*records.BookingRecord, error) {
	record := &records.BookingRecord{
		Property: &records.PropertyRecord{},
		Guest:    &records.UserRecord{},
	}
	var description sql.NullString
	var totalPrice sql.NullFloat64

	err := row.Scan(
		&record.ID,
		&record.StartDate,
		&record.EndDate,
		&record.GuestCount,
		&totalPrice,
		&record.Status,
		&record.Property.ID,
		&record.Property.Name,
		&description,
		&record.Property.MaxGuests,
		&record.Property.BasePricePerNight,
		&record.Guest.ID,
		&record.Guest.Name,
	)
	if err != nil {
		return nil, err
	}

	record.Property.Description = description.String
	if totalPrice.Valid {
		record.TotalPrice = &totalPrice.Float64
	}
	return record, nil
}

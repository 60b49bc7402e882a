package main

import (
	"context"
	"os"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/staybook/backend/internal/adapters/database"
	"github.com/staybook/backend/internal/application/dto"
	"github.com/staybook/backend/internal/application/services"
	"github.com/staybook/backend/internal/domain/entities"
	"github.com/staybook/backend/internal/infrastructure/clients/postgres"
	"github.com/staybook/backend/internal/infrastructure/observability"
	"github.com/staybook/backend/migrations"
	"github.com/staybook/backend/pkg/config"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}
	observability.InitLogger("staybook-seed", cfg.App.Env, cfg.App.LogLevel)
	logger := observability.GetLogger()

	ctx := context.Background()

	pgClient, err := postgres.NewClient(ctx, &cfg.Database)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect to DB")
	}
	defer pgClient.Close()

	if err := migrations.Apply(ctx, pgClient.DB()); err != nil {
		logger.Fatal().Err(err).Msg("failed to apply schema")
	}

	if os.Getenv("RESET_DB") == "true" {
		logger.Info().Msg("RESET_DB=true detected, truncating tables before seeding")
		if _, err := pgClient.DB().ExecContext(ctx, `TRUNCATE TABLE bookings, users, properties`); err != nil {
			logger.Fatal().Err(err).Msg("failed to reset tables")
		}
	}

	propertyRepo := database.NewPropertyAdapter(pgClient)
	userRepo := database.NewUserAdapter(pgClient)
	bookingRepo := database.NewBookingAdapter(pgClient)

	propertyService := services.NewPropertyService(propertyRepo, *logger)
	userService := services.NewUserService(userRepo, *logger)
	bookingService := services.NewBookingService(bookingRepo, propertyRepo, userRepo, nil, nil, *logger)

	// 1. Seed properties
	propertyInputs := []dto.CreatePropertyDTO{
		{Name: "Apartamento no Centro", Description: "Dois quartos perto do metrô", MaxGuests: 4, BasePricePerNight: 200},
		{Name: "Casa de Praia", Description: "Vista para o mar, churrasqueira", MaxGuests: 8, BasePricePerNight: 650},
		{Name: "Chalé na Serra", Description: "Lareira e trilhas", MaxGuests: 2, BasePricePerNight: 320},
	}
	properties := make([]*entities.Property, 0, len(propertyInputs))
	for _, input := range propertyInputs {
		property, err := propertyService.CreateProperty(ctx, input)
		if err != nil {
			logger.Fatal().Err(err).Str("name", input.Name).Msg("failed to seed property")
		}
		properties = append(properties, property)
	}

	// 2. Seed users
	users := make([]*entities.User, 0, 3)
	for _, name := range []string{"Maria Silva", "João Souza", "Ana Costa"} {
		user, err := userService.CreateUser(ctx, dto.CreateUserDTO{Name: name})
		if err != nil {
			logger.Fatal().Err(err).Str("name", name).Msg("failed to seed user")
		}
		users = append(users, user)
	}

	// 3. Seed bookings spread over the coming weeks so every refund rule can be tried
	today := time.Now().UTC().Truncate(24 * time.Hour)
	bookingInputs := []dto.CreateBookingDTO{
		{PropertyID: properties[0].ID(), GuestID: users[0].ID(), StartDate: today.AddDate(0, 0, 14), EndDate: today.AddDate(0, 0, 19), GuestCount: 2},
		{PropertyID: properties[1].ID(), GuestID: users[1].ID(), StartDate: today.AddDate(0, 0, 5), EndDate: today.AddDate(0, 0, 9), GuestCount: 6},
		{PropertyID: properties[2].ID(), GuestID: users[2].ID(), StartDate: today.AddDate(0, 0, 1), EndDate: today.AddDate(0, 0, 3), GuestCount: 2},
	}
	for _, input := range bookingInputs {
		if _, err := bookingService.CreateBooking(ctx, input); err != nil {
			logger.Fatal().Err(err).Str("property_id", input.PropertyID).Msg("failed to seed booking")
		}
	}

	logger.Info().
		Int("properties", len(properties)).
		Int("users", len(users)).
		Int("bookings", len(bookingInputs)).
		Msg("seeding complete")
}

package main

import (
	"context"

	"hotel/config"
	"hotel/di"
	"hotel/helper"
	"hotel/shared/logger"

	"github.com/rs/zerolog/log"
)

// @title Hotel Reservation API
// @version 1.0
// @description Rooms, customers, bookings and the admin dashboard.
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	logger.InitLogger()

	cfg := config.Get()

	logger.Configure(cfg)

	if err := cfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("Invalid configuration")
	}

	if cfg.DB.Postgres.AutoMigrate {
		if err := helper.Migrate(context.Background(), cfg); err != nil {
			log.Fatal().Err(err).Msg("Failed to migrate database")
		}
	}

	http, cleanup := di.InitializeService()
	defer cleanup()

	http.Serve()
}

package main

import (
	"context"

	"hotel/config"
	"hotel/di"
	"hotel/shared/logger"

	"github.com/rs/zerolog/log"
)

func main() {
	logger.InitLogger()

	cfg := config.Get()

	logger.Configure(cfg)

	seeder, cleanup := di.InitializeSeeder()
	defer cleanup()

	if err := seeder.Run(context.Background()); err != nil {
		log.Error().Err(err).Msg("Seeding failed")

		return
	}

	log.Info().Str("admin", cfg.Seed.AdminEmail).Msg("Database seeded successfully")
}

package di

import (
	"context"
	"time"

	"hotel/config"
	"hotel/infras/database"
	"hotel/infras/kafka"
	"hotel/infras/otel"
	"hotel/infras/redis"

	goRedis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const cleanupTimeout = 10 * time.Second

func provideOtel(cfg *config.Config) (otel.Otel, func()) {
	o := otel.New(cfg)

	return o, func() {
		ctx, cancel := context.WithTimeout(context.Background(), cleanupTimeout)
		defer cancel()

		if err := otel.Shutdown(ctx, o); err != nil {
			log.Error().Err(err).Msg("Failed to flush traces")
		}
	}
}

func provideDatabase(cfg *config.Config) (*database.Connection, func()) {
	conn := database.New(cfg)

	return conn, func() {
		ctx, cancel := context.WithTimeout(context.Background(), cleanupTimeout)
		defer cancel()

		if err := conn.Close(ctx); err != nil {
			log.Error().Err(err).Msg("Failed to close database connection")
		}
	}
}

func provideRedis(cfg *config.Config) (*goRedis.Client, func()) {
	client := redis.New(cfg)

	return client, func() {
		if err := client.Close(); err != nil {
			log.Error().Err(err).Msg("Failed to close redis client")
		}
	}
}

// providePublisher flushes pending booking events on cleanup.
func providePublisher(cfg *config.Config, o otel.Otel) (kafka.Publisher, func()) {
	publisher := kafka.New(cfg, o)

	return publisher, func() {
		if err := publisher.Close(); err != nil {
			log.Error().Err(err).Msg("Failed to close kafka publisher")
		}
	}
}

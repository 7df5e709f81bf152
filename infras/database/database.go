package database

import (
	"context"
	"errors"

	"hotel/config"
	"hotel/infras/mongo"
	"hotel/infras/postgres"
	"hotel/shared/constant"

	"github.com/rs/zerolog/log"
)

// Connection carries the store selected by DB_DRIVER. Only that handle is set.
type Connection struct {
	Driver   string
	Postgres *postgres.Connection
	Mongo    *mongo.Connection
}

func New(config *config.Config) *Connection {
	switch config.DB.Driver {
	case constant.DBDriverMongo:
		return &Connection{
			Driver: constant.DBDriverMongo,
			Mongo:  mongo.New(config),
		}
	case constant.DBDriverPostgres, constant.Empty:
		return &Connection{
			Driver:   constant.DBDriverPostgres,
			Postgres: postgres.New(config),
		}
	default:
		log.Fatal().Str("driver", config.DB.Driver).Msg("Unsupported database driver")

		return nil
	}
}

func (c *Connection) IsMongo() bool {
	return c.Driver == constant.DBDriverMongo
}

func (c *Connection) Close(ctx context.Context) error {
	var errs []error

	if c.Postgres != nil {
		errs = append(errs, c.Postgres.Close())
	}

	if c.Mongo != nil {
		errs = append(errs, c.Mongo.Close(ctx))
	}

	return errors.Join(errs...)
}

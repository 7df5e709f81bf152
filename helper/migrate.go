// Package helper runs schema migrations for the configured store.
package helper

//nolint:revive
import (
	"context"
	"errors"
	"fmt"

	"hotel/config"
	"hotel/infras/mongo"
	"hotel/infras/postgres"
	bookingModel "hotel/internal/domains/booking/model"
	customerModel "hotel/internal/domains/customer/model"
	roomModel "hotel/internal/domains/room/model"
	userModel "hotel/internal/domains/user/model"
	"hotel/shared/constant"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/rs/zerolog/log"
)

const migrationSource = "file://migrations/postgres"

type Action string

const (
	ActionUp      Action = "up"
	ActionDown    Action = "down"
	ActionStepUp  Action = "step-up"
	ActionDrop    Action = "drop"
	ActionVersion Action = "version"
)

var ErrUnknownAction = errors.New("unknown migration action")

// MongoIndexes are the indexes the mongo driver relies on. Unique emails back the user and customer upserts.
var MongoIndexes = []mongo.Index{
	{Collection: userModel.TableName, Field: userModel.FieldEmail, Unique: true},
	{Collection: customerModel.TableName, Field: customerModel.FieldEmail, Unique: true},
	{Collection: roomModel.TableName, Field: roomModel.FieldType},
	{Collection: bookingModel.TableName, Field: bookingModel.FieldRoomID},
	{Collection: bookingModel.TableName, Field: bookingModel.FieldCustomerID},
	{Collection: bookingModel.TableName, Field: bookingModel.FieldStatus},
}

// PostgresDSN is the golang-migrate URL for the write database.
func PostgresDSN(config *config.Config) string {
	pg := config.DB.Postgres
	dsn := postgres.URL(pg.Write, pg.Prefix)

	if pg.MigrationTable != "" {
		query := dsn.Query()
		query.Set("x-migrations-table", pg.MigrationTable)
		dsn.RawQuery = query.Encode()
	}

	return dsn.String()
}

func apply(mig *migrate.Migrate, action Action) error {
	var err error

	switch action {
	case ActionUp:
		err = mig.Up()
	case ActionDown:
		err = mig.Steps(-1)
	case ActionStepUp:
		err = mig.Steps(1)
	case ActionDrop:
		err = mig.Down()
	case ActionVersion:
		version, dirty, verr := mig.Version()
		if verr != nil && !errors.Is(verr, migrate.ErrNilVersion) {
			return fmt.Errorf("error reading migration version: %w", verr)
		}

		log.Info().Uint("version", version).Bool("dirty", dirty).Msg("Current schema version")

		return nil
	default:
		return fmt.Errorf("%w: %s", ErrUnknownAction, action)
	}

	if err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("error running %s migration: %w", action, err)
	}

	log.Info().Str("action", string(action)).Msg("Database migration completed")

	return nil
}

// Runner applies one action to the postgres schema.
func Runner(config *config.Config, action Action) error {
	switch action {
	case ActionUp, ActionDown, ActionStepUp, ActionDrop, ActionVersion:
	default:
		return fmt.Errorf("%w: %s", ErrUnknownAction, action)
	}

	mig, err := migrate.New(migrationSource, PostgresDSN(config))
	if err != nil {
		return fmt.Errorf("error creating migrate instance: %w", err)
	}

	defer func() {
		if srcErr, dbErr := mig.Close(); srcErr != nil || dbErr != nil {
			log.Error().AnErr("source", srcErr).AnErr("database", dbErr).Msg("failed to close migrate instance")
		}
	}()

	return apply(mig, action)
}

// Migrate brings the configured store up to date: SQL migrations for postgres, indexes for mongo.
func Migrate(ctx context.Context, config *config.Config) error {
	if config.DB.Driver != constant.DBDriverMongo {
		return Runner(config, ActionUp)
	}

	conn := mongo.New(config)
	defer func() {
		if err := conn.Close(ctx); err != nil {
			log.Error().Err(err).Msg("failed to close mongo connection")
		}
	}()

	if err := conn.EnsureIndexes(ctx, MongoIndexes); err != nil {
		return fmt.Errorf("error ensuring mongo indexes: %w", err)
	}

	log.Info().Msg("Mongo indexes ensured successfully")

	return nil
}

package mongo

import (
	"context"
	"fmt"
	"time"

	"hotel/config"

	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/bson"
	mongodriver "go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Connection holds the client and the application database.
type Connection struct {
	Client   *mongodriver.Client
	Database *mongodriver.Database
}

// Index describes a single field index on a collection.
type Index struct {
	Collection string
	Field      string
	Unique     bool
}

func New(config *config.Config) *Connection {
	timeout := time.Duration(config.DB.Mongo.ConnectTimeoutSec) * time.Second

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	opts := options.Client().
		ApplyURI(config.DB.Mongo.URI).
		SetRetryWrites(true).
		SetAppName(config.App.Name)

	client, err := mongodriver.Connect(ctx, opts)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to MongoDB")
	}

	if err = client.Ping(ctx, nil); err != nil {
		log.Fatal().Err(err).Msg("Failed to ping MongoDB")
	}

	log.Info().Str("database", config.DB.Mongo.Database).Msg("Connected to MongoDB")

	return &Connection{
		Client:   client,
		Database: client.Database(config.DB.Mongo.Database),
	}
}

func (c *Connection) Collection(name string) *mongodriver.Collection {
	return c.Database.Collection(name)
}

// EnsureIndexes creates the given indexes; existing ones are left untouched.
func (c *Connection) EnsureIndexes(ctx context.Context, indexes []Index) error {
	for _, idx := range indexes {
		model := mongodriver.IndexModel{
			Keys:    bson.D{{Key: idx.Field, Value: 1}},
			Options: options.Index().SetUnique(idx.Unique),
		}

		name, err := c.Collection(idx.Collection).Indexes().CreateOne(ctx, model)
		if err != nil {
			return fmt.Errorf("failed to create index on %s.%s: %w", idx.Collection, idx.Field, err)
		}

		log.Info().Str("collection", idx.Collection).Str("index", name).Msg("Index ensured")
	}

	return nil
}

func (c *Connection) Close(ctx context.Context) error {
	if err := c.Client.Disconnect(ctx); err != nil {
		return fmt.Errorf("failed to disconnect mongo: %w", err)
	}

	return nil
}

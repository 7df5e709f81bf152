package postgres

//nolint:revive
import (
	"errors"
	"fmt"
	"net"
	"net/url"
	"time"

	"hotel/config"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/rs/zerolog/log"
)

const (
	postgresMaxIdleConnection = 10
	postgresMaxOpenConnection = 10
	postgresConnMaxLifetime   = 30 * time.Minute
)

// Connection splits reads and writes so replicas can serve the listing endpoints.
type Connection struct {
	Read  *sqlx.DB
	Write *sqlx.DB
}

func New(config *config.Config) *Connection {
	pg := config.DB.Postgres

	return &Connection{
		Read:  connect("read", URL(pg.Read, pg.Prefix), pg.MaxRetry, pg.RetryWaitTime),
		Write: connect("write", URL(pg.Write, pg.Prefix), pg.MaxRetry, pg.RetryWaitTime),
	}
}

// URL locates a database; prefix is prepended to the database name per environment.
func URL(endpoint config.PostgresEndpoint, prefix string) url.URL {
	return url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(endpoint.Username, endpoint.Password),
		Host:     net.JoinHostPort(endpoint.Host, endpoint.Port),
		Path:     "/" + prefix + endpoint.Name,
		RawQuery: url.Values{"sslmode": []string{endpoint.SSLMode}}.Encode(),
	}
}

func connect(name string, target url.URL, maxRetry, waitTime int) *sqlx.DB {
	for retry := range max(maxRetry, 1) {
		sqlDB, err := sqlx.Connect("postgres", target.String())
		if err == nil {
			log.
				Info().
				Str("name", name).
				Str("host", target.Host).
				Str("dbName", target.Path).
				Msg("Connected to database")

			sqlDB.SetMaxIdleConns(postgresMaxIdleConnection)
			sqlDB.SetMaxOpenConns(postgresMaxOpenConnection)
			sqlDB.SetConnMaxLifetime(postgresConnMaxLifetime)

			return sqlDB
		}

		log.
			Error().
			Err(err).
			Str("name", name).
			Str("host", target.Host).
			Int("attempt", retry+1).
			Msg("Failed connecting to database, retrying")

		time.Sleep(time.Duration(waitTime) * time.Second)
	}

	log.Fatal().Str("name", name).Str("host", target.Host).Msg("Giving up connecting to database")

	return nil
}

func (c *Connection) Close() error {
	var errs []error

	if c.Read != nil {
		errs = append(errs, c.Read.Close())
	}

	if c.Write != nil {
		errs = append(errs, c.Write.Close())
	}

	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("failed to close postgres: %w", err)
	}

	return nil
}

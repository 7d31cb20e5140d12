package postgres

//nolint:revive
import (
	"errors"
	"fmt"
	"net"
	"net/url"
	"time"

	"pms/config"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/rs/zerolog/log"
)

const driverName = "postgres"

var errNoAttempts = errors.New("no connection attempts configured")

type Connection struct {
	Read  *sqlx.DB
	Write *sqlx.DB
}

func New(config *config.Config) *Connection {
	return &Connection{
		Read:  mustConnect(config, "read", config.DB.Postgres.Read),
		Write: mustConnect(config, "write", config.DB.Postgres.Write),
	}
}

// DSN builds the connection URL of a node. A configured timezone is sent as a session
// parameter so CURRENT_DATE and date casts agree with the hotel's calendar.
func DSN(config *config.Config, node config.PostgresNode) *url.URL {
	dsn := &url.URL{
		Scheme: driverName,
		User:   url.UserPassword(node.Username, node.Password),
		Host:   net.JoinHostPort(node.Host, node.Port),
		Path:   "/" + config.DB.Postgres.Prefix + node.Name,
	}

	query := dsn.Query()
	if node.SSLMode != "" {
		query.Set("sslmode", node.SSLMode)
	}

	if node.Timezone != "" {
		query.Set("timezone", node.Timezone)
	}

	dsn.RawQuery = query.Encode()

	return dsn
}

func mustConnect(config *config.Config, name string, node config.PostgresNode) *sqlx.DB {
	db, err := Connect(config, name, node)
	if err != nil {
		log.Fatal().Err(err).Str("name", name).Msg("Failed to connect to database")
	}

	return db
}

// Connect opens a pool to node, retrying MaxRetry times with RetryWaitTime seconds between attempts.
func Connect(config *config.Config, name string, node config.PostgresNode) (*sqlx.DB, error) {
	settings := config.DB.Postgres
	descriptor := DSN(config, node).String()
	err := errNoAttempts

	for retry := range settings.MaxRetry {
		var db *sqlx.DB

		db, err = sqlx.Connect(driverName, descriptor)
		if err == nil {
			db.SetMaxOpenConns(settings.Pool.MaxOpenConns)
			db.SetMaxIdleConns(settings.Pool.MaxIdleConns)
			db.SetConnMaxLifetime(time.Duration(settings.Pool.ConnMaxLifetimeSeconds) * time.Second)

			log.
				Info().
				Str("name", name).
				Str("host", node.Host).
				Str("port", node.Port).
				Str("dbName", settings.Prefix+node.Name).
				Msg("Connected to database")

			return db, nil
		}

		log.
			Error().
			Err(err).
			Str("name", name).
			Str("host", node.Host).
			Int("attempt", retry+1).
			Int("maxAttempts", settings.MaxRetry).
			Msg("Failed connecting to database, retrying")

		time.Sleep(time.Duration(settings.RetryWaitTime) * time.Second)
	}

	return nil, fmt.Errorf("failed to connect to %s database: %w", name, err)
}

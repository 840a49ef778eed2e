package postgres

//nolint:revive
import (
	"fmt"
	"galpao/config"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/rs/zerolog/log"
)

const (
	driverName = "postgres"

	connectionRead  = "read"
	connectionWrite = "write"
)

type Connection struct {
	Read  *sqlx.DB
	Write *sqlx.DB
}

// New opens both pools and exits the process when either stays unreachable
// after the configured retries.
func New(cfg *config.Config) *Connection {
	return &Connection{
		Read:  mustConnect(cfg, connectionRead, cfg.DB.Postgres.Read),
		Write: mustConnect(cfg, connectionWrite, cfg.DB.Postgres.Write),
	}
}

func mustConnect(cfg *config.Config, name string, conn config.PostgresConnection) *sqlx.DB {
	db, err := Connect(cfg, name, conn)
	if err != nil {
		log.Fatal().Err(err).Str("name", name).Msg("Failed to connect to database")
	}

	return db
}

// Connect dials one endpoint, retrying MaxRetry times with RetryWaitTime seconds in between.
func Connect(cfg *config.Config, name string, conn config.PostgresConnection) (*sqlx.DB, error) {
	pg := cfg.DB.Postgres
	dsn := conn.DSN(pg.Prefix, map[string]string{"application_name": cfg.App.Name})
	attempts := max(pg.MaxRetry, 1)

	var err error

	for attempt := range attempts {
		var db *sqlx.DB

		db, err = sqlx.Connect(driverName, dsn)
		if err == nil {
			db.SetMaxOpenConns(pg.MaxOpenConns)
			db.SetMaxIdleConns(pg.MaxIdleConns)
			db.SetConnMaxLifetime(time.Duration(pg.ConnMaxLifetimeMin) * time.Minute)

			log.Info().
				Str("name", name).
				Str("host", conn.Host).
				Str("port", conn.Port).
				Str("dbName", pg.Prefix+conn.Name).
				Msg("Connected to database")

			return db, nil
		}

		log.Error().
			Err(err).
			Str("name", name).
			Str("host", conn.Host).
			Int("attempt", attempt+1).
			Int("maxAttempts", attempts).
			Msg("Failed connecting to database, retrying")

		if attempt+1 < attempts {
			time.Sleep(time.Duration(pg.RetryWaitTime) * time.Second)
		}
	}

	return nil, fmt.Errorf("failed to connect to %s database after %d attempts: %w", name, attempts, err)
}

package helper

//nolint:revive
import (
	"errors"
	"fmt"
	"galpao/config"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/rs/zerolog/log"
)

const (
	MigrationUp      = "up"
	MigrationDown    = "down"
	MigrationStepUp  = "step-up"
	MigrationDrop    = "drop"
	MigrationVersion = "version"

	migrationsSource = "file://migrations/postgres"
)

var ErrUnknownMigration = errors.New("unknown migration action")

func getConnection(config *config.Config) (*migrate.Migrate, error) {
	pg := config.DB.Postgres
	dsn := pg.Write.DSN(pg.Prefix, map[string]string{"x-migrations-table": pg.MigrationTable})

	mig, err := migrate.New(migrationsSource, dsn)
	if err != nil {
		return nil, fmt.Errorf("error creating migrate instance: %w", err)
	}

	return mig, nil
}

// Runner applies one migration action against the write database.
func Runner(config *config.Config, action string) error {
	mig, err := getConnection(config)
	if err != nil {
		return err
	}

	defer func() {
		if srcErr, dbErr := mig.Close(); srcErr != nil || dbErr != nil {
			log.Warn().AnErr("source", srcErr).AnErr("database", dbErr).Msg("failed to close migrate instance")
		}
	}()

	switch action {
	case MigrationUp:
		err = mig.Up()
	case MigrationDown:
		err = mig.Steps(-1)
	case MigrationStepUp:
		err = mig.Steps(1)
	case MigrationDrop:
		err = mig.Down()
	case MigrationVersion:
		version, dirty, verr := mig.Version()
		if verr != nil && !errors.Is(verr, migrate.ErrNilVersion) {
			return fmt.Errorf("error reading migration version: %w", verr)
		}

		log.Info().Uint("version", version).Bool("dirty", dirty).Msg("Current migration version")

		return nil
	default:
		return fmt.Errorf("%w: %s", ErrUnknownMigration, action)
	}

	if err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("error running migration %s: %w", action, err)
	}

	log.Info().Str("action", action).Msg("Database migration completed successfully")

	return nil
}

func Up(config *config.Config) error {
	return Runner(config, MigrationUp)
}

func StepUp(config *config.Config) error {
	return Runner(config, MigrationStepUp)
}

func Down(config *config.Config) error {
	return Runner(config, MigrationDown)
}

func Drop(config *config.Config) error {
	return Runner(config, MigrationDrop)
}

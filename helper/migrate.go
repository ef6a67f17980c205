package helper

//nolint:revive
import (
	"errors"
	"fmt"
	"hotel/config"
	"net/url"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/rs/zerolog/log"
)

const migrationSource = "file://migrations/postgres"

type Action string

const (
	ActionUp      Action = "up"
	ActionStepUp  Action = "step-up"
	ActionDown    Action = "down"
	ActionDrop    Action = "drop"
	ActionVersion Action = "version"
)

var ErrUnknownAction = errors.New("unknown migration action, use up, step-up, down, drop or version")

func ParseAction(raw string) (Action, error) {
	switch action := Action(raw); action {
	case ActionUp, ActionStepUp, ActionDown, ActionDrop, ActionVersion:
		return action, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownAction, raw)
	}
}

// DatabaseURL builds the migrate connection string for the write database.
func DatabaseURL(config *config.Config) string {
	extra := url.Values{}
	if table := config.DB.Postgres.MigrationTable; table != "" {
		extra.Set("x-migrations-table", table)
	}

	return config.DB.Postgres.URL(config.DB.Postgres.Write, extra).String()
}

func Run(config *config.Config, action Action) error {
	mig, err := migrate.New(migrationSource, DatabaseURL(config))
	if err != nil {
		return fmt.Errorf("error creating migrate instance: %w", err)
	}

	defer func() {
		if sourceErr, dbErr := mig.Close(); sourceErr != nil || dbErr != nil {
			log.Warn().AnErr("source", sourceErr).AnErr("database", dbErr).Msg("failed to close migrate instance")
		}
	}()

	switch action {
	case ActionUp:
		err = mig.Up()
	case ActionStepUp:
		err = mig.Steps(1)
	case ActionDown:
		err = mig.Steps(-1)
	case ActionDrop:
		err = mig.Down()
	case ActionVersion:
		version, dirty, versionErr := mig.Version()
		if versionErr != nil && !errors.Is(versionErr, migrate.ErrNilVersion) {
			return fmt.Errorf("error reading migration version: %w", versionErr)
		}

		log.Info().Uint("version", version).Bool("dirty", dirty).Msg("Current database migration version")

		return nil
	default:
		return fmt.Errorf("%w: %q", ErrUnknownAction, action)
	}

	if err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("error running %s migration: %w", action, err)
	}

	log.Info().Str("action", string(action)).Msg("Database migration finished")

	return nil
}

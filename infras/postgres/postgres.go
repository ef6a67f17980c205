package postgres

//nolint:revive
import (
	"context"
	"fmt"
	"hotel/config"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/rs/zerolog/log"
)

const driverName = "postgres"

// Connection splits reads from writes. Both may point at the same server.
type Connection struct {
	Read  *sqlx.DB
	Write *sqlx.DB
}

func New(cfg *config.Config) *Connection {
	settings := cfg.DB.Postgres

	return &Connection{
		Read:  mustConnect(context.Background(), "read", settings, settings.Read),
		Write: mustConnect(context.Background(), "write", settings, settings.Write),
	}
}

func mustConnect(ctx context.Context, role string, settings config.Postgres, node config.PostgresNode) *sqlx.DB {
	db, err := Connect(ctx, settings, node)
	if err != nil {
		log.Fatal().Err(err).Str("role", role).Str("host", node.Host).Str("db", settings.Prefix+node.Name).Msg("failed to connect to postgres")
	}

	log.Info().Str("role", role).Str("host", node.Host).Str("db", settings.Prefix+node.Name).Msg("connected to postgres")

	return db
}

// Connect opens a pool for node, retrying MaxRetry times with RetryWaitTime seconds between attempts.
func Connect(ctx context.Context, settings config.Postgres, node config.PostgresNode) (*sqlx.DB, error) {
	dsn := settings.URL(node, nil).String()
	wait := time.Duration(settings.RetryWaitTime) * time.Second
	attempts := max(settings.MaxRetry, 1)

	var err error

	for attempt := 1; attempt <= attempts; attempt++ {
		var db *sqlx.DB

		db, err = sqlx.ConnectContext(ctx, driverName, dsn)
		if err == nil {
			db.SetMaxOpenConns(settings.MaxOpenConns)
			db.SetMaxIdleConns(settings.MaxIdleConns)

			return db, nil
		}

		log.Warn().Err(err).Str("host", node.Host).Int("attempt", attempt).Int("of", attempts).Msg("postgres not reachable yet")

		if attempt == attempts {
			break
		}

		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("postgres connect cancelled: %w", ctx.Err())
		case <-time.After(wait):
		}
	}

	return nil, fmt.Errorf("failed to connect to postgres after %d attempts: %w", attempts, err)
}

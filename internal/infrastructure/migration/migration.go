package migration

import (
	"context"

	"github.com/jackc/pgconn"
	"github.com/rs/zerolog"
)

// Migration represents a database migration
type Migration struct {
	Name string
	SQL  string
}

// Migrations is the ordered schema history. Every statement is idempotent.
var Migrations = []Migration{
	{
		Name: "create_users",
		SQL: `
		CREATE TABLE IF NOT EXISTS users (
			id UUID PRIMARY KEY,
			email TEXT NOT NULL UNIQUE,
			name TEXT NOT NULL DEFAULT '',
			password_hash BYTEA NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now()
		);`,
	},
	{
		Name: "create_resumes",
		SQL: `
		CREATE TABLE IF NOT EXISTS resumes (
			id UUID PRIMARY KEY,
			user_id UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			title TEXT NOT NULL,
			resume_data JSONB NOT NULL DEFAULT '{}'::jsonb,
			template_config JSONB NOT NULL DEFAULT '{}'::jsonb,
			is_public BOOLEAN NOT NULL DEFAULT false,
			share_url TEXT,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
		);
		CREATE INDEX IF NOT EXISTS resumes_user_updated_idx ON resumes (user_id, updated_at DESC);`,
	},
	{
		Name: "create_analytics_events",
		SQL: `
		CREATE TABLE IF NOT EXISTS analytics_events (
			id UUID PRIMARY KEY,
			event_type TEXT NOT NULL,
			event_data JSONB NOT NULL DEFAULT '{}'::jsonb,
			user_id UUID,
			session_id TEXT,
			timestamp TIMESTAMPTZ NOT NULL DEFAULT now()
		);
		CREATE INDEX IF NOT EXISTS analytics_events_user_idx ON analytics_events (user_id, timestamp DESC);`,
	},
}

// Execer is satisfied by *pgxpool.Pool.
type Execer interface {
	Exec(ctx context.Context, sql string, args ...interface{}) (pgconn.CommandTag, error)
}

// RunMigrations executes all necessary database migrations on startup
func RunMigrations(ctx context.Context, pool Execer, log zerolog.Logger) error {
	log.Info().Int("count", len(Migrations)).Msg("Starting database migrations")

	for _, m := range Migrations {
		if _, err := pool.Exec(ctx, m.SQL); err != nil {
			log.Error().Err(err).Str("name", m.Name).Msg("Migration failed")
			return err
		}
		log.Info().Str("name", m.Name).Msg("Migration completed")
	}

	log.Info().Msg("All migrations completed successfully")
	return nil
}

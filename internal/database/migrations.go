package database

import (
	"database/sql"
	"fmt"

	"github.com/phuslu/log"
)

// Schema creates the journal tables. It is safe to run repeatedly.
const Schema = `
	CREATE TABLE IF NOT EXISTS flow_runs (
		id UUID PRIMARY KEY,
		scenario VARCHAR(255) NOT NULL,
		flow VARCHAR(255) NOT NULL,
		state VARCHAR(20) NOT NULL,
		aliases TEXT[] NOT NULL DEFAULT '{}',
		pending INTEGER NOT NULL DEFAULT 0,
		error TEXT NOT NULL DEFAULT '',
		stalled_alias VARCHAR(255) NOT NULL DEFAULT '',
		started_at TIMESTAMP NOT NULL,
		finished_at TIMESTAMP NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_flow_runs_started_at ON flow_runs(started_at);
	CREATE INDEX IF NOT EXISTS idx_flow_runs_state ON flow_runs(state);
	`

// RunMigrations creates the journal tables on the shared connection
func RunMigrations() error {
	if DB == nil {
		return fmt.Errorf("database connection not initialized")
	}
	if err := Migrate(DB); err != nil {
		return err
	}

	log.Info().Msg("database migrations completed")
	return nil
}

// Migrate applies Schema to db
func Migrate(db *sql.DB) error {
	if _, err := db.Exec(Schema); err != nil {
		return fmt.Errorf("failed to create flow_runs table: %w", err)
	}
	return nil
}

package storage

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
)

// ExpectedSchemaVersion is the latest schema version that the application expects.
// If the database cannot be migrated to this version, it's a fatal error.
const ExpectedSchemaVersion = 2

// Migration represents a database schema migration.
type Migration struct {
	Up          func(*sql.Tx) error
	Description string
	Version     int
}

var migrations = []Migration{
	{
		Version:     1,
		Description: "Classified reports",
		Up: func(tx *sql.Tx) error {
			return execAll(tx,
				`CREATE TABLE IF NOT EXISTS reports (
					id TEXT PRIMARY KEY,
					source TEXT NOT NULL,
					abelian_count INTEGER NOT NULL,
					non_abelian_count INTEGER NOT NULL,
					total_abelian INTEGER NOT NULL,
					total_non_abelian INTEGER NOT NULL,
					created_at DATETIME NOT NULL
				)`,
				`CREATE INDEX idx_reports_created_at ON reports(created_at)`,
				`CREATE INDEX idx_reports_source ON reports(source)`,

				`CREATE TABLE IF NOT EXISTS report_lines (
					report_id TEXT NOT NULL REFERENCES reports(id) ON DELETE CASCADE,
					section TEXT NOT NULL CHECK (section IN ('abelian', 'non_abelian')),
					position INTEGER NOT NULL,
					text TEXT NOT NULL,
					PRIMARY KEY (report_id, section, position)
				)`,
			)
		},
	},
	{
		Version:     2,
		Description: "Play sessions",
		Up: func(tx *sql.Tx) error {
			return execAll(tx,
				`CREATE TABLE IF NOT EXISTS play_sessions (
					id TEXT PRIMARY KEY,
					graph_source TEXT NOT NULL,
					start_node INTEGER NOT NULL,
					final_node INTEGER NOT NULL,
					state TEXT NOT NULL CHECK (state IN ('ACTIVE', 'TERMINAL', 'CANCELLED')),
					steps INTEGER NOT NULL,
					created_at DATETIME NOT NULL
				)`,
				`CREATE INDEX idx_play_sessions_created_at ON play_sessions(created_at)`,
				`CREATE INDEX idx_play_sessions_graph ON play_sessions(graph_source)`,

				`CREATE TABLE IF NOT EXISTS play_steps (
					session_id TEXT NOT NULL REFERENCES play_sessions(id) ON DELETE CASCADE,
					position INTEGER NOT NULL,
					node_id INTEGER NOT NULL,
					PRIMARY KEY (session_id, position)
				)`,
			)
		},
	},
}

func execAll(tx *sql.Tx, queries ...string) error {
	for _, query := range queries {
		if _, err := tx.Exec(query); err != nil {
			return fmt.Errorf("failed to execute query: %w", err)
		}
	}
	return nil
}

// Migrate applies every migration newer than the database's user_version.
func (s *SQLiteStorage) Migrate(ctx context.Context) error {
	if err := validateContext(ctx); err != nil {
		return err
	}

	var currentVersion int
	err := s.db.QueryRowContext(ctx, "PRAGMA user_version").Scan(&currentVersion)
	if err != nil {
		return fmt.Errorf("failed to get schema version: %w", err)
	}

	if currentVersion > ExpectedSchemaVersion {
		return fmt.Errorf("database schema version %d is newer than supported version %d", currentVersion, ExpectedSchemaVersion)
	}

	for _, migration := range migrations {
		if migration.Version <= currentVersion {
			continue
		}

		tx, txErr := s.db.BeginTx(ctx, nil)
		if txErr != nil {
			return fmt.Errorf("failed to begin transaction: %w", txErr)
		}

		if upErr := migration.Up(tx); upErr != nil {
			_ = tx.Rollback()
			return fmt.Errorf("migration %d failed: %w", migration.Version, upErr)
		}

		if _, execErr := tx.Exec(fmt.Sprintf("PRAGMA user_version = %d", migration.Version)); execErr != nil {
			_ = tx.Rollback()
			return fmt.Errorf("failed to update schema version: %w", execErr)
		}

		if commitErr := tx.Commit(); commitErr != nil {
			return fmt.Errorf("failed to commit migration %d: %w", migration.Version, commitErr)
		}

		slog.Debug("Applied migration",
			"version", migration.Version,
			"description", migration.Description)
	}

	var finalVersion int
	err = s.db.QueryRowContext(ctx, "PRAGMA user_version").Scan(&finalVersion)
	if err != nil {
		return fmt.Errorf("failed to verify final schema version: %w", err)
	}

	if finalVersion != ExpectedSchemaVersion {
		return fmt.Errorf("database schema version mismatch: expected %d, got %d", ExpectedSchemaVersion, finalVersion)
	}

	return nil
}

// SchemaVersion returns the database's user_version.
func (s *SQLiteStorage) SchemaVersion(ctx context.Context) (int, error) {
	var version int
	if err := s.db.QueryRowContext(ctx, "PRAGMA user_version").Scan(&version); err != nil {
		return 0, fmt.Errorf("failed to get schema version: %w", err)
	}
	return version, nil
}

package main

import (
	"fmt"
	"log/slog"

	"github.com/Veraticus/groupgame/internal/cli"
	"github.com/Veraticus/groupgame/internal/storage"
	"github.com/spf13/cobra"
)

func migrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Run database migrations",
		Long: `Initialize or update the history database schema to the latest version.

Other commands migrate on demand; this is useful after an upgrade or to check
which schema version a database has.`,
		Args: cobra.NoArgs,
		RunE: runMigrate,
	}

	cmd.Flags().Bool("status", false, "show the current schema version without applying changes")

	return cmd
}

func runMigrate(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	status, _ := cmd.Flags().GetBool("status")
	out := cmd.OutOrStdout()

	slog.Info("Opening database", "path", settings.Database.Path, "status_only", status)

	store, err := storage.NewSQLiteStorage(settings.Database.Path)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer func() { _ = store.Close() }()

	current, err := store.SchemaVersion(ctx)
	if err != nil {
		return err
	}

	if status {
		fmt.Fprintf(out, "Database: %s\nCurrent version: %d\nLatest version: %d\n",
			settings.Database.Path, current, storage.ExpectedSchemaVersion)
		return nil
	}

	if err := store.Migrate(ctx); err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}

	if current == storage.ExpectedSchemaVersion {
		fmt.Fprintln(out, cli.FormatInfo(fmt.Sprintf("Database already at version %d", current)))
		return nil
	}
	fmt.Fprintln(out, cli.FormatSuccess(fmt.Sprintf("Migrated database from version %d to %d", current, storage.ExpectedSchemaVersion)))
	return nil
}

package main

import (
	"context"
	"fmt"
	"io"

	"github.com/Veraticus/groupgame/internal/artifact"
	"github.com/Veraticus/groupgame/internal/cli"
	"github.com/Veraticus/groupgame/internal/common"
	"github.com/Veraticus/groupgame/internal/graph"
	"github.com/Veraticus/groupgame/internal/service"
	"github.com/Veraticus/groupgame/internal/storage"
	"github.com/spf13/cobra"
)

// applyFlags lets explicitly set command flags override the loaded settings.
func applyFlags(cmd *cobra.Command) error {
	flags := cmd.Flags()
	if flags.Changed("wait") {
		settings.Artifacts.Wait, _ = flags.GetBool("wait")
	}
	if flags.Changed("format") {
		settings.Report.Format, _ = flags.GetString("format")
	}
	if flags.Changed("tui") {
		settings.Navigation.TUI, _ = flags.GetBool("tui")
	}
	if flags.Changed("max-steps") {
		settings.Navigation.MaxSteps, _ = flags.GetInt("max-steps")
	}

	if err := settings.Validate(); err != nil {
		return common.NewUserError("Invalid flags", err)
	}
	return nil
}

// initStorage opens the history database and brings its schema up to date.
func initStorage(ctx context.Context) (service.Storage, error) {
	store, err := storage.NewSQLiteStorage(settings.Database.Path)
	if err != nil {
		return nil, err
	}

	if err := store.Migrate(ctx); err != nil {
		_ = store.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return store, nil
}

// readArtifact reads the artifact called name, first waiting for it to appear
// when artifacts.wait is set. The spinner goes to w.
func readArtifact(ctx context.Context, w io.Writer, name string) (string, error) {
	path := settings.ArtifactPath(name)
	if !settings.Artifacts.Wait {
		return artifact.Await(ctx, path, false, 0)
	}

	var text string
	err := cli.Spin(ctx, w, "Waiting for "+name, func(ctx context.Context) error {
		var err error
		text, err = artifact.Await(ctx, path, true, settings.Artifacts.Timeout)
		return err
	})
	return text, err
}

// loadGraph reads and parses a game graph artifact.
func loadGraph(ctx context.Context, w io.Writer, name string) (*graph.Graph, error) {
	text, err := readArtifact(ctx, w, name)
	if err != nil {
		return nil, err
	}

	g, err := graph.Parse(text)
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", name, err)
	}
	return g, nil
}

package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/Veraticus/groupgame/internal/cli"
	"github.com/Veraticus/groupgame/internal/common"
	"github.com/Veraticus/groupgame/internal/model"
	"github.com/Veraticus/groupgame/internal/report"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

func reportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "report FILE...",
		Short: "Classify group reports",
		Long: `Sort the groups listed in one or more reports into abelian and non-abelian
groups and show how many of each kind the engine examined.

Relative file names are resolved against artifacts.dir.`,
		Args: cobra.MinimumNArgs(1),
		RunE: runReport,
	}

	cmd.Flags().String("format", "text", "output format (text, json, yaml); overrides report.format")
	cmd.Flags().Bool("save", false, "save the results to the history database")
	cmd.Flags().Bool("wait", false, "wait for the reports to be written")

	return cmd
}

func runReport(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	save, _ := cmd.Flags().GetBool("save")
	if err := applyFlags(cmd); err != nil {
		return err
	}

	format, err := report.ParseFormat(settings.Report.Format)
	if err != nil {
		return err
	}

	docs, err := classifyReports(ctx, cmd, args)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if format == report.FormatText {
		for _, doc := range docs {
			if err := cli.RenderReport(out, doc.Source, doc.Result); err != nil {
				return err
			}
		}
	} else if err := report.Encode(out, format, docs...); err != nil {
		return fmt.Errorf("failed to encode reports: %w", err)
	}

	if !save {
		return nil
	}
	return saveReports(ctx, cmd, docs)
}

// classifyReports reads and classifies every file concurrently. Results keep
// the order of names.
func classifyReports(ctx context.Context, cmd *cobra.Command, names []string) ([]report.Document, error) {
	docs := make([]report.Document, len(names))
	parser := report.NewParser()

	g, gctx := errgroup.WithContext(ctx)
	for i, name := range names {
		g.Go(func() error {
			text, err := readArtifact(gctx, cmd.ErrOrStderr(), name)
			if err != nil {
				return err
			}

			result, err := parser.ParseFile(gctx, strings.NewReader(text))
			if err != nil {
				return fmt.Errorf("failed to classify %s: %w", name, err)
			}

			docs[i] = report.Document{Source: name, Result: result}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return docs, nil
}

func saveReports(ctx context.Context, cmd *cobra.Command, docs []report.Document) error {
	store, err := initStorage(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	tx, err := store.BeginTx(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	for _, doc := range docs {
		record := &model.ReportRecord{Source: doc.Source, Result: doc.Result}
		if err := tx.SaveReport(ctx, record); err != nil {
			return fmt.Errorf("failed to save %s: %w", doc.Source, err)
		}
		common.LogDebug("Saved report", common.Fields{"id": record.ID, "source": record.Source})
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit reports: %w", err)
	}

	fmt.Fprintln(cmd.ErrOrStderr(), cli.FormatSuccess(fmt.Sprintf("Saved %d report(s)", len(docs))))
	return nil
}

package main

import (
	"fmt"

	"github.com/Veraticus/groupgame/internal/cli"
	"github.com/Veraticus/groupgame/internal/model"
	"github.com/Veraticus/groupgame/internal/service"
	"github.com/spf13/cobra"
)

const (
	historyReports  = "reports"
	historySessions = "sessions"
)

func historyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history [reports|sessions]",
		Short: "List saved reports and play sessions",
		Long: `List what was saved with --save, newest first. Without an argument both
reports and play sessions are shown. With --id a single saved entry is shown.`,
		Args:      cobra.MatchAll(cobra.MaximumNArgs(1), cobra.OnlyValidArgs),
		ValidArgs: []string{historyReports, historySessions},
		RunE:      runHistory,
	}

	cmd.Flags().String("source", "", "only show entries for this file")
	cmd.Flags().Int("limit", 20, "maximum number of entries per list (0 = all)")
	cmd.Flags().Int("offset", 0, "skip this many entries")
	cmd.Flags().String("id", "", "show one saved entry (requires reports or sessions)")

	return cmd
}

func runHistory(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	out := cmd.OutOrStdout()

	kind := ""
	if len(args) == 1 {
		kind = args[0]
	}

	source, _ := cmd.Flags().GetString("source")
	limit, _ := cmd.Flags().GetInt("limit")
	offset, _ := cmd.Flags().GetInt("offset")
	id, _ := cmd.Flags().GetString("id")

	if id != "" && kind == "" {
		return fmt.Errorf("--id needs %q or %q", historyReports, historySessions)
	}

	store, err := initStorage(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	if id != "" {
		if kind == historyReports {
			record, err := store.GetReport(ctx, id)
			if err != nil {
				return err
			}
			return cli.RenderReport(out, record.Source, record.Result)
		}
		record, err := store.GetSession(ctx, id)
		if err != nil {
			return err
		}
		return cli.RenderSessionHistory(out, []model.PlayRecord{*record})
	}

	filter := service.ListFilter{Source: source, Limit: limit, Offset: offset}

	if kind == "" || kind == historyReports {
		reports, err := store.ListReports(ctx, filter)
		if err != nil {
			return err
		}
		fmt.Fprintln(out, cli.FormatTitle("Reports"))
		if err := cli.RenderReportHistory(out, reports); err != nil {
			return err
		}
	}

	if kind == "" || kind == historySessions {
		sessions, err := store.ListSessions(ctx, filter)
		if err != nil {
			return err
		}
		fmt.Fprintln(out, cli.FormatTitle("Play sessions"))
		if err := cli.RenderSessionHistory(out, sessions); err != nil {
			return err
		}
	}

	return nil
}

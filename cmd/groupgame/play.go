package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/Veraticus/groupgame/internal/cli"
	"github.com/Veraticus/groupgame/internal/common"
	"github.com/Veraticus/groupgame/internal/game"
	"github.com/Veraticus/groupgame/internal/graph"
	"github.com/Veraticus/groupgame/internal/model"
	"github.com/Veraticus/groupgame/internal/tui"
	"github.com/spf13/cobra"
)

func playCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "play FILE",
		Short: "Play through a subgroup game graph",
		Long: `Pick a start position and move along the edges of a game graph until a
position without moves is reached. Type "q" (or press esc in the TUI) to stop
early.

Relative file names are resolved against artifacts.dir.`,
		Args: cobra.ExactArgs(1),
		RunE: runPlay,
	}

	cmd.Flags().Int("start", 0, "start position id (asked interactively when not set)")
	cmd.Flags().Bool("tui", false, "choose moves in a full screen list")
	cmd.Flags().Int("max-steps", 0, "stop after this many moves (0 = no limit)")
	cmd.Flags().Bool("save", false, "save the session to the history database")
	cmd.Flags().Bool("wait", false, "wait for the graph to be written")

	return cmd
}

func runPlay(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	name := args[0]
	save, _ := cmd.Flags().GetBool("save")
	if err := applyFlags(cmd); err != nil {
		return err
	}

	g, err := loadGraph(ctx, cmd.ErrOrStderr(), name)
	if err != nil {
		return err
	}

	var chooser game.Chooser
	if settings.Navigation.TUI {
		chooser = tui.New(tui.WithAltScreen(true))
	} else {
		prompter := cli.NewCLIPrompter(cmd.InOrStdin(), cmd.OutOrStdout()).WithStepLimit(settings.Navigation.MaxSteps)
		defer prompter.Finish()
		chooser = prompter
	}

	if cmd.Flags().Changed("start") {
		start, _ := cmd.Flags().GetInt("start")
		chooser = &presetStart{Chooser: chooser, start: start}
	}

	handler := cli.NewInterruptHandler(cmd.ErrOrStderr())
	playCtx := handler.Watch(ctx, save)
	defer handler.Stop()

	outcome, err := game.Play(playCtx, g, chooser, game.WithMaxSteps(settings.Navigation.MaxSteps))
	if err != nil {
		return err
	}

	if err := cli.RenderOutcome(cmd.OutOrStdout(), outcome.State, outcome.Path, describer(g)); err != nil {
		return err
	}
	if outcome.StepLimitReached {
		fmt.Fprintln(cmd.OutOrStdout(), cli.FormatWarning(fmt.Sprintf("Stopped after the move limit of %d", settings.Navigation.MaxSteps)))
	}

	if !save {
		return nil
	}
	if !outcome.Started {
		slog.Info("Nothing to save, no start position was chosen")
		return nil
	}

	// An interrupted session is still recorded.
	return saveSession(context.WithoutCancel(ctx), cmd, name, outcome)
}

// presetStart answers the first start prompt with a fixed position. If that
// position does not exist the wrapped chooser is asked instead.
type presetStart struct {
	game.Chooser
	start int
	used  bool
}

func (p *presetStart) Choose(ctx context.Context, prompt game.Prompt, options []model.Option) (int, bool, error) {
	if !p.used && prompt.Current == nil {
		p.used = true
		return p.start, true, nil
	}
	return p.Chooser.Choose(ctx, prompt, options)
}

func describer(g *graph.Graph) func(int) string {
	return func(id int) string {
		desc, err := g.DescriptionOf(id)
		if err != nil {
			return "?"
		}
		return desc
	}
}

func saveSession(ctx context.Context, cmd *cobra.Command, name string, outcome *game.Outcome) error {
	store, err := initStorage(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	record := &model.PlayRecord{
		GraphSource: name,
		State:       outcome.State,
		Path:        outcome.Path,
		StartNode:   outcome.Start,
		FinalNode:   outcome.Final,
	}
	if err := store.SaveSession(ctx, record); err != nil {
		return fmt.Errorf("failed to save play session: %w", err)
	}

	common.LogInfo("Saved play session", common.Fields{"id": record.ID, "state": record.State, "steps": record.Steps()})
	fmt.Fprintln(cmd.ErrOrStderr(), cli.FormatSuccess("Saved play session "+record.ID))
	return nil
}

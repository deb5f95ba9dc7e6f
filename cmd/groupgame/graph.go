package main

import (
	"encoding/json"
	"fmt"

	"github.com/Veraticus/groupgame/internal/cli"
	"github.com/spf13/cobra"
)

func graphCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "graph FILE",
		Short: "Show the positions and moves of a game graph",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := applyFlags(cmd); err != nil {
				return err
			}

			g, err := loadGraph(cmd.Context(), cmd.ErrOrStderr(), args[0])
			if err != nil {
				return err
			}

			asJSON, _ := cmd.Flags().GetBool("json")
			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				if err := enc.Encode(g); err != nil {
					return fmt.Errorf("failed to encode graph: %w", err)
				}
				return nil
			}

			return cli.RenderGraph(cmd.OutOrStdout(), args[0], g)
		},
	}

	cmd.Flags().Bool("json", false, "print the cleaned graph document instead")
	cmd.Flags().Bool("wait", false, "wait for the graph to be written")

	return cmd
}

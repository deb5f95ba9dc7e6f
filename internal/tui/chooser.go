// Package tui provides a bubbletea front end for interactive play.
package tui

import (
	"context"
	"errors"
	"fmt"

	"github.com/Veraticus/groupgame/internal/game"
	"github.com/Veraticus/groupgame/internal/model"
	tea "github.com/charmbracelet/bubbletea"
)

// Ensure we implement the interface.
var _ game.Chooser = (*Chooser)(nil)

// Chooser implements game.Chooser with a filterable list. Each call runs its
// own short-lived bubbletea program.
type Chooser struct {
	config Config
}

// New creates a TUI chooser that can replace the CLI prompter.
func New(opts ...Option) *Chooser {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	return &Chooser{config: cfg}
}

// Choose implements game.Chooser.
func (c *Chooser) Choose(ctx context.Context, prompt game.Prompt, options []model.Option) (int, bool, error) {
	if err := ctx.Err(); err != nil {
		return 0, false, err
	}
	if len(options) == 0 {
		return 0, false, nil
	}

	progOpts := []tea.ProgramOption{tea.WithContext(ctx)}
	if c.config.Input != nil {
		progOpts = append(progOpts, tea.WithInput(c.config.Input))
	}
	if c.config.Output != nil {
		progOpts = append(progOpts, tea.WithOutput(c.config.Output))
	}
	if c.config.AltScreen {
		progOpts = append(progOpts, tea.WithAltScreen())
	}

	final, err := tea.NewProgram(newChooserModel(prompt, options, c.config), progOpts...).Run()
	if ctxErr := ctx.Err(); ctxErr != nil {
		return 0, false, ctxErr
	}
	if err != nil {
		return 0, false, fmt.Errorf("failed to run TUI: %w", err)
	}

	m, ok := final.(chooserModel)
	if !ok {
		return 0, false, errors.New("unexpected TUI model")
	}
	id, chosen := m.Result()
	return id, chosen, nil
}

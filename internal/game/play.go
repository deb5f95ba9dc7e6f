package game

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/Veraticus/groupgame/internal/graph"
	"github.com/Veraticus/groupgame/internal/model"
)

// Prompt describes what a chooser is being asked.
type Prompt struct {
	Err     error
	Current *model.Option
	Title   string
	Message string
	Step    int
}

// Chooser asks the player to pick one of several options. It returns the
// chosen id, or ok == false when the player declines to choose.
type Chooser interface {
	Choose(ctx context.Context, prompt Prompt, options []model.Option) (id int, ok bool, err error)
}

// ChooserFunc adapts a function to the Chooser interface.
type ChooserFunc func(ctx context.Context, prompt Prompt, options []model.Option) (int, bool, error)

// Choose calls f.
func (f ChooserFunc) Choose(ctx context.Context, prompt Prompt, options []model.Option) (int, bool, error) {
	return f(ctx, prompt, options)
}

// Outcome summarises a finished play-through.
type Outcome struct {
	State            model.SessionState
	Path             []int
	Start            int
	Final            int
	Started          bool
	StepLimitReached bool
}

// Steps returns the number of moves made.
func (o *Outcome) Steps() int {
	if len(o.Path) == 0 {
		return 0
	}
	return len(o.Path) - 1
}

// Play lets the chooser pick a start position and then moves through the
// graph until a terminal position is reached or the chooser declines. An
// invalid pick is reported back to the chooser and asked again.
func Play(ctx context.Context, g *graph.Graph, chooser Chooser, opts ...Option) (*Outcome, error) {
	if g == nil {
		return nil, errors.New("graph is required")
	}
	if chooser == nil {
		return nil, errors.New("chooser is required")
	}
	if g.Len() == 0 {
		return nil, ErrEmptyGraph
	}

	if cycles := g.Cycles(); len(cycles) > 0 {
		slog.Warn("Game graph contains cycles, play may not terminate",
			"cycles", len(cycles),
			"first_cycle", cycles[0])
	}

	session, err := chooseStart(ctx, g, chooser, opts)
	if err != nil {
		if isCancellation(err) {
			slog.Info("Play interrupted before a start position was chosen")
			return &Outcome{State: model.StateCancelled}, nil
		}
		return nil, err
	}
	if session == nil {
		slog.Info("Play cancelled before a start position was chosen")
		return &Outcome{State: model.StateCancelled}, nil
	}

	outcome := &Outcome{Started: true, Start: session.Start()}

	var lastErr error
	for session.State() == model.StateActive {
		if session.StepLimitReached() {
			slog.Warn("Step limit reached, ending play", "steps", session.Steps())
			outcome.StepLimitReached = true
			_ = session.Cancel()
			break
		}

		current := model.Option{ID: session.Current(), Description: session.Description()}
		prompt := Prompt{
			Title:   "Choose the next position",
			Message: fmt.Sprintf("You are at position %d: %s", current.ID, current.Description),
			Current: &current,
			Step:    session.Steps() + 1,
			Err:     lastErr,
		}

		id, ok, chooseErr := chooser.Choose(ctx, prompt, session.Options())
		if chooseErr != nil {
			_ = session.Cancel()
			if isCancellation(chooseErr) {
				slog.Info("Play interrupted", "position", session.Current())
				break
			}
			return nil, fmt.Errorf("failed to choose next position: %w", chooseErr)
		}
		if !ok {
			_ = session.Cancel()
			break
		}

		lastErr = session.Advance(id)
		if lastErr != nil && !errors.Is(lastErr, ErrInvalidSelection) {
			return nil, lastErr
		}
		if lastErr != nil {
			slog.Debug("Rejected move", "error", lastErr)
		}
	}

	outcome.State = session.State()
	outcome.Final = session.Current()
	outcome.Path = session.Path()

	slog.Info("Play finished",
		"state", outcome.State,
		"start", outcome.Start,
		"final", outcome.Final,
		"steps", outcome.Steps())

	return outcome, nil
}

// chooseStart asks for a start position until a valid one is picked. A nil
// session without error means the chooser declined.
func chooseStart(ctx context.Context, g *graph.Graph, chooser Chooser, opts []Option) (*Session, error) {
	var lastErr error
	for {
		prompt := Prompt{
			Title:   "Choose a start position",
			Message: "Choose the position to start from:",
			Err:     lastErr,
		}

		id, ok, err := chooser.Choose(ctx, prompt, g.Options())
		if err != nil {
			return nil, fmt.Errorf("failed to choose start position: %w", err)
		}
		if !ok {
			return nil, nil //nolint:nilnil // Declining is not an error
		}

		session, err := NewSession(g, id, opts...)
		if err == nil {
			return session, nil
		}
		if !errors.Is(err, graph.ErrNodeNotFound) {
			return nil, err
		}
		lastErr = err
	}
}

func isCancellation(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}

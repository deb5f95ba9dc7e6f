package game

import (
	"context"
	"errors"
	"testing"

	"github.com/Veraticus/groupgame/internal/graph"
	"github.com/Veraticus/groupgame/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type answer struct {
	err error
	id  int
	ok  bool
}

func pick(id int) answer { return answer{id: id, ok: true} }

var decline = answer{}

// scriptedChooser replays answers in order and records every prompt it saw.
type scriptedChooser struct {
	t       *testing.T
	answers []answer
	prompts []Prompt
	options [][]model.Option
}

func (s *scriptedChooser) Choose(_ context.Context, prompt Prompt, options []model.Option) (int, bool, error) {
	s.prompts = append(s.prompts, prompt)
	s.options = append(s.options, options)
	if len(s.answers) == 0 {
		s.t.Fatalf("chooser asked more often than scripted (prompt %q)", prompt.Title)
	}
	next := s.answers[0]
	s.answers = s.answers[1:]
	return next.id, next.ok, next.err
}

func TestPlay(t *testing.T) {
	tests := []struct {
		name       string
		graph      func(*testing.T) *graph.Graph
		answers    []answer
		opts       []Option
		wantState  model.SessionState
		wantPath   []int
		wantAsked  int
		wantLimit  bool
		wantPlayed bool
	}{
		{
			name:       "walk to a terminal position",
			graph:      c6Graph,
			answers:    []answer{pick(1), pick(2)},
			wantState:  model.StateTerminal,
			wantPath:   []int{1, 2},
			wantAsked:  2,
			wantPlayed: true,
		},
		{
			name:       "start at a terminal position",
			graph:      c6Graph,
			answers:    []answer{pick(3)},
			wantState:  model.StateTerminal,
			wantPath:   []int{3},
			wantAsked:  1,
			wantPlayed: true,
		},
		{
			name:      "decline the start",
			graph:     c6Graph,
			answers:   []answer{decline},
			wantState: model.StateCancelled,
			wantAsked: 1,
		},
		{
			name:       "decline mid game",
			graph:      chainGraph,
			answers:    []answer{pick(1), pick(2), decline},
			wantState:  model.StateCancelled,
			wantPath:   []int{1, 2},
			wantAsked:  3,
			wantPlayed: true,
		},
		{
			name:       "unknown start is asked again",
			graph:      c6Graph,
			answers:    []answer{pick(99), pick(1), pick(3)},
			wantState:  model.StateTerminal,
			wantPath:   []int{1, 3},
			wantAsked:  3,
			wantPlayed: true,
		},
		{
			name:       "illegal move is asked again",
			graph:      chainGraph,
			answers:    []answer{pick(1), pick(3), pick(4)},
			wantState:  model.StateTerminal,
			wantPath:   []int{1, 4},
			wantAsked:  3,
			wantPlayed: true,
		},
		{
			name:       "step limit on a cycle",
			graph:      loopGraph,
			answers:    []answer{pick(1), pick(2), pick(1)},
			opts:       []Option{WithMaxSteps(2)},
			wantState:  model.StateCancelled,
			wantPath:   []int{1, 2, 1},
			wantAsked:  3,
			wantLimit:  true,
			wantPlayed: true,
		},
		{
			name:       "interrupted while choosing",
			graph:      chainGraph,
			answers:    []answer{pick(1), {err: context.Canceled}},
			wantState:  model.StateCancelled,
			wantPath:   []int{1},
			wantAsked:  2,
			wantPlayed: true,
		},
		{
			name:      "interrupted before the start",
			graph:     chainGraph,
			answers:   []answer{{err: context.Canceled}},
			wantState: model.StateCancelled,
			wantAsked: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			chooser := &scriptedChooser{t: t, answers: tt.answers}

			outcome, err := Play(context.Background(), tt.graph(t), chooser, tt.opts...)
			require.NoError(t, err)
			require.NotNil(t, outcome)

			assert.Equal(t, tt.wantState, outcome.State)
			assert.Equal(t, tt.wantPath, outcome.Path)
			assert.Equal(t, tt.wantLimit, outcome.StepLimitReached)
			assert.Equal(t, tt.wantPlayed, outcome.Started)
			assert.Len(t, chooser.prompts, tt.wantAsked)
			assert.Empty(t, chooser.answers, "unused answers")

			if tt.wantPlayed {
				assert.Equal(t, tt.wantPath[0], outcome.Start)
				assert.Equal(t, tt.wantPath[len(tt.wantPath)-1], outcome.Final)
				assert.Equal(t, len(tt.wantPath)-1, outcome.Steps())
			} else {
				assert.Zero(t, outcome.Steps())
			}
		})
	}
}

func TestPlay_PromptsCarryContext(t *testing.T) {
	chooser := &scriptedChooser{t: t, answers: []answer{pick(42), pick(1), pick(3), pick(2), pick(3), pick(4)}}

	outcome, err := Play(context.Background(), chainGraph(t), chooser)
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2, 3, 4}, outcome.Path)

	require.Len(t, chooser.prompts, 6)

	// Start prompts offer every node.
	assert.Len(t, chooser.options[0], 4)
	assert.Nil(t, chooser.prompts[0].Err)
	assert.Nil(t, chooser.prompts[0].Current)
	assert.ErrorIs(t, chooser.prompts[1].Err, graph.ErrNodeNotFound)

	// Move prompts offer the children in edge order.
	assert.Equal(t, []model.Option{{ID: 2, Description: "A4"}, {ID: 4, Description: "C1"}}, chooser.options[2])
	require.NotNil(t, chooser.prompts[2].Current)
	assert.Equal(t, 1, chooser.prompts[2].Current.ID)
	assert.Equal(t, 1, chooser.prompts[2].Step)
	assert.Contains(t, chooser.prompts[2].Message, "S4")

	// 3 is not a child of 1, so the same options come back with the error.
	assert.ErrorIs(t, chooser.prompts[3].Err, ErrInvalidSelection)
	assert.Equal(t, chooser.options[2], chooser.options[3])
	assert.Equal(t, 1, chooser.prompts[3].Step)

	assert.Nil(t, chooser.prompts[4].Err)
	assert.Equal(t, 2, chooser.prompts[4].Step)
}

func TestPlay_Errors(t *testing.T) {
	boom := errors.New("terminal went away")

	t.Run("empty graph", func(t *testing.T) {
		empty := mustGraph(t, nil, nil)
		chooser := &scriptedChooser{t: t}
		_, err := Play(context.Background(), empty, chooser)
		assert.ErrorIs(t, err, ErrEmptyGraph)
		assert.Empty(t, chooser.prompts)
	})

	t.Run("nil graph", func(t *testing.T) {
		_, err := Play(context.Background(), nil, &scriptedChooser{t: t})
		assert.Error(t, err)
	})

	t.Run("nil chooser", func(t *testing.T) {
		_, err := Play(context.Background(), c6Graph(t), nil)
		assert.Error(t, err)
	})

	t.Run("chooser fails at the start", func(t *testing.T) {
		chooser := &scriptedChooser{t: t, answers: []answer{{err: boom}}}
		_, err := Play(context.Background(), c6Graph(t), chooser)
		assert.ErrorIs(t, err, boom)
	})

	t.Run("chooser fails mid game", func(t *testing.T) {
		chooser := &scriptedChooser{t: t, answers: []answer{pick(1), {err: boom}}}
		_, err := Play(context.Background(), chainGraph(t), chooser)
		assert.ErrorIs(t, err, boom)
	})
}

func TestChooserFunc(t *testing.T) {
	var seen []model.Option
	chooser := ChooserFunc(func(_ context.Context, _ Prompt, options []model.Option) (int, bool, error) {
		seen = options
		return options[len(options)-1].ID, true, nil
	})

	outcome, err := Play(context.Background(), c6Graph(t), chooser)
	require.NoError(t, err)

	// Always taking the last option: start at 3, which has no moves.
	assert.Equal(t, model.StateTerminal, outcome.State)
	assert.Equal(t, []int{3}, outcome.Path)
	assert.Len(t, seen, 3)
}

package cli

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/Veraticus/groupgame/internal/game"
	"github.com/Veraticus/groupgame/internal/graph"
	"github.com/Veraticus/groupgame/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var c6Options = []model.Option{{ID: 2, Description: "C3"}, {ID: 3, Description: "C2"}}

func TestPrompter_Choose(t *testing.T) {
	tests := []struct {
		name       string
		input      string
		wantID     int
		wantOK     bool
		wantOutput []string
	}{
		{
			name:       "picks an id",
			input:      "3\n",
			wantID:     3,
			wantOK:     true,
			wantOutput: []string{"Choose the next position", "C3", "C2", "[2]", "[3]"},
		},
		{
			name:   "surrounding whitespace",
			input:  "  2  \n",
			wantID: 2,
			wantOK: true,
		},
		{
			name:   "id not on offer is returned as is",
			input:  "17\n",
			wantID: 17,
			wantOK: true,
		},
		{
			name:       "text then id",
			input:      "C3\n2\n",
			wantID:     2,
			wantOK:     true,
			wantOutput: []string{`"C3" is not a position id`},
		},
		{
			name:   "blank lines are ignored",
			input:  "\n\n3\n",
			wantID: 3,
			wantOK: true,
		},
		{
			name:  "quit",
			input: "q\n",
		},
		{
			name:  "quit spelled out",
			input: "QUIT\n",
		},
		{
			name:  "end of input",
			input: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			p := NewCLIPrompter(strings.NewReader(tt.input), &out)

			prompt := game.Prompt{Title: "Choose the next position", Message: "You are at position 1: C6", Step: 1}
			id, ok, err := p.Choose(context.Background(), prompt, c6Options)
			require.NoError(t, err)

			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.wantID, id)
			for _, want := range tt.wantOutput {
				assert.Contains(t, out.String(), want)
			}
		})
	}
}

func TestPrompter_ShowsPreviousError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{
			name: "illegal move",
			err:  &game.InvalidSelectionError{Current: 1, Chosen: 4, Allowed: []int{2, 3}},
			want: "4 is not a legal move from 1",
		},
		{
			name: "unknown position",
			err:  &graph.NodeNotFoundError{ID: 99},
			want: "There is no position 99",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			p := NewCLIPrompter(strings.NewReader("2\n"), &out)

			_, _, err := p.Choose(context.Background(), game.Prompt{Title: "Again", Err: tt.err}, c6Options)
			require.NoError(t, err)
			assert.Contains(t, out.String(), tt.want)
		})
	}
}

func TestPrompter_ContextCancellation(t *testing.T) {
	t.Run("already canceled", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		p := NewCLIPrompter(strings.NewReader("2\n"), io.Discard)
		_, ok, err := p.Choose(ctx, game.Prompt{}, c6Options)
		assert.False(t, ok)
		assert.ErrorIs(t, err, context.Canceled)
	})

	t.Run("canceled while waiting for input", func(t *testing.T) {
		pr, pw := io.Pipe()
		defer func() { _ = pw.Close() }()

		ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
		defer cancel()

		p := NewCLIPrompter(pr, io.Discard)
		_, ok, err := p.Choose(ctx, game.Prompt{}, c6Options)
		assert.False(t, ok)
		assert.ErrorIs(t, err, context.DeadlineExceeded)
	})
}

func TestPrompter_PlaysAGame(t *testing.T) {
	g, err := graph.New(
		[]model.Node{{ID: 1, Description: "C6"}, {ID: 2, Description: "C3"}, {ID: 3, Description: "C2"}},
		[]model.Edge{{From: 1, To: 2}, {From: 1, To: 3}},
	)
	require.NoError(t, err)

	var out bytes.Buffer
	p := NewCLIPrompter(strings.NewReader("7\n1\n1\n3\n"), &out).WithStepLimit(5)

	outcome, err := game.Play(context.Background(), g, p)
	p.Finish()
	require.NoError(t, err)

	assert.Equal(t, model.StateTerminal, outcome.State)
	assert.Equal(t, []int{1, 3}, outcome.Path)
	assert.Contains(t, out.String(), "There is no position 7")
	assert.Contains(t, out.String(), "1 is not a legal move from 1")
	assert.Contains(t, out.String(), "Moves")
}

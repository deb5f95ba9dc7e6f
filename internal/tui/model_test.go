package tui

import (
	"errors"
	"testing"

	"github.com/Veraticus/groupgame/internal/game"
	"github.com/Veraticus/groupgame/internal/model"
	tuitesting "github.com/Veraticus/groupgame/internal/tui/testing"
	"github.com/Veraticus/groupgame/internal/tui/themes"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testOptions = []model.Option{
	{ID: 2, Description: "C3"},
	{ID: 3, Description: "C2"},
	{ID: 5, Description: "C1"},
}

func newTestModel(prompt game.Prompt) chooserModel {
	return newChooserModel(prompt, testOptions, defaultConfig())
}

// press feeds key messages to m and reports whether the last one quit.
func press(t *testing.T, m chooserModel, keys ...tea.KeyMsg) (chooserModel, bool) {
	t.Helper()
	quit := false
	for _, k := range keys {
		updated, cmd := m.Update(k)
		var ok bool
		m, ok = updated.(chooserModel)
		require.True(t, ok)
		quit = false
		if cmd != nil {
			_, quit = cmd().(tea.QuitMsg)
		}
	}
	return m, quit
}

func TestChooserModel_Keys(t *testing.T) {
	tests := []struct {
		name     string
		keys     []tea.KeyMsg
		wantID   int
		wantOK   bool
		wantQuit bool
	}{
		{
			name:     "enter picks the first option",
			keys:     tuitesting.Keys("enter"),
			wantID:   2,
			wantOK:   true,
			wantQuit: true,
		},
		{
			name:     "move down then enter",
			keys:     tuitesting.Keys("down", "down", "enter"),
			wantID:   5,
			wantOK:   true,
			wantQuit: true,
		},
		{
			name:     "down and back up",
			keys:     tuitesting.Keys("down", "up", "enter"),
			wantID:   2,
			wantOK:   true,
			wantQuit: true,
		},
		{
			name:     "vim keys move the cursor",
			keys:     tuitesting.Keys("j", "enter"),
			wantID:   3,
			wantOK:   true,
			wantQuit: true,
		},
		{
			name:     "escape gives up",
			keys:     tuitesting.Keys("esc"),
			wantQuit: true,
		},
		{
			name:     "q gives up",
			keys:     tuitesting.Keys("down", "q"),
			wantQuit: true,
		},
		{
			name:     "ctrl+c gives up",
			keys:     tuitesting.Keys("ctrl+c"),
			wantQuit: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, quit := press(t, newTestModel(game.Prompt{Title: "Choose"}), tt.keys...)

			assert.Equal(t, tt.wantQuit, quit)
			id, ok := m.Result()
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.wantID, id)
		})
	}
}

func TestChooserModel_View(t *testing.T) {
	prompt := game.Prompt{
		Title:   "Choose the next position",
		Message: "You are at position 1: C6",
		Step:    2,
		Err:     errors.New("9 is not a legal move"),
	}
	m := newTestModel(prompt)

	updated, _ := m.Update(tuitesting.Resize(100, 30))
	m = updated.(chooserModel)

	view := m.View()
	assert.Contains(t, view, "Choose the next position")
	assert.Contains(t, view, "move 2")
	assert.Contains(t, view, "You are at position 1: C6")
	assert.Contains(t, view, "9 is not a legal move")
	assert.Contains(t, view, "C3")
	assert.Contains(t, view, "position 3")

	m, _ = press(t, m, tuitesting.Key("enter"))
	assert.Empty(t, m.View())
}

func TestOptionItem(t *testing.T) {
	item := optionItem{option: model.Option{ID: 12, Description: "DirectProduct(C2, C2)"}}
	assert.Equal(t, "DirectProduct(C2, C2)", item.Title())
	assert.Equal(t, "position 12", item.Description())
	assert.Contains(t, item.FilterValue(), "12")
	assert.Contains(t, item.FilterValue(), "DirectProduct")
}

func TestListHeight(t *testing.T) {
	assert.Equal(t, 18, listHeight(20, game.Prompt{}))
	assert.Equal(t, 16, listHeight(20, game.Prompt{Message: "m", Err: errors.New("e")}))
	assert.Equal(t, 3, listHeight(2, game.Prompt{}))
}

func TestGetTheme(t *testing.T) {
	assert.Equal(t, themes.CatppuccinMocha.Primary, themes.GetTheme("catppuccin-mocha").Primary)
	assert.Equal(t, themes.Default.Primary, themes.GetTheme("unknown").Primary)
}

package tui

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/Veraticus/groupgame/internal/game"
	"github.com/Veraticus/groupgame/internal/model"
	"github.com/Veraticus/groupgame/internal/tui/themes"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
)

// optionItem adapts a model.Option to list.DefaultItem.
type optionItem struct {
	option model.Option
}

func (i optionItem) Title() string       { return i.option.Description }
func (i optionItem) Description() string { return "position " + strconv.Itoa(i.option.ID) }
func (i optionItem) FilterValue() string {
	return i.option.Description + " " + strconv.Itoa(i.option.ID)
}

// chooserModel asks for one option and quits.
type chooserModel struct {
	theme  themes.Theme
	prompt game.Prompt
	keys   KeyMap
	list   list.Model
	chosen model.Option
	ok     bool
	done   bool
}

func newChooserModel(prompt game.Prompt, options []model.Option, cfg Config) chooserModel {
	items := make([]list.Item, len(options))
	for i, opt := range options {
		items[i] = optionItem{option: opt}
	}

	keys := DefaultKeyMap()

	delegate := list.NewDefaultDelegate()
	delegate.Styles.SelectedTitle = delegate.Styles.SelectedTitle.
		Foreground(cfg.Theme.Primary).
		BorderForeground(cfg.Theme.Primary)
	delegate.Styles.SelectedDesc = delegate.Styles.SelectedDesc.
		Foreground(cfg.Theme.Muted).
		BorderForeground(cfg.Theme.Primary)

	l := list.New(items, delegate, cfg.Width, listHeight(cfg.Height, prompt))
	l.SetShowTitle(false)
	l.SetStatusBarItemName("position", "positions")
	l.DisableQuitKeybindings()
	l.AdditionalShortHelpKeys = keys.ShortHelp
	l.AdditionalFullHelpKeys = func() []key.Binding { return slices.Concat(keys.FullHelp()...) }

	return chooserModel{
		theme:  cfg.Theme,
		prompt: prompt,
		keys:   keys,
		list:   l,
	}
}

// headerLines is the space taken above the list.
func headerLines(prompt game.Prompt) int {
	n := 2
	if prompt.Message != "" {
		n++
	}
	if prompt.Err != nil {
		n++
	}
	return n
}

func listHeight(height int, prompt game.Prompt) int {
	return max(height-headerLines(prompt), 3)
}

// Init initializes the model.
func (m chooserModel) Init() tea.Cmd {
	return nil
}

// Update handles messages and updates the model.
func (m chooserModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.list.SetSize(msg.Width, listHeight(msg.Height, m.prompt))
		return m, nil

	case tea.KeyMsg:
		if key.Matches(msg, m.keys.ForceQuit) {
			m.done = true
			return m, tea.Quit
		}
		if m.list.FilterState() == list.Filtering {
			break
		}
		switch {
		case key.Matches(msg, m.keys.Select):
			item, ok := m.list.SelectedItem().(optionItem)
			if !ok {
				return m, nil
			}
			m.chosen = item.option
			m.ok = true
			m.done = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Cancel):
			if m.list.FilterState() == list.FilterApplied {
				m.list.ResetFilter()
				return m, nil
			}
			m.done = true
			return m, tea.Quit
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

// View renders the model.
func (m chooserModel) View() string {
	if m.done {
		return ""
	}

	var b strings.Builder
	b.WriteString(m.theme.Title.Render(m.prompt.Title))
	if m.prompt.Step > 0 {
		b.WriteString(m.theme.Subtitle.Render(fmt.Sprintf("  move %d", m.prompt.Step)))
	}
	b.WriteString("\n")
	if m.prompt.Message != "" {
		b.WriteString(m.theme.Normal.Render(m.prompt.Message))
		b.WriteString("\n")
	}
	if m.prompt.Err != nil {
		b.WriteString(m.theme.StatusError.Render(m.prompt.Err.Error()))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(m.list.View())
	return b.String()
}

// Result returns the chosen id, or ok == false if nothing was chosen.
func (m chooserModel) Result() (int, bool) {
	return m.chosen.ID, m.ok
}

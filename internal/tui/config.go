package tui

import (
	"io"

	"github.com/Veraticus/groupgame/internal/tui/themes"
)

// Config holds TUI configuration.
type Config struct {
	Input     io.Reader
	Output    io.Writer
	Theme     themes.Theme
	Width     int
	Height    int
	AltScreen bool
}

// Option is a functional option for configuring the TUI.
type Option func(*Config)

func defaultConfig() Config {
	return Config{
		Theme:  themes.Default,
		Width:  80,
		Height: 20,
	}
}

// WithTheme sets the color theme.
func WithTheme(theme themes.Theme) Option {
	return func(c *Config) {
		c.Theme = theme
	}
}

// WithInput reads key presses from r instead of the terminal.
func WithInput(r io.Reader) Option {
	return func(c *Config) {
		c.Input = r
	}
}

// WithOutput renders to w instead of the terminal.
func WithOutput(w io.Writer) Option {
	return func(c *Config) {
		c.Output = w
	}
}

// WithAltScreen runs each prompt in the alternate screen buffer.
func WithAltScreen(enabled bool) Option {
	return func(c *Config) {
		c.AltScreen = enabled
	}
}

// WithSize sets the initial size used until the terminal reports its own.
func WithSize(width, height int) Option {
	return func(c *Config) {
		c.Width = width
		c.Height = height
	}
}

package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)
	t.Setenv("GROUPGAME_TEST_DIR", "/data/gap")

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "empty", input: "", want: ""},
		{name: "tilde", input: "~", want: home},
		{name: "tilde prefix", input: "~/games/output.txt", want: filepath.Join(home, "games/output.txt")},
		{name: "env var", input: "$GROUPGAME_TEST_DIR/output.txt", want: "/data/gap/output.txt"},
		{name: "plain", input: "/tmp/output.txt", want: "/tmp/output.txt"},
		{name: "tilde inside", input: "/tmp/~/x", want: "/tmp/~/x"},
		{name: "tilde user form is left alone", input: "~gap/output.txt", want: "~gap/output.txt"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExpandPath(tt.input))
		})
	}
}

func TestConfigDir(t *testing.T) {
	t.Run("xdg", func(t *testing.T) {
		t.Setenv("XDG_CONFIG_HOME", "/etc/xdg-test")
		dir, err := ConfigDir()
		require.NoError(t, err)
		assert.Equal(t, "/etc/xdg-test/groupgame", dir)
	})

	t.Run("home", func(t *testing.T) {
		t.Setenv("XDG_CONFIG_HOME", "")
		home, err := os.UserHomeDir()
		require.NoError(t, err)

		dir, err := ConfigDir()
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(home, ".config", "groupgame"), dir)
	})
}

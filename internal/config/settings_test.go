package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/Veraticus/groupgame/internal/common"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newViper(values map[string]any) *viper.Viper {
	v := viper.New()
	SetDefaults(v)
	for k, val := range values {
		v.Set(k, val)
	}
	return v
}

func TestLoad_Defaults(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	s, err := Load(newViper(nil))
	require.NoError(t, err)

	assert.Equal(t, "info", s.Logging.Level)
	assert.Equal(t, "console", s.Logging.Format)
	assert.Equal(t, filepath.Join(home, ".local/share/groupgame/groupgame.db"), s.Database.Path)
	assert.Equal(t, DefaultArtifactsWait, s.Artifacts.Timeout)
	assert.False(t, s.Artifacts.Wait)
	assert.Equal(t, 0, s.Navigation.MaxSteps)
	assert.False(t, s.Navigation.TUI)
	assert.Equal(t, "text", s.Report.Format)
}

func TestLoad_Overrides(t *testing.T) {
	s, err := Load(newViper(map[string]any{
		KeyLogLevel:         "DEBUG",
		KeyLogFormat:        "json",
		KeyDatabasePath:     "/tmp/games.db",
		KeyArtifactsDir:     "/srv/gap",
		KeyArtifactsWait:    true,
		KeyArtifactsTimeout: "90s",
		KeyNavigationSteps:  25,
		KeyNavigationTUI:    true,
		KeyReportFormat:     "yaml",
	}))
	require.NoError(t, err)

	assert.Equal(t, "debug", s.Logging.Level)
	assert.Equal(t, "json", s.Logging.Format)
	assert.Equal(t, "/tmp/games.db", s.Database.Path)
	assert.Equal(t, "/srv/gap", s.Artifacts.Dir)
	assert.True(t, s.Artifacts.Wait)
	assert.Equal(t, 90*time.Second, s.Artifacts.Timeout)
	assert.Equal(t, 25, s.Navigation.MaxSteps)
	assert.True(t, s.Navigation.TUI)
	assert.Equal(t, "yaml", s.Report.Format)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		values  map[string]any
		wantMsg string
	}{
		{name: "log format", values: map[string]any{KeyLogFormat: "xml"}, wantMsg: "Logging.Format must be one of"},
		{name: "log level", values: map[string]any{KeyLogLevel: "loud"}, wantMsg: "Logging.Level must be one of"},
		{name: "report format", values: map[string]any{KeyReportFormat: "csv"}, wantMsg: "Report.Format must be one of"},
		{name: "negative steps", values: map[string]any{KeyNavigationSteps: -1}, wantMsg: "Navigation.MaxSteps failed gte=0"},
		{name: "empty database", values: map[string]any{KeyDatabasePath: ""}, wantMsg: "Database.Path is required"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := Load(newViper(tt.values))
			assert.Nil(t, s)
			require.Error(t, err)
			assert.ErrorIs(t, err, common.ErrInvalidConfig)
			assert.Contains(t, err.Error(), tt.wantMsg)
		})
	}
}

func TestSettings_ArtifactPath(t *testing.T) {
	withDir := &Settings{Artifacts: ArtifactSettings{Dir: "/srv/gap"}}
	withoutDir := &Settings{}

	assert.Equal(t, "/srv/gap/output.txt", withDir.ArtifactPath("output.txt"))
	assert.Equal(t, "/srv/gap/out/group_graph.json", withDir.ArtifactPath("out/group_graph.json"))
	assert.Equal(t, "/abs/output.txt", withDir.ArtifactPath("/abs/output.txt"))
	assert.Equal(t, "output.txt", withoutDir.ArtifactPath("output.txt"))
	assert.Equal(t, "", withDir.ArtifactPath(""))
}

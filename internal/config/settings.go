package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/Veraticus/groupgame/internal/common"
	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// Configuration keys.
const (
	KeyLogLevel          = "logging.level"
	KeyLogFormat         = "logging.format"
	KeyDatabasePath      = "database.path"
	KeyArtifactsDir      = "artifacts.dir"
	KeyArtifactsWait     = "artifacts.wait"
	KeyArtifactsTimeout  = "artifacts.timeout"
	KeyNavigationSteps   = "navigation.max_steps"
	KeyNavigationTUI     = "navigation.tui"
	KeyReportFormat      = "report.format"
	DefaultDatabasePath  = "~/.local/share/groupgame/groupgame.db"
	DefaultArtifactsWait = 15 * time.Minute
)

// Settings is the resolved application configuration.
type Settings struct {
	Logging    LoggingSettings
	Database   DatabaseSettings
	Artifacts  ArtifactSettings
	Report     ReportSettings
	Navigation NavigationSettings
}

// LoggingSettings configures slog.
type LoggingSettings struct {
	Level  string `validate:"omitempty,oneof=debug info warn warning error"`
	Format string `validate:"oneof=console json"`
}

// DatabaseSettings locates the history database.
type DatabaseSettings struct {
	Path string `validate:"required"`
}

// ArtifactSettings describes where the algebra engine leaves its output.
type ArtifactSettings struct {
	Dir     string
	Timeout time.Duration `validate:"gte=0"`
	Wait    bool
}

// ReportSettings configures report output.
type ReportSettings struct {
	Format string `validate:"oneof=text json yaml"`
}

// NavigationSettings configures interactive play.
type NavigationSettings struct {
	MaxSteps int `validate:"gte=0"`
	TUI      bool
}

var validate = validator.New()

// SetDefaults registers default values on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault(KeyLogLevel, "info")
	v.SetDefault(KeyLogFormat, "console")
	v.SetDefault(KeyDatabasePath, DefaultDatabasePath)
	v.SetDefault(KeyArtifactsTimeout, DefaultArtifactsWait)
	v.SetDefault(KeyArtifactsWait, false)
	v.SetDefault(KeyNavigationSteps, 0)
	v.SetDefault(KeyNavigationTUI, false)
	v.SetDefault(KeyReportFormat, "text")
}

// Load reads Settings from v and validates them. Paths are expanded with
// ExpandPath.
func Load(v *viper.Viper) (*Settings, error) {
	s := &Settings{
		Logging: LoggingSettings{
			Level:  strings.ToLower(v.GetString(KeyLogLevel)),
			Format: strings.ToLower(v.GetString(KeyLogFormat)),
		},
		Database: DatabaseSettings{
			Path: ExpandPath(v.GetString(KeyDatabasePath)),
		},
		Artifacts: ArtifactSettings{
			Dir:     ExpandPath(v.GetString(KeyArtifactsDir)),
			Wait:    v.GetBool(KeyArtifactsWait),
			Timeout: v.GetDuration(KeyArtifactsTimeout),
		},
		Navigation: NavigationSettings{
			MaxSteps: v.GetInt(KeyNavigationSteps),
			TUI:      v.GetBool(KeyNavigationTUI),
		},
		Report: ReportSettings{
			Format: strings.ToLower(v.GetString(KeyReportFormat)),
		},
	}

	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

// Validate checks every field against its constraints.
func (s *Settings) Validate() error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		return fmt.Errorf("%w: %w", common.ErrInvalidConfig, err)
	}

	messages := make([]string, 0, len(validationErrs))
	for _, fe := range validationErrs {
		field := strings.TrimPrefix(fe.Namespace(), "Settings.")
		switch fe.Tag() {
		case "required":
			messages = append(messages, fmt.Sprintf("%s is required", field))
		case "oneof":
			messages = append(messages, fmt.Sprintf("%s must be one of [%s], got %q", field, fe.Param(), fe.Value()))
		default:
			messages = append(messages, fmt.Sprintf("%s failed %s=%s", field, fe.Tag(), fe.Param()))
		}
	}
	return fmt.Errorf("%w: %s", common.ErrInvalidConfig, strings.Join(messages, "; "))
}

// ArtifactPath resolves name against the artifacts directory unless it is
// already absolute.
func (s *Settings) ArtifactPath(name string) string {
	name = ExpandPath(name)
	if name == "" || filepath.IsAbs(name) || s.Artifacts.Dir == "" {
		return name
	}
	return filepath.Join(s.Artifacts.Dir, name)
}

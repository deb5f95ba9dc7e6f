package report

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/Veraticus/groupgame/internal/model"
	"gopkg.in/yaml.v3"
)

// Format selects how a classification result is written.
type Format string

// Output formats.
const (
	FormatText Format = "text"
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// ErrUnknownFormat is returned for an unsupported output format.
var ErrUnknownFormat = errors.New("unknown output format")

// ParseFormat validates a format name.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatText, FormatJSON, FormatYAML:
		return f, nil
	case "":
		return FormatText, nil
	default:
		return "", fmt.Errorf("%w: %s", ErrUnknownFormat, s)
	}
}

// Document is the serialised form of a classified report.
type Document struct {
	Source string                     `json:"source,omitempty" yaml:"source,omitempty"`
	Result model.ClassificationResult `json:"result" yaml:"result"`
}

// Encode writes the documents as JSON or YAML. Plain text rendering is left to
// the terminal layer.
func Encode(w io.Writer, format Format, docs ...Document) error {
	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if len(docs) == 1 {
			return enc.Encode(docs[0])
		}
		return enc.Encode(docs)
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		defer func() { _ = enc.Close() }()
		if len(docs) == 1 {
			return enc.Encode(docs[0])
		}
		return enc.Encode(docs)
	case FormatText:
		return fmt.Errorf("%w: text output is rendered by the terminal layer", ErrUnknownFormat)
	default:
		return fmt.Errorf("%w: %s", ErrUnknownFormat, format)
	}
}

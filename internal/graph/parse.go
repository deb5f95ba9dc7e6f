package graph

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"reflect"
	"strings"

	"github.com/Veraticus/groupgame/internal/model"
	"github.com/go-playground/validator/v10"
)

var validate *validator.Validate

func init() {
	validate = validator.New(validator.WithRequiredStructEnabled())
	validate.RegisterTagNameFunc(func(field reflect.StructField) string {
		name, _, _ := strings.Cut(field.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
}

// document is the raw interchange form. Pointers distinguish a missing field
// from a zero value.
type document struct {
	Nodes []nodeDocument `json:"nodes" validate:"required,dive"`
	Edges []edgeDocument `json:"edges" validate:"required,dive"`
}

type nodeDocument struct {
	ID          *int    `json:"id" validate:"required"`
	Description *string `json:"description" validate:"required"`
}

type edgeDocument struct {
	From *int `json:"from" validate:"required"`
	To   *int `json:"to" validate:"required"`
}

// continuationReplacer removes the line continuations the algebra engine
// inserts when it wraps long output lines.
var continuationReplacer = strings.NewReplacer("\\\r\n", "", "\\\n", "")

// Sanitize strips backslash-newline continuations from raw engine output.
func Sanitize(raw string) string {
	return continuationReplacer.Replace(raw)
}

// Parse sanitizes, decodes and validates a graph document. Any failure is a
// *MalformedGraphError and no partial graph is returned.
func Parse(jsonText string) (*Graph, error) {
	var doc document
	if err := json.Unmarshal([]byte(Sanitize(jsonText)), &doc); err != nil {
		return nil, malformed(err, "invalid JSON")
	}

	if err := validate.Struct(doc); err != nil {
		return nil, malformed(formatValidationError(err), "invalid document")
	}

	nodes := make([]model.Node, 0, len(doc.Nodes))
	for _, n := range doc.Nodes {
		nodes = append(nodes, model.Node{ID: *n.ID, Description: *n.Description})
	}
	edges := make([]model.Edge, 0, len(doc.Edges))
	for _, e := range doc.Edges {
		edges = append(edges, model.Edge{From: *e.From, To: *e.To})
	}

	return New(nodes, edges)
}

// Load reads and parses a graph document from disk.
func Load(ctx context.Context, path string) (*Graph, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read graph file: %w", err)
	}

	g, err := Parse(string(content))
	if err != nil {
		return nil, err
	}

	slog.Info("Loaded game graph",
		"path", path,
		"nodes", g.Len(),
		"edges", len(g.edges),
		"terminals", len(g.Terminals()))

	return g, nil
}

// formatValidationError reports the first failing field by its JSON path.
func formatValidationError(err error) error {
	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		return err
	}

	for _, e := range validationErrs {
		field := strings.TrimPrefix(e.Namespace(), "document.")
		switch e.Tag() {
		case "required":
			return fmt.Errorf("%s: field is required", field)
		default:
			return fmt.Errorf("%s: validation failed (%s)", field, e.Tag())
		}
	}

	return err
}

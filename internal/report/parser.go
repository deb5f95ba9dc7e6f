package report

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/Veraticus/groupgame/internal/model"
)

// Parser reads group reports from files.
type Parser struct{}

// NewParser creates a new report parser.
func NewParser() *Parser {
	return &Parser{}
}

// preprocess normalises line endings before classification.
func (p *Parser) preprocess(content string) string {
	content = strings.TrimPrefix(content, "\ufeff")
	content = strings.ReplaceAll(content, "\r\n", "\n")
	return strings.ReplaceAll(content, "\r", "\n")
}

// ParseFile reads a report and classifies it. Only read errors are returned.
func (p *Parser) ParseFile(ctx context.Context, reader io.Reader) (model.ClassificationResult, error) {
	if err := ctx.Err(); err != nil {
		return model.ClassificationResult{}, err
	}

	content, err := io.ReadAll(reader)
	if err != nil {
		return model.ClassificationResult{}, fmt.Errorf("failed to read report: %w", err)
	}

	result := Classify(p.preprocess(string(content)))

	slog.Info("Parsed group report",
		"abelian_matches", result.CountAbelianMatches,
		"non_abelian_matches", result.CountNonAbelianMatches,
		"abelian_examined", result.TotalAbelianExamined,
		"non_abelian_examined", result.TotalNonAbelianExamined)

	return result, nil
}

// Package storage provides the data persistence layer for classified reports
// and play sessions.
package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Veraticus/groupgame/internal/model"
)

// Validation errors.
var (
	ErrNilContext      = errors.New("context cannot be nil")
	ErrEmptyString     = errors.New("string parameter cannot be empty")
	ErrNilParameter    = errors.New("parameter cannot be nil")
	ErrInvalidReport   = errors.New("invalid report")
	ErrInvalidSession  = errors.New("invalid play session")
	ErrInvalidSection  = errors.New("invalid report section")
	ErrInvalidStateVal = errors.New("invalid session state")
)

// validateContext ensures the context is not nil.
func validateContext(ctx context.Context) error {
	if ctx == nil {
		return ErrNilContext
	}
	return nil
}

// validateString ensures a string parameter is not empty.
func validateString(s string, paramName string) error {
	if strings.TrimSpace(s) == "" {
		return fmt.Errorf("%w: %s", ErrEmptyString, paramName)
	}
	return nil
}

// validateReport checks a report before it is stored.
func validateReport(record *model.ReportRecord) error {
	if record == nil {
		return fmt.Errorf("%w: report", ErrNilParameter)
	}
	if strings.TrimSpace(record.Source) == "" {
		return fmt.Errorf("%w: missing source", ErrInvalidReport)
	}
	if err := record.Result.Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidReport, err)
	}
	for i, line := range record.Result.AbelianLines {
		if line.Section != model.SectionAbelian {
			return fmt.Errorf("%w: abelian line %d tagged %q", ErrInvalidSection, i, line.Section)
		}
	}
	for i, line := range record.Result.NonAbelianLines {
		if line.Section != model.SectionNonAbelian {
			return fmt.Errorf("%w: non-abelian line %d tagged %q", ErrInvalidSection, i, line.Section)
		}
	}
	return nil
}

// validatePlayRecord checks a play session before it is stored.
func validatePlayRecord(record *model.PlayRecord) error {
	if record == nil {
		return fmt.Errorf("%w: play session", ErrNilParameter)
	}
	if strings.TrimSpace(record.GraphSource) == "" {
		return fmt.Errorf("%w: missing graph source", ErrInvalidSession)
	}
	switch record.State {
	case model.StateActive, model.StateTerminal, model.StateCancelled:
	default:
		return fmt.Errorf("%w: %q", ErrInvalidStateVal, record.State)
	}
	if len(record.Path) == 0 {
		return fmt.Errorf("%w: empty path", ErrInvalidSession)
	}
	if record.Path[0] != record.StartNode {
		return fmt.Errorf("%w: path starts at %d, start node is %d", ErrInvalidSession, record.Path[0], record.StartNode)
	}
	if record.Path[len(record.Path)-1] != record.FinalNode {
		return fmt.Errorf("%w: path ends at %d, final node is %d", ErrInvalidSession, record.Path[len(record.Path)-1], record.FinalNode)
	}
	return nil
}

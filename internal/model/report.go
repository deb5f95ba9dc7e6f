// Package model defines the core domain models used throughout the application.
package model

import (
	"errors"
	"fmt"
)

// Section identifies which part of a group report a line belongs to.
type Section string

// Report section constants.
const (
	SectionNone       Section = ""
	SectionAbelian    Section = "abelian"
	SectionNonAbelian Section = "non_abelian"
)

// String returns a human-readable section name.
func (s Section) String() string {
	switch s {
	case SectionAbelian:
		return "abelian"
	case SectionNonAbelian:
		return "non-abelian"
	default:
		return "none"
	}
}

// ParseSection converts a stored section name back into a Section.
func ParseSection(s string) (Section, error) {
	switch Section(s) {
	case SectionAbelian, SectionNonAbelian, SectionNone:
		return Section(s), nil
	default:
		return SectionNone, fmt.Errorf("unknown section %q", s)
	}
}

// ReportLine is a single classified line of a group report.
type ReportLine struct {
	Text    string  `json:"text" yaml:"text"`
	Section Section `json:"section" yaml:"section"`
}

// ErrCountMismatch indicates that a result's match counts disagree with its lines.
var ErrCountMismatch = errors.New("match count does not match number of lines")

// ClassificationResult is the outcome of classifying a group report.
// The match counts always equal the number of lines in their section; the
// examined totals are declared by the report itself and are independent.
type ClassificationResult struct {
	AbelianLines            []ReportLine `json:"abelian_lines" yaml:"abelian_lines"`
	NonAbelianLines         []ReportLine `json:"non_abelian_lines" yaml:"non_abelian_lines"`
	CountAbelianMatches     int          `json:"count_abelian_matches" yaml:"count_abelian_matches"`
	CountNonAbelianMatches  int          `json:"count_non_abelian_matches" yaml:"count_non_abelian_matches"`
	TotalAbelianExamined    int          `json:"total_abelian_examined" yaml:"total_abelian_examined"`
	TotalNonAbelianExamined int          `json:"total_non_abelian_examined" yaml:"total_non_abelian_examined"`
}

// Validate checks that the match counts agree with the collected lines.
func (r ClassificationResult) Validate() error {
	if r.CountAbelianMatches != len(r.AbelianLines) {
		return fmt.Errorf("%w: abelian count %d, %d lines", ErrCountMismatch, r.CountAbelianMatches, len(r.AbelianLines))
	}
	if r.CountNonAbelianMatches != len(r.NonAbelianLines) {
		return fmt.Errorf("%w: non-abelian count %d, %d lines", ErrCountMismatch, r.CountNonAbelianMatches, len(r.NonAbelianLines))
	}
	if r.TotalAbelianExamined < 0 || r.TotalNonAbelianExamined < 0 {
		return fmt.Errorf("negative examined total")
	}
	return nil
}

// Texts returns the raw text of every line in the given section.
func (r ClassificationResult) Texts(section Section) []string {
	var lines []ReportLine
	switch section {
	case SectionAbelian:
		lines = r.AbelianLines
	case SectionNonAbelian:
		lines = r.NonAbelianLines
	default:
		return nil
	}

	texts := make([]string, 0, len(lines))
	for _, line := range lines {
		texts = append(texts, line.Text)
	}
	return texts
}

// Summary renders the match counts and examined totals as plain text.
func (r ClassificationResult) Summary() string {
	return fmt.Sprintf("Groups with mex = 0:\n  Abelian: %d\n  Non-abelian: %d\n\nGroups examined:\n  Abelian: %d\n  Non-abelian: %d",
		r.CountAbelianMatches,
		r.CountNonAbelianMatches,
		r.TotalAbelianExamined,
		r.TotalNonAbelianExamined,
	)
}

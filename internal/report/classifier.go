// Package report classifies the group reports written by the algebra engine.
package report

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/Veraticus/groupgame/internal/model"
)

// Section markers. They are matched as literal, case-sensitive prefixes.
const (
	MarkerAbelian    = "=== Abelsche Gruppen"
	MarkerNonAbelian = "=== Nicht-abelsche Gruppen"
	MarkerEnd        = "Insgesamt wurden untersucht:"
)

// skipPrefixes are result headings that never carry a group.
var skipPrefixes = []string{"Ergebnis", "Result"}

// Summary lines declare how many groups of each kind were examined. Only the
// group wording is case-insensitive; the abelian pattern is tried first.
var (
	totalAbelianRegex    = regexp.MustCompile(`(?i)^-\s*(\d+)\s+(?:abelsche Gruppen|abelian groups)`)
	totalNonAbelianRegex = regexp.MustCompile(`(?i)^-\s*(\d+)\s+(?:nicht-abelsche Gruppen|non-abelian groups)`)
)

// classifier accumulates a ClassificationResult one line at a time.
type classifier struct {
	result  model.ClassificationResult
	section model.Section
}

// Classify sorts the lines of a report into abelian and non-abelian groups and
// extracts the declared examined totals. It never fails: lines it does not
// recognise are dropped so that partial reports still yield partial results.
func Classify(text string) model.ClassificationResult {
	c := classifier{}
	for _, line := range strings.Split(text, "\n") {
		c = c.step(line)
	}
	return c.finish()
}

// step consumes one raw line and returns the next accumulator state.
func (c classifier) step(raw string) classifier {
	line := strings.TrimSpace(raw)

	switch {
	case strings.HasPrefix(line, MarkerAbelian):
		c.section = model.SectionAbelian
		return c
	case strings.HasPrefix(line, MarkerNonAbelian):
		c.section = model.SectionNonAbelian
		return c
	case strings.HasPrefix(line, MarkerEnd):
		c.section = model.SectionNone
		return c
	case strings.HasPrefix(line, "-"):
		if n, ok := matchTotal(totalAbelianRegex, line); ok {
			c.result.TotalAbelianExamined = n
		} else if n, ok := matchTotal(totalNonAbelianRegex, line); ok {
			c.result.TotalNonAbelianExamined = n
		}
		return c
	case line == "" || hasSkipPrefix(line):
		return c
	}

	entry := model.ReportLine{Text: line, Section: c.section}
	switch c.section {
	case model.SectionAbelian:
		c.result.AbelianLines = append(c.result.AbelianLines, entry)
	case model.SectionNonAbelian:
		c.result.NonAbelianLines = append(c.result.NonAbelianLines, entry)
	case model.SectionNone:
		// Outside any list.
	}
	return c
}

// finish derives the match counts from the collected lines.
func (c classifier) finish() model.ClassificationResult {
	result := c.result
	if result.AbelianLines == nil {
		result.AbelianLines = []model.ReportLine{}
	}
	if result.NonAbelianLines == nil {
		result.NonAbelianLines = []model.ReportLine{}
	}
	result.CountAbelianMatches = len(result.AbelianLines)
	result.CountNonAbelianMatches = len(result.NonAbelianLines)
	return result
}

func matchTotal(re *regexp.Regexp, line string) (int, bool) {
	m := re.FindStringSubmatch(line)
	if m == nil {
		return 0, false
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return 0, false
	}
	return n, true
}

func hasSkipPrefix(line string) bool {
	for _, prefix := range skipPrefixes {
		if strings.HasPrefix(line, prefix) {
			return true
		}
	}
	return false
}

package cli

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/Veraticus/groupgame/internal/graph"
	"github.com/Veraticus/groupgame/internal/model"
	"github.com/charmbracelet/lipgloss"
)

const timeLayout = "2006-01-02 15:04"

// RenderReport writes a classified report as styled text.
func RenderReport(w io.Writer, source string, result model.ClassificationResult) error {
	var b strings.Builder

	writeSection(&b, "Abelian groups with mex = 0", result.Texts(model.SectionAbelian))
	b.WriteString("\n")
	writeSection(&b, "Non-abelian groups with mex = 0", result.Texts(model.SectionNonAbelian))
	b.WriteString("\n")
	b.WriteString(result.Summary())

	_, err := fmt.Fprintln(w, RenderBox(ReportIcon+" "+source, b.String()))
	return err
}

func writeSection(b *strings.Builder, title string, lines []string) {
	b.WriteString(BoldStyle.Render(title))
	b.WriteString("\n")
	if len(lines) == 0 {
		b.WriteString(SubtleStyle.Render("  (none)"))
		b.WriteString("\n")
		return
	}
	for _, line := range lines {
		b.WriteString("  ")
		b.WriteString(line)
		b.WriteString("\n")
	}
}

// RenderGraph writes every position with its moves, followed by the final
// positions and any cycles.
func RenderGraph(w io.Writer, source string, g *graph.Graph) error {
	var b strings.Builder

	fmt.Fprintf(&b, "%d positions\n\n", g.Len())
	for _, node := range g.Nodes() {
		children := g.ChildrenOf(node.ID)
		marker := "  "
		if len(children) == 0 {
			marker = TerminalIcon + " "
		}
		fmt.Fprintf(&b, "%s%s %s", marker, OptionIDStyle.Render(fmt.Sprintf("[%d]", node.ID)), node.Description)
		if len(children) > 0 {
			b.WriteString(SubtleStyle.Render(" → " + joinInts(children)))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	fmt.Fprintf(&b, "Final positions: %s\n", joinInts(g.Terminals()))

	if cycles := g.Cycles(); len(cycles) > 0 {
		b.WriteString(WarningStyle.Render(fmt.Sprintf("%s %d cycle(s), play may not end:", WarningIcon, len(cycles))))
		b.WriteString("\n")
		for _, c := range cycles {
			fmt.Fprintf(&b, "  %s → %d\n", joinIntsSep(c, " → "), c[0])
		}
	} else {
		b.WriteString(SuccessStyle.Render(SuccessIcon + " acyclic"))
	}

	_, err := fmt.Fprintln(w, RenderBox(GameIcon+" "+source, strings.TrimRight(b.String(), "\n")))
	return err
}

// RenderOutcome writes the result of a play-through.
func RenderOutcome(w io.Writer, state model.SessionState, path []int, describe func(int) string) error {
	var msg string
	switch state {
	case model.StateTerminal:
		final := path[len(path)-1]
		msg = FormatSuccess(fmt.Sprintf("Reached final position %d: %s after %d move(s)", final, describe(final), len(path)-1))
	case model.StateCancelled:
		if len(path) == 0 {
			msg = FormatInfo("No start position chosen")
		} else {
			msg = FormatWarning(fmt.Sprintf("Play ended at position %d after %d move(s)", path[len(path)-1], len(path)-1))
		}
	default:
		msg = FormatInfo(fmt.Sprintf("Play stopped in state %s", state))
	}

	if len(path) > 0 {
		msg += "\n" + SubtleStyle.Render("Path: "+joinIntsSep(path, " → "))
	}

	_, err := fmt.Fprintln(w, msg)
	return err
}

// RenderReportHistory writes saved reports as a table.
func RenderReportHistory(w io.Writer, records []model.ReportRecord) error {
	rows := make([][]string, 0, len(records))
	for _, r := range records {
		rows = append(rows, []string{
			shortID(r.ID),
			r.CreatedAt.Local().Format(timeLayout),
			r.Source,
			fmt.Sprintf("%d / %d", r.Result.CountAbelianMatches, r.Result.TotalAbelianExamined),
			fmt.Sprintf("%d / %d", r.Result.CountNonAbelianMatches, r.Result.TotalNonAbelianExamined),
		})
	}
	return renderTable(w, []string{"ID", "Saved", "Source", "Abelian", "Non-abelian"}, rows)
}

// RenderSessionHistory writes saved play sessions as a table.
func RenderSessionHistory(w io.Writer, records []model.PlayRecord) error {
	rows := make([][]string, 0, len(records))
	for _, r := range records {
		rows = append(rows, []string{
			shortID(r.ID),
			r.CreatedAt.Local().Format(timeLayout),
			r.GraphSource,
			string(r.State),
			strconv.Itoa(r.Steps()),
			joinIntsSep(r.Path, "→"),
		})
	}
	return renderTable(w, []string{"ID", "Played", "Graph", "State", "Moves", "Path"}, rows)
}

func renderTable(w io.Writer, headers []string, rows [][]string) error {
	if len(rows) == 0 {
		_, err := fmt.Fprintln(w, FormatInfo("Nothing saved yet"))
		return err
	}

	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = lipgloss.Width(h)
	}
	for _, row := range rows {
		for i, cell := range row {
			widths[i] = max(widths[i], lipgloss.Width(cell))
		}
	}

	cells := make([]string, len(headers))
	for i, h := range headers {
		cells[i] = lipgloss.NewStyle().Width(widths[i] + 2).Render(h)
	}
	if _, err := fmt.Fprintln(w, TableHeaderStyle.Render(lipgloss.JoinHorizontal(lipgloss.Top, cells...))); err != nil {
		return err
	}

	for _, row := range rows {
		for i, cell := range row {
			cells[i] = lipgloss.NewStyle().Width(widths[i] + 2).Render(cell)
		}
		if _, err := fmt.Fprintln(w, lipgloss.JoinHorizontal(lipgloss.Top, cells...)); err != nil {
			return err
		}
	}
	return nil
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

func joinInts(ids []int) string {
	if len(ids) == 0 {
		return "none"
	}
	return joinIntsSep(ids, ", ")
}

func joinIntsSep(ids []int, sep string) string {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = strconv.Itoa(id)
	}
	return strings.Join(parts, sep)
}

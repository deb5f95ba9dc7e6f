// Package cli provides styled terminal output using lipgloss and the line
// based chooser used for interactive play.
package cli

import (
	"github.com/charmbracelet/lipgloss"
)

// Palette. Each colour has a variant for light and dark terminals.
var (
	accentColor = lipgloss.AdaptiveColor{Light: "#5B3CC4", Dark: "#7D56F4"}
	goodColor   = lipgloss.AdaptiveColor{Light: "#0F7F77", Dark: "#4ECDC4"}
	warnColor   = lipgloss.AdaptiveColor{Light: "#9A7B00", Dark: "#FFE66D"}
	badColor    = lipgloss.AdaptiveColor{Light: "#C0392B", Dark: "#FF6B6B"}
	noteColor   = lipgloss.AdaptiveColor{Light: "#2E7D6B", Dark: "#95E1D3"}
	mutedColor  = lipgloss.AdaptiveColor{Light: "#8A8A8A", Dark: "#666666"}
	borderColor = lipgloss.AdaptiveColor{Light: "#BBBBBB", Dark: "#333333"}
)

// Styles shared by the renderers and the prompter.
var (
	SuccessStyle  = lipgloss.NewStyle().Foreground(goodColor)
	WarningStyle  = lipgloss.NewStyle().Foreground(warnColor)
	SubtleStyle   = lipgloss.NewStyle().Foreground(mutedColor)
	BoldStyle     = lipgloss.NewStyle().Bold(true)
	OptionIDStyle = lipgloss.NewStyle().Bold(true).Foreground(noteColor)

	TableHeaderStyle = lipgloss.NewStyle().
				Bold(true).
				BorderStyle(lipgloss.NormalBorder()).
				BorderBottom(true).
				BorderForeground(borderColor)

	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(accentColor)
	promptStyle = lipgloss.NewStyle().Bold(true).Foreground(accentColor)
	boxStyle    = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(borderColor).
			Padding(1, 2)
)

// Icons.
const (
	SuccessIcon  = "✓"
	ErrorIcon    = "✗"
	WarningIcon  = "⚠️"
	InfoIcon     = "ℹ️"
	GameIcon     = "♟"
	ReportIcon   = "📊"
	TerminalIcon = "■"
)

// status is a one-line message kind: an icon in a colour.
type status struct {
	style lipgloss.Style
	icon  string
}

func (s status) format(message string) string {
	return s.style.Render(s.icon + " " + message)
}

var (
	successStatus = status{style: SuccessStyle, icon: SuccessIcon}
	errorStatus   = status{style: lipgloss.NewStyle().Foreground(badColor), icon: ErrorIcon}
	warningStatus = status{style: WarningStyle, icon: WarningIcon}
	infoStatus    = status{style: lipgloss.NewStyle().Foreground(noteColor), icon: InfoIcon}
)

// FormatSuccess formats a success message.
func FormatSuccess(message string) string { return successStatus.format(message) }

// FormatError formats an error message.
func FormatError(message string) string { return errorStatus.format(message) }

// FormatWarning formats a warning.
func FormatWarning(message string) string { return warningStatus.format(message) }

// FormatInfo formats a note.
func FormatInfo(message string) string { return infoStatus.format(message) }

// FormatTitle formats a section title. A blank line follows it.
func FormatTitle(title string) string {
	return titleStyle.MarginBottom(1).Render(GameIcon + " " + title)
}

// FormatPrompt formats the question before an input.
func FormatPrompt(prompt string) string {
	return promptStyle.Render(prompt + " → ")
}

// RenderBox draws content in a rounded box under a bold title.
func RenderBox(title, content string) string {
	return boxStyle.Render(lipgloss.JoinVertical(lipgloss.Left, titleStyle.Render(title), content))
}

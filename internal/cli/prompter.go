package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/Veraticus/groupgame/internal/game"
	"github.com/Veraticus/groupgame/internal/graph"
	"github.com/Veraticus/groupgame/internal/model"
	"github.com/schollz/progressbar/v3"
)

var _ game.Chooser = (*Prompter)(nil)

// Prompter is a line based game.Chooser. It lists the options and reads the
// id of the chosen position; "q" or end of input declines.
type Prompter struct {
	writer      io.Writer
	reader      *NonBlockingReader
	progressBar *progressbar.ProgressBar
	maxSteps    int
}

// NewCLIPrompter creates a new CLI prompter with the given reader and writer.
func NewCLIPrompter(reader io.Reader, writer io.Writer) *Prompter {
	if reader == nil {
		reader = os.Stdin
	}
	if writer == nil {
		writer = os.Stdout
	}

	return &Prompter{
		reader: NewNonBlockingReader(reader),
		writer: writer,
	}
}

// WithStepLimit shows a progress bar towards a move limit.
func (p *Prompter) WithStepLimit(maxSteps int) *Prompter {
	p.maxSteps = maxSteps
	return p
}

// Choose implements game.Chooser.
func (p *Prompter) Choose(ctx context.Context, prompt game.Prompt, options []model.Option) (int, bool, error) {
	if err := ctx.Err(); err != nil {
		return 0, false, err
	}

	p.updateProgress(prompt.Step)

	if _, err := fmt.Fprintln(p.writer, RenderBox(prompt.Title, formatOptions(prompt, options))); err != nil {
		return 0, false, fmt.Errorf("failed to write options: %w", err)
	}
	if prompt.Err != nil {
		if _, err := fmt.Fprintln(p.writer, FormatError(describeChoiceError(prompt.Err))); err != nil {
			return 0, false, fmt.Errorf("failed to write error: %w", err)
		}
	}

	for {
		if _, err := fmt.Fprint(p.writer, FormatPrompt("Position id (q to quit)")); err != nil {
			return 0, false, fmt.Errorf("failed to write prompt: %w", err)
		}

		line, err := p.reader.ReadLine(ctx)
		switch {
		case errors.Is(err, ErrInputCancelled):
			return 0, false, ctx.Err()
		case errors.Is(err, io.EOF):
			p.writeLine("")
			return 0, false, nil
		case err != nil:
			return 0, false, fmt.Errorf("failed to read choice: %w", err)
		}

		switch strings.ToLower(line) {
		case "":
			continue
		case "q", "quit", "exit":
			return 0, false, nil
		}

		id, err := strconv.Atoi(line)
		if err != nil {
			p.writeLine(FormatWarning(fmt.Sprintf("%q is not a position id", line)))
			continue
		}
		return id, true, nil
	}
}

// Finish completes the progress bar, if one is shown.
func (p *Prompter) Finish() {
	if p.progressBar == nil {
		return
	}
	if err := p.progressBar.Finish(); err != nil {
		slog.Warn("Failed to finish progress bar", "error", err)
	}
	p.writeLine("")
}

func (p *Prompter) updateProgress(step int) {
	if p.maxSteps <= 0 || step <= 0 {
		return
	}
	if p.progressBar == nil {
		p.progressBar = progressbar.NewOptions(p.maxSteps,
			progressbar.OptionSetWriter(p.writer),
			progressbar.OptionEnableColorCodes(true),
			progressbar.OptionShowCount(),
			progressbar.OptionSetWidth(30),
			progressbar.OptionSetDescription("[cyan]Moves[reset]"),
		)
	}
	if err := p.progressBar.Set(step - 1); err != nil {
		slog.Debug("Failed to update progress bar", "error", err)
	}
	p.writeLine("")
}

func (p *Prompter) writeLine(s string) {
	if _, err := fmt.Fprintln(p.writer, s); err != nil {
		slog.Warn("Failed to write output", "error", err)
	}
}

func formatOptions(prompt game.Prompt, options []model.Option) string {
	var b strings.Builder
	if prompt.Message != "" {
		b.WriteString(prompt.Message)
		b.WriteString("\n\n")
	}
	for _, opt := range options {
		fmt.Fprintf(&b, "  %s %s\n", OptionIDStyle.Render(fmt.Sprintf("[%d]", opt.ID)), opt.Description)
	}
	return strings.TrimRight(b.String(), "\n")
}

func describeChoiceError(err error) string {
	var invalid *game.InvalidSelectionError
	if errors.As(err, &invalid) {
		return fmt.Sprintf("%d is not a legal move from %d", invalid.Chosen, invalid.Current)
	}
	var notFound *graph.NodeNotFoundError
	if errors.As(err, &notFound) {
		return fmt.Sprintf("There is no position %d", notFound.ID)
	}
	return err.Error()
}

package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"sync"
	"sync/atomic"
	"syscall"
)

// InterruptHandler turns SIGINT and SIGTERM into cancellation of a play
// session and tells the player what happens to the moves made so far.
type InterruptHandler struct {
	out      io.Writer
	done     chan struct{}
	stopOnce sync.Once
	fired    atomic.Bool
	saving   bool
}

// NewInterruptHandler creates a handler that reports to out (stdout if nil).
func NewInterruptHandler(out io.Writer) *InterruptHandler {
	if out == nil {
		out = os.Stdout
	}
	return &InterruptHandler{out: out, done: make(chan struct{})}
}

// Watch returns a context that ends on a signal or when ctx ends. Both count
// as an interruption and are announced once. saving says whether the session
// will still be recorded.
func (h *InterruptHandler) Watch(ctx context.Context, saving bool) context.Context {
	h.saving = saving
	sigCtx, stopSignals := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)

	go func() {
		defer stopSignals()
		select {
		case <-sigCtx.Done():
			h.interrupt()
		case <-h.done:
		}
	}()

	return sigCtx
}

// Stop ends the watch without an interruption. It is safe to call twice.
func (h *InterruptHandler) Stop() {
	h.stopOnce.Do(func() { close(h.done) })
}

// WasInterrupted reports whether the watched context was interrupted.
func (h *InterruptHandler) WasInterrupted() bool {
	return h.fired.Load()
}

func (h *InterruptHandler) interrupt() {
	if !h.fired.CompareAndSwap(false, true) {
		return
	}
	if _, err := fmt.Fprint(h.out, interruptMessage(h.saving)); err != nil {
		slog.Debug("Failed to show interrupt message", "error", err)
	}
}

func interruptMessage(saving bool) string {
	lines := []string{"", "", FormatWarning("Play interrupted!")}
	if saving {
		lines = append(lines, FormatInfo("The moves made so far will be saved as a cancelled session."))
	}
	lines = append(lines, FormatInfo("See you next game! "+GameIcon), "")
	return strings.Join(lines, "\n")
}

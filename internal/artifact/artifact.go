// Package artifact waits for and reads files produced by the external algebra
// engine. The engine writes its output to a known path; nothing here starts it.
package artifact

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/Veraticus/groupgame/internal/common"
	"github.com/fsnotify/fsnotify"
)

const (
	defaultPollInterval = 500 * time.Millisecond
	defaultSettle       = 200 * time.Millisecond
)

type waitConfig struct {
	pollInterval time.Duration
	settle       time.Duration
}

// WaitOption configures WaitFor.
type WaitOption func(*waitConfig)

// WithPollInterval sets how often the file is checked in addition to
// filesystem events.
func WithPollInterval(d time.Duration) WaitOption {
	return func(c *waitConfig) {
		if d > 0 {
			c.pollInterval = d
		}
	}
}

// WithSettle sets how long the file size must stay unchanged before the
// file counts as complete. Zero accepts the file as soon as it is non-empty.
func WithSettle(d time.Duration) WaitOption {
	return func(c *waitConfig) {
		if d >= 0 {
			c.settle = d
		}
	}
}

// WaitFor blocks until path exists, is non-empty and has stopped growing, or
// ctx is done. The parent directory must exist.
func WaitFor(ctx context.Context, path string, opts ...WaitOption) error {
	cfg := waitConfig{pollInterval: defaultPollInterval, settle: defaultSettle}
	for _, opt := range opts {
		opt(&cfg)
	}

	path = filepath.Clean(path)

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer func() {
		if closeErr := watcher.Close(); closeErr != nil {
			slog.Debug("Failed to close watcher", "error", closeErr)
		}
	}()

	dir := filepath.Dir(path)
	if err := watcher.Add(dir); err != nil {
		return fmt.Errorf("failed to watch %s: %w", dir, err)
	}
	slog.Debug("Waiting for artifact", "path", path)

	poll := time.NewTicker(cfg.pollInterval)
	defer poll.Stop()

	// lastSize is the size seen at the previous check; -1 means not ready.
	lastSize := int64(-1)
	var settleTimer <-chan time.Time

	check := func() bool {
		size, ready := sizeOf(path)
		switch {
		case !ready:
			lastSize = -1
			settleTimer = nil
			return false
		case cfg.settle == 0:
			return true
		case size != lastSize:
			lastSize = size
			settleTimer = time.After(cfg.settle)
		}
		return false
	}

	if check() {
		return nil
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case event, ok := <-watcher.Events:
			if !ok {
				return errors.New("watcher closed")
			}
			if filepath.Clean(event.Name) != path {
				continue
			}
			if event.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Rename|fsnotify.Remove) == 0 {
				continue
			}
			if check() {
				return nil
			}

		case err, ok := <-watcher.Errors:
			if !ok {
				return errors.New("watcher closed")
			}
			slog.Warn("Artifact watcher error", "path", path, "error", err)

		case <-poll.C:
			if check() {
				return nil
			}

		case <-settleTimer:
			size, ready := sizeOf(path)
			if ready && size == lastSize {
				slog.Debug("Artifact ready", "path", path, "bytes", size)
				return nil
			}
			check()
		}
	}
}

func sizeOf(path string) (int64, bool) {
	info, err := os.Stat(path)
	if err != nil || info.IsDir() || info.Size() == 0 {
		return 0, false
	}
	return info.Size(), true
}

// ReadText reads the artifact at path. An empty file is retried briefly in
// case the producer has created it but not written to it yet.
func ReadText(ctx context.Context, path string) (string, error) {
	var text string

	err := common.WithRetry(ctx, func() error {
		data, err := os.ReadFile(path)
		if err != nil {
			if errors.Is(err, os.ErrNotExist) {
				return fmt.Errorf("%w: %s: %w", common.ErrArtifactMissing, path, err)
			}
			return fmt.Errorf("failed to read %s: %w", path, err)
		}
		if len(data) == 0 {
			return fmt.Errorf("%w: %s", common.ErrArtifactEmpty, path)
		}
		text = string(data)
		return nil
	}, common.RetryOptions{
		MaxAttempts:  4,
		InitialDelay: 100 * time.Millisecond,
		MaxDelay:     time.Second,
	})
	if err != nil {
		return "", err
	}

	return text, nil
}

// Await waits for path when wait is set and then reads it. timeout bounds the
// wait; zero means no bound beyond ctx.
func Await(ctx context.Context, path string, wait bool, timeout time.Duration) (string, error) {
	if wait {
		waitCtx := ctx
		if timeout > 0 {
			var cancel context.CancelFunc
			waitCtx, cancel = context.WithTimeout(ctx, timeout)
			defer cancel()
		}
		if err := WaitFor(waitCtx, path); err != nil {
			if errors.Is(err, context.DeadlineExceeded) && ctx.Err() == nil {
				return "", common.NewUserError(fmt.Sprintf("Gave up waiting for %s after %s", path, timeout), err)
			}
			return "", err
		}
	}
	return ReadText(ctx, path)
}

package common

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fastRetry(attempts int) RetryOptions {
	return RetryOptions{MaxAttempts: attempts, InitialDelay: time.Millisecond, MaxDelay: 2 * time.Millisecond}
}

func TestWithRetry(t *testing.T) {
	transient := &RetryableError{Err: errors.New("still writing"), Retryable: true}
	permanent := &RetryableError{Err: errors.New("bad file"), Retryable: false}

	tests := []struct {
		name      string
		failures  []error
		attempts  int
		wantCalls int
		wantErr   error
	}{
		{name: "first try", attempts: 3, wantCalls: 1},
		{name: "recovers", failures: []error{transient, ErrArtifactEmpty}, attempts: 3, wantCalls: 3},
		{name: "gives up", failures: []error{transient, transient, transient}, attempts: 3, wantCalls: 3, wantErr: ErrMaxRetries},
		{name: "permanent error stops", failures: []error{permanent}, attempts: 3, wantCalls: 1, wantErr: permanent},
		{name: "plain error stops", failures: []error{ErrNotFound}, attempts: 3, wantCalls: 1, wantErr: ErrNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			calls := 0
			err := WithRetry(context.Background(), func() error {
				calls++
				if calls <= len(tt.failures) {
					return tt.failures[calls-1]
				}
				return nil
			}, fastRetry(tt.attempts))

			assert.Equal(t, tt.wantCalls, calls)
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestWithRetry_ContextCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	calls := 0
	err := WithRetry(ctx, func() error {
		calls++
		cancel()
		return ErrArtifactEmpty
	}, RetryOptions{MaxAttempts: 5, InitialDelay: time.Hour})

	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1, calls)
}

func TestUserError(t *testing.T) {
	inner := errors.New("open x.json: no such file")
	err := fmt.Errorf("loading: %w", NewUserError("Graph file not found", inner))

	assert.ErrorIs(t, err, inner)
	assert.Equal(t, "Graph file not found", UserMessage(err))
	assert.Equal(t, "plain", UserMessage(errors.New("plain")))
	assert.Equal(t, "only message", NewUserError("only message", nil).Error())
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input   string
		want    slog.Level
		wantErr bool
	}{
		{input: "debug", want: slog.LevelDebug},
		{input: "INFO", want: slog.LevelInfo},
		{input: "", want: slog.LevelInfo},
		{input: "warning", want: slog.LevelWarn},
		{input: "error", want: slog.LevelError},
		{input: "loud", want: slog.LevelInfo, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseLevel(tt.input)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidConfig)
			} else {
				require.NoError(t, err)
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSetupLogger(t *testing.T) {
	previous := slog.Default()
	t.Cleanup(func() { slog.SetDefault(previous) })

	var buf bytes.Buffer
	SetupLogger(&buf, slog.LevelInfo, "json")

	LogDebug("hidden", nil)
	LogInfo("Report classified", Fields{"abelian": 2})
	LogInfo("Saved report", Fields{"source": "output.txt", "id": "r1"})

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, `"msg":"Report classified"`)
	assert.Contains(t, out, `"abelian":2`)
	assert.Contains(t, out, `"id":"r1","source":"output.txt"`)
}

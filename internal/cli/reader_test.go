package cli

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNonBlockingReader_Lines(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{name: "ids", input: "1\n3\n", want: []string{"1", "3"}},
		{name: "whitespace is trimmed", input: "  4 \t\r\n", want: []string{"4"}},
		{name: "blank line", input: "\n2\n", want: []string{"", "2"}},
		{name: "last line without newline", input: "1\nq", want: []string{"1", "q"}},
		{name: "nothing", input: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewNonBlockingReader(strings.NewReader(tt.input))
			ctx := context.Background()

			for _, want := range tt.want {
				got, err := r.ReadLine(ctx)
				require.NoError(t, err)
				assert.Equal(t, want, got)
			}

			_, err := r.ReadLine(ctx)
			assert.ErrorIs(t, err, io.EOF)
			_, err = r.ReadLine(ctx)
			assert.ErrorIs(t, err, io.EOF, "EOF is sticky")
		})
	}
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) { return 0, errors.New("tty gone") }

func TestNonBlockingReader_ReadError(t *testing.T) {
	r := NewNonBlockingReader(failingReader{})
	_, err := r.ReadLine(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "tty gone")
}

func TestNonBlockingReader_Cancel(t *testing.T) {
	t.Run("already cancelled", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := NewNonBlockingReader(strings.NewReader("1\n")).ReadLine(ctx)
		assert.ErrorIs(t, err, ErrInputCancelled)
	})

	t.Run("late line goes to the next read", func(t *testing.T) {
		pr, pw := io.Pipe()
		defer func() { _ = pw.Close() }()
		r := NewNonBlockingReader(pr)

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Millisecond)
		defer cancel()
		_, err := r.ReadLine(ctx)
		require.ErrorIs(t, err, ErrInputCancelled)

		go func() { _, _ = pw.Write([]byte("5\n")) }()

		line, err := r.ReadLine(context.Background())
		require.NoError(t, err)
		assert.Equal(t, "5", line)
	})
}

package cli

import (
	"bufio"
	"context"
	"errors"
	"io"
	"strings"
	"sync"
)

// ErrInputCancelled is returned when a read is abandoned because ctx is done.
var ErrInputCancelled = errors.New("input canceled")

// NonBlockingReader reads lines on a background goroutine so that a pending
// read can be abandoned when ctx is done. A line that arrives after its
// reader gave up is handed to the next ReadLine.
type NonBlockingReader struct {
	src   *bufio.Reader
	lines chan lineResult
	start sync.Once
}

type lineResult struct {
	err  error
	line string
}

// NewNonBlockingReader wraps r. Nothing is read until the first ReadLine.
func NewNonBlockingReader(r io.Reader) *NonBlockingReader {
	return &NonBlockingReader{
		src:   bufio.NewReader(r),
		lines: make(chan lineResult),
	}
}

func (r *NonBlockingReader) pump() {
	defer close(r.lines)
	for {
		line, err := r.src.ReadString('\n')
		if line != "" {
			r.lines <- lineResult{line: line}
		}
		if err != nil {
			if !errors.Is(err, io.EOF) {
				r.lines <- lineResult{err: err}
			}
			return
		}
	}
}

// ReadLine returns the next line with surrounding whitespace removed. A last
// line without a newline still counts; io.EOF follows once nothing is left.
func (r *NonBlockingReader) ReadLine(ctx context.Context) (string, error) {
	if ctx.Err() != nil {
		return "", ErrInputCancelled
	}
	r.start.Do(func() { go r.pump() })

	select {
	case <-ctx.Done():
		return "", ErrInputCancelled
	case res, ok := <-r.lines:
		if !ok {
			return "", io.EOF
		}
		if res.err != nil {
			return "", res.err
		}
		return strings.TrimSpace(res.line), nil
	}
}

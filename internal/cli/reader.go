package cli

import (
	"bufio"
	"context"
	"errors"
	"io"
	"strings"
	"sync"
)

// ErrInputCancelled is returned when input is canceled by context.
var ErrInputCancelled = errors.New("input canceled")

// LineReader reads lines from an input stream while honoring context
// cancellation. A single goroutine owns the underlying reader, so a canceled
// read never loses or reorders later lines. Lines have no length limit.
type LineReader struct {
	reader *bufio.Reader
	lines  chan string
	err    error
	start  sync.Once
}

// NewLineReader creates a reader over r.
func NewLineReader(r io.Reader) *LineReader {
	if r == nil {
		panic("reader cannot be nil")
	}

	return &LineReader{
		reader: bufio.NewReader(r),
		lines:  make(chan string),
	}
}

// run feeds lines until the input fails, then records the failure and
// closes the channel.
func (r *LineReader) run() {
	defer close(r.lines)

	for {
		line, err := r.reader.ReadString('\n')
		if line != "" {
			r.lines <- strings.TrimRight(line, "\r\n")
		}
		if err != nil {
			r.err = err
			return
		}
	}
}

// ReadLine returns the next line without its line terminator. It returns
// io.EOF once input is exhausted and ErrInputCancelled if ctx ends first.
func (r *LineReader) ReadLine(ctx context.Context) (string, error) {
	if ctx.Err() != nil {
		return "", ErrInputCancelled
	}

	r.start.Do(func() { go r.run() })

	select {
	case <-ctx.Done():
		return "", ErrInputCancelled
	case line, ok := <-r.lines:
		if !ok {
			return "", r.err
		}
		return line, nil
	}
}

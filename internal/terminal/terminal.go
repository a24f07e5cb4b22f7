package terminal

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/fatih/color"
)

// ErrNoInput is returned when input is exhausted before an answer was read.
var ErrNoInput = errors.New("terminal: no input")

// Terminal is the notification and confirmation surface of the CLI.
type Terminal struct {
	mu        sync.Mutex
	in        *bufio.Reader
	out       io.Writer
	assumeYes bool

	startReader sync.Once
	lines       chan string
	readErr     error

	success *color.Color
	failure *color.Color
	prompt  *color.Color
}

type Option func(*Terminal)

// WithAssumeYes answers every confirmation positively without reading input.
func WithAssumeYes(yes bool) Option {
	return func(t *Terminal) { t.assumeYes = yes }
}

// WithColor toggles ANSI colouring.
func WithColor(enabled bool) Option {
	return func(t *Terminal) {
		for _, c := range []*color.Color{t.success, t.failure, t.prompt} {
			if enabled {
				c.EnableColor()
			} else {
				c.DisableColor()
			}
		}
	}
}

func New(in io.Reader, out io.Writer, opts ...Option) *Terminal {
	t := &Terminal{
		in:      bufio.NewReader(in),
		out:     out,
		success: color.New(color.FgGreen, color.Bold),
		failure: color.New(color.FgRed, color.Bold),
		prompt:  color.New(color.FgYellow, color.Bold),
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Success shows a positive toast.
func (t *Terminal) Success(title, message string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.success.Fprintf(t.out, "%s", title)
	fmt.Fprintf(t.out, " %s\n", message)
}

// Error shows a failure toast.
func (t *Terminal) Error(title, message string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.failure.Fprintf(t.out, "%s", title)
	fmt.Fprintf(t.out, " %s\n", message)
}

// Confirm asks a yes/no question. Anything but y/yes declines.
func (t *Terminal) Confirm(ctx context.Context, title, body string) (bool, error) {
	t.mu.Lock()
	t.prompt.Fprintf(t.out, "%s", title)
	fmt.Fprintf(t.out, " %s [y/N] ", body)
	t.mu.Unlock()

	if t.assumeYes {
		fmt.Fprintln(t.out, "y")
		return true, nil
	}

	answer, err := t.ReadLine(ctx)
	if err != nil {
		return false, err
	}
	switch strings.ToLower(answer) {
	case "y", "yes":
		return true, nil
	default:
		return false, nil
	}
}

// ReadLine reads one trimmed line. A final line without newline is returned;
// EOF with nothing read is ErrNoInput. Cancelling ctx abandons the wait, the
// pending line is kept for the next call.
func (t *Terminal) ReadLine(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	t.startReader.Do(func() {
		t.lines = make(chan string)
		go t.readLines()
	})

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case line, ok := <-t.lines:
		if !ok {
			return "", t.readErr
		}
		return line, nil
	}
}

// readLines feeds lines to ReadLine until input ends. readErr is set before
// the channel is closed.
func (t *Terminal) readLines() {
	for {
		line, err := t.in.ReadString('\n')
		if err == nil {
			t.lines <- strings.TrimSpace(line)
			continue
		}
		if errors.Is(err, io.EOF) {
			if line != "" {
				t.lines <- strings.TrimSpace(line)
			}
			err = ErrNoInput
		}
		t.readErr = err
		close(t.lines)
		return
	}
}

// Printf writes to the output without decoration.
func (t *Terminal) Printf(format string, args ...interface{}) {
	t.mu.Lock()
	defer t.mu.Unlock()
	fmt.Fprintf(t.out, format, args...)
}

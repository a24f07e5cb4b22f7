package cli

import (
	"errors"
	"io"
	"os"
	"time"

	"github.com/joefazee/neo-admin/app"
	"github.com/joefazee/neo-admin/internal/deps"
	"github.com/spf13/cobra"
)

// AnnotationStandalone marks commands that run without loading configuration.
const AnnotationStandalone = "standalone"

// ErrNotConnected is returned by Deps before the root command wired them.
var ErrNotConnected = errors.New("cli: dependencies not initialised")

// CmdParams holds all dependencies needed by command handlers
type CmdParams struct {
	Use     string
	Short   string
	Long    string
	Version string
	Palette []*cobra.Command

	// Flag bound settings.
	ConfigFile string
	Overrides  app.Config
	NoColor    bool
	AssumeYes  bool

	LogOutput io.Writer
	Now       func() time.Time

	deps *deps.Container
}

// Deps returns the container built for the running command.
func (p *CmdParams) Deps() (*deps.Container, error) {
	if p.deps == nil {
		return nil, ErrNotConnected
	}
	return p.deps, nil
}

// Clock returns the time used for relative timestamps.
func (p *CmdParams) Clock() time.Time {
	if p.Now == nil {
		return time.Now()
	}
	return p.Now()
}

// Close releases the container, if one was built.
func (p *CmdParams) Close() error {
	if p.deps == nil {
		return nil
	}
	err := p.deps.Close()
	p.deps = nil
	return err
}

func (p *CmdParams) logOutput() io.Writer {
	if p.LogOutput == nil {
		return os.Stderr
	}
	return p.LogOutput
}

type reportedError struct {
	err error
}

func (e *reportedError) Error() string { return e.err.Error() }

func (e *reportedError) Unwrap() error { return e.err }

// Reported marks err as already shown to the user.
func Reported(err error) error {
	if err == nil {
		return nil
	}
	return &reportedError{err: err}
}

// IsReported reports whether err was already shown to the user.
func IsReported(err error) bool {
	var r *reportedError
	return errors.As(err, &r)
}

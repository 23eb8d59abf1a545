// Package sink provides the stream behind the event pipe.
package sink

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"sync/atomic"

	"github.com/rs/zerolog"

	"pkgevent/internal/common/fsutil"
)

// zlog is an optional structured logger. If unset, write failures are dropped silently.
var zlog *zerolog.Logger

// SetLogger installs the logger used to report pipe write failures.
func SetLogger(l zerolog.Logger) { zlog = &l }

// Pipe is a writable event stream. Write failures are logged here and
// returned; the event core ignores them.
type Pipe struct {
	w        io.Writer
	c        io.Closer
	target   string
	failures atomic.Int64
}

// NewPipe wraps w. The pipe does not close w.
func NewPipe(w io.Writer, target string) *Pipe {
	return &Pipe{w: w, target: target}
}

// Open resolves an event pipe target:
//
//	""      no pipe (nil, nil)
//	"-"     standard output
//	"fd:N"  an inherited file descriptor
//	path    a named pipe, or a file opened for append
func Open(target string) (*Pipe, error) {
	switch {
	case target == "":
		return nil, nil
	case target == "-":
		return NewPipe(os.Stdout, target), nil
	case strings.HasPrefix(target, "fd:"):
		n, err := strconv.Atoi(strings.TrimPrefix(target, "fd:"))
		if err != nil || n < 0 {
			return nil, fmt.Errorf("invalid event pipe descriptor %q", target)
		}
		f := os.NewFile(uintptr(n), "eventpipe")
		if f == nil {
			return nil, fmt.Errorf("invalid event pipe descriptor %q", target)
		}
		return &Pipe{w: f, c: f, target: target}, nil
	}
	path, err := fsutil.ExpandHome(target)
	if err != nil {
		return nil, err
	}
	flags := os.O_WRONLY | os.O_APPEND | os.O_CREATE
	if fsutil.IsFIFO(path) {
		flags = os.O_WRONLY
	}
	f, err := os.OpenFile(path, flags, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open event pipe: %w", err)
	}
	return &Pipe{w: f, c: f, target: target}, nil
}

func (p *Pipe) Write(b []byte) (int, error) {
	n, err := p.w.Write(b)
	if err != nil {
		p.failures.Add(1)
		if zlog != nil {
			zlog.Debug().Err(err).Str("pipe", p.target).Int("bytes", len(b)).Msg("event pipe write failed")
		}
	}
	return n, err
}

// Failures returns how many writes have failed so far.
func (p *Pipe) Failures() int64 { return p.failures.Load() }

func (p *Pipe) Target() string { return p.target }

func (p *Pipe) Close() error {
	if p.c == nil {
		return nil
	}
	return p.c.Close()
}

package cli

import (
	"sync"

	"github.com/rs/zerolog"
)

type syslogWriter interface {
	Notice(m string) error
	Close() error
}

// lazySyslog connects to the system logger on first use, so enabling syslog
// through a config reload takes effect without restarting. A failed
// connection is retried on the next line.
type lazySyslog struct {
	mu     sync.Mutex
	open   func() (syslogWriter, error)
	w      syslogWriter
	log    zerolog.Logger
	warned bool
}

func newLazySyslog(open func() (syslogWriter, error), log zerolog.Logger) *lazySyslog {
	return &lazySyslog{open: open, log: log}
}

func (l *lazySyslog) Notice(m string) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.w == nil {
		w, err := l.open()
		if err != nil {
			if !l.warned {
				l.log.Warn().Err(err).Msg("syslog unavailable")
				l.warned = true
			}
			return err
		}
		l.w, l.warned = w, false
	}
	return l.w.Notice(m)
}

// Close releases the connection if one was opened.
func (l *lazySyslog) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.w == nil {
		return nil
	}
	err := l.w.Close()
	l.w = nil
	return err
}

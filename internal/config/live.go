package config

import "sync/atomic"

// Live holds the current Config and answers the event core's settings reads.
// Values are read on every call, so Store takes effect on the next emission.
type Live struct {
	cur atomic.Pointer[Config]
}

func NewLive(cfg Config) *Live {
	l := &Live{}
	l.Store(cfg)
	return l
}

func (l *Live) Store(cfg Config) { l.cur.Store(&cfg) }

func (l *Live) Load() Config { return *l.cur.Load() }

// Reload reads path and stores the result. On error the current Config is kept.
func (l *Live) Reload(path string) error {
	cfg, err := Load(path)
	if err != nil {
		return err
	}
	l.Store(cfg.Defaults())
	return nil
}

func (l *Live) SyslogEnabled() bool { return l.cur.Load().Syslog }

func (l *Live) DebugLevel() int64 { return l.cur.Load().DebugLevel }

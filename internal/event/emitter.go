package event

import "io"

// Callback is the embedding application's observer. data is the opaque value
// given to Register. The returned error is ignored by the dispatcher.
type Callback func(data any, ev Event) error

// HookRunner delivers events to whatever plugins are loaded.
type HookRunner interface {
	RunEventHook(ev Event)
}

// Settings are the configuration values read at emission time.
type Settings interface {
	SyslogEnabled() bool
	DebugLevel() int64
}

// Syslogger writes one NOTICE-priority line to the system log.
// *log/syslog.Writer satisfies it.
type Syslogger interface {
	Notice(m string) error
}

// Emitter owns the process's event-emission lifecycle: the plugin hook, the
// single callback registration and the pipe target.
//
// An Emitter is meant to be driven from one goroutine. Register and SetPipe are
// not safe to call concurrently with each other or with emission.
type Emitter struct {
	plugins  HookRunner
	cb       Callback
	data     any
	pipe     io.Writer
	settings Settings
	syslog   Syslogger
}

// Option configures an Emitter.
type Option func(*Emitter)

// WithPlugins sets the plugin hook sink.
func WithPlugins(h HookRunner) Option { return func(e *Emitter) { e.plugins = h } }

// WithPipe sets the pipe target. A nil writer leaves the pipe unset.
func WithPipe(w io.Writer) Option { return func(e *Emitter) { e.pipe = w } }

// WithSettings sets where the syslog switch and debug threshold are read from.
func WithSettings(s Settings) Option { return func(e *Emitter) { e.settings = s } }

// WithSyslog sets the system log used by the finished-operation events.
func WithSyslog(s Syslogger) Option { return func(e *Emitter) { e.syslog = s } }

func New(opts ...Option) *Emitter {
	e := &Emitter{}
	for _, o := range opts {
		o(e)
	}
	return e
}

// Register replaces the callback registration. The last call wins; a nil
// callback clears it.
func (e *Emitter) Register(cb Callback, data any) {
	e.cb = cb
	e.data = data
}

// SetPipe replaces the pipe target; nil disables the pipe sink.
func (e *Emitter) SetPipe(w io.Writer) { e.pipe = w }

// dispatch delivers a fully built event to the plugin hook, the registered
// callback and the pipe, in that order. Nothing is reported back.
func (e *Emitter) dispatch(ev Event) {
	if e.plugins != nil {
		e.plugins.RunEventHook(ev)
	}
	e.runCallback(ev)
	e.pipeEvent(ev)
}

// runCallback invokes the registered callback. Its error is ignored and a
// panic is contained so the pipe still sees the event.
func (e *Emitter) runCallback(ev Event) {
	if e.cb == nil {
		return
	}
	defer func() { _ = recover() }()
	_ = e.cb(e.data, ev)
}

func (e *Emitter) pipeEvent(ev Event) {
	if e.pipe == nil {
		return
	}
	line, ok := Marshal(ev)
	if !ok {
		return
	}
	line = append(line, '\n')
	// Write errors are the stream's business.
	_, _ = e.pipe.Write(line)
}

func (e *Emitter) syslogEnabled() bool {
	return e.settings != nil && e.syslog != nil && e.settings.SyslogEnabled()
}

func (e *Emitter) debugLevel() int64 {
	if e.settings == nil {
		return 0
	}
	return e.settings.DebugLevel()
}

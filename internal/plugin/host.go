// Package plugin runs the event hook of loaded plugins.
package plugin

import (
	"fmt"

	"github.com/rs/zerolog"

	"pkgevent/internal/event"
	"pkgevent/pkg/types"
)

// zlog is an optional structured logger. If unset, hook failures are dropped.
var zlog *zerolog.Logger

// SetLogger installs the logger used to report failing plugin hooks.
func SetLogger(l zerolog.Logger) { zlog = &l }

// Plugin is a loaded plugin that subscribes to the event hook.
type Plugin interface {
	types.Plugin
	HandleEvent(ev event.Event) error
}

// Host holds the loaded plugins and implements event.HookRunner.
// Plugins are loaded at startup; Load is not safe to call during dispatch.
type Host struct {
	plugins []Plugin
}

func NewHost(plugins ...Plugin) *Host {
	h := &Host{}
	for _, p := range plugins {
		h.Load(p)
	}
	return h
}

// Load appends p to the hook chain. Nil plugins are ignored.
func (h *Host) Load(p Plugin) {
	if p == nil {
		return
	}
	h.plugins = append(h.plugins, p)
}

// Plugins returns the loaded plugins in load order.
func (h *Host) Plugins() []Plugin {
	out := make([]Plugin, len(h.plugins))
	copy(out, h.plugins)
	return out
}

// RunEventHook hands ev to every plugin in load order. A plugin that fails or
// panics is logged and skipped; the rest still run.
func (h *Host) RunEventHook(ev event.Event) {
	for _, p := range h.plugins {
		if err := runOne(p, ev); err != nil && zlog != nil {
			zlog.Warn().Err(err).Str("plugin", p.Name()).Str("kind", ev.Kind().String()).Msg("event hook failed")
		}
	}
}

func runOne(p Plugin, ev event.Event) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic: %v", r)
		}
	}()
	return p.HandleEvent(ev)
}

// funcPlugin adapts a function to Plugin.
type funcPlugin struct {
	name string
	fn   func(event.Event) error
}

func (f funcPlugin) Name() string                    { return f.name }
func (f funcPlugin) HandleEvent(ev event.Event) error { return f.fn(ev) }

// Func returns a Plugin named name whose hook is fn.
func Func(name string, fn func(event.Event) error) Plugin {
	return funcPlugin{name: name, fn: fn}
}

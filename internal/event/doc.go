// Package event is the notification channel of the package manager. Operations
// (install, upgrade, deinstall, integrity checks, fetches, plugins) report what
// happens through an Emitter without knowing who listens.
//
// The package is split by concern:
//
//   - kind.go: Kind constants and their wire tags.
//   - event.go: one struct per kind; Event is a closed interface.
//   - escape.go: the narrow string escaper used by the serializer.
//   - serialize.go: Event -> single-line JSON for the event pipe.
//   - emitter.go: registration slot and the dispatch router.
//   - emit.go: the emission API, one method per kind.
//   - debug.go: the debug gate.
//   - syslog.go: syslog lines for finished install/deinstall/upgrade.
//   - recorder.go: an in-memory sink for tests.
//
// Every emitted event is delivered synchronously to, in order: the plugin hook,
// the registered callback, and the pipe. A missing or failing sink never stops
// the others and never surfaces to the emitting operation.
package event

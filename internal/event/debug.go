package event

import "fmt"

// Debug emits a trace message when the configured debug level is at least
// level. Below the threshold nothing is formatted and no sink runs.
func (e *Emitter) Debug(level int, format string, args ...any) {
	if e.debugLevel() < int64(level) {
		return
	}
	e.dispatch(DebugEvent{Level: level, Msg: fmt.Sprintf(format, args...)})
}

package types

import "encoding/json"

// EventLine is the envelope of one line written to the event pipe:
// {"type": "<TAG>", "data": {...}}.
type EventLine struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data"`
}

// KindInfo describes an event kind and the tag it is written under.
type KindInfo struct {
	Kind string `json:"kind"`
	// Tag is empty for kinds that have no pipe representation.
	Tag string `json:"tag,omitempty"`
}

// RecentResponse lists the event lines the monitor has retained.
type RecentResponse struct {
	Events []json.RawMessage `json:"events"`
}

// ErrorResponse is a consistent JSON error payload.
type ErrorResponse struct {
	Error string `json:"error"`
	// HTTP status code.
	Code int `json:"code"`
}

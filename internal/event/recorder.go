package event

import "sync"

// Recorder stores dispatched events in memory. It can stand in for both the
// plugin hook and the callback; use it in tests.
type Recorder struct {
	mu     sync.Mutex
	events []Event
}

func NewRecorder() *Recorder { return &Recorder{} }

// RunEventHook implements HookRunner.
func (r *Recorder) RunEventHook(ev Event) {
	r.mu.Lock()
	r.events = append(r.events, ev)
	r.mu.Unlock()
}

// Callback records ev; it matches the Callback signature.
func (r *Recorder) Callback(_ any, ev Event) error {
	r.RunEventHook(ev)
	return nil
}

func (r *Recorder) Events() []Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Event, len(r.events))
	copy(out, r.events)
	return out
}

// Kinds returns the kinds of the recorded events in order.
func (r *Recorder) Kinds() []Kind {
	evs := r.Events()
	out := make([]Kind, len(evs))
	for i, ev := range evs {
		out[i] = ev.Kind()
	}
	return out
}

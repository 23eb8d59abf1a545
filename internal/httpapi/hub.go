package httpapi

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"sync"

	"pkgevent/pkg/types"
)

// Hub fans event pipe lines out to HTTP subscribers. It is an io.Writer so an
// Emitter can use it directly as its pipe target; it also consumes lines read
// from another process's pipe (see Consume).
type Hub struct {
	mu      sync.Mutex
	partial []byte
	subs    map[*subscriber]struct{}
	recent  [][]byte
	backlog int
	closed  bool
}

type subscriber struct {
	ch  chan []byte
	tag string
}

// NewHub keeps the last backlog lines for late subscribers.
func NewHub(backlog int) *Hub {
	if backlog < 0 {
		backlog = 0
	}
	return &Hub{subs: make(map[*subscriber]struct{}), backlog: backlog}
}

// Write buffers p and publishes every complete line. It never fails.
func (h *Hub) Write(p []byte) (int, error) {
	h.mu.Lock()
	h.partial = append(h.partial, p...)
	var lines [][]byte
	for {
		idx := bytes.IndexByte(h.partial, '\n')
		if idx < 0 {
			break
		}
		if idx > 0 {
			lines = append(lines, append([]byte(nil), h.partial[:idx]...))
		}
		h.partial = h.partial[idx+1:]
	}
	h.mu.Unlock()
	for _, l := range lines {
		h.Publish(l)
	}
	return len(p), nil
}

// Publish delivers one line (without newline) to every matching subscriber.
// Subscribers that are not keeping up miss the line.
func (h *Hub) Publish(line []byte) {
	tag := lineTag(line)
	hubLinesTotal.WithLabelValues(tagLabel(tag)).Inc()

	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return
	}
	if h.backlog > 0 {
		if len(h.recent) == h.backlog {
			h.recent = h.recent[1:]
		}
		h.recent = append(h.recent, line)
	}
	for s := range h.subs {
		if s.tag != "" && s.tag != tag {
			continue
		}
		select {
		case s.ch <- line:
		default:
			hubDroppedTotal.Inc()
		}
	}
}

// Subscribe registers for lines whose type equals tag ("" for all). The
// returned cancel func must be called when done.
func (h *Hub) Subscribe(tag string, buffer int) (<-chan []byte, func()) {
	s := &subscriber{ch: make(chan []byte, buffer), tag: tag}
	h.mu.Lock()
	if h.closed {
		close(s.ch)
	} else {
		h.subs[s] = struct{}{}
	}
	h.mu.Unlock()
	return s.ch, func() {
		h.mu.Lock()
		if _, ok := h.subs[s]; ok {
			delete(h.subs, s)
			close(s.ch)
		}
		h.mu.Unlock()
	}
}

// Recent returns the retained lines, oldest first, filtered by tag.
func (h *Hub) Recent(tag string) [][]byte {
	h.mu.Lock()
	defer h.mu.Unlock()
	out := make([][]byte, 0, len(h.recent))
	for _, l := range h.recent {
		if tag == "" || lineTag(l) == tag {
			out = append(out, l)
		}
	}
	return out
}

// Consume publishes lines read from r until EOF or ctx is done.
func (h *Hub) Consume(ctx context.Context, r io.Reader) error {
	br := bufio.NewReader(r)
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		line, err := br.ReadBytes('\n')
		if len(bytes.TrimSpace(line)) > 0 {
			h.Publish(bytes.TrimRight(line, "\r\n"))
		}
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}
	}
}

// Close ends every subscription; later lines are dropped.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return
	}
	h.closed = true
	for s := range h.subs {
		close(s.ch)
		delete(h.subs, s)
	}
}

// lineTag returns the "type" of a pipe line, or "" when it is not one.
func lineTag(line []byte) string {
	var rec types.EventLine
	if err := json.Unmarshal(line, &rec); err != nil {
		return ""
	}
	return rec.Type
}

func tagLabel(tag string) string {
	if tag == "" {
		return "invalid"
	}
	return tag
}

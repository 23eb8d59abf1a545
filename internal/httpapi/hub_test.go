package httpapi

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

const (
	lockedLine = `{ "type": "ERROR_LOCKED", "data": { "pkgname": "foo", "pkgversion": "2.0"}}`
	beginLine  = `{ "type": "INFO_INSTALL_BEGIN", "data": { "pkgname": "foo", "pkgversion": "2.0"}}`
)

func recv(t *testing.T, ch <-chan []byte) string {
	t.Helper()
	select {
	case l, ok := <-ch:
		if !ok {
			t.Fatalf("channel closed")
		}
		return string(l)
	case <-time.After(2 * time.Second):
		t.Fatalf("timed out waiting for line")
	}
	return ""
}

func TestHub_WriteSplitsLines(t *testing.T) {
	h := NewHub(0)
	ch, cancel := h.Subscribe("", 4)
	defer cancel()

	// A line split over several writes is published once it is complete.
	h.Write([]byte(beginLine[:10]))
	select {
	case l := <-ch:
		t.Fatalf("published partial line %q", l)
	default:
	}
	h.Write([]byte(beginLine[10:] + "\n" + lockedLine + "\n\n"))
	if got := recv(t, ch); got != beginLine {
		t.Fatalf("first line: %q", got)
	}
	if got := recv(t, ch); got != lockedLine {
		t.Fatalf("second line: %q", got)
	}
	select {
	case l := <-ch:
		t.Fatalf("empty line published: %q", l)
	default:
	}
}

func TestHub_SubscribeFiltersByType(t *testing.T) {
	h := NewHub(0)
	ch, cancel := h.Subscribe("ERROR_LOCKED", 4)
	defer cancel()
	h.Publish([]byte(beginLine))
	h.Publish([]byte(lockedLine))
	if got := recv(t, ch); got != lockedLine {
		t.Fatalf("got %q", got)
	}
	select {
	case l := <-ch:
		t.Fatalf("unexpected line %q", l)
	default:
	}
}

func TestHub_RecentIsBounded(t *testing.T) {
	h := NewHub(2)
	h.Publish([]byte(beginLine))
	h.Publish([]byte(lockedLine))
	h.Publish([]byte(beginLine))
	got := h.Recent("")
	if len(got) != 2 {
		t.Fatalf("recent len=%d", len(got))
	}
	if string(got[0]) != lockedLine || string(got[1]) != beginLine {
		t.Fatalf("recent order: %q", got)
	}
	if n := len(h.Recent("ERROR_LOCKED")); n != 1 {
		t.Fatalf("filtered recent len=%d", n)
	}
}

func TestHub_SlowSubscriberDrops(t *testing.T) {
	h := NewHub(0)
	_, cancel := h.Subscribe("", 1)
	defer cancel()
	before := testutil.ToFloat64(hubDroppedTotal)
	h.Publish([]byte(beginLine))
	h.Publish([]byte(beginLine))
	if d := testutil.ToFloat64(hubDroppedTotal) - before; d != 1 {
		t.Fatalf("dropped delta=%v", d)
	}
}

func TestHub_CountsByType(t *testing.T) {
	h := NewHub(0)
	lockedBefore := testutil.ToFloat64(hubLinesTotal.WithLabelValues("ERROR_LOCKED"))
	invalidBefore := testutil.ToFloat64(hubLinesTotal.WithLabelValues("invalid"))
	h.Publish([]byte(lockedLine))
	h.Publish([]byte("not json"))
	if d := testutil.ToFloat64(hubLinesTotal.WithLabelValues("ERROR_LOCKED")) - lockedBefore; d != 1 {
		t.Fatalf("locked delta=%v", d)
	}
	if d := testutil.ToFloat64(hubLinesTotal.WithLabelValues("invalid")) - invalidBefore; d != 1 {
		t.Fatalf("invalid delta=%v", d)
	}
}

func TestHub_CloseEndsSubscriptions(t *testing.T) {
	h := NewHub(1)
	ch, cancel := h.Subscribe("", 1)
	h.Close()
	if _, ok := <-ch; ok {
		t.Fatalf("expected closed channel")
	}
	cancel() // safe after Close
	late, _ := h.Subscribe("", 1)
	if _, ok := <-late; ok {
		t.Fatalf("subscribe after Close should yield a closed channel")
	}
	h.Publish([]byte(beginLine))
	if n := len(h.Recent("")); n != 0 {
		t.Fatalf("published after close: %d", n)
	}
}

func TestHub_Consume(t *testing.T) {
	h := NewHub(8)
	in := strings.NewReader(beginLine + "\r\n\n" + lockedLine)
	if err := h.Consume(context.Background(), in); err != nil {
		t.Fatalf("consume: %v", err)
	}
	got := h.Recent("")
	if len(got) != 2 || string(got[0]) != beginLine || string(got[1]) != lockedLine {
		t.Fatalf("recent: %q", got)
	}
}

func TestHub_ConsumeStopsOnCancel(t *testing.T) {
	h := NewHub(0)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := h.Consume(ctx, strings.NewReader(beginLine+"\n")); err != context.Canceled {
		t.Fatalf("want context.Canceled, got %v", err)
	}
}

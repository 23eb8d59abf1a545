package httpapi

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"pkgevent/internal/event"
	"pkgevent/pkg/types"
)

var newline = []byte{'\n'}

// NewMux returns the monitor's HTTP handler serving lines published to hub.
func NewMux(hub *Hub) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(MetricsMiddleware)
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("X-Content-Type-Options", "nosniff")
			next.ServeHTTP(w, r)
		})
	})
	if corsEnabled {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins: corsAllowedOrigins,
			AllowedMethods: []string{http.MethodGet, http.MethodOptions},
			AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-Id"},
			MaxAge:         300,
		}))
	}

	r.Get("/events", func(w http.ResponseWriter, r *http.Request) {
		tag := r.URL.Query().Get("type")
		if tag != "" && !knownTag(tag) {
			writeJSONError(w, http.StatusBadRequest, "unknown event type "+tag)
			return
		}
		ch, cancel := hub.Subscribe(tag, streamBuffer)
		defer cancel()
		streamSubscribers.Inc()
		defer streamSubscribers.Dec()

		w.Header().Set("Content-Type", "application/x-ndjson")
		w.Header().Set("Cache-Control", "no-cache")
		flush := func() {}
		if f, ok := w.(http.Flusher); ok {
			flush = f.Flush
		}
		w.WriteHeader(http.StatusOK)
		if r.URL.Query().Get("backlog") == "1" {
			for _, line := range hub.Recent(tag) {
				_, _ = w.Write(line)
				_, _ = w.Write(newline)
			}
		}
		flush()

		start := time.Now()
		if zlog != nil {
			z := zlog.Info().Str("path", r.URL.Path).Str("type", tag)
			if rid := middleware.GetReqID(r.Context()); rid != "" {
				z = z.Str("request_id", rid)
			}
			z.Msg("stream start")
		}
		// Shutdown ends streams as well as client disconnects.
		ctx, stop := joinContexts(r.Context(), serverBaseCtx)
		defer stop()
		sent := 0
		defer func() {
			if zlog != nil {
				z := zlog.Info().Int("lines", sent).Dur("dur", time.Since(start))
				if rid := middleware.GetReqID(r.Context()); rid != "" {
					z = z.Str("request_id", rid)
				}
				z.Msg("stream end")
			}
		}()
		for {
			select {
			case <-ctx.Done():
				return
			case line, ok := <-ch:
				if !ok {
					return
				}
				if _, err := w.Write(line); err != nil {
					return
				}
				if _, err := w.Write(newline); err != nil {
					return
				}
				sent++
				flush()
			}
		}
	})

	r.Get("/events/recent", func(w http.ResponseWriter, r *http.Request) {
		tag := r.URL.Query().Get("type")
		lines := hub.Recent(tag)
		resp := types.RecentResponse{Events: make([]json.RawMessage, 0, len(lines))}
		for _, l := range lines {
			if json.Valid(l) {
				resp.Events = append(resp.Events, json.RawMessage(l))
			}
		}
		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(resp); err != nil {
			writeJSONError(w, http.StatusInternalServerError, "failed to encode response")
		}
	})

	r.Get("/kinds", func(w http.ResponseWriter, r *http.Request) {
		kinds := event.Kinds()
		out := make([]types.KindInfo, 0, len(kinds))
		for _, k := range kinds {
			out = append(out, types.KindInfo{Kind: k.String(), Tag: k.Tag()})
		}
		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(map[string]any{"kinds": out}); err != nil {
			writeJSONError(w, http.StatusInternalServerError, "failed to encode response")
		}
	})

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	r.Get("/metrics", promhttp.Handler().ServeHTTP)

	return r
}

// knownTag reports whether some event kind is written under tag.
func knownTag(tag string) bool {
	for _, k := range event.Kinds() {
		if k.Tag() == tag {
			return true
		}
	}
	return false
}

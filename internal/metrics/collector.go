// Package metrics exposes dispatched events as Prometheus metrics. The
// Collector is loaded as a plugin so it observes every event first.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	"pkgevent/internal/event"
)

// Collector counts events by kind and tracks fetch and catalogue progress.
type Collector struct {
	events     *prometheus.CounterVec
	fetchDone  prometheus.Gauge
	fetchTotal prometheus.Gauge
	catalog    *prometheus.CounterVec
}

// NewCollector creates the collector and registers it with reg.
func NewCollector(reg prometheus.Registerer) *Collector {
	c := &Collector{
		events: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "pkgevent",
				Name:      "events_total",
				Help:      "Total number of dispatched events",
			},
			[]string{"kind"},
		),
		fetchDone: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "pkgevent",
			Subsystem: "fetch",
			Name:      "done_bytes",
			Help:      "Bytes fetched for the current download",
		}),
		fetchTotal: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "pkgevent",
			Subsystem: "fetch",
			Name:      "total_bytes",
			Help:      "Size of the current download",
		}),
		catalog: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "pkgevent",
				Subsystem: "catalog",
				Name:      "entries_total",
				Help:      "Catalogue entries changed by incremental updates",
			},
			[]string{"change"},
		),
	}
	reg.MustRegister(c.events, c.fetchDone, c.fetchTotal, c.catalog)
	return c
}

func (c *Collector) Name() string { return "metrics" }

// HandleEvent implements plugin.Plugin.
func (c *Collector) HandleEvent(ev event.Event) error {
	c.events.WithLabelValues(ev.Kind().String()).Inc()
	switch e := ev.(type) {
	case event.FetchingEvent:
		c.fetchDone.Set(float64(e.Done))
		c.fetchTotal.Set(float64(e.Total))
	case event.IncrementalUpdateEvent:
		c.catalog.WithLabelValues("updated").Add(float64(e.Updated))
		c.catalog.WithLabelValues("removed").Add(float64(e.Removed))
		c.catalog.WithLabelValues("added").Add(float64(e.Added))
		c.catalog.WithLabelValues("processed").Add(float64(e.Processed))
	}
	return nil
}

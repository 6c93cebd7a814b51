// Package metric provides Prometheus metrics for tab-bookmark.
package metric

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Collector holds counters for bookmark operations. A nil *Collector is
// valid and drops all observations, so callers never guard increments.
type Collector struct {
	saves           prometheus.Counter
	opens           prometheus.Counter
	deletes         prometheus.Counter
	renames         prometheus.Counter
	restoreFailures prometheus.Counter
}

// NewCollector creates a collector and registers it with registry.
func NewCollector(registry *prometheus.Registry) *Collector {
	c := &Collector{
		saves: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "tab_bookmark",
			Name:      "saves_total",
			Help:      "Total bookmark snapshots saved",
		}),
		opens: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "tab_bookmark",
			Name:      "opens_total",
			Help:      "Total bookmarks opened",
		}),
		deletes: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "tab_bookmark",
			Name:      "deletes_total",
			Help:      "Total bookmarks deleted",
		}),
		renames: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "tab_bookmark",
			Name:      "renames_total",
			Help:      "Total bookmarks renamed",
		}),
		restoreFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "tab_bookmark",
			Name:      "buffer_restore_failures_total",
			Help:      "Total buffers that failed to reopen during restore",
		}),
	}

	registry.MustRegister(c.saves, c.opens, c.deletes, c.renames, c.restoreFailures)
	return c
}

// Save records a saved snapshot.
func (c *Collector) Save() {
	if c != nil {
		c.saves.Inc()
	}
}

// Open records an opened bookmark.
func (c *Collector) Open() {
	if c != nil {
		c.opens.Inc()
	}
}

// Delete records a deleted bookmark.
func (c *Collector) Delete() {
	if c != nil {
		c.deletes.Inc()
	}
}

// Rename records a renamed bookmark.
func (c *Collector) Rename() {
	if c != nil {
		c.renames.Inc()
	}
}

// RestoreFailure records a buffer that failed to reopen.
func (c *Collector) RestoreFailure() {
	if c != nil {
		c.restoreFailures.Inc()
	}
}

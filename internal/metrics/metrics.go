// Package metrics exposes Prometheus collectors for the entry store.
package metrics

import (
	"errors"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/sobirin-dev/hendshake/internal/domain"
	"github.com/sobirin-dev/hendshake/internal/entrystore"
)

var Entries = promauto.NewGauge(prometheus.GaugeOpts{
	Namespace: "hendshake",
	Name:      "entries",
	Help:      "Number of entries currently held by the store.",
})

var EntriesAdded = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "hendshake",
	Name:      "entries_added_total",
	Help:      "Entries created, by category.",
}, []string{"category"})

var EntriesRemoved = promauto.NewCounter(prometheus.CounterOpts{
	Namespace: "hendshake",
	Name:      "entries_removed_total",
	Help:      "Entries removed.",
})

var ValidationFailures = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "hendshake",
	Name:      "validation_failures_total",
	Help:      "Rejected creations, by empty field.",
}, []string{"field"})

var SnapshotWriteFailures = promauto.NewCounter(prometheus.CounterOpts{
	Namespace: "hendshake",
	Name:      "snapshot_write_failures_total",
	Help:      "Snapshot writes that failed after a mutation.",
})

// Track keeps the collectors in sync with s until the returned function is called.
func Track(s *entrystore.Store) (stop func()) {
	Entries.Set(float64(s.Count()))

	return s.Subscribe(func(ev entrystore.Event) {
		Entries.Set(float64(ev.Count))

		switch ev.Kind {
		case entrystore.EventAdded:
			EntriesAdded.WithLabelValues(categoryLabel(ev.Entry.Category)).Inc()
		case entrystore.EventRemoved:
			EntriesRemoved.Inc()
		}

		if ev.SaveErr != nil {
			SnapshotWriteFailures.Inc()
		}
	})
}

// RecordValidationFailure counts err if it is a validation error.
func RecordValidationFailure(err error) {
	var verr *domain.ValidationError
	if errors.As(err, &verr) {
		ValidationFailures.WithLabelValues(verr.Field).Inc()
	}
}

// Handler serves the default registry.
func Handler() http.Handler {
	return promhttp.Handler()
}

// unknown categories share one label to keep cardinality bounded
func categoryLabel(c domain.Category) string {
	if c.Known() {
		return string(c)
	}
	return "other"
}

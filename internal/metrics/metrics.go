package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Label values for the "index" label.
const (
	IndexBaseTable = "base"
)

// Label values for the "kind" label.
const (
	KindItemEvent     = "item_event"
	KindItemEventHash = "item_event_hash"
)

var (
	StorePages = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "itemread_store_pages_total",
		Help: "Pages fetched from the event store",
	}, []string{"index"})

	StoreQueryDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "itemread_store_query_duration_seconds",
		Help:    "Latency of a single event store page query",
		Buckets: prometheus.DefBuckets,
	}, []string{"index"})

	RecordsDecoded = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "itemread_records_decoded_total",
		Help: "Records decoded into typed entities",
	}, []string{"kind"})

	// RecordsDropped counts records skipped because they could not be decoded.
	// A non-zero rate means reads are silently returning partial histories.
	RecordsDropped = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "itemread_records_dropped_total",
		Help: "Records dropped because they could not be decoded",
	}, []string{"kind"})
)

func init() {
	prometheus.MustRegister(StorePages, StoreQueryDuration, RecordsDecoded, RecordsDropped)
}

// IndexLabel maps a store index name to its metric label value.
func IndexLabel(index string) string {
	if index == "" {
		return IndexBaseTable
	}
	return index
}

// Handler serves the default registry in the Prometheus exposition format.
func Handler() http.Handler {
	return promhttp.Handler()
}

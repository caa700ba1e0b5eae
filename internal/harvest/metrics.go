package harvest

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// TotalItemsPublished tracks update items written into snapshots.
	TotalItemsPublished = promauto.NewCounter(prometheus.CounterOpts{
		Name: "harvester_items_published_total",
		Help: "The total number of update items published into snapshots.",
	})
	// TotalSourceFailures tracks sources skipped because their pipeline failed.
	TotalSourceFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "harvester_source_failures_total",
		Help: "The total number of per-source harvest failures.",
	})
	// TotalRowsDiscarded tracks candidate rows dropped for unparseable dates.
	// The discard policy trades recall for precision; this makes the loss visible.
	TotalRowsDiscarded = promauto.NewCounter(prometheus.CounterOpts{
		Name: "harvester_rows_discarded_total",
		Help: "The total number of candidate rows discarded for unparseable dates.",
	})
	// TotalFetches tracks HTTP requests dispatched against source endpoints.
	TotalFetches = promauto.NewCounter(prometheus.CounterOpts{
		Name: "harvester_fetches_total",
		Help: "The total number of source fetches attempted.",
	})
)

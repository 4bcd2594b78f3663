// Package metrics exposes Prometheus collectors for the auction site.
package metrics

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Bid outcomes
const (
	BidAccepted = "accepted"
	BidRejected = "rejected"
	BidInvalid  = "invalid"
	BidConflict = "conflict"
	BidError    = "error"
)

var (
	// BidsTotal counts bid attempts by outcome.
	BidsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "commerce_bids_total",
		Help: "Total number of bid attempts by outcome",
	}, []string{"outcome"})

	// ListingsClosed counts listings closed by their owners.
	ListingsClosed = promauto.NewCounter(prometheus.CounterOpts{
		Name: "commerce_listings_closed_total",
		Help: "Total number of listings closed",
	})

	// HTTPRequestDuration records request latency by route and status.
	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "commerce_http_request_duration_seconds",
		Help:    "HTTP request latency in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "route", "status"})
)

// ObserveBid increments the bid counter for outcome
func ObserveBid(outcome string) {
	BidsTotal.WithLabelValues(outcome).Inc()
}

// ObserveRequest records the latency of a served request. route is the
// matched route pattern so IDs do not explode the label set.
func ObserveRequest(method, route string, status int, start time.Time) {
	if route == "" {
		route = "unmatched"
	}
	HTTPRequestDuration.WithLabelValues(method, route, strconv.Itoa(status)).Observe(time.Since(start).Seconds())
}

// Handler serves the default registry
func Handler() gin.HandlerFunc {
	return gin.WrapH(promhttp.Handler())
}

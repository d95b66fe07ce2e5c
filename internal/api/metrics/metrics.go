// Package metrics defines the custom Prometheus collectors of the marketplace
// API. HTTP request metrics come from the echoprometheus middleware; the
// collectors here count business outcomes.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "marketplace"

// Result label values shared by the counters below.
const (
	ResultSuccess  = "success"
	ResultInvalid  = "invalid"
	ResultConflict = "conflict"
	ResultDenied   = "denied"
	ResultError    = "error"
)

// AuthAttemptsTotal counts register and login calls.
// Labels:
//   - action: "register" or "login"
//   - result: success, invalid, conflict, denied or error
var AuthAttemptsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "auth_attempts_total",
		Help:      "Total number of register and login attempts, by outcome.",
	},
	[]string{"action", "result"},
)

// ProfileUpdatesTotal counts PATCH /user/profile outcomes.
var ProfileUpdatesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "profile_updates_total",
		Help:      "Total number of profile update requests, by outcome.",
	},
	[]string{"result"},
)

// ProfileWritesTotal counts the writes committed by successful profile updates.
// Label:
//   - target: "user", "provider_profile" or "client_profile"
var ProfileWritesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "profile_writes_total",
		Help:      "Total number of committed profile writes, by target record.",
	},
	[]string{"target"},
)

// DirectoryQueriesTotal counts provider directory lookups.
// Label:
//   - filter: "none", "city", "category" or "city_category"
var DirectoryQueriesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "directory_queries_total",
		Help:      "Total number of provider directory queries, by applied filter.",
	},
	[]string{"filter"},
)

var DirectoryResultSize = promauto.NewHistogram(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "directory_result_size",
		Help:      "Number of providers returned per directory query.",
		Buckets:   []float64{0, 1, 5, 10, 25, 50, 100, 250, 500},
	},
)

// UploadsTotal counts upload relay outcomes.
var UploadsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "uploads_total",
		Help:      "Total number of file uploads, by outcome.",
	},
	[]string{"result"},
)

// FilterLabel names the combination of directory filters in effect.
func FilterLabel(city, category bool) string {
	switch {
	case city && category:
		return "city_category"
	case city:
		return "city"
	case category:
		return "category"
	default:
		return "none"
	}
}

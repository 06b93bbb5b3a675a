package rest

import (
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/campusrooms/booking-client/internal/core/domain"
)

const namespace = "booking_client"

// requestsTotal counts backend calls by logical operation and outcome.
// Labels:
//   - operation: "list", "create", "update", "delete", "approve",
//     "admin_delete", "rooms", "login", "register", "profile"
//   - outcome: "ok", "rejected", "session_expired", "network", "invalid_response", "error"
var requestsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "requests_total",
		Help:      "Total number of backend API calls, by operation and outcome.",
	},
	[]string{"operation", "outcome"},
)

// requestDuration measures wall time per backend call.
var requestDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "request_duration_seconds",
		Help:      "Duration of backend API calls from send to decode.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"operation"},
)

func observeRequest(op string, elapsed time.Duration, err error) {
	requestsTotal.WithLabelValues(op, outcomeLabel(err)).Inc()
	requestDuration.WithLabelValues(op).Observe(elapsed.Seconds())
}

func outcomeLabel(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, domain.ErrSessionExpired):
		return "session_expired"
	case errors.Is(err, domain.ErrNetworkUnavailable):
		return "network"
	case errors.Is(err, domain.ErrInvalidResponse):
		return "invalid_response"
	default:
		if _, ok := domain.IsRequestError(err); ok {
			return "rejected"
		}
		return "error"
	}
}

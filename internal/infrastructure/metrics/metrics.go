// Package metrics provides Prometheus instrumentation for ceremonies,
// check-ins, housekeeping and the HTTP surface.
package metrics

import (
	"sync/atomic"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	// Namespace is the Prometheus namespace for all metrics
	Namespace = "smartcheckin"

	LabelCeremony   = "ceremony"
	LabelOutcome    = "outcome"
	LabelMethod     = "method"
	LabelRoute      = "route"
	LabelStatusCode = "status_code"

	CeremonyRegistrationBegin    = "registration_begin"
	CeremonyRegistrationComplete = "registration_complete"
	CeremonyLoginBegin           = "login_begin"
	CeremonyLoginComplete        = "login_complete"

	// OutcomeSuccess is used for successful operations; failures are labelled
	// with the error type.
	OutcomeSuccess        = "success"
	OutcomeAlreadyChecked = "already_checked_in"
)

var (
	// CeremoniesTotal counts WebAuthn ceremony steps by outcome.
	CeremoniesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: Namespace,
			Subsystem: "webauthn",
			Name:      "ceremonies_total",
			Help:      "Total number of WebAuthn ceremony steps by ceremony and outcome",
		},
		[]string{LabelCeremony, LabelOutcome},
	)

	// CheckinsTotal counts check-in attempts by outcome.
	CheckinsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "checkins_total",
			Help:      "Total number of check-in attempts by outcome",
		},
		[]string{LabelOutcome},
	)

	// ChallengesSweptTotal counts expired challenges removed by housekeeping.
	ChallengesSweptTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: Namespace,
			Subsystem: "webauthn",
			Name:      "challenges_swept_total",
			Help:      "Total number of expired challenges removed",
		},
	)

	// HTTPRequestsTotal counts HTTP requests by method, route and status code.
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: Namespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests by method, route and status code",
		},
		[]string{LabelMethod, LabelRoute, LabelStatusCode},
	)

	// HTTPRequestDuration tracks request latency in seconds.
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: Namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "Duration of HTTP requests in seconds",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{LabelMethod, LabelRoute},
	)

	enabled atomic.Bool
)

func init() {
	enabled.Store(true)
}

// RecordCeremony records one ceremony step.
func RecordCeremony(ceremony, outcome string) {
	if !enabled.Load() {
		return
	}
	CeremoniesTotal.WithLabelValues(ceremony, outcome).Inc()
}

// RecordCheckin records one check-in attempt.
func RecordCheckin(outcome string) {
	if !enabled.Load() {
		return
	}
	CheckinsTotal.WithLabelValues(outcome).Inc()
}

// RecordChallengeSweep adds the number of challenges removed by one sweep.
func RecordChallengeSweep(count int) {
	if !enabled.Load() || count <= 0 {
		return
	}
	ChallengesSweptTotal.Add(float64(count))
}

// RecordHTTPRequest records an HTTP request with its duration in seconds.
func RecordHTTPRequest(method, route, statusCode string, duration float64) {
	if !enabled.Load() {
		return
	}
	HTTPRequestsTotal.WithLabelValues(method, route, statusCode).Inc()
	HTTPRequestDuration.WithLabelValues(method, route).Observe(duration)
}

// Enable enables metrics collection.
func Enable() {
	enabled.Store(true)
}

// Disable disables metrics collection.
func Disable() {
	enabled.Store(false)
}

func IsEnabled() bool {
	return enabled.Load()
}

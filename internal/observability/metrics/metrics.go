package metrics

import "github.com/prometheus/client_golang/prometheus"

// BookingMetrics exposes counters/histograms for the booking client flows.
type BookingMetrics struct {
	probeTotal       *prometheus.CounterVec
	modeTransitions  *prometheus.CounterVec
	submissionsTotal *prometheus.CounterVec
	requestLatency   *prometheus.HistogramVec
}

func NewBookingMetrics(reg prometheus.Registerer) *BookingMetrics {
	m := &BookingMetrics{
		probeTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "cocoa",
			Subsystem: "connectivity",
			Name:      "probe_total",
			Help:      "Total health probes by outcome",
		}, []string{"outcome"}),
		modeTransitions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "cocoa",
			Subsystem: "connectivity",
			Name:      "mode_transitions_total",
			Help:      "Online/offline mode transitions",
		}, []string{"to"}),
		submissionsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "cocoa",
			Subsystem: "booking",
			Name:      "submissions_total",
			Help:      "Booking submission attempts by outcome and mode",
		}, []string{"outcome", "mode"}),
		requestLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "cocoa",
			Subsystem: "booking",
			Name:      "request_latency_seconds",
			Help:      "Latency of backend requests",
			Buckets:   prometheus.DefBuckets,
		}, []string{"operation"}),
	}
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	reg.MustRegister(m.probeTotal, m.modeTransitions, m.submissionsTotal, m.requestLatency)
	return m
}

func (m *BookingMetrics) ObserveProbe(ok bool) {
	if m == nil {
		return
	}
	outcome := "down"
	if ok {
		outcome = "up"
	}
	m.probeTotal.WithLabelValues(outcome).Inc()
}

func (m *BookingMetrics) ObserveModeTransition(online bool) {
	if m == nil {
		return
	}
	to := "offline"
	if online {
		to = "online"
	}
	m.modeTransitions.WithLabelValues(to).Inc()
}

func (m *BookingMetrics) ObserveSubmission(outcome, mode string) {
	if m == nil {
		return
	}
	m.submissionsTotal.WithLabelValues(outcome, mode).Inc()
}

func (m *BookingMetrics) ObserveRequestLatency(operation string, seconds float64) {
	if m == nil {
		return
	}
	m.requestLatency.WithLabelValues(operation).Observe(seconds)
}

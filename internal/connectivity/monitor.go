// Package connectivity decides whether the booking backend is reachable
// and which candidate endpoint to use.
package connectivity

import (
	"context"
	"sync"
	"time"

	"github.com/Gitgirlels/cocoa-code/internal/observability/metrics"
	"github.com/Gitgirlels/cocoa-code/internal/retry"
	"github.com/Gitgirlels/cocoa-code/pkg/logging"
)

// HealthChecker is the piece of the API client the monitor needs.
type HealthChecker interface {
	Health(ctx context.Context) error
}

// MonitorConfig wires a Monitor.
type MonitorConfig struct {
	// Candidates are tried in order; the first healthy one becomes the
	// active endpoint and stays sticky until it fails.
	Candidates []string
	NewClient  func(base string) HealthChecker

	// Timeout bounds each candidate's health check so a hung server
	// cannot stall the sweep.
	Timeout time.Duration
	// Interval is the re-probe cadence while offline.
	Interval time.Duration
	// Attempts is the per-candidate health check bound within one sweep.
	Attempts int

	Logger  *logging.Logger
	Metrics *metrics.BookingMetrics

	// OnTransition fires on every online/offline flip, after logging.
	OnTransition func(online bool, endpoint string)
}

// Monitor probes candidates sequentially and tracks the session's
// online/offline mode. At most one probe sweep runs at a time.
type Monitor struct {
	candidates []string
	newClient  func(base string) HealthChecker
	timeout    time.Duration
	interval   time.Duration
	attempts   int

	logger       *logging.Logger
	metrics      *metrics.BookingMetrics
	onTransition func(online bool, endpoint string)

	probeMu sync.Mutex

	mu         sync.RWMutex
	active     string
	online     bool
	everProbed bool
}

// NewMonitor constructs a Monitor with 5s probes every 30s by default.
func NewMonitor(cfg MonitorConfig) *Monitor {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 5 * time.Second
	}
	if cfg.Interval <= 0 {
		cfg.Interval = 30 * time.Second
	}
	if cfg.Attempts < 1 {
		cfg.Attempts = 1
	}
	if cfg.Logger == nil {
		cfg.Logger = logging.Default()
	}
	return &Monitor{
		candidates:   cfg.Candidates,
		newClient:    cfg.NewClient,
		timeout:      cfg.Timeout,
		interval:     cfg.Interval,
		attempts:     cfg.Attempts,
		logger:       cfg.Logger,
		metrics:      cfg.Metrics,
		onTransition: cfg.OnTransition,
	}
}

// Active reports the sticky endpoint and whether the session is online.
func (m *Monitor) Active() (string, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.active, m.online
}

// Probe sweeps the candidates in order and returns the first healthy one.
// Candidate i+1 is only tried after candidate i resolved. Concurrent
// callers serialize; the sweep result is shared through Active.
func (m *Monitor) Probe(ctx context.Context) (string, bool) {
	m.probeMu.Lock()
	defer m.probeMu.Unlock()

	for _, base := range m.candidates {
		if ctx.Err() != nil {
			break
		}
		if m.check(ctx, base) {
			m.metrics.ObserveProbe(true)
			m.setState(base, true)
			return base, true
		}
		m.metrics.ObserveProbe(false)
	}
	m.setState("", false)
	return "", false
}

func (m *Monitor) check(ctx context.Context, base string) bool {
	client := m.newClient(base)
	err := retry.Do(ctx, retry.Policy{MaxAttempts: m.attempts, BaseDelay: m.timeout / 4}, func(ctx context.Context) error {
		probeCtx, cancel := context.WithTimeout(ctx, m.timeout)
		defer cancel()
		return client.Health(probeCtx)
	})
	if err != nil {
		m.logger.Debug("health probe failed", "endpoint", base, "error", err)
		return false
	}
	return true
}

// MarkDown records that the active endpoint stopped answering, flipping
// the session offline until the next probe succeeds.
func (m *Monitor) MarkDown() {
	m.setState("", false)
}

func (m *Monitor) setState(endpoint string, online bool) {
	m.mu.Lock()
	changed := !m.everProbed || online != m.online || endpoint != m.active
	m.everProbed = true
	m.active = endpoint
	m.online = online
	m.mu.Unlock()

	if !changed {
		return
	}
	if online {
		m.logger.Info("connected to booking API", "endpoint", endpoint)
	} else {
		m.logger.Warn("no booking API reachable, entering offline mode")
	}
	m.metrics.ObserveModeTransition(online)
	if m.onTransition != nil {
		m.onTransition(online, endpoint)
	}
}

// Run re-probes on the configured interval while offline, until ctx is
// done. Sweeps never overlap a probe started elsewhere.
func (m *Monitor) Run(ctx context.Context) {
	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if _, online := m.Active(); !online {
				m.Probe(ctx)
			}
		}
	}
}

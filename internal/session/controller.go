// Package session owns one booking-form session: the selection state, the
// connectivity monitor, and the submission flow, behind a single
// controller with an explicit lifecycle. UI layers bind controls to
// Apply actions and render from Quote/MonthAvailability.
package session

import (
	"context"
	"crypto/tls"
	"sync"

	"github.com/redis/go-redis/v9"

	"github.com/Gitgirlels/cocoa-code/internal/availability"
	"github.com/Gitgirlels/cocoa-code/internal/booking"
	"github.com/Gitgirlels/cocoa-code/internal/bookingapi"
	"github.com/Gitgirlels/cocoa-code/internal/config"
	"github.com/Gitgirlels/cocoa-code/internal/connectivity"
	"github.com/Gitgirlels/cocoa-code/internal/localstore"
	"github.com/Gitgirlels/cocoa-code/internal/notify"
	"github.com/Gitgirlels/cocoa-code/internal/observability/metrics"
	"github.com/Gitgirlels/cocoa-code/internal/payments"
	"github.com/Gitgirlels/cocoa-code/internal/pricing"
	"github.com/Gitgirlels/cocoa-code/pkg/logging"
)

// Store is the local fallback state a session needs.
type Store interface {
	MonthCount(ctx context.Context, month string) (int, error)
	IncrementMonth(ctx context.Context, month string) (int, error)
	SaveBooking(ctx context.Context, rec booking.Record) error
	LocalBookings(ctx context.Context) ([]booking.Record, error)
}

// Controller is the explicit owner of what the original form kept in
// module-level globals: current selection, active endpoint, and mode.
type Controller struct {
	cfg     *config.Config
	logger  *logging.Logger
	metrics *metrics.BookingMetrics

	mu        sync.Mutex
	selection *pricing.Selection

	store     Store
	monitor   *connectivity.Monitor
	checker   *availability.Checker
	submitter *booking.Submitter
	payments  *payments.Processor
	notifier  *notify.Notifier

	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// Option tweaks controller construction.
type Option func(*options)

type options struct {
	sink    notify.Sink
	store   Store
	metrics *metrics.BookingMetrics
}

// WithSink routes notifications somewhere other than the log.
func WithSink(sink notify.Sink) Option {
	return func(o *options) { o.sink = sink }
}

// WithStore overrides the local store (tests, custom persistence).
func WithStore(store Store) Option {
	return func(o *options) { o.store = store }
}

// WithMetrics supplies a metrics set bound to a custom registry.
func WithMetrics(m *metrics.BookingMetrics) Option {
	return func(o *options) { o.metrics = m }
}

// New wires a controller from configuration.
func New(cfg *config.Config, logger *logging.Logger, opts ...Option) *Controller {
	if logger == nil {
		logger = logging.Default()
	}
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	store := o.store
	if store == nil {
		store = buildStore(cfg)
	}

	newClient := func(base string) *bookingapi.Client {
		return bookingapi.New(bookingapi.Config{BaseURL: base, Timeout: cfg.RequestTimeout, Logger: logger})
	}

	notifier := notify.NewNotifier(o.sink, logger)

	monitor := connectivity.NewMonitor(connectivity.MonitorConfig{
		Candidates: cfg.APIBaseURLs,
		NewClient: func(base string) connectivity.HealthChecker {
			return bookingapi.New(bookingapi.Config{BaseURL: base, Timeout: cfg.ProbeTimeout, Logger: logger})
		},
		Timeout:  cfg.ProbeTimeout,
		Interval: cfg.ProbeInterval,
		Logger:   logger,
		Metrics:  o.metrics,
		OnTransition: func(online bool, endpoint string) {
			notifier.ConnectivityChanged(online)
		},
	})

	checker := availability.NewChecker(availability.CheckerConfig{
		Endpoints: monitor,
		NewClient: func(base string) availability.RemoteClient { return newClient(base) },
		Store:     store,
		Capacity:  cfg.MaxBookingsPerMonth,
		Logger:    logger,
	})

	submitter := booking.NewSubmitter(booking.SubmitterConfig{
		Monitor:         monitor,
		Checker:         checker,
		Store:           store,
		NewClient:       func(base string) booking.APIClient { return newClient(base) },
		MaxAttempts:     cfg.SubmitMaxAttempts,
		BaseDelay:       cfg.SubmitBaseDelay,
		OfflineFallback: cfg.OfflineFallback,
		Logger:          logger,
		Metrics:         o.metrics,
	})

	processor := payments.NewProcessor(payments.ProcessorConfig{
		Endpoints: monitor,
		NewClient: func(base string) payments.Client { return newClient(base) },
		Logger:    logger,
	})

	return &Controller{
		cfg:       cfg,
		logger:    logger,
		metrics:   o.metrics,
		selection: pricing.NewSelection(pricing.DefaultCatalog(), pricing.PolicyFrom(cfg.MonthlyExtras, cfg.DiscountScope)),
		store:     store,
		monitor:   monitor,
		checker:   checker,
		submitter: submitter,
		payments:  processor,
		notifier:  notifier,
	}
}

func buildStore(cfg *config.Config) Store {
	if cfg.RedisAddr == "" {
		return localstore.NewMemory()
	}
	opts := &redis.Options{Addr: cfg.RedisAddr, Password: cfg.RedisPassword}
	if cfg.RedisTLS {
		opts.TLSConfig = &tls.Config{MinVersion: tls.VersionTLS12}
	}
	return localstore.NewRedis(redis.NewClient(opts))
}

// Start probes connectivity once (triggering the startup notification)
// and launches the background re-probe loop.
func (c *Controller) Start(ctx context.Context) {
	c.monitor.Probe(ctx)

	runCtx, cancel := context.WithCancel(context.Background())
	c.cancel = cancel
	c.wg.Add(1)
	go func() {
		defer c.wg.Done()
		c.monitor.Run(runCtx)
	}()
}

// Close stops the background loop. Safe to call without Start.
func (c *Controller) Close() {
	if c.cancel != nil {
		c.cancel()
	}
	c.wg.Wait()
}

// Online reports the session's current mode.
func (c *Controller) Online() bool {
	_, online := c.monitor.Active()
	return online
}

package booking

import (
	"context"
	"net/mail"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"github.com/Gitgirlels/cocoa-code/internal/bookingapi"
	"github.com/Gitgirlels/cocoa-code/internal/observability/metrics"
	"github.com/Gitgirlels/cocoa-code/internal/pricing"
	"github.com/Gitgirlels/cocoa-code/internal/retry"
	"github.com/Gitgirlels/cocoa-code/pkg/logging"
)

var bookingTracer = otel.Tracer("cocoacode.internal.booking")

type endpointMonitor interface {
	Active() (string, bool)
	Probe(ctx context.Context) (string, bool)
	MarkDown()
}

type availabilityChecker interface {
	Check(ctx context.Context, month string) bool
}

type localStore interface {
	IncrementMonth(ctx context.Context, month string) (int, error)
	SaveBooking(ctx context.Context, rec Record) error
}

// APIClient is the slice of the backend client submission needs.
type APIClient interface {
	CreateBooking(ctx context.Context, req bookingapi.BookingRequest) (*bookingapi.BookingCreated, error)
}

// Submitter runs the submission flow: validate, ensure connectivity,
// re-check availability, then persist the record remotely with bounded
// retries, or locally when every endpoint is down.
type Submitter struct {
	monitor   endpointMonitor
	checker   availabilityChecker
	store     localStore
	newClient func(base string) APIClient

	maxAttempts     int
	baseDelay       time.Duration
	offlineFallback bool

	logger  *logging.Logger
	metrics *metrics.BookingMetrics
}

// SubmitterConfig wires a Submitter.
type SubmitterConfig struct {
	Monitor   endpointMonitor
	Checker   availabilityChecker
	Store     localStore
	NewClient func(base string) APIClient

	MaxAttempts     int
	BaseDelay       time.Duration
	OfflineFallback bool

	Logger  *logging.Logger
	Metrics *metrics.BookingMetrics
}

// NewSubmitter constructs a Submitter with defaults matching the form's
// observed behavior: 3 attempts with a 500ms base delay, fallback enabled.
func NewSubmitter(cfg SubmitterConfig) *Submitter {
	if cfg.MaxAttempts < 1 {
		cfg.MaxAttempts = 3
	}
	if cfg.BaseDelay <= 0 {
		cfg.BaseDelay = 500 * time.Millisecond
	}
	if cfg.Logger == nil {
		cfg.Logger = logging.Default()
	}
	return &Submitter{
		monitor:         cfg.Monitor,
		checker:         cfg.Checker,
		store:           cfg.Store,
		newClient:       cfg.NewClient,
		maxAttempts:     cfg.MaxAttempts,
		baseDelay:       cfg.BaseDelay,
		offlineFallback: cfg.OfflineFallback,
		logger:          cfg.Logger,
		metrics:         cfg.Metrics,
	}
}

// Submit runs one submission attempt. On failure the selection is left
// untouched so the user can retry without re-entering anything; resetting
// after success is the caller's job.
func (s *Submitter) Submit(ctx context.Context, req Request, sel *pricing.Selection) (*Record, error) {
	ctx, span := bookingTracer.Start(ctx, "booking.submit")
	defer span.End()
	span.SetAttributes(attribute.String("cocoa.booking_month", req.BookingMonth))

	if err := s.validate(req, sel); err != nil {
		s.metrics.ObserveSubmission("validation_error", "none")
		return nil, err
	}

	endpoint, online := s.monitor.Active()
	if !online {
		// Try to recover connectivity once before giving up on the
		// online path.
		endpoint, online = s.monitor.Probe(ctx)
	}

	if req.BookingMonth != "" && !s.checker.Check(ctx, req.BookingMonth) {
		s.metrics.ObserveSubmission("capacity_error", mode(online))
		return nil, &CapacityError{Month: req.BookingMonth}
	}

	if !online {
		if !s.offlineFallback {
			s.metrics.ObserveSubmission("connectivity_error", "offline")
			return nil, &ConnectivityError{}
		}
		return s.submitLocal(ctx, req, sel)
	}

	rec, err := s.submitRemote(ctx, endpoint, req, sel)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}
	s.metrics.ObserveSubmission("success", "online")
	return rec, nil
}

func (s *Submitter) validate(req Request, sel *pricing.Selection) error {
	vErr := newValidationError()

	if strings.TrimSpace(req.ClientName) == "" {
		vErr.add("clientName", "provide your name")
	}
	if strings.TrimSpace(req.Email) == "" {
		vErr.add("email", "provide an email address")
	} else if _, err := mail.ParseAddress(req.Email); err != nil {
		vErr.add("email", "provide a valid email address")
	}
	if strings.TrimSpace(req.ProjectSpec) == "" {
		vErr.add("projectSpec", "describe your project")
	}
	if _, _, hasService := sel.Service(); hasService && strings.TrimSpace(req.BookingMonth) == "" {
		vErr.add("bookingMonth", "choose a booking month")
	}

	if len(vErr.Fields) > 0 {
		return vErr
	}
	return nil
}

func (s *Submitter) submitRemote(ctx context.Context, endpoint string, req Request, sel *pricing.Selection) (*Record, error) {
	client := s.newClient(endpoint)
	payload := buildPayload(req, sel)

	var created *bookingapi.BookingCreated
	attempts := 0
	err := retry.Do(ctx, retry.Policy{
		MaxAttempts: s.maxAttempts,
		BaseDelay:   s.baseDelay,
		Retryable:   bookingapi.IsRetryable,
	}, func(ctx context.Context) error {
		attempts++
		if attempts > 1 {
			s.logger.Warn("retrying booking submission", "attempt", attempts, "endpoint", endpoint)
		}
		out, err := client.CreateBooking(ctx, payload)
		if err != nil {
			return err
		}
		created = out
		return nil
	})
	if err != nil {
		switch {
		case bookingapi.IsMonthFull(err):
			s.metrics.ObserveSubmission("capacity_error", "online")
			return nil, &CapacityError{Month: req.BookingMonth}
		case bookingapi.IsTimeout(err):
			// The endpoint answered the health probe but cannot take
			// bookings; let the re-probe loop pick another candidate.
			s.monitor.MarkDown()
			s.metrics.ObserveSubmission("timeout", "online")
			return nil, &TimeoutError{Err: err}
		default:
			if bookingapi.IsRetryable(err) {
				s.monitor.MarkDown()
			}
			s.metrics.ObserveSubmission("submission_error", "online")
			return nil, &SubmissionError{Attempts: attempts, Err: err}
		}
	}

	rec := buildRecord(req, sel)
	rec.ProjectID = created.ProjectID
	rec.Status = StatusPendingReview
	s.logger.Info("booking created", "project_id", rec.ProjectID, "month", rec.BookingMonth)
	return rec, nil
}

// submitLocal synthesizes a local booking and bumps the month counter so
// the offline availability view stays honest.
func (s *Submitter) submitLocal(ctx context.Context, req Request, sel *pricing.Selection) (*Record, error) {
	rec := buildRecord(req, sel)
	rec.ProjectID = "local-" + uuid.New().String()
	rec.Local = true

	if err := s.store.SaveBooking(ctx, *rec); err != nil {
		s.metrics.ObserveSubmission("submission_error", "offline")
		return nil, &SubmissionError{Attempts: 1, Err: err}
	}
	if req.BookingMonth != "" {
		count, err := s.store.IncrementMonth(ctx, req.BookingMonth)
		if err != nil {
			s.logger.Error("offline counter update failed", "month", req.BookingMonth, "error", err)
		} else {
			s.logger.Info("offline booking recorded", "project_id", rec.ProjectID, "month", req.BookingMonth, "count", count)
		}
	}
	s.metrics.ObserveSubmission("success", "offline")
	return rec, nil
}

func buildPayload(req Request, sel *pricing.Selection) bookingapi.BookingRequest {
	q := sel.Quote()
	service, _, _ := sel.Service()
	extras := sel.Extras()
	extraNames := make([]string, 0, len(extras))
	for _, e := range extras {
		extraNames = append(extraNames, string(e))
	}
	return bookingapi.BookingRequest{
		ClientName:       req.ClientName,
		Email:            req.Email,
		ProjectSpec:      req.ProjectSpec,
		WebsiteType:      req.WebsiteType,
		BookingMonth:     req.BookingMonth,
		ServiceType:      string(service),
		SubscriptionType: string(sel.Subscription()),
		ExtraServices:    extraNames,
		TotalAmount:      q.Total,
		DiscountCode:     sel.DiscountCode(),
		PrimaryColor:     req.Colors.Primary,
		SecondaryColor:   req.Colors.Secondary,
		AccentColor:      req.Colors.Accent,
	}
}

func buildRecord(req Request, sel *pricing.Selection) *Record {
	q := sel.Quote()
	service, _, _ := sel.Service()
	extras := sel.Extras()
	extraNames := make([]string, 0, len(extras))
	for _, e := range extras {
		extraNames = append(extraNames, string(e))
	}
	return &Record{
		ClientName:    req.ClientName,
		Email:         req.Email,
		ProjectSpec:   req.ProjectSpec,
		WebsiteType:   req.WebsiteType,
		BookingMonth:  req.BookingMonth,
		Colors:        req.Colors,
		Service:       string(service),
		Subscription:  string(sel.Subscription()),
		Extras:        extraNames,
		Total:         q.Total,
		MonthlyTotal:  q.MonthlyTotal,
		DiscountCode:  sel.DiscountCode(),
		Status:        StatusPending,
		PaymentStatus: PaymentStatusPending,
		CreatedAt:     time.Now().UTC(),
	}
}

func mode(online bool) string {
	if online {
		return "online"
	}
	return "offline"
}

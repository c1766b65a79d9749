// Package payments drives the optional card flow that runs once a booking
// record exists: open a charge intent, confirm it, and mark the record.
package payments

import (
	"context"
	"errors"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"github.com/Gitgirlels/cocoa-code/internal/booking"
	"github.com/Gitgirlels/cocoa-code/internal/bookingapi"
	"github.com/Gitgirlels/cocoa-code/pkg/logging"
)

var paymentsTracer = otel.Tracer("cocoacode.internal.payments")

// ErrOffline means no backend is reachable; card details can only be
// collected online, so the record stays payment-pending.
var ErrOffline = errors.New("payments: booking system offline, payment deferred")

// ErrLocalBooking means the record was created in offline mode and has no
// backend identity to attach a payment to yet.
var ErrLocalBooking = errors.New("payments: local booking has no remote record")

type endpointSource interface {
	Active() (string, bool)
}

// Client is the slice of the backend client payments needs.
type Client interface {
	CreatePaymentIntent(ctx context.Context, req bookingapi.PaymentIntentRequest) (*bookingapi.PaymentIntentResponse, error)
	ConfirmPayment(ctx context.Context, req bookingapi.ConfirmPaymentRequest) (*bookingapi.ConfirmPaymentResponse, error)
}

// Processor runs the intent/confirm exchange for a booking record.
type Processor struct {
	endpoints endpointSource
	newClient func(base string) Client
	currency  string
	logger    *logging.Logger
}

// ProcessorConfig wires a Processor.
type ProcessorConfig struct {
	Endpoints endpointSource
	NewClient func(base string) Client
	Currency  string
	Logger    *logging.Logger
}

// NewProcessor constructs a Processor; currency defaults to aud.
func NewProcessor(cfg ProcessorConfig) *Processor {
	if cfg.Currency == "" {
		cfg.Currency = "aud"
	}
	if cfg.Logger == nil {
		cfg.Logger = logging.Default()
	}
	return &Processor{
		endpoints: cfg.Endpoints,
		newClient: cfg.NewClient,
		currency:  cfg.Currency,
		logger:    cfg.Logger,
	}
}

// SaveCard opens an intent for the record's total and confirms it with the
// tokenized payment method. On success the record moves to
// pending_confirmation with card_details_saved.
func (p *Processor) SaveCard(ctx context.Context, rec *booking.Record, paymentMethodID string) error {
	ctx, span := paymentsTracer.Start(ctx, "payments.save_card")
	defer span.End()
	span.SetAttributes(attribute.String("cocoa.project_id", rec.ProjectID))

	if rec.Local {
		return ErrLocalBooking
	}
	base, online := p.endpoints.Active()
	if !online {
		p.logger.Warn("payment deferred, no endpoint reachable", "project_id", rec.ProjectID)
		return ErrOffline
	}

	client := p.newClient(base)
	intent, err := client.CreatePaymentIntent(ctx, bookingapi.PaymentIntentRequest{
		ProjectID: rec.ProjectID,
		Amount:    rec.Total,
		Currency:  p.currency,
	})
	if err != nil {
		span.RecordError(err)
		return fmt.Errorf("payments: create intent: %w", err)
	}

	confirm, err := client.ConfirmPayment(ctx, bookingapi.ConfirmPaymentRequest{
		IntentID:        intent.IntentID,
		PaymentMethodID: paymentMethodID,
	})
	if err != nil {
		span.RecordError(err)
		return fmt.Errorf("payments: confirm intent: %w", err)
	}

	rec.PaymentStatus = booking.PaymentStatusCardSaved
	rec.Status = booking.StatusPendingConfirmation
	p.logger.Info("card details saved", "project_id", rec.ProjectID, "intent_id", intent.IntentID, "status", confirm.Status)
	return nil
}

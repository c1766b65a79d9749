package session

import (
	"context"
	"fmt"

	"github.com/Gitgirlels/cocoa-code/internal/booking"
	"github.com/Gitgirlels/cocoa-code/internal/pricing"
)

// ActionKind names a selection mutation.
type ActionKind string

const (
	ActionSelectService      ActionKind = "select_service"
	ActionSelectSubscription ActionKind = "select_subscription"
	ActionToggleExtra        ActionKind = "toggle_extra"
	ActionApplyDiscount      ActionKind = "apply_discount"
	ActionClearDiscount      ActionKind = "clear_discount"
	ActionReset              ActionKind = "reset"
)

// Action is a declarative selection change. The controller applies it and
// the caller re-renders from Quote; there is no other mutation path.
type Action struct {
	Kind  ActionKind
	Value string
}

// Apply mutates the selection and returns the resulting quote.
func (c *Controller) Apply(a Action) (pricing.Quote, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	switch a.Kind {
	case ActionSelectService:
		c.selection.SelectService(pricing.ServiceType(a.Value))
	case ActionSelectSubscription:
		c.selection.SelectSubscription(pricing.SubscriptionTier(a.Value))
	case ActionToggleExtra:
		c.selection.ToggleExtra(pricing.ExtraType(a.Value))
	case ActionApplyDiscount:
		if err := c.selection.ApplyDiscount(a.Value); err != nil {
			return c.selection.Quote(), err
		}
	case ActionClearDiscount:
		c.selection.ClearDiscount()
	case ActionReset:
		c.selection.Reset()
	default:
		return c.selection.Quote(), fmt.Errorf("session: unknown action %q", a.Kind)
	}
	return c.selection.Quote(), nil
}

// Quote prices the current selection.
func (c *Controller) Quote() pricing.Quote {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.selection.Quote()
}

// MonthAvailability resolves every configured booking month in one pass.
func (c *Controller) MonthAvailability(ctx context.Context) map[string]bool {
	return c.checker.Snapshot(ctx, c.cfg.BookingMonths)
}

// SubmitBooking runs the submission flow for the current selection. On
// success the selection resets for the next enquiry; on failure it is left
// intact so the user can fix and resubmit. Either way the outcome is
// pushed through the notifier.
func (c *Controller) SubmitBooking(ctx context.Context, req booking.Request) (*booking.Record, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	rec, err := c.submitter.Submit(ctx, req, c.selection)
	c.notifier.BookingOutcome(rec, err)
	if err != nil {
		return nil, err
	}
	c.selection.Reset()
	return rec, nil
}

// SaveCardDetails attaches a tokenized payment method to a submitted
// booking.
func (c *Controller) SaveCardDetails(ctx context.Context, rec *booking.Record, paymentMethodID string) error {
	return c.payments.SaveCard(ctx, rec, paymentMethodID)
}

// LocalBookings lists records captured while offline, oldest first.
func (c *Controller) LocalBookings(ctx context.Context) ([]booking.Record, error) {
	return c.store.LocalBookings(ctx)
}

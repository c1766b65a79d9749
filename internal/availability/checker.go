// Package availability answers "can a new booking be accepted for month M"
// from the backend when online, and from the local counter otherwise.
package availability

import (
	"context"

	"github.com/Gitgirlels/cocoa-code/pkg/logging"
)

type endpointSource interface {
	Active() (string, bool)
}

// RemoteClient is the slice of the API client availability needs.
type RemoteClient interface {
	Availability(ctx context.Context, month string) (bool, error)
}

type counterStore interface {
	MonthCount(ctx context.Context, month string) (int, error)
}

// Checker resolves month availability. It always resolves to a boolean:
// any remote failure degrades to the local counter, never to an error.
type Checker struct {
	endpoints endpointSource
	newClient func(base string) RemoteClient
	store     counterStore
	capacity  int
	logger    *logging.Logger
}

// CheckerConfig wires a Checker.
type CheckerConfig struct {
	Endpoints endpointSource
	NewClient func(base string) RemoteClient
	Store     counterStore
	Capacity  int
	Logger    *logging.Logger
}

// NewChecker constructs a Checker; capacity defaults to 4 per month.
func NewChecker(cfg CheckerConfig) *Checker {
	if cfg.Capacity < 1 {
		cfg.Capacity = 4
	}
	if cfg.Logger == nil {
		cfg.Logger = logging.Default()
	}
	return &Checker{
		endpoints: cfg.Endpoints,
		newClient: cfg.NewClient,
		store:     cfg.Store,
		capacity:  cfg.Capacity,
		logger:    cfg.Logger,
	}
}

// Check reports whether month M can take another booking.
func (c *Checker) Check(ctx context.Context, month string) bool {
	if base, online := c.endpoints.Active(); online {
		available, err := c.newClient(base).Availability(ctx, month)
		if err == nil {
			return available
		}
		c.logger.Warn("availability lookup failed, using local counter", "month", month, "error", err)
	}
	return c.checkLocal(ctx, month)
}

func (c *Checker) checkLocal(ctx context.Context, month string) bool {
	count, err := c.store.MonthCount(ctx, month)
	if err != nil {
		// The caller still needs an answer; err on the side of
		// accepting the booking like the unknown-month case does.
		c.logger.Error("local counter read failed", "month", month, "error", err)
		return true
	}
	return count < c.capacity
}

// Snapshot resolves availability for every month, for refreshing the
// month selector in one pass.
func (c *Checker) Snapshot(ctx context.Context, months []string) map[string]bool {
	out := make(map[string]bool, len(months))
	for _, m := range months {
		out[m] = c.Check(ctx, m)
	}
	return out
}

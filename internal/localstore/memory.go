// Package localstore keeps the offline approximation of backend state: a
// per-month booking counter and the bookings created while no endpoint was
// reachable.
package localstore

import (
	"context"
	"sync"

	"github.com/Gitgirlels/cocoa-code/internal/booking"
)

// Memory is the in-process store used for a single page session.
type Memory struct {
	mu       sync.Mutex
	months   map[string]int
	bookings []booking.Record
}

// NewMemory returns an empty in-memory store. Unknown months count as zero.
func NewMemory() *Memory {
	return &Memory{months: make(map[string]int)}
}

// MonthCount reports how many bookings were locally taken for the month.
func (m *Memory) MonthCount(ctx context.Context, month string) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.months[month], nil
}

// IncrementMonth bumps the month counter and returns the new count.
func (m *Memory) IncrementMonth(ctx context.Context, month string) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.months[month]++
	return m.months[month], nil
}

// SaveBooking appends a locally created booking.
func (m *Memory) SaveBooking(ctx context.Context, rec booking.Record) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.bookings = append(m.bookings, rec)
	return nil
}

// LocalBookings returns a copy of all locally created bookings.
func (m *Memory) LocalBookings(ctx context.Context) ([]booking.Record, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]booking.Record, len(m.bookings))
	copy(out, m.bookings)
	return out, nil
}

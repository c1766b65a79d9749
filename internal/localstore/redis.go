package localstore

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/Gitgirlels/cocoa-code/internal/booking"
)

const (
	monthsKey   = "cocoa:booking:months"
	bookingsKey = "cocoa:booking:local"
)

// Redis persists the offline counters and locally created bookings in
// Redis, so a kiosk deployment survives process restarts with its offline
// state intact.
type Redis struct {
	client *redis.Client
}

// NewRedis wraps an existing client.
func NewRedis(client *redis.Client) *Redis {
	if client == nil {
		panic("localstore: redis client required")
	}
	return &Redis{client: client}
}

// MonthCount reports the locally taken bookings for the month.
func (r *Redis) MonthCount(ctx context.Context, month string) (int, error) {
	count, err := r.client.HGet(ctx, monthsKey, month).Int()
	if err == redis.Nil {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("localstore: read month counter: %w", err)
	}
	return count, nil
}

// IncrementMonth bumps the month counter and returns the new count.
func (r *Redis) IncrementMonth(ctx context.Context, month string) (int, error) {
	count, err := r.client.HIncrBy(ctx, monthsKey, month, 1).Result()
	if err != nil {
		return 0, fmt.Errorf("localstore: increment month counter: %w", err)
	}
	return int(count), nil
}

// SaveBooking appends a locally created booking as JSON.
func (r *Redis) SaveBooking(ctx context.Context, rec booking.Record) error {
	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("localstore: marshal booking: %w", err)
	}
	if err := r.client.RPush(ctx, bookingsKey, data).Err(); err != nil {
		return fmt.Errorf("localstore: save booking: %w", err)
	}
	return nil
}

// LocalBookings returns all locally created bookings.
func (r *Redis) LocalBookings(ctx context.Context) ([]booking.Record, error) {
	raw, err := r.client.LRange(ctx, bookingsKey, 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("localstore: list bookings: %w", err)
	}
	out := make([]booking.Record, 0, len(raw))
	for _, item := range raw {
		var rec booking.Record
		if err := json.Unmarshal([]byte(item), &rec); err != nil {
			return nil, fmt.Errorf("localstore: unmarshal booking: %w", err)
		}
		out = append(out, rec)
	}
	return out, nil
}

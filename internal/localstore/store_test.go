package localstore

import (
	"context"
	"testing"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Gitgirlels/cocoa-code/internal/booking"
)

type store interface {
	MonthCount(ctx context.Context, month string) (int, error)
	IncrementMonth(ctx context.Context, month string) (int, error)
	SaveBooking(ctx context.Context, rec booking.Record) error
	LocalBookings(ctx context.Context) ([]booking.Record, error)
}

func newRedisStore(t *testing.T) store {
	mr := miniredis.RunT(t)
	return NewRedis(redis.NewClient(&redis.Options{Addr: mr.Addr()}))
}

func runStoreTests(t *testing.T, name string, build func(t *testing.T) store) {
	ctx := context.Background()

	t.Run(name+"/unknown month counts zero", func(t *testing.T) {
		s := build(t)
		count, err := s.MonthCount(ctx, "December 2025")
		require.NoError(t, err)
		assert.Equal(t, 0, count)
	})

	t.Run(name+"/increment", func(t *testing.T) {
		s := build(t)
		for want := 1; want <= 4; want++ {
			count, err := s.IncrementMonth(ctx, "August 2025")
			require.NoError(t, err)
			assert.Equal(t, want, count)
		}
		other, err := s.MonthCount(ctx, "July 2025")
		require.NoError(t, err)
		assert.Equal(t, 0, other, "months are independent")
	})

	t.Run(name+"/bookings round trip", func(t *testing.T) {
		s := build(t)
		rec := booking.Record{
			ProjectID:     "local-1",
			ClientName:    "Jane Doe",
			Email:         "jane@example.com",
			BookingMonth:  "August 2025",
			Service:       "landing",
			Subscription:  "basic",
			Extras:        []string{"seo"},
			Total:         1025,
			Status:        booking.StatusPending,
			PaymentStatus: booking.PaymentStatusPending,
			Local:         true,
		}
		require.NoError(t, s.SaveBooking(ctx, rec))

		got, err := s.LocalBookings(ctx)
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, "local-1", got[0].ProjectID)
		assert.Equal(t, 1025, got[0].Total)
		assert.True(t, got[0].Local)
	})
}

func TestMemoryStore(t *testing.T) {
	runStoreTests(t, "memory", func(t *testing.T) store { return NewMemory() })
}

func TestRedisStore(t *testing.T) {
	runStoreTests(t, "redis", newRedisStore)
}

package availability

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Gitgirlels/cocoa-code/internal/localstore"
)

type fakeEndpoints struct {
	base   string
	online bool
}

func (f *fakeEndpoints) Active() (string, bool) { return f.base, f.online }

type fakeRemote struct {
	available bool
	err       error
	calls     int
}

func (f *fakeRemote) Availability(ctx context.Context, month string) (bool, error) {
	f.calls++
	return f.available, f.err
}

func newChecker(endpoints *fakeEndpoints, remote *fakeRemote, store counterStore) *Checker {
	return NewChecker(CheckerConfig{
		Endpoints: endpoints,
		NewClient: func(base string) RemoteClient { return remote },
		Store:     store,
		Capacity:  4,
	})
}

func TestOnlineUsesRemoteAnswer(t *testing.T) {
	remote := &fakeRemote{available: false}
	c := newChecker(&fakeEndpoints{base: "http://api", online: true}, remote, localstore.NewMemory())

	assert.False(t, c.Check(context.Background(), "August 2025"))
	assert.Equal(t, 1, remote.calls)
}

func TestRemoteFailureFallsBackToLocalCounter(t *testing.T) {
	remote := &fakeRemote{err: errors.New("boom")}
	store := localstore.NewMemory()
	c := newChecker(&fakeEndpoints{base: "http://api", online: true}, remote, store)

	ctx := context.Background()
	assert.True(t, c.Check(ctx, "August 2025"), "silent degrade, below cap")

	for i := 0; i < 4; i++ {
		_, _ = store.IncrementMonth(ctx, "August 2025")
	}
	assert.False(t, c.Check(ctx, "August 2025"), "silent degrade, at cap")
}

func TestOfflineUsesLocalCounterCap(t *testing.T) {
	store := localstore.NewMemory()
	c := newChecker(&fakeEndpoints{}, &fakeRemote{}, store)

	ctx := context.Background()
	for i := 0; i < 3; i++ {
		_, _ = store.IncrementMonth(ctx, "July 2025")
	}
	assert.True(t, c.Check(ctx, "July 2025"), "3 of 4 taken")

	_, _ = store.IncrementMonth(ctx, "July 2025")
	assert.False(t, c.Check(ctx, "July 2025"), "4 of 4 taken")
}

func TestOfflineNeverCallsRemote(t *testing.T) {
	remote := &fakeRemote{available: true}
	c := newChecker(&fakeEndpoints{online: false}, remote, localstore.NewMemory())

	c.Check(context.Background(), "July 2025")
	assert.Equal(t, 0, remote.calls)
}

func TestSnapshot(t *testing.T) {
	store := localstore.NewMemory()
	ctx := context.Background()
	for i := 0; i < 4; i++ {
		_, _ = store.IncrementMonth(ctx, "August 2025")
	}
	c := newChecker(&fakeEndpoints{}, &fakeRemote{}, store)

	got := c.Snapshot(ctx, []string{"July 2025", "August 2025", "September 2025"})
	assert.Equal(t, map[string]bool{
		"July 2025":      true,
		"August 2025":    false,
		"September 2025": true,
	}, got)
}

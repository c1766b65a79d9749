package notify

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Gitgirlels/cocoa-code/internal/booking"
)

type spySink struct {
	got []Notification
}

func (s *spySink) Notify(n Notification) { s.got = append(s.got, n) }

func TestConnectivityChanged(t *testing.T) {
	sink := &spySink{}
	n := NewNotifier(sink, nil)

	n.ConnectivityChanged(true)
	n.ConnectivityChanged(false)

	require.Len(t, sink.got, 2)
	assert.Equal(t, LevelSuccess, sink.got[0].Level)
	assert.Contains(t, sink.got[0].Message, "Connected")
	assert.Equal(t, LevelError, sink.got[1].Level)
	assert.Contains(t, sink.got[1].Message, "offline mode")
}

func TestBookingOutcomeSuccess(t *testing.T) {
	sink := &spySink{}
	n := NewNotifier(sink, nil)

	n.BookingOutcome(&booking.Record{ProjectID: "proj_1"}, nil)
	require.Len(t, sink.got, 1)
	assert.Equal(t, LevelSuccess, sink.got[0].Level)
	assert.Contains(t, sink.got[0].Message, "proj_1")
}

func TestBookingOutcomeOfflineSuccessIsDistinct(t *testing.T) {
	sink := &spySink{}
	n := NewNotifier(sink, nil)

	n.BookingOutcome(&booking.Record{ProjectID: "local-1", Local: true}, nil)
	require.Len(t, sink.got, 1)
	assert.Equal(t, LevelSuccess, sink.got[0].Level)
	assert.Contains(t, sink.got[0].Message, "local-1")
	assert.Contains(t, sink.got[0].Message, "back online")
}

func TestEachErrorClassGetsDistinctMessage(t *testing.T) {
	vErr := &booking.ValidationError{Fields: map[string]string{"email": "provide a valid email address"}}
	cases := []struct {
		name string
		err  error
		want string
	}{
		{"validation", vErr, "check the form"},
		{"capacity", &booking.CapacityError{Month: "August 2025"}, "fully booked"},
		{"connectivity", &booking.ConnectivityError{}, "Unable to connect"},
		{"timeout", &booking.TimeoutError{Err: errors.New("deadline")}, "taking too long"},
		{"submission", &booking.SubmissionError{Attempts: 3, Err: errors.New("500")}, "couldn't save"},
		{"unknown", errors.New("mystery"), "Something went wrong"},
	}

	seen := make(map[string]bool)
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			sink := &spySink{}
			n := NewNotifier(sink, nil)
			n.BookingOutcome(nil, tc.err)
			require.Len(t, sink.got, 1)
			assert.Equal(t, LevelError, sink.got[0].Level)
			assert.Contains(t, sink.got[0].Message, tc.want)
			assert.False(t, seen[sink.got[0].Message], "messages must be distinct per class")
			seen[sink.got[0].Message] = true
		})
	}
}

func TestValidationMessageNamesField(t *testing.T) {
	sink := &spySink{}
	n := NewNotifier(sink, nil)

	vErr := &booking.ValidationError{Fields: map[string]string{"bookingMonth": "choose a booking month"}}
	n.BookingOutcome(nil, vErr)

	require.Len(t, sink.got, 1)
	assert.Contains(t, sink.got[0].Message, "bookingMonth")
}

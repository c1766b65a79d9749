// Package notify turns submission outcomes and connectivity changes into
// the user-facing notifications the form shows. Rendering is the UI's
// concern; this package only decides message and severity.
package notify

import (
	"errors"

	"github.com/Gitgirlels/cocoa-code/internal/booking"
	"github.com/Gitgirlels/cocoa-code/pkg/logging"
)

// Level is the notification severity shown to the user.
type Level string

const (
	LevelSuccess Level = "success"
	LevelError   Level = "error"
	LevelInfo    Level = "info"
)

// Notification is one message for the user.
type Notification struct {
	Level   Level
	Message string
}

// Sink receives notifications. Implementations can render a toast, print
// to a terminal, or record for tests.
type Sink interface {
	Notify(n Notification)
}

// LogSink writes notifications to the structured log.
type LogSink struct {
	logger *logging.Logger
}

// NewLogSink wraps a logger as a Sink.
func NewLogSink(logger *logging.Logger) *LogSink {
	if logger == nil {
		logger = logging.Default()
	}
	return &LogSink{logger: logger}
}

func (s *LogSink) Notify(n Notification) {
	switch n.Level {
	case LevelError:
		s.logger.Error("notification", "message", n.Message)
	default:
		s.logger.Info("notification", "level", string(n.Level), "message", n.Message)
	}
}

// Notifier maps outcomes to distinct user-facing messages.
type Notifier struct {
	sink   Sink
	logger *logging.Logger
}

// NewNotifier constructs a Notifier; a nil sink falls back to the log.
func NewNotifier(sink Sink, logger *logging.Logger) *Notifier {
	if logger == nil {
		logger = logging.Default()
	}
	if sink == nil {
		sink = NewLogSink(logger)
	}
	return &Notifier{sink: sink, logger: logger}
}

// ConnectivityChanged reports the startup/ongoing mode to the user.
func (n *Notifier) ConnectivityChanged(online bool) {
	if online {
		n.sink.Notify(Notification{Level: LevelSuccess, Message: "Connected to booking system"})
		return
	}
	n.sink.Notify(Notification{Level: LevelError, Message: "Running in offline mode. Limited functionality available."})
}

// BookingOutcome reports a submission result. Every error class gets its
// own message; nothing is swallowed silently.
func (n *Notifier) BookingOutcome(rec *booking.Record, err error) {
	if err == nil {
		if rec != nil && rec.Local {
			n.sink.Notify(Notification{
				Level:   LevelSuccess,
				Message: "Booking recorded! Reference " + rec.ProjectID + ". We'll confirm by email once we're back online.",
			})
			return
		}
		msg := "Booking confirmed!"
		if rec != nil {
			msg = "Booking confirmed! Project ID " + rec.ProjectID + "."
		}
		n.sink.Notify(Notification{Level: LevelSuccess, Message: msg})
		return
	}

	n.logger.Warn("booking submission failed", "error", err)

	var (
		vErr *booking.ValidationError
		cErr *booking.ConnectivityError
		fErr *booking.CapacityError
		sErr *booking.SubmissionError
		tErr *booking.TimeoutError
	)
	switch {
	case errors.As(err, &vErr):
		n.sink.Notify(Notification{Level: LevelError, Message: "Please check the form: " + fieldSummary(vErr)})
	case errors.As(err, &fErr):
		n.sink.Notify(Notification{Level: LevelError, Message: "Sorry, " + fErr.Month + " is now fully booked. Please pick another month."})
	case errors.As(err, &cErr):
		n.sink.Notify(Notification{Level: LevelError, Message: "Unable to connect to the booking system. Please try again in a moment."})
	case errors.As(err, &tErr):
		n.sink.Notify(Notification{Level: LevelError, Message: "The booking system is taking too long to respond. Your details are kept, please try again."})
	case errors.As(err, &sErr):
		n.sink.Notify(Notification{Level: LevelError, Message: "We couldn't save your booking. Your details are kept, please try again."})
	default:
		n.sink.Notify(Notification{Level: LevelError, Message: "Something went wrong. Please try again."})
	}
}

func fieldSummary(vErr *booking.ValidationError) string {
	// Error() lists fields in a stable order; strip the package prefix.
	msg := vErr.Error()
	const prefix = "booking: invalid input: "
	if len(msg) > len(prefix) {
		msg = msg[len(prefix):]
	}
	return msg
}

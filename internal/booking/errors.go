package booking

import (
	"fmt"
	"sort"
	"strings"
)

// ValidationError reports missing or malformed form fields. It is terminal
// for the attempt and produced before any network call.
type ValidationError struct {
	Fields map[string]string
}

func newValidationError() *ValidationError {
	return &ValidationError{Fields: make(map[string]string)}
}

func (e *ValidationError) add(field, reason string) {
	e.Fields[field] = reason
}

func (e *ValidationError) Error() string {
	names := make([]string, 0, len(e.Fields))
	for f := range e.Fields {
		names = append(names, f)
	}
	sort.Strings(names)
	parts := make([]string, 0, len(names))
	for _, f := range names {
		parts = append(parts, f+": "+e.Fields[f])
	}
	return "booking: invalid input: " + strings.Join(parts, "; ")
}

// ConnectivityError means no endpoint was reachable and the offline
// fallback was not allowed to take over.
type ConnectivityError struct {
	Err error
}

func (e *ConnectivityError) Error() string {
	if e.Err == nil {
		return "booking: unable to connect to the booking service"
	}
	return fmt.Sprintf("booking: unable to connect to the booking service: %v", e.Err)
}

func (e *ConnectivityError) Unwrap() error { return e.Err }

// CapacityError means the chosen month filled up before submission.
type CapacityError struct {
	Month string
}

func (e *CapacityError) Error() string {
	return fmt.Sprintf("booking: month %q is fully booked", e.Month)
}

// SubmissionError means the backend rejected the booking, or transient
// failures exhausted the retry bound.
type SubmissionError struct {
	Attempts int
	Err      error
}

func (e *SubmissionError) Error() string {
	return fmt.Sprintf("booking: submission failed after %d attempt(s): %v", e.Attempts, e.Err)
}

func (e *SubmissionError) Unwrap() error { return e.Err }

// TimeoutError means the request exceeded its time bound on the final attempt.
type TimeoutError struct {
	Err error
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("booking: request timed out: %v", e.Err)
}

func (e *TimeoutError) Unwrap() error { return e.Err }

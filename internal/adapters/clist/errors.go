package clist

import (
	"errors"
	"fmt"
)

// Reason discriminates why a fetch failed.
type Reason int

const (
	// ReasonTransport covers connection, protocol and decode failures.
	ReasonTransport Reason = iota
	// ReasonTimeout means every attempt ran out of time.
	ReasonTimeout
	// ReasonStatus means the final attempt got a non-2xx HTTP status.
	ReasonStatus
)

// ErrFetch is the sentinel kind for every fetch failure.
var ErrFetch = errors.New("fetch failed")

// FetchError is the tagged failure of the fetch layer. It replaces the
// list-or-integer return of earlier designs; Sentinel() reproduces the
// integer signal for user-facing messages.
type FetchError struct {
	Reason Reason
	Status int // HTTP status code when Reason is ReasonStatus
	Err    error
}

func (e *FetchError) Error() string {
	switch e.Reason {
	case ReasonTimeout:
		return fmt.Sprintf("%v: timed out after all attempts", ErrFetch)
	case ReasonStatus:
		return fmt.Sprintf("%v: status %d", ErrFetch, e.Status)
	default:
		return fmt.Sprintf("%v: %v", ErrFetch, e.Err)
	}
}

func (e *FetchError) Unwrap() error {
	if e.Err != nil {
		return e.Err
	}
	return ErrFetch
}

// Is reports whether target matches the fetch sentinel.
func (e *FetchError) Is(target error) bool {
	return target == ErrFetch
}

// Sentinel returns the legacy integer failure signal: the HTTP status code
// for status failures, 0 for everything else.
func (e *FetchError) Sentinel() int {
	if e.Reason == ReasonStatus {
		return e.Status
	}
	return 0
}

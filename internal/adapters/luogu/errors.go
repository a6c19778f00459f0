package luogu

import "errors"

// Sentinel kinds for judge-site failures. Resolution misses stay distinct
// from transport problems so callers can reply differently.
var (
	ErrUserNotFound = errors.New("luogu user not found")
	ErrNoData       = errors.New("luogu profile data unavailable")
	ErrRequest      = errors.New("luogu request failed")
)

package config

import "errors"

// Configuration validation errors.
// These errors are returned by Config.Validate() and support errors.Is()
// for programmatic handling while staying human-readable.
var (
	// ErrInvalidPort is returned when the HTTP port is outside 1-65535.
	ErrInvalidPort = errors.New("invalid port: must be between 1 and 65535")

	// ErrInvalidCacheTTL is returned when the cache TTL is not positive.
	ErrInvalidCacheTTL = errors.New("invalid cache TTL: must be positive")

	// ErrInvalidFetchTimeout is returned when the fetch timeout is not positive.
	ErrInvalidFetchTimeout = errors.New("invalid fetch timeout: must be positive")

	// ErrInvalidHealthTimeout is returned when the health probe timeout is not positive.
	ErrInvalidHealthTimeout = errors.New("invalid health timeout: must be positive")

	// ErrInvalidRetention is returned when the retention count is not positive.
	// Keeping zero reports would delete every generated document immediately.
	ErrInvalidRetention = errors.New("invalid retention: must be positive")

	// ErrInvalidClockTime is returned when a trigger time is not in HH:MM form.
	ErrInvalidClockTime = errors.New("invalid clock time: must be HH:MM")

	// ErrInvalidTimezone is returned when the scheduler time zone cannot
	// be resolved to an IANA location.
	ErrInvalidTimezone = errors.New("invalid timezone: must be an IANA zone name")
)

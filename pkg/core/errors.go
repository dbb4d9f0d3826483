// pkg/core/errors.go
package core

import "errors"

// Error taxonomy for the calculation engine. Failures are reported by
// wrapping one of these sentinels, so callers can branch with errors.Is.
var (
	// ErrInvalidInput is returned when a request field is missing or out of
	// range. The engine fails before any geometry is computed.
	ErrInvalidInput = errors.New("invalid input")

	// ErrDegenerateGeometry is returned when the computed search radius is
	// not positive. No probability field is sampled.
	ErrDegenerateGeometry = errors.New("degenerate geometry")

	// ErrSamplingTimeout is returned when the von Mises rejection loop
	// exceeds its attempt bound. No partial field is returned.
	ErrSamplingTimeout = errors.New("sampling timeout")
)

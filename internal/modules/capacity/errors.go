package capacity

import "errors"

var (
	// ErrInvalidPeriod is returned for malformed or inverted date ranges.
	ErrInvalidPeriod = errors.New("invalid period")
	// ErrResourceNotFound is returned when a resource id does not resolve.
	ErrResourceNotFound = errors.New("resource not found")
	// ErrUpstreamUnavailable is returned when the resource/allocation store fails.
	// The engine has no fallback data and never substitutes synthetic values.
	ErrUpstreamUnavailable = errors.New("upstream data unavailable")
)

package domain

import "errors"

// Error classes for the parse/verify/serialize pipeline. Callers match
// with errors.Is; the HTTP layer maps each class to a status code.
var (
	// ErrAuthentication covers missing, malformed or cryptographically
	// invalid signature material and stale request timestamps.
	ErrAuthentication = errors.New("authentication failed")

	// ErrValidation covers caller mistakes: break durations outside
	// [1,10] and unknown platform tags at dispatch.
	ErrValidation = errors.New("validation failed")

	// ErrParse covers malformed inbound JSON or unexpected envelope
	// shapes. The payload will not change, so it is never retried.
	ErrParse = errors.New("request parse failed")

	// ErrNetwork covers outbound certificate fetch failures. The cache
	// stays empty so the next request triggers a fresh fetch.
	ErrNetwork = errors.New("network failure")

	// ErrNoPlatformRequest is returned when a request carries no native
	// platform envelope, which indicates a bug in a parser.
	ErrNoPlatformRequest = errors.New("request has no platform envelope")
)

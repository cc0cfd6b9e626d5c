package transport

import (
	"errors"
	"fmt"
)

// Error is the failure result returned by the client for any request that
// did not complete with a 2xx response. It is never panicked or thrown;
// callers branch on Status:
//
//   - Status == 0: transport-level failure (network error, timeout, DNS).
//     Transient; retryable at a higher level.
//   - Status == 401: authentication failure after the refresh-and-retry
//     cycle failed or was unavailable.
//   - any other status: application or server error; Message carries the
//     response body text for direct display.
type Error struct {
	// Status is the numeric HTTP status code, or 0 for transport failures.
	Status int

	// Message is the response body text, or a synthesized "HTTP <status>"
	// when the body was empty. For transport failures it is the underlying
	// error message (or "network error" when none is available).
	Message string
}

// Error returns the display message. Calling pages surface this string
// directly, so it never embeds Go-style error chains for API failures.
func (e *Error) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("HTTP %d", e.Status)
	}
	return e.Message
}

// IsTransport reports whether err is a transport-level failure (status 0).
func IsTransport(err error) bool {
	var apiErr *Error
	return errors.As(err, &apiErr) && apiErr.Status == 0
}

// IsUnauthorized reports whether err is a terminal authentication failure.
func IsUnauthorized(err error) bool {
	return StatusOf(err) == 401
}

// IsNotFound reports whether err carries a 404 status.
func IsNotFound(err error) bool {
	return StatusOf(err) == 404
}

// StatusOf extracts the HTTP status from err, or -1 when err is not an
// *Error. A transport failure yields 0.
func StatusOf(err error) int {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.Status
	}
	return -1
}

package fetch

import "fmt"

// TransportError reports a failure to reach an endpoint at all: connection
// refused or reset, DNS failure, or a per-request timeout.
type TransportError struct {
	Endpoint string
	Err      error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("transport error for %s: %v", e.Endpoint, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// HTTPStatusError reports that an endpoint answered with a non-2xx status
// code.
type HTTPStatusError struct {
	Endpoint   string
	StatusCode int
}

func (e *HTTPStatusError) Error() string {
	return fmt.Sprintf("unexpected status %d from %s", e.StatusCode, e.Endpoint)
}

// PayloadError reports a response body that could not be parsed into a
// complete status record: malformed JSON, a missing required field, or a
// value that failed coercion.
type PayloadError struct {
	Endpoint string
	Err      error
}

func (e *PayloadError) Error() string {
	return fmt.Sprintf("malformed payload from %s: %v", e.Endpoint, e.Err)
}

func (e *PayloadError) Unwrap() error { return e.Err }

package placeholder

import (
	"context"
	"errors"
	"fmt"
	"net"
)

// ErrEmptyEndpoint is returned before any I/O when Fetch receives a blank endpoint.
var ErrEmptyEndpoint = errors.New("endpoint is empty")

// Kind is the closed set of failure classes produced by Fetch.
type Kind string

const (
	KindNone          Kind = ""
	KindNetwork       Kind = "network"
	KindRequestFailed Kind = "request_failed"
	KindDecode        Kind = "decode"
	KindUnknown       Kind = "unknown"
)

// NetworkError reports a transport-level failure: DNS, refused connection, timeout.
type NetworkError struct {
	Endpoint string
	Cause    error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("Network error: %v", e.Cause)
}

func (e *NetworkError) Unwrap() error { return e.Cause }

// Timeout reports whether the request ran past its deadline.
func (e *NetworkError) Timeout() bool {
	if errors.Is(e.Cause, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(e.Cause, &netErr) && netErr.Timeout()
}

// RequestFailedError reports that the server answered with a non-2xx status.
type RequestFailedError struct {
	Endpoint   string
	StatusCode int
	Body       string
}

func (e *RequestFailedError) Error() string {
	return fmt.Sprintf("API request failed with status code: %d", e.StatusCode)
}

// DecodeError reports a response body that is not valid JSON.
type DecodeError struct {
	Endpoint string
	Cause    error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("Failed to parse JSON response: %v", e.Cause)
}

func (e *DecodeError) Unwrap() error { return e.Cause }

// Classify maps err onto the failure kinds above.
func Classify(err error) Kind {
	if err == nil {
		return KindNone
	}
	var (
		netErr    *NetworkError
		reqErr    *RequestFailedError
		decodeErr *DecodeError
	)
	switch {
	case errors.As(err, &netErr):
		return KindNetwork
	case errors.As(err, &reqErr):
		return KindRequestFailed
	case errors.As(err, &decodeErr):
		return KindDecode
	default:
		return KindUnknown
	}
}

// StatusCode returns the HTTP status attached to err, or 0 when there is none.
func StatusCode(err error) int {
	var reqErr *RequestFailedError
	if errors.As(err, &reqErr) {
		return reqErr.StatusCode
	}
	return 0
}

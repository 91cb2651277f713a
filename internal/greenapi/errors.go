package greenapi

import (
	"errors"
	"fmt"
	"net/url"
)

// FailureKind records which step of a call failed
type FailureKind string

const (
	FailureNetwork  FailureKind = "network"  // no response was received
	FailureHTTP     FailureKind = "http"     // response status outside 200-299
	FailureDecode   FailureKind = "decode"   // response body is not valid JSON
	FailureInternal FailureKind = "internal" // the request could not be built
)

// RequestFailure is the only error returned by Client.Call.
// StatusCode is 0 unless Kind is FailureHTTP.
type RequestFailure struct {
	Kind       FailureKind `json:"kind"`
	StatusCode int         `json:"status_code,omitempty"`
	Message    string      `json:"message"`
	Err        error       `json:"-"`
}

func (e *RequestFailure) Error() string {
	return e.Message
}

func (e *RequestFailure) Unwrap() error {
	return e.Err
}

// NewHTTPFailure creates the failure for a non-2xx response
func NewHTTPFailure(statusCode int) *RequestFailure {
	return &RequestFailure{
		Kind:       FailureHTTP,
		StatusCode: statusCode,
		Message:    fmt.Sprintf("HTTP error! Status: %d", statusCode),
	}
}

// NewNetworkFailure wraps a transport error (connection refused, timeout, cancelled context...).
// The request URL carries the API token, so a *url.Error is replaced by its cause.
func NewNetworkFailure(err error) *RequestFailure {
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		err = urlErr.Err
	}
	return &RequestFailure{
		Kind:    FailureNetwork,
		Message: fmt.Sprintf("network error: %v", err),
		Err:     err,
	}
}

func NewDecodeFailure(err error) *RequestFailure {
	return &RequestFailure{
		Kind:    FailureDecode,
		Message: fmt.Sprintf("invalid JSON in response: %v", err),
		Err:     err,
	}
}

// NewInternalFailure is used when the request itself could not be prepared, supply the error and
// an explanation of what was being done when it occurred
func NewInternalFailure(err error, while string) *RequestFailure {
	return &RequestFailure{
		Kind:    FailureInternal,
		Message: fmt.Sprintf("internal error: %v while %v", err, while),
		Err:     err,
	}
}

// StatusCode returns the HTTP status carried by err, or 0 if err is not an HTTP failure
func StatusCode(err error) int {
	var rf *RequestFailure
	if errors.As(err, &rf) && rf.Kind == FailureHTTP {
		return rf.StatusCode
	}
	return 0
}

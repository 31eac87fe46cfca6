package httpclient

import (
	"errors"
	"fmt"
)

// Kind classifies a failed backend request.
type Kind int

const (
	KindTransport  Kind = iota // no response received
	KindDecode                 // malformed response body
	KindAuth                   // 401/403, session no longer valid
	KindNotFound               // 404
	KindValidation             // other 4xx with a structured detail
	KindServer                 // 5xx
)

func (k Kind) String() string {
	switch k {
	case KindTransport:
		return "transport"
	case KindDecode:
		return "decode"
	case KindAuth:
		return "auth"
	case KindNotFound:
		return "not_found"
	case KindValidation:
		return "validation"
	case KindServer:
		return "server"
	}
	return "unknown"
}

// APIError is the classified outcome of a rejected backend request.
// Detail carries the server's human-readable message when one was sent;
// forms map known Detail strings to field-level errors.
type APIError struct {
	Kind   Kind
	Status int // 0 when no response was received
	Detail string
	Err    error
}

func (e *APIError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("api error (%s, status %d): %s", e.Kind, e.Status, e.Detail)
	}
	if e.Err != nil {
		return fmt.Sprintf("api error (%s): %v", e.Kind, e.Err)
	}
	return fmt.Sprintf("api error (%s, status %d)", e.Kind, e.Status)
}

func (e *APIError) Unwrap() error { return e.Err }

// ErrorKind returns the classification of err, or KindTransport when err
// is not an APIError (callers treat unknown failures as transport-level).
func ErrorKind(err error) Kind {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Kind
	}
	return KindTransport
}

// ErrorDetail returns the server detail message from err, if any.
func ErrorDetail(err error) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Detail
	}
	return ""
}

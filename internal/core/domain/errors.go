package domain

import "errors"

var (
	// ErrUnauthorized means the request carried no usable identity claim.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrBadRequest means a required request body was missing or unreadable.
	ErrBadRequest = errors.New("bad request")
	// ErrUpstream wraps failures of the database or the identity provider.
	ErrUpstream = errors.New("upstream failure")
)

// UpstreamError records which upstream operation failed. It matches both
// ErrUpstream and the underlying cause under errors.Is.
type UpstreamError struct {
	Op  string
	Err error
}

func (e *UpstreamError) Error() string { return e.Op + ": " + e.Err.Error() }

func (e *UpstreamError) Unwrap() []error { return []error{ErrUpstream, e.Err} }

// Upstream wraps err as an UpstreamError for op. A nil err stays nil.
func Upstream(op string, err error) error {
	if err == nil {
		return nil
	}
	return &UpstreamError{Op: op, Err: err}
}

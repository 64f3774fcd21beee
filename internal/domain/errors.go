package domain

import "errors"

// Failure kinds for the caption pipeline and history store. Handlers map
// these to HTTP status codes; callers never see upstream error text.
var (
	ErrInvalidInput  = errors.New("invalid input")
	ErrUpstreamFetch = errors.New("image fetch failed")
	ErrInference     = errors.New("caption inference failed")
	ErrNotFound      = errors.New("not found")
	ErrForbidden     = errors.New("forbidden")
)

// InputError is a validation failure with a caller-safe reason.
// It matches ErrInvalidInput under errors.Is.
type InputError struct {
	Reason string
}

func (e *InputError) Error() string {
	return e.Reason
}

func (e *InputError) Is(target error) bool {
	return target == ErrInvalidInput
}

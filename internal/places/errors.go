package places

import (
	"errors"
	"fmt"
)

// Error kinds returned by Aggregate. Match with errors.Is.
var (
	ErrInvalidInput         = errors.New("invalid input")
	ErrLocationNotFound     = errors.New("location not found")
	ErrConfigurationMissing = errors.New("configuration missing")
	ErrUpstreamSearchFailed = errors.New("upstream search failed")
)

// Error carries an error kind, a human-readable message and the cause.
// Status is the upstream HTTP status when the provider returned one.
type Error struct {
	Kind    error
	Message string
	Status  int
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Is matches the error kind
func (e *Error) Is(target error) bool {
	return e.Kind == target
}

func (e *Error) Unwrap() error {
	return e.Err
}

func invalidInput(msg string) *Error {
	return &Error{Kind: ErrInvalidInput, Message: msg}
}

// StatusCoder is implemented by upstream errors that know their HTTP status
type StatusCoder interface {
	StatusCode() int
}

func upstreamFailed(msg string, err error) *Error {
	e := &Error{Kind: ErrUpstreamSearchFailed, Message: msg, Err: err}
	var sc StatusCoder
	if errors.As(err, &sc) {
		e.Status = sc.StatusCode()
	}
	return e
}

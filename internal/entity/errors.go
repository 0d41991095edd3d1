package entity

import (
	"errors"
	"fmt"
)

// Error kinds, mapped to HTTP statuses at the API boundary.
var (
	ErrBadRequest         = errors.New("bad request")
	ErrServiceUnavailable = errors.New("service unavailable")
	ErrInternal           = errors.New("internal error")
)

// Domain errors
var (
	// Validation errors
	ErrMissingField  = errors.New("required field is missing")
	ErrInvalidFormat = errors.New("invalid format")

	// Dependency errors
	ErrDependencyNotConfigured = errors.New("dependency client is not configured")
	ErrEmptyCompletion         = errors.New("model returned an empty completion")
)

// Client-facing messages.
const (
	MessageInternal            = "An unexpected server error occurred."
	MessageBodyRequired        = "Request body must be JSON."
	MessageInvalidJSON         = "Invalid JSON format in request body."
	MessageOpenAIUnavailable   = "Service configuration error: OpenAI client not available."
	MessageSearchUnavailable   = "Service configuration error: Search client not available."
	messageMissingFieldPattern = "Missing required field: %s"
)

// RequestError carries the client-facing message for a failed request.
// Kind is one of ErrBadRequest, ErrServiceUnavailable or ErrInternal.
type RequestError struct {
	Kind    error
	Message string
	Err     error
}

func (e *RequestError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *RequestError) Unwrap() []error {
	errs := []error{e.Kind}
	if e.Err != nil {
		errs = append(errs, e.Err)
	}
	return errs
}

func NewBadRequest(message string, err error) *RequestError {
	return &RequestError{Kind: ErrBadRequest, Message: message, Err: err}
}

func NewMissingField(field string) *RequestError {
	return NewBadRequest(fmt.Sprintf(messageMissingFieldPattern, field), ErrMissingField)
}

func NewServiceUnavailable(message string, err error) *RequestError {
	return &RequestError{Kind: ErrServiceUnavailable, Message: message, Err: err}
}

// NewInternal hides err behind the generic message.
func NewInternal(err error) *RequestError {
	return &RequestError{Kind: ErrInternal, Message: MessageInternal, Err: err}
}

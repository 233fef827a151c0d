// Package errs classifies the ways a verdict request can fail before a
// verdict exists. Collaborator failures never surface here; they become
// Unknown votes inside the engine.
package errs

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind is the failure class of a verdict request.
type Kind int

const (
	// Unknown is any failure not classified below.
	Unknown Kind = iota
	// InvalidInput means the request carried no usable URL.
	InvalidInput
	// Timeout means the fused verdict was not ready within the request budget.
	Timeout
)

// Status is the HTTP status a failure of kind k is reported with.
func (k Kind) Status() int {
	switch k {
	case InvalidInput:
		return http.StatusBadRequest
	case Timeout:
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}

// AppError is a request failure with a message safe to show the extension.
// Cause is for logs only.
type AppError struct {
	Kind    Kind
	Message string
	Cause   error
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

// KindOf returns the Kind of the first AppError in err's chain, or Unknown.
func KindOf(err error) Kind {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return Unknown
}

package booking

import (
	"context"
	"errors"
	"fmt"
	"net/http"
)

// Error codes for booking, state-machine and rating operations.
const (
	CodeInvalidTransition = "invalidTransition"
	CodeForbidden         = "forbidden"
	CodeConflict          = "conflict"
	CodeDateRangeConflict = "dateRangeConflict"
	CodeValidationError   = "validationError"
	CodeTimeout           = "timeout"
	CodeAlreadyRated      = "alreadyRated"
	CodeInvalidRating     = "invalidRating"
	CodeNotFound          = "notFound"
)

// BookingError is a typed booking-engine failure. Violations are detected
// before any mutation is attempted and fail closed.
type BookingError struct {
	Code    string
	Message string
}

func (e *BookingError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func newError(code, format string, args ...any) error {
	return &BookingError{Code: code, Message: fmt.Sprintf(format, args...)}
}

// ErrCode extracts the booking error code, or empty when err is not a
// BookingError.
func ErrCode(err error) string {
	var berr *BookingError
	if errors.As(err, &berr) {
		return berr.Code
	}
	return ""
}

// HTTPStatus maps a booking error onto a transport status for the glue
// layer.
func (e *BookingError) HTTPStatus() int {
	switch e.Code {
	case CodeValidationError, CodeInvalidRating:
		return http.StatusBadRequest
	case CodeForbidden:
		return http.StatusForbidden
	case CodeNotFound:
		return http.StatusNotFound
	case CodeInvalidTransition, CodeConflict, CodeDateRangeConflict, CodeAlreadyRated:
		return http.StatusConflict
	case CodeTimeout:
		return http.StatusGatewayTimeout
	}
	return http.StatusInternalServerError
}

// wrapCollaborator classifies a repository failure. A canceled or timed-out
// outbound call is treated identically: no partial commit happened.
func wrapCollaborator(err error, op string) error {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return newError(CodeTimeout, "%s timed out", op)
	}
	return fmt.Errorf("%s: %w", op, err)
}

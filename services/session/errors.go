package session

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"stayhub/services/auth"
)

// Session error codes, classified from the authentication collaborator's
// transport status. Unknown is the fallback and never masks a more
// specific code when one is determinable.
const (
	CodeUnauthorized = "unauthorized"
	CodeBadRequest   = "badRequest"
	CodeConflict     = "conflict"
	CodeServerError  = "serverError"
	CodeUnknown      = "unknown"
)

// SessionError is a classified session-operation failure.
type SessionError struct {
	Code    string
	Message string
}

func (e *SessionError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// classify maps a collaborator failure onto the session error taxonomy.
func classify(err error) *SessionError {
	var authErr *auth.Error
	if errors.As(err, &authErr) {
		code := CodeUnknown
		switch {
		case authErr.Status == http.StatusUnauthorized:
			code = CodeUnauthorized
		case authErr.Status == http.StatusBadRequest:
			code = CodeBadRequest
		case authErr.Status == http.StatusConflict:
			code = CodeConflict
		case authErr.Status >= 500:
			code = CodeServerError
		}
		return &SessionError{Code: code, Message: authErr.Message}
	}
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return &SessionError{Code: CodeUnknown, Message: "authentication timed out"}
	}
	return &SessionError{Code: CodeUnknown, Message: err.Error()}
}

// HTTPStatus maps a session error back to a transport status for the glue
// layer.
func (e *SessionError) HTTPStatus() int {
	switch e.Code {
	case CodeUnauthorized:
		return http.StatusUnauthorized
	case CodeBadRequest:
		return http.StatusBadRequest
	case CodeConflict:
		return http.StatusConflict
	case CodeServerError:
		return http.StatusInternalServerError
	}
	return http.StatusInternalServerError
}

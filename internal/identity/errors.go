package identity

import (
	"net/http"

	"github.com/modelcontextprotocol/go-sdk/auth"
)

// AuthError is an authentication failure with the HTTP status it maps to:
// 401 for credential problems, 500 for server misconfiguration.
type AuthError struct {
	Status  int
	Message string
	Err     error
}

func (e *AuthError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap exposes auth.ErrInvalidToken for 401s so the SDK bearer
// middleware answers with a challenge instead of a 500.
func (e *AuthError) Unwrap() []error {
	errs := make([]error, 0, 2)
	if e.Status == http.StatusUnauthorized {
		errs = append(errs, auth.ErrInvalidToken)
	}
	if e.Err != nil {
		errs = append(errs, e.Err)
	}
	return errs
}

func unauthorized(msg string, err error) *AuthError {
	return &AuthError{Status: http.StatusUnauthorized, Message: msg, Err: err}
}

func misconfigured(msg string, err error) *AuthError {
	return &AuthError{Status: http.StatusInternalServerError, Message: msg, Err: err}
}

package api

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"
)

var (
	// ErrAuth — the service rejected the login token or credentials.
	ErrAuth = errors.New("authentication rejected")

	// ErrValidation — the service rejected the request payload, or the
	// payload failed the client-side presence check.
	ErrValidation = errors.New("request rejected")

	// ErrNotFound — the service knows no such user or story.
	ErrNotFound = errors.New("not found")
)

// ServiceError is any non-2xx response not covered by the sentinel kinds.
type ServiceError struct {
	Status  int
	Message string
}

func (e *ServiceError) Error() string {
	return fmt.Sprintf("service error: status=%d message=%q", e.Status, e.Message)
}

func mapStatus(status int, message string) error {
	if message == "" {
		message = http.StatusText(status)
	}
	switch status {
	case http.StatusUnauthorized, http.StatusForbidden:
		return fmt.Errorf("%w: %s", ErrAuth, message)
	case http.StatusNotFound:
		return fmt.Errorf("%w: %s", ErrNotFound, message)
	case http.StatusBadRequest, http.StatusConflict:
		return fmt.Errorf("%w: %s", ErrValidation, message)
	default:
		return &ServiceError{Status: status, Message: message}
	}
}

// IsNetworkError reports whether err is a transport failure (no response
// from the service) rather than a response the service produced.
func IsNetworkError(err error) bool {
	var uerr *url.Error
	return errors.As(err, &uerr)
}

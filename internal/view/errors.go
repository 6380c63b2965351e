package view

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/elitestar/bookings-web/internal/api"
	"github.com/elitestar/bookings-web/pkg"
)

// ClientGone reports whether the visitor abandoned the request. Nothing
// should be rendered then.
func ClientGone(r *http.Request) bool {
	return r.Context().Err() != nil
}

// StatusFor maps an error of the remote API or of form validation to the
// status of the page that reports it.
func StatusFor(err error) int {
	var validationErr *pkg.ValidationError
	var httpErr *api.HTTPError
	switch {
	case errors.As(err, &validationErr):
		return http.StatusBadRequest
	case errors.As(err, &httpErr):
		if httpErr.StatusCode == http.StatusNotFound {
			return http.StatusNotFound
		}
		if httpErr.StatusCode < http.StatusInternalServerError {
			return http.StatusBadRequest
		}
		return http.StatusBadGateway
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	default:
		return http.StatusBadGateway
	}
}

// Message turns an error into the line shown to the visitor.
func Message(action string, err error) string {
	var validationErr *pkg.ValidationError
	var httpErr *api.HTTPError
	switch {
	case errors.As(err, &validationErr):
		return "Please fix the form: " + strings.Join(validationErr.Messages, ", ") + "."
	case errors.As(err, &httpErr) && httpErr.Message != "":
		return "Failed to " + action + ": " + httpErr.Message + "."
	default:
		return "Failed to " + action + ". Please try again."
	}
}

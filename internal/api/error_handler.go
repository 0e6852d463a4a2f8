package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/vetlink/session-gateway/internal/api/metrics"
	"github.com/vetlink/session-gateway/internal/core/domain"
	"github.com/vetlink/session-gateway/internal/infrastructure/backend"
)

const loginPath = "/login"

// errorResponse is the canonical error envelope for all API errors.
type errorResponse struct {
	Error string `json:"error"`
}

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that:
//   - Completes the global 401 teardown: by the time ErrSessionExpired gets
//     here the backend client has already cleared the stored session, so the
//     only work left is forcing navigation to the login view. That redirect
//     is skipped when the request is already for it, to avoid a loop.
//   - Maps known domain errors to their appropriate HTTP status codes.
//   - Logs unexpected errors internally without leaking details to the client.
//   - Renders a consistent JSON envelope: {"error": "<message>"}.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		if errors.Is(err, domain.ErrSessionExpired) {
			metrics.SessionTeardownsTotal.Inc()
			if c.Request().URL.Path == loginPath {
				_ = c.JSON(http.StatusUnauthorized, errorResponse{Error: "invalid credentials"})
				return
			}
			_ = c.Redirect(http.StatusFound, loginPath)
			return
		}

		code, msg := resolveError(err, log, c)
		_ = c.JSON(code, errorResponse{Error: msg})
	}
}

func resolveError(err error, log zerolog.Logger, c echo.Context) (int, string) {
	// Echo's own errors (bind failures, 404 from router, etc.)
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code, fmt.Sprintf("%v", he.Message)
	}

	// Known domain errors → deterministic HTTP codes.
	switch {
	case errors.Is(err, domain.ErrInvalidCredentials):
		return http.StatusUnauthorized, "invalid credentials"
	case errors.Is(err, domain.ErrNotAuthenticated):
		return http.StatusUnauthorized, "not authenticated"
	case errors.Is(err, domain.ErrForbidden):
		return http.StatusForbidden, "access forbidden"
	case errors.Is(err, domain.ErrMissingToken):
		return http.StatusBadGateway, "auth response missing token"
	case errors.Is(err, domain.ErrInvalidStatus), errors.Is(err, domain.ErrInvalidTransition):
		return http.StatusUnprocessableEntity, err.Error()
	case errors.Is(err, domain.ErrVetNotFound):
		return http.StatusNotFound, "vet profile not found"
	case errors.Is(err, domain.ErrAppointmentNotFound):
		return http.StatusNotFound, "appointment not found"
	}

	// Backend responses pass through with their status; 5xx and transport
	// failures collapse to a generic message (no automatic retry anywhere).
	var ue *backend.UpstreamError
	if errors.As(err, &ue) {
		if ue.Status >= http.StatusInternalServerError {
			return http.StatusBadGateway, "backend unavailable"
		}
		return ue.Status, upstreamMessage(ue)
	}

	// Unexpected error: log the real cause, return a generic message.
	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Msg("unhandled error")

	return http.StatusInternalServerError, "internal server error"
}

// upstreamMessage extracts the backend's own {"error": "..."} message when
// the body carries one, falling back to a generic failure message.
func upstreamMessage(ue *backend.UpstreamError) string {
	var body struct {
		Error string `json:"error"`
	}
	if json.Unmarshal([]byte(ue.Body), &body) == nil && body.Error != "" {
		return body.Error
	}
	return "request failed"
}

package api

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/vetlink/session-gateway/internal/core/domain"
	"github.com/vetlink/session-gateway/internal/infrastructure/backend"
)

func handleError(t *testing.T, path string, err error) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	NewHTTPErrorHandler(zerolog.Nop())(err, c)
	return rec
}

func TestErrorHandler_SessionExpiredRedirectsToLogin(t *testing.T) {
	rec := handleError(t, "/me", domain.ErrSessionExpired)
	if rec.Code != http.StatusFound {
		t.Fatalf("expected redirect, got %d", rec.Code)
	}
	if loc := rec.Header().Get(echo.HeaderLocation); loc != loginPath {
		t.Fatalf("expected redirect to %s, got %s", loginPath, loc)
	}
}

func TestErrorHandler_SessionExpiredOnLoginPathStaysPut(t *testing.T) {
	rec := handleError(t, "/login", domain.ErrSessionExpired)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 on the login path, got %d", rec.Code)
	}
	if loc := rec.Header().Get(echo.HeaderLocation); loc != "" {
		t.Fatalf("the login view must not redirect to itself, got %s", loc)
	}
}

func TestErrorHandler_DomainErrorMapping(t *testing.T) {
	cases := []struct {
		err  error
		code int
	}{
		{domain.ErrInvalidCredentials, http.StatusUnauthorized},
		{domain.ErrNotAuthenticated, http.StatusUnauthorized},
		{domain.ErrForbidden, http.StatusForbidden},
		{domain.ErrMissingToken, http.StatusBadGateway},
		{domain.ErrInvalidStatus, http.StatusUnprocessableEntity},
		{domain.ErrInvalidTransition, http.StatusUnprocessableEntity},
		{domain.ErrVetNotFound, http.StatusNotFound},
		{domain.ErrAppointmentNotFound, http.StatusNotFound},
	}
	for _, tc := range cases {
		rec := handleError(t, "/x", tc.err)
		if rec.Code != tc.code {
			t.Fatalf("%v: got status %d, want %d", tc.err, rec.Code, tc.code)
		}
		if !strings.Contains(rec.Body.String(), `"error"`) {
			t.Fatalf("%v: expected error envelope, got %s", tc.err, rec.Body.String())
		}
	}
}

func TestErrorHandler_UpstreamClientErrorPassesThrough(t *testing.T) {
	rec := handleError(t, "/x", &backend.UpstreamError{
		Status: http.StatusConflict,
		Body:   `{"error":"slot already booked"}`,
	})
	if rec.Code != http.StatusConflict {
		t.Fatalf("expected upstream status to pass through, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "slot already booked") {
		t.Fatalf("expected upstream message, got %s", rec.Body.String())
	}
}

func TestErrorHandler_UpstreamServerErrorCollapses(t *testing.T) {
	rec := handleError(t, "/x", &backend.UpstreamError{Status: http.StatusInternalServerError, Body: "stack trace"})
	if rec.Code != http.StatusBadGateway {
		t.Fatalf("expected 502, got %d", rec.Code)
	}
	if strings.Contains(rec.Body.String(), "stack trace") {
		t.Fatalf("backend internals must not leak: %s", rec.Body.String())
	}
}

func TestErrorHandler_EchoHTTPErrorKeepsCode(t *testing.T) {
	rec := handleError(t, "/x", echo.NewHTTPError(http.StatusNotFound, "Not Found"))
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestErrorHandler_UnexpectedErrorIsOpaque(t *testing.T) {
	rec := handleError(t, "/x", errors.New("pq: connection reset"))
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}
	if strings.Contains(rec.Body.String(), "pq:") {
		t.Fatalf("internal error details must not leak: %s", rec.Body.String())
	}
}

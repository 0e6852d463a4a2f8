package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/vetlink/session-gateway/internal/api/middleware"
	"github.com/vetlink/session-gateway/internal/core/domain"
)

// ctxSession extracts the session hydrated by the Session middleware and
// fast-fails before any service call when no authenticated user is present.
// Guarded routes never hit the failure path; it exists for handlers that are
// reachable without a guard.
func ctxSession(c echo.Context) (*domain.Session, error) {
	sess := middleware.SessionFromEcho(c)
	if sess == nil || !sess.Authenticated() {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "not authenticated")
	}
	return sess, nil
}

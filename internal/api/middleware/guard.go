package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/vetlink/session-gateway/internal/api/metrics"
)

const (
	loginPath = "/login"
	homePath  = "/"
)

// Guard gates rendering of a protected subtree. While the session is still
// hydrating it renders a loading placeholder and nothing else, so the
// anonymous view never flashes before hydration completes. Once hydrated:
// anonymous sessions are redirected to the login view, authenticated sessions
// with the wrong role are redirected home, and everything else reaches the
// guarded handler. An empty requiredRole means any authenticated role.
func Guard(requiredRole string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			sess := SessionFromEcho(c)

			switch {
			case sess == nil || sess.Hydrating():
				metrics.GuardDecisionsTotal.WithLabelValues("loading").Inc()
				return c.JSON(http.StatusServiceUnavailable, map[string]string{"status": "loading"})
			case !sess.Authenticated():
				metrics.GuardDecisionsTotal.WithLabelValues("login_redirect").Inc()
				return c.Redirect(http.StatusFound, loginPath)
			case !sess.User.HasRole(requiredRole):
				metrics.GuardDecisionsTotal.WithLabelValues("home_redirect").Inc()
				return c.Redirect(http.StatusFound, homePath)
			}

			metrics.GuardDecisionsTotal.WithLabelValues("allowed").Inc()
			return next(c)
		}
	}
}

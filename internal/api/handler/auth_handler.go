package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/vetlink/session-gateway/internal/api/metrics"
	"github.com/vetlink/session-gateway/internal/api/middleware"
	"github.com/vetlink/session-gateway/internal/core/domain"
	"github.com/vetlink/session-gateway/internal/core/ports"
)

// AuthHandler carries the login and register pages' logic plus the session
// introspection endpoint the application shell polls on startup.
type AuthHandler struct {
	sessions ports.SessionService
}

func NewAuthHandler(sessions ports.SessionService) *AuthHandler {
	return &AuthHandler{sessions: sessions}
}

type loginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type registerRequest struct {
	Name     string `json:"name"     validate:"required"`
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	Role     string `json:"role"     validate:"required"`
	Phone    string `json:"phone"`
}

type sessionResponse struct {
	State string       `json:"state"`
	User  *domain.User `json:"user,omitempty"`
}

// Login authenticates against the backend and binds the result to the
// browser session.
//
// @Summary      Login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Login credentials"
// @Success      200   {object}  sessionResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	sess := middleware.SessionFromEcho(c)
	user, err := h.sessions.Login(c.Request().Context(), sess, req.Email, req.Password)
	if err != nil {
		metrics.LoginsTotal.WithLabelValues("failure").Inc()
		return err
	}

	metrics.LoginsTotal.WithLabelValues("success").Inc()
	return c.JSON(http.StatusOK, sessionResponse{State: string(sess.State), User: user})
}

// Register creates an account and logs it in with the same session contract
// as Login.
//
// @Summary      Register a new user
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      registerRequest  true  "Registration details"
// @Success      201   {object}  sessionResponse
// @Failure      400   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /register [post]
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	sess := middleware.SessionFromEcho(c)
	user, err := h.sessions.Register(c.Request().Context(), sess, ports.RegisterInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Role:     req.Role,
		Phone:    req.Phone,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, sessionResponse{State: string(sess.State), User: user})
}

// Logout ends the session locally. The backend is never called.
//
// @Summary      Logout
// @Tags         auth
// @Success      204  "session cleared"
// @Router       /logout [post]
func (h *AuthHandler) Logout(c echo.Context) error {
	sess := middleware.SessionFromEcho(c)
	if sess != nil {
		if err := h.sessions.Logout(c.Request().Context(), sess); err != nil {
			return err
		}
	}
	return c.NoContent(http.StatusNoContent)
}

// Session reports the current session state so the shell can decide what to
// render without waiting on a guarded route.
//
// @Summary      Current session
// @Tags         auth
// @Produce      json
// @Success      200  {object}  sessionResponse
// @Router       /session [get]
func (h *AuthHandler) Session(c echo.Context) error {
	sess := middleware.SessionFromEcho(c)
	if sess == nil {
		return c.JSON(http.StatusOK, sessionResponse{State: string(domain.SessionAnonymous)})
	}
	return c.JSON(http.StatusOK, sessionResponse{State: string(sess.State), User: sess.User})
}

// Me re-fetches the authenticated user from the backend and replaces the
// stored pair.
//
// @Summary      Refresh current user
// @Tags         auth
// @Produce      json
// @Security     SessionCookie
// @Success      200  {object}  sessionResponse
// @Failure      401  {object}  errorResponse
// @Router       /me [get]
func (h *AuthHandler) Me(c echo.Context) error {
	sess, err := ctxSession(c)
	if err != nil {
		return err
	}

	user, err := h.sessions.Refresh(c.Request().Context(), sess)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, sessionResponse{State: string(sess.State), User: user})
}

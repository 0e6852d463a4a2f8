package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/vetlink/session-gateway/internal/core/ports"
)

// UsersHandler carries the account page's logic. Profile writes go to the
// backend first; the stored session pair is then replaced wholesale via the
// session service so the gateway never patches a stored user in place.
type UsersHandler struct {
	users    ports.UsersAPI
	sessions ports.SessionService
}

func NewUsersHandler(users ports.UsersAPI, sessions ports.SessionService) *UsersHandler {
	return &UsersHandler{users: users, sessions: sessions}
}

type updateProfileRequest struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
}

// UpdateProfile handles PUT /users/me.
//
// @Summary      Update my profile
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     SessionCookie
// @Param        body  body      updateProfileRequest  true  "Profile fields"
// @Success      200   {object}  domain.User
// @Router       /users/me [put]
func (h *UsersHandler) UpdateProfile(c echo.Context) error {
	var req updateProfileRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	sess, err := ctxSession(c)
	if err != nil {
		return err
	}

	if _, err := h.users.UpdateProfile(c.Request().Context(), ports.UpdateProfileInput{
		Name:  req.Name,
		Phone: req.Phone,
	}); err != nil {
		return err
	}

	user, err := h.sessions.Refresh(c.Request().Context(), sess)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, user)
}

// DeleteAccount handles DELETE /users/me. The upstream account is removed
// first, then the local session ends the same way logout does.
//
// @Summary      Delete my account
// @Tags         users
// @Security     SessionCookie
// @Success      204  "account deleted"
// @Router       /users/me [delete]
func (h *UsersHandler) DeleteAccount(c echo.Context) error {
	sess, err := ctxSession(c)
	if err != nil {
		return err
	}

	if err := h.users.DeleteAccount(c.Request().Context()); err != nil {
		return err
	}
	if err := h.sessions.Logout(c.Request().Context(), sess); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

package backend

import (
	"context"
	"net/http"

	"github.com/vetlink/session-gateway/internal/core/domain"
	"github.com/vetlink/session-gateway/internal/core/ports"
)

func (c *Client) Profile(ctx context.Context) (*domain.User, error) {
	var out domain.User
	if err := c.doJSON(ctx, http.MethodGet, "/users/me", nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateProfile(ctx context.Context, input ports.UpdateProfileInput) (*domain.User, error) {
	var out domain.User
	if err := c.doJSON(ctx, http.MethodPut, "/users/me", nil, input, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeleteAccount(ctx context.Context) error {
	return c.doJSON(ctx, http.MethodDelete, "/users/me", nil, nil, nil)
}

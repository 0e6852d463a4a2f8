package backend

import (
	"context"
	"net/http"

	"github.com/vetlink/session-gateway/internal/core/domain"
	"github.com/vetlink/session-gateway/internal/core/ports"
)

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (c *Client) Login(ctx context.Context, email, password string) (*ports.AuthResult, error) {
	var out ports.AuthResult
	if err := c.doJSON(ctx, http.MethodPost, "/auth/login", nil, loginRequest{Email: email, Password: password}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Register(ctx context.Context, input ports.RegisterInput) (*ports.AuthResult, error) {
	var out ports.AuthResult
	if err := c.doJSON(ctx, http.MethodPost, "/auth/register", nil, input, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Me(ctx context.Context) (*domain.User, error) {
	var out domain.User
	if err := c.doJSON(ctx, http.MethodGet, "/auth/me", nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

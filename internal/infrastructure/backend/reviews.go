package backend

import (
	"context"
	"net/http"
	"net/url"

	"github.com/vetlink/session-gateway/internal/core/domain"
	"github.com/vetlink/session-gateway/internal/core/ports"
)

func (c *Client) Add(ctx context.Context, vetID string, input ports.ReviewInput) (*domain.Review, error) {
	var out domain.Review
	if err := c.doJSON(ctx, http.MethodPost, "/reviews/"+url.PathEscape(vetID), nil, input, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) ListForVet(ctx context.Context, vetID string) ([]domain.Review, error) {
	var out []domain.Review
	if err := c.doJSON(ctx, http.MethodGet, "/reviews/"+url.PathEscape(vetID), nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

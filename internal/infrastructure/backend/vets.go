package backend

import (
	"context"
	"net/http"
	"net/url"

	"github.com/vetlink/session-gateway/internal/core/domain"
	"github.com/vetlink/session-gateway/internal/core/ports"
)

func (c *Client) List(ctx context.Context, filter ports.VetFilter) ([]domain.VetProfile, error) {
	query := url.Values{}
	if filter.Query != "" {
		query.Set("q", filter.Query)
	}
	if filter.City != "" {
		query.Set("city", filter.City)
	}
	if filter.Service != "" {
		query.Set("service", filter.Service)
	}

	var out []domain.VetProfile
	if err := c.doJSON(ctx, http.MethodGet, "/vetprofile", query, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) Get(ctx context.Context, id string) (*domain.VetProfile, error) {
	var out domain.VetProfile
	if err := c.doJSON(ctx, http.MethodGet, "/vetprofile/"+url.PathEscape(id), nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Create(ctx context.Context, profile domain.VetProfile) (*domain.VetProfile, error) {
	var out domain.VetProfile
	if err := c.doJSON(ctx, http.MethodPost, "/vetprofile", nil, profile, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Update(ctx context.Context, id string, profile domain.VetProfile) (*domain.VetProfile, error) {
	var out domain.VetProfile
	if err := c.doJSON(ctx, http.MethodPut, "/vetprofile/"+url.PathEscape(id), nil, profile, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

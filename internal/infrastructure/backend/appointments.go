package backend

import (
	"context"
	"net/http"
	"net/url"

	"github.com/vetlink/session-gateway/internal/core/domain"
	"github.com/vetlink/session-gateway/internal/core/ports"
)

type statusUpdateRequest struct {
	Status string `json:"status"`
}

func (c *Client) Book(ctx context.Context, input ports.BookAppointmentInput) (*domain.Appointment, error) {
	var out domain.Appointment
	if err := c.doJSON(ctx, http.MethodPost, "/appointments", nil, input, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Mine(ctx context.Context) ([]domain.Appointment, error) {
	var out []domain.Appointment
	if err := c.doJSON(ctx, http.MethodGet, "/appointments/my-appointments", nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) Cancel(ctx context.Context, id string) error {
	return c.doJSON(ctx, http.MethodDelete, "/appointments/"+url.PathEscape(id), nil, nil, nil)
}

func (c *Client) UpdateStatus(ctx context.Context, id string, status domain.AppointmentStatus) (*domain.Appointment, error) {
	var out domain.Appointment
	path := "/appointments/" + url.PathEscape(id) + "/status"
	if err := c.doJSON(ctx, http.MethodPatch, path, nil, statusUpdateRequest{Status: string(status)}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

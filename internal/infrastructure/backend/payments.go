package backend

import (
	"context"
	"net/http"

	"github.com/vetlink/session-gateway/internal/core/domain"
	"github.com/vetlink/session-gateway/internal/core/ports"
)

func (c *Client) CreateDeposit(ctx context.Context, input ports.DepositInput) (*domain.DepositReceipt, error) {
	var out domain.DepositReceipt
	if err := c.doJSON(ctx, http.MethodPost, "/payments/deposit", nil, input, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

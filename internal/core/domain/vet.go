package domain

import (
	"errors"
	"time"
)

var ErrVetNotFound = errors.New("vet profile not found")

// VetProfile is the public listing a vet manages from their dashboard.
// Service tags are carried inside the profile payload as plain names; the
// backend's separate service-object shape is flattened upstream.
type VetProfile struct {
	ID       string   `json:"vet_id"`
	UserID   string   `json:"user_id,omitempty"`
	Name     string   `json:"name"`
	Email    string   `json:"email,omitempty"`
	Phone    string   `json:"phone,omitempty"`
	Location string   `json:"location,omitempty"`
	Bio      string   `json:"bio,omitempty"`
	Services []string `json:"services,omitempty"`
	Rating   float64  `json:"rating,omitempty"`
}

// Review is a client's rating of a vet.
type Review struct {
	ID         string    `json:"review_id,omitempty"`
	VetID      string    `json:"vet_id"`
	ClientName string    `json:"client_name,omitempty"`
	Rating     int       `json:"rating"`
	Comment    string    `json:"comment,omitempty"`
	CreatedAt  time.Time `json:"created_at,omitempty"`
}

// DepositReceipt is the payment service's answer to a deposit request.
type DepositReceipt struct {
	TransactionID string `json:"transaction_id"`
	Status        string `json:"status"` // pending, completed or failed
	Message       string `json:"message,omitempty"`
}

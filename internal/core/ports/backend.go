package ports

import (
	"context"
	"time"

	"github.com/vetlink/session-gateway/internal/core/domain"
)

// The interfaces below are the domain endpoint wrappers: one method per
// backend operation, no logic beyond input shaping. The bearer token travels
// in the request context (domain.WithSession); callers never pass it.

// AuthResult is a login/register response. Token presence is checked by the
// session service, not here.
type AuthResult struct {
	User  domain.User `json:"user"`
	Token string      `json:"token"`
}

// RegisterInput carries the free-form registration fields. They pass through
// to the backend without validation beyond handler-level shape checks.
type RegisterInput struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
	Phone    string `json:"phone,omitempty"`
}

type AuthAPI interface {
	Login(ctx context.Context, email, password string) (*AuthResult, error)
	Register(ctx context.Context, input RegisterInput) (*AuthResult, error)
	Me(ctx context.Context) (*domain.User, error)
}

// VetFilter is the optional query filter set for the vet listing.
type VetFilter struct {
	Query   string
	City    string
	Service string
}

type VetsAPI interface {
	List(ctx context.Context, filter VetFilter) ([]domain.VetProfile, error)
	Get(ctx context.Context, id string) (*domain.VetProfile, error)
	Create(ctx context.Context, profile domain.VetProfile) (*domain.VetProfile, error)
	Update(ctx context.Context, id string, profile domain.VetProfile) (*domain.VetProfile, error)
}

// BookAppointmentInput matches the backend's booking schema.
type BookAppointmentInput struct {
	VetID         string    `json:"vet_id"`
	ServiceID     string    `json:"service_id"`
	ScheduledTime time.Time `json:"scheduled_time"`
	Reason        string    `json:"reason,omitempty"`
}

type AppointmentsAPI interface {
	Book(ctx context.Context, input BookAppointmentInput) (*domain.Appointment, error)
	Mine(ctx context.Context) ([]domain.Appointment, error)
	Cancel(ctx context.Context, id string) error
	UpdateStatus(ctx context.Context, id string, status domain.AppointmentStatus) (*domain.Appointment, error)
}

// DepositInput is the deposit payload the payment service expects.
type DepositInput struct {
	ClientID        string    `json:"client_id"`
	VetID           string    `json:"vet_id"`
	Amount          float64   `json:"amount"`
	Currency        string    `json:"currency"`
	Description     string    `json:"description"`
	ClientPhone     string    `json:"client_phone"`
	AppointmentTime time.Time `json:"appointment_time"`
}

type PaymentsAPI interface {
	CreateDeposit(ctx context.Context, input DepositInput) (*domain.DepositReceipt, error)
}

type ReviewInput struct {
	Rating  int    `json:"rating"`
	Comment string `json:"comment,omitempty"`
}

type ReviewsAPI interface {
	Add(ctx context.Context, vetID string, input ReviewInput) (*domain.Review, error)
	ListForVet(ctx context.Context, vetID string) ([]domain.Review, error)
}

type UpdateProfileInput struct {
	Name  string `json:"name,omitempty"`
	Phone string `json:"phone,omitempty"`
}

type UsersAPI interface {
	Profile(ctx context.Context) (*domain.User, error)
	UpdateProfile(ctx context.Context, input UpdateProfileInput) (*domain.User, error)
	DeleteAccount(ctx context.Context) error
}

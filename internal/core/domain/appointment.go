package domain

import (
	"errors"
	"time"
)

// AppointmentStatus represents the lifecycle state of a booking as the
// backend reports it. The gateway validates status changes locally before
// issuing the PATCH so an impossible transition never leaves the page.
type AppointmentStatus string

const (
	StatusPending   AppointmentStatus = "pending"
	StatusConfirmed AppointmentStatus = "confirmed"
	StatusCanceled  AppointmentStatus = "canceled"
	StatusCompleted AppointmentStatus = "completed"
)

// validTransitions defines the allowed status changes a vet may apply.
var validTransitions = map[AppointmentStatus][]AppointmentStatus{
	StatusPending:   {StatusConfirmed, StatusCanceled},
	StatusConfirmed: {StatusCompleted, StatusCanceled},
}

var ErrInvalidStatus = errors.New("invalid appointment status")
var ErrInvalidTransition = errors.New("invalid status transition")
var ErrAppointmentNotFound = errors.New("appointment not found")

// ParseAppointmentStatus validates a client-supplied status string.
func ParseAppointmentStatus(s string) (AppointmentStatus, error) {
	switch status := AppointmentStatus(s); status {
	case StatusPending, StatusConfirmed, StatusCanceled, StatusCompleted:
		return status, nil
	default:
		return "", ErrInvalidStatus
	}
}

// CanTransitionTo reports whether a change from the current status to next is valid.
func (s AppointmentStatus) CanTransitionTo(next AppointmentStatus) bool {
	for _, allowed := range validTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Appointment mirrors the backend's booking record.
type Appointment struct {
	ID            string            `json:"appointment_id"`
	ClientID      string            `json:"client_id"`
	VetID         string            `json:"vet_id"`
	ServiceID     string            `json:"service_id,omitempty"`
	ScheduledTime time.Time         `json:"scheduled_time"`
	Reason        string            `json:"reason,omitempty"`
	Status        AppointmentStatus `json:"status"`
	VetName       string            `json:"vet_name,omitempty"`
	ClientName    string            `json:"client_name,omitempty"`
	CreatedAt     time.Time         `json:"created_at,omitempty"`
}

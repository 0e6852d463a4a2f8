package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/vetlink/session-gateway/internal/core/domain"
	"github.com/vetlink/session-gateway/internal/core/ports"
)

const defaultCurrency = "USD"

// BookingService carries the client dashboard's booking flow: create the
// appointment, then immediately request the deposit. The two calls run in
// program order with no cross-request transaction; when the deposit fails
// the appointment is left pending upstream and the failure is reported
// alongside the created appointment rather than rolled back.
type BookingService struct {
	appointments ports.AppointmentsAPI
	payments     ports.PaymentsAPI
	logger       zerolog.Logger
}

func NewBookingService(appointments ports.AppointmentsAPI, payments ports.PaymentsAPI, logger zerolog.Logger) *BookingService {
	return &BookingService{appointments: appointments, payments: payments, logger: logger}
}

// BookingInput is the booking form as the client page submits it.
type BookingInput struct {
	ports.BookAppointmentInput
	DepositAmount float64
	Currency      string
}

// BookingResult reports both halves of the flow. Appointment is always set on
// success of the first call; DepositStatus is "skipped" when no deposit was
// requested and "failed" when the second call did not go through.
type BookingResult struct {
	Appointment   *domain.Appointment    `json:"appointment"`
	Deposit       *domain.DepositReceipt `json:"deposit,omitempty"`
	DepositStatus string                 `json:"deposit_status"`
}

// Book creates the appointment and, if a deposit amount was given, the
// deposit. The booking user supplies the client identity for the deposit
// payload.
func (s *BookingService) Book(ctx context.Context, user *domain.User, input BookingInput) (*BookingResult, error) {
	appt, err := s.appointments.Book(ctx, input.BookAppointmentInput)
	if err != nil {
		s.logger.Error().Err(err).Str("vet_id", input.VetID).Msg("appointment creation failed")
		return nil, err
	}

	result := &BookingResult{Appointment: appt, DepositStatus: "skipped"}
	if input.DepositAmount <= 0 {
		return result, nil
	}

	currency := input.Currency
	if currency == "" {
		currency = defaultCurrency
	}

	receipt, err := s.payments.CreateDeposit(ctx, ports.DepositInput{
		ClientID:        user.ID,
		VetID:           input.VetID,
		Amount:          input.DepositAmount,
		Currency:        currency,
		Description:     "Appointment deposit",
		ClientPhone:     user.Phone,
		AppointmentTime: input.ScheduledTime,
	})
	if err != nil {
		// Known gap: the appointment stays pending upstream; there is no
		// compensating cancel in this layer.
		s.logger.Error().Err(err).
			Str("appointment_id", appt.ID).
			Str("vet_id", input.VetID).
			Msg("deposit failed after appointment creation")
		result.DepositStatus = "failed"
		return result, nil
	}

	result.Deposit = receipt
	result.DepositStatus = receipt.Status
	return result, nil
}

package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/vetlink/session-gateway/internal/api/metrics"
	"github.com/vetlink/session-gateway/internal/core/domain"
	"github.com/vetlink/session-gateway/internal/core/ports"
	"github.com/vetlink/session-gateway/internal/core/service"
)

// bookingFlow is the slice of the booking service the handler uses.
type bookingFlow interface {
	Book(ctx context.Context, user *domain.User, input service.BookingInput) (*service.BookingResult, error)
}

// AppointmentsHandler carries the dashboards' appointment logic: the
// book-then-deposit flow, listing, cancellation, and vet-side status updates.
type AppointmentsHandler struct {
	booking      bookingFlow
	appointments ports.AppointmentsAPI
}

func NewAppointmentsHandler(booking bookingFlow, appointments ports.AppointmentsAPI) *AppointmentsHandler {
	return &AppointmentsHandler{booking: booking, appointments: appointments}
}

type bookRequest struct {
	VetID         string  `json:"vet_id"         validate:"required"`
	ServiceID     string  `json:"service_id"     validate:"required"`
	ScheduledTime string  `json:"scheduled_time" validate:"required"`
	Reason        string  `json:"reason"`
	DepositAmount float64 `json:"deposit_amount"`
	Currency      string  `json:"currency"`
}

type statusRequest struct {
	Status  string `json:"status" validate:"required"`
	Current string `json:"current_status"`
}

// Book handles POST /appointments — creates the appointment and, when a
// deposit amount is given, the deposit, in program order with no rollback.
//
// @Summary      Book an appointment
// @Tags         appointments
// @Accept       json
// @Produce      json
// @Security     SessionCookie
// @Param        body  body      bookRequest  true  "Booking details"
// @Success      201   {object}  service.BookingResult
// @Failure      400   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /appointments [post]
func (h *AppointmentsHandler) Book(c echo.Context) error {
	var req bookRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	scheduled, err := time.Parse(time.RFC3339, req.ScheduledTime)
	if err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, "scheduled_time must be RFC 3339")
	}

	sess, err := ctxSession(c)
	if err != nil {
		return err
	}

	result, err := h.booking.Book(c.Request().Context(), sess.User, service.BookingInput{
		BookAppointmentInput: ports.BookAppointmentInput{
			VetID:         req.VetID,
			ServiceID:     req.ServiceID,
			ScheduledTime: scheduled,
			Reason:        req.Reason,
		},
		DepositAmount: req.DepositAmount,
		Currency:      req.Currency,
	})
	if err != nil {
		return err
	}

	metrics.BookingsTotal.Inc()
	metrics.DepositsTotal.WithLabelValues(result.DepositStatus).Inc()
	return c.JSON(http.StatusCreated, result)
}

// Mine handles GET /appointments — the caller's appointments, client or vet.
//
// @Summary      List my appointments
// @Tags         appointments
// @Produce      json
// @Security     SessionCookie
// @Success      200  {array}  domain.Appointment
// @Router       /appointments [get]
func (h *AppointmentsHandler) Mine(c echo.Context) error {
	appts, err := h.appointments.Mine(c.Request().Context())
	if err != nil {
		return err
	}
	if appts == nil {
		appts = []domain.Appointment{}
	}
	return c.JSON(http.StatusOK, appts)
}

// Cancel handles DELETE /appointments/:id.
//
// @Summary      Cancel an appointment
// @Tags         appointments
// @Security     SessionCookie
// @Param        id  path  string  true  "Appointment id"
// @Success      204  "appointment cancelled"
// @Router       /appointments/{id} [delete]
func (h *AppointmentsHandler) Cancel(c echo.Context) error {
	if err := h.appointments.Cancel(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// UpdateStatus handles PATCH /appointments/:id/status. The transition is
// validated locally when the page supplies the current status, so an
// impossible change never reaches the backend.
//
// @Summary      Update appointment status
// @Tags         appointments
// @Accept       json
// @Produce      json
// @Security     SessionCookie
// @Param        id    path      string         true  "Appointment id"
// @Param        body  body      statusRequest  true  "New status"
// @Success      200   {object}  domain.Appointment
// @Failure      422   {object}  errorResponse
// @Router       /appointments/{id}/status [patch]
func (h *AppointmentsHandler) UpdateStatus(c echo.Context) error {
	var req statusRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	next, err := domain.ParseAppointmentStatus(req.Status)
	if err != nil {
		return err
	}
	if req.Current != "" {
		current, err := domain.ParseAppointmentStatus(req.Current)
		if err != nil {
			return err
		}
		if !current.CanTransitionTo(next) {
			return domain.ErrInvalidTransition
		}
	}

	appt, err := h.appointments.UpdateStatus(c.Request().Context(), c.Param("id"), next)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, appt)
}

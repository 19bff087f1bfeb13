package handlers

import (
	"errors"
	"net/http"

	"hormelys/services/appointment"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// AppointmentHandler serves the booking endpoints.
type AppointmentHandler struct {
	Svc appointment.Service
}

// NewAppointmentHandler creates a new AppointmentHandler instance.
func NewAppointmentHandler(svc appointment.Service) *AppointmentHandler {
	return &AppointmentHandler{Svc: svc}
}

// bookingStatus maps the service error taxonomy to HTTP statuses.
func bookingStatus(err error) (int, string) {
	var be *appointment.BookingError
	if errors.As(err, &be) {
		switch be.Code {
		case appointment.CodeInvalidInput:
			return http.StatusBadRequest, be.Message
		case appointment.CodeSlotConflict:
			return http.StatusConflict, be.Message
		case appointment.CodeNotFound:
			return http.StatusNotFound, be.Message
		}
	}
	return http.StatusInternalServerError, "server error"
}

// GetAvailability returns the booked, non-cancelled, future slots.
// GET /api/appointments/availability
func (h *AppointmentHandler) GetAvailability(c *gin.Context) {
	slots, err := h.Svc.BookedSlots()
	if err != nil {
		getLogger(c).Error("failed to fetch booked slots", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"message": "server error"})
		return
	}
	c.JSON(http.StatusOK, slots)
}

// Book reserves a slot.
// POST /api/appointments/book
func (h *AppointmentHandler) Book(c *gin.Context) {
	var req appointment.BookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid request body"})
		return
	}

	result, err := h.Svc.Book(req)
	if err != nil {
		status, msg := bookingStatus(err)
		if status == http.StatusInternalServerError {
			getLogger(c).Error("booking failed", zap.Error(err))
			msg = "booking failed"
		}
		c.JSON(status, gin.H{"message": msg})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":     "appointment booked successfully",
		"appointment": result,
	})
}

// List returns every appointment for the back office.
// GET /api/appointments
func (h *AppointmentHandler) List(c *gin.Context) {
	appts, err := h.Svc.ListAppointments()
	if err != nil {
		getLogger(c).Error("failed to list appointments", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"message": "server error"})
		return
	}
	c.JSON(http.StatusOK, appts)
}

// Cancel marks an appointment cancelled.
// PUT /api/appointments/:id/cancel
func (h *AppointmentHandler) Cancel(c *gin.Context) {
	appt, err := h.Svc.Cancel(c.Param("id"))
	if err != nil {
		status, msg := bookingStatus(err)
		if status == http.StatusInternalServerError {
			getLogger(c).Error("cancellation failed", zap.Error(err))
			msg = "server error"
		}
		c.JSON(status, gin.H{"message": msg})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":     "appointment cancelled successfully",
		"appointment": appt,
	})
}

package appointment

import "hormelys/models"

// BookingRequest carries the booking form input.
type BookingRequest struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Date      string `json:"date"` // YYYY-MM-DD
	Time      string `json:"time"` // HH:MM
	Type      string `json:"type"` // defaults to discovery_call
}

// BookingResult is the booking confirmation returned to the customer.
type BookingResult struct {
	ID        string `json:"id"`
	Date      string `json:"date"`
	Time      string `json:"time"`
	Type      string `json:"type"`
	EmailSent bool   `json:"emailSent"`
}

// Service defines the appointment operations exposed to the handlers.
type Service interface {
	// BookedSlots lists future, non-cancelled (date, time) pairs.
	BookedSlots() ([]models.BookedSlot, error)
	// Book runs the booking transaction: validate, reserve, notify.
	Book(req BookingRequest) (*BookingResult, error)
	// ListAppointments returns all records, date then time ascending.
	ListAppointments() ([]models.Appointment, error)
	// Cancel marks an appointment cancelled and returns the updated record.
	Cancel(id string) (*models.Appointment, error)
}

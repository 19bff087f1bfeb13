package appointmentRepo

import (
	"time"

	"hormelys/models"
)

// AppointmentRepository defines data access for appointment records.
//
// The collection carries a unique compound index on (date, time) with no
// status qualifier. The index, not the availability pre-check, is the source
// of truth against double-booking: Create reports ErrSlotTaken when a racing
// insert loses to it.
type AppointmentRepository interface {
	// Create inserts a new appointment. Returns ErrSlotTaken when the
	// (date, time) pair is already held by any record.
	Create(appt *models.Appointment) error

	// IsSlotAvailable reports whether no non-cancelled record holds the
	// exact (date, time) pair.
	IsSlotAvailable(date, timeStr string) (bool, error)

	// BookedSlots returns the (date, time) pairs of every non-cancelled
	// record at or after now. Only date and time are projected.
	BookedSlots(now time.Time) ([]models.BookedSlot, error)

	// GetAll returns every appointment ordered by date then time, ascending.
	GetAll() ([]models.Appointment, error)

	// Cancel atomically sets the record's status to cancelled and refreshes
	// updatedAt, returning the updated record. Returns ErrNotFound for an
	// unknown id. Cancelling an already-cancelled record succeeds.
	Cancel(id string, now time.Time) (*models.Appointment, error)

	// SetEmailSent records the notification dispatch outcome.
	SetEmailSent(id string, sent bool, now time.Time) error
}

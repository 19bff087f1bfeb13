package notification

import "hormelys/models"

// Mailer dispatches appointment confirmation messages.
type Mailer interface {
	// SendConfirmation sends the customer confirmation then the practitioner
	// notice, sequentially. It reports overall success; failures are logged
	// and absorbed, never propagated — the booking already persisted.
	SendConfirmation(appt *models.Appointment) bool

	// Verify checks relay connectivity. Callers log the outcome only; a
	// failed verification must not prevent the service from starting.
	Verify() error
}

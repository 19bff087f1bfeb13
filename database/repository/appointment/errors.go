package appointmentRepo

import "errors"

var (
	// ErrSlotTaken is the duplicate-key failure translated: the (date, time)
	// pair is already held by an existing record.
	ErrSlotTaken = errors.New("slot already booked")

	// ErrNotFound signals an unknown appointment id.
	ErrNotFound = errors.New("appointment not found")
)

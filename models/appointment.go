package models

import "time"

// Appointment types.
const (
	TypeDiscoveryCall = "discovery_call"
	TypeConsultation  = "consultation"
	TypeFollowUp      = "follow_up"
)

// Appointment statuses. Transitions are one-directional: confirmed may move
// to cancelled or completed, nothing moves back.
const (
	StatusConfirmed = "confirmed"
	StatusCancelled = "cancelled"
	StatusCompleted = "completed"
)

// DefaultDurationMinutes is the length of a discovery call.
const DefaultDurationMinutes = 30

// Appointment is one customer's reserved slot. The (date, time) pair is
// unique across the collection regardless of status: a cancelled slot stays
// blocked for rebooking.
type Appointment struct {
	ID        string    `bson:"id" json:"id"`
	FirstName string    `bson:"firstName" json:"firstName"`
	LastName  string    `bson:"lastName" json:"lastName"`
	Email     string    `bson:"email" json:"email"`
	Phone     string    `bson:"phone" json:"phone"`
	Date      string    `bson:"date" json:"date"` // Format: YYYY-MM-DD
	Time      string    `bson:"time" json:"time"` // Format: HH:MM
	Type      string    `bson:"type" json:"type"`
	Status    string    `bson:"status" json:"status"`
	Duration  int       `bson:"duration" json:"duration"` // minutes
	Notes     string    `bson:"notes" json:"notes"`
	EmailSent bool      `bson:"emailSent" json:"emailSent"`
	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}

// BookedSlot is the public availability projection: date and time only, no
// personal data.
type BookedSlot struct {
	Date string `bson:"date" json:"date"`
	Time string `bson:"time" json:"time"`
}

// ParseSlot combines a date and a wall-clock time into a local instant.
func ParseSlot(date, timeStr string) (time.Time, error) {
	return time.ParseInLocation("2006-01-02T15:04", date+"T"+timeStr, time.Local)
}

// StartsAt returns the instant the appointment begins.
func (a *Appointment) StartsAt() (time.Time, error) {
	return ParseSlot(a.Date, a.Time)
}

// ValidType reports whether t is one of the known appointment types.
func ValidType(t string) bool {
	switch t {
	case TypeDiscoveryCall, TypeConsultation, TypeFollowUp:
		return true
	}
	return false
}

package appointment

import (
	"regexp"
	"strings"
)

// emailRegex accepts the usual local@domain.tld shape; nothing stricter.
var emailRegex = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// phoneRegex matches French mobile or landline numbers with a 0, +33 or
// 0033 prefix, then groups of two digits with optional separators. Applied
// after stripping spaces.
var phoneRegex = regexp.MustCompile(`^(?:(?:\+|00)33|0)\s*[1-9](?:[\s.\-]*[0-9]{2}){4}$`)

// ValidEmail reports whether the email has a plausible shape.
func ValidEmail(email string) bool {
	return emailRegex.MatchString(email)
}

// ValidFrenchPhone reports whether the phone is a valid French number.
func ValidFrenchPhone(phone string) bool {
	return phoneRegex.MatchString(strings.ReplaceAll(phone, " ", ""))
}

// validate checks the booking request in order, failing fast with a distinct
// message per rule. Slot availability and temporal validity are checked by
// the service, which needs the repository and the clock.
func (req *BookingRequest) validate() error {
	if req.FirstName == "" || req.LastName == "" || req.Email == "" ||
		req.Phone == "" || req.Date == "" || req.Time == "" {
		return NewInvalidInputError("all fields are required")
	}
	if !ValidEmail(req.Email) {
		return NewInvalidInputError("invalid email format")
	}
	if !ValidFrenchPhone(req.Phone) {
		return NewInvalidInputError("invalid phone format")
	}
	return nil
}

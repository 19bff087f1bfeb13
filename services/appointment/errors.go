package appointment

import "fmt"

// Error codes mapped to HTTP statuses at the handler boundary.
const (
	CodeInvalidInput = "invalidInput" // 400
	CodeSlotConflict = "slotConflict" // 409
	CodeNotFound     = "notFound"     // 404
)

// BookingError is a typed service error carrying a taxonomy code.
type BookingError struct {
	Code    string
	Message string
}

func (e *BookingError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func NewInvalidInputError(msg string) error {
	return &BookingError{Code: CodeInvalidInput, Message: msg}
}

func NewSlotConflictError() error {
	return &BookingError{Code: CodeSlotConflict, Message: "slot already booked"}
}

func NewNotFoundError() error {
	return &BookingError{Code: CodeNotFound, Message: "appointment not found"}
}

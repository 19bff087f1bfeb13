package appointment

import (
	"errors"
	"strings"
	"time"

	appointmentRepo "hormelys/database/repository/appointment"
	"hormelys/models"
	"hormelys/services/notification"
	"hormelys/utils"

	"go.uber.org/zap"
)

// DefaultAppointmentService implements Service against the appointment
// repository and the notification dispatcher.
type DefaultAppointmentService struct {
	Repo   appointmentRepo.AppointmentRepository
	Mailer notification.Mailer

	// Now is the wall-clock source; defaults to time.Now.
	Now func() time.Time
}

func (s *DefaultAppointmentService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// BookedSlots returns the future, non-cancelled slots.
func (s *DefaultAppointmentService) BookedSlots() ([]models.BookedSlot, error) {
	return s.Repo.BookedSlots(s.now())
}

// Book runs the booking transaction.
//
// The availability pre-check is an optimization for a friendly early 409;
// the unique (date, time) index is what actually serializes two concurrent
// bookings of the same slot, surfacing here as ErrSlotTaken from Create.
// Notification failure never invalidates the booking: the outcome is
// recorded on the emailSent flag and reported to the caller.
func (s *DefaultAppointmentService) Book(req BookingRequest) (*BookingResult, error) {
	logger := utils.GetLogger()

	if err := req.validate(); err != nil {
		return nil, err
	}

	available, err := s.Repo.IsSlotAvailable(req.Date, req.Time)
	if err != nil {
		return nil, err
	}
	if !available {
		return nil, NewSlotConflictError()
	}

	startsAt, err := models.ParseSlot(req.Date, req.Time)
	if err != nil {
		return nil, NewInvalidInputError("invalid date or time format")
	}
	if !startsAt.After(s.now()) {
		return nil, NewInvalidInputError("cannot book a past slot")
	}

	apptType := req.Type
	if apptType == "" {
		apptType = models.TypeDiscoveryCall
	}
	if !models.ValidType(apptType) {
		return nil, NewInvalidInputError("unknown appointment type")
	}

	appt := &models.Appointment{
		FirstName: strings.TrimSpace(req.FirstName),
		LastName:  strings.TrimSpace(req.LastName),
		Email:     strings.ToLower(strings.TrimSpace(req.Email)),
		Phone:     strings.TrimSpace(req.Phone),
		Date:      req.Date,
		Time:      req.Time,
		Type:      apptType,
		Status:    models.StatusConfirmed,
		Duration:  models.DefaultDurationMinutes,
	}

	if err := s.Repo.Create(appt); err != nil {
		if errors.Is(err, appointmentRepo.ErrSlotTaken) {
			// Lost the check-then-act race; same response as the pre-check.
			return nil, NewSlotConflictError()
		}
		return nil, err
	}

	emailSent := s.Mailer.SendConfirmation(appt)
	appt.EmailSent = emailSent
	if err := s.Repo.SetEmailSent(appt.ID, emailSent, s.now()); err != nil {
		// The booking stands; the flag write-back is best effort.
		logger.Error("failed to record emailSent flag",
			zap.String("appointmentID", appt.ID), zap.Error(err))
	}

	return &BookingResult{
		ID:        appt.ID,
		Date:      appt.Date,
		Time:      appt.Time,
		Type:      appt.Type,
		EmailSent: emailSent,
	}, nil
}

// ListAppointments returns all appointment records for the back office.
func (s *DefaultAppointmentService) ListAppointments() ([]models.Appointment, error) {
	return s.Repo.GetAll()
}

// Cancel marks an appointment cancelled. The slot stays blocked: the unique
// index has no status qualifier.
func (s *DefaultAppointmentService) Cancel(id string) (*models.Appointment, error) {
	appt, err := s.Repo.Cancel(id, s.now())
	if err != nil {
		if errors.Is(err, appointmentRepo.ErrNotFound) {
			return nil, NewNotFoundError()
		}
		return nil, err
	}
	return appt, nil
}

package appointment

import (
	"errors"
	"testing"
	"time"

	appointmentRepo "hormelys/database/repository/appointment"
	"hormelys/models"
)

// fakeRepo implements AppointmentRepository in memory. createErr forces the
// insert outcome regardless of state, to simulate a lost duplicate-key race.
type fakeRepo struct {
	appts     []models.Appointment
	createErr error
	failAll   bool
}

func (f *fakeRepo) Create(appt *models.Appointment) error {
	if f.createErr != nil {
		return f.createErr
	}
	if appt.ID == "" {
		appt.ID = "appt-1"
	}
	now := time.Now()
	appt.CreatedAt = now
	appt.UpdatedAt = now
	f.appts = append(f.appts, *appt)
	return nil
}

func (f *fakeRepo) IsSlotAvailable(date, timeStr string) (bool, error) {
	for _, a := range f.appts {
		if a.Date == date && a.Time == timeStr && a.Status != models.StatusCancelled {
			return false, nil
		}
	}
	return true, nil
}

func (f *fakeRepo) BookedSlots(now time.Time) ([]models.BookedSlot, error) {
	if f.failAll {
		return nil, errors.New("connection lost")
	}
	slots := []models.BookedSlot{}
	for _, a := range f.appts {
		if a.Status == models.StatusCancelled {
			continue
		}
		startsAt, err := a.StartsAt()
		if err != nil || startsAt.Before(now) {
			continue
		}
		slots = append(slots, models.BookedSlot{Date: a.Date, Time: a.Time})
	}
	return slots, nil
}

func (f *fakeRepo) GetAll() ([]models.Appointment, error) {
	if f.failAll {
		return nil, errors.New("connection lost")
	}
	return f.appts, nil
}

func (f *fakeRepo) Cancel(id string, now time.Time) (*models.Appointment, error) {
	for i := range f.appts {
		if f.appts[i].ID == id {
			f.appts[i].Status = models.StatusCancelled
			f.appts[i].UpdatedAt = now
			return &f.appts[i], nil
		}
	}
	return nil, appointmentRepo.ErrNotFound
}

func (f *fakeRepo) SetEmailSent(id string, sent bool, now time.Time) error {
	for i := range f.appts {
		if f.appts[i].ID == id {
			f.appts[i].EmailSent = sent
			f.appts[i].UpdatedAt = now
			return nil
		}
	}
	return appointmentRepo.ErrNotFound
}

// fakeMailer records the dispatch and reports the configured outcome.
type fakeMailer struct {
	sent    int
	outcome bool
}

func (m *fakeMailer) SendConfirmation(appt *models.Appointment) bool {
	m.sent++
	return m.outcome
}

func (m *fakeMailer) Verify() error { return nil }

var testNow = time.Date(2026, 9, 14, 10, 0, 0, 0, time.Local)

func newTestService(repo *fakeRepo, mailer *fakeMailer) *DefaultAppointmentService {
	return &DefaultAppointmentService{
		Repo:   repo,
		Mailer: mailer,
		Now:    func() time.Time { return testNow },
	}
}

func validRequest() BookingRequest {
	return BookingRequest{
		FirstName: "  Marie ",
		LastName:  "Dupont",
		Email:     " Marie.Dupont@Example.COM ",
		Phone:     "06 85 68 30 59",
		Date:      "2026-09-15",
		Time:      "14:30",
	}
}

func assertCode(t *testing.T, err error, code string) {
	t.Helper()
	var be *BookingError
	if !errors.As(err, &be) {
		t.Fatalf("expected a BookingError, got %v", err)
	}
	if be.Code != code {
		t.Fatalf("expected code %s, got %s (%s)", code, be.Code, be.Message)
	}
}

func TestBook_Success(t *testing.T) {
	repo := &fakeRepo{}
	mailer := &fakeMailer{outcome: true}
	svc := newTestService(repo, mailer)

	result, err := svc.Book(validRequest())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.ID == "" {
		t.Fatal("expected an appointment id")
	}
	if result.Type != models.TypeDiscoveryCall {
		t.Fatalf("expected default type discovery_call, got %s", result.Type)
	}
	if !result.EmailSent {
		t.Fatal("expected emailSent true")
	}
	if mailer.sent != 1 {
		t.Fatalf("expected one dispatch, got %d", mailer.sent)
	}

	if len(repo.appts) != 1 {
		t.Fatalf("expected one stored appointment, got %d", len(repo.appts))
	}
	stored := repo.appts[0]
	if stored.FirstName != "Marie" || stored.LastName != "Dupont" {
		t.Fatalf("expected trimmed names, got %q %q", stored.FirstName, stored.LastName)
	}
	if stored.Email != "marie.dupont@example.com" {
		t.Fatalf("expected normalized email, got %q", stored.Email)
	}
	if stored.Status != models.StatusConfirmed {
		t.Fatalf("expected status confirmed, got %s", stored.Status)
	}
	if stored.Duration != models.DefaultDurationMinutes {
		t.Fatalf("expected default duration, got %d", stored.Duration)
	}
	if !stored.EmailSent {
		t.Fatal("expected emailSent written back on the record")
	}
}

func TestBook_MissingFields(t *testing.T) {
	svc := newTestService(&fakeRepo{}, &fakeMailer{outcome: true})

	req := validRequest()
	req.Email = ""
	_, err := svc.Book(req)
	assertCode(t, err, CodeInvalidInput)
}

func TestBook_InvalidEmail(t *testing.T) {
	svc := newTestService(&fakeRepo{}, &fakeMailer{outcome: true})

	req := validRequest()
	req.Email = "not-an-email"
	_, err := svc.Book(req)
	assertCode(t, err, CodeInvalidInput)
}

func TestBook_InvalidPhone(t *testing.T) {
	repo := &fakeRepo{}
	svc := newTestService(repo, &fakeMailer{outcome: true})

	req := validRequest()
	req.Phone = "123"
	_, err := svc.Book(req)
	assertCode(t, err, CodeInvalidInput)
	if len(repo.appts) != 0 {
		t.Fatal("no record must be created on validation failure")
	}
}

func TestBook_PastSlot(t *testing.T) {
	svc := newTestService(&fakeRepo{}, &fakeMailer{outcome: true})

	req := validRequest()
	req.Date = "2026-09-14"
	req.Time = "10:00" // exactly now: at-or-before is rejected
	_, err := svc.Book(req)
	assertCode(t, err, CodeInvalidInput)

	req.Date = "2020-01-01"
	_, err = svc.Book(req)
	assertCode(t, err, CodeInvalidInput)
}

func TestBook_SlotConflictPrecheck(t *testing.T) {
	repo := &fakeRepo{}
	mailer := &fakeMailer{outcome: true}
	svc := newTestService(repo, mailer)

	if _, err := svc.Book(validRequest()); err != nil {
		t.Fatalf("first booking failed: %v", err)
	}

	second := validRequest()
	second.Email = "other@example.com"
	_, err := svc.Book(second)
	assertCode(t, err, CodeSlotConflict)
	if mailer.sent != 1 {
		t.Fatalf("conflicting booking must not dispatch mail, got %d sends", mailer.sent)
	}
}

func TestBook_SlotConflictAtInsert(t *testing.T) {
	// The pre-check passes but the unique index rejects the insert: the
	// racing-duplicate case must map to the same conflict error.
	repo := &fakeRepo{createErr: appointmentRepo.ErrSlotTaken}
	svc := newTestService(repo, &fakeMailer{outcome: true})

	_, err := svc.Book(validRequest())
	assertCode(t, err, CodeSlotConflict)
}

func TestBook_MailFailureKeepsBooking(t *testing.T) {
	repo := &fakeRepo{}
	svc := newTestService(repo, &fakeMailer{outcome: false})

	result, err := svc.Book(validRequest())
	if err != nil {
		t.Fatalf("mail failure must not fail the booking: %v", err)
	}
	if result.EmailSent {
		t.Fatal("expected emailSent false")
	}
	if len(repo.appts) != 1 || repo.appts[0].EmailSent {
		t.Fatal("expected the stored record to carry emailSent false")
	}
	if repo.appts[0].Status != models.StatusConfirmed {
		t.Fatal("booking must stay confirmed after a mail failure")
	}
}

func TestBook_UnknownType(t *testing.T) {
	svc := newTestService(&fakeRepo{}, &fakeMailer{outcome: true})

	req := validRequest()
	req.Type = "hypnosis"
	_, err := svc.Book(req)
	assertCode(t, err, CodeInvalidInput)
}

func TestBookedSlots_FiltersCancelledAndPast(t *testing.T) {
	repo := &fakeRepo{appts: []models.Appointment{
		{ID: "a", Date: "2026-09-15", Time: "09:00", Status: models.StatusConfirmed},
		{ID: "b", Date: "2026-09-15", Time: "10:00", Status: models.StatusCancelled},
		{ID: "c", Date: "2026-09-13", Time: "09:00", Status: models.StatusConfirmed},
	}}
	svc := newTestService(repo, &fakeMailer{outcome: true})

	slots, err := svc.BookedSlots()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(slots) != 1 {
		t.Fatalf("expected 1 slot, got %d", len(slots))
	}
	if slots[0].Date != "2026-09-15" || slots[0].Time != "09:00" {
		t.Fatalf("unexpected slot %+v", slots[0])
	}
}

func TestCancel(t *testing.T) {
	repo := &fakeRepo{appts: []models.Appointment{
		{ID: "a", Date: "2026-09-15", Time: "09:00", Status: models.StatusConfirmed},
	}}
	svc := newTestService(repo, &fakeMailer{outcome: true})

	appt, err := svc.Cancel("a")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if appt.Status != models.StatusCancelled {
		t.Fatalf("expected cancelled, got %s", appt.Status)
	}
	if appt.Date != "2026-09-15" || appt.Time != "09:00" {
		t.Fatal("cancel must not change the slot")
	}
	if !appt.UpdatedAt.Equal(testNow) {
		t.Fatal("expected updatedAt refreshed")
	}

	// Second cancel succeeds and leaves the record cancelled.
	again, err := svc.Cancel("a")
	if err != nil {
		t.Fatalf("repeat cancel must succeed: %v", err)
	}
	if again.Status != models.StatusCancelled {
		t.Fatalf("expected cancelled, got %s", again.Status)
	}
}

func TestCancel_Unknown(t *testing.T) {
	svc := newTestService(&fakeRepo{}, &fakeMailer{outcome: true})

	_, err := svc.Cancel("missing")
	assertCode(t, err, CodeNotFound)
}

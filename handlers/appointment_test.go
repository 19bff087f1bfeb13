package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"hormelys/models"
	"hormelys/services/appointment"

	"github.com/gin-gonic/gin"
)

// stubService scripts each Service operation.
type stubService struct {
	slots    []models.BookedSlot
	slotsErr error

	bookResult *appointment.BookingResult
	bookErr    error

	appts   []models.Appointment
	listErr error

	cancelled *models.Appointment
	cancelErr error
}

func (s *stubService) BookedSlots() ([]models.BookedSlot, error) { return s.slots, s.slotsErr }

func (s *stubService) Book(req appointment.BookingRequest) (*appointment.BookingResult, error) {
	return s.bookResult, s.bookErr
}

func (s *stubService) ListAppointments() ([]models.Appointment, error) { return s.appts, s.listErr }

func (s *stubService) Cancel(id string) (*models.Appointment, error) {
	return s.cancelled, s.cancelErr
}

func newRouter(svc appointment.Service) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewAppointmentHandler(svc)
	r := gin.New()
	r.GET("/api/appointments/availability", h.GetAvailability)
	r.POST("/api/appointments/book", h.Book)
	r.GET("/api/appointments", h.List)
	r.PUT("/api/appointments/:id/cancel", h.Cancel)
	return r
}

func doJSON(r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestGetAvailability(t *testing.T) {
	r := newRouter(&stubService{slots: []models.BookedSlot{
		{Date: "2026-09-15", Time: "09:00"},
		{Date: "2026-09-15", Time: "14:30"},
	}})

	w := doJSON(r, http.MethodGet, "/api/appointments/availability", "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	var slots []models.BookedSlot
	if err := json.Unmarshal(w.Body.Bytes(), &slots); err != nil {
		t.Fatalf("bad response body: %v", err)
	}
	if len(slots) != 2 || slots[0].Time != "09:00" {
		t.Fatalf("unexpected slots %+v", slots)
	}
}

func TestGetAvailability_Empty(t *testing.T) {
	r := newRouter(&stubService{slots: []models.BookedSlot{}})

	w := doJSON(r, http.MethodGet, "/api/appointments/availability", "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if strings.TrimSpace(w.Body.String()) != "[]" {
		t.Fatalf("expected an empty array, got %s", w.Body.String())
	}
}

func TestGetAvailability_Error(t *testing.T) {
	r := newRouter(&stubService{slotsErr: errors.New("connection lost")})

	w := doJSON(r, http.MethodGet, "/api/appointments/availability", "")
	if w.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", w.Code)
	}
}

func TestBook_Created(t *testing.T) {
	r := newRouter(&stubService{bookResult: &appointment.BookingResult{
		ID:        "appt-1",
		Date:      "2026-09-15",
		Time:      "14:30",
		Type:      models.TypeDiscoveryCall,
		EmailSent: true,
	}})

	w := doJSON(r, http.MethodPost, "/api/appointments/book",
		`{"firstName":"Marie","lastName":"Dupont","email":"marie@example.com","phone":"0685683059","date":"2026-09-15","time":"14:30"}`)
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d (%s)", w.Code, w.Body.String())
	}

	var resp struct {
		Message     string                     `json:"message"`
		Appointment *appointment.BookingResult `json:"appointment"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("bad response body: %v", err)
	}
	if resp.Appointment == nil || resp.Appointment.ID != "appt-1" || !resp.Appointment.EmailSent {
		t.Fatalf("unexpected appointment payload %+v", resp.Appointment)
	}
}

func TestBook_StatusMapping(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"invalid input", appointment.NewInvalidInputError("invalid email format"), http.StatusBadRequest},
		{"slot conflict", appointment.NewSlotConflictError(), http.StatusConflict},
		{"not found", appointment.NewNotFoundError(), http.StatusNotFound},
		{"internal", errors.New("connection lost"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newRouter(&stubService{bookErr: tt.err})
			w := doJSON(r, http.MethodPost, "/api/appointments/book",
				`{"firstName":"Marie","date":"2026-09-15","time":"14:30"}`)
			if w.Code != tt.want {
				t.Fatalf("expected %d, got %d (%s)", tt.want, w.Code, w.Body.String())
			}
		})
	}
}

func TestBook_MalformedBody(t *testing.T) {
	r := newRouter(&stubService{})

	w := doJSON(r, http.MethodPost, "/api/appointments/book", `{"firstName":`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
}

func TestList(t *testing.T) {
	r := newRouter(&stubService{appts: []models.Appointment{
		{ID: "a", Date: "2026-09-15", Time: "09:00", Status: models.StatusConfirmed},
	}})

	w := doJSON(r, http.MethodGet, "/api/appointments", "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	var appts []models.Appointment
	if err := json.Unmarshal(w.Body.Bytes(), &appts); err != nil {
		t.Fatalf("bad response body: %v", err)
	}
	if len(appts) != 1 || appts[0].ID != "a" {
		t.Fatalf("unexpected appointments %+v", appts)
	}
}

func TestCancel_OK(t *testing.T) {
	r := newRouter(&stubService{cancelled: &models.Appointment{
		ID: "a", Date: "2026-09-15", Time: "09:00", Status: models.StatusCancelled,
	}})

	w := doJSON(r, http.MethodPut, "/api/appointments/a/cancel", "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	var resp struct {
		Appointment models.Appointment `json:"appointment"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("bad response body: %v", err)
	}
	if resp.Appointment.Status != models.StatusCancelled {
		t.Fatalf("expected cancelled, got %s", resp.Appointment.Status)
	}
}

func TestCancel_NotFound(t *testing.T) {
	r := newRouter(&stubService{cancelErr: appointment.NewNotFoundError()})

	w := doJSON(r, http.MethodPut, "/api/appointments/missing/cancel", "")
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", w.Code)
	}
}

package update_booking_status

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"

	"github.com/m04kA/SMC-MeetingRoomService/internal/service/bookings"
	"github.com/m04kA/SMC-MeetingRoomService/internal/service/bookings/models"
	"github.com/m04kA/SMC-MeetingRoomService/pkg/logger"
)

type fakeService struct {
	id, status, identifier string
	err                    error
}

func (f *fakeService) SetStatusAuthorized(_ context.Context, id, status, identifier string) (*models.BookingResponse, error) {
	f.id, f.status, f.identifier = id, status, identifier
	if f.err != nil {
		return nil, f.err
	}
	return &models.BookingResponse{ID: id, Status: status}, nil
}

func TestHandle(t *testing.T) {
	tests := []struct {
		name   string
		body   string
		err    error
		status int
	}{
		{name: "cancelled", body: `{"status":"cancelled","employeeId":"1234567"}`, status: http.StatusOK},
		{name: "broken body", body: `{"status":`, status: http.StatusBadRequest},
		{name: "unknown status", body: `{"status":"done","employeeId":"1234567"}`, err: bookings.ErrInvalidStatus, status: http.StatusBadRequest},
		{name: "missing", body: `{"status":"confirmed","employeeId":"1234567"}`, err: bookings.ErrBookingNotFound, status: http.StatusNotFound},
		{name: "other employee", body: `{"status":"cancelled","employeeId":"7654321"}`, err: bookings.ErrAccessDenied, status: http.StatusForbidden},
		{name: "store", body: `{"status":"cancelled","employeeId":"1234567"}`, err: bookings.ErrStoreUnavailable, status: http.StatusServiceUnavailable},
		{name: "unexpected", body: `{"status":"cancelled","employeeId":"1234567"}`, err: errors.New("boom"), status: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &fakeService{err: tt.err}
			h := NewHandler(svc, logger.NewNop())
			req := httptest.NewRequest(http.MethodPatch, "/api/v1/bookings/b-1/status", strings.NewReader(tt.body))
			req = mux.SetURLVars(req, map[string]string{"bookingId": "b-1"})
			rec := httptest.NewRecorder()

			h.Handle(rec, req)

			assert.Equal(t, tt.status, rec.Code)
		})
	}
}

func TestHandle_PassesIdentifier(t *testing.T) {
	svc := &fakeService{}
	h := NewHandler(svc, logger.NewNop())
	req := httptest.NewRequest(http.MethodPatch, "/api/v1/bookings/b-1/status",
		strings.NewReader(`{"status":"confirmed","employeeId":"1234567"}`))
	req = mux.SetURLVars(req, map[string]string{"bookingId": "b-1"})
	rec := httptest.NewRecorder()

	h.Handle(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "b-1", svc.id)
	assert.Equal(t, "confirmed", svc.status)
	assert.Equal(t, "1234567", svc.identifier)
	assert.Contains(t, rec.Body.String(), `"status":"confirmed"`)
}

package get_booking

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"

	"github.com/m04kA/SMC-MeetingRoomService/internal/service/bookings"
	"github.com/m04kA/SMC-MeetingRoomService/internal/service/bookings/models"
	"github.com/m04kA/SMC-MeetingRoomService/pkg/logger"
)

type fakeService struct {
	err error
}

func (f *fakeService) GetByID(_ context.Context, id string) (*models.BookingResponse, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &models.BookingResponse{ID: id, Title: "Sync"}, nil
}

func TestHandle(t *testing.T) {
	tests := []struct {
		name   string
		id     string
		err    error
		status int
	}{
		{name: "found", id: "b-1", status: http.StatusOK},
		{name: "blank id", id: "  ", status: http.StatusBadRequest},
		{name: "missing", id: "b-404", err: bookings.ErrBookingNotFound, status: http.StatusNotFound},
		{name: "store", id: "b-1", err: bookings.ErrStoreUnavailable, status: http.StatusServiceUnavailable},
		{name: "unexpected", id: "b-1", err: errors.New("boom"), status: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewHandler(&fakeService{err: tt.err}, logger.NewNop())
			req := httptest.NewRequest(http.MethodGet, "/api/v1/bookings/x", nil)
			req = mux.SetURLVars(req, map[string]string{"bookingId": tt.id})
			rec := httptest.NewRecorder()

			h.Handle(rec, req)

			assert.Equal(t, tt.status, rec.Code)
			if tt.status == http.StatusOK {
				assert.Contains(t, rec.Body.String(), `"title":"Sync"`)
			}
		})
	}
}

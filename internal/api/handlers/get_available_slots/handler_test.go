package get_available_slots

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	getAvailableSlots "github.com/m04kA/SMC-MeetingRoomService/internal/usecase/get_available_slots"
	"github.com/m04kA/SMC-MeetingRoomService/pkg/logger"
	"github.com/m04kA/SMC-MeetingRoomService/pkg/types"
)

type fakeUseCase struct {
	got *getAvailableSlots.Request
	err error
}

func (f *fakeUseCase) Execute(_ context.Context, req *getAvailableSlots.Request) (*getAvailableSlots.Response, error) {
	f.got = req
	if f.err != nil {
		return nil, f.err
	}
	return &getAvailableSlots.Response{
		RoomID:          req.RoomID,
		Date:            req.Date,
		DurationMinutes: req.DurationMinutes,
		Slots: []getAvailableSlots.Slot{
			{StartTime: types.MustTimeString("09:00"), EndTime: types.MustTimeString("10:00")},
		},
	}, nil
}

func serve(uc *fakeUseCase, target string) *httptest.ResponseRecorder {
	h := NewHandler(uc, logger.NewNop())
	req := httptest.NewRequest(http.MethodGet, target, nil)
	req = mux.SetURLVars(req, map[string]string{"roomId": "R1"})
	rec := httptest.NewRecorder()
	h.Handle(rec, req)
	return rec
}

func TestHandle_DefaultDuration(t *testing.T) {
	uc := &fakeUseCase{}
	rec := serve(uc, "/api/v1/rooms/R1/available-slots?date=2030-10-20")

	require.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, uc.got)
	assert.Equal(t, "R1", uc.got.RoomID)
	assert.Equal(t, defaultDurationMinutes, uc.got.DurationMinutes)

	var resp AvailableSlotsResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, "2030-10-20", resp.Date)
	assert.Equal(t, []AvailableSlot{{StartTime: "09:00", EndTime: "10:00"}}, resp.Slots)
}

func TestHandle_Errors(t *testing.T) {
	tests := []struct {
		name   string
		target string
		err    error
		status int
	}{
		{name: "missing date", target: "/api/v1/rooms/R1/available-slots", status: http.StatusBadRequest},
		{name: "bad date", target: "/api/v1/rooms/R1/available-slots?date=20-10-2030", status: http.StatusBadRequest},
		{name: "bad duration", target: "/api/v1/rooms/R1/available-slots?date=2030-10-20&duration=hour", status: http.StatusBadRequest},
		{name: "room not found", target: "/api/v1/rooms/R1/available-slots?date=2030-10-20", err: getAvailableSlots.ErrRoomNotFound, status: http.StatusNotFound},
		{name: "past date", target: "/api/v1/rooms/R1/available-slots?date=2020-10-20", err: getAvailableSlots.ErrInvalidDate, status: http.StatusBadRequest},
		{name: "store", target: "/api/v1/rooms/R1/available-slots?date=2030-10-20", err: getAvailableSlots.ErrStoreUnavailable, status: http.StatusServiceUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := serve(&fakeUseCase{err: tt.err}, tt.target)
			assert.Equal(t, tt.status, rec.Code)
		})
	}
}

package create_booking

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-MeetingRoomService/internal/domain"
	"github.com/m04kA/SMC-MeetingRoomService/internal/service/conflicts"
	"github.com/m04kA/SMC-MeetingRoomService/internal/testfixtures"
	"github.com/m04kA/SMC-MeetingRoomService/pkg/logger"
	"github.com/m04kA/SMC-MeetingRoomService/pkg/types"
)

var day = testfixtures.Date(2026, time.October, 20)

type fixture struct {
	uc       *UseCase
	bookings *testfixtures.BookingStore
	rooms    *testfixtures.RoomStore
	tx       *testfixtures.SerialTx
	pub      *testfixtures.Publisher
}

func newFixture(existing ...*domain.Booking) *fixture {
	clock := testfixtures.At(2026, time.October, 19, 15, 0)
	inactive := testfixtures.Room("R9", 10)
	inactive.Status = domain.RoomStatusInactive

	f := &fixture{
		bookings: testfixtures.NewBookingStore(existing...),
		rooms:    testfixtures.NewRoomStore(testfixtures.Room("R1", 4), inactive),
		tx:       &testfixtures.SerialTx{},
		pub:      &testfixtures.Publisher{},
	}

	checker := conflicts.NewChecker(f.bookings, testfixtures.Policy(), logger.NewNop())
	f.uc = NewUseCase(f.bookings, f.rooms, checker, f.tx, f.pub, nil, testfixtures.Policy(), logger.NewNop())
	f.uc.timeProvider = clock
	return f
}

func request(start, end string) *Request {
	return &Request{
		RoomID:       "R1",
		Title:        "Design review",
		BookerName:   "Kim",
		EmployeeID:   testfixtures.EmployeeID,
		Date:         day,
		StartTime:    types.TimeString(start),
		EndTime:      types.TimeString(end),
		Participants: 3,
	}
}

func TestExecute_Success(t *testing.T) {
	f := newFixture()

	resp, err := f.uc.Execute(context.Background(), request("10:00", "11:00"))
	require.NoError(t, err)

	assert.NotEmpty(t, resp.ID)
	assert.Equal(t, "confirmed", resp.Status)
	assert.Equal(t, "Room R1", resp.RoomName)
	assert.Equal(t, "2026-10-20", resp.Date)
	assert.False(t, resp.IsCheckedIn)
	assert.False(t, resp.IsNoShow)
	assert.Nil(t, resp.CheckInTime)
	assert.Equal(t, "2026-10-19T15:00:00+09:00", resp.CreatedAt)

	assert.Equal(t, 1, f.bookings.Len())
	assert.Equal(t, 1, f.tx.Calls)
	assert.Equal(t, []domain.BookingEvent{domain.EventBookingCreated}, f.pub.Events)
}

func TestExecute_DefaultParticipants(t *testing.T) {
	f := newFixture()
	req := request("10:00", "11:00")
	req.Participants = 0

	resp, err := f.uc.Execute(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, 1, resp.Participants)
}

func TestExecute_Scenario(t *testing.T) {
	existing := testfixtures.Booking("b-1", "R1", day, "10:00", "11:00")

	t.Run("touching boundary is free", func(t *testing.T) {
		f := newFixture(existing)
		_, err := f.uc.Execute(context.Background(), request("11:00", "12:00"))
		assert.NoError(t, err)
	})

	t.Run("overlap conflicts", func(t *testing.T) {
		f := newFixture(existing)
		_, err := f.uc.Execute(context.Background(), request("10:30", "11:30"))
		assert.ErrorIs(t, err, ErrTimeConflict)
		assert.Equal(t, 1, f.bookings.Len())
		assert.Empty(t, f.pub.Events)
	})

	t.Run("capacity exceeded before booking store access", func(t *testing.T) {
		f := newFixture(existing)
		req := request("13:00", "14:00")
		req.Participants = 5

		_, err := f.uc.Execute(context.Background(), req)
		assert.ErrorIs(t, err, ErrCapacityExceeded)
		assert.ErrorIs(t, err, ErrInvalidInput)
		assert.Zero(t, f.bookings.Calls)
		assert.Zero(t, f.tx.Calls)
	})
}

func TestExecute_Validation(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(r *Request)
		wantErr error
	}{
		{name: "missing room", mutate: func(r *Request) { r.RoomID = "" }, wantErr: ErrInvalidInput},
		{name: "missing title", mutate: func(r *Request) { r.Title = "  " }, wantErr: ErrInvalidInput},
		{name: "missing booker", mutate: func(r *Request) { r.BookerName = "" }, wantErr: ErrInvalidInput},
		{name: "short employee id", mutate: func(r *Request) { r.EmployeeID = "12345" }, wantErr: ErrInvalidInput},
		{name: "letters in employee id", mutate: func(r *Request) { r.EmployeeID = "12345ab" }, wantErr: ErrInvalidInput},
		{name: "bad time format", mutate: func(r *Request) { r.StartTime = "25:00" }, wantErr: ErrInvalidInput},
		{name: "zero length", mutate: func(r *Request) { r.EndTime = "10:00" }, wantErr: ErrInvalidInput},
		{name: "inverted", mutate: func(r *Request) { r.StartTime, r.EndTime = "11:00", "10:00" }, wantErr: ErrInvalidInput},
		{name: "past date", mutate: func(r *Request) { r.Date = day.AddDate(0, 0, -2) }, wantErr: ErrInvalidDate},
		{name: "unknown room", mutate: func(r *Request) { r.RoomID = "R404" }, wantErr: ErrRoomNotFound},
		{name: "inactive room", mutate: func(r *Request) { r.RoomID = "R9" }, wantErr: ErrRoomInactive},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture()
			req := request("10:00", "11:00")
			tt.mutate(req)

			_, err := f.uc.Execute(context.Background(), req)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Zero(t, f.bookings.Len())
		})
	}
}

func TestExecute_TodayIsNotPast(t *testing.T) {
	f := newFixture()
	req := request("16:00", "17:00")
	req.Date = testfixtures.Date(2026, time.October, 19)

	_, err := f.uc.Execute(context.Background(), req)
	assert.NoError(t, err)
}

func TestExecute_StoreFailures(t *testing.T) {
	t.Run("listing fails closed as conflict", func(t *testing.T) {
		f := newFixture()
		f.bookings.ListErr = errors.New("timeout")
		_, err := f.uc.Execute(context.Background(), request("10:00", "11:00"))
		assert.ErrorIs(t, err, ErrTimeConflict)
	})

	t.Run("append failure", func(t *testing.T) {
		f := newFixture()
		f.bookings.CreateErr = errors.New("quota exceeded")
		_, err := f.uc.Execute(context.Background(), request("10:00", "11:00"))
		assert.ErrorIs(t, err, ErrStoreUnavailable)
	})

	t.Run("room lookup failure", func(t *testing.T) {
		f := newFixture()
		f.rooms.ListErr = errors.New("timeout")
		_, err := f.uc.Execute(context.Background(), request("10:00", "11:00"))
		assert.ErrorIs(t, err, ErrStoreUnavailable)
	})
}

package rooms

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-MeetingRoomService/internal/domain"
	"github.com/m04kA/SMC-MeetingRoomService/internal/service/rooms/models"
	"github.com/m04kA/SMC-MeetingRoomService/internal/testfixtures"
	"github.com/m04kA/SMC-MeetingRoomService/pkg/logger"
)

var today = testfixtures.Date(2026, time.October, 20)

// roomFailingStore отдаёт ошибку для одной переговорной
type roomFailingStore struct {
	*testfixtures.BookingStore
	failRoom string
}

func (s *roomFailingStore) List(ctx context.Context, filter domain.BookingsFilter) ([]*domain.Booking, error) {
	if filter.RoomID != nil && *filter.RoomID == s.failRoom {
		return nil, errors.New("quota exceeded")
	}
	return s.BookingStore.List(ctx, filter)
}

func newService(rooms RoomRepository, bookings BookingRepository, hour, minute int) *Service {
	s := NewService(rooms, bookings, testfixtures.Policy(), logger.NewNop())
	s.timeProvider = testfixtures.At(2026, time.October, 20, hour, minute)
	return s
}

func roomSet() *testfixtures.RoomStore {
	inactive := testfixtures.Room("R9", 10)
	inactive.Status = domain.RoomStatusInactive
	return testfixtures.NewRoomStore(testfixtures.Room("R1", 4), inactive, testfixtures.Room("R2", 8))
}

func byID(resp *models.RoomListResponse, id string) models.RoomResponse {
	for _, r := range resp.Rooms {
		if r.ID == id {
			return r
		}
	}
	return models.RoomResponse{}
}

func TestList_ActiveOnly(t *testing.T) {
	s := newService(roomSet(), testfixtures.NewBookingStore(), 10, 0)

	resp, err := s.List(context.Background(), false)
	require.NoError(t, err)

	assert.Equal(t, 2, resp.Count)
	assert.Equal(t, "R1", resp.Rooms[0].ID)
	assert.Equal(t, "R2", resp.Rooms[1].ID)
	assert.Nil(t, resp.Rooms[0].IsAvailable)
	assert.Nil(t, resp.Rooms[0].TodayBookingsCount)
}

func TestList_IncludeBookings(t *testing.T) {
	stale := testfixtures.Booking("stale", "R2", today, "09:00", "10:00")
	checkIn := time.Date(2026, time.October, 20, 9, 5, 0, 0, testfixtures.Seoul)
	stale.IsCheckedIn = true
	stale.CheckInTime = &checkIn

	cancelled := testfixtures.Booking("gone", "R1", today, "10:00", "11:00")
	cancelled.Status = domain.StatusCancelled

	store := testfixtures.NewBookingStore(
		testfixtures.Booking("now", "R1", today, "10:00", "11:00"),
		testfixtures.Booking("next", "R1", today, "13:00", "14:00"),
		testfixtures.Booking("tomorrow", "R1", today.AddDate(0, 0, 1), "09:00", "10:00"),
		cancelled,
		stale,
	)
	s := newService(roomSet(), store, 10, 30)

	resp, err := s.List(context.Background(), true)
	require.NoError(t, err)

	r1 := byID(resp, "R1")
	require.NotNil(t, r1.IsAvailable)
	assert.False(t, *r1.IsAvailable)
	require.NotNil(t, r1.CurrentBooking)
	assert.Equal(t, "now", r1.CurrentBooking.ID)
	require.NotNil(t, r1.NextBooking)
	assert.Equal(t, "next", r1.NextBooking.ID)
	assert.Equal(t, 2, *r1.TodayBookingsCount)

	r2 := byID(resp, "R2")
	assert.False(t, *r2.IsAvailable, "checked-in booking without check-out still occupies the room")
	assert.Equal(t, "stale", r2.CurrentBooking.ID)
	assert.Nil(t, r2.NextBooking)
}

func TestList_BookingFailureDegradesOneRoom(t *testing.T) {
	store := &roomFailingStore{
		BookingStore: testfixtures.NewBookingStore(testfixtures.Booking("b-2", "R2", today, "10:00", "11:00")),
		failRoom:     "R1",
	}
	s := newService(roomSet(), store, 10, 30)

	resp, err := s.List(context.Background(), true)
	require.NoError(t, err)

	r1 := byID(resp, "R1")
	assert.True(t, *r1.IsAvailable)
	assert.Nil(t, r1.CurrentBooking)
	assert.Equal(t, 0, *r1.TodayBookingsCount)

	r2 := byID(resp, "R2")
	assert.False(t, *r2.IsAvailable)
}

func TestList_RoomStoreFailure(t *testing.T) {
	rooms := roomSet()
	rooms.ListErr = errors.New("timeout")
	s := newService(rooms, testfixtures.NewBookingStore(), 10, 0)

	_, err := s.List(context.Background(), true)
	assert.ErrorIs(t, err, ErrStoreUnavailable)
}

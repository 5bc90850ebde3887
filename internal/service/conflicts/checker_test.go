package conflicts

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/m04kA/SMC-MeetingRoomService/internal/domain"
	"github.com/m04kA/SMC-MeetingRoomService/internal/testfixtures"
	"github.com/m04kA/SMC-MeetingRoomService/pkg/logger"
	"github.com/m04kA/SMC-MeetingRoomService/pkg/types"
)

var day = testfixtures.Date(2026, time.October, 20)

func newChecker(store *testfixtures.BookingStore, clock *testfixtures.Clock) *Checker {
	c := NewChecker(store, testfixtures.Policy(), logger.NewNop())
	c.timeProvider = clock
	return c
}

func request(roomID, start, end string) Request {
	return Request{
		RoomID:    roomID,
		Date:      day,
		StartTime: types.MustTimeString(start),
		EndTime:   types.MustTimeString(end),
	}
}

func TestHasConflict_Intervals(t *testing.T) {
	existing := testfixtures.Booking("b-1", "R1", day, "10:00", "11:00")
	clock := testfixtures.At(2026, time.October, 19, 12, 0)

	tests := []struct {
		name       string
		start, end string
		want       bool
	}{
		{name: "touching after", start: "11:00", end: "12:00", want: false},
		{name: "touching before", start: "09:00", end: "10:00", want: false},
		{name: "overlap end", start: "10:30", end: "11:30", want: true},
		{name: "overlap start", start: "09:30", end: "10:30", want: true},
		{name: "inside", start: "10:15", end: "10:45", want: true},
		{name: "covering", start: "09:00", end: "12:00", want: true},
		{name: "identical", start: "10:00", end: "11:00", want: true},
		{name: "disjoint", start: "13:00", end: "14:00", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			checker := newChecker(testfixtures.NewBookingStore(existing), clock)
			assert.Equal(t, tt.want, checker.HasConflict(context.Background(), request("R1", tt.start, tt.end)))
		})
	}
}

func TestHasConflict_Symmetric(t *testing.T) {
	clock := testfixtures.At(2026, time.October, 19, 12, 0)
	pairs := [][4]string{
		{"10:00", "11:00", "10:30", "11:30"},
		{"10:00", "11:00", "11:00", "12:00"},
		{"08:00", "12:00", "09:00", "09:30"},
		{"13:00", "14:00", "15:00", "16:00"},
	}

	for _, p := range pairs {
		a := testfixtures.Booking("a", "R1", day, p[0], p[1])
		b := testfixtures.Booking("b", "R1", day, p[2], p[3])

		aAgainstB := newChecker(testfixtures.NewBookingStore(b), clock).HasConflict(context.Background(), request("R1", p[0], p[1]))
		bAgainstA := newChecker(testfixtures.NewBookingStore(a), clock).HasConflict(context.Background(), request("R1", p[2], p[3]))

		assert.Equal(t, aAgainstB, bAgainstA, "pair %v", p)
		assert.Equal(t, a.Slot().Overlaps(b.Slot()), aAgainstB, "pair %v", p)
	}
}

func TestHasConflict_IgnoredCandidates(t *testing.T) {
	clock := testfixtures.At(2026, time.October, 19, 12, 0)

	cancelled := testfixtures.Booking("cancelled", "R1", day, "10:00", "11:00")
	cancelled.Status = domain.StatusCancelled
	otherRoom := testfixtures.Booking("other", "R2", day, "10:00", "11:00")
	otherDay := testfixtures.Booking("tomorrow", "R1", day.AddDate(0, 0, 1), "10:00", "11:00")
	self := testfixtures.Booking("self", "R1", day, "12:00", "13:00")

	checker := newChecker(testfixtures.NewBookingStore(cancelled, otherRoom, otherDay, self), clock)
	ctx := context.Background()

	assert.False(t, checker.HasConflict(ctx, request("R1", "10:00", "11:00")), "cancelled, other room and other day never conflict")

	req := request("R1", "12:00", "14:00")
	assert.True(t, checker.HasConflict(ctx, req))
	req.ExcludeBookingID = "self"
	assert.False(t, checker.HasConflict(ctx, req), "excluded booking is not compared with itself")
}

func TestHasConflict_PendingCountsAsActive(t *testing.T) {
	pending := testfixtures.Booking("p", "R1", day, "10:00", "11:00")
	pending.Status = domain.StatusPending

	checker := newChecker(testfixtures.NewBookingStore(pending), testfixtures.At(2026, time.October, 19, 12, 0))
	assert.True(t, checker.HasConflict(context.Background(), request("R1", "10:30", "11:30")))
}

func TestHasConflict_FailsClosed(t *testing.T) {
	store := testfixtures.NewBookingStore()
	store.ListErr = errors.New("sheets: 503")

	checker := newChecker(store, testfixtures.At(2026, time.October, 19, 12, 0))
	assert.True(t, checker.HasConflict(context.Background(), request("R1", "10:00", "11:00")))
}

func TestHasConflict_StaleOccupancy(t *testing.T) {
	checkIn := time.Date(2026, time.October, 20, 9, 50, 0, 0, testfixtures.Seoul)
	occupied := testfixtures.Booking("b-1", "R1", day, "09:00", "10:00")
	occupied.IsCheckedIn = true
	occupied.CheckInTime = &checkIn
	occupied.ActualStartTime = &checkIn

	now := testfixtures.At(2026, time.October, 20, 10, 20)
	ctx := context.Background()

	checker := newChecker(testfixtures.NewBookingStore(occupied), now)
	assert.True(t, checker.HasConflict(ctx, request("R1", "10:10", "10:40")), "start within now+30m")
	assert.True(t, checker.HasConflict(ctx, request("R1", "10:45", "11:15")), "start before 10:50")
	assert.False(t, checker.HasConflict(ctx, request("R1", "10:50", "11:30")), "start at now+30m")
	assert.False(t, checker.HasConflict(ctx, request("R1", "13:00", "14:00")))

	checkOut := checkIn.Add(40 * time.Minute)
	left := *occupied
	left.CheckOutTime = &checkOut
	checker = newChecker(testfixtures.NewBookingStore(&left), now)
	assert.False(t, checker.HasConflict(ctx, request("R1", "10:10", "10:40")), "checked out room is free")

	beforeEnd := testfixtures.At(2026, time.October, 20, 9, 55)
	checker = newChecker(testfixtures.NewBookingStore(occupied), beforeEnd)
	assert.False(t, checker.HasConflict(ctx, request("R1", "10:10", "10:40")), "rule applies only after scheduled end")
}

func TestConflictsWith_PreloadedList(t *testing.T) {
	store := testfixtures.NewBookingStore()
	c := newChecker(store, testfixtures.At(2026, time.October, 19, 12, 0))

	bookings := []*domain.Booking{
		testfixtures.Booking("b-1", "R1", day, "10:00", "11:00"),
		testfixtures.Booking("b-2", "R2", day, "12:00", "13:00"),
	}

	assert.True(t, c.ConflictsWith(bookings, request("R1", "10:30", "11:30")))
	assert.False(t, c.ConflictsWith(bookings, request("R1", "12:00", "13:00")))
	assert.True(t, c.ConflictsWith(bookings, request("R2", "12:30", "13:30")))
	assert.Zero(t, store.Calls)
}

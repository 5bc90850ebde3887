package scheduler

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-MeetingRoomService/internal/domain"
	"github.com/m04kA/SMC-MeetingRoomService/internal/service/bookings/models"
	"github.com/m04kA/SMC-MeetingRoomService/internal/testfixtures"
	"github.com/m04kA/SMC-MeetingRoomService/pkg/logger"
)

type recorder struct {
	mu         sync.Mutex
	checkedOut []string
	noShows    []string
	err        error
}

func (r *recorder) AutoCheckOut(_ context.Context, id string) (*models.BookingResponse, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return nil, r.err
	}
	r.checkedOut = append(r.checkedOut, id)
	return &models.BookingResponse{ID: id}, nil
}

func (r *recorder) MarkNoShow(_ context.Context, id string) (*models.BookingResponse, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return nil, r.err
	}
	r.noShows = append(r.noShows, id)
	return &models.BookingResponse{ID: id}, nil
}

func (r *recorder) calls() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.checkedOut) + len(r.noShows)
}

var day = testfixtures.Date(2026, time.October, 20)

func checkedIn(id, start, end string) *domain.Booking {
	b := testfixtures.Booking(id, "R1", day, start, end)
	at := b.ScheduledStart(testfixtures.Seoul)
	b.IsCheckedIn = true
	b.CheckInTime = &at
	return b
}

func newSweeper(store BookingRepository, rec *recorder, clock *testfixtures.Clock) *Sweeper {
	s := NewSweeper(store, rec, rec, testfixtures.Policy(), time.Millisecond, logger.NewNop())
	s.timeProvider = clock
	return s
}

func TestRunOnce(t *testing.T) {
	checkedOut := checkedIn("done", "09:00", "10:00")
	out := time.Date(2026, time.October, 20, 9, 50, 0, 0, testfixtures.Seoul)
	checkedOut.CheckOutTime = &out

	cancelled := testfixtures.Booking("cancelled", "R2", day, "09:00", "10:00")
	cancelled.Status = domain.StatusCancelled

	store := testfixtures.NewBookingStore(
		checkedIn("overdue", "09:00", "10:00"),
		checkedIn("running", "10:00", "11:00"),
		checkedOut,
		testfixtures.Booking("absent", "R2", day, "10:00", "11:00"),
		testfixtures.Booking("grace", "R3", day, "10:10", "11:00"),
		testfixtures.Booking("later", "R3", day, "14:00", "15:00"),
		cancelled,
		testfixtures.Booking("tomorrow", "R2", day.AddDate(0, 0, 1), "09:00", "10:00"),
	)
	rec := &recorder{}
	s := newSweeper(store, rec, testfixtures.At(2026, time.October, 20, 10, 15))

	result, err := s.RunOnce(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []string{"overdue"}, rec.checkedOut)
	assert.Equal(t, []string{"absent"}, rec.noShows, "no-show starts exactly 15 minutes after start")
	assert.Equal(t, Result{CheckedOut: 1, NoShows: 1}, result)
}

func TestRunOnce_YesterdayStillOccupied(t *testing.T) {
	late := checkedIn("late", "23:00", "23:59")
	store := testfixtures.NewBookingStore(late)
	rec := &recorder{}
	s := newSweeper(store, rec, testfixtures.At(2026, time.October, 21, 0, 5))

	_, err := s.RunOnce(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"late"}, rec.checkedOut)
}

func TestRunOnce_Failures(t *testing.T) {
	store := testfixtures.NewBookingStore(checkedIn("overdue", "09:00", "10:00"))
	rec := &recorder{err: errors.New("store down")}
	s := newSweeper(store, rec, testfixtures.At(2026, time.October, 20, 12, 0))

	result, err := s.RunOnce(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, result.Failed)

	store.ListErr = errors.New("quota exceeded")
	_, err = s.RunOnce(context.Background())
	assert.ErrorIs(t, err, ErrListBookings)
}

func TestStartStop(t *testing.T) {
	store := testfixtures.NewBookingStore(testfixtures.Booking("absent", "R2", day, "10:00", "11:00"))
	rec := &recorder{}
	s := newSweeper(store, rec, testfixtures.At(2026, time.October, 20, 12, 0))

	s.Start(context.Background())
	s.Start(context.Background())
	assert.Eventually(t, func() bool { return rec.calls() > 0 }, time.Second, 5*time.Millisecond)
	s.Stop()
	s.Stop()
}

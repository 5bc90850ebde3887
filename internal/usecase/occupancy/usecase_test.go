package occupancy

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
	uc    *UseCase
	store *testfixtures.BookingStore
	clock *testfixtures.Clock
	pub   *testfixtures.Publisher
}

// newFixture часы выставлены на 2026-10-20 в указанное время (Сеул)
func newFixture(hour, minute int, existing ...*domain.Booking) *fixture {
	f := &fixture{
		store: testfixtures.NewBookingStore(existing...),
		clock: testfixtures.At(2026, time.October, 20, hour, minute),
		pub:   &testfixtures.Publisher{},
	}
	checker := conflicts.NewChecker(f.store, testfixtures.Policy(), logger.NewNop())
	f.uc = NewUseCase(f.store, checker, &testfixtures.SerialTx{}, f.pub, nil, testfixtures.Policy(), logger.NewNop())
	f.uc.timeProvider = f.clock
	return f
}

func meeting() *domain.Booking {
	return testfixtures.Booking("b-1", "R1", day, "10:00", "11:00")
}

func checkedIn(at time.Time) *domain.Booking {
	b := meeting()
	b.IsCheckedIn = true
	b.CheckInTime = &at
	b.ActualStartTime = &at
	return b
}

func seoul(hour, minute int) time.Time {
	return time.Date(2026, time.October, 20, hour, minute, 0, 0, testfixtures.Seoul)
}

func TestCheckIn_Window(t *testing.T) {
	ctx := context.Background()

	t.Run("before window", func(t *testing.T) {
		f := newFixture(9, 44, meeting())
		_, err := f.uc.CheckIn(ctx, "b-1", testfixtures.EmployeeID)
		assert.ErrorIs(t, err, ErrTooEarly)
		assert.False(t, f.store.Get("b-1").IsCheckedIn)
	})

	t.Run("exactly at window start", func(t *testing.T) {
		f := newFixture(9, 45, meeting())
		resp, err := f.uc.CheckIn(ctx, "b-1", testfixtures.EmployeeID)
		require.NoError(t, err)
		assert.True(t, resp.IsCheckedIn)
		require.NotNil(t, resp.CheckInTime)
		assert.Equal(t, "2026-10-20T09:45:00+09:00", *resp.CheckInTime)
		assert.Equal(t, resp.CheckInTime, resp.ActualStartTime)
		assert.Equal(t, []domain.BookingEvent{domain.EventBookingCheckedIn}, f.pub.Events)
	})

	t.Run("late check-in is still allowed", func(t *testing.T) {
		f := newFixture(10, 40, meeting())
		_, err := f.uc.CheckIn(ctx, "b-1", testfixtures.EmployeeID)
		assert.NoError(t, err)
	})
}

func TestCheckIn_Twice(t *testing.T) {
	ctx := context.Background()
	f := newFixture(9, 50, meeting())

	_, err := f.uc.CheckIn(ctx, "b-1", testfixtures.EmployeeID)
	require.NoError(t, err)

	_, err = f.uc.CheckIn(ctx, "b-1", testfixtures.EmployeeID)
	assert.ErrorIs(t, err, ErrAlreadyCheckedIn)
}

func TestCheckIn_ClearsNoShow(t *testing.T) {
	b := meeting()
	b.IsNoShow = true
	f := newFixture(9, 50, b)

	_, err := f.uc.CheckIn(context.Background(), "b-1", testfixtures.EmployeeID)
	require.NoError(t, err)
	assert.False(t, f.store.Get("b-1").IsNoShow)
}

func TestCheckIn_Authorization(t *testing.T) {
	ctx := context.Background()

	f := newFixture(9, 50, meeting())
	_, err := f.uc.CheckIn(ctx, "b-1", testfixtures.OtherEmployeeID)
	assert.ErrorIs(t, err, ErrAccessDenied)

	_, err = f.uc.CheckIn(ctx, "b-1", "12ab")
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = f.uc.CheckIn(ctx, "missing", testfixtures.EmployeeID)
	assert.ErrorIs(t, err, ErrBookingNotFound)

	resp, err := f.uc.CheckIn(ctx, "b-1", testfixtures.AdminOverrideCode)
	require.NoError(t, err)
	assert.True(t, resp.IsCheckedIn)
}

func TestCheckIn_Cancelled(t *testing.T) {
	b := meeting()
	b.Status = domain.StatusCancelled
	f := newFixture(9, 50, b)

	_, err := f.uc.CheckIn(context.Background(), "b-1", testfixtures.EmployeeID)
	assert.ErrorIs(t, err, ErrBookingCancelled)
}

func TestCheckOut(t *testing.T) {
	ctx := context.Background()

	t.Run("without check-in", func(t *testing.T) {
		f := newFixture(10, 30, meeting())
		_, err := f.uc.CheckOut(ctx, "b-1", testfixtures.EmployeeID)
		assert.ErrorIs(t, err, ErrNotCheckedIn)
	})

	t.Run("twice", func(t *testing.T) {
		f := newFixture(10, 30, checkedIn(seoul(9, 55)))

		resp, err := f.uc.CheckOut(ctx, "b-1", testfixtures.EmployeeID)
		require.NoError(t, err)
		require.NotNil(t, resp.CheckOutTime)
		assert.Equal(t, "2026-10-20T10:30:00+09:00", *resp.CheckOutTime)
		assert.Equal(t, resp.CheckOutTime, resp.ActualEndTime)
		assert.True(t, resp.IsCheckedIn, "check-in flag is monotonic")

		_, err = f.uc.CheckOut(ctx, "b-1", testfixtures.EmployeeID)
		assert.ErrorIs(t, err, ErrAlreadyCheckedOut)
	})

	t.Run("other employee", func(t *testing.T) {
		f := newFixture(10, 30, checkedIn(seoul(9, 55)))
		_, err := f.uc.CheckOut(ctx, "b-1", testfixtures.OtherEmployeeID)
		assert.ErrorIs(t, err, ErrAccessDenied)
	})
}

func TestAutoCheckOut(t *testing.T) {
	ctx := context.Background()

	f := newFixture(10, 59, checkedIn(seoul(9, 55)))
	_, err := f.uc.AutoCheckOut(ctx, "b-1")
	assert.ErrorIs(t, err, ErrCheckOutNotDue)

	f.clock.Set(seoul(11, 0))
	resp, err := f.uc.AutoCheckOut(ctx, "b-1")
	require.NoError(t, err)
	assert.Equal(t, "2026-10-20T11:00:00+09:00", *resp.CheckOutTime)

	_, err = f.uc.AutoCheckOut(ctx, "b-1")
	assert.ErrorIs(t, err, ErrAlreadyCheckedOut)
}

func TestExtend(t *testing.T) {
	ctx := context.Background()

	t.Run("invalid minutes rejected before store access", func(t *testing.T) {
		for _, minutes := range []int{0, 15, 45, 90, -30} {
			f := newFixture(10, 30, checkedIn(seoul(9, 55)))
			_, err := f.uc.Extend(ctx, "b-1", testfixtures.EmployeeID, minutes)
			assert.ErrorIs(t, err, ErrInvalidExtension)
			assert.Zero(t, f.store.Calls)
		}
	})

	t.Run("extends end time", func(t *testing.T) {
		f := newFixture(10, 30, checkedIn(seoul(9, 55)))
		resp, err := f.uc.Extend(ctx, "b-1", testfixtures.EmployeeID, 60)
		require.NoError(t, err)
		assert.Equal(t, "12:00", resp.EndTime)
		assert.Equal(t, types.TimeString("12:00"), f.store.Get("b-1").EndTime)
		assert.Equal(t, []domain.BookingEvent{domain.EventBookingExtended}, f.pub.Events)
	})

	t.Run("touching next booking is allowed", func(t *testing.T) {
		next := testfixtures.Booking("b-2", "R1", day, "11:30", "12:30")
		f := newFixture(10, 30, checkedIn(seoul(9, 55)), next)
		resp, err := f.uc.Extend(ctx, "b-1", testfixtures.EmployeeID, 30)
		require.NoError(t, err)
		assert.Equal(t, "11:30", resp.EndTime)
	})

	t.Run("conflict leaves end time unchanged", func(t *testing.T) {
		next := testfixtures.Booking("b-2", "R1", day, "11:30", "12:30")
		f := newFixture(10, 30, checkedIn(seoul(9, 55)), next)
		_, err := f.uc.Extend(ctx, "b-1", testfixtures.EmployeeID, 60)
		assert.ErrorIs(t, err, ErrTimeConflict)
		assert.Equal(t, types.TimeString("11:00"), f.store.Get("b-1").EndTime)
		assert.Empty(t, f.pub.Events)
	})

	t.Run("not checked in", func(t *testing.T) {
		f := newFixture(10, 30, meeting())
		_, err := f.uc.Extend(ctx, "b-1", testfixtures.EmployeeID, 30)
		assert.ErrorIs(t, err, ErrNotCheckedIn)
	})

	t.Run("checked out", func(t *testing.T) {
		b := checkedIn(seoul(9, 55))
		out := seoul(10, 20)
		b.CheckOutTime = &out
		f := newFixture(10, 30, b)
		_, err := f.uc.Extend(ctx, "b-1", testfixtures.EmployeeID, 30)
		assert.ErrorIs(t, err, ErrAlreadyCheckedOut)
	})

	t.Run("past midnight", func(t *testing.T) {
		b := testfixtures.Booking("late", "R1", day, "22:30", "23:30")
		at := seoul(22, 30)
		b.IsCheckedIn = true
		b.CheckInTime = &at
		f := newFixture(23, 0, b)
		_, err := f.uc.Extend(ctx, "late", testfixtures.EmployeeID, 60)
		assert.ErrorIs(t, err, ErrInvalidExtension)
	})

	t.Run("store failure", func(t *testing.T) {
		f := newFixture(10, 30, checkedIn(seoul(9, 55)))
		f.store.GetErr = errors.New("timeout")
		_, err := f.uc.Extend(ctx, "b-1", testfixtures.EmployeeID, 30)
		assert.ErrorIs(t, err, ErrStoreUnavailable)
	})
}

package sheets

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-MeetingRoomService/internal/domain"
	"github.com/m04kA/SMC-MeetingRoomService/internal/infra/storage"
	"github.com/m04kA/SMC-MeetingRoomService/pkg/ptr"
	"github.com/m04kA/SMC-MeetingRoomService/pkg/types"
)

// fakeValues хранит листы в памяти; строки листа без заголовка
type fakeValues struct {
	sheets  map[string][][]interface{}
	updates []string
	err     error
}

func newFakeValues() *fakeValues {
	return &fakeValues{sheets: map[string][][]interface{}{}}
}

func sheetName(rng string) string {
	return strings.SplitN(rng, "!", 2)[0]
}

func (f *fakeValues) Get(_ context.Context, rng string) ([][]interface{}, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.sheets[sheetName(rng)], nil
}

func (f *fakeValues) Append(_ context.Context, rng string, rows [][]interface{}) error {
	if f.err != nil {
		return f.err
	}
	name := sheetName(rng)
	f.sheets[name] = append(f.sheets[name], rows...)
	return nil
}

func (f *fakeValues) Update(_ context.Context, rng string, rows [][]interface{}) error {
	if f.err != nil {
		return f.err
	}
	f.updates = append(f.updates, rng)

	var rowNumber int
	if _, err := fmt.Sscanf(strings.SplitN(rng, "!A", 2)[1], "%d", &rowNumber); err != nil {
		return err
	}
	name := sheetName(rng)
	f.sheets[name][rowNumber-headerRows-1] = rows[0]
	return nil
}

type recordedCall struct {
	operation string
	failed    bool
}

type fakeMetrics struct {
	calls []recordedCall
}

func (m *fakeMetrics) ObserveStoreCall(_, operation string, _ time.Duration, err error) {
	m.calls = append(m.calls, recordedCall{operation: operation, failed: err != nil})
}

func sampleBooking(id, start, end string) *domain.Booking {
	loc := time.FixedZone("KST", 9*60*60)
	created := time.Date(2026, 10, 19, 9, 0, 0, 0, loc)
	return &domain.Booking{
		ID: id, RoomID: "R1", RoomName: "Orion", Title: "Sync", BookerName: "Kim",
		EmployeeID: "1234567", Date: time.Date(2026, 10, 20, 0, 0, 0, 0, time.UTC),
		StartTime: types.MustTimeString(start), EndTime: types.MustTimeString(end),
		Status: domain.StatusConfirmed, Purpose: "weekly", Participants: 3,
		CreatedAt: created, UpdatedAt: created,
	}
}

func TestBookingRepository_CreateListPatch(t *testing.T) {
	ctx := context.Background()
	values := newFakeValues()
	m := &fakeMetrics{}
	repo := NewBookingRepository(newClient(values, time.Second, m), "bookings")

	require.NoError(t, repo.Create(ctx, sampleBooking("b-2", "14:00", "15:00")))
	require.NoError(t, repo.Create(ctx, sampleBooking("b-1", "10:00", "11:00")))
	values.sheets["bookings"] = append(values.sheets["bookings"], []interface{}{}, []interface{}{"", "R1"})

	date := time.Date(2026, 10, 20, 0, 0, 0, 0, time.UTC)
	list, err := repo.List(ctx, domain.BookingsFilter{Date: &date, RoomID: ptr.Ptr("R1")})
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "b-1", list[0].ID, "sorted by start time")
	assert.Equal(t, 3, list[0].Participants)
	assert.Equal(t, "+09:00", list[0].CreatedAt.Format("-07:00"))

	// зарезервированная колонка переживает перезапись строки
	values.sheets["bookings"][1][colAutoReleaseTime] = "2026-10-20T11:10:00+09:00"

	checkIn := time.Date(2026, 10, 20, 9, 50, 0, 0, time.FixedZone("KST", 9*60*60))
	err = repo.Patch(ctx, "b-1", domain.BookingPatch{
		IsCheckedIn: ptr.Ptr(true),
		CheckInTime: &checkIn,
		UpdatedAt:   checkIn,
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"bookings!A3:U3"}, values.updates)

	got, err := repo.GetByID(ctx, "b-1")
	require.NoError(t, err)
	assert.True(t, got.IsCheckedIn)
	require.NotNil(t, got.CheckInTime)
	assert.True(t, checkIn.Equal(*got.CheckInTime))
	assert.Equal(t, "Sync", got.Title)
	assert.Equal(t, "2026-10-20T11:10:00+09:00", values.sheets["bookings"][1][colAutoReleaseTime])

	assert.NotEmpty(t, m.calls)
}

func TestBookingRepository_PatchKeepsUntouchedCells(t *testing.T) {
	ctx := context.Background()
	values := newFakeValues()
	values.sheets["bookings"] = [][]interface{}{
		{
			"b-7", "R1", "Orion", "Old title", "Kim", "1234567", "10:00", "11:00", "2026. 10. 20",
			"approved", "weekly", "n/a", "2026-10-19 09:00", "", "", "", "", "", "FALSE", "FALSE", "keep",
		},
	}
	repo := NewBookingRepository(newClient(values, 0, nil), "bookings")

	updated := time.Date(2026, 10, 20, 9, 0, 0, 0, time.FixedZone("KST", 9*60*60))
	err := repo.Patch(ctx, "b-7", domain.BookingPatch{Title: ptr.Ptr("New title"), UpdatedAt: updated})
	require.NoError(t, err)

	row := values.sheets["bookings"][0]
	require.Len(t, row, bookingColumns)
	assert.Equal(t, "New title", row[colTitle])
	assert.Equal(t, "2026-10-20T09:00:00+09:00", row[colUpdatedAt])
	assert.Equal(t, "2026. 10. 20", row[colDate])
	assert.Equal(t, "approved", row[colStatus])
	assert.Equal(t, "n/a", row[colParticipants])
	assert.Equal(t, "2026-10-19 09:00", row[colCreatedAt])
	assert.Equal(t, "", row[colCheckInTime])
	assert.Equal(t, "keep", row[colAutoReleaseTime])
}

func TestBookingRepository_PatchPadsShortRow(t *testing.T) {
	ctx := context.Background()
	values := newFakeValues()
	values.sheets["bookings"] = [][]interface{}{
		{"b-8", "R1", "Orion", "Sync", "Kim", "1234567", "10:00", "11:00", "2026-10-20", "confirmed"},
	}
	repo := NewBookingRepository(newClient(values, 0, nil), "bookings")

	err := repo.Patch(ctx, "b-8", domain.BookingPatch{
		Status:   ptr.Ptr(domain.StatusCancelled),
		IsNoShow: ptr.Ptr(true),
	})
	require.NoError(t, err)

	row := values.sheets["bookings"][0]
	require.Len(t, row, bookingColumns)
	assert.Equal(t, "cancelled", row[colStatus])
	assert.Equal(t, "TRUE", row[colIsNoShow])
	assert.Equal(t, "", row[colPurpose])
	assert.Equal(t, "", row[colUpdatedAt])
}

func TestBookingRepository_NotFoundAndUnavailable(t *testing.T) {
	ctx := context.Background()
	values := newFakeValues()
	repo := NewBookingRepository(newClient(values, 0, nil), "bookings")

	_, err := repo.GetByID(ctx, "missing")
	assert.ErrorIs(t, err, storage.ErrBookingNotFound)

	err = repo.Patch(ctx, "missing", domain.BookingPatch{Title: ptr.Ptr("x")})
	assert.ErrorIs(t, err, storage.ErrBookingNotFound)

	values.err = errors.New("503 backend error")
	_, err = repo.List(ctx, domain.BookingsFilter{})
	assert.ErrorIs(t, err, storage.ErrUnavailable)
}

func TestDecodeBooking_Lenient(t *testing.T) {
	row := []interface{}{
		"b-9", "R2", "Vega", "Standup", "Lee", "7654321", "9:00", "09:30", "2026-10-21",
		"archived", "", "many", "", "", "", "", "", "", "true", "False",
	}

	b, ok := decodeBooking(row)
	require.True(t, ok)
	assert.Equal(t, domain.StatusPending, b.Status, "unknown status")
	assert.Equal(t, 1, b.Participants, "unparsable participants")
	assert.True(t, b.IsCheckedIn)
	assert.False(t, b.IsNoShow)
	assert.Equal(t, types.TimeString("09:00"), b.StartTime)
	assert.Nil(t, b.CheckInTime)

	_, ok = decodeBooking([]interface{}{""})
	assert.False(t, ok)
}

func TestRoomRepository(t *testing.T) {
	ctx := context.Background()
	values := newFakeValues()
	values.sheets["rooms"] = [][]interface{}{
		{"R1", "Orion", "4", "3F", "TV, Whiteboard", "active"},
		{"R2", "Vega", "8", "4F", "", "inactive"},
		{},
		{"R3", "Lyra", "6", "5F", "Phone", "retired"},
	}
	repo := NewRoomRepository(newClient(values, 0, nil), "rooms")

	rooms, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, rooms, 3)
	assert.Equal(t, []string{"TV", "Whiteboard"}, rooms[0].Equipment)
	assert.Equal(t, 4, rooms[0].Capacity)
	assert.Empty(t, rooms[1].Equipment)
	assert.Equal(t, domain.RoomStatusInactive, rooms[2].Status)

	room, err := repo.GetByID(ctx, "R2")
	require.NoError(t, err)
	assert.False(t, room.IsActive())

	_, err = repo.GetByID(ctx, "R9")
	assert.ErrorIs(t, err, storage.ErrRoomNotFound)
}

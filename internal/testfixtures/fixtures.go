package testfixtures

import (
	"context"
	"sync"
	"time"

	"github.com/m04kA/SMC-MeetingRoomService/internal/domain"
	"github.com/m04kA/SMC-MeetingRoomService/pkg/types"
)

const (
	EmployeeID        = "1234567"
	OtherEmployeeID   = "7654321"
	AdminOverrideCode = "9999999"
)

// Policy returns the default lifecycle policy in Seoul with a known override code.
func Policy() domain.BookingPolicy {
	p := domain.DefaultBookingPolicy(Seoul)
	p.AdminOverrideCode = AdminOverrideCode
	return p
}

// Room returns an active room.
func Room(id string, capacity int) *domain.Room {
	return &domain.Room{
		ID:        id,
		Name:      "Room " + id,
		Capacity:  capacity,
		Location:  "3F",
		Equipment: []string{"TV"},
		Status:    domain.RoomStatusActive,
	}
}

// Booking returns a confirmed booking owned by EmployeeID.
func Booking(id, roomID string, date time.Time, start, end string) *domain.Booking {
	created := time.Date(2026, time.January, 1, 9, 0, 0, 0, Seoul)
	return &domain.Booking{
		ID:           id,
		RoomID:       roomID,
		RoomName:     "Room " + roomID,
		Title:        "Sync",
		BookerName:   "Kim",
		EmployeeID:   EmployeeID,
		Date:         date,
		StartTime:    types.MustTimeString(start),
		EndTime:      types.MustTimeString(end),
		Status:       domain.StatusConfirmed,
		Participants: 2,
		CreatedAt:    created,
		UpdatedAt:    created,
	}
}

// SerialTx runs fn directly; it satisfies the transaction manager contracts.
type SerialTx struct {
	mu    sync.Mutex
	Calls int
}

func (t *SerialTx) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	t.mu.Lock()
	t.Calls++
	t.mu.Unlock()
	return fn(ctx)
}

// Publisher records published events.
type Publisher struct {
	mu     sync.Mutex
	Events []domain.BookingEvent
}

func (p *Publisher) Publish(_ context.Context, eventType domain.BookingEvent, _ *domain.Booking) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.Events = append(p.Events, eventType)
}

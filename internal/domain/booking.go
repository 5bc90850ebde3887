package domain

import (
	"time"

	"github.com/m04kA/SMC-MeetingRoomService/pkg/types"
)

// BookingStatus represents the status of a booking
type BookingStatus string

const (
	StatusPending   BookingStatus = "pending"
	StatusConfirmed BookingStatus = "confirmed"
	StatusCancelled BookingStatus = "cancelled"
)

// IsValid reports whether the status is one of the known values
func (s BookingStatus) IsValid() bool {
	for _, valid := range ValidStatuses {
		if s == valid {
			return true
		}
	}
	return false
}

// Occupancy describes the physical use of the room for a booking
type Occupancy string

const (
	OccupancyNotCheckedIn Occupancy = "not_checked_in"
	OccupancyCheckedIn    Occupancy = "checked_in"
	OccupancyCheckedOut   Occupancy = "checked_out"
	OccupancyNoShow       Occupancy = "no_show"
)

// Booking represents a meeting room reservation
type Booking struct {
	ID           string
	RoomID       string
	RoomName     string // denormalized for history
	Title        string
	BookerName   string
	EmployeeID   string // occupant identifier
	Date         time.Time
	StartTime    types.TimeString
	EndTime      types.TimeString
	Status       BookingStatus
	Purpose      string
	Participants int

	CreatedAt time.Time
	UpdatedAt time.Time

	IsCheckedIn     bool
	CheckInTime     *time.Time
	CheckOutTime    *time.Time
	ActualStartTime *time.Time
	ActualEndTime   *time.Time
	IsNoShow        bool
}

// IsActive returns true if the booking counts toward conflicts
func (b *Booking) IsActive() bool {
	return b.Status != StatusCancelled
}

// IsCancelled returns true if the booking has been cancelled
func (b *Booking) IsCancelled() bool {
	return b.Status == StatusCancelled
}

// IsCheckedOut returns true if the occupant has checked out
func (b *Booking) IsCheckedOut() bool {
	return b.CheckOutTime != nil
}

// Occupancy returns the current occupancy state
func (b *Booking) Occupancy() Occupancy {
	switch {
	case b.IsNoShow:
		return OccupancyNoShow
	case b.IsCheckedOut():
		return OccupancyCheckedOut
	case b.IsCheckedIn:
		return OccupancyCheckedIn
	default:
		return OccupancyNotCheckedIn
	}
}

// IsStillOccupied returns true if the occupant checked in and never checked out
func (b *Booking) IsStillOccupied() bool {
	return b.IsCheckedIn && !b.IsCheckedOut()
}

// ScheduledStart returns the scheduled start instant in loc
func (b *Booking) ScheduledStart(loc *time.Location) time.Time {
	return b.StartTime.On(b.Date, loc)
}

// ScheduledEnd returns the scheduled end instant in loc
func (b *Booking) ScheduledEnd(loc *time.Location) time.Time {
	return b.EndTime.On(b.Date, loc)
}

// Slot returns the scheduled time slot
func (b *Booking) Slot() TimeSlot {
	return TimeSlot{Start: b.StartTime, End: b.EndTime}
}

// DurationMinutes returns the scheduled duration
func (b *Booking) DurationMinutes() int {
	return b.EndTime.Minutes() - b.StartTime.Minutes()
}

// BookingsFilter фильтр для выборки бронирований
type BookingsFilter struct {
	Date             *time.Time     // Конкретный день (опционально)
	RoomID           *string        // Фильтр по переговорной (опционально)
	EmployeeID       *string        // Фильтр по владельцу (опционально)
	Status           *BookingStatus // Фильтр по статусу (опционально)
	IncludeCancelled bool           // Включать ли отменённые бронирования
}

// Matches применяет фильтр к бронированию (для хранилищ без языка запросов)
func (f BookingsFilter) Matches(b *Booking) bool {
	if f.Date != nil && !SameDay(*f.Date, b.Date) {
		return false
	}
	if f.RoomID != nil && b.RoomID != *f.RoomID {
		return false
	}
	if f.EmployeeID != nil && b.EmployeeID != *f.EmployeeID {
		return false
	}
	if f.Status != nil {
		return b.Status == *f.Status
	}
	if !f.IncludeCancelled && b.IsCancelled() {
		return false
	}
	return true
}

// BookingPatch частичное обновление бронирования: nil-поля не меняются
type BookingPatch struct {
	StartTime    *types.TimeString
	EndTime      *types.TimeString
	Title        *string
	Purpose      *string
	Participants *int
	Status       *BookingStatus

	IsCheckedIn     *bool
	CheckInTime     *time.Time
	CheckOutTime    *time.Time
	ActualStartTime *time.Time
	ActualEndTime   *time.Time
	IsNoShow        *bool

	UpdatedAt time.Time
}

// IsEmpty true, если патч не меняет ни одного поля бронирования
func (p BookingPatch) IsEmpty() bool {
	return p.StartTime == nil && p.EndTime == nil && p.Title == nil && p.Purpose == nil &&
		p.Participants == nil && p.Status == nil && p.IsCheckedIn == nil && p.CheckInTime == nil &&
		p.CheckOutTime == nil && p.ActualStartTime == nil && p.ActualEndTime == nil && p.IsNoShow == nil
}

// Apply применяет патч к копии бронирования
func (p BookingPatch) Apply(b Booking) Booking {
	if p.StartTime != nil {
		b.StartTime = *p.StartTime
	}
	if p.EndTime != nil {
		b.EndTime = *p.EndTime
	}
	if p.Title != nil {
		b.Title = *p.Title
	}
	if p.Purpose != nil {
		b.Purpose = *p.Purpose
	}
	if p.Participants != nil {
		b.Participants = *p.Participants
	}
	if p.Status != nil {
		b.Status = *p.Status
	}
	if p.IsCheckedIn != nil {
		b.IsCheckedIn = *p.IsCheckedIn
	}
	if p.CheckInTime != nil {
		b.CheckInTime = p.CheckInTime
	}
	if p.CheckOutTime != nil {
		b.CheckOutTime = p.CheckOutTime
	}
	if p.ActualStartTime != nil {
		b.ActualStartTime = p.ActualStartTime
	}
	if p.ActualEndTime != nil {
		b.ActualEndTime = p.ActualEndTime
	}
	if p.IsNoShow != nil {
		b.IsNoShow = *p.IsNoShow
	}
	if !p.UpdatedAt.IsZero() {
		b.UpdatedAt = p.UpdatedAt
	}
	return b
}

// SameDay проверяет, что две даты относятся к одному календарному дню
func SameDay(a, b time.Time) bool {
	y1, m1, d1 := a.Date()
	y2, m2, d2 := b.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

// DateOnly обнуляет время, сохраняя календарный день
func DateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

package conflicts

import (
	"context"

	"github.com/m04kA/SMC-MeetingRoomService/internal/domain"
)

// Checker проверяет пересечение интервала с активными бронированиями переговорной
type Checker struct {
	bookingRepo  BookingRepository
	policy       domain.BookingPolicy
	timeProvider TimeProvider
	logger       Logger
}

// NewChecker создает новый экземпляр проверки конфликтов
func NewChecker(bookingRepo BookingRepository, policy domain.BookingPolicy, logger Logger) *Checker {
	return &Checker{
		bookingRepo:  bookingRepo,
		policy:       policy,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// HasConflict возвращает true, если интервал пересекается с активным бронированием
// или переговорная всё ещё занята участником, который не выписался.
// Ошибка чтения хранилища считается конфликтом.
// Корректность интервала (start < end) проверяет вызывающая сторона.
func (c *Checker) HasConflict(ctx context.Context, req Request) bool {
	bookings, err := c.bookingRepo.List(ctx, domain.BookingsFilter{
		Date:   &req.Date,
		RoomID: &req.RoomID,
	})
	if err != nil {
		c.logger.Error("HasConflict: room=%s date=%s: failed to list bookings, treating as conflict: %v",
			req.RoomID, req.Date.Format(domain.DateFormat), err)
		return true
	}

	return c.ConflictsWith(bookings, req)
}

// ConflictsWith применяет те же правила к уже загруженному списку бронирований.
// Позволяет проверить несколько интервалов по одной выборке.
func (c *Checker) ConflictsWith(bookings []*domain.Booking, req Request) bool {
	now := c.timeProvider.Now()
	requested := domain.TimeSlot{Start: req.StartTime, End: req.EndTime}
	requestStart := req.StartTime.On(req.Date, c.policy.Location)
	graceEnd := now.Add(c.policy.StaleOccupancyGrace())

	for _, b := range bookings {
		if b.RoomID != req.RoomID || !b.IsActive() {
			continue
		}
		if req.ExcludeBookingID != "" && b.ID == req.ExcludeBookingID {
			continue
		}

		if requested.Overlaps(b.Slot()) {
			c.logger.Info("HasConflict: room=%s %s-%s overlaps booking id=%s %s-%s",
				req.RoomID, req.StartTime, req.EndTime, b.ID, b.StartTime, b.EndTime)
			return true
		}

		// участник не выписался после окончания брони: комната считается занятой
		// для запросов, начинающихся раньше now + grace
		if b.IsStillOccupied() && now.After(b.ScheduledEnd(c.policy.Location)) && requestStart.Before(graceEnd) {
			c.logger.Info("HasConflict: room=%s still occupied by booking id=%s (ended %s, no check-out)",
				req.RoomID, b.ID, b.EndTime)
			return true
		}
	}

	return false
}

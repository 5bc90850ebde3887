package get_available_slots

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-MeetingRoomService/internal/domain"
	"github.com/m04kA/SMC-MeetingRoomService/internal/infra/storage"
	"github.com/m04kA/SMC-MeetingRoomService/internal/service/conflicts"
)

// UseCase use case для получения свободных интервалов переговорной на дату
type UseCase struct {
	bookingRepo  BookingRepository
	roomRepo     RoomRepository
	checker      ConflictChecker
	policy       domain.BookingPolicy
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	roomRepo RoomRepository,
	checker ConflictChecker,
	policy domain.BookingPolicy,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		roomRepo:     roomRepo,
		checker:      checker,
		policy:       policy,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет use case получения свободных интервалов
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailableSlots: room=%s, date=%s, duration=%d",
		req.RoomID, req.Date.Format(domain.DateFormat), req.DurationMinutes)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailableSlots: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем текущее время в зоне сервиса
	now := uc.timeProvider.Now().In(uc.policy.Location)

	// 3. Дата не должна быть в прошлом
	if isDateInPast(req.Date, now) {
		uc.logger.Warn("GetAvailableSlots: date %s is in the past", req.Date.Format(domain.DateFormat))
		return nil, ErrInvalidDate
	}

	// 4. Проверяем переговорную
	if _, err := uc.roomRepo.GetByID(ctx, req.RoomID); err != nil {
		if errors.Is(err, storage.ErrRoomNotFound) {
			uc.logger.Warn("GetAvailableSlots: room id=%s not found", req.RoomID)
			return nil, ErrRoomNotFound
		}
		uc.logger.Error("GetAvailableSlots: failed to get room id=%s: %v", req.RoomID, err)
		return nil, fmt.Errorf("%w: failed to get room: %v", ErrStoreUnavailable, err)
	}

	slots, err := uc.freeSlots(ctx, req, now)
	if err != nil {
		return nil, err
	}

	uc.logger.Info("GetAvailableSlots: %d free slots for room=%s, date=%s",
		len(slots), req.RoomID, req.Date.Format(domain.DateFormat))

	return &Response{
		RoomID:          req.RoomID,
		Date:            domain.DateOnly(req.Date),
		DurationMinutes: req.DurationMinutes,
		Slots:           slots,
	}, nil
}

// FirstFree возвращает первый свободный интервал заданной длительности или nil.
// Используется для подсказки при конфликте массового бронирования.
func (uc *UseCase) FirstFree(ctx context.Context, roomID string, date time.Time, durationMinutes int) (*Slot, error) {
	req := &Request{RoomID: roomID, Date: date, DurationMinutes: durationMinutes}
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	slots, err := uc.freeSlots(ctx, req, uc.timeProvider.Now().In(uc.policy.Location))
	if err != nil {
		return nil, err
	}
	if len(slots) == 0 {
		return nil, nil
	}
	return &slots[0], nil
}

// freeSlots загружает бронирования дня один раз и проверяет по ним каждого кандидата
func (uc *UseCase) freeSlots(ctx context.Context, req *Request, now time.Time) ([]Slot, error) {
	candidates, err := generateTimeSlots(req.DurationMinutes, req.Date, now)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to generate time slots: %v", err)
		return nil, fmt.Errorf("%w: failed to generate time slots: %v", ErrInvalidInput, err)
	}

	date := domain.DateOnly(req.Date)
	bookings, err := uc.bookingRepo.List(ctx, domain.BookingsFilter{
		Date:   &date,
		RoomID: &req.RoomID,
	})
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to list bookings: %v", err)
		return nil, fmt.Errorf("%w: failed to list bookings: %v", ErrStoreUnavailable, err)
	}

	slots := make([]Slot, 0, len(candidates))
	for _, candidate := range candidates {
		if uc.checker.ConflictsWith(bookings, conflicts.Request{
			RoomID:    req.RoomID,
			Date:      date,
			StartTime: candidate.Start,
			EndTime:   candidate.End,
		}) {
			continue
		}
		slots = append(slots, Slot{StartTime: candidate.Start, EndTime: candidate.End})
	}
	return slots, nil
}

package create_booking

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-MeetingRoomService/internal/domain"
	"github.com/m04kA/SMC-MeetingRoomService/internal/infra/storage"
	"github.com/m04kA/SMC-MeetingRoomService/internal/service/bookings/models"
	"github.com/m04kA/SMC-MeetingRoomService/internal/service/conflicts"
)

const operation = "create"

// UseCase use case для создания бронирования
type UseCase struct {
	bookingRepo  BookingRepository
	roomRepo     RoomRepository
	checker      ConflictChecker
	txManager    TransactionManager
	publisher    EventPublisher
	metrics      MetricsCollector
	policy       domain.BookingPolicy
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	roomRepo RoomRepository,
	checker ConflictChecker,
	txManager TransactionManager,
	publisher EventPublisher,
	metrics MetricsCollector,
	policy domain.BookingPolicy,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		roomRepo:     roomRepo,
		checker:      checker,
		txManager:    txManager,
		publisher:    publisher,
		metrics:      metrics,
		policy:       policy,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет use case создания бронирования.
// Проверка конфликтов и запись выполняются в одной сериализуемой транзакции.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*models.BookingResponse, error) {
	result, err := uc.execute(ctx, req)
	uc.record(err)
	if err != nil {
		return nil, err
	}
	return models.FromDomainBooking(result, uc.policy.Location), nil
}

func (uc *UseCase) execute(ctx context.Context, req *Request) (*domain.Booking, error) {
	uc.logger.Info("CreateBooking: room=%s, employee=%s, date=%s, time=%s-%s",
		req.RoomID, req.EmployeeID, req.Date.Format(domain.DateFormat), req.StartTime, req.EndTime)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, err
	}
	participants := req.Participants
	if participants == 0 {
		participants = domain.DefaultParticipants
	}

	// 2. Получаем текущее время в зоне сервиса
	now := uc.timeProvider.Now().In(uc.policy.Location)

	// 3. Дата не должна быть в прошлом
	if err := validateDate(req.Date, now); err != nil {
		uc.logger.Warn("CreateBooking: date %s is in the past", req.Date.Format(domain.DateFormat))
		return nil, err
	}

	// 4. Проверяем переговорную
	room, err := uc.roomRepo.GetByID(ctx, req.RoomID)
	if err != nil {
		if errors.Is(err, storage.ErrRoomNotFound) {
			uc.logger.Warn("CreateBooking: room id=%s not found", req.RoomID)
			return nil, ErrRoomNotFound
		}
		uc.logger.Error("CreateBooking: failed to get room id=%s: %v", req.RoomID, err)
		return nil, fmt.Errorf("%w: failed to get room: %v", ErrStoreUnavailable, err)
	}

	// 5. Переговорная активна и вмещает участников (до обращения к бронированиям)
	if err := validateRoom(room, participants); err != nil {
		uc.logger.Warn("CreateBooking: room id=%s rejected: %v", req.RoomID, err)
		return nil, err
	}

	booking := &domain.Booking{
		ID:           uuid.NewString(),
		RoomID:       room.ID,
		RoomName:     room.Name,
		Title:        strings.TrimSpace(req.Title),
		BookerName:   strings.TrimSpace(req.BookerName),
		EmployeeID:   req.EmployeeID,
		Date:         domain.DateOnly(req.Date),
		StartTime:    req.StartTime,
		EndTime:      req.EndTime,
		Status:       domain.StatusConfirmed,
		Purpose:      strings.TrimSpace(req.Purpose),
		Participants: participants,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	// 6. Проверка конфликтов и запись в сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		if uc.checker.HasConflict(txCtx, conflicts.Request{
			RoomID:    booking.RoomID,
			Date:      booking.Date,
			StartTime: booking.StartTime,
			EndTime:   booking.EndTime,
		}) {
			uc.logger.Warn("CreateBooking: room=%s %s %s-%s is already booked",
				booking.RoomID, booking.Date.Format(domain.DateFormat), booking.StartTime, booking.EndTime)
			return ErrTimeConflict
		}

		if err := uc.bookingRepo.Create(txCtx, booking); err != nil {
			uc.logger.Error("CreateBooking: failed to create booking: %v", err)
			return fmt.Errorf("%w: failed to create booking: %v", ErrStoreUnavailable, err)
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrTimeConflict) || errors.Is(err, ErrStoreUnavailable) {
			return nil, err
		}
		// ошибка самой транзакции (begin/commit, serialization failure)
		uc.logger.Error("CreateBooking: transaction failed: %v", err)
		return nil, fmt.Errorf("%w: transaction: %v", ErrStoreUnavailable, err)
	}

	uc.publisher.Publish(ctx, domain.EventBookingCreated, booking)
	uc.logger.Info("CreateBooking: successfully created booking id=%s", booking.ID)
	return booking, nil
}

func (uc *UseCase) record(err error) {
	if uc.metrics == nil {
		return
	}
	result := "success"
	switch {
	case errors.Is(err, ErrTimeConflict):
		result = "conflict"
	case err != nil:
		result = "error"
	}
	uc.metrics.RecordBookingOperation(operation, result)
}

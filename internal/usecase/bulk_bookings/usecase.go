package bulk_bookings

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/m04kA/SMC-MeetingRoomService/internal/domain"
	"github.com/m04kA/SMC-MeetingRoomService/internal/infra/storage"
	"github.com/m04kA/SMC-MeetingRoomService/internal/service/bookings/models"
	"github.com/m04kA/SMC-MeetingRoomService/internal/service/conflicts"
	"github.com/m04kA/SMC-MeetingRoomService/internal/usecase/create_booking"
)

// UseCase массовые операции: каждый элемент обрабатывается независимо,
// частичный успех возвращается в результате и не откатывается
type UseCase struct {
	creator      BookingCreator
	statusSetter StatusSetter
	slotFinder   SlotFinder
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
	creator BookingCreator,
	statusSetter StatusSetter,
	slotFinder SlotFinder,
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
		creator:      creator,
		statusSetter: statusSetter,
		slotFinder:   slotFinder,
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

// BulkCreate создает одинаковые бронирования на каждую дату.
// Обрабатываются все даты; при конфликте по времени к ошибке прикладывается подсказка.
func (uc *UseCase) BulkCreate(ctx context.Context, req *CreateRequest) (*CreateResult, error) {
	uc.logger.Info("BulkCreate: room=%s, employee=%s, %d dates, time=%s-%s",
		req.RoomID, req.EmployeeID, len(req.Dates), req.StartTime, req.EndTime)

	// 1. Валидация запроса целиком
	if err := validateDates(req.Dates); err != nil {
		uc.logger.Warn("BulkCreate: validation failed: %v", err)
		return nil, err
	}

	result := &CreateResult{
		Created: make([]models.BookingResponse, 0, len(req.Dates)),
		Failed:  make([]FailedDate, 0),
		Total:   len(req.Dates),
	}

	// 2. Каждая дата создается через обычный сценарий создания
	for _, date := range req.Dates {
		created, err := uc.creator.Execute(ctx, &create_booking.Request{
			RoomID:       req.RoomID,
			Title:        req.Title,
			BookerName:   req.BookerName,
			EmployeeID:   req.EmployeeID,
			Date:         date,
			StartTime:    req.StartTime,
			EndTime:      req.EndTime,
			Purpose:      req.Purpose,
			Participants: req.Participants,
		})
		if err != nil {
			failed := FailedDate{Date: domain.DateOnly(date), Err: err}
			// 3. Подсказка только при конфликте по времени
			if errors.Is(err, create_booking.ErrTimeConflict) {
				failed.Suggestion = uc.suggest(ctx, req, date)
			}
			result.Failed = append(result.Failed, failed)
			continue
		}
		result.Created = append(result.Created, *created)
	}

	uc.logger.Info("BulkCreate: created %d of %d, failed %d", len(result.Created), result.Total, len(result.Failed))
	return result, nil
}

// suggest ищет альтернативу: сначала другая активная переговорная на то же время,
// затем первый свободный интервал той же длительности в исходной переговорной
func (uc *UseCase) suggest(ctx context.Context, req *CreateRequest, date time.Time) *Suggestion {
	day := domain.DateOnly(date)
	participants := req.Participants
	if participants == 0 {
		participants = domain.DefaultParticipants
	}

	rooms, err := uc.roomRepo.List(ctx)
	if err != nil {
		uc.logger.Warn("BulkCreate: suggestion: failed to list rooms: %v", err)
	}
	for _, room := range rooms {
		if room.ID == req.RoomID || !room.IsActive() || !room.CanHost(participants) {
			continue
		}
		if !uc.checker.HasConflict(ctx, conflicts.Request{
			RoomID:    room.ID,
			Date:      day,
			StartTime: req.StartTime,
			EndTime:   req.EndTime,
		}) {
			return &Suggestion{RoomID: room.ID, StartTime: req.StartTime, EndTime: req.EndTime}
		}
	}

	duration := domain.TimeSlot{Start: req.StartTime, End: req.EndTime}.DurationMinutes()
	slot, err := uc.slotFinder.FirstFree(ctx, req.RoomID, day, duration)
	if err != nil {
		uc.logger.Warn("BulkCreate: suggestion: failed to find free slot in room=%s: %v", req.RoomID, err)
		return nil
	}
	if slot == nil {
		return nil
	}
	return &Suggestion{RoomID: req.RoomID, StartTime: slot.StartTime, EndTime: slot.EndTime}
}

// BulkCancel отменяет каждое бронирование независимо
func (uc *UseCase) BulkCancel(ctx context.Context, ids []string) (*ItemsResult, error) {
	uc.logger.Info("BulkCancel: %d bookings", len(ids))

	if err := validateIDs(ids); err != nil {
		uc.logger.Warn("BulkCancel: validation failed: %v", err)
		return nil, err
	}

	result := &ItemsResult{Failed: make([]FailedItem, 0)}
	for _, id := range ids {
		if _, err := uc.statusSetter.SetStatus(ctx, id, string(domain.StatusCancelled)); err != nil {
			uc.logger.Warn("BulkCancel: booking id=%s: %v", id, err)
			result.Failed = append(result.Failed, FailedItem{ID: id, Err: err})
			continue
		}
		result.Success++
	}

	uc.logger.Info("BulkCancel: cancelled %d, failed %d", result.Success, len(result.Failed))
	return result, nil
}

// BulkUpdate применяет одни и те же поля к каждому бронированию независимо.
// При смене времени интервал проверяется на конфликты без учёта самого бронирования.
func (uc *UseCase) BulkUpdate(ctx context.Context, ids []string, fields UpdateFields) (*ItemsResult, error) {
	uc.logger.Info("BulkUpdate: %d bookings", len(ids))

	if err := validateIDs(ids); err != nil {
		uc.logger.Warn("BulkUpdate: validation failed: %v", err)
		return nil, err
	}
	if err := validateUpdateFields(fields); err != nil {
		uc.logger.Warn("BulkUpdate: validation failed: %v", err)
		return nil, err
	}

	result := &ItemsResult{Failed: make([]FailedItem, 0)}
	for _, id := range ids {
		err := uc.updateOne(ctx, id, fields)
		uc.record("bulk_update", err)
		if err != nil {
			uc.logger.Warn("BulkUpdate: booking id=%s: %v", id, err)
			result.Failed = append(result.Failed, FailedItem{ID: id, Err: err})
			continue
		}
		result.Success++
	}

	uc.logger.Info("BulkUpdate: updated %d, failed %d", result.Success, len(result.Failed))
	return result, nil
}

func (uc *UseCase) updateOne(ctx context.Context, id string, fields UpdateFields) error {
	if strings.TrimSpace(id) == "" {
		return fmt.Errorf("%w: booking id is required", ErrInvalidInput)
	}

	var updated domain.Booking
	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		booking, err := uc.bookingRepo.GetByID(txCtx, id)
		if err != nil {
			if errors.Is(err, storage.ErrBookingNotFound) {
				return ErrBookingNotFound
			}
			return fmt.Errorf("%w: failed to get booking: %v", ErrStoreUnavailable, err)
		}

		// Итоговый интервал: новые значения поверх текущих
		slot := booking.Slot()
		if fields.StartTime != nil {
			slot.Start = *fields.StartTime
		}
		if fields.EndTime != nil {
			slot.End = *fields.EndTime
		}
		if !slot.IsValid() {
			return ErrInvalidTimeRange
		}

		if slot != booking.Slot() && booking.IsActive() && uc.checker.HasConflict(txCtx, conflicts.Request{
			RoomID:           booking.RoomID,
			Date:             booking.Date,
			StartTime:        slot.Start,
			EndTime:          slot.End,
			ExcludeBookingID: booking.ID,
		}) {
			return ErrTimeConflict
		}

		patch := domain.BookingPatch{
			StartTime:    fields.StartTime,
			EndTime:      fields.EndTime,
			Purpose:      fields.Purpose,
			Participants: fields.Participants,
			UpdatedAt:    uc.timeProvider.Now().In(uc.policy.Location),
		}
		if fields.Title != nil {
			title := strings.TrimSpace(*fields.Title)
			patch.Title = &title
		}

		if err := uc.bookingRepo.Patch(txCtx, id, patch); err != nil {
			if errors.Is(err, storage.ErrBookingNotFound) {
				return ErrBookingNotFound
			}
			return fmt.Errorf("%w: failed to update booking: %v", ErrStoreUnavailable, err)
		}
		updated = patch.Apply(*booking)
		return nil
	})
	if err != nil {
		for _, known := range []error{ErrInvalidInput, ErrBookingNotFound, ErrInvalidTimeRange, ErrTimeConflict, ErrStoreUnavailable} {
			if errors.Is(err, known) {
				return err
			}
		}
		return fmt.Errorf("%w: transaction: %v", ErrStoreUnavailable, err)
	}

	uc.publisher.Publish(ctx, domain.EventBookingUpdated, &updated)
	return nil
}

func (uc *UseCase) record(operation string, err error) {
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

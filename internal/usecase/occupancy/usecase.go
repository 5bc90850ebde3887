package occupancy

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-MeetingRoomService/internal/domain"
	"github.com/m04kA/SMC-MeetingRoomService/internal/infra/storage"
	"github.com/m04kA/SMC-MeetingRoomService/internal/service/bookings/models"
	"github.com/m04kA/SMC-MeetingRoomService/internal/service/conflicts"
	"github.com/m04kA/SMC-MeetingRoomService/pkg/ptr"
)

// UseCase переходы фактического использования переговорной: check-in, check-out, продление
type UseCase struct {
	bookingRepo  BookingRepository
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
	checker ConflictChecker,
	txManager TransactionManager,
	publisher EventPublisher,
	metrics MetricsCollector,
	policy domain.BookingPolicy,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		checker:      checker,
		txManager:    txManager,
		publisher:    publisher,
		metrics:      metrics,
		policy:       policy,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// CheckIn отмечает начало фактического использования.
// Разрешено с момента (начало брони - окно check-in) включительно.
func (uc *UseCase) CheckIn(ctx context.Context, id, identifier string) (*models.BookingResponse, error) {
	uc.logger.Info("CheckIn: booking id=%s", id)

	if err := validateIdentity(id, identifier); err != nil {
		uc.record("check_in", err)
		return nil, err
	}

	var updated domain.Booking
	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		booking, err := uc.loadAuthorized(txCtx, "CheckIn", id, identifier)
		if err != nil {
			return err
		}
		if booking.IsCancelled() {
			return ErrBookingCancelled
		}

		now := uc.now()
		allowedFrom := booking.ScheduledStart(uc.policy.Location).Add(-uc.policy.CheckInWindow())
		if now.Before(allowedFrom) {
			uc.logger.Warn("CheckIn: booking id=%s too early, allowed from %s", id, allowedFrom.Format(domain.TimeFormat))
			return fmt.Errorf("%w: allowed from %s", ErrTooEarly, allowedFrom.Format(domain.TimeFormat))
		}
		if booking.IsCheckedIn {
			return ErrAlreadyCheckedIn
		}

		patch := domain.BookingPatch{
			IsCheckedIn:     ptr.Ptr(true),
			CheckInTime:     &now,
			ActualStartTime: &now,
			IsNoShow:        ptr.Ptr(false),
			UpdatedAt:       now,
		}
		if err := uc.patch(txCtx, "CheckIn", id, patch); err != nil {
			return err
		}
		updated = patch.Apply(*booking)
		return nil
	})
	uc.record("check_in", err)
	if err != nil {
		return nil, uc.wrapTxError("CheckIn", err)
	}

	uc.publisher.Publish(ctx, domain.EventBookingCheckedIn, &updated)
	uc.logger.Info("CheckIn: booking id=%s checked in", id)
	return models.FromDomainBooking(&updated, uc.policy.Location), nil
}

// CheckOut отмечает окончание фактического использования
func (uc *UseCase) CheckOut(ctx context.Context, id, identifier string) (*models.BookingResponse, error) {
	uc.logger.Info("CheckOut: booking id=%s", id)

	if err := validateIdentity(id, identifier); err != nil {
		uc.record("check_out", err)
		return nil, err
	}

	updated, err := uc.checkOut(ctx, id, identifier, false)
	uc.record("check_out", err)
	if err != nil {
		return nil, uc.wrapTxError("CheckOut", err)
	}

	uc.publisher.Publish(ctx, domain.EventBookingCheckedOut, updated)
	uc.logger.Info("CheckOut: booking id=%s checked out", id)
	return models.FromDomainBooking(updated, uc.policy.Location), nil
}

// AutoCheckOut выполняет check-out от имени владельца, когда время брони истекло,
// а участник так и не выписался
func (uc *UseCase) AutoCheckOut(ctx context.Context, id string) (*models.BookingResponse, error) {
	updated, err := uc.checkOut(ctx, id, "", true)
	uc.record("auto_check_out", err)
	if err != nil {
		return nil, uc.wrapTxError("AutoCheckOut", err)
	}

	uc.publisher.Publish(ctx, domain.EventBookingCheckedOut, updated)
	uc.logger.Info("AutoCheckOut: booking id=%s checked out at scheduled end", id)
	return models.FromDomainBooking(updated, uc.policy.Location), nil
}

func (uc *UseCase) checkOut(ctx context.Context, id, identifier string, auto bool) (*domain.Booking, error) {
	var updated domain.Booking
	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		booking, err := uc.load(txCtx, "CheckOut", id)
		if err != nil {
			return err
		}

		// автоматическая выписка выполняется от имени самого владельца
		if auto {
			identifier = booking.EmployeeID
			if booking.IsStillOccupied() && uc.now().Before(booking.ScheduledEnd(uc.policy.Location)) {
				return ErrCheckOutNotDue
			}
		}
		if !uc.policy.IsAuthorized(booking, identifier) {
			uc.logger.Warn("CheckOut: access denied to booking id=%s", id)
			return ErrAccessDenied
		}

		if !booking.IsCheckedIn {
			return ErrNotCheckedIn
		}
		if booking.IsCheckedOut() {
			return ErrAlreadyCheckedOut
		}

		now := uc.now()
		patch := domain.BookingPatch{
			CheckOutTime:  &now,
			ActualEndTime: &now,
			UpdatedAt:     now,
		}
		if err := uc.patch(txCtx, "CheckOut", id, patch); err != nil {
			return err
		}
		updated = patch.Apply(*booking)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

// Extend продлевает бронирование на 30 или 60 минут, если следующий интервал свободен
func (uc *UseCase) Extend(ctx context.Context, id, identifier string, minutes int) (*models.BookingResponse, error) {
	uc.logger.Info("Extend: booking id=%s by %d minutes", id, minutes)

	// проверяется до обращения к хранилищу
	if !domain.IsAllowedExtension(minutes) {
		uc.logger.Warn("Extend: booking id=%s invalid extension %d", id, minutes)
		uc.record("extend", ErrInvalidExtension)
		return nil, ErrInvalidExtension
	}
	if err := validateIdentity(id, identifier); err != nil {
		uc.record("extend", err)
		return nil, err
	}

	var updated domain.Booking
	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		booking, err := uc.loadAuthorized(txCtx, "Extend", id, identifier)
		if err != nil {
			return err
		}
		if !booking.IsCheckedIn {
			return ErrNotCheckedIn
		}
		if booking.IsCheckedOut() {
			return ErrAlreadyCheckedOut
		}

		newEnd, err := booking.EndTime.AddMinutes(minutes)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidExtension, err)
		}

		if uc.checker.HasConflict(txCtx, conflicts.Request{
			RoomID:           booking.RoomID,
			Date:             booking.Date,
			StartTime:        booking.EndTime,
			EndTime:          newEnd,
			ExcludeBookingID: booking.ID,
		}) {
			uc.logger.Warn("Extend: booking id=%s %s-%s is occupied", id, booking.EndTime, newEnd)
			return ErrTimeConflict
		}

		patch := domain.BookingPatch{EndTime: &newEnd, UpdatedAt: uc.now()}
		if err := uc.patch(txCtx, "Extend", id, patch); err != nil {
			return err
		}
		updated = patch.Apply(*booking)
		return nil
	})
	uc.record("extend", err)
	if err != nil {
		return nil, uc.wrapTxError("Extend", err)
	}

	uc.publisher.Publish(ctx, domain.EventBookingExtended, &updated)
	uc.logger.Info("Extend: booking id=%s now ends at %s", id, updated.EndTime)
	return models.FromDomainBooking(&updated, uc.policy.Location), nil
}

func validateIdentity(id, identifier string) error {
	if id == "" {
		return fmt.Errorf("%w: booking id is required", ErrInvalidInput)
	}
	if !domain.IsValidEmployeeID(identifier) {
		return fmt.Errorf("%w: employeeId must be exactly 7 digits", ErrInvalidInput)
	}
	return nil
}

func (uc *UseCase) loadAuthorized(ctx context.Context, op, id, identifier string) (*domain.Booking, error) {
	booking, err := uc.load(ctx, op, id)
	if err != nil {
		return nil, err
	}
	if !uc.policy.IsAuthorized(booking, identifier) {
		uc.logger.Warn("%s: access denied to booking id=%s", op, id)
		return nil, ErrAccessDenied
	}
	return booking, nil
}

func (uc *UseCase) load(ctx context.Context, op, id string) (*domain.Booking, error) {
	booking, err := uc.bookingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, storage.ErrBookingNotFound) {
			uc.logger.Warn("%s: booking id=%s not found", op, id)
			return nil, ErrBookingNotFound
		}
		uc.logger.Error("%s: failed to get booking id=%s: %v", op, id, err)
		return nil, fmt.Errorf("%w: failed to get booking: %v", ErrStoreUnavailable, err)
	}
	return booking, nil
}

func (uc *UseCase) patch(ctx context.Context, op, id string, patch domain.BookingPatch) error {
	if err := uc.bookingRepo.Patch(ctx, id, patch); err != nil {
		if errors.Is(err, storage.ErrBookingNotFound) {
			return ErrBookingNotFound
		}
		uc.logger.Error("%s: failed to update booking id=%s: %v", op, id, err)
		return fmt.Errorf("%w: failed to update booking: %v", ErrStoreUnavailable, err)
	}
	return nil
}

// wrapTxError оставляет доменные ошибки как есть, ошибки транзакции считает сбоем хранилища
func (uc *UseCase) wrapTxError(op string, err error) error {
	for _, known := range []error{
		ErrInvalidInput, ErrBookingNotFound, ErrAccessDenied, ErrTooEarly, ErrAlreadyCheckedIn,
		ErrNotCheckedIn, ErrAlreadyCheckedOut, ErrCheckOutNotDue, ErrTimeConflict, ErrStoreUnavailable,
	} {
		if errors.Is(err, known) {
			return err
		}
	}
	uc.logger.Error("%s: transaction failed: %v", op, err)
	return fmt.Errorf("%w: transaction: %v", ErrStoreUnavailable, err)
}

func (uc *UseCase) now() time.Time {
	return uc.timeProvider.Now().In(uc.policy.Location)
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

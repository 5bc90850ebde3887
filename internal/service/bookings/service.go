package bookings

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-MeetingRoomService/internal/domain"
	"github.com/m04kA/SMC-MeetingRoomService/internal/infra/storage"
	"github.com/m04kA/SMC-MeetingRoomService/internal/service/bookings/models"
	"github.com/m04kA/SMC-MeetingRoomService/pkg/ptr"
)

// Service сервис для чтения бронирований и смены статуса
type Service struct {
	bookingRepo  BookingRepository
	publisher    EventPublisher
	metrics      MetricsCollector
	policy       domain.BookingPolicy
	timeProvider TimeProvider
	logger       Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(
	bookingRepo BookingRepository,
	publisher EventPublisher,
	metrics MetricsCollector,
	policy domain.BookingPolicy,
	logger Logger,
) *Service {
	return &Service{
		bookingRepo:  bookingRepo,
		publisher:    publisher,
		metrics:      metrics,
		policy:       policy,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// GetByID получает бронирование по ID
func (s *Service) GetByID(ctx context.Context, id string) (*models.BookingResponse, error) {
	booking, err := s.load(ctx, "GetByID", id)
	if err != nil {
		return nil, err
	}
	return models.FromDomainBooking(booking, s.policy.Location), nil
}

// List получает бронирования по фильтру, отсортированные по дате и времени начала
func (s *Service) List(ctx context.Context, req *models.ListBookingsRequest) (*models.BookingListResponse, error) {
	filter, err := req.ToDomainFilter()
	if err != nil {
		s.logger.Warn("List: invalid filter: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	bookings, err := s.bookingRepo.List(ctx, filter)
	if err != nil {
		s.logger.Error("List: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrStoreUnavailable, err)
	}

	s.logger.Info("List: fetched %d bookings", len(bookings))
	return models.FromDomainBookingList(bookings, s.policy.Location), nil
}

// SetStatus устанавливает статус бронирования. Допустим переход из любого статуса в любой.
func (s *Service) SetStatus(ctx context.Context, id string, status string) (*models.BookingResponse, error) {
	s.logger.Info("SetStatus: booking id=%s status=%s", id, status)

	newStatus, err := models.ToDomainBookingStatus(status)
	if err != nil {
		s.logger.Warn("SetStatus: invalid status=%q for booking id=%s", status, id)
		s.record("set_status", err)
		return nil, ErrInvalidStatus
	}

	booking, err := s.load(ctx, "SetStatus", id)
	if err != nil {
		s.record("set_status", err)
		return nil, err
	}

	updated, err := s.setStatus(ctx, booking, newStatus)
	s.record("set_status", err)
	return updated, err
}

// SetStatusAuthorized меняет статус только по табельному номеру владельца или коду администратора
func (s *Service) SetStatusAuthorized(ctx context.Context, id, status, identifier string) (*models.BookingResponse, error) {
	newStatus, err := models.ToDomainBookingStatus(status)
	if err != nil {
		s.logger.Warn("SetStatusAuthorized: invalid status=%q for booking id=%s", status, id)
		return nil, ErrInvalidStatus
	}

	booking, err := s.load(ctx, "SetStatusAuthorized", id)
	if err != nil {
		return nil, err
	}

	if !s.policy.IsAuthorized(booking, identifier) {
		s.logger.Warn("SetStatusAuthorized: access denied to booking id=%s", id)
		s.record("set_status", ErrAccessDenied)
		return nil, ErrAccessDenied
	}

	updated, err := s.setStatus(ctx, booking, newStatus)
	s.record("set_status", err)
	return updated, err
}

// MarkNoShow отмечает неявку: бронирование отменяется, отметка о заселении снимается
func (s *Service) MarkNoShow(ctx context.Context, id string) (*models.BookingResponse, error) {
	booking, err := s.load(ctx, "MarkNoShow", id)
	if err != nil {
		s.record("no_show", err)
		return nil, err
	}

	patch := domain.BookingPatch{
		IsNoShow:    ptr.Ptr(true),
		IsCheckedIn: ptr.Ptr(false),
		Status:      ptr.Ptr(domain.StatusCancelled),
		UpdatedAt:   s.now(),
	}
	if err := s.bookingRepo.Patch(ctx, id, patch); err != nil {
		err = s.mapRepoError("MarkNoShow", id, err)
		s.record("no_show", err)
		return nil, err
	}

	updated := patch.Apply(*booking)
	s.publisher.Publish(ctx, domain.EventBookingNoShow, &updated)
	s.record("no_show", nil)

	s.logger.Info("MarkNoShow: booking id=%s marked as no-show", id)
	return models.FromDomainBooking(&updated, s.policy.Location), nil
}

func (s *Service) setStatus(ctx context.Context, booking *domain.Booking, status domain.BookingStatus) (*models.BookingResponse, error) {
	patch := domain.BookingPatch{Status: &status, UpdatedAt: s.now()}
	if err := s.bookingRepo.Patch(ctx, booking.ID, patch); err != nil {
		return nil, s.mapRepoError("SetStatus", booking.ID, err)
	}

	updated := patch.Apply(*booking)
	s.publisher.Publish(ctx, domain.EventBookingStatusChanged, &updated)

	s.logger.Info("SetStatus: booking id=%s status %s -> %s", booking.ID, booking.Status, status)
	return models.FromDomainBooking(&updated, s.policy.Location), nil
}

func (s *Service) load(ctx context.Context, op, id string) (*domain.Booking, error) {
	if id == "" {
		return nil, fmt.Errorf("%w: booking id is required", ErrInvalidInput)
	}
	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		return nil, s.mapRepoError(op, id, err)
	}
	return booking, nil
}

func (s *Service) mapRepoError(op, id string, err error) error {
	if errors.Is(err, storage.ErrBookingNotFound) {
		s.logger.Warn("%s: booking id=%s not found", op, id)
		return ErrBookingNotFound
	}
	s.logger.Error("%s: repository error for booking id=%s: %v", op, id, err)
	return fmt.Errorf("%w: %s - repository error: %v", ErrStoreUnavailable, op, err)
}

func (s *Service) now() time.Time {
	return s.timeProvider.Now().In(s.policy.Location)
}

func (s *Service) record(operation string, err error) {
	if s.metrics == nil {
		return
	}
	result := "success"
	if err != nil {
		result = "error"
	}
	s.metrics.RecordBookingOperation(operation, result)
}

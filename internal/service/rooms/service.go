package rooms

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/m04kA/SMC-MeetingRoomService/internal/domain"
	"github.com/m04kA/SMC-MeetingRoomService/internal/service/rooms/models"
	"github.com/m04kA/SMC-MeetingRoomService/pkg/ptr"
	"github.com/m04kA/SMC-MeetingRoomService/pkg/types"
)

// maxParallelLoads ограничение параллельных запросов занятости к хранилищу
const maxParallelLoads = 4

// Service сервис для работы с переговорными
type Service struct {
	roomRepo     RoomRepository
	bookingRepo  BookingRepository
	policy       domain.BookingPolicy
	timeProvider TimeProvider
	logger       Logger
}

// NewService создает новый экземпляр сервиса переговорных
func NewService(roomRepo RoomRepository, bookingRepo BookingRepository, policy domain.BookingPolicy, logger Logger) *Service {
	return &Service{
		roomRepo:     roomRepo,
		bookingRepo:  bookingRepo,
		policy:       policy,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// List возвращает активные переговорные.
// С includeBookings к каждой добавляется текущая и следующая бронь на сегодня;
// сбой загрузки бронирований одной переговорной не ломает ответ, она считается свободной.
func (s *Service) List(ctx context.Context, includeBookings bool) (*models.RoomListResponse, error) {
	s.logger.Info("List: includeBookings=%t", includeBookings)

	rooms, err := s.roomRepo.List(ctx)
	if err != nil {
		s.logger.Error("List: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrStoreUnavailable, err)
	}

	resp := &models.RoomListResponse{Rooms: make([]models.RoomResponse, 0, len(rooms))}
	for _, room := range rooms {
		if room.IsActive() {
			resp.Rooms = append(resp.Rooms, *models.FromDomainRoom(room))
		}
	}
	resp.Count = len(resp.Rooms)

	if includeBookings {
		s.attachOccupancy(ctx, resp.Rooms)
	}

	s.logger.Info("List: fetched %d active rooms", resp.Count)
	return resp, nil
}

// attachOccupancy параллельно загружает сегодняшние бронирования каждой переговорной
func (s *Service) attachOccupancy(ctx context.Context, rooms []models.RoomResponse) {
	now := s.timeProvider.Now().In(s.policy.Location)
	today := domain.DateOnly(now)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxParallelLoads)

	for i := range rooms {
		room := &rooms[i]
		g.Go(func() error {
			roomID := room.ID
			bookings, err := s.bookingRepo.List(gctx, domain.BookingsFilter{Date: &today, RoomID: &roomID})
			if err != nil {
				s.logger.Warn("List: failed to load bookings for room id=%s, assuming available: %v", room.ID, err)
				bookings = nil
			}
			fillOccupancy(room, bookings, now)
			return nil
		})
	}
	_ = g.Wait()
}

// fillOccupancy вычисляет текущую и следующую бронь. Бронь, из которой не выписались после
// окончания, по-прежнему считается текущей.
func fillOccupancy(room *models.RoomResponse, bookings []*domain.Booking, now time.Time) {
	current := types.NewTimeString(now)

	var currentBooking, nextBooking *domain.Booking
	for _, b := range bookings {
		started := !current.IsBefore(b.StartTime)
		if currentBooking == nil && started && (current.IsBefore(b.EndTime) || b.IsStillOccupied()) {
			currentBooking = b
			continue
		}
		if nextBooking == nil && !started {
			nextBooking = b
		}
	}

	room.IsAvailable = ptr.Ptr(currentBooking == nil)
	room.CurrentBooking = models.FromDomainBookingSummary(currentBooking)
	room.NextBooking = models.FromDomainBookingSummary(nextBooking)
	room.TodayBookingsCount = ptr.Ptr(len(bookings))
}

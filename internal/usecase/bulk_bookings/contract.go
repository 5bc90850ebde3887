package bulk_bookings

import (
	"context"
	"time"

	"github.com/m04kA/SMC-MeetingRoomService/internal/domain"
	"github.com/m04kA/SMC-MeetingRoomService/internal/service/bookings/models"
	"github.com/m04kA/SMC-MeetingRoomService/internal/service/conflicts"
	"github.com/m04kA/SMC-MeetingRoomService/internal/usecase/create_booking"
	"github.com/m04kA/SMC-MeetingRoomService/internal/usecase/get_available_slots"
)

// BookingCreator создание одного бронирования с полной валидацией
type BookingCreator interface {
	Execute(ctx context.Context, req *create_booking.Request) (*models.BookingResponse, error)
}

// StatusSetter смена статуса одного бронирования
type StatusSetter interface {
	SetStatus(ctx context.Context, id string, status string) (*models.BookingResponse, error)
}

// SlotFinder поиск первого свободного интервала в переговорной
type SlotFinder interface {
	FirstFree(ctx context.Context, roomID string, date time.Time, durationMinutes int) (*get_available_slots.Slot, error)
}

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByID(ctx context.Context, id string) (*domain.Booking, error)
	Patch(ctx context.Context, id string, patch domain.BookingPatch) error
}

// RoomRepository интерфейс репозитория переговорных
type RoomRepository interface {
	List(ctx context.Context) ([]*domain.Room, error)
}

// ConflictChecker интерфейс проверки пересечений
type ConflictChecker interface {
	HasConflict(ctx context.Context, req conflicts.Request) bool
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// EventPublisher интерфейс публикации событий жизненного цикла
type EventPublisher interface {
	Publish(ctx context.Context, event domain.BookingEvent, booking *domain.Booking)
}

// MetricsCollector интерфейс для учёта результатов операций
type MetricsCollector interface {
	RecordBookingOperation(operation, result string)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}

package bulk_bookings

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidInput возвращается при некорректном запросе целиком
	ErrInvalidInput = errors.New("bulk_bookings: invalid input data")

	// ErrTooManyItems возвращается, когда в запросе больше элементов, чем разрешено
	ErrTooManyItems = fmt.Errorf("%w: too many items", ErrInvalidInput)

	// ErrEmptyUpdate возвращается, когда массовое обновление не меняет ни одного поля
	ErrEmptyUpdate = fmt.Errorf("%w: no fields to update", ErrInvalidInput)

	// Ошибки отдельных элементов

	// ErrBookingNotFound бронирование не найдено
	ErrBookingNotFound = errors.New("bulk_bookings: booking not found")

	// ErrInvalidTimeRange новое время начала не раньше времени окончания
	ErrInvalidTimeRange = errors.New("bulk_bookings: startTime must be before endTime")

	// ErrTimeConflict новое время пересекается с другим бронированием
	ErrTimeConflict = errors.New("bulk_bookings: time slot conflicts with another booking")

	// ErrStoreUnavailable сбой хранилища
	ErrStoreUnavailable = errors.New("bulk_bookings: record store unavailable")
)

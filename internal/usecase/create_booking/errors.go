package create_booking

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_booking: invalid input data")

	// ErrInvalidDate возвращается, когда дата бронирования уже прошла
	ErrInvalidDate = fmt.Errorf("%w: booking date is in the past", ErrInvalidInput)

	// ErrRoomInactive возвращается, когда переговорная недоступна для бронирования
	ErrRoomInactive = fmt.Errorf("%w: room is not active", ErrInvalidInput)

	// ErrCapacityExceeded возвращается, когда участников больше, чем мест
	ErrCapacityExceeded = fmt.Errorf("%w: participants exceed room capacity", ErrInvalidInput)

	// ErrRoomNotFound возвращается, когда переговорная не найдена
	ErrRoomNotFound = errors.New("create_booking: room not found")

	// ErrTimeConflict возвращается, когда интервал пересекается с другим бронированием
	ErrTimeConflict = errors.New("create_booking: time slot conflicts with another booking")

	// ErrStoreUnavailable возвращается при сбое хранилища
	ErrStoreUnavailable = errors.New("create_booking: record store unavailable")
)

package occupancy

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("occupancy: invalid input data")

	// ErrInvalidExtension возвращается, если продление не 30 или 60 минут либо выходит за пределы суток
	ErrInvalidExtension = fmt.Errorf("%w: extension must be 30 or 60 minutes within the same day", ErrInvalidInput)

	// ErrBookingCancelled возвращается при попытке заселиться в отменённое бронирование
	ErrBookingCancelled = fmt.Errorf("%w: booking is cancelled", ErrInvalidInput)

	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = errors.New("occupancy: booking not found")

	// ErrAccessDenied возвращается, когда идентификатор не совпадает ни с владельцем, ни с кодом администратора
	ErrAccessDenied = errors.New("occupancy: access denied")

	// ErrTooEarly возвращается при попытке заселиться раньше окна check-in
	ErrTooEarly = errors.New("occupancy: check-in is not open yet")

	// ErrAlreadyCheckedIn возвращается при повторном check-in
	ErrAlreadyCheckedIn = errors.New("occupancy: already checked in")

	// ErrNotCheckedIn возвращается, если check-in ещё не выполнен
	ErrNotCheckedIn = errors.New("occupancy: not checked in")

	// ErrAlreadyCheckedOut возвращается при повторном check-out
	ErrAlreadyCheckedOut = errors.New("occupancy: already checked out")

	// ErrCheckOutNotDue возвращается автоматическим check-out до окончания брони
	ErrCheckOutNotDue = errors.New("occupancy: scheduled end not reached")

	// ErrTimeConflict возвращается, когда продление пересекается с другим бронированием
	ErrTimeConflict = errors.New("occupancy: extension conflicts with another booking")

	// ErrStoreUnavailable возвращается при сбое хранилища
	ErrStoreUnavailable = errors.New("occupancy: record store unavailable")
)

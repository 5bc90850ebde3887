package bookings

import "errors"

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = errors.New("bookings: booking not found")

	// ErrAccessDenied возвращается, когда идентификатор не совпадает ни с владельцем, ни с кодом администратора
	ErrAccessDenied = errors.New("bookings: access denied")

	// ErrInvalidStatus возвращается при попытке установить недопустимый статус
	ErrInvalidStatus = errors.New("bookings: invalid booking status")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("bookings: invalid input data")

	// ErrStoreUnavailable возвращается при сбое хранилища
	ErrStoreUnavailable = errors.New("bookings: record store unavailable")
)

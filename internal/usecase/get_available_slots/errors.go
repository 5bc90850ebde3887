package get_available_slots

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("get_available_slots: invalid input data")

	// ErrInvalidDate возвращается, когда дата уже прошла
	ErrInvalidDate = fmt.Errorf("%w: date is in the past", ErrInvalidInput)

	// ErrRoomNotFound возвращается, когда переговорная не найдена
	ErrRoomNotFound = errors.New("get_available_slots: room not found")

	// ErrStoreUnavailable возвращается при сбое хранилища
	ErrStoreUnavailable = errors.New("get_available_slots: record store unavailable")
)

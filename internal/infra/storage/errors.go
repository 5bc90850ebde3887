// Package storage holds errors shared by every record store backend.
package storage

import "errors"

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = errors.New("storage: booking not found")

	// ErrRoomNotFound возвращается, когда переговорная не найдена
	ErrRoomNotFound = errors.New("storage: room not found")

	// ErrUnavailable возвращается при сбое обращения к хранилищу (сеть, БД, API)
	ErrUnavailable = errors.New("storage: record store unavailable")
)

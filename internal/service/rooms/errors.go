package rooms

import "errors"

var (
	// ErrStoreUnavailable возвращается при сбое хранилища
	ErrStoreUnavailable = errors.New("rooms: record store unavailable")
)

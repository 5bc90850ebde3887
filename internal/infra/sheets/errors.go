package sheets

import (
	"errors"
	"fmt"

	"github.com/m04kA/SMC-MeetingRoomService/internal/infra/storage"
)

var (
	// ErrBookingNotFound возвращается, когда строка бронирования не найдена
	ErrBookingNotFound = storage.ErrBookingNotFound

	// ErrRoomNotFound возвращается, когда строка переговорной не найдена
	ErrRoomNotFound = storage.ErrRoomNotFound

	// ErrRequest возвращается при сбое обращения к Sheets API
	ErrRequest = fmt.Errorf("%w: sheets: request failed", storage.ErrUnavailable)

	// ErrAuth возвращается при некорректных учётных данных сервисного аккаунта
	ErrAuth = errors.New("sheets: invalid service account credentials")
)

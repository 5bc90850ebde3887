package booking

import (
	"errors"
	"fmt"

	"github.com/m04kA/SMC-MeetingRoomService/internal/infra/storage"
)

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = storage.ErrBookingNotFound

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("booking.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = fmt.Errorf("%w: booking.repository: failed to execute query", storage.ErrUnavailable)

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = fmt.Errorf("%w: booking.repository: failed to scan row", storage.ErrUnavailable)

	// ErrEmptyPatch возвращается, если патч не содержит изменений
	ErrEmptyPatch = errors.New("booking.repository: empty patch")
)

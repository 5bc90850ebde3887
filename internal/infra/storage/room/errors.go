package room

import (
	"errors"
	"fmt"

	"github.com/m04kA/SMC-MeetingRoomService/internal/infra/storage"
)

var (
	// ErrRoomNotFound возвращается, когда переговорная не найдена
	ErrRoomNotFound = storage.ErrRoomNotFound

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("room.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = fmt.Errorf("%w: room.repository: failed to execute query", storage.ErrUnavailable)

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = fmt.Errorf("%w: room.repository: failed to scan row", storage.ErrUnavailable)
)

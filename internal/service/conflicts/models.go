package conflicts

import (
	"time"

	"github.com/m04kA/SMC-MeetingRoomService/pkg/types"
)

// Request интервал, который проверяется на пересечение с существующими бронированиями
type Request struct {
	RoomID           string
	Date             time.Time
	StartTime        types.TimeString
	EndTime          types.TimeString
	ExcludeBookingID string // бронирование, которое не сравнивается само с собой (продление)
}

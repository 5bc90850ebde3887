package get_available_slots

import (
	"time"

	"github.com/m04kA/SMC-MeetingRoomService/pkg/types"
)

// Request модель запроса на получение свободных интервалов переговорной
type Request struct {
	RoomID          string    // ID переговорной
	Date            time.Time // Дата (без времени)
	DurationMinutes int       // Длительность встречи в минутах
}

// Response модель ответа со списком свободных интервалов
type Response struct {
	RoomID          string
	Date            time.Time
	DurationMinutes int
	Slots           []Slot // Свободные интервалы в порядке начала
}

// Slot свободный интервал
type Slot struct {
	StartTime types.TimeString // Время начала, например "10:00"
	EndTime   types.TimeString // Время окончания
}

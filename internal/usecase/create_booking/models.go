package create_booking

import (
	"time"

	"github.com/m04kA/SMC-MeetingRoomService/pkg/types"
)

// Request модель запроса на создание бронирования
type Request struct {
	RoomID       string           // ID переговорной
	Title        string           // Название встречи
	BookerName   string           // Имя бронирующего
	EmployeeID   string           // Табельный номер (7 цифр)
	Date         time.Time        // Дата бронирования (без времени)
	StartTime    types.TimeString // Время начала, например "10:00"
	EndTime      types.TimeString // Время окончания
	Purpose      string           // Цель встречи (опционально)
	Participants int              // Количество участников, 0 - по умолчанию 1
}

package get_available_slots

import (
	"strconv"
	"time"

	"github.com/m04kA/SMC-MeetingRoomService/internal/domain"
	getAvailableSlots "github.com/m04kA/SMC-MeetingRoomService/internal/usecase/get_available_slots"
)

// defaultDurationMinutes длительность встречи, если параметр duration не передан
const defaultDurationMinutes = 60

// AvailableSlotsResponse HTTP response model
type AvailableSlotsResponse struct {
	RoomID          string          `json:"roomId"`
	Date            string          `json:"date"`
	DurationMinutes int             `json:"durationMinutes"`
	Slots           []AvailableSlot `json:"slots"`
}

// AvailableSlot модель свободного интервала
type AvailableSlot struct {
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getAvailableSlots.Response) *AvailableSlotsResponse {
	slots := make([]AvailableSlot, len(resp.Slots))
	for i, slot := range resp.Slots {
		slots[i] = AvailableSlot{
			StartTime: slot.StartTime.String(),
			EndTime:   slot.EndTime.String(),
		}
	}

	return &AvailableSlotsResponse{
		RoomID:          resp.RoomID,
		Date:            resp.Date.Format(domain.DateFormat),
		DurationMinutes: resp.DurationMinutes,
		Slots:           slots,
	}
}

// ToUseCaseRequest создает запрос use case из параметров пути и query
func ToUseCaseRequest(roomID, dateStr, durationStr string) (*getAvailableSlots.Request, error) {
	// Парсим дату
	date, err := time.Parse(domain.DateFormat, dateStr)
	if err != nil {
		return nil, errInvalidDate
	}

	duration := defaultDurationMinutes
	if durationStr != "" {
		duration, err = strconv.Atoi(durationStr)
		if err != nil {
			return nil, errInvalidDuration
		}
	}

	return &getAvailableSlots.Request{
		RoomID:          roomID,
		Date:            date,
		DurationMinutes: duration,
	}, nil
}

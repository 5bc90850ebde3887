package bulk_bookings

import (
	"time"

	"github.com/m04kA/SMC-MeetingRoomService/internal/service/bookings/models"
	"github.com/m04kA/SMC-MeetingRoomService/pkg/types"
)

// CreateRequest массовое создание: одни и те же поля на несколько дат
type CreateRequest struct {
	Dates        []time.Time
	RoomID       string
	Title        string
	BookerName   string
	EmployeeID   string
	StartTime    types.TimeString
	EndTime      types.TimeString
	Purpose      string
	Participants int
}

// CreateResult итог массового создания: каждая дата либо в Created, либо в Failed
type CreateResult struct {
	Created []models.BookingResponse
	Failed  []FailedDate
	Total   int
}

// FailedDate дата, на которую бронирование не создано
type FailedDate struct {
	Date       time.Time
	Err        error
	Suggestion *Suggestion // только при конфликте по времени
}

// Suggestion альтернатива при конфликте: другая переговорная или другое время
type Suggestion struct {
	RoomID    string
	StartTime types.TimeString
	EndTime   types.TimeString
}

// UpdateFields поля массового обновления: nil не меняется
type UpdateFields struct {
	StartTime    *types.TimeString
	EndTime      *types.TimeString
	Title        *string
	Purpose      *string
	Participants *int
}

// IsEmpty true, если ни одно поле не задано
func (f UpdateFields) IsEmpty() bool {
	return f.StartTime == nil && f.EndTime == nil && f.Title == nil && f.Purpose == nil && f.Participants == nil
}

// ItemsResult итог массовой отмены или обновления
type ItemsResult struct {
	Success int
	Failed  []FailedItem
}

// FailedItem бронирование, которое не удалось изменить
type FailedItem struct {
	ID  string
	Err error
}

// FailedIDs возвращает идентификаторы неуспешных элементов
func (r *ItemsResult) FailedIDs() []string {
	ids := make([]string, 0, len(r.Failed))
	for _, f := range r.Failed {
		ids = append(ids, f.ID)
	}
	return ids
}

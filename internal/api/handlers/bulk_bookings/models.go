package bulk_bookings

import (
	"errors"
	"time"

	"github.com/m04kA/SMC-MeetingRoomService/internal/domain"
	"github.com/m04kA/SMC-MeetingRoomService/internal/service/bookings"
	"github.com/m04kA/SMC-MeetingRoomService/internal/service/bookings/models"
	bulkBookings "github.com/m04kA/SMC-MeetingRoomService/internal/usecase/bulk_bookings"
	createBooking "github.com/m04kA/SMC-MeetingRoomService/internal/usecase/create_booking"
	"github.com/m04kA/SMC-MeetingRoomService/pkg/types"
)

var (
	errInvalidDateFormat = errors.New("invalid date format")
	errInvalidTimeFormat = errors.New("invalid time format")
)

// Request модели

// BulkCreateRequest массовое создание на несколько дат
type BulkCreateRequest struct {
	Dates        []string `json:"dates"` // ["2025-10-15", "2025-10-22"]
	RoomID       string   `json:"roomId"`
	Title        string   `json:"title"`
	BookerName   string   `json:"bookerName"`
	EmployeeID   string   `json:"employeeId"`
	StartTime    string   `json:"startTime"`
	EndTime      string   `json:"endTime"`
	Purpose      string   `json:"purpose,omitempty"`
	Participants int      `json:"participants,omitempty"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *BulkCreateRequest) ToUseCaseRequest() (*bulkBookings.CreateRequest, error) {
	dates := make([]time.Time, 0, len(r.Dates))
	for _, raw := range r.Dates {
		date, err := time.Parse(domain.DateFormat, raw)
		if err != nil {
			return nil, errInvalidDateFormat
		}
		dates = append(dates, date)
	}

	startTime, err := types.NewTimeStringFromString(r.StartTime)
	if err != nil {
		return nil, errInvalidTimeFormat
	}
	endTime, err := types.NewTimeStringFromString(r.EndTime)
	if err != nil {
		return nil, errInvalidTimeFormat
	}

	return &bulkBookings.CreateRequest{
		Dates:        dates,
		RoomID:       r.RoomID,
		Title:        r.Title,
		BookerName:   r.BookerName,
		EmployeeID:   r.EmployeeID,
		StartTime:    startTime,
		EndTime:      endTime,
		Purpose:      r.Purpose,
		Participants: r.Participants,
	}, nil
}

// BulkCancelRequest массовая отмена
type BulkCancelRequest struct {
	BookingIDs []string `json:"bookingIds"`
}

// BulkUpdateRequest массовое обновление
type BulkUpdateRequest struct {
	BookingIDs []string       `json:"bookingIds"`
	Updates    UpdatesRequest `json:"updates"`
}

// UpdatesRequest поля обновления, отсутствующие поля не меняются
type UpdatesRequest struct {
	StartTime    *string `json:"startTime,omitempty"`
	EndTime      *string `json:"endTime,omitempty"`
	Title        *string `json:"title,omitempty"`
	Purpose      *string `json:"purpose,omitempty"`
	Participants *int    `json:"participants,omitempty"`
}

// ToUseCaseFields конвертирует поля обновления в модель use case
func (u *UpdatesRequest) ToUseCaseFields() (bulkBookings.UpdateFields, error) {
	fields := bulkBookings.UpdateFields{
		Title:        u.Title,
		Purpose:      u.Purpose,
		Participants: u.Participants,
	}

	if u.StartTime != nil {
		startTime, err := types.NewTimeStringFromString(*u.StartTime)
		if err != nil {
			return fields, errInvalidTimeFormat
		}
		fields.StartTime = &startTime
	}
	if u.EndTime != nil {
		endTime, err := types.NewTimeStringFromString(*u.EndTime)
		if err != nil {
			return fields, errInvalidTimeFormat
		}
		fields.EndTime = &endTime
	}

	return fields, nil
}

// Response модели

// BulkCreateResponse итог массового создания
type BulkCreateResponse struct {
	Created      []models.BookingResponse `json:"created"`
	Failed       []FailedDateResponse     `json:"failed"`
	Total        int                      `json:"total"`
	CreatedCount int                      `json:"createdCount"`
	FailedCount  int                      `json:"failedCount"`
}

// FailedDateResponse дата, на которую бронирование не создано
type FailedDateResponse struct {
	Date       string              `json:"date"`
	Error      string              `json:"error"`
	Suggestion *SuggestionResponse `json:"suggestion,omitempty"`
}

// SuggestionResponse альтернатива при конфликте
type SuggestionResponse struct {
	RoomID    string `json:"roomId"`
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
}

// BulkItemsResponse итог массовой отмены или обновления
type BulkItemsResponse struct {
	Success   int                  `json:"success"`
	Failed    int                  `json:"failed"`
	FailedIDs []string             `json:"failedIds"`
	Errors    []FailedItemResponse `json:"errors,omitempty"`
}

// FailedItemResponse бронирование, которое не удалось изменить
type FailedItemResponse struct {
	ID    string `json:"id"`
	Error string `json:"error"`
}

// FromCreateResult конвертирует итог use case в HTTP response
func FromCreateResult(result *bulkBookings.CreateResult) *BulkCreateResponse {
	resp := &BulkCreateResponse{
		Created:      result.Created,
		Failed:       make([]FailedDateResponse, 0, len(result.Failed)),
		Total:        result.Total,
		CreatedCount: len(result.Created),
		FailedCount:  len(result.Failed),
	}
	if resp.Created == nil {
		resp.Created = []models.BookingResponse{}
	}

	for _, f := range result.Failed {
		failed := FailedDateResponse{
			Date:  f.Date.Format(domain.DateFormat),
			Error: itemErrorMessage(f.Err),
		}
		if f.Suggestion != nil {
			failed.Suggestion = &SuggestionResponse{
				RoomID:    f.Suggestion.RoomID,
				StartTime: f.Suggestion.StartTime.String(),
				EndTime:   f.Suggestion.EndTime.String(),
			}
		}
		resp.Failed = append(resp.Failed, failed)
	}
	return resp
}

// FromItemsResult конвертирует итог массовой отмены или обновления в HTTP response
func FromItemsResult(result *bulkBookings.ItemsResult) *BulkItemsResponse {
	resp := &BulkItemsResponse{
		Success:   result.Success,
		Failed:    len(result.Failed),
		FailedIDs: result.FailedIDs(),
	}
	for _, f := range result.Failed {
		resp.Errors = append(resp.Errors, FailedItemResponse{ID: f.ID, Error: itemErrorMessage(f.Err)})
	}
	return resp
}

// itemErrorMessage текст ошибки отдельного элемента для клиента
func itemErrorMessage(err error) string {
	switch {
	case errors.Is(err, createBooking.ErrTimeConflict), errors.Is(err, bulkBookings.ErrTimeConflict):
		return "на это время переговорная уже забронирована"
	case errors.Is(err, createBooking.ErrInvalidDate):
		return "дата уже прошла"
	case errors.Is(err, createBooking.ErrRoomInactive):
		return "переговорная недоступна для бронирования"
	case errors.Is(err, createBooking.ErrCapacityExceeded):
		return "количество участников превышает вместимость переговорной"
	case errors.Is(err, createBooking.ErrRoomNotFound):
		return "переговорная не найдена"
	case errors.Is(err, createBooking.ErrInvalidInput):
		return "некорректные данные бронирования"
	case errors.Is(err, bulkBookings.ErrInvalidInput), errors.Is(err, bookings.ErrInvalidInput):
		return "некорректный ID бронирования"
	case errors.Is(err, bulkBookings.ErrBookingNotFound), errors.Is(err, bookings.ErrBookingNotFound):
		return "бронирование не найдено"
	case errors.Is(err, bulkBookings.ErrInvalidTimeRange):
		return "время начала должно быть раньше времени окончания"
	case errors.Is(err, createBooking.ErrStoreUnavailable), errors.Is(err, bulkBookings.ErrStoreUnavailable),
		errors.Is(err, bookings.ErrStoreUnavailable):
		return "хранилище временно недоступно"
	default:
		return "внутренняя ошибка сервера"
	}
}

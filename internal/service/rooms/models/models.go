package models

import (
	"github.com/m04kA/SMC-MeetingRoomService/internal/domain"
)

// Response модели

// RoomResponse ответ с данными переговорной.
// Поля занятости заполняются только при запросе с includeBookings.
type RoomResponse struct {
	ID        string   `json:"id"`
	Name      string   `json:"name"`
	Capacity  int      `json:"capacity"`
	Location  string   `json:"location"`
	Equipment []string `json:"equipment"`
	Status    string   `json:"status"`

	IsAvailable        *bool           `json:"isAvailable,omitempty"`
	CurrentBooking     *BookingSummary `json:"currentBooking,omitempty"`
	NextBooking        *BookingSummary `json:"nextBooking,omitempty"`
	TodayBookingsCount *int            `json:"todayBookingsCount,omitempty"`
}

// BookingSummary краткие данные бронирования для карточки переговорной
type BookingSummary struct {
	ID         string `json:"id"`
	Title      string `json:"title"`
	BookerName string `json:"bookerName"`
	StartTime  string `json:"startTime"`
	EndTime    string `json:"endTime"`
}

// RoomListResponse ответ со списком переговорных
type RoomListResponse struct {
	Rooms []RoomResponse `json:"rooms"`
	Count int            `json:"count"`
}

// Методы конвертации

// FromDomainRoom конвертирует domain модель в DTO
func FromDomainRoom(r *domain.Room) *RoomResponse {
	if r == nil {
		return nil
	}
	equipment := r.Equipment
	if equipment == nil {
		equipment = []string{}
	}
	return &RoomResponse{
		ID:        r.ID,
		Name:      r.Name,
		Capacity:  r.Capacity,
		Location:  r.Location,
		Equipment: equipment,
		Status:    string(r.Status),
	}
}

// FromDomainBookingSummary конвертирует бронирование в краткую форму
func FromDomainBookingSummary(b *domain.Booking) *BookingSummary {
	if b == nil {
		return nil
	}
	return &BookingSummary{
		ID:         b.ID,
		Title:      b.Title,
		BookerName: b.BookerName,
		StartTime:  b.StartTime.String(),
		EndTime:    b.EndTime.String(),
	}
}

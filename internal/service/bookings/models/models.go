package models

import (
	"errors"
	"time"

	"github.com/m04kA/SMC-MeetingRoomService/internal/domain"
)

var (
	// ErrInvalidStatus возвращается при некорректном статусе
	ErrInvalidStatus = errors.New("invalid booking status")

	// ErrInvalidDate возвращается при некорректной дате фильтра
	ErrInvalidDate = errors.New("invalid date")
)

// Request модели

// ListBookingsRequest запрос на получение списка бронирований
type ListBookingsRequest struct {
	Date             *string `json:"date,omitempty"`       // "2025-10-15"
	RoomID           *string `json:"roomId,omitempty"`     // Фильтр по переговорной
	EmployeeID       *string `json:"employeeId,omitempty"` // Фильтр по владельцу
	Status           *string `json:"status,omitempty"`     // Фильтр по статусу
	IncludeCancelled bool    `json:"includeCancelled,omitempty"`
}

// ToDomainFilter конвертирует request в domain фильтр
func (r *ListBookingsRequest) ToDomainFilter() (domain.BookingsFilter, error) {
	filter := domain.BookingsFilter{
		RoomID:           r.RoomID,
		EmployeeID:       r.EmployeeID,
		IncludeCancelled: r.IncludeCancelled,
	}

	if r.Date != nil {
		date, err := time.Parse(domain.DateFormat, *r.Date)
		if err != nil {
			return filter, ErrInvalidDate
		}
		filter.Date = &date
	}

	if r.Status != nil {
		status, err := ToDomainBookingStatus(*r.Status)
		if err != nil {
			return filter, err
		}
		filter.Status = &status
	}

	return filter, nil
}

// Response модели

// BookingResponse ответ с данными бронирования
type BookingResponse struct {
	ID           string `json:"id"`
	RoomID       string `json:"roomId"`
	RoomName     string `json:"roomName"`
	Title        string `json:"title"`
	BookerName   string `json:"bookerName"`
	EmployeeID   string `json:"employeeId"`
	Date         string `json:"date"`      // "2025-10-15"
	StartTime    string `json:"startTime"` // "10:00"
	EndTime      string `json:"endTime"`   // "11:00"
	Status       string `json:"status"`
	Purpose      string `json:"purpose"`
	Participants int    `json:"participants"`

	IsCheckedIn     bool    `json:"isCheckedIn"`
	IsNoShow        bool    `json:"isNoShow"`
	CheckInTime     *string `json:"checkInTime,omitempty"` // RFC 3339
	CheckOutTime    *string `json:"checkOutTime,omitempty"`
	ActualStartTime *string `json:"actualStartTime,omitempty"`
	ActualEndTime   *string `json:"actualEndTime,omitempty"`

	CreatedAt string `json:"createdAt"`
	UpdatedAt string `json:"updatedAt"`
}

// BookingListResponse ответ со списком бронирований
type BookingListResponse struct {
	Bookings []BookingResponse `json:"bookings"`
	Total    int               `json:"total"`
}

// Методы конвертации

// FromDomainBooking конвертирует domain модель в DTO; временные метки приводятся к зоне loc
func FromDomainBooking(b *domain.Booking, loc *time.Location) *BookingResponse {
	if b == nil {
		return nil
	}
	if loc == nil {
		loc = time.UTC
	}

	return &BookingResponse{
		ID:              b.ID,
		RoomID:          b.RoomID,
		RoomName:        b.RoomName,
		Title:           b.Title,
		BookerName:      b.BookerName,
		EmployeeID:      b.EmployeeID,
		Date:            b.Date.Format(domain.DateFormat),
		StartTime:       b.StartTime.String(),
		EndTime:         b.EndTime.String(),
		Status:          string(b.Status),
		Purpose:         b.Purpose,
		Participants:    b.Participants,
		IsCheckedIn:     b.IsCheckedIn,
		IsNoShow:        b.IsNoShow,
		CheckInTime:     formatTime(b.CheckInTime, loc),
		CheckOutTime:    formatTime(b.CheckOutTime, loc),
		ActualStartTime: formatTime(b.ActualStartTime, loc),
		ActualEndTime:   formatTime(b.ActualEndTime, loc),
		CreatedAt:       b.CreatedAt.In(loc).Format(time.RFC3339),
		UpdatedAt:       b.UpdatedAt.In(loc).Format(time.RFC3339),
	}
}

// FromDomainBookingList конвертирует список domain моделей в DTO
func FromDomainBookingList(bookings []*domain.Booking, loc *time.Location) *BookingListResponse {
	resp := &BookingListResponse{
		Bookings: make([]BookingResponse, 0, len(bookings)),
	}
	for _, booking := range bookings {
		if bookingResp := FromDomainBooking(booking, loc); bookingResp != nil {
			resp.Bookings = append(resp.Bookings, *bookingResp)
		}
	}
	resp.Total = len(resp.Bookings)
	return resp
}

// ToDomainBookingStatus конвертирует строку в domain.BookingStatus с валидацией
func ToDomainBookingStatus(status string) (domain.BookingStatus, error) {
	s := domain.BookingStatus(status)
	if !s.IsValid() {
		return "", ErrInvalidStatus
	}
	return s, nil
}

func formatTime(t *time.Time, loc *time.Location) *string {
	if t == nil {
		return nil
	}
	s := t.In(loc).Format(time.RFC3339)
	return &s
}

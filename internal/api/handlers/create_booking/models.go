package create_booking

import (
	"errors"
	"time"

	"github.com/m04kA/SMC-MeetingRoomService/internal/domain"
	createBooking "github.com/m04kA/SMC-MeetingRoomService/internal/usecase/create_booking"
	"github.com/m04kA/SMC-MeetingRoomService/pkg/types"
)

var (
	errInvalidDateFormat = errors.New("invalid date format")
	errInvalidTimeFormat = errors.New("invalid time format")
)

// CreateBookingRequest HTTP request model
type CreateBookingRequest struct {
	RoomID       string `json:"roomId"`
	Title        string `json:"title"`
	BookerName   string `json:"bookerName"`
	EmployeeID   string `json:"employeeId"`
	Date         string `json:"date"`      // "2025-10-15"
	StartTime    string `json:"startTime"` // "10:00"
	EndTime      string `json:"endTime"`   // "11:00"
	Purpose      string `json:"purpose,omitempty"`
	Participants int    `json:"participants,omitempty"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateBookingRequest) ToUseCaseRequest() (*createBooking.Request, error) {
	// Парсим дату
	date, err := time.Parse(domain.DateFormat, r.Date)
	if err != nil {
		return nil, errInvalidDateFormat
	}

	// Парсим время
	startTime, err := types.NewTimeStringFromString(r.StartTime)
	if err != nil {
		return nil, errInvalidTimeFormat
	}
	endTime, err := types.NewTimeStringFromString(r.EndTime)
	if err != nil {
		return nil, errInvalidTimeFormat
	}

	return &createBooking.Request{
		RoomID:       r.RoomID,
		Title:        r.Title,
		BookerName:   r.BookerName,
		EmployeeID:   r.EmployeeID,
		Date:         date,
		StartTime:    startTime,
		EndTime:      endTime,
		Purpose:      r.Purpose,
		Participants: r.Participants,
	}, nil
}

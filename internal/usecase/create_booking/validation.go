package create_booking

import (
	"fmt"
	"strings"
	"time"

	"github.com/m04kA/SMC-MeetingRoomService/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if strings.TrimSpace(req.RoomID) == "" {
		return fmt.Errorf("%w: roomId is required", ErrInvalidInput)
	}

	if strings.TrimSpace(req.Title) == "" {
		return fmt.Errorf("%w: title is required", ErrInvalidInput)
	}
	if len([]rune(req.Title)) > domain.MaxTitleLength {
		return fmt.Errorf("%w: title is longer than %d characters", ErrInvalidInput, domain.MaxTitleLength)
	}
	if len([]rune(req.Purpose)) > domain.MaxPurposeLength {
		return fmt.Errorf("%w: purpose is longer than %d characters", ErrInvalidInput, domain.MaxPurposeLength)
	}

	if strings.TrimSpace(req.BookerName) == "" {
		return fmt.Errorf("%w: bookerName is required", ErrInvalidInput)
	}

	if !domain.IsValidEmployeeID(req.EmployeeID) {
		return fmt.Errorf("%w: employeeId must be exactly 7 digits", ErrInvalidInput)
	}

	// Проверяем, что дата не является нулевой
	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	if req.StartTime.IsZero() || req.EndTime.IsZero() {
		return fmt.Errorf("%w: startTime and endTime are required", ErrInvalidInput)
	}
	if err := req.StartTime.Validate(); err != nil {
		return fmt.Errorf("%w: invalid startTime format: %v", ErrInvalidInput, err)
	}
	if err := req.EndTime.Validate(); err != nil {
		return fmt.Errorf("%w: invalid endTime format: %v", ErrInvalidInput, err)
	}
	if !req.StartTime.IsBefore(req.EndTime) {
		return fmt.Errorf("%w: startTime must be before endTime", ErrInvalidInput)
	}

	if req.Participants < 0 {
		return fmt.Errorf("%w: participants must be positive", ErrInvalidInput)
	}

	return nil
}

// validateDate проверяет, что дата не раньше сегодняшнего дня в зоне now
func validateDate(date, now time.Time) error {
	if domain.DateOnly(date).Before(domain.DateOnly(now)) {
		return ErrInvalidDate
	}
	return nil
}

// validateRoom проверяет, что переговорная активна и вмещает участников
func validateRoom(room *domain.Room, participants int) error {
	if !room.IsActive() {
		return ErrRoomInactive
	}
	if !room.CanHost(participants) {
		return fmt.Errorf("%w: %d > %d", ErrCapacityExceeded, participants, room.Capacity)
	}
	return nil
}

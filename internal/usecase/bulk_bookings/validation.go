package bulk_bookings

import (
	"fmt"
	"strings"
	"time"

	"github.com/m04kA/SMC-MeetingRoomService/internal/domain"
)

// validateDates проверяет количество дат; содержимое каждой даты проверяет создание бронирования
func validateDates(dates []time.Time) error {
	if len(dates) == 0 {
		return fmt.Errorf("%w: at least one date is required", ErrInvalidInput)
	}
	if len(dates) > domain.MaxBulkItems {
		return fmt.Errorf("%w: %d dates, max %d", ErrTooManyItems, len(dates), domain.MaxBulkItems)
	}
	return nil
}

// validateIDs проверяет список идентификаторов бронирований
func validateIDs(ids []string) error {
	if len(ids) == 0 {
		return fmt.Errorf("%w: bookingIds are required", ErrInvalidInput)
	}
	if len(ids) > domain.MaxBulkItems {
		return fmt.Errorf("%w: %d bookings, max %d", ErrTooManyItems, len(ids), domain.MaxBulkItems)
	}
	return nil
}

// validateUpdateFields проверяет поля, общие для всех обновляемых бронирований
func validateUpdateFields(fields UpdateFields) error {
	if fields.IsEmpty() {
		return ErrEmptyUpdate
	}

	if fields.StartTime != nil {
		if err := fields.StartTime.Validate(); err != nil {
			return fmt.Errorf("%w: invalid startTime format: %v", ErrInvalidInput, err)
		}
	}
	if fields.EndTime != nil {
		if err := fields.EndTime.Validate(); err != nil {
			return fmt.Errorf("%w: invalid endTime format: %v", ErrInvalidInput, err)
		}
	}
	if fields.StartTime != nil && fields.EndTime != nil && !fields.StartTime.IsBefore(*fields.EndTime) {
		return fmt.Errorf("%w: startTime must be before endTime", ErrInvalidInput)
	}

	if fields.Title != nil {
		title := strings.TrimSpace(*fields.Title)
		if title == "" {
			return fmt.Errorf("%w: title must not be empty", ErrInvalidInput)
		}
		if len([]rune(title)) > domain.MaxTitleLength {
			return fmt.Errorf("%w: title is longer than %d characters", ErrInvalidInput, domain.MaxTitleLength)
		}
	}
	if fields.Purpose != nil && len([]rune(*fields.Purpose)) > domain.MaxPurposeLength {
		return fmt.Errorf("%w: purpose is longer than %d characters", ErrInvalidInput, domain.MaxPurposeLength)
	}
	if fields.Participants != nil && *fields.Participants < 1 {
		return fmt.Errorf("%w: participants must be positive", ErrInvalidInput)
	}

	return nil
}

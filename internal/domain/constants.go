package domain

import "regexp"

// Default lifecycle values
const (
	DefaultAdminOverrideCode          = "1234567"
	DefaultCheckInWindowMinutes       = 15
	DefaultStaleOccupancyGraceMinutes = 30
	DefaultNoShowAfterMinutes         = 15
	DefaultTimezone                   = "Asia/Seoul"
	DefaultParticipants               = 1
)

// Business validation constants
const (
	MaxTitleLength   = 200
	MaxPurposeLength = 500
	MaxBulkItems     = 100
)

// Suggestion search range for bulk bookings: half-hour starts from 09:00 to 17:30
const (
	SuggestionFirstHour   = 9
	SuggestionLastHour    = 17
	SuggestionStepMinutes = 30
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// EmployeeIDPattern exactly seven ASCII digits
var EmployeeIDPattern = regexp.MustCompile(`^[0-9]{7}$`)

// AllowedExtensionMinutes допустимые значения продления
var AllowedExtensionMinutes = []int{30, 60}

// ValidStatuses список допустимых статусов бронирования
var ValidStatuses = []BookingStatus{
	StatusPending,
	StatusConfirmed,
	StatusCancelled,
}

// IsValidEmployeeID проверяет формат табельного номера
func IsValidEmployeeID(id string) bool {
	return EmployeeIDPattern.MatchString(id)
}

// IsAllowedExtension проверяет, что продление на minutes разрешено
func IsAllowedExtension(minutes int) bool {
	for _, allowed := range AllowedExtensionMinutes {
		if minutes == allowed {
			return true
		}
	}
	return false
}

package domain

import "github.com/m04kA/SMC-MeetingRoomService/pkg/types"

// TimeSlot represents a same-day half-open interval [Start, End)
type TimeSlot struct {
	Start types.TimeString
	End   types.TimeString
}

// IsValid returns true if both ends are well-formed and Start < End
func (s TimeSlot) IsValid() bool {
	return s.Start.Validate() == nil && s.End.Validate() == nil && s.Start.IsBefore(s.End)
}

// Overlaps reports whether two slots intersect.
// Touching slots (one ends exactly when the other starts) do not overlap.
func (s TimeSlot) Overlaps(other TimeSlot) bool {
	return s.Start.IsBefore(other.End) && s.End.IsAfter(other.Start)
}

// DurationMinutes returns the slot length in minutes
func (s TimeSlot) DurationMinutes() int {
	return s.End.Minutes() - s.Start.Minutes()
}

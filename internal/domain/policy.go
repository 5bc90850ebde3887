package domain

import "time"

// BookingPolicy configures the reservation lifecycle.
// It is built once from configuration and passed to constructors.
type BookingPolicy struct {
	AdminOverrideCode          string
	CheckInWindowMinutes       int
	StaleOccupancyGraceMinutes int
	NoShowAfterMinutes         int
	Location                   *time.Location
}

// DefaultBookingPolicy returns the policy with default values in the given location
func DefaultBookingPolicy(loc *time.Location) BookingPolicy {
	if loc == nil {
		loc = time.UTC
	}
	return BookingPolicy{
		AdminOverrideCode:          DefaultAdminOverrideCode,
		CheckInWindowMinutes:       DefaultCheckInWindowMinutes,
		StaleOccupancyGraceMinutes: DefaultStaleOccupancyGraceMinutes,
		NoShowAfterMinutes:         DefaultNoShowAfterMinutes,
		Location:                   loc,
	}
}

// CheckInWindow returns how long before the scheduled start check-in opens
func (p BookingPolicy) CheckInWindow() time.Duration {
	return time.Duration(p.CheckInWindowMinutes) * time.Minute
}

// StaleOccupancyGrace returns the window after "now" protected by a stale occupancy
func (p BookingPolicy) StaleOccupancyGrace() time.Duration {
	return time.Duration(p.StaleOccupancyGraceMinutes) * time.Minute
}

// NoShowAfter returns how long after the scheduled start a booking without check-in becomes a no-show
func (p BookingPolicy) NoShowAfter() time.Duration {
	return time.Duration(p.NoShowAfterMinutes) * time.Minute
}

// IsAuthorized returns true if identifier is the occupant's or the override code
func (p BookingPolicy) IsAuthorized(b *Booking, identifier string) bool {
	if identifier == "" {
		return false
	}
	if identifier == b.EmployeeID {
		return true
	}
	return p.AdminOverrideCode != "" && identifier == p.AdminOverrideCode
}

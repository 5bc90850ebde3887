package domain

// RoomStatus represents whether a room can be booked
type RoomStatus string

const (
	RoomStatusActive   RoomStatus = "active"
	RoomStatusInactive RoomStatus = "inactive"
)

// Room represents a bookable meeting room
type Room struct {
	ID        string
	Name      string
	Capacity  int
	Location  string
	Equipment []string
	Status    RoomStatus
}

// IsActive returns true if the room accepts bookings
func (r *Room) IsActive() bool {
	return r.Status == RoomStatusActive
}

// CanHost returns true if the room fits the number of participants
func (r *Room) CanHost(participants int) bool {
	return participants <= r.Capacity
}

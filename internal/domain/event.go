package domain

// BookingEvent type of a lifecycle event published after a successful mutation
type BookingEvent string

const (
	EventBookingCreated       BookingEvent = "booking.created"
	EventBookingStatusChanged BookingEvent = "booking.status_changed"
	EventBookingCheckedIn     BookingEvent = "booking.checked_in"
	EventBookingCheckedOut    BookingEvent = "booking.checked_out"
	EventBookingExtended      BookingEvent = "booking.extended"
	EventBookingNoShow        BookingEvent = "booking.no_show"
	EventBookingUpdated       BookingEvent = "booking.updated"
)

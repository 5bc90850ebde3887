package events

import (
	"time"

	"github.com/m04kA/SMC-MeetingRoomService/internal/service/bookings/models"
)

// Envelope конверт события в формате CloudEvents (structured mode, JSON)
type Envelope struct {
	SpecVersion     string                  `json:"specversion"`
	ID              string                  `json:"id"`
	Source          string                  `json:"source"`
	Type            string                  `json:"type"`
	Time            time.Time               `json:"time"`
	DataContentType string                  `json:"datacontenttype"`
	Data            *models.BookingResponse `json:"data"`
}

package list_rooms

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/m04kA/SMC-MeetingRoomService/internal/api/handlers"
	"github.com/m04kA/SMC-MeetingRoomService/internal/service/rooms"
)

const (
	msgInvalidIncludeBookings = "некорректное значение includeBookings"
)

type Handler struct {
	service RoomService
	logger  Logger
}

func NewHandler(service RoomService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/rooms
// Query params: includeBookings (optional, bool) - добавить текущую и следующую встречу за сегодня
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	includeBookings := false
	if raw := r.URL.Query().Get("includeBookings"); raw != "" {
		parsed, err := strconv.ParseBool(raw)
		if err != nil {
			h.logger.Warn("GET /rooms - Invalid includeBookings: %q", raw)
			handlers.RespondBadRequest(w, msgInvalidIncludeBookings)
			return
		}
		includeBookings = parsed
	}

	result, err := h.service.List(r.Context(), includeBookings)
	if err != nil {
		if errors.Is(err, rooms.ErrStoreUnavailable) {
			h.logger.Error("GET /rooms - Store unavailable: %v", err)
			handlers.RespondServiceUnavailable(w)
			return
		}
		h.logger.Error("GET /rooms - Failed to list rooms: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /rooms - Rooms retrieved successfully: count=%d, include_bookings=%t",
		result.Count, includeBookings)
	handlers.RespondJSON(w, http.StatusOK, result)
}

package extend_booking

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-MeetingRoomService/internal/api/handlers"
	"github.com/m04kA/SMC-MeetingRoomService/internal/usecase/occupancy"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidExtension   = "продлить можно только на 30 или 60 минут в пределах дня"
	msgInvalidInput       = "некорректный ID бронирования или табельный номер"
	msgNotFound           = "бронирование не найдено"
	msgForbidden          = "доступ запрещен"
	msgNotCheckedIn       = "продление доступно только после check-in"
	msgAlreadyCheckedOut  = "бронирование уже завершено"
	msgTimeConflict       = "на время продления переговорная уже забронирована"
)

type Handler struct {
	useCase OccupancyUseCase
	logger  Logger
}

func NewHandler(useCase OccupancyUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings/{bookingId}/extend
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	bookingID := mux.Vars(r)["bookingId"]

	var req ExtendRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings/{id}/extend - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	minutes := req.ExtendBy()
	result, err := h.useCase.Extend(r.Context(), bookingID, req.EmployeeID, minutes)
	if err != nil {
		switch {
		case errors.Is(err, occupancy.ErrInvalidExtension):
			h.logger.Warn("POST /bookings/{id}/extend - Invalid extension: booking_id=%s, minutes=%d", bookingID, minutes)
			handlers.RespondBadRequest(w, msgInvalidExtension)

		case errors.Is(err, occupancy.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgInvalidInput)

		case errors.Is(err, occupancy.ErrBookingNotFound):
			h.logger.Warn("POST /bookings/{id}/extend - Booking not found: booking_id=%s", bookingID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, occupancy.ErrAccessDenied):
			h.logger.Warn("POST /bookings/{id}/extend - Access denied: booking_id=%s", bookingID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, occupancy.ErrNotCheckedIn):
			handlers.RespondBadRequest(w, msgNotCheckedIn)

		case errors.Is(err, occupancy.ErrAlreadyCheckedOut):
			handlers.RespondBadRequest(w, msgAlreadyCheckedOut)

		case errors.Is(err, occupancy.ErrTimeConflict):
			h.logger.Warn("POST /bookings/{id}/extend - Time conflict: booking_id=%s, minutes=%d", bookingID, minutes)
			handlers.RespondConflict(w, msgTimeConflict)

		case errors.Is(err, occupancy.ErrStoreUnavailable):
			h.logger.Error("POST /bookings/{id}/extend - Store unavailable: booking_id=%s, error=%v", bookingID, err)
			handlers.RespondServiceUnavailable(w)

		default:
			h.logger.Error("POST /bookings/{id}/extend - Failed to extend: booking_id=%s, error=%v", bookingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /bookings/{id}/extend - Booking extended successfully: booking_id=%s, end_time=%s",
		bookingID, result.EndTime)
	handlers.RespondJSON(w, http.StatusOK, result)
}

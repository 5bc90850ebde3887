package check_in

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-MeetingRoomService/internal/api/handlers"
	"github.com/m04kA/SMC-MeetingRoomService/internal/usecase/occupancy"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidInput       = "некорректный ID бронирования или табельный номер"
	msgNotFound           = "бронирование не найдено"
	msgForbidden          = "доступ запрещен"
	msgCancelled          = "бронирование отменено"
	msgTooEarly           = "check-in для этого бронирования ещё не открыт"
	msgAlreadyCheckedIn   = "check-in уже выполнен"
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

// Handle POST /api/v1/bookings/{bookingId}/check-in
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	bookingID := mux.Vars(r)["bookingId"]

	var req CheckInRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings/{id}/check-in - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.CheckIn(r.Context(), bookingID, req.EmployeeID)
	if err != nil {
		switch {
		case errors.Is(err, occupancy.ErrBookingNotFound):
			h.logger.Warn("POST /bookings/{id}/check-in - Booking not found: booking_id=%s", bookingID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, occupancy.ErrAccessDenied):
			h.logger.Warn("POST /bookings/{id}/check-in - Access denied: booking_id=%s", bookingID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, occupancy.ErrBookingCancelled):
			handlers.RespondBadRequest(w, msgCancelled)

		case errors.Is(err, occupancy.ErrInvalidInput):
			h.logger.Warn("POST /bookings/{id}/check-in - Validation failed: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		case errors.Is(err, occupancy.ErrTooEarly):
			handlers.RespondBadRequest(w, msgTooEarly)

		case errors.Is(err, occupancy.ErrAlreadyCheckedIn):
			handlers.RespondBadRequest(w, msgAlreadyCheckedIn)

		case errors.Is(err, occupancy.ErrStoreUnavailable):
			h.logger.Error("POST /bookings/{id}/check-in - Store unavailable: booking_id=%s, error=%v", bookingID, err)
			handlers.RespondServiceUnavailable(w)

		default:
			h.logger.Error("POST /bookings/{id}/check-in - Failed to check in: booking_id=%s, error=%v", bookingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /bookings/{id}/check-in - Checked in successfully: booking_id=%s", bookingID)
	handlers.RespondJSON(w, http.StatusOK, result)
}

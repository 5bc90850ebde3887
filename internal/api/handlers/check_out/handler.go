package check_out

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
	msgNotCheckedIn       = "check-in не выполнен"
	msgAlreadyCheckedOut  = "check-out уже выполнен"
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

// Handle POST /api/v1/bookings/{bookingId}/check-out
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	bookingID := mux.Vars(r)["bookingId"]

	var req CheckOutRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings/{id}/check-out - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.CheckOut(r.Context(), bookingID, req.EmployeeID)
	if err != nil {
		switch {
		case errors.Is(err, occupancy.ErrBookingNotFound):
			h.logger.Warn("POST /bookings/{id}/check-out - Booking not found: booking_id=%s", bookingID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, occupancy.ErrAccessDenied):
			h.logger.Warn("POST /bookings/{id}/check-out - Access denied: booking_id=%s", bookingID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, occupancy.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgInvalidInput)

		case errors.Is(err, occupancy.ErrNotCheckedIn):
			handlers.RespondBadRequest(w, msgNotCheckedIn)

		case errors.Is(err, occupancy.ErrAlreadyCheckedOut):
			handlers.RespondBadRequest(w, msgAlreadyCheckedOut)

		case errors.Is(err, occupancy.ErrStoreUnavailable):
			h.logger.Error("POST /bookings/{id}/check-out - Store unavailable: booking_id=%s, error=%v", bookingID, err)
			handlers.RespondServiceUnavailable(w)

		default:
			h.logger.Error("POST /bookings/{id}/check-out - Failed to check out: booking_id=%s, error=%v", bookingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /bookings/{id}/check-out - Checked out successfully: booking_id=%s", bookingID)
	handlers.RespondJSON(w, http.StatusOK, result)
}

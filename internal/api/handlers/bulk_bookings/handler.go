package bulk_bookings

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-MeetingRoomService/internal/api/handlers"
	bulkBookings "github.com/m04kA/SMC-MeetingRoomService/internal/usecase/bulk_bookings"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidDate        = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgInvalidTime        = "некорректный формат времени, ожидается HH:MM"
	msgTooManyItems       = "слишком много элементов в одном запросе"
	msgEmptyUpdate        = "не указаны поля для обновления"
	msgInvalidInput       = "некорректные данные запроса"
)

// Handler обслуживает массовые операции над бронированиями.
// Ответ всегда 200, если запрос корректен целиком: результат по каждому элементу в теле.
type Handler struct {
	useCase BulkUseCase
	logger  Logger
}

func NewHandler(useCase BulkUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// HandleCreate POST /api/v1/bookings/bulk
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req BulkCreateRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings/bulk - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest()
	if err != nil {
		h.logger.Warn("POST /bookings/bulk - Failed to parse request: %v", err)
		if errors.Is(err, errInvalidTimeFormat) {
			handlers.RespondBadRequest(w, msgInvalidTime)
		} else {
			handlers.RespondBadRequest(w, msgInvalidDate)
		}
		return
	}

	result, err := h.useCase.BulkCreate(r.Context(), useCaseReq)
	if err != nil {
		h.respondRequestError(w, "POST /bookings/bulk", err)
		return
	}

	h.logger.Info("POST /bookings/bulk - Bulk create finished: room_id=%s, created=%d, failed=%d",
		req.RoomID, len(result.Created), len(result.Failed))
	handlers.RespondJSON(w, http.StatusOK, FromCreateResult(result))
}

// HandleCancel DELETE /api/v1/bookings/bulk
func (h *Handler) HandleCancel(w http.ResponseWriter, r *http.Request) {
	var req BulkCancelRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("DELETE /bookings/bulk - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.BulkCancel(r.Context(), req.BookingIDs)
	if err != nil {
		h.respondRequestError(w, "DELETE /bookings/bulk", err)
		return
	}

	h.logger.Info("DELETE /bookings/bulk - Bulk cancel finished: success=%d, failed=%d",
		result.Success, len(result.Failed))
	handlers.RespondJSON(w, http.StatusOK, FromItemsResult(result))
}

// HandleUpdate PATCH /api/v1/bookings/bulk
func (h *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	var req BulkUpdateRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /bookings/bulk - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	fields, err := req.Updates.ToUseCaseFields()
	if err != nil {
		h.logger.Warn("PATCH /bookings/bulk - Failed to parse updates: %v", err)
		handlers.RespondBadRequest(w, msgInvalidTime)
		return
	}

	result, err := h.useCase.BulkUpdate(r.Context(), req.BookingIDs, fields)
	if err != nil {
		h.respondRequestError(w, "PATCH /bookings/bulk", err)
		return
	}

	h.logger.Info("PATCH /bookings/bulk - Bulk update finished: success=%d, failed=%d",
		result.Success, len(result.Failed))
	handlers.RespondJSON(w, http.StatusOK, FromItemsResult(result))
}

// respondRequestError отвечает на ошибку, относящуюся ко всему запросу
func (h *Handler) respondRequestError(w http.ResponseWriter, route string, err error) {
	switch {
	case errors.Is(err, bulkBookings.ErrTooManyItems):
		h.logger.Warn("%s - Too many items: %v", route, err)
		handlers.RespondBadRequest(w, msgTooManyItems)

	case errors.Is(err, bulkBookings.ErrEmptyUpdate):
		handlers.RespondBadRequest(w, msgEmptyUpdate)

	case errors.Is(err, bulkBookings.ErrInvalidInput):
		h.logger.Warn("%s - Validation failed: %v", route, err)
		handlers.RespondBadRequest(w, msgInvalidInput)

	default:
		h.logger.Error("%s - Bulk operation failed: %v", route, err)
		handlers.RespondInternalError(w)
	}
}

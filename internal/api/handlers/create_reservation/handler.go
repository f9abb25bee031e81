package create_reservation

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-ScheduleService/internal/api/handlers"
	createReservation "github.com/m04kA/SMC-ScheduleService/internal/usecase/create_reservation"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidStart       = "некорректное время начала, ожидается RFC3339"
	msgInvalidData        = "некорректные данные бронирования"
	msgUnknownServiceKind = "неизвестный вид услуги"
	msgProviderNotFound   = "поставщик не найден"
	msgNoAvailableSlots   = "в выбранном интервале нет свободных слотов"
	msgAlreadyReserved    = "выбранное время уже занято"
)

type Handler struct {
	useCase CreateReservationUseCase
	logger  Logger
}

func NewHandler(useCase CreateReservationUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/reservations
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req CreateReservationRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /reservations - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest()
	if err != nil {
		h.logger.Warn("POST /reservations - Invalid start: %v", err)
		handlers.RespondBadRequest(w, msgInvalidStart)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, createReservation.ErrInvalidInput):
			h.logger.Warn("POST /reservations - Invalid data: %v", err)
			handlers.RespondBadRequest(w, msgInvalidData)

		case errors.Is(err, createReservation.ErrUnknownServiceKind):
			h.logger.Warn("POST /reservations - Unknown service kind: kind=%s", req.ServiceKind)
			handlers.RespondBadRequest(w, msgUnknownServiceKind)

		case errors.Is(err, createReservation.ErrProviderNotFound):
			h.logger.Warn("POST /reservations - Provider not found: provider_id=%d", req.ProviderID)
			handlers.RespondNotFound(w, msgProviderNotFound)

		case errors.Is(err, createReservation.ErrNoAvailableTimeSlots):
			h.logger.Warn("POST /reservations - No available slots: provider_id=%d, start=%s", req.ProviderID, req.Start)
			handlers.RespondConflict(w, msgNoAvailableSlots)

		case errors.Is(err, createReservation.ErrTimeSlotsAlreadyReserved):
			h.logger.Warn("POST /reservations - Slots already reserved: provider_id=%d, start=%s", req.ProviderID, req.Start)
			handlers.RespondConflict(w, msgAlreadyReserved)

		default:
			h.logger.Error("POST /reservations - Failed to create reservation: provider_id=%d, error=%v", req.ProviderID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /reservations - Reservation created successfully: reservation_id=%d, provider_id=%d",
		result.ID, result.ProviderID)
	handlers.RespondJSON(w, http.StatusCreated, result)
}

package apply_schedule

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-ScheduleService/internal/api/handlers"
	applySchedule "github.com/m04kA/SMC-ScheduleService/internal/usecase/apply_schedule"
)

const (
	msgInvalidProviderID  = "некорректный ID поставщика"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidWindows     = "некорректные даты или окна доступности"
	msgProviderNotFound   = "поставщик не найден"
	msgAlreadyExists      = "расписание на дату уже существует"
	msgReservedSlots      = "нельзя изменить слоты с активным бронированием"
)

type Handler struct {
	useCase  ApplyScheduleUseCase
	location *time.Location
	logger   Logger
}

func NewHandler(useCase ApplyScheduleUseCase, location *time.Location, logger Logger) *Handler {
	return &Handler{
		useCase:  useCase,
		location: location,
		logger:   logger,
	}
}

// Handle POST /api/v1/providers/{providerId}/schedule (создание)
// и PUT /api/v1/providers/{providerId}/schedule (замена с сохранением бронирований)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	mode := applySchedule.ModeUpdate
	status := http.StatusOK
	if r.Method == http.MethodPost {
		mode = applySchedule.ModeCreate
		status = http.StatusCreated
	}

	vars := mux.Vars(r)
	providerID, err := strconv.ParseInt(vars["providerId"], 10, 64)
	if err != nil || providerID <= 0 {
		h.logger.Warn("%s /providers/{id}/schedule - Invalid provider ID: %s", r.Method, vars["providerId"])
		handlers.RespondBadRequest(w, msgInvalidProviderID)
		return
	}

	var req ScheduleRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("%s /providers/{id}/schedule - Invalid request body: %v", r.Method, err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(providerID, mode, h.location)
	if err != nil {
		h.logger.Warn("%s /providers/{id}/schedule - Failed to parse request: %v", r.Method, err)
		handlers.RespondBadRequest(w, msgInvalidWindows)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, applySchedule.ErrInvalidInput):
			h.logger.Warn("%s /providers/{id}/schedule - Invalid data: provider_id=%d, error=%v", r.Method, providerID, err)
			handlers.RespondBadRequest(w, msgInvalidWindows)

		case errors.Is(err, applySchedule.ErrProviderNotFound):
			h.logger.Warn("%s /providers/{id}/schedule - Provider not found: provider_id=%d", r.Method, providerID)
			handlers.RespondNotFound(w, msgProviderNotFound)

		case errors.Is(err, applySchedule.ErrScheduleAlreadyExists):
			h.logger.Warn("%s /providers/{id}/schedule - Schedule already exists: provider_id=%d", r.Method, providerID)
			handlers.RespondConflict(w, msgAlreadyExists)

		case errors.Is(err, applySchedule.ErrInvalidSchedule):
			h.logger.Warn("%s /providers/{id}/schedule - Reserved slots touched: provider_id=%d", r.Method, providerID)
			handlers.RespondConflict(w, msgReservedSlots)

		default:
			h.logger.Error("%s /providers/{id}/schedule - Failed to apply schedule: provider_id=%d, error=%v",
				r.Method, providerID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("%s /providers/{id}/schedule - Schedule applied successfully: provider_id=%d, added=%d, removed=%d",
		r.Method, providerID, result.SlotsAdded, result.SlotsRemoved)
	handlers.RespondJSON(w, status, FromUseCaseResponse(result))
}

package get_schedule

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-ScheduleService/internal/api/handlers"
	getSchedule "github.com/m04kA/SMC-ScheduleService/internal/usecase/get_schedule"
)

const (
	msgInvalidProviderID = "некорректный ID поставщика"
	msgMissingFrom       = "параметр from обязателен"
	msgInvalidDate       = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgInvalidRange      = "некорректный диапазон дат"
	msgProviderNotFound  = "поставщик не найден"
)

type Handler struct {
	useCase  GetScheduleUseCase
	location *time.Location
	logger   Logger
}

func NewHandler(useCase GetScheduleUseCase, location *time.Location, logger Logger) *Handler {
	return &Handler{
		useCase:  useCase,
		location: location,
		logger:   logger,
	}
}

// Handle GET /api/v1/providers/{providerId}/schedule
// Query params: from (required, YYYY-MM-DD), until (optional, exclusive, default from + 1 day)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	providerID, err := strconv.ParseInt(vars["providerId"], 10, 64)
	if err != nil || providerID <= 0 {
		h.logger.Warn("GET /providers/{id}/schedule - Invalid provider ID: %s", vars["providerId"])
		handlers.RespondBadRequest(w, msgInvalidProviderID)
		return
	}

	query := r.URL.Query()
	fromStr := query.Get("from")
	if fromStr == "" {
		h.logger.Warn("GET /providers/{id}/schedule - Missing from")
		handlers.RespondBadRequest(w, msgMissingFrom)
		return
	}

	from, err := handlers.ParseDate(fromStr, h.location)
	if err != nil {
		h.logger.Warn("GET /providers/{id}/schedule - Invalid from: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	until := from.AddDate(0, 0, 1)
	if untilStr := query.Get("until"); untilStr != "" {
		until, err = handlers.ParseDate(untilStr, h.location)
		if err != nil {
			h.logger.Warn("GET /providers/{id}/schedule - Invalid until: %v", err)
			handlers.RespondBadRequest(w, msgInvalidDate)
			return
		}
	}

	result, err := h.useCase.Execute(r.Context(), &getSchedule.Request{
		ProviderID: providerID,
		From:       from,
		Until:      until,
	})
	if err != nil {
		switch {
		case errors.Is(err, getSchedule.ErrInvalidInput):
			h.logger.Warn("GET /providers/{id}/schedule - Invalid range: provider_id=%d, error=%v", providerID, err)
			handlers.RespondBadRequest(w, msgInvalidRange)

		case errors.Is(err, getSchedule.ErrProviderNotFound):
			h.logger.Warn("GET /providers/{id}/schedule - Provider not found: provider_id=%d", providerID)
			handlers.RespondNotFound(w, msgProviderNotFound)

		default:
			h.logger.Error("GET /providers/{id}/schedule - Failed to get schedule: provider_id=%d, error=%v", providerID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /providers/{id}/schedule - Schedule retrieved successfully: provider_id=%d, days=%d",
		providerID, len(result.Days))
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result, h.location))
}

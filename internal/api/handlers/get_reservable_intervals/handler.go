package get_reservable_intervals

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/m04kA/SMC-ScheduleService/internal/api/handlers"
	findReservable "github.com/m04kA/SMC-ScheduleService/internal/usecase/find_reservable_intervals"
)

const (
	msgInvalidProviderID  = "некорректный ID поставщика"
	msgMissingServiceKind = "параметр serviceKind обязателен"
	msgMissingFrom        = "параметр from обязателен"
	msgInvalidDate        = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgInvalidRange       = "некорректный диапазон дат"
	msgUnknownServiceKind = "неизвестный вид услуги"
	msgProviderNotFound   = "поставщик не найден"
)

type Handler struct {
	useCase  FindReservableIntervalsUseCase
	location *time.Location
	logger   Logger
}

func NewHandler(useCase FindReservableIntervalsUseCase, location *time.Location, logger Logger) *Handler {
	return &Handler{
		useCase:  useCase,
		location: location,
		logger:   logger,
	}
}

// Handle GET /api/v1/reservable-intervals
// Query params: providerId, serviceKind, from (required), until (optional, default from + 1 day)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	providerID, err := strconv.ParseInt(query.Get("providerId"), 10, 64)
	if err != nil || providerID <= 0 {
		h.logger.Warn("GET /reservable-intervals - Invalid provider ID: %s", query.Get("providerId"))
		handlers.RespondBadRequest(w, msgInvalidProviderID)
		return
	}

	serviceKind := query.Get("serviceKind")
	if serviceKind == "" {
		h.logger.Warn("GET /reservable-intervals - Missing service kind")
		handlers.RespondBadRequest(w, msgMissingServiceKind)
		return
	}

	fromStr := query.Get("from")
	if fromStr == "" {
		h.logger.Warn("GET /reservable-intervals - Missing from")
		handlers.RespondBadRequest(w, msgMissingFrom)
		return
	}

	from, err := handlers.ParseDate(fromStr, h.location)
	if err != nil {
		h.logger.Warn("GET /reservable-intervals - Invalid from: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	until := from.AddDate(0, 0, 1)
	if untilStr := query.Get("until"); untilStr != "" {
		until, err = handlers.ParseDate(untilStr, h.location)
		if err != nil {
			h.logger.Warn("GET /reservable-intervals - Invalid until: %v", err)
			handlers.RespondBadRequest(w, msgInvalidDate)
			return
		}
	}

	result, err := h.useCase.Execute(r.Context(), &findReservable.Request{
		ProviderID:  providerID,
		ServiceKind: serviceKind,
		From:        from,
		Until:       until,
	})
	if err != nil {
		switch {
		case errors.Is(err, findReservable.ErrInvalidInput):
			h.logger.Warn("GET /reservable-intervals - Invalid range: provider_id=%d, error=%v", providerID, err)
			handlers.RespondBadRequest(w, msgInvalidRange)

		case errors.Is(err, findReservable.ErrUnknownServiceKind):
			h.logger.Warn("GET /reservable-intervals - Unknown service kind: kind=%s", serviceKind)
			handlers.RespondBadRequest(w, msgUnknownServiceKind)

		case errors.Is(err, findReservable.ErrProviderNotFound):
			h.logger.Warn("GET /reservable-intervals - Provider not found: provider_id=%d", providerID)
			handlers.RespondNotFound(w, msgProviderNotFound)

		default:
			h.logger.Error("GET /reservable-intervals - Failed to find intervals: provider_id=%d, kind=%s, error=%v",
				providerID, serviceKind, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /reservable-intervals - Intervals retrieved successfully: provider_id=%d, kind=%s, days=%d",
		providerID, serviceKind, len(result.Days))
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result, h.location))
}

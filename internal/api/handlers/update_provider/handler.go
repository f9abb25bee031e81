package update_provider

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-ScheduleService/internal/api/handlers"
	"github.com/m04kA/SMC-ScheduleService/internal/service/providers"
	"github.com/m04kA/SMC-ScheduleService/internal/service/providers/models"
)

const (
	msgInvalidProviderID  = "некорректный ID поставщика"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidData        = "некорректные контактные данные"
	msgNotFound           = "поставщик не найден"
	msgDuplicateEmail     = "поставщик с таким email уже существует"
)

type Handler struct {
	service ProviderService
	logger  Logger
}

func NewHandler(service ProviderService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle PUT /api/v1/providers/{providerId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	providerID, err := strconv.ParseInt(vars["providerId"], 10, 64)
	if err != nil || providerID <= 0 {
		h.logger.Warn("PUT /providers/{id} - Invalid provider ID: %s", vars["providerId"])
		handlers.RespondBadRequest(w, msgInvalidProviderID)
		return
	}

	var req models.UpdateContactInfoRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /providers/{id} - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.UpdateContactInfo(r.Context(), providerID, &req)
	if err != nil {
		switch {
		case errors.Is(err, providers.ErrProviderNotFound):
			h.logger.Warn("PUT /providers/{id} - Provider not found: provider_id=%d", providerID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, providers.ErrInvalidInput):
			h.logger.Warn("PUT /providers/{id} - Invalid data: provider_id=%d, error=%v", providerID, err)
			handlers.RespondBadRequest(w, msgInvalidData)

		case errors.Is(err, providers.ErrDuplicateEmail):
			h.logger.Warn("PUT /providers/{id} - Duplicate email: provider_id=%d", providerID)
			handlers.RespondConflict(w, msgDuplicateEmail)

		default:
			h.logger.Error("PUT /providers/{id} - Failed to update provider: provider_id=%d, error=%v", providerID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /providers/{id} - Provider updated successfully: provider_id=%d", providerID)
	handlers.RespondJSON(w, http.StatusOK, result)
}

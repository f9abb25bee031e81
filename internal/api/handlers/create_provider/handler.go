package create_provider

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-ScheduleService/internal/api/handlers"
	"github.com/m04kA/SMC-ScheduleService/internal/service/providers"
	"github.com/m04kA/SMC-ScheduleService/internal/service/providers/models"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidData        = "некорректные данные поставщика"
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

// Handle POST /api/v1/providers
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req models.CreateProviderRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /providers - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.Create(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, providers.ErrInvalidInput):
			h.logger.Warn("POST /providers - Invalid data: %v", err)
			handlers.RespondBadRequest(w, msgInvalidData)

		case errors.Is(err, providers.ErrDuplicateEmail):
			h.logger.Warn("POST /providers - Duplicate email: email=%s", req.Email)
			handlers.RespondConflict(w, msgDuplicateEmail)

		default:
			h.logger.Error("POST /providers - Failed to create provider: error=%v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /providers - Provider created successfully: provider_id=%d", result.ID)
	handlers.RespondJSON(w, http.StatusCreated, result)
}

package list_providers

import (
	"net/http"

	"github.com/m04kA/SMC-ScheduleService/internal/api/handlers"
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

// Handle GET /api/v1/providers
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.List(r.Context())
	if err != nil {
		h.logger.Error("GET /providers - Failed to list providers: error=%v", err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /providers - Providers retrieved successfully: count=%d", len(result.Providers))
	handlers.RespondJSON(w, http.StatusOK, result)
}

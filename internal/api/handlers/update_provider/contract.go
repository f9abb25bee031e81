package update_provider

import (
	"context"

	"github.com/m04kA/SMC-ScheduleService/internal/service/providers/models"
)

type ProviderService interface {
	UpdateContactInfo(ctx context.Context, id int64, req *models.UpdateContactInfoRequest) (*models.ProviderResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

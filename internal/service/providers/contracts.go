package providers

import (
	"context"

	"github.com/m04kA/SMC-ScheduleService/internal/domain"
)

// ProviderRepository интерфейс репозитория поставщиков
type ProviderRepository interface {
	Create(ctx context.Context, p *domain.Provider) (*domain.Provider, error)
	GetByID(ctx context.Context, id int64) (*domain.Provider, error)
	List(ctx context.Context) ([]*domain.Provider, error)
	UpdateContactInfo(ctx context.Context, id int64, info domain.ContactInfo) (*domain.Provider, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

package find_reservable_intervals

import (
	"context"
	"time"

	"github.com/m04kA/SMC-ScheduleService/internal/domain"
)

// ProviderRepository интерфейс репозитория поставщиков
type ProviderRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Provider, error)
}

// SlotRepository интерфейс репозитория слотов
type SlotRepository interface {
	FindFreeInRange(ctx context.Context, providerID int64, from, until time.Time) ([]domain.TimeSlot, error)
}

// DurationProvider длительность услуги по её виду
type DurationProvider interface {
	Duration(kind domain.ServiceKind) (time.Duration, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

package apply_schedule

import (
	"context"

	"github.com/m04kA/SMC-ScheduleService/internal/domain"
	"github.com/m04kA/SMC-ScheduleService/internal/integrations/events"
	"github.com/m04kA/SMC-ScheduleService/pkg/locker"
)

// ProviderRepository интерфейс репозитория поставщиков
type ProviderRepository interface {
	LockForUpdate(ctx context.Context, id int64) error
}

// SlotRepository интерфейс репозитория слотов
type SlotRepository interface {
	FindByProvider(ctx context.Context, providerID int64) ([]domain.TimeSlot, error)
	Insert(ctx context.Context, slots []domain.TimeSlot) error
	Delete(ctx context.Context, slots []domain.TimeSlot) error
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// Locker блокировка изменений расписания поставщика
type Locker interface {
	Lock(ctx context.Context, key string) (locker.UnlockFunc, error)
}

// EventPublisher публикует события после фиксации транзакции
type EventPublisher interface {
	Publish(ctx context.Context, event events.Event) error
}

// Metrics доменные метрики
type Metrics interface {
	IncConflict(kind string)
	AddSlotsWritten(op string, n int)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

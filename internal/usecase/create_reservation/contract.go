package create_reservation

import (
	"context"
	"time"

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
	FindInRange(ctx context.Context, providerID int64, from, until time.Time) ([]domain.TimeSlot, error)
	Bind(ctx context.Context, reservationID int64, keys []domain.SlotKey) error
}

// ReservationRepository интерфейс репозитория бронирований
type ReservationRepository interface {
	Create(ctx context.Context, res *domain.Reservation) (*domain.Reservation, error)
}

// DurationProvider длительность услуги по её виду
type DurationProvider interface {
	Duration(kind domain.ServiceKind) (time.Duration, error)
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
	IncReservation(action string)
	IncConflict(kind string)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

package create_reservation

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-ScheduleService/internal/domain"
	"github.com/m04kA/SMC-ScheduleService/internal/grid"
	providerRepo "github.com/m04kA/SMC-ScheduleService/internal/infra/storage/provider"
	slotRepo "github.com/m04kA/SMC-ScheduleService/internal/infra/storage/slot"
	"github.com/m04kA/SMC-ScheduleService/internal/integrations/events"
	"github.com/m04kA/SMC-ScheduleService/internal/service/reservations/models"
	"github.com/m04kA/SMC-ScheduleService/pkg/locker"
	"github.com/m04kA/SMC-ScheduleService/pkg/ptr"
)

// UseCase use case для создания бронирования
type UseCase struct {
	providerRepo    ProviderRepository
	slotRepo        SlotRepository
	reservationRepo ReservationRepository
	durations       DurationProvider
	txManager       TransactionManager
	locker          Locker
	publisher       EventPublisher
	metrics         Metrics
	location        *time.Location
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	providerRepo ProviderRepository,
	slotRepo SlotRepository,
	reservationRepo ReservationRepository,
	durations DurationProvider,
	txManager TransactionManager,
	locker Locker,
	publisher EventPublisher,
	metrics Metrics,
	location *time.Location,
	logger Logger,
) *UseCase {
	return &UseCase{
		providerRepo:    providerRepo,
		slotRepo:        slotRepo,
		reservationRepo: reservationRepo,
		durations:       durations,
		txManager:       txManager,
		locker:          locker,
		publisher:       publisher,
		metrics:         metrics,
		location:        location,
		logger:          logger,
	}
}

// Execute выполняет use case создания бронирования.
// Слоты и запись бронирования сохраняются в одной сериализуемой транзакции:
// если хотя бы одного слота нет или он занят, ничего не привязывается.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*models.ReservationResponse, error) {
	uc.logger.Info("CreateReservation: provider=%d, start=%s, kind=%s",
		req.ProviderID, req.Start.Format(time.RFC3339), req.ServiceKind)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateReservation: validation failed: %v", err)
		return nil, err
	}

	// 2. Определяем длительность услуги
	kind, err := domain.ParseServiceKind(req.ServiceKind)
	if err != nil {
		uc.logger.Warn("CreateReservation: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrUnknownServiceKind, err)
	}

	duration, err := uc.durations.Duration(kind)
	if err != nil {
		uc.logger.Error("CreateReservation: no duration for kind=%s: %v", kind, err)
		return nil, fmt.Errorf("%w: %v", ErrConfiguration, err)
	}

	// 3. Берем блокировку поставщика
	unlock, err := uc.locker.Lock(ctx, locker.ProviderKey(req.ProviderID))
	if err != nil {
		uc.logger.Error("CreateReservation: failed to lock provider id=%d: %v", req.ProviderID, err)
		return nil, fmt.Errorf("%w: failed to lock provider: %v", ErrInternal, err)
	}
	defer func() {
		if err := unlock(context.WithoutCancel(ctx)); err != nil {
			uc.logger.Warn("CreateReservation: failed to release lock for provider id=%d: %v", req.ProviderID, err)
		}
	}()

	var result *domain.Reservation

	// 4. Захватываем слоты и сохраняем бронирование
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 4.1. Блокируем строку поставщика
		if err := uc.providerRepo.LockForUpdate(txCtx, req.ProviderID); err != nil {
			if errors.Is(err, providerRepo.ErrProviderNotFound) {
				return ErrProviderNotFound
			}
			return fmt.Errorf("%w: failed to lock provider row: %v", ErrInternal, err)
		}

		// 4.2. Слоты, покрывающие интервал услуги
		existing, err := uc.slotRepo.FindInRange(txCtx, req.ProviderID, req.Start, req.Start.Add(duration))
		if err != nil {
			return fmt.Errorf("%w: failed to get slots: %v", ErrInternal, err)
		}

		// 4.3. Проверяем, что каждый шаг кванта свободен
		keys, err := grid.ClaimRun(0, req.ProviderID, req.Start, duration, existing)
		if err != nil {
			return translateClaimError(err)
		}

		// 4.4. Сохраняем бронирование
		created, err := uc.reservationRepo.Create(txCtx, &domain.Reservation{
			ProviderID:  req.ProviderID,
			Start:       req.Start,
			Duration:    duration,
			ServiceKind: kind,
			Customer:    req.Customer,
		})
		if err != nil {
			return fmt.Errorf("%w: failed to create reservation: %v", ErrInternal, err)
		}

		// 4.5. Привязываем слоты
		if err := uc.slotRepo.Bind(txCtx, created.ID, keys); err != nil {
			if errors.Is(err, slotRepo.ErrSlotsChanged) {
				return fmt.Errorf("%w: %v", ErrTimeSlotsAlreadyReserved, err)
			}
			return fmt.Errorf("%w: failed to bind slots: %v", ErrInternal, err)
		}

		created.Slots = keys
		result = created
		return nil
	})
	if err != nil {
		switch {
		case errors.Is(err, ErrProviderNotFound):
			uc.logger.Warn("CreateReservation: provider id=%d not found", req.ProviderID)
		case errors.Is(err, ErrNoAvailableTimeSlots), errors.Is(err, ErrTimeSlotsAlreadyReserved):
			uc.metrics.IncConflict("reservation")
			uc.logger.Warn("CreateReservation: rejected for provider id=%d: %v", req.ProviderID, err)
		case errors.Is(err, ErrConfiguration):
			uc.logger.Error("CreateReservation: configuration error: %v", err)
		case errors.Is(err, ErrInternal):
			uc.logger.Error("CreateReservation: failed for provider id=%d: %v", req.ProviderID, err)
		default:
			uc.logger.Error("CreateReservation: transaction failed for provider id=%d: %v", req.ProviderID, err)
			return nil, fmt.Errorf("%w: transaction: %v", ErrInternal, err)
		}
		return nil, err
	}

	uc.metrics.IncReservation("created")
	uc.logger.Info("CreateReservation: created reservation id=%d, %d slots", result.ID, len(result.Slots))

	// 5. Публикуем событие после фиксации
	event := events.Event{
		Type:          events.TypeReservationCreated,
		ProviderID:    result.ProviderID,
		ReservationID: ptr.Ptr(result.ID),
		Start:         ptr.Ptr(result.Start),
		DurationMin:   int(result.Duration / time.Minute),
		ServiceKind:   string(result.ServiceKind),
		SlotsAdded:    len(result.Slots),
	}
	if err := uc.publisher.Publish(ctx, event); err != nil {
		uc.logger.Warn("CreateReservation: failed to publish event for reservation id=%d: %v", result.ID, err)
	}

	return models.FromDomainReservation(result, uc.location), nil
}

// translateClaimError переводит ошибки захвата слотов в ошибки use case
func translateClaimError(err error) error {
	switch {
	case errors.Is(err, grid.ErrNoAvailableTimeSlots):
		return fmt.Errorf("%w: %v", ErrNoAvailableTimeSlots, err)
	case errors.Is(err, grid.ErrTimeSlotsAlreadyReserved):
		return fmt.Errorf("%w: %v", ErrTimeSlotsAlreadyReserved, err)
	case errors.Is(err, grid.ErrConfiguration):
		return fmt.Errorf("%w: %v", ErrConfiguration, err)
	default:
		return fmt.Errorf("%w: claim failed: %v", ErrInternal, err)
	}
}

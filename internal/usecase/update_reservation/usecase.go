package update_reservation

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-ScheduleService/internal/domain"
	"github.com/m04kA/SMC-ScheduleService/internal/grid"
	reservationRepo "github.com/m04kA/SMC-ScheduleService/internal/infra/storage/reservation"
	slotRepo "github.com/m04kA/SMC-ScheduleService/internal/infra/storage/slot"
	"github.com/m04kA/SMC-ScheduleService/internal/integrations/events"
	"github.com/m04kA/SMC-ScheduleService/internal/service/reservations/models"
	"github.com/m04kA/SMC-ScheduleService/pkg/locker"
	"github.com/m04kA/SMC-ScheduleService/pkg/ptr"
)

// UseCase use case для изменения времени, услуги и контактов бронирования
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

// Execute выполняет use case изменения бронирования.
// Собственные слоты бронирования можно захватить повторно,
// слоты, которые больше не покрываются, освобождаются.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*models.ReservationResponse, error) {
	uc.logger.Info("UpdateReservation: reservation=%d, start=%s, kind=%s",
		req.ReservationID, req.Start.Format(time.RFC3339), req.ServiceKind)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("UpdateReservation: validation failed: %v", err)
		return nil, err
	}

	// 2. Определяем длительность услуги
	kind, err := domain.ParseServiceKind(req.ServiceKind)
	if err != nil {
		uc.logger.Warn("UpdateReservation: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrUnknownServiceKind, err)
	}

	duration, err := uc.durations.Duration(kind)
	if err != nil {
		uc.logger.Error("UpdateReservation: no duration for kind=%s: %v", kind, err)
		return nil, fmt.Errorf("%w: %v", ErrConfiguration, err)
	}

	// 3. Находим поставщика бронирования
	existing, err := uc.reservationRepo.GetByID(ctx, req.ReservationID)
	if err != nil {
		if errors.Is(err, reservationRepo.ErrReservationNotFound) {
			uc.logger.Warn("UpdateReservation: reservation id=%d not found", req.ReservationID)
			return nil, ErrReservationNotFound
		}
		uc.logger.Error("UpdateReservation: failed to get reservation id=%d: %v", req.ReservationID, err)
		return nil, fmt.Errorf("%w: failed to get reservation: %v", ErrInternal, err)
	}
	providerID := existing.ProviderID

	// 4. Берем блокировку поставщика
	unlock, err := uc.locker.Lock(ctx, locker.ProviderKey(providerID))
	if err != nil {
		uc.logger.Error("UpdateReservation: failed to lock provider id=%d: %v", providerID, err)
		return nil, fmt.Errorf("%w: failed to lock provider: %v", ErrInternal, err)
	}
	defer func() {
		if err := unlock(context.WithoutCancel(ctx)); err != nil {
			uc.logger.Warn("UpdateReservation: failed to release lock for provider id=%d: %v", providerID, err)
		}
	}()

	var (
		result   *domain.Reservation
		released []domain.SlotKey
	)

	// 5. Перезахватываем слоты в одной транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 5.1. Блокируем строку поставщика
		if err := uc.providerRepo.LockForUpdate(txCtx, providerID); err != nil {
			return fmt.Errorf("%w: failed to lock provider row: %v", ErrInternal, err)
		}

		// 5.2. Перечитываем бронирование под блокировкой
		current, err := uc.reservationRepo.GetByID(txCtx, req.ReservationID)
		if err != nil {
			if errors.Is(err, reservationRepo.ErrReservationNotFound) {
				return ErrReservationNotFound
			}
			return fmt.Errorf("%w: failed to get reservation: %v", ErrInternal, err)
		}

		// 5.3. Слоты нового интервала
		slots, err := uc.slotRepo.FindInRange(txCtx, providerID, req.Start, req.Start.Add(duration))
		if err != nil {
			return fmt.Errorf("%w: failed to get slots: %v", ErrInternal, err)
		}

		keys, err := grid.ClaimRun(current.ID, providerID, req.Start, duration, slots)
		if err != nil {
			return translateClaimError(err)
		}

		// 5.4. Освобождаем слоты, которые больше не нужны
		released = grid.ReleasedKeys(current.Slots, keys)
		if len(released) > 0 {
			if err := uc.slotRepo.Release(txCtx, current.ID, released); err != nil {
				return fmt.Errorf("%w: failed to release slots: %v", ErrInternal, err)
			}
		}

		// 5.5. Привязываем новые
		if err := uc.slotRepo.Bind(txCtx, current.ID, keys); err != nil {
			if errors.Is(err, slotRepo.ErrSlotsChanged) {
				return fmt.Errorf("%w: %v", ErrTimeSlotsAlreadyReserved, err)
			}
			return fmt.Errorf("%w: failed to bind slots: %v", ErrInternal, err)
		}

		// 5.6. Сохраняем бронирование
		current.Start = req.Start
		current.Duration = duration
		current.ServiceKind = kind
		current.Customer = req.Customer

		updated, err := uc.reservationRepo.Update(txCtx, current)
		if err != nil {
			if errors.Is(err, reservationRepo.ErrReservationNotFound) {
				return ErrReservationNotFound
			}
			return fmt.Errorf("%w: failed to update reservation: %v", ErrInternal, err)
		}

		updated.Slots = keys
		result = updated
		return nil
	})
	if err != nil {
		switch {
		case errors.Is(err, ErrReservationNotFound):
			uc.logger.Warn("UpdateReservation: reservation id=%d not found", req.ReservationID)
		case errors.Is(err, ErrNoAvailableTimeSlots), errors.Is(err, ErrTimeSlotsAlreadyReserved):
			uc.metrics.IncConflict("reservation")
			uc.logger.Warn("UpdateReservation: rejected for reservation id=%d: %v", req.ReservationID, err)
		case errors.Is(err, ErrConfiguration):
			uc.logger.Error("UpdateReservation: configuration error: %v", err)
		case errors.Is(err, ErrInternal):
			uc.logger.Error("UpdateReservation: failed for reservation id=%d: %v", req.ReservationID, err)
		default:
			uc.logger.Error("UpdateReservation: transaction failed for reservation id=%d: %v", req.ReservationID, err)
			return nil, fmt.Errorf("%w: transaction: %v", ErrInternal, err)
		}
		return nil, err
	}

	uc.metrics.IncReservation("updated")
	uc.logger.Info("UpdateReservation: reservation id=%d updated, %d slots held, %d released",
		result.ID, len(result.Slots), len(released))

	// 6. Публикуем событие после фиксации
	event := events.Event{
		Type:          events.TypeReservationUpdated,
		ProviderID:    providerID,
		ReservationID: ptr.Ptr(result.ID),
		Start:         ptr.Ptr(result.Start),
		DurationMin:   int(result.Duration / time.Minute),
		ServiceKind:   string(result.ServiceKind),
		SlotsAdded:    len(result.Slots),
		SlotsRemoved:  len(released),
	}
	if err := uc.publisher.Publish(ctx, event); err != nil {
		uc.logger.Warn("UpdateReservation: failed to publish event for reservation id=%d: %v", result.ID, err)
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

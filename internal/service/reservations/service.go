package reservations

import (
	"context"
	"errors"
	"fmt"
	"time"

	reservationRepo "github.com/m04kA/SMC-ScheduleService/internal/infra/storage/reservation"
	"github.com/m04kA/SMC-ScheduleService/internal/integrations/events"
	"github.com/m04kA/SMC-ScheduleService/internal/service/reservations/models"
	"github.com/m04kA/SMC-ScheduleService/pkg/locker"
	"github.com/m04kA/SMC-ScheduleService/pkg/ptr"
)

// Service сервис чтения и отмены бронирований
type Service struct {
	reservationRepo ReservationRepository
	providerRepo    ProviderRepository
	slotRepo        SlotRepository
	txManager       TransactionManager
	locker          Locker
	publisher       EventPublisher
	metrics         Metrics
	location        *time.Location
	logger          Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(
	reservationRepo ReservationRepository,
	providerRepo ProviderRepository,
	slotRepo SlotRepository,
	txManager TransactionManager,
	locker Locker,
	publisher EventPublisher,
	metrics Metrics,
	location *time.Location,
	logger Logger,
) *Service {
	return &Service{
		reservationRepo: reservationRepo,
		providerRepo:    providerRepo,
		slotRepo:        slotRepo,
		txManager:       txManager,
		locker:          locker,
		publisher:       publisher,
		metrics:         metrics,
		location:        location,
		logger:          logger,
	}
}

// GetByID получает бронирование вместе с его слотами
func (s *Service) GetByID(ctx context.Context, id int64) (*models.ReservationResponse, error) {
	if id <= 0 {
		return nil, fmt.Errorf("%w: reservation id must be positive", ErrInvalidInput)
	}

	res, err := s.reservationRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, reservationRepo.ErrReservationNotFound) {
			s.logger.Warn("GetReservation: reservation id=%d not found", id)
			return nil, ErrReservationNotFound
		}
		s.logger.Error("GetReservation: repository error for reservation id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainReservation(res, s.location), nil
}

// Cancel освобождает все слоты бронирования и удаляет его.
// Освобожденные слоты остаются в сетке свободными.
func (s *Service) Cancel(ctx context.Context, id int64) error {
	s.logger.Info("CancelReservation: reservation id=%d", id)

	if id <= 0 {
		return fmt.Errorf("%w: reservation id must be positive", ErrInvalidInput)
	}

	// 1. Находим поставщика бронирования
	res, err := s.reservationRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, reservationRepo.ErrReservationNotFound) {
			s.logger.Warn("CancelReservation: reservation id=%d not found", id)
			return ErrReservationNotFound
		}
		s.logger.Error("CancelReservation: failed to get reservation id=%d: %v", id, err)
		return fmt.Errorf("%w: Cancel - failed to get reservation: %v", ErrInternal, err)
	}

	// 2. Берем блокировку поставщика
	unlock, err := s.locker.Lock(ctx, locker.ProviderKey(res.ProviderID))
	if err != nil {
		s.logger.Error("CancelReservation: failed to lock provider id=%d: %v", res.ProviderID, err)
		return fmt.Errorf("%w: Cancel - failed to lock provider: %v", ErrInternal, err)
	}
	defer func() {
		if err := unlock(context.WithoutCancel(ctx)); err != nil {
			s.logger.Warn("CancelReservation: failed to release lock for provider id=%d: %v", res.ProviderID, err)
		}
	}()

	var released int64

	// 3. Освобождаем слоты и удаляем бронирование в одной транзакции
	err = s.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		if err := s.providerRepo.LockForUpdate(txCtx, res.ProviderID); err != nil {
			return fmt.Errorf("%w: failed to lock provider row: %v", ErrInternal, err)
		}

		n, err := s.slotRepo.ReleaseAll(txCtx, id)
		if err != nil {
			return fmt.Errorf("%w: failed to release slots: %v", ErrInternal, err)
		}
		released = n

		if err := s.reservationRepo.Delete(txCtx, id); err != nil {
			if errors.Is(err, reservationRepo.ErrReservationNotFound) {
				return ErrReservationNotFound
			}
			return fmt.Errorf("%w: failed to delete reservation: %v", ErrInternal, err)
		}

		return nil
	})
	switch {
	case err == nil:
	case errors.Is(err, ErrReservationNotFound):
		s.logger.Warn("CancelReservation: reservation id=%d deleted concurrently", id)
		return err
	case errors.Is(err, ErrInternal):
		s.logger.Error("CancelReservation: transaction failed for reservation id=%d: %v", id, err)
		return err
	default:
		s.logger.Error("CancelReservation: transaction failed for reservation id=%d: %v", id, err)
		return fmt.Errorf("%w: Cancel - transaction: %v", ErrInternal, err)
	}

	s.metrics.IncReservation("cancelled")
	s.logger.Info("CancelReservation: reservation id=%d cancelled, %d slots released", id, released)

	// 4. Публикуем событие после фиксации
	event := events.Event{
		Type:          events.TypeReservationCanceled,
		ProviderID:    res.ProviderID,
		ReservationID: ptr.Ptr(id),
		Start:         ptr.Ptr(res.Start),
		DurationMin:   int(res.Duration / time.Minute),
		ServiceKind:   string(res.ServiceKind),
		SlotsRemoved:  int(released),
	}
	if err := s.publisher.Publish(ctx, event); err != nil {
		s.logger.Warn("CancelReservation: failed to publish event for reservation id=%d: %v", id, err)
	}

	return nil
}

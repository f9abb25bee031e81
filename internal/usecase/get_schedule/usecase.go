package get_schedule

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-ScheduleService/internal/domain"
	"github.com/m04kA/SMC-ScheduleService/internal/grid"
	providerRepo "github.com/m04kA/SMC-ScheduleService/internal/infra/storage/provider"
)

// UseCase use case для получения расписания поставщика в виде интервалов
type UseCase struct {
	providerRepo    ProviderRepository
	slotRepo        SlotRepository
	reservationRepo ReservationRepository
	txManager       TransactionManager
	location        *time.Location
	envelope        domain.DayEnvelope
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	providerRepo ProviderRepository,
	slotRepo SlotRepository,
	reservationRepo ReservationRepository,
	txManager TransactionManager,
	location *time.Location,
	envelope domain.DayEnvelope,
	logger Logger,
) *UseCase {
	return &UseCase{
		providerRepo:    providerRepo,
		slotRepo:        slotRepo,
		reservationRepo: reservationRepo,
		txManager:       txManager,
		location:        location,
		envelope:        envelope,
		logger:          logger,
	}
}

// Execute выполняет use case получения расписания.
// Чтение идет в одной read-only транзакции, поэтому все дни диапазона согласованы.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetSchedule: provider=%d, from=%s, until=%s",
		req.ProviderID, req.From.Format(domain.DateFormat), req.Until.Format(domain.DateFormat))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetSchedule: validation failed: %v", err)
		return nil, err
	}

	from := localDate(req.From, uc.location)
	until := localDate(req.Until, uc.location)

	var (
		slots        []domain.TimeSlot
		reservations map[int64]*domain.Reservation
	)

	// 2. Читаем слоты и бронирования в одном снимке
	err := uc.txManager.DoReadOnly(ctx, func(txCtx context.Context) error {
		// 2.1. Проверяем существование поставщика
		if _, err := uc.providerRepo.GetByID(txCtx, req.ProviderID); err != nil {
			if errors.Is(err, providerRepo.ErrProviderNotFound) {
				return ErrProviderNotFound
			}
			return fmt.Errorf("%w: failed to get provider: %v", ErrInternal, err)
		}

		// 2.2. Получаем слоты диапазона
		found, err := uc.slotRepo.FindInRange(txCtx, req.ProviderID, from, until)
		if err != nil {
			return fmt.Errorf("%w: failed to get slots: %v", ErrInternal, err)
		}
		slots = found

		// 2.3. Загружаем бронирования для подписей занятых интервалов
		reservations, err = uc.loadReservations(txCtx, slots)
		return err
	})
	if err != nil {
		if errors.Is(err, ErrProviderNotFound) {
			uc.logger.Warn("GetSchedule: provider id=%d not found", req.ProviderID)
		} else {
			uc.logger.Error("GetSchedule: failed to read schedule for provider id=%d: %v", req.ProviderID, err)
		}
		return nil, err
	}

	// 3. Группируем по датам и склеиваем в интервалы
	groups := grid.GroupByDate(slots, uc.location)
	dates := domain.DatesBetween(from, until)

	days := make([]domain.DaySchedule, 0, len(dates))
	for _, date := range dates {
		intervals, err := grid.CoalesceDay(date, groups[domain.DateKey(date)], uc.envelope)
		if err != nil {
			uc.logger.Error("GetSchedule: failed to coalesce %s: %v", domain.DateKey(date), err)
			return nil, fmt.Errorf("%w: failed to coalesce day: %v", ErrInternal, err)
		}

		enrich(intervals, reservations)
		days = append(days, domain.DaySchedule{Date: date, Intervals: intervals})
	}

	uc.logger.Info("GetSchedule: provider=%d, %d days, %d slots", req.ProviderID, len(days), len(slots))

	return &Response{ProviderID: req.ProviderID, Days: days}, nil
}

func (uc *UseCase) loadReservations(ctx context.Context, slots []domain.TimeSlot) (map[int64]*domain.Reservation, error) {
	seen := make(map[int64]bool)
	ids := make([]int64, 0)
	for _, s := range slots {
		if s.ReservationID != nil && !seen[*s.ReservationID] {
			seen[*s.ReservationID] = true
			ids = append(ids, *s.ReservationID)
		}
	}

	byID := make(map[int64]*domain.Reservation, len(ids))
	if len(ids) == 0 {
		return byID, nil
	}

	list, err := uc.reservationRepo.GetByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to get reservations: %v", ErrInternal, err)
	}
	for _, r := range list {
		byID[r.ID] = r
	}

	return byID, nil
}

// enrich дополняет ссылки на бронирования видом услуги и именем клиента
func enrich(intervals []domain.ScheduleInterval, reservations map[int64]*domain.Reservation) {
	for i := range intervals {
		ref := intervals[i].Reservation
		if ref == nil {
			continue
		}
		if r, ok := reservations[ref.ID]; ok {
			ref.ServiceKind = r.ServiceKind
			ref.CustomerName = r.Customer.Name
		}
	}
}

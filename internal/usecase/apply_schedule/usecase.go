package apply_schedule

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/m04kA/SMC-ScheduleService/internal/domain"
	"github.com/m04kA/SMC-ScheduleService/internal/grid"
	providerRepo "github.com/m04kA/SMC-ScheduleService/internal/infra/storage/provider"
	"github.com/m04kA/SMC-ScheduleService/internal/integrations/events"
	"github.com/m04kA/SMC-ScheduleService/pkg/locker"
)

// UseCase use case для создания и изменения расписания поставщика
type UseCase struct {
	providerRepo ProviderRepository
	slotRepo     SlotRepository
	txManager    TransactionManager
	locker       Locker
	publisher    EventPublisher
	metrics      Metrics
	location     *time.Location
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	providerRepo ProviderRepository,
	slotRepo SlotRepository,
	txManager TransactionManager,
	locker Locker,
	publisher EventPublisher,
	metrics Metrics,
	location *time.Location,
	logger Logger,
) *UseCase {
	return &UseCase{
		providerRepo: providerRepo,
		slotRepo:     slotRepo,
		txManager:    txManager,
		locker:       locker,
		publisher:    publisher,
		metrics:      metrics,
		location:     location,
		logger:       logger,
	}
}

// Execute применяет план доступности к поставщику.
// В режиме создания слоты добавляются на пустые даты.
// В режиме изменения план заменяет всю сетку: свободные слоты вне плана удаляются,
// новые добавляются, занятые не трогаются.
// Если план задевает занятый слот, ничего не записывается.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("ApplySchedule: provider=%d, mode=%s, dates=%d", req.ProviderID, req.Mode, len(req.Plans))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("ApplySchedule: validation failed: %v", err)
		return nil, err
	}

	// 2. Приводим даты к часовому поясу расписания
	plans := make([]domain.DayPlan, 0, len(req.Plans))
	for _, p := range req.Plans {
		plans = append(plans, domain.DayPlan{Date: localDate(p.Date, uc.location), Windows: p.Windows})
	}
	sort.SliceStable(plans, func(i, j int) bool {
		return plans[i].Date.Before(plans[j].Date)
	})

	// 3. Генерируем предлагаемые слоты
	proposed, err := grid.GeneratePlan(req.ProviderID, plans)
	if err != nil {
		uc.logger.Warn("ApplySchedule: failed to generate slots: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	// 4. Берем блокировку поставщика
	unlock, err := uc.locker.Lock(ctx, locker.ProviderKey(req.ProviderID))
	if err != nil {
		uc.logger.Error("ApplySchedule: failed to lock provider id=%d: %v", req.ProviderID, err)
		return nil, fmt.Errorf("%w: failed to lock provider: %v", ErrInternal, err)
	}
	defer func() {
		if err := unlock(context.WithoutCancel(ctx)); err != nil {
			uc.logger.Warn("ApplySchedule: failed to release lock for provider id=%d: %v", req.ProviderID, err)
		}
	}()

	var removed, added []domain.TimeSlot

	// 5. Сверяем план с текущими слотами и записываем разницу
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 5.1. Блокируем строку поставщика
		if err := uc.providerRepo.LockForUpdate(txCtx, req.ProviderID); err != nil {
			if errors.Is(err, providerRepo.ErrProviderNotFound) {
				return ErrProviderNotFound
			}
			return fmt.Errorf("%w: failed to lock provider row: %v", ErrInternal, err)
		}

		// 5.2. Текущие слоты поставщика
		current, err := uc.slotRepo.FindByProvider(txCtx, req.ProviderID)
		if err != nil {
			return fmt.Errorf("%w: failed to get slots: %v", ErrInternal, err)
		}

		// 5.3. В режиме создания даты плана должны быть пустыми, слоты только добавляются
		if req.Mode == ModeCreate {
			if busy := uc.slotsOnPlanDates(current, plans); len(busy) > 0 {
				return fmt.Errorf("%w: %s", ErrScheduleAlreadyExists, domain.DateKey(busy[0].Start.In(uc.location)))
			}
			added = proposed
			removed = nil
		} else {
			// 5.4. Слияние со всеми слотами поставщика с сохранением занятых
			merged, err := grid.MergeSlots(current, proposed)
			if err != nil {
				if errors.Is(err, grid.ErrInvalidSchedule) {
					return fmt.Errorf("%w: %v", ErrInvalidSchedule, err)
				}
				return fmt.Errorf("%w: merge failed: %v", ErrInternal, err)
			}
			removed, added = grid.DiffSlots(current, merged)
		}

		// 5.5. Удаляем и вставляем
		if len(removed) > 0 {
			if err := uc.slotRepo.Delete(txCtx, removed); err != nil {
				return fmt.Errorf("%w: failed to delete slots: %v", ErrInternal, err)
			}
		}
		if len(added) > 0 {
			if err := uc.slotRepo.Insert(txCtx, added); err != nil {
				return fmt.Errorf("%w: failed to insert slots: %v", ErrInternal, err)
			}
		}

		return nil
	})
	if err != nil {
		switch {
		case errors.Is(err, ErrProviderNotFound):
			uc.logger.Warn("ApplySchedule: provider id=%d not found", req.ProviderID)
		case errors.Is(err, ErrInvalidSchedule), errors.Is(err, ErrScheduleAlreadyExists):
			uc.metrics.IncConflict("schedule")
			uc.logger.Warn("ApplySchedule: rejected for provider id=%d: %v", req.ProviderID, err)
		case errors.Is(err, ErrInternal):
			uc.logger.Error("ApplySchedule: failed for provider id=%d: %v", req.ProviderID, err)
		default:
			uc.logger.Error("ApplySchedule: transaction failed for provider id=%d: %v", req.ProviderID, err)
			return nil, fmt.Errorf("%w: transaction: %v", ErrInternal, err)
		}
		return nil, err
	}

	uc.metrics.AddSlotsWritten("inserted", len(added))
	uc.metrics.AddSlotsWritten("deleted", len(removed))

	uc.logger.Info("ApplySchedule: provider=%d, mode=%s, +%d/-%d slots",
		req.ProviderID, req.Mode, len(added), len(removed))

	dates := make([]time.Time, 0, len(plans))
	dateKeys := make([]string, 0, len(plans))
	for _, p := range plans {
		dates = append(dates, p.Date)
		dateKeys = append(dateKeys, domain.DateKey(p.Date))
	}

	// 6. Публикуем событие после фиксации
	eventType := events.TypeScheduleUpdated
	if req.Mode == ModeCreate {
		eventType = events.TypeScheduleCreated
	}
	event := events.Event{
		Type:         eventType,
		ProviderID:   req.ProviderID,
		Dates:        dateKeys,
		SlotsAdded:   len(added),
		SlotsRemoved: len(removed),
	}
	if err := uc.publisher.Publish(ctx, event); err != nil {
		uc.logger.Warn("ApplySchedule: failed to publish event for provider id=%d: %v", req.ProviderID, err)
	}

	return &Response{
		ProviderID:   req.ProviderID,
		Mode:         req.Mode,
		Dates:        dates,
		SlotsAdded:   len(added),
		SlotsRemoved: len(removed),
	}, nil
}

// slotsOnPlanDates возвращает слоты, лежащие на датах плана
func (uc *UseCase) slotsOnPlanDates(slots []domain.TimeSlot, plans []domain.DayPlan) []domain.TimeSlot {
	planned := make(map[string]bool, len(plans))
	for _, p := range plans {
		planned[domain.DateKey(p.Date)] = true
	}

	out := make([]domain.TimeSlot, 0)
	for _, s := range slots {
		if planned[domain.DateKey(s.Start.In(uc.location))] {
			out = append(out, s)
		}
	}
	return out
}

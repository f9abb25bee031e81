package find_reservable_intervals

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-ScheduleService/internal/domain"
	"github.com/m04kA/SMC-ScheduleService/internal/grid"
	providerRepo "github.com/m04kA/SMC-ScheduleService/internal/infra/storage/provider"
)

// UseCase use case для поиска интервалов, в которые можно записаться на услугу
type UseCase struct {
	providerRepo ProviderRepository
	slotRepo     SlotRepository
	durations    DurationProvider
	txManager    TransactionManager
	location     *time.Location
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	providerRepo ProviderRepository,
	slotRepo SlotRepository,
	durations DurationProvider,
	txManager TransactionManager,
	location *time.Location,
	logger Logger,
) *UseCase {
	return &UseCase{
		providerRepo: providerRepo,
		slotRepo:     slotRepo,
		durations:    durations,
		txManager:    txManager,
		location:     location,
		logger:       logger,
	}
}

// Execute выполняет use case поиска интервалов.
// Перекрывающиеся интервалы возвращаются все, без объединения.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("FindReservableIntervals: provider=%d, kind=%s, from=%s, until=%s",
		req.ProviderID, req.ServiceKind, req.From.Format(domain.DateFormat), req.Until.Format(domain.DateFormat))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("FindReservableIntervals: validation failed: %v", err)
		return nil, err
	}

	// 2. Определяем длительность услуги и число слотов
	kind, err := domain.ParseServiceKind(req.ServiceKind)
	if err != nil {
		uc.logger.Warn("FindReservableIntervals: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrUnknownServiceKind, err)
	}

	duration, err := uc.durations.Duration(kind)
	if err != nil {
		uc.logger.Error("FindReservableIntervals: no duration for kind=%s: %v", kind, err)
		return nil, fmt.Errorf("%w: %v", ErrConfiguration, err)
	}

	n, err := grid.SlotsPerRun(duration)
	if err != nil {
		uc.logger.Error("FindReservableIntervals: bad duration for kind=%s: %v", kind, err)
		return nil, fmt.Errorf("%w: %v", ErrConfiguration, err)
	}

	from := localDate(req.From, uc.location)
	until := localDate(req.Until, uc.location)

	var free []domain.TimeSlot

	// 3. Читаем свободные слоты
	err = uc.txManager.DoReadOnly(ctx, func(txCtx context.Context) error {
		if _, err := uc.providerRepo.GetByID(txCtx, req.ProviderID); err != nil {
			if errors.Is(err, providerRepo.ErrProviderNotFound) {
				return ErrProviderNotFound
			}
			return fmt.Errorf("%w: failed to get provider: %v", ErrInternal, err)
		}

		found, err := uc.slotRepo.FindFreeInRange(txCtx, req.ProviderID, from, until)
		if err != nil {
			return fmt.Errorf("%w: failed to get free slots: %v", ErrInternal, err)
		}
		free = found
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrProviderNotFound) {
			uc.logger.Warn("FindReservableIntervals: provider id=%d not found", req.ProviderID)
		} else {
			uc.logger.Error("FindReservableIntervals: failed to read slots for provider id=%d: %v", req.ProviderID, err)
		}
		return nil, err
	}

	// 4. Для каждой даты ищем окна из n подряд идущих слотов
	groups := grid.GroupByDate(free, uc.location)
	dates := domain.DatesBetween(from, until)

	days := make([]domain.DayReservableIntervals, 0, len(dates))
	total := 0
	for _, date := range dates {
		runs := grid.FindReservableRuns(req.ProviderID, groups[domain.DateKey(date)], n)
		total += len(runs)
		days = append(days, domain.DayReservableIntervals{Date: date, Intervals: runs})
	}

	uc.logger.Info("FindReservableIntervals: provider=%d, kind=%s, found %d intervals", req.ProviderID, kind, total)

	return &Response{
		ProviderID:      req.ProviderID,
		ServiceKind:     kind,
		DurationMinutes: int(duration / time.Minute),
		Days:            days,
	}, nil
}

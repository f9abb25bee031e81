package apply_schedule

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-ScheduleService/internal/domain"
)

const minutesPerDay = 24 * 60

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.ProviderID <= 0 {
		return fmt.Errorf("%w: providerID must be positive", ErrInvalidInput)
	}

	if req.Mode != ModeCreate && req.Mode != ModeUpdate {
		return fmt.Errorf("%w: unknown mode %q", ErrInvalidInput, req.Mode)
	}

	if len(req.Plans) == 0 {
		return fmt.Errorf("%w: at least one date is required", ErrInvalidInput)
	}

	if len(req.Plans) > domain.MaxScheduleRangeDays {
		return fmt.Errorf("%w: at most %d dates per request", ErrInvalidInput, domain.MaxScheduleRangeDays)
	}

	seen := make(map[string]bool, len(req.Plans))
	for _, plan := range req.Plans {
		if plan.Date.IsZero() {
			return fmt.Errorf("%w: date is required", ErrInvalidInput)
		}

		key := domain.DateKey(plan.Date)
		if seen[key] {
			return fmt.Errorf("%w: duplicate date %s", ErrInvalidInput, key)
		}
		seen[key] = true

		for _, w := range plan.Windows {
			if err := validateWindow(w); err != nil {
				return fmt.Errorf("%w: %s: %v", ErrInvalidInput, key, err)
			}
		}
	}

	return nil
}

// validateWindow проверяет, что окно начинается на границе кванта и не выходит за сутки
func validateWindow(w domain.AvailabilityWindow) error {
	start, err := w.Start.Minutes()
	if err != nil {
		return err
	}

	quantum := int(domain.SlotQuantum / time.Minute)
	if start%quantum != 0 {
		return fmt.Errorf("window start %s is not a multiple of %d minutes", w.Start, quantum)
	}

	if w.Duration <= 0 {
		return fmt.Errorf("window %s has non-positive duration", w.Start)
	}

	if start+int(w.Duration/time.Minute) > minutesPerDay {
		return fmt.Errorf("window %s+%s crosses midnight", w.Start, w.Duration)
	}

	return nil
}

// localDate переносит календарную дату t в часовой пояс loc
func localDate(t time.Time, loc *time.Location) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, loc)
}

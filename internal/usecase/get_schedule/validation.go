package get_schedule

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-ScheduleService/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.ProviderID <= 0 {
		return fmt.Errorf("%w: providerID must be positive", ErrInvalidInput)
	}

	if req.From.IsZero() || req.Until.IsZero() {
		return fmt.Errorf("%w: from and until are required", ErrInvalidInput)
	}

	if !req.Until.After(req.From) {
		return fmt.Errorf("%w: until must be after from", ErrInvalidInput)
	}

	if req.Until.Sub(req.From) > time.Duration(domain.MaxScheduleRangeDays)*24*time.Hour {
		return fmt.Errorf("%w: range must not exceed %d days", ErrInvalidInput, domain.MaxScheduleRangeDays)
	}

	return nil
}

// localDate переносит календарную дату t в часовой пояс loc
func localDate(t time.Time, loc *time.Location) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, loc)
}

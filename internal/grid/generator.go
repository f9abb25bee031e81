// Package grid holds the pure slot-grid algorithms: generation, coalescing,
// reservable-run search, plan merging and reservation claiming. Nothing here
// touches storage.
package grid

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-ScheduleService/internal/domain"
)

// GenerateDay expands a day plan into quantum slots.
// A window of duration d yields floor(d / quantum) slots; the remainder is dropped.
func GenerateDay(providerID int64, plan domain.DayPlan) ([]domain.TimeSlot, error) {
	slots := make([]domain.TimeSlot, 0)

	for _, w := range plan.Windows {
		windowStart, err := w.Start.On(plan.Date)
		if err != nil {
			return nil, fmt.Errorf("%w: %s start=%q: %v", ErrInvalidWindow, domain.DateKey(plan.Date), w.Start, err)
		}

		count := int(w.Duration / domain.SlotQuantum)
		for k := 0; k < count; k++ {
			start := windowStart.Add(domain.SlotQuantum * time.Duration(k))
			slots = append(slots, domain.NewTimeSlot(providerID, start))
		}
	}

	return slots, nil
}

// GeneratePlan generates slots for every day plan, preserving plan order.
func GeneratePlan(providerID int64, plans []domain.DayPlan) ([]domain.TimeSlot, error) {
	all := make([]domain.TimeSlot, 0)
	for _, plan := range plans {
		slots, err := GenerateDay(providerID, plan)
		if err != nil {
			return nil, err
		}
		all = append(all, slots...)
	}
	return all, nil
}

package grid

import (
	"fmt"
	"sort"
	"time"

	"github.com/m04kA/SMC-ScheduleService/internal/domain"
)

// SlotsPerRun converts a service duration into the number of quantum slots.
func SlotsPerRun(duration time.Duration) (int, error) {
	if duration <= 0 || duration%domain.SlotQuantum != 0 {
		return 0, fmt.Errorf("%w: %s", ErrConfiguration, duration)
	}
	return int(duration / domain.SlotQuantum), nil
}

// GroupByDate splits slots by calendar day in loc, each group sorted by start.
func GroupByDate(slots []domain.TimeSlot, loc *time.Location) map[string][]domain.TimeSlot {
	groups := make(map[string][]domain.TimeSlot)
	for _, s := range slots {
		key := domain.DateKey(s.Start.In(loc))
		groups[key] = append(groups[key], s)
	}
	for key := range groups {
		group := groups[key]
		sort.SliceStable(group, func(i, j int) bool {
			return group[i].Start.Before(group[j].Start)
		})
	}
	return groups
}

// FindReservableRuns slides a window of n slots over one day's free slots and
// returns every window whose neighbours are contiguous. Overlapping windows
// are all returned.
func FindReservableRuns(providerID int64, daySlots []domain.TimeSlot, n int) []domain.ReservableInterval {
	runs := make([]domain.ReservableInterval, 0)
	if n <= 0 {
		return runs
	}

	for i := 0; i+n <= len(daySlots); i++ {
		if !contiguousFree(daySlots[i : i+n]) {
			continue
		}
		runs = append(runs, domain.ReservableInterval{
			ProviderID: providerID,
			Start:      daySlots[i].Start,
			Duration:   domain.SlotQuantum * time.Duration(n),
		})
	}

	return runs
}

func contiguousFree(window []domain.TimeSlot) bool {
	for k, s := range window {
		if !s.IsFree() {
			return false
		}
		if k == 0 {
			continue
		}
		if !window[k-1].End().Equal(s.Start) {
			return false
		}
	}
	return true
}

package grid

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-ScheduleService/internal/domain"
)

// identity is the (provider, start, duration) triple slots are compared by
type identity struct {
	providerID int64
	start      int64
	duration   time.Duration
}

func identityOf(s domain.TimeSlot) identity {
	return identity{
		providerID: s.ProviderID,
		start:      s.Start.UnixNano(),
		duration:   s.Duration,
	}
}

// MergeSlots applies a proposed slot set to the current one.
//
// Free current slots survive only if proposed; reserved slots always survive
// and must not appear in the proposal. Remaining proposed slots are appended
// once each. The result keeps current order first, then proposed order.
func MergeSlots(current, proposed []domain.TimeSlot) ([]domain.TimeSlot, error) {
	pending := make(map[identity]bool, len(proposed))
	for _, p := range proposed {
		pending[identityOf(p)] = true
	}

	merged := make([]domain.TimeSlot, 0, len(current)+len(proposed))
	inResult := make(map[identity]bool, len(current)+len(proposed))

	for _, c := range current {
		id := identityOf(c)
		if c.IsFree() {
			if pending[id] {
				merged = append(merged, c)
				inResult[id] = true
				delete(pending, id)
			}
			continue
		}

		if pending[id] {
			return nil, fmt.Errorf("%w: slot %s is held by reservation %d",
				ErrInvalidSchedule, c.Key(), *c.ReservationID)
		}
		merged = append(merged, c)
		inResult[id] = true
	}

	for _, p := range proposed {
		id := identityOf(p)
		if !pending[id] || inResult[id] {
			continue
		}
		merged = append(merged, p)
		inResult[id] = true
	}

	return merged, nil
}

// DiffSlots returns what must be deleted from and inserted into storage to
// turn current into merged.
func DiffSlots(current, merged []domain.TimeSlot) (removed, added []domain.TimeSlot) {
	inMerged := make(map[identity]bool, len(merged))
	for _, m := range merged {
		inMerged[identityOf(m)] = true
	}
	inCurrent := make(map[identity]bool, len(current))
	for _, c := range current {
		inCurrent[identityOf(c)] = true
	}

	removed = make([]domain.TimeSlot, 0)
	for _, c := range current {
		if !inMerged[identityOf(c)] {
			removed = append(removed, c)
		}
	}

	added = make([]domain.TimeSlot, 0)
	for _, m := range merged {
		if !inCurrent[identityOf(m)] {
			added = append(added, m)
		}
	}

	return removed, added
}

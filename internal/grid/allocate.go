package grid

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-ScheduleService/internal/domain"
)

// ClaimRun walks [start, start+duration) one quantum at a time and returns the
// keys of the slots a reservation would take. existing must contain the
// provider's slots covering that range. reservationID is the id of the
// reservation being updated, or 0 for a new one; slots already bound to it
// are claimable again.
func ClaimRun(
	reservationID int64,
	providerID int64,
	start time.Time,
	duration time.Duration,
	existing []domain.TimeSlot,
) ([]domain.SlotKey, error) {
	n, err := SlotsPerRun(duration)
	if err != nil {
		return nil, err
	}

	index := make(map[domain.SlotKey]domain.TimeSlot, len(existing))
	for _, s := range existing {
		index[s.Key()] = s
	}

	keys := make([]domain.SlotKey, 0, n)
	for k := 0; k < n; k++ {
		key := domain.NewSlotKey(providerID, start.Add(domain.SlotQuantum*time.Duration(k)))

		slot, ok := index[key]
		if !ok {
			return nil, fmt.Errorf("%w: no slot at %s", ErrNoAvailableTimeSlots, key)
		}
		if !slot.IsFree() && (reservationID == 0 || !slot.IsReservedBy(reservationID)) {
			return nil, fmt.Errorf("%w: slot %s is held by reservation %d",
				ErrTimeSlotsAlreadyReserved, key, *slot.ReservationID)
		}

		keys = append(keys, key)
	}

	return keys, nil
}

// ReleasedKeys returns the keys in previous that are not in claimed.
func ReleasedKeys(previous, claimed []domain.SlotKey) []domain.SlotKey {
	keep := make(map[domain.SlotKey]bool, len(claimed))
	for _, k := range claimed {
		keep[k] = true
	}

	released := make([]domain.SlotKey, 0)
	for _, k := range previous {
		if !keep[k] {
			released = append(released, k)
		}
	}
	return released
}

package grid

import (
	"sort"
	"time"

	"github.com/m04kA/SMC-ScheduleService/internal/domain"
)

// run is a maximal sequence of slots sharing a status
type run struct {
	start         time.Time
	end           time.Time
	reservationID *int64
}

func (r run) joins(s domain.TimeSlot) bool {
	if s.Start.Sub(r.end) >= domain.SlotQuantum {
		return false
	}
	if r.reservationID == nil || s.ReservationID == nil {
		return r.reservationID == nil && s.ReservationID == nil
	}
	return *r.reservationID == *s.ReservationID
}

func (r run) interval() domain.ScheduleInterval {
	iv := domain.ScheduleInterval{
		Start:    r.start,
		Duration: r.end.Sub(r.start),
		Status:   domain.StatusAvailable,
	}
	if r.reservationID != nil {
		iv.Status = domain.StatusReserved
		iv.Reservation = &domain.ReservationRef{ID: *r.reservationID}
	}
	return iv
}

func unavailable(from, to time.Time) domain.ScheduleInterval {
	return domain.ScheduleInterval{
		Start:    from,
		Duration: to.Sub(from),
		Status:   domain.StatusUnavailable,
	}
}

// CoalesceDay renders one day's slots as chronological intervals over the envelope.
// Slots join a run while the gap to the run end is below one quantum and the
// status matches (both free, or reserved by the same reservation). Gaps of a
// quantum or more, and uncovered envelope edges, become UNAVAILABLE.
func CoalesceDay(date time.Time, slots []domain.TimeSlot, envelope domain.DayEnvelope) ([]domain.ScheduleInterval, error) {
	dayStart, dayEnd, err := envelope.Bounds(date)
	if err != nil {
		return nil, err
	}

	if len(slots) == 0 {
		return []domain.ScheduleInterval{unavailable(dayStart, dayEnd)}, nil
	}

	sorted := make([]domain.TimeSlot, len(slots))
	copy(sorted, slots)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Start.Before(sorted[j].Start)
	})

	intervals := make([]domain.ScheduleInterval, 0)
	cursor := dayStart

	flush := func(r run) {
		if r.start.After(cursor) {
			intervals = append(intervals, unavailable(cursor, r.start))
		}
		intervals = append(intervals, r.interval())
		if r.end.After(cursor) {
			cursor = r.end
		}
	}

	current := run{start: sorted[0].Start, end: sorted[0].End(), reservationID: sorted[0].ReservationID}
	for _, s := range sorted[1:] {
		if current.joins(s) {
			if s.End().After(current.end) {
				current.end = s.End()
			}
			continue
		}
		flush(current)
		current = run{start: s.Start, end: s.End(), reservationID: s.ReservationID}
	}
	flush(current)

	if cursor.Before(dayEnd) {
		intervals = append(intervals, unavailable(cursor, dayEnd))
	}

	return intervals, nil
}

// ExpandIntervals turns AVAILABLE and RESERVED intervals back into quantum slots.
func ExpandIntervals(providerID int64, intervals []domain.ScheduleInterval) []domain.TimeSlot {
	slots := make([]domain.TimeSlot, 0)
	for _, iv := range intervals {
		if iv.Status == domain.StatusUnavailable {
			continue
		}
		for t := iv.Start; t.Before(iv.End()); t = t.Add(domain.SlotQuantum) {
			slot := domain.NewTimeSlot(providerID, t)
			if iv.Reservation != nil {
				id := iv.Reservation.ID
				slot.ReservationID = &id
			}
			slots = append(slots, slot)
		}
	}
	return slots
}

package domain

import (
	"time"

	"github.com/m04kA/SMC-ScheduleService/pkg/types"
)

// IntervalStatus is the rendered status of a schedule interval
type IntervalStatus string

const (
	StatusAvailable   IntervalStatus = "AVAILABLE"
	StatusReserved    IntervalStatus = "RESERVED"
	StatusUnavailable IntervalStatus = "UNAVAILABLE"
)

// ReservationRef points at the reservation holding a RESERVED interval.
// ServiceKind and CustomerName are filled in when the reservation is loaded.
type ReservationRef struct {
	ID           int64
	ServiceKind  ServiceKind
	CustomerName string
}

// ScheduleInterval is a maximal run of same-status time within a day.
type ScheduleInterval struct {
	Start       time.Time
	Duration    time.Duration
	Status      IntervalStatus
	Reservation *ReservationRef
}

func (i ScheduleInterval) End() time.Time {
	return i.Start.Add(i.Duration)
}

// DaySchedule is the coalesced view of one calendar day.
type DaySchedule struct {
	Date      time.Time
	Intervals []ScheduleInterval
}

// ReservableInterval is a contiguous run of free slots long enough for a service.
type ReservableInterval struct {
	ProviderID int64
	Start      time.Time
	Duration   time.Duration
}

// DayReservableIntervals groups reservable intervals of one day.
type DayReservableIntervals struct {
	Date      time.Time
	Intervals []ReservableInterval
}

// AvailabilityWindow is an edited block of availability within a day.
type AvailabilityWindow struct {
	Start    types.TimeString
	Duration time.Duration
}

// DayPlan is the full list of availability windows of one day.
type DayPlan struct {
	Date    time.Time
	Windows []AvailabilityWindow
}

// DayEnvelope bounds the rendered business day.
type DayEnvelope struct {
	Start types.TimeString
	End   types.TimeString
}

// DefaultEnvelope is the 08:00-21:00 business day.
func DefaultEnvelope() DayEnvelope {
	return DayEnvelope{Start: DefaultDayStart, End: DefaultDayEnd}
}

// Bounds returns the absolute start and end of the envelope on date.
func (e DayEnvelope) Bounds(date time.Time) (time.Time, time.Time, error) {
	start, err := e.Start.On(date)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	end, err := e.End.On(date)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	return start, end, nil
}

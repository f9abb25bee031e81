package domain

import (
	"errors"
	"fmt"
	"time"
)

// ErrInvalidSlotDuration is a data-integrity violation: a slot whose duration differs from SlotQuantum.
var ErrInvalidSlotDuration = errors.New("domain: slot duration must equal the slot quantum")

// SlotKey identifies a slot within the whole system.
type SlotKey struct {
	ProviderID int64
	Start      time.Time
}

// NewSlotKey normalizes start to UTC so keys compare with ==.
func NewSlotKey(providerID int64, start time.Time) SlotKey {
	return SlotKey{ProviderID: providerID, Start: start.UTC()}
}

func (k SlotKey) String() string {
	return fmt.Sprintf("%d@%s", k.ProviderID, k.Start.Format(time.RFC3339))
}

// TimeSlot is the atomic unit of provider availability.
type TimeSlot struct {
	ProviderID    int64
	Start         time.Time
	Duration      time.Duration
	ReservationID *int64
}

// NewTimeSlot creates a free slot of one quantum.
func NewTimeSlot(providerID int64, start time.Time) TimeSlot {
	return TimeSlot{
		ProviderID: providerID,
		Start:      start,
		Duration:   SlotQuantum,
	}
}

func (s TimeSlot) Key() SlotKey {
	return NewSlotKey(s.ProviderID, s.Start)
}

func (s TimeSlot) End() time.Time {
	return s.Start.Add(s.Duration)
}

// IsFree returns true if the slot is not bound to a reservation
func (s TimeSlot) IsFree() bool {
	return s.ReservationID == nil
}

// IsReservedBy returns true if the slot is bound to the given reservation
func (s TimeSlot) IsReservedBy(reservationID int64) bool {
	return s.ReservationID != nil && *s.ReservationID == reservationID
}

// SameSlot compares slot identity (provider, start, duration); the reservation is ignored.
func (s TimeSlot) SameSlot(other TimeSlot) bool {
	return s.ProviderID == other.ProviderID &&
		s.Start.Equal(other.Start) &&
		s.Duration == other.Duration
}

// Validate checks the quantum invariant.
func (s TimeSlot) Validate() error {
	if s.Duration != SlotQuantum {
		return fmt.Errorf("%w: slot %s has duration %s", ErrInvalidSlotDuration, s.Key(), s.Duration)
	}
	return nil
}

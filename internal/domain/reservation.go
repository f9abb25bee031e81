package domain

import "time"

// Customer contact details attached to a reservation
type Customer struct {
	Name        string
	Address     string
	Email       string
	PhoneNumber string
}

// Reservation books a contiguous run of slots of a single provider.
// Slots lists the covering slot keys in chronological order.
type Reservation struct {
	ID          int64
	ProviderID  int64
	Start       time.Time
	Duration    time.Duration
	ServiceKind ServiceKind
	Customer    Customer
	Slots       []SlotKey

	CreatedAt time.Time
	UpdatedAt time.Time
}

// End returns the exclusive end of the reservation
func (r *Reservation) End() time.Time {
	return r.Start.Add(r.Duration)
}

// Covers reports whether the reservation spans the given instant
func (r *Reservation) Covers(t time.Time) bool {
	return !t.Before(r.Start) && t.Before(r.End())
}

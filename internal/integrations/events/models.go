package events

import "time"

// Type тип события жизненного цикла
type Type string

const (
	TypeScheduleCreated     Type = "schedule.created"
	TypeScheduleUpdated     Type = "schedule.updated"
	TypeReservationCreated  Type = "reservation.created"
	TypeReservationUpdated  Type = "reservation.updated"
	TypeReservationCanceled Type = "reservation.cancelled"
)

// Event сообщение, публикуемое после фиксации транзакции
type Event struct {
	ID            string    `json:"id"`
	Type          Type      `json:"type"`
	ProviderID    int64     `json:"providerId"`
	ReservationID *int64    `json:"reservationId,omitempty"`
	OccurredAt    time.Time `json:"occurredAt"`

	// Полезная нагрузка в зависимости от типа
	Dates        []string   `json:"dates,omitempty"`
	SlotsAdded   int        `json:"slotsAdded,omitempty"`
	SlotsRemoved int        `json:"slotsRemoved,omitempty"`
	Start        *time.Time `json:"start,omitempty"`
	DurationMin  int        `json:"durationMinutes,omitempty"`
	ServiceKind  string     `json:"serviceKind,omitempty"`
}

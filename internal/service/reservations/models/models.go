package models

import (
	"time"

	"github.com/m04kA/SMC-ScheduleService/internal/domain"
)

// CustomerDTO контактные данные клиента
type CustomerDTO struct {
	Name        string `json:"name"`
	Address     string `json:"address"`
	Email       string `json:"email"`
	PhoneNumber string `json:"phoneNumber"`
}

// ReservationResponse ответ с данными бронирования
type ReservationResponse struct {
	ID              int64       `json:"id"`
	ProviderID      int64       `json:"providerId"`
	Start           time.Time   `json:"start"`
	End             time.Time   `json:"end"`
	DurationMinutes int         `json:"durationMinutes"`
	ServiceKind     string      `json:"serviceKind"`
	Customer        CustomerDTO `json:"customer"`
	Slots           []time.Time `json:"slots"`
	CreatedAt       time.Time   `json:"createdAt"`
	UpdatedAt       time.Time   `json:"updatedAt"`
}

// FromDomainReservation конвертирует domain модель в DTO.
// Время переводится в часовой пояс loc.
func FromDomainReservation(r *domain.Reservation, loc *time.Location) *ReservationResponse {
	if r == nil {
		return nil
	}
	if loc == nil {
		loc = time.UTC
	}

	slots := make([]time.Time, 0, len(r.Slots))
	for _, k := range r.Slots {
		slots = append(slots, k.Start.In(loc))
	}

	return &ReservationResponse{
		ID:              r.ID,
		ProviderID:      r.ProviderID,
		Start:           r.Start.In(loc),
		End:             r.End().In(loc),
		DurationMinutes: int(r.Duration / time.Minute),
		ServiceKind:     string(r.ServiceKind),
		Customer: CustomerDTO{
			Name:        r.Customer.Name,
			Address:     r.Customer.Address,
			Email:       r.Customer.Email,
			PhoneNumber: r.Customer.PhoneNumber,
		},
		Slots:     slots,
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
}

package update_reservation

import (
	"time"

	"github.com/m04kA/SMC-ScheduleService/internal/domain"
	"github.com/m04kA/SMC-ScheduleService/internal/service/reservations/models"
	updateReservation "github.com/m04kA/SMC-ScheduleService/internal/usecase/update_reservation"
)

// UpdateReservationRequest HTTP request model
type UpdateReservationRequest struct {
	Start       string             `json:"start"`
	ServiceKind string             `json:"serviceKind"`
	Customer    models.CustomerDTO `json:"customer"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *UpdateReservationRequest) ToUseCaseRequest(reservationID int64) (*updateReservation.Request, error) {
	start, err := time.Parse(time.RFC3339, r.Start)
	if err != nil {
		return nil, err
	}

	return &updateReservation.Request{
		ReservationID: reservationID,
		Start:         start,
		ServiceKind:   r.ServiceKind,
		Customer: domain.Customer{
			Name:        r.Customer.Name,
			Address:     r.Customer.Address,
			Email:       r.Customer.Email,
			PhoneNumber: r.Customer.PhoneNumber,
		},
	}, nil
}

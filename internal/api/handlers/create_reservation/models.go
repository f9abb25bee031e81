package create_reservation

import (
	"time"

	"github.com/m04kA/SMC-ScheduleService/internal/domain"
	"github.com/m04kA/SMC-ScheduleService/internal/service/reservations/models"
	createReservation "github.com/m04kA/SMC-ScheduleService/internal/usecase/create_reservation"
)

// CreateReservationRequest HTTP request model
type CreateReservationRequest struct {
	ProviderID  int64              `json:"providerId"`
	Start       string             `json:"start"` // "2024-03-11T08:00:00+02:00"
	ServiceKind string             `json:"serviceKind"`
	Customer    models.CustomerDTO `json:"customer"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateReservationRequest) ToUseCaseRequest() (*createReservation.Request, error) {
	start, err := time.Parse(time.RFC3339, r.Start)
	if err != nil {
		return nil, err
	}

	return &createReservation.Request{
		ProviderID:  r.ProviderID,
		Start:       start,
		ServiceKind: r.ServiceKind,
		Customer: domain.Customer{
			Name:        r.Customer.Name,
			Address:     r.Customer.Address,
			Email:       r.Customer.Email,
			PhoneNumber: r.Customer.PhoneNumber,
		},
	}, nil
}

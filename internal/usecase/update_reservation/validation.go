package update_reservation

import (
	"fmt"
	"net/mail"
	"strings"

	"github.com/m04kA/SMC-ScheduleService/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.ReservationID <= 0 {
		return fmt.Errorf("%w: reservationID must be positive", ErrInvalidInput)
	}

	if req.Start.IsZero() {
		return fmt.Errorf("%w: start is required", ErrInvalidInput)
	}

	if req.ServiceKind == "" {
		return fmt.Errorf("%w: serviceKind is required", ErrInvalidInput)
	}

	return validateCustomer(req.Customer)
}

// validateCustomer проверяет контакты клиента
func validateCustomer(c domain.Customer) error {
	if strings.TrimSpace(c.Name) == "" {
		return fmt.Errorf("%w: customer name is required", ErrInvalidInput)
	}

	if len(c.Name) > domain.MaxNameLength {
		return fmt.Errorf("%w: customer name is too long", ErrInvalidInput)
	}

	if len(c.Address) > domain.MaxAddressLength {
		return fmt.Errorf("%w: customer address is too long", ErrInvalidInput)
	}

	if c.Email != "" {
		if len(c.Email) > domain.MaxEmailLength {
			return fmt.Errorf("%w: customer email is too long", ErrInvalidInput)
		}
		if _, err := mail.ParseAddress(c.Email); err != nil {
			return fmt.Errorf("%w: invalid customer email: %v", ErrInvalidInput, err)
		}
	}

	if len(c.PhoneNumber) > domain.MaxPhoneLength {
		return fmt.Errorf("%w: customer phone number is too long", ErrInvalidInput)
	}

	return nil
}

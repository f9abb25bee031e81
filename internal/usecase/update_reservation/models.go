package update_reservation

import (
	"time"

	"github.com/m04kA/SMC-ScheduleService/internal/domain"
)

// Request модель запроса на изменение бронирования.
// Поставщик бронирования не меняется.
type Request struct {
	ReservationID int64           // ID бронирования
	Start         time.Time       // Новое начало услуги
	ServiceKind   string          // Новый вид услуги
	Customer      domain.Customer // Контакты клиента
}

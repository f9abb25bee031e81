package create_reservation

import (
	"time"

	"github.com/m04kA/SMC-ScheduleService/internal/domain"
)

// Request модель запроса на создание бронирования
type Request struct {
	ProviderID  int64           // ID поставщика
	Start       time.Time       // Начало услуги
	ServiceKind string          // Вид услуги
	Customer    domain.Customer // Контакты клиента
}

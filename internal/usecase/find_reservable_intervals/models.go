package find_reservable_intervals

import (
	"time"

	"github.com/m04kA/SMC-ScheduleService/internal/domain"
)

// Request модель запроса интервалов, доступных для бронирования
type Request struct {
	ProviderID  int64     // ID поставщика
	ServiceKind string    // Вид услуги, например "TIRES_CHANGE"
	From        time.Time // Первая дата (включительно)
	Until       time.Time // Последняя дата (не включительно)
}

// Response интервалы по дням в порядке дат.
// Дата без подходящих интервалов содержит пустой список.
type Response struct {
	ProviderID      int64
	ServiceKind     domain.ServiceKind
	DurationMinutes int
	Days            []domain.DayReservableIntervals
}

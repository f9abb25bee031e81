package get_schedule

import (
	"time"

	"github.com/m04kA/SMC-ScheduleService/internal/domain"
)

// Request модель запроса расписания
type Request struct {
	ProviderID int64     // ID поставщика
	From       time.Time // Первая дата (включительно)
	Until      time.Time // Последняя дата (не включительно)
}

// Response расписание по дням в порядке дат
type Response struct {
	ProviderID int64
	Days       []domain.DaySchedule
}

package apply_schedule

import (
	"time"

	"github.com/m04kA/SMC-ScheduleService/internal/domain"
)

// Mode режим применения плана
type Mode string

const (
	// ModeCreate создание расписания на даты, где слотов еще нет
	ModeCreate Mode = "create"
	// ModeUpdate замена доступности на указанные даты с сохранением бронирований
	ModeUpdate Mode = "update"
)

// Request модель запроса на применение плана доступности
type Request struct {
	ProviderID int64            // ID поставщика
	Mode       Mode             // Режим применения
	Plans      []domain.DayPlan // Окна доступности по датам
}

// Response итог применения плана
type Response struct {
	ProviderID   int64
	Mode         Mode
	Dates        []time.Time // Затронутые даты по порядку
	SlotsAdded   int
	SlotsRemoved int
}

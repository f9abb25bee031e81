package get_schedule

import (
	"time"

	"github.com/m04kA/SMC-ScheduleService/internal/domain"
	getSchedule "github.com/m04kA/SMC-ScheduleService/internal/usecase/get_schedule"
)

// ScheduleResponse HTTP response model
type ScheduleResponse struct {
	ProviderID int64         `json:"providerId"`
	Days       []DaySchedule `json:"days"`
}

// DaySchedule расписание одного дня
type DaySchedule struct {
	Date      string     `json:"date"` // "2024-03-11"
	Intervals []Interval `json:"intervals"`
}

// Interval отрезок дня с одним статусом
type Interval struct {
	Start           time.Time       `json:"start"`
	End             time.Time       `json:"end"`
	DurationMinutes int             `json:"durationMinutes"`
	Status          string          `json:"status"`
	Reservation     *ReservationRef `json:"reservation,omitempty"`
}

// ReservationRef бронирование, занимающее интервал
type ReservationRef struct {
	ID           int64  `json:"id"`
	ServiceKind  string `json:"serviceKind,omitempty"`
	CustomerName string `json:"customerName,omitempty"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getSchedule.Response, loc *time.Location) *ScheduleResponse {
	days := make([]DaySchedule, 0, len(resp.Days))
	for _, day := range resp.Days {
		intervals := make([]Interval, 0, len(day.Intervals))
		for _, iv := range day.Intervals {
			intervals = append(intervals, fromDomainInterval(iv, loc))
		}
		days = append(days, DaySchedule{
			Date:      day.Date.Format(domain.DateFormat),
			Intervals: intervals,
		})
	}

	return &ScheduleResponse{
		ProviderID: resp.ProviderID,
		Days:       days,
	}
}

func fromDomainInterval(iv domain.ScheduleInterval, loc *time.Location) Interval {
	out := Interval{
		Start:           iv.Start.In(loc),
		End:             iv.End().In(loc),
		DurationMinutes: int(iv.Duration / time.Minute),
		Status:          string(iv.Status),
	}
	if iv.Reservation != nil {
		out.Reservation = &ReservationRef{
			ID:           iv.Reservation.ID,
			ServiceKind:  string(iv.Reservation.ServiceKind),
			CustomerName: iv.Reservation.CustomerName,
		}
	}
	return out
}

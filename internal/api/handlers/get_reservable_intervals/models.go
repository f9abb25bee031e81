package get_reservable_intervals

import (
	"time"

	"github.com/m04kA/SMC-ScheduleService/internal/domain"
	findReservable "github.com/m04kA/SMC-ScheduleService/internal/usecase/find_reservable_intervals"
)

// ReservableIntervalsResponse HTTP response model
type ReservableIntervalsResponse struct {
	ProviderID      int64            `json:"providerId"`
	ServiceKind     string           `json:"serviceKind"`
	DurationMinutes int              `json:"durationMinutes"`
	Days            []DayReservables `json:"days"`
}

// DayReservables интервалы одного дня
type DayReservables struct {
	Date      string               `json:"date"`
	Intervals []ReservableInterval `json:"intervals"`
}

// ReservableInterval интервал, который можно забронировать целиком
type ReservableInterval struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *findReservable.Response, loc *time.Location) *ReservableIntervalsResponse {
	days := make([]DayReservables, 0, len(resp.Days))
	for _, day := range resp.Days {
		intervals := make([]ReservableInterval, 0, len(day.Intervals))
		for _, iv := range day.Intervals {
			intervals = append(intervals, ReservableInterval{
				Start: iv.Start.In(loc),
				End:   iv.Start.Add(iv.Duration).In(loc),
			})
		}
		days = append(days, DayReservables{
			Date:      day.Date.Format(domain.DateFormat),
			Intervals: intervals,
		})
	}

	return &ReservableIntervalsResponse{
		ProviderID:      resp.ProviderID,
		ServiceKind:     string(resp.ServiceKind),
		DurationMinutes: resp.DurationMinutes,
		Days:            days,
	}
}

package apply_schedule

import (
	"fmt"
	"sort"
	"time"

	"github.com/m04kA/SMC-ScheduleService/internal/api/handlers"
	"github.com/m04kA/SMC-ScheduleService/internal/domain"
	applySchedule "github.com/m04kA/SMC-ScheduleService/internal/usecase/apply_schedule"
	"github.com/m04kA/SMC-ScheduleService/pkg/types"
)

// ScheduleRequest HTTP request model: дата "YYYY-MM-DD" -> окна доступности.
// Пустой список окон очищает свободные слоты даты.
type ScheduleRequest map[string][]WindowDTO

// WindowDTO окно доступности
type WindowDTO struct {
	Start           string `json:"start"` // "08:00"
	DurationMinutes int    `json:"durationMinutes"`
}

// ScheduleResponse HTTP response model
type ScheduleResponse struct {
	ProviderID   int64    `json:"providerId"`
	Mode         string   `json:"mode"`
	Dates        []string `json:"dates"`
	SlotsAdded   int      `json:"slotsAdded"`
	SlotsRemoved int      `json:"slotsRemoved"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r ScheduleRequest) ToUseCaseRequest(
	providerID int64,
	mode applySchedule.Mode,
	loc *time.Location,
) (*applySchedule.Request, error) {
	keys := make([]string, 0, len(r))
	for k := range r {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	plans := make([]domain.DayPlan, 0, len(keys))
	for _, key := range keys {
		date, err := handlers.ParseDate(key, loc)
		if err != nil {
			return nil, fmt.Errorf("date %q: %w", key, err)
		}

		windows := make([]domain.AvailabilityWindow, 0, len(r[key]))
		for _, dto := range r[key] {
			start, err := types.NewTimeStringFromString(dto.Start)
			if err != nil {
				return nil, fmt.Errorf("date %q: %w", key, err)
			}
			windows = append(windows, domain.AvailabilityWindow{
				Start:    start,
				Duration: time.Duration(dto.DurationMinutes) * time.Minute,
			})
		}

		plans = append(plans, domain.DayPlan{Date: date, Windows: windows})
	}

	return &applySchedule.Request{
		ProviderID: providerID,
		Mode:       mode,
		Plans:      plans,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *applySchedule.Response) *ScheduleResponse {
	dates := make([]string, 0, len(resp.Dates))
	for _, d := range resp.Dates {
		dates = append(dates, d.Format(domain.DateFormat))
	}

	return &ScheduleResponse{
		ProviderID:   resp.ProviderID,
		Mode:         string(resp.Mode),
		Dates:        dates,
		SlotsAdded:   resp.SlotsAdded,
		SlotsRemoved: resp.SlotsRemoved,
	}
}

package apply_schedule

import (
	"context"

	applySchedule "github.com/m04kA/SMC-ScheduleService/internal/usecase/apply_schedule"
)

type ApplyScheduleUseCase interface {
	Execute(ctx context.Context, req *applySchedule.Request) (*applySchedule.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

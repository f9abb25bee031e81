package get_reservable_intervals

import (
	"context"

	findReservable "github.com/m04kA/SMC-ScheduleService/internal/usecase/find_reservable_intervals"
)

type FindReservableIntervalsUseCase interface {
	Execute(ctx context.Context, req *findReservable.Request) (*findReservable.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

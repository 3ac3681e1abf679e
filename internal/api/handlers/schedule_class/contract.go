package schedule_class

import (
	"context"

	scheduleClass "github.com/m04kA/DSM-SchedulingService/internal/usecase/schedule_class"
)

type ScheduleClassUseCase interface {
	Execute(ctx context.Context, req *scheduleClass.Request) (*scheduleClass.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

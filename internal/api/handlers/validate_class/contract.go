package validate_class

import (
	"context"

	validateClass "github.com/m04kA/DSM-SchedulingService/internal/usecase/validate_class"
)

type ValidateClassUseCase interface {
	Execute(ctx context.Context, req *validateClass.Request) (*validateClass.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

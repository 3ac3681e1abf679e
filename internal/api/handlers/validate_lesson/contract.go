package validate_lesson

import (
	"context"

	validateLesson "github.com/m04kA/DSM-SchedulingService/internal/usecase/validate_lesson"
)

type ValidateLessonUseCase interface {
	Execute(ctx context.Context, req *validateLesson.Request) (*validateLesson.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

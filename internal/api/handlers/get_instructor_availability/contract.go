package get_instructor_availability

import (
	"context"

	"github.com/m04kA/DSM-SchedulingService/internal/service/availability/models"
)

type AvailabilityService interface {
	GetWeek(ctx context.Context, instructorID int64) (*models.WeekAvailabilityResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

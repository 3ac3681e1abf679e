package availability

import (
	"context"

	"github.com/m04kA/DSM-SchedulingService/internal/domain"
)

type AvailabilityRepository interface {
	GetWeek(ctx context.Context, instructorID int64) ([]*domain.WeeklyAvailability, error)
}

type CatalogRepository interface {
	GetInstructor(ctx context.Context, id int64) (*domain.Instructor, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

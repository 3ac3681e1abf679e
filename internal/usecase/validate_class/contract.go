package validate_class

import (
	"context"
	"time"

	"github.com/m04kA/DSM-SchedulingService/internal/domain"
)

// BookingRepository интерфейс репозитория занятий
type BookingRepository interface {
	GetWithFilter(ctx context.Context, filter domain.BookingsFilter) ([]*domain.Booking, error)
	CountStudents(ctx context.Context, bookingID int64) (int, error)
}

// AvailabilityRepository интерфейс репозитория окон доступности
type AvailabilityRepository interface {
	GetByInstructorAndDay(ctx context.Context, instructorID int64, day time.Weekday) (*domain.WeeklyAvailability, error)
}

// CatalogRepository интерфейс репозитория справочников
type CatalogRepository interface {
	GetActiveEnrollment(ctx context.Context, studentID, courseID int64) (*domain.Enrollment, error)
	GetCourse(ctx context.Context, id int64) (*domain.Course, error)
	GetInstructor(ctx context.Context, id int64) (*domain.Instructor, error)
	GetResource(ctx context.Context, id int64) (*domain.Resource, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

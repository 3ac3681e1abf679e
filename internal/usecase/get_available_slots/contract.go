package get_available_slots

import (
	"context"
	"time"

	"github.com/m04kA/DSM-SchedulingService/internal/domain"
)

// BookingRepository интерфейс репозитория занятий
type BookingRepository interface {
	GetWithFilter(ctx context.Context, filter domain.BookingsFilter) ([]*domain.Booking, error)
}

// AvailabilityRepository интерфейс репозитория окон доступности
type AvailabilityRepository interface {
	GetByInstructorAndDay(ctx context.Context, instructorID int64, day time.Weekday) (*domain.WeeklyAvailability, error)
}

// CatalogRepository интерфейс репозитория справочников
type CatalogRepository interface {
	GetEnrollment(ctx context.Context, id int64) (*domain.Enrollment, error)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}

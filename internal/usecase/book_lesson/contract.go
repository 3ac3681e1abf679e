package book_lesson

import (
	"context"

	"github.com/m04kA/DSM-SchedulingService/internal/domain"
	validateLesson "github.com/m04kA/DSM-SchedulingService/internal/usecase/validate_lesson"
)

// LessonValidator интерфейс предварительной валидации занятия
type LessonValidator interface {
	Execute(ctx context.Context, req *validateLesson.Request) (*validateLesson.Response, error)
}

// BookingRepository интерфейс репозитория занятий
type BookingRepository interface {
	Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error)
	GetWithFilter(ctx context.Context, filter domain.BookingsFilter) ([]*domain.Booking, error)
}

// CatalogRepository интерфейс репозитория справочников
type CatalogRepository interface {
	GetEnrollment(ctx context.Context, id int64) (*domain.Enrollment, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

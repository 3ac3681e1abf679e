package schedule_class

import (
	"context"

	"github.com/m04kA/DSM-SchedulingService/internal/domain"
	validateClass "github.com/m04kA/DSM-SchedulingService/internal/usecase/validate_class"
)

// ClassValidator интерфейс предварительной валидации занятия
type ClassValidator interface {
	Execute(ctx context.Context, req *validateClass.Request) (*validateClass.Response, error)
}

// BookingRepository интерфейс репозитория занятий
type BookingRepository interface {
	Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error)
	GetWithFilter(ctx context.Context, filter domain.BookingsFilter) ([]*domain.Booking, error)
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

package book_lesson

import (
	"time"

	"github.com/m04kA/DSM-SchedulingService/internal/domain"
	"github.com/m04kA/DSM-SchedulingService/pkg/types"
)

// Request модель запроса на создание практического занятия
type Request struct {
	EnrollmentID    int64
	InstructorID    int64
	ResourceID      *int64
	ScheduledAt     time.Time
	DurationMinutes int // 0 = значение по умолчанию (90)
}

// Response модель ответа.
// Если Errors непустой, занятие не создано и остальные поля не заполнены.
type Response struct {
	Errors domain.ValidationResult

	ID              int64
	EnrollmentID    int64
	StudentID       int64
	InstructorID    int64
	ResourceID      *int64
	BookingDate     time.Time
	StartTime       types.TimeString
	DurationMinutes int
	Status          string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// Created returns true, если занятие было создано
func (r *Response) Created() bool {
	return r.Errors.Valid()
}

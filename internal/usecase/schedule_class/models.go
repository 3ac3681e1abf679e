package schedule_class

import (
	"time"

	"github.com/m04kA/DSM-SchedulingService/internal/domain"
	"github.com/m04kA/DSM-SchedulingService/pkg/types"
)

// Request модель запроса на создание теоретического занятия
type Request struct {
	CourseID        int64
	InstructorID    int64
	ResourceID      int64
	ScheduledAt     time.Time
	DurationMinutes int // 0 = значение по умолчанию (60)
	MaxStudents     int
	StudentIDs      []int64
}

// Response модель ответа.
// Если Errors непустой, занятие не создано и остальные поля не заполнены.
type Response struct {
	Errors domain.ValidationResult

	ID              int64
	CourseID        int64
	InstructorID    int64
	ResourceID      int64
	BookingDate     time.Time
	StartTime       types.TimeString
	DurationMinutes int
	MaxStudents     int
	StudentIDs      []int64
	Status          string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// Created returns true, если занятие было создано
func (r *Response) Created() bool {
	return r.Errors.Valid()
}

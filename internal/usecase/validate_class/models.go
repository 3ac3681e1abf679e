package validate_class

import (
	"time"

	"github.com/m04kA/DSM-SchedulingService/internal/domain"
)

// Request модель запроса на валидацию теоретического занятия
type Request struct {
	CourseID        int64     // ID теоретического курса
	InstructorID    int64     // ID инструктора
	ResourceID      int64     // ID учебного класса
	ScheduledAt     time.Time // Момент начала занятия (абсолютный)
	DurationMinutes int       // Длительность; 0 = значение по умолчанию (60)
	MaxStudents     int       // Потолок размера группы
	StudentIDs      []int64   // Предварительно выбранные студенты
	CurrentID       *int64    // ID редактируемого занятия
}

// Response результат валидации
type Response struct {
	// Errors поле -> бизнес-ошибка; пустая карта означает,
	// что занятие может быть назначено
	Errors domain.ValidationResult
}

// Valid returns true, если ошибок валидации нет
func (r *Response) Valid() bool {
	return r.Errors.Valid()
}

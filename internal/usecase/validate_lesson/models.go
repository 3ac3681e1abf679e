package validate_lesson

import (
	"time"

	"github.com/m04kA/DSM-SchedulingService/internal/domain"
)

// Request модель запроса на валидацию практического занятия
type Request struct {
	EnrollmentID    int64      // ID зачисления студента на курс
	InstructorID    int64      // ID инструктора
	ResourceID      *int64     // ID учебного автомобиля (опционально)
	ScheduledAt     time.Time  // Момент начала занятия (абсолютный)
	DurationMinutes int        // Длительность; 0 = значение по умолчанию (90)
	CurrentID       *int64     // ID редактируемого занятия (исключается из сканов конфликтов)
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

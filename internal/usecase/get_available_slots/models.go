package get_available_slots

import (
	"time"

	"github.com/m04kA/DSM-SchedulingService/pkg/types"
)

// Request модель запроса на получение доступных слотов для записи
// студента на практическое занятие
type Request struct {
	InstructorID    int64     // ID инструктора
	EnrollmentID    int64     // ID зачисления студента (его занятия тоже учитываются)
	Date            time.Time // Дата в таймзоне автошколы (без времени)
	DurationMinutes int       // Планируемая длительность; 0 = значение по умолчанию (90)
}

// Response модель ответа со списком доступных времен начала
type Response struct {
	InstructorID    int64              // ID инструктора
	Date            time.Time          // Дата, на которую запрашивались слоты
	DurationMinutes int                // Длительность, для которой считалась доступность
	Slots           []types.TimeString // Допустимые времена начала по возрастанию
}

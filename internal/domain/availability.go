package domain

import (
	"time"

	"github.com/m04kA/DSM-SchedulingService/pkg/types"
)

// WeeklyAvailability доступность инструктора в конкретный день недели.
//
// StartTimes - отсортированный список границ слотов (кратных 30 минутам),
// с которых инструктор готов начинать занятия в этот день. Пара соседних
// границ [t[i], t[i+1]) образует непрерывное разрешенное окно; последняя
// граница сама по себе является разрешенным временем начала.
type WeeklyAvailability struct {
	ID           int64
	InstructorID int64
	DayOfWeek    time.Weekday
	StartTimes   []types.TimeString
}

// AllowsStart проверяет, допустимо ли начало занятия в момент candidate
func (w *WeeklyAvailability) AllowsStart(candidate types.TimeString) bool {
	return AllowsStart(w.StartTimes, candidate)
}

// IsEmpty returns true if no start boundaries are configured for the day
func (w *WeeklyAvailability) IsEmpty() bool {
	return len(w.StartTimes) == 0
}

// AllowsStart проверяет, попадает ли candidate в настроенные окна доступности.
//
// Правила:
//   - пустой список границ не накладывает ограничений (поведение настраивается
//     на уровне usecase, см. strict_empty_availability);
//   - совпадение с последней границей разрешено всегда (терминальный слот);
//   - иначе candidate должен попасть в полуинтервал [t[i], t[i+1]) какой-либо
//     пары соседних границ И отстоять от начала окна на число минут, кратное
//     SlotStepMinutes (выравнивание по 30-минутной сетке).
func AllowsStart(startTimes []types.TimeString, candidate types.TimeString) bool {
	if len(startTimes) == 0 {
		return true
	}

	if candidate == startTimes[len(startTimes)-1] {
		return true
	}

	for i := 0; i < len(startTimes)-1; i++ {
		windowStart := startTimes[i]
		windowEnd := startTimes[i+1]

		if candidate.IsBefore(windowStart) || !candidate.IsBefore(windowEnd) {
			continue
		}

		offset, err := candidate.MinutesBetween(windowStart)
		if err != nil {
			return false
		}
		if offset%SlotStepMinutes == 0 {
			return true
		}
	}

	return false
}

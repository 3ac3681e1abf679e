package get_available_slots

import (
	"fmt"
	"time"

	"github.com/m04kA/DSM-SchedulingService/internal/domain"
	"github.com/m04kA/DSM-SchedulingService/pkg/types"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.InstructorID <= 0 {
		return fmt.Errorf("%w: instructorID must be positive", ErrInvalidInput)
	}
	if req.EnrollmentID <= 0 {
		return fmt.Errorf("%w: enrollmentID must be positive", ErrInvalidInput)
	}
	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}
	if req.DurationMinutes < 0 {
		return fmt.Errorf("%w: duration must not be negative", ErrInvalidInput)
	}
	return nil
}

// enumerateSlots генерирует допустимые времена начала занятия.
//
// Кандидаты - каждая 30-минутная граница внутри полуинтервалов соседних
// границ окна [t[i], t[i+1]) плюс последняя граница t[last] (терминальный
// слот нулевой ширины). Кандидат отбрасывается, если:
//   - дата сегодняшняя и кандидат уже в прошлом;
//   - интервал [кандидат, кандидат+duration) переходит через полночь;
//   - интервал пересекается с активным занятием из списка
//     (встык - не пересечение).
//
// Результат отсортирован по возрастанию без дубликатов: границы окон
// генерируются по полуинтервалам, поэтому общая граница двух окон
// попадает в выдачу один раз.
func enumerateSlots(
	windows *domain.WeeklyAvailability,
	bookings []*domain.Booking,
	durationMinutes int,
	isToday bool,
	now types.TimeString,
) ([]types.TimeString, error) {
	starts := windows.StartTimes

	candidates := make([]types.TimeString, 0)
	for i := 0; i < len(starts)-1; i++ {
		from, err := starts[i].Minutes()
		if err != nil {
			return nil, err
		}
		to, err := starts[i+1].Minutes()
		if err != nil {
			return nil, err
		}
		for minute := from; minute < to; minute += domain.SlotStepMinutes {
			candidate, err := types.NewTimeStringFromMinutes(minute)
			if err != nil {
				return nil, err
			}
			candidates = append(candidates, candidate)
		}
	}
	// Последняя граница всегда допустима как точное время начала
	candidates = append(candidates, starts[len(starts)-1])

	slots := make([]types.TimeString, 0, len(candidates))
	for _, candidate := range candidates {
		if isToday && candidate.IsBefore(now) {
			continue
		}

		// Поздний кандидат из допустимого окна (в том числе терминальный)
		// не слот, если занятие не успеет закончиться до полуночи
		if !domain.FitsWithinDay(candidate, durationMinutes) {
			continue
		}

		conflict, err := domain.HasOverlap(candidate, durationMinutes, bookings, nil)
		if err != nil {
			return nil, err
		}
		if conflict {
			continue
		}

		slots = append(slots, candidate)
	}

	return slots, nil
}

// mergeBookings объединяет выборки занятий, отбрасывая дубликаты по ID:
// занятие студента у того же инструктора попадает в обе выборки
func mergeBookings(lists ...[]*domain.Booking) []*domain.Booking {
	seen := make(map[int64]struct{})
	merged := make([]*domain.Booking, 0)
	for _, list := range lists {
		for _, booking := range list {
			if _, ok := seen[booking.ID]; ok {
				continue
			}
			seen[booking.ID] = struct{}{}
			merged = append(merged, booking)
		}
	}
	return merged
}

// isSameDay проверяет, что две даты относятся к одному и тому же дню
func isSameDay(date1, date2 time.Time) bool {
	y1, m1, d1 := date1.Date()
	y2, m2, d2 := date2.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

// isDateInPast проверяет, что дата в прошлом (раньше сегодняшнего дня)
func isDateInPast(date, now time.Time) bool {
	dateOnly := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	nowOnly := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	return dateOnly.Before(nowOnly)
}

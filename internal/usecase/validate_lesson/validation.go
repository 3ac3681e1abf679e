package validate_lesson

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/m04kA/DSM-SchedulingService/internal/domain"
	"github.com/m04kA/DSM-SchedulingService/pkg/types"
)

// requireLessonFields проверяет наличие обязательных идентификаторов
func requireLessonFields(req *Request, result domain.ValidationResult) {
	if req.EnrollmentID <= 0 {
		result.Set(domain.FieldEnrollmentID, domain.KindRequiredField)
	}
	if req.InstructorID <= 0 {
		result.Set(domain.FieldInstructorID, domain.KindRequiredField)
	}
	if req.ScheduledAt.IsZero() {
		result.Set(domain.FieldScheduledTime, domain.KindRequiredField)
	}
}

// resolveDuration подставляет длительность по умолчанию и проверяет границы
func resolveDuration(requested, fallback int) (int, error) {
	duration := requested
	if duration == 0 {
		duration = fallback
	}
	if duration < domain.MinDurationMinutes || duration > domain.MaxDurationMinutes {
		return 0, fmt.Errorf("%w: duration %d minutes is out of range", ErrInvalidInput, duration)
	}
	return duration, nil
}

// businessParts переводит абсолютный момент в дату, день недели и время
// начала в таймзоне автошколы
func businessParts(at time.Time, loc *time.Location) (time.Time, time.Weekday, types.TimeString) {
	local := at.In(loc)
	date := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, loc)
	return date, local.Weekday(), types.NewTimeString(local)
}

// checkFitsWithinDay проверяет, что занятие закончится до полуночи.
// Переход через полночь невозможен независимо от настроек окон, поэтому
// такое время начала отклоняется как недоступное.
func checkFitsWithinDay(startTime types.TimeString, durationMinutes int, result domain.ValidationResult) {
	if !domain.FitsWithinDay(startTime, durationMinutes) {
		result.Set(domain.FieldScheduledTime, domain.KindOutsideAvailability)
	}
}

// checkAvailability проверяет попадание времени начала в окна доступности.
// День без настроенных окон исторически не накладывает ограничений;
// strictEmptyDays инвертирует это поведение (см. конфигурацию).
func checkAvailability(windows *domain.WeeklyAvailability, startTime types.TimeString, strictEmptyDays bool, result domain.ValidationResult) {
	if windows.IsEmpty() {
		if strictEmptyDays {
			result.Set(domain.FieldScheduledTime, domain.KindOutsideAvailability)
		}
		return
	}
	if !windows.AllowsStart(startTime) {
		result.Set(domain.FieldScheduledTime, domain.KindOutsideAvailability)
	}
}

// checkCategoryMatch проверяет соответствие категории ресурса категории курса.
// Ресурс без категории подходит любому курсу.
func checkCategoryMatch(course *domain.Course, resource *domain.Resource, result domain.ValidationResult) {
	if resource == nil || resource.Category == "" || course.Category == "" {
		return
	}
	if !strings.EqualFold(resource.Category, course.Category) {
		result.Set(domain.FieldResourceID, domain.KindCategoryMismatch)
	}
}

// checkInstructorLicense проверяет наличие у инструктора категории курса
func checkInstructorLicense(course *domain.Course, instructor *domain.Instructor, result domain.ValidationResult) {
	if course.Category == "" {
		return
	}
	if !instructor.HasLicenseCategory(course.Category) {
		result.Set(domain.FieldInstructorID, domain.KindInstructorLicenseMismatch)
	}
}

// fieldNames возвращает отсортированный список полей с ошибками (для логов)
func fieldNames(result domain.ValidationResult) []string {
	names := make([]string, 0, len(result))
	for field := range result {
		names = append(names, field)
	}
	sort.Strings(names)
	return names
}

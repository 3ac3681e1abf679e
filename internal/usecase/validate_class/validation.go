package validate_class

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/m04kA/DSM-SchedulingService/internal/domain"
	catalogRepo "github.com/m04kA/DSM-SchedulingService/internal/infra/storage/catalog"
	"github.com/m04kA/DSM-SchedulingService/pkg/types"
)

// requireClassFields проверяет наличие обязательных полей
func requireClassFields(req *Request, result domain.ValidationResult) {
	if req.CourseID <= 0 {
		result.Set(domain.FieldCourseID, domain.KindRequiredField)
	}
	if req.InstructorID <= 0 {
		result.Set(domain.FieldInstructorID, domain.KindRequiredField)
	}
	if req.ResourceID <= 0 {
		result.Set(domain.FieldResourceID, domain.KindRequiredField)
	}
	if req.ScheduledAt.IsZero() {
		result.Set(domain.FieldScheduledTime, domain.KindRequiredField)
	}
	if req.MaxStudents == 0 {
		result.Set(domain.FieldMaxStudents, domain.KindRequiredField)
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

// checkAvailability проверяет попадание времени начала в окна доступности
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

// checkCategoryMatch проверяет соответствие категории класса категории курса
func checkCategoryMatch(course *domain.Course, resource *domain.Resource, result domain.ValidationResult) {
	if resource.Category == "" || course.Category == "" {
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

// checkCapacity проверяет потолок группы против вместимости класса,
// выбранных студентов и (при редактировании) уже записанных.
// Первая сработавшая проверка поля фиксируется, остальные не затирают её.
func checkCapacity(req *Request, resource *domain.Resource, enrolledCount int, result domain.ValidationResult) {
	selected := len(req.StudentIDs)

	if req.MaxStudents < 0 || req.MaxStudents > resource.MaxCapacity {
		result.Set(domain.FieldMaxStudents, domain.KindCapacityExceeded)
	}
	if req.CurrentID != nil && req.MaxStudents < enrolledCount {
		result.Set(domain.FieldMaxStudents, domain.KindCapacityBelowEnrolled)
	}
	if selected > 0 && req.MaxStudents < selected {
		result.Set(domain.FieldMaxStudents, domain.KindCapacityBelowSelected)
	}
	if selected > resource.MaxCapacity {
		result.Set(domain.FieldStudentIDs, domain.KindSelectedStudentsExceedCapacity)
	}
}

// findStudentsWithoutEnrollment проверяет действующие зачисления выбранных
// студентов на курс. Проверки выполняются параллельно и сливаются в один
// отсортированный список нарушителей.
func (uc *UseCase) findStudentsWithoutEnrollment(ctx context.Context, studentIDs []int64, courseID int64) ([]int64, error) {
	if len(studentIDs) == 0 {
		return nil, nil
	}

	var (
		mu       sync.Mutex
		wg       sync.WaitGroup
		missing  []int64
		fetchErr error
	)

	for _, studentID := range studentIDs {
		wg.Add(1)
		go func(studentID int64) {
			defer wg.Done()

			_, err := uc.catalogRepo.GetActiveEnrollment(ctx, studentID, courseID)
			if err == nil {
				return
			}

			mu.Lock()
			defer mu.Unlock()
			if errors.Is(err, catalogRepo.ErrEnrollmentNotFound) {
				missing = append(missing, studentID)
				return
			}
			if fetchErr == nil {
				fetchErr = err
			}
		}(studentID)
	}

	wg.Wait()

	if fetchErr != nil {
		uc.logger.Error("ValidateClass: failed to check enrollments for course id=%d: %v", courseID, fetchErr)
		return nil, fmt.Errorf("%w: failed to check enrollments: %v", ErrInternal, fetchErr)
	}

	sort.Slice(missing, func(i, j int) bool { return missing[i] < missing[j] })
	return missing, nil
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

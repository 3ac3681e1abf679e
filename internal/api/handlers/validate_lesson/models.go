package validate_lesson

import (
	"time"

	"github.com/m04kA/DSM-SchedulingService/internal/domain"
	validateLesson "github.com/m04kA/DSM-SchedulingService/internal/usecase/validate_lesson"
)

// ValidateLessonRequest HTTP request model
type ValidateLessonRequest struct {
	EnrollmentID    int64  `json:"enrollmentId"`
	InstructorID    int64  `json:"instructorId"`
	ResourceID      *int64 `json:"resourceId,omitempty"`
	ScheduledAt     string `json:"scheduledAt"` // RFC3339, "2026-09-01T09:30:00+03:00"
	DurationMinutes int    `json:"durationMinutes,omitempty"`
	CurrentID       *int64 `json:"currentId,omitempty"`
}

// FieldErrorResponse ошибка валидации одного поля
type FieldErrorResponse struct {
	Kind       string  `json:"kind"`
	StudentIDs []int64 `json:"studentIds,omitempty"`
}

// ValidationResponse HTTP response model
type ValidationResponse struct {
	Valid  bool                          `json:"valid"`
	Errors map[string]FieldErrorResponse `json:"errors"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *ValidateLessonRequest) ToUseCaseRequest() (*validateLesson.Request, error) {
	scheduledAt, err := time.Parse(time.RFC3339, r.ScheduledAt)
	if err != nil {
		return nil, err
	}

	return &validateLesson.Request{
		EnrollmentID:    r.EnrollmentID,
		InstructorID:    r.InstructorID,
		ResourceID:      r.ResourceID,
		ScheduledAt:     scheduledAt,
		DurationMinutes: r.DurationMinutes,
		CurrentID:       r.CurrentID,
	}, nil
}

// FromValidationResult конвертирует результат валидации в HTTP response
func FromValidationResult(result domain.ValidationResult) *ValidationResponse {
	errs := make(map[string]FieldErrorResponse, len(result))
	for field, fieldErr := range result {
		errs[field] = FieldErrorResponse{
			Kind:       string(fieldErr.Kind),
			StudentIDs: fieldErr.StudentIDs,
		}
	}
	return &ValidationResponse{
		Valid:  result.Valid(),
		Errors: errs,
	}
}

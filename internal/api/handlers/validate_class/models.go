package validate_class

import (
	"time"

	"github.com/m04kA/DSM-SchedulingService/internal/domain"
	validateClass "github.com/m04kA/DSM-SchedulingService/internal/usecase/validate_class"
)

// ValidateClassRequest HTTP request model
type ValidateClassRequest struct {
	CourseID        int64   `json:"courseId"`
	InstructorID    int64   `json:"instructorId"`
	ResourceID      int64   `json:"resourceId"`
	ScheduledAt     string  `json:"scheduledAt"` // RFC3339
	DurationMinutes int     `json:"durationMinutes,omitempty"`
	MaxStudents     int     `json:"maxStudents"`
	StudentIDs      []int64 `json:"studentIds,omitempty"`
	CurrentID       *int64  `json:"currentId,omitempty"`
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
func (r *ValidateClassRequest) ToUseCaseRequest() (*validateClass.Request, error) {
	scheduledAt, err := time.Parse(time.RFC3339, r.ScheduledAt)
	if err != nil {
		return nil, err
	}

	return &validateClass.Request{
		CourseID:        r.CourseID,
		InstructorID:    r.InstructorID,
		ResourceID:      r.ResourceID,
		ScheduledAt:     scheduledAt,
		DurationMinutes: r.DurationMinutes,
		MaxStudents:     r.MaxStudents,
		StudentIDs:      r.StudentIDs,
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

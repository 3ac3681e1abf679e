package book_lesson

import (
	"time"

	"github.com/m04kA/DSM-SchedulingService/internal/domain"
	bookLesson "github.com/m04kA/DSM-SchedulingService/internal/usecase/book_lesson"
)

// BookLessonRequest HTTP request model
type BookLessonRequest struct {
	EnrollmentID    int64  `json:"enrollmentId"`
	InstructorID    int64  `json:"instructorId"`
	ResourceID      *int64 `json:"resourceId,omitempty"`
	ScheduledAt     string `json:"scheduledAt"` // RFC3339
	DurationMinutes int    `json:"durationMinutes,omitempty"`
}

// FieldErrorResponse ошибка валидации одного поля
type FieldErrorResponse struct {
	Kind       string  `json:"kind"`
	StudentIDs []int64 `json:"studentIds,omitempty"`
}

// ValidationResponse HTTP response model для отклоненного запроса
type ValidationResponse struct {
	Valid  bool                          `json:"valid"`
	Errors map[string]FieldErrorResponse `json:"errors"`
}

// LessonResponse HTTP response model для созданного занятия
type LessonResponse struct {
	ID              int64  `json:"id"`
	EnrollmentID    int64  `json:"enrollmentId"`
	StudentID       int64  `json:"studentId"`
	InstructorID    int64  `json:"instructorId"`
	ResourceID      *int64 `json:"resourceId,omitempty"`
	BookingDate     string `json:"bookingDate"`
	StartTime       string `json:"startTime"`
	DurationMinutes int    `json:"durationMinutes"`
	Status          string `json:"status"`
	CreatedAt       string `json:"createdAt"`
	UpdatedAt       string `json:"updatedAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *BookLessonRequest) ToUseCaseRequest() (*bookLesson.Request, error) {
	scheduledAt, err := time.Parse(time.RFC3339, r.ScheduledAt)
	if err != nil {
		return nil, err
	}

	return &bookLesson.Request{
		EnrollmentID:    r.EnrollmentID,
		InstructorID:    r.InstructorID,
		ResourceID:      r.ResourceID,
		ScheduledAt:     scheduledAt,
		DurationMinutes: r.DurationMinutes,
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

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *bookLesson.Response) *LessonResponse {
	return &LessonResponse{
		ID:              resp.ID,
		EnrollmentID:    resp.EnrollmentID,
		StudentID:       resp.StudentID,
		InstructorID:    resp.InstructorID,
		ResourceID:      resp.ResourceID,
		BookingDate:     resp.BookingDate.Format(domain.DateFormat),
		StartTime:       resp.StartTime.String(),
		DurationMinutes: resp.DurationMinutes,
		Status:          resp.Status,
		CreatedAt:       resp.CreatedAt.Format(time.RFC3339),
		UpdatedAt:       resp.UpdatedAt.Format(time.RFC3339),
	}
}

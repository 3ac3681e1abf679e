package schedule_class

import (
	"time"

	"github.com/m04kA/DSM-SchedulingService/internal/domain"
	scheduleClass "github.com/m04kA/DSM-SchedulingService/internal/usecase/schedule_class"
)

// ScheduleClassRequest HTTP request model
type ScheduleClassRequest struct {
	CourseID        int64   `json:"courseId"`
	InstructorID    int64   `json:"instructorId"`
	ResourceID      int64   `json:"resourceId"`
	ScheduledAt     string  `json:"scheduledAt"` // RFC3339
	DurationMinutes int     `json:"durationMinutes,omitempty"`
	MaxStudents     int     `json:"maxStudents"`
	StudentIDs      []int64 `json:"studentIds,omitempty"`
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

// ClassResponse HTTP response model для созданного занятия
type ClassResponse struct {
	ID              int64   `json:"id"`
	CourseID        int64   `json:"courseId"`
	InstructorID    int64   `json:"instructorId"`
	ResourceID      int64   `json:"resourceId"`
	BookingDate     string  `json:"bookingDate"`
	StartTime       string  `json:"startTime"`
	DurationMinutes int     `json:"durationMinutes"`
	MaxStudents     int     `json:"maxStudents"`
	StudentIDs      []int64 `json:"studentIds"`
	Status          string  `json:"status"`
	CreatedAt       string  `json:"createdAt"`
	UpdatedAt       string  `json:"updatedAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *ScheduleClassRequest) ToUseCaseRequest() (*scheduleClass.Request, error) {
	scheduledAt, err := time.Parse(time.RFC3339, r.ScheduledAt)
	if err != nil {
		return nil, err
	}

	return &scheduleClass.Request{
		CourseID:        r.CourseID,
		InstructorID:    r.InstructorID,
		ResourceID:      r.ResourceID,
		ScheduledAt:     scheduledAt,
		DurationMinutes: r.DurationMinutes,
		MaxStudents:     r.MaxStudents,
		StudentIDs:      r.StudentIDs,
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
func FromUseCaseResponse(resp *scheduleClass.Response) *ClassResponse {
	studentIDs := resp.StudentIDs
	if studentIDs == nil {
		studentIDs = []int64{}
	}
	return &ClassResponse{
		ID:              resp.ID,
		CourseID:        resp.CourseID,
		InstructorID:    resp.InstructorID,
		ResourceID:      resp.ResourceID,
		BookingDate:     resp.BookingDate.Format(domain.DateFormat),
		StartTime:       resp.StartTime.String(),
		DurationMinutes: resp.DurationMinutes,
		MaxStudents:     resp.MaxStudents,
		StudentIDs:      studentIDs,
		Status:          resp.Status,
		CreatedAt:       resp.CreatedAt.Format(time.RFC3339),
		UpdatedAt:       resp.UpdatedAt.Format(time.RFC3339),
	}
}

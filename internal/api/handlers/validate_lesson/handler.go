package validate_lesson

import (
	"errors"
	"net/http"

	"github.com/m04kA/DSM-SchedulingService/internal/api/handlers"
	validateLesson "github.com/m04kA/DSM-SchedulingService/internal/usecase/validate_lesson"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidScheduledAt = "некорректный формат времени начала, ожидается RFC3339"
	msgEnrollmentNotFound = "зачисление не найдено"
	msgCourseNotFound     = "курс не найден"
	msgInstructorNotFound = "инструктор не найден"
	msgResourceNotFound   = "ресурс не найден"
	msgInvalidInput       = "некорректные входные данные"
)

type Handler struct {
	useCase ValidateLessonUseCase
	logger  Logger
}

func NewHandler(useCase ValidateLessonUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/validate/lessons
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req ValidateLessonRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /validate/lessons - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest()
	if err != nil {
		h.logger.Warn("POST /validate/lessons - Failed to parse scheduledAt: %v", err)
		handlers.RespondBadRequest(w, msgInvalidScheduledAt)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, validateLesson.ErrEnrollmentNotFound):
			h.logger.Warn("POST /validate/lessons - Enrollment not found: enrollment_id=%d", req.EnrollmentID)
			handlers.RespondNotFound(w, msgEnrollmentNotFound)

		case errors.Is(err, validateLesson.ErrCourseNotFound):
			h.logger.Warn("POST /validate/lessons - Course not found: enrollment_id=%d", req.EnrollmentID)
			handlers.RespondNotFound(w, msgCourseNotFound)

		case errors.Is(err, validateLesson.ErrInstructorNotFound):
			h.logger.Warn("POST /validate/lessons - Instructor not found: instructor_id=%d", req.InstructorID)
			handlers.RespondNotFound(w, msgInstructorNotFound)

		case errors.Is(err, validateLesson.ErrResourceNotFound):
			h.logger.Warn("POST /validate/lessons - Resource not found: enrollment_id=%d", req.EnrollmentID)
			handlers.RespondNotFound(w, msgResourceNotFound)

		case errors.Is(err, validateLesson.ErrInvalidInput):
			h.logger.Warn("POST /validate/lessons - Invalid input: enrollment_id=%d, error=%v", req.EnrollmentID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("POST /validate/lessons - Failed to validate: enrollment_id=%d, instructor_id=%d, error=%v",
				req.EnrollmentID, req.InstructorID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	response := FromValidationResult(result.Errors)

	h.logger.Info("POST /validate/lessons - Validation completed: enrollment_id=%d, instructor_id=%d, valid=%t, errors=%d",
		req.EnrollmentID, req.InstructorID, response.Valid, len(response.Errors))
	handlers.RespondJSON(w, http.StatusOK, response)
}

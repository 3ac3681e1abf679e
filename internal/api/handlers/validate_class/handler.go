package validate_class

import (
	"errors"
	"net/http"

	"github.com/m04kA/DSM-SchedulingService/internal/api/handlers"
	validateClass "github.com/m04kA/DSM-SchedulingService/internal/usecase/validate_class"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidScheduledAt = "некорректный формат времени начала, ожидается RFC3339"
	msgCourseNotFound     = "курс не найден"
	msgInstructorNotFound = "инструктор не найден"
	msgResourceNotFound   = "ресурс не найден"
	msgBookingNotFound    = "занятие не найдено"
	msgInvalidInput       = "некорректные входные данные"
)

type Handler struct {
	useCase ValidateClassUseCase
	logger  Logger
}

func NewHandler(useCase ValidateClassUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/validate/classes
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req ValidateClassRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /validate/classes - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest()
	if err != nil {
		h.logger.Warn("POST /validate/classes - Failed to parse scheduledAt: %v", err)
		handlers.RespondBadRequest(w, msgInvalidScheduledAt)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, validateClass.ErrCourseNotFound):
			h.logger.Warn("POST /validate/classes - Course not found: course_id=%d", req.CourseID)
			handlers.RespondNotFound(w, msgCourseNotFound)

		case errors.Is(err, validateClass.ErrInstructorNotFound):
			h.logger.Warn("POST /validate/classes - Instructor not found: instructor_id=%d", req.InstructorID)
			handlers.RespondNotFound(w, msgInstructorNotFound)

		case errors.Is(err, validateClass.ErrResourceNotFound):
			h.logger.Warn("POST /validate/classes - Resource not found: resource_id=%d", req.ResourceID)
			handlers.RespondNotFound(w, msgResourceNotFound)

		case errors.Is(err, validateClass.ErrBookingNotFound):
			h.logger.Warn("POST /validate/classes - Booking not found: current_id=%v", req.CurrentID)
			handlers.RespondNotFound(w, msgBookingNotFound)

		case errors.Is(err, validateClass.ErrInvalidInput):
			h.logger.Warn("POST /validate/classes - Invalid input: course_id=%d, error=%v", req.CourseID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("POST /validate/classes - Failed to validate: course_id=%d, instructor_id=%d, error=%v",
				req.CourseID, req.InstructorID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	response := FromValidationResult(result.Errors)

	h.logger.Info("POST /validate/classes - Validation completed: course_id=%d, instructor_id=%d, valid=%t, errors=%d",
		req.CourseID, req.InstructorID, response.Valid, len(response.Errors))
	handlers.RespondJSON(w, http.StatusOK, response)
}

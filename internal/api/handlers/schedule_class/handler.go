package schedule_class

import (
	"errors"
	"net/http"

	"github.com/m04kA/DSM-SchedulingService/internal/api/handlers"
	"github.com/m04kA/DSM-SchedulingService/internal/api/middleware"
	scheduleClass "github.com/m04kA/DSM-SchedulingService/internal/usecase/schedule_class"
	validateClass "github.com/m04kA/DSM-SchedulingService/internal/usecase/validate_class"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgInvalidScheduledAt = "некорректный формат времени начала, ожидается RFC3339"
	msgSlotTaken          = "выбранный временной слот уже занят"
	msgCourseNotFound     = "курс не найден"
	msgInstructorNotFound = "инструктор не найден"
	msgResourceNotFound   = "ресурс не найден"
)

type Handler struct {
	useCase ScheduleClassUseCase
	logger  Logger
}

func NewHandler(useCase ScheduleClassUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/classes
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	// Получаем userID из контекста (через middleware Auth)
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /classes - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req ScheduleClassRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /classes - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest()
	if err != nil {
		h.logger.Warn("POST /classes - Failed to parse scheduledAt: %v", err)
		handlers.RespondBadRequest(w, msgInvalidScheduledAt)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, scheduleClass.ErrSlotTaken):
			h.logger.Warn("POST /classes - Slot taken: course_id=%d, instructor_id=%d",
				req.CourseID, req.InstructorID)
			handlers.RespondError(w, http.StatusConflict, msgSlotTaken)

		case errors.Is(err, validateClass.ErrCourseNotFound):
			h.logger.Warn("POST /classes - Course not found: course_id=%d", req.CourseID)
			handlers.RespondNotFound(w, msgCourseNotFound)

		case errors.Is(err, validateClass.ErrInstructorNotFound):
			h.logger.Warn("POST /classes - Instructor not found: instructor_id=%d", req.InstructorID)
			handlers.RespondNotFound(w, msgInstructorNotFound)

		case errors.Is(err, validateClass.ErrResourceNotFound):
			h.logger.Warn("POST /classes - Resource not found: resource_id=%d", req.ResourceID)
			handlers.RespondNotFound(w, msgResourceNotFound)

		default:
			h.logger.Error("POST /classes - Failed to schedule class: course_id=%d, instructor_id=%d, error=%v",
				req.CourseID, req.InstructorID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	if !result.Created() {
		h.logger.Warn("POST /classes - Validation rejected: course_id=%d, instructor_id=%d, errors=%d",
			req.CourseID, req.InstructorID, len(result.Errors))
		handlers.RespondJSON(w, http.StatusUnprocessableEntity, FromValidationResult(result.Errors))
		return
	}

	h.logger.Info("POST /classes - Class scheduled successfully: booking_id=%d, course_id=%d, instructor_id=%d, user_id=%d",
		result.ID, req.CourseID, req.InstructorID, userID)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}

package book_lesson

import (
	"errors"
	"net/http"

	"github.com/m04kA/DSM-SchedulingService/internal/api/handlers"
	"github.com/m04kA/DSM-SchedulingService/internal/api/middleware"
	bookLesson "github.com/m04kA/DSM-SchedulingService/internal/usecase/book_lesson"
	validateLesson "github.com/m04kA/DSM-SchedulingService/internal/usecase/validate_lesson"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgInvalidScheduledAt = "некорректный формат времени начала, ожидается RFC3339"
	msgSlotTaken          = "выбранный временной слот уже занят"
	msgEnrollmentNotFound = "зачисление не найдено"
	msgCourseNotFound     = "курс не найден"
	msgInstructorNotFound = "инструктор не найден"
	msgResourceNotFound   = "ресурс не найден"
)

type Handler struct {
	useCase BookLessonUseCase
	logger  Logger
}

func NewHandler(useCase BookLessonUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/lessons
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	// Получаем userID из контекста (через middleware Auth)
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /lessons - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req BookLessonRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /lessons - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest()
	if err != nil {
		h.logger.Warn("POST /lessons - Failed to parse scheduledAt: %v", err)
		handlers.RespondBadRequest(w, msgInvalidScheduledAt)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, bookLesson.ErrSlotTaken):
			h.logger.Warn("POST /lessons - Slot taken: enrollment_id=%d, instructor_id=%d",
				req.EnrollmentID, req.InstructorID)
			handlers.RespondError(w, http.StatusConflict, msgSlotTaken)

		case errors.Is(err, validateLesson.ErrEnrollmentNotFound):
			h.logger.Warn("POST /lessons - Enrollment not found: enrollment_id=%d", req.EnrollmentID)
			handlers.RespondNotFound(w, msgEnrollmentNotFound)

		case errors.Is(err, validateLesson.ErrCourseNotFound):
			h.logger.Warn("POST /lessons - Course not found: enrollment_id=%d", req.EnrollmentID)
			handlers.RespondNotFound(w, msgCourseNotFound)

		case errors.Is(err, validateLesson.ErrInstructorNotFound):
			h.logger.Warn("POST /lessons - Instructor not found: instructor_id=%d", req.InstructorID)
			handlers.RespondNotFound(w, msgInstructorNotFound)

		case errors.Is(err, validateLesson.ErrResourceNotFound):
			h.logger.Warn("POST /lessons - Resource not found: enrollment_id=%d", req.EnrollmentID)
			handlers.RespondNotFound(w, msgResourceNotFound)

		default:
			h.logger.Error("POST /lessons - Failed to book lesson: enrollment_id=%d, instructor_id=%d, error=%v",
				req.EnrollmentID, req.InstructorID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	if !result.Created() {
		h.logger.Warn("POST /lessons - Validation rejected: enrollment_id=%d, instructor_id=%d, errors=%d",
			req.EnrollmentID, req.InstructorID, len(result.Errors))
		handlers.RespondJSON(w, http.StatusUnprocessableEntity, FromValidationResult(result.Errors))
		return
	}

	h.logger.Info("POST /lessons - Lesson booked successfully: booking_id=%d, enrollment_id=%d, instructor_id=%d, user_id=%d",
		result.ID, req.EnrollmentID, req.InstructorID, userID)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}

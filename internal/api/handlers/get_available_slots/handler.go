package get_available_slots

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/DSM-SchedulingService/internal/api/handlers"
	getAvailableSlots "github.com/m04kA/DSM-SchedulingService/internal/usecase/get_available_slots"
)

const (
	msgInvalidInstructorID = "некорректный ID инструктора"
	msgMissingEnrollmentID = "ID зачисления обязателен"
	msgInvalidEnrollmentID = "некорректный ID зачисления"
	msgMissingDate         = "дата обязательна"
	msgInvalidDate         = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgInvalidDuration     = "некорректная длительность занятия"
	msgEnrollmentNotFound  = "зачисление не найдено"
	msgInvalidInput        = "некорректные входные данные"
)

type Handler struct {
	useCase GetAvailableSlotsUseCase
	logger  Logger
}

func NewHandler(useCase GetAvailableSlotsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/instructors/{instructorId}/available-slots
// Query params: enrollmentId (required), date (required, YYYY-MM-DD),
// durationMinutes (optional)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	instructorID, err := strconv.ParseInt(vars["instructorId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /instructors/{id}/available-slots - Invalid instructor ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidInstructorID)
		return
	}

	enrollmentIDStr := r.URL.Query().Get("enrollmentId")
	if enrollmentIDStr == "" {
		h.logger.Warn("GET /instructors/{id}/available-slots - Missing enrollment ID")
		handlers.RespondBadRequest(w, msgMissingEnrollmentID)
		return
	}

	enrollmentID, err := strconv.ParseInt(enrollmentIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("GET /instructors/{id}/available-slots - Invalid enrollment ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidEnrollmentID)
		return
	}

	dateStr := r.URL.Query().Get("date")
	if dateStr == "" {
		h.logger.Warn("GET /instructors/{id}/available-slots - Missing date")
		handlers.RespondBadRequest(w, msgMissingDate)
		return
	}

	durationMinutes := 0
	if durationStr := r.URL.Query().Get("durationMinutes"); durationStr != "" {
		durationMinutes, err = strconv.Atoi(durationStr)
		if err != nil {
			h.logger.Warn("GET /instructors/{id}/available-slots - Invalid duration: %v", err)
			handlers.RespondBadRequest(w, msgInvalidDuration)
			return
		}
	}

	useCaseReq, err := ToUseCaseRequest(instructorID, enrollmentID, dateStr, durationMinutes)
	if err != nil {
		h.logger.Warn("GET /instructors/{id}/available-slots - Invalid date format: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, getAvailableSlots.ErrEnrollmentNotFound):
			h.logger.Warn("GET /instructors/{id}/available-slots - Enrollment not found: enrollment_id=%d", enrollmentID)
			handlers.RespondNotFound(w, msgEnrollmentNotFound)

		case errors.Is(err, getAvailableSlots.ErrInvalidInput):
			h.logger.Warn("GET /instructors/{id}/available-slots - Invalid input: instructor_id=%d, error=%v",
				instructorID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("GET /instructors/{id}/available-slots - Failed to get slots: instructor_id=%d, enrollment_id=%d, error=%v",
				instructorID, enrollmentID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	response := FromUseCaseResponse(result)

	h.logger.Info("GET /instructors/{id}/available-slots - Slots retrieved successfully: instructor_id=%d, enrollment_id=%d, slots_count=%d",
		instructorID, enrollmentID, len(result.Slots))
	handlers.RespondJSON(w, http.StatusOK, response)
}

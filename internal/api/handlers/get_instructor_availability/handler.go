package get_instructor_availability

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/DSM-SchedulingService/internal/api/handlers"
	"github.com/m04kA/DSM-SchedulingService/internal/service/availability"
)

const (
	msgInvalidInstructorID = "некорректный ID инструктора"
	msgInstructorNotFound  = "инструктор не найден"
)

type Handler struct {
	service AvailabilityService
	logger  Logger
}

func NewHandler(service AvailabilityService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/instructors/{instructorId}/availability
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	instructorID, err := strconv.ParseInt(vars["instructorId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /instructors/{id}/availability - Invalid instructor ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidInstructorID)
		return
	}

	week, err := h.service.GetWeek(r.Context(), instructorID)
	if err != nil {
		switch {
		case errors.Is(err, availability.ErrInstructorNotFound):
			h.logger.Warn("GET /instructors/{id}/availability - Instructor not found: instructor_id=%d", instructorID)
			handlers.RespondNotFound(w, msgInstructorNotFound)

		default:
			h.logger.Error("GET /instructors/{id}/availability - Failed to get availability: instructor_id=%d, error=%v",
				instructorID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /instructors/{id}/availability - Availability retrieved successfully: instructor_id=%d, days=%d",
		instructorID, len(week.Days))
	handlers.RespondJSON(w, http.StatusOK, week)
}

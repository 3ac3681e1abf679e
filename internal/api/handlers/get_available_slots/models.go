package get_available_slots

import (
	"time"

	"github.com/m04kA/DSM-SchedulingService/internal/domain"
	getAvailableSlots "github.com/m04kA/DSM-SchedulingService/internal/usecase/get_available_slots"
)

// AvailableSlotsResponse HTTP response model
type AvailableSlotsResponse struct {
	InstructorID    int64    `json:"instructorId"`
	Date            string   `json:"date"`
	DurationMinutes int      `json:"durationMinutes"`
	Slots           []string `json:"slots"` // времена начала "HH:MM" по возрастанию
}

// ToUseCaseRequest конвертирует параметры запроса в модель use case
func ToUseCaseRequest(instructorID, enrollmentID int64, dateStr string, durationMinutes int) (*getAvailableSlots.Request, error) {
	date, err := time.Parse(domain.DateFormat, dateStr)
	if err != nil {
		return nil, err
	}

	return &getAvailableSlots.Request{
		InstructorID:    instructorID,
		EnrollmentID:    enrollmentID,
		Date:            date,
		DurationMinutes: durationMinutes,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getAvailableSlots.Response) *AvailableSlotsResponse {
	slots := make([]string, 0, len(resp.Slots))
	for _, slot := range resp.Slots {
		slots = append(slots, slot.String())
	}
	return &AvailableSlotsResponse{
		InstructorID:    resp.InstructorID,
		Date:            resp.Date.Format(domain.DateFormat),
		DurationMinutes: resp.DurationMinutes,
		Slots:           slots,
	}
}

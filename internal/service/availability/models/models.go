package models

import (
	"github.com/m04kA/DSM-SchedulingService/internal/domain"
)

// DayAvailabilityResponse границы слотов инструктора на один день недели
type DayAvailabilityResponse struct {
	DayOfWeek  int      `json:"dayOfWeek"`  // 0 = воскресенье ... 6 = суббота
	DayName    string   `json:"dayName"`    // "Monday", ...
	StartTimes []string `json:"startTimes"` // границы "HH:MM" по возрастанию
}

// WeekAvailabilityResponse недельное расписание доступности инструктора
type WeekAvailabilityResponse struct {
	InstructorID int64                     `json:"instructorId"`
	Days         []DayAvailabilityResponse `json:"days"`
}

// FromDomainWeek конвертирует доменные окна доступности в ответ API
func FromDomainWeek(instructorID int64, week []*domain.WeeklyAvailability) *WeekAvailabilityResponse {
	days := make([]DayAvailabilityResponse, 0, len(week))
	for _, day := range week {
		startTimes := make([]string, 0, len(day.StartTimes))
		for _, t := range day.StartTimes {
			startTimes = append(startTimes, t.String())
		}
		days = append(days, DayAvailabilityResponse{
			DayOfWeek:  int(day.DayOfWeek),
			DayName:    day.DayOfWeek.String(),
			StartTimes: startTimes,
		})
	}
	return &WeekAvailabilityResponse{
		InstructorID: instructorID,
		Days:         days,
	}
}

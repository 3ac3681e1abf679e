package domain

import (
	"time"

	"github.com/m04kA/DSM-SchedulingService/pkg/types"
)

// BookingKind represents the type of a booking
type BookingKind string

const (
	// KindLesson практическое занятие (вождение) для одного студента
	KindLesson BookingKind = "lesson"

	// KindClass теоретическое занятие в учебном классе для группы студентов
	KindClass BookingKind = "class"
)

// BookingStatus represents the status of a booking
type BookingStatus string

const (
	StatusScheduled BookingStatus = "scheduled"
	StatusCompleted BookingStatus = "completed"
	StatusCanceled  BookingStatus = "canceled"
)

// Booking represents a scheduled lesson or theory class
type Booking struct {
	ID           int64
	Kind         BookingKind
	InstructorID int64

	// Практическое занятие: зачисление и денормализованный ID студента
	EnrollmentID *int64
	StudentID    *int64

	// Теоретическое занятие: курс и список записанных студентов
	CourseID   *int64
	StudentIDs []int64

	// MaxStudents потолок группы для теоретического занятия
	MaxStudents *int

	ResourceID      *int64
	BookingDate     time.Time
	StartTime       types.TimeString
	DurationMinutes int
	Status          BookingStatus

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsActive returns true if the booking counts toward conflicts
func (b *Booking) IsActive() bool {
	return b.Status != StatusCanceled
}

// IsCanceled returns true if the booking has been canceled
func (b *Booking) IsCanceled() bool {
	return b.Status == StatusCanceled
}

// EndTime returns the end boundary of the booking interval
func (b *Booking) EndTime() (types.TimeString, error) {
	return b.StartTime.AddMinutes(b.DurationMinutes)
}

// HasStudent returns true if the student takes part in the booking
func (b *Booking) HasStudent(studentID int64) bool {
	if b.StudentID != nil && *b.StudentID == studentID {
		return true
	}
	for _, id := range b.StudentIDs {
		if id == studentID {
			return true
		}
	}
	return false
}

// BookingsFilter фильтр для выборки занятий.
// Все поля опциональны, кроме даты для однодневных сканов конфликтов.
type BookingsFilter struct {
	Kind            *BookingKind
	InstructorID    *int64
	StudentID       *int64 // для lesson - по зачислению, для class - по составу группы
	ResourceID      *int64
	Date            *time.Time
	ExcludeID       *int64 // исключить занятие из выборки (редактирование)
	IncludeInactive bool   // включать ли отмененные занятия
}

// HasOverlap проверяет, пересекается ли интервал [start, start+duration)
// хотя бы с одним активным занятием из списка.
//
// Пересечение считается по строгим неравенствам: занятия, идущие встык
// (конец одного равен началу другого), НЕ конфликтуют.
//
// Занятие с ID, равным excludeID, пропускается - при редактировании
// занятие не конфликтует само с собой.
//
// Интервал, выходящий за границу суток, обрезается по "24:00": решение,
// допустимо ли такое время начала вообще, остается за вызывающей стороной
// (см. FitsWithinDay).
func HasOverlap(start types.TimeString, durationMinutes int, bookings []*Booking, excludeID *int64) (bool, error) {
	end, err := clampToMidnight(start, durationMinutes)
	if err != nil {
		return false, err
	}

	for _, booking := range bookings {
		if excludeID != nil && booking.ID == *excludeID {
			continue
		}
		if !booking.IsActive() {
			continue
		}

		bookingEnd, err := clampToMidnight(booking.StartTime, booking.DurationMinutes)
		if err != nil {
			// Некорректное время начала занятия не может конфликтовать
			continue
		}

		if booking.StartTime.IsBefore(end) && bookingEnd.IsAfter(start) {
			return true, nil
		}
	}

	return false, nil
}

// FitsWithinDay проверяет, что интервал [start, start+duration)
// заканчивается не позже полуночи: занятия через полночь не планируются
func FitsWithinDay(start types.TimeString, durationMinutes int) bool {
	startMinutes, err := start.Minutes()
	if err != nil {
		return false
	}
	return startMinutes+durationMinutes <= types.MinutesPerDay
}

// clampToMidnight возвращает конец интервала, обрезанный по границе суток
func clampToMidnight(start types.TimeString, durationMinutes int) (types.TimeString, error) {
	startMinutes, err := start.Minutes()
	if err != nil {
		return "", err
	}
	endMinutes := startMinutes + durationMinutes
	if endMinutes > types.MinutesPerDay {
		endMinutes = types.MinutesPerDay
	}
	return types.NewTimeStringFromMinutes(endMinutes)
}

package get_available_slots

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/DSM-SchedulingService/internal/domain"
	catalogRepo "github.com/m04kA/DSM-SchedulingService/internal/infra/storage/catalog"
	"github.com/m04kA/DSM-SchedulingService/pkg/ptr"
	"github.com/m04kA/DSM-SchedulingService/pkg/types"
)

// UseCase use case перечисления доступных времен начала занятия:
// все 30-минутные границы внутри окон доступности инструктора, кроме
// прошедших и кроме тех, чей интервал пересекается с активными занятиями
// инструктора или студента.
type UseCase struct {
	bookingRepo      BookingRepository
	availabilityRepo AvailabilityRepository
	catalogRepo      CatalogRepository
	location         *time.Location
	timeProvider     TimeProvider
	logger           Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	availabilityRepo AvailabilityRepository,
	catalogRepo CatalogRepository,
	location *time.Location,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:      bookingRepo,
		availabilityRepo: availabilityRepo,
		catalogRepo:      catalogRepo,
		location:         location,
		timeProvider:     &RealTimeProvider{},
		logger:           logger,
	}
}

// Execute выполняет use case получения доступных слотов
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailableSlots: instructor=%d, enrollment=%d, date=%s",
		req.InstructorID, req.EnrollmentID, req.Date.Format(domain.DateFormat))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailableSlots: validation failed: %v", err)
		return nil, err
	}

	duration := req.DurationMinutes
	if duration == 0 {
		duration = domain.DefaultLessonDurationMinutes
	}

	now := uc.timeProvider.Now().In(uc.location)
	date := time.Date(req.Date.Year(), req.Date.Month(), req.Date.Day(), 0, 0, 0, 0, uc.location)

	response := &Response{
		InstructorID:    req.InstructorID,
		Date:            date,
		DurationMinutes: duration,
		Slots:           []types.TimeString{},
	}

	// 2. Прошедшие даты не дают слотов
	if isDateInPast(date, now) {
		return response, nil
	}

	// 3. Студент нужен, чтобы исключить пересечения с его занятиями
	enrollment, err := uc.catalogRepo.GetEnrollment(ctx, req.EnrollmentID)
	if err != nil {
		if errors.Is(err, catalogRepo.ErrEnrollmentNotFound) {
			uc.logger.Warn("GetAvailableSlots: enrollment id=%d not found", req.EnrollmentID)
			return nil, ErrEnrollmentNotFound
		}
		uc.logger.Error("GetAvailableSlots: failed to get enrollment id=%d: %v", req.EnrollmentID, err)
		return nil, fmt.Errorf("%w: failed to get enrollment: %v", ErrInternal, err)
	}

	// 4. Окна доступности инструктора на день недели
	windows, err := uc.availabilityRepo.GetByInstructorAndDay(ctx, req.InstructorID, date.Weekday())
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get availability for instructor id=%d: %v", req.InstructorID, err)
		return nil, fmt.Errorf("%w: failed to get availability: %v", ErrInternal, err)
	}
	if windows.IsEmpty() {
		uc.logger.Info("GetAvailableSlots: instructor=%d has no windows on %s",
			req.InstructorID, date.Weekday())
		return response, nil
	}

	// 5. Существующие занятия инструктора и студента на эту дату
	instructorBookings, err := uc.bookingRepo.GetWithFilter(ctx, domain.BookingsFilter{
		InstructorID: ptr.Ptr(req.InstructorID),
		Date:         &date,
	})
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get instructor bookings: %v", err)
		return nil, fmt.Errorf("%w: failed to get instructor bookings: %v", ErrInternal, err)
	}

	studentBookings, err := uc.bookingRepo.GetWithFilter(ctx, domain.BookingsFilter{
		StudentID: ptr.Ptr(enrollment.StudentID),
		Date:      &date,
	})
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get student bookings: %v", err)
		return nil, fmt.Errorf("%w: failed to get student bookings: %v", ErrInternal, err)
	}

	// 6. Генерируем кандидатов и отбрасываем прошедшие и конфликтующие
	slots, err := enumerateSlots(
		windows,
		mergeBookings(instructorBookings, studentBookings),
		duration,
		isSameDay(date, now),
		types.NewTimeString(now),
	)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to enumerate slots: %v", err)
		return nil, fmt.Errorf("%w: failed to enumerate slots: %v", ErrInternal, err)
	}

	uc.logger.Info("GetAvailableSlots: instructor=%d, date=%s - %d slots",
		req.InstructorID, date.Format(domain.DateFormat), len(slots))

	response.Slots = slots
	return response, nil
}

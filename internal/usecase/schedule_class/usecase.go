package schedule_class

import (
	"context"
	"fmt"
	"time"

	"github.com/m04kA/DSM-SchedulingService/internal/domain"
	validateClass "github.com/m04kA/DSM-SchedulingService/internal/usecase/validate_class"
	"github.com/m04kA/DSM-SchedulingService/pkg/ptr"
	"github.com/m04kA/DSM-SchedulingService/pkg/types"
)

// UseCase use case создания теоретического занятия.
// Схема та же, что и для практических занятий: предварительная валидация,
// затем повторный скан конфликтов и запись в сериализуемой транзакции.
type UseCase struct {
	validator   ClassValidator
	bookingRepo BookingRepository
	txManager   TransactionManager
	location    *time.Location
	logger      Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	validator ClassValidator,
	bookingRepo BookingRepository,
	txManager TransactionManager,
	location *time.Location,
	logger Logger,
) *UseCase {
	return &UseCase{
		validator:   validator,
		bookingRepo: bookingRepo,
		txManager:   txManager,
		location:    location,
		logger:      logger,
	}
}

// Execute выполняет use case создания теоретического занятия
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("ScheduleClass: course=%d, instructor=%d, resource=%d, at=%s",
		req.CourseID, req.InstructorID, req.ResourceID, req.ScheduledAt.Format(time.RFC3339))

	// 1. Полная валидация запроса
	validation, err := uc.validator.Execute(ctx, &validateClass.Request{
		CourseID:        req.CourseID,
		InstructorID:    req.InstructorID,
		ResourceID:      req.ResourceID,
		ScheduledAt:     req.ScheduledAt,
		DurationMinutes: req.DurationMinutes,
		MaxStudents:     req.MaxStudents,
		StudentIDs:      req.StudentIDs,
	})
	if err != nil {
		return nil, err
	}
	if !validation.Valid() {
		uc.logger.Warn("ScheduleClass: validation rejected course=%d, instructor=%d",
			req.CourseID, req.InstructorID)
		return &Response{Errors: validation.Errors}, nil
	}

	duration := req.DurationMinutes
	if duration == 0 {
		duration = domain.DefaultClassDurationMinutes
	}

	local := req.ScheduledAt.In(uc.location)
	date := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, uc.location)
	startTime := types.NewTimeString(local)

	var created *domain.Booking

	// 2. Повторная проверка конфликтов и запись - атомарно
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		scans := []domain.BookingsFilter{
			{InstructorID: ptr.Ptr(req.InstructorID), Date: &date},
			{Kind: ptr.Ptr(domain.KindClass), ResourceID: ptr.Ptr(req.ResourceID), Date: &date},
		}

		for _, filter := range scans {
			bookings, err := uc.bookingRepo.GetWithFilter(txCtx, filter)
			if err != nil {
				return fmt.Errorf("%w: conflict re-check: %v", ErrInternal, err)
			}
			conflict, err := domain.HasOverlap(startTime, duration, bookings, nil)
			if err != nil {
				return fmt.Errorf("%w: conflict re-check: %v", ErrInternal, err)
			}
			if conflict {
				return ErrSlotTaken
			}
		}

		booking := &domain.Booking{
			Kind:            domain.KindClass,
			InstructorID:    req.InstructorID,
			CourseID:        ptr.Ptr(req.CourseID),
			StudentIDs:      req.StudentIDs,
			MaxStudents:     ptr.Ptr(req.MaxStudents),
			ResourceID:      ptr.Ptr(req.ResourceID),
			BookingDate:     date,
			StartTime:       startTime,
			DurationMinutes: duration,
			Status:          domain.StatusScheduled,
		}

		var err error
		created, err = uc.bookingRepo.Create(txCtx, booking)
		if err != nil {
			return fmt.Errorf("%w: failed to create booking: %v", ErrInternal, err)
		}
		return nil
	})
	if err != nil {
		if err == ErrSlotTaken {
			uc.logger.Warn("ScheduleClass: slot taken concurrently, course=%d, instructor=%d",
				req.CourseID, req.InstructorID)
		} else {
			uc.logger.Error("ScheduleClass: transaction failed: %v", err)
		}
		return nil, err
	}

	uc.logger.Info("ScheduleClass: successfully created booking id=%d", created.ID)

	return &Response{
		Errors:          domain.NewValidationResult(),
		ID:              created.ID,
		CourseID:        req.CourseID,
		InstructorID:    created.InstructorID,
		ResourceID:      req.ResourceID,
		BookingDate:     created.BookingDate,
		StartTime:       created.StartTime,
		DurationMinutes: created.DurationMinutes,
		MaxStudents:     req.MaxStudents,
		StudentIDs:      created.StudentIDs,
		Status:          string(created.Status),
		CreatedAt:       created.CreatedAt,
		UpdatedAt:       created.UpdatedAt,
	}, nil
}

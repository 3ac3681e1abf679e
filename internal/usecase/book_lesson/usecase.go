package book_lesson

import (
	"context"
	"fmt"
	"time"

	"github.com/m04kA/DSM-SchedulingService/internal/domain"
	validateLesson "github.com/m04kA/DSM-SchedulingService/internal/usecase/validate_lesson"
	"github.com/m04kA/DSM-SchedulingService/pkg/ptr"
	"github.com/m04kA/DSM-SchedulingService/pkg/types"
)

// UseCase use case создания практического занятия.
//
// Предварительная валидация носит рекомендательный характер (между проверкой
// и записью слот может занять параллельный запрос), поэтому скан конфликтов
// повторяется в сериализуемой транзакции с блокировкой строк, и только после
// этого занятие создается.
type UseCase struct {
	validator   LessonValidator
	bookingRepo BookingRepository
	catalogRepo CatalogRepository
	txManager   TransactionManager
	location    *time.Location
	logger      Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	validator LessonValidator,
	bookingRepo BookingRepository,
	catalogRepo CatalogRepository,
	txManager TransactionManager,
	location *time.Location,
	logger Logger,
) *UseCase {
	return &UseCase{
		validator:   validator,
		bookingRepo: bookingRepo,
		catalogRepo: catalogRepo,
		txManager:   txManager,
		location:    location,
		logger:      logger,
	}
}

// Execute выполняет use case создания занятия
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("BookLesson: enrollment=%d, instructor=%d, at=%s",
		req.EnrollmentID, req.InstructorID, req.ScheduledAt.Format(time.RFC3339))

	// 1. Полная валидация запроса
	validation, err := uc.validator.Execute(ctx, &validateLesson.Request{
		EnrollmentID:    req.EnrollmentID,
		InstructorID:    req.InstructorID,
		ResourceID:      req.ResourceID,
		ScheduledAt:     req.ScheduledAt,
		DurationMinutes: req.DurationMinutes,
	})
	if err != nil {
		return nil, err
	}
	if !validation.Valid() {
		uc.logger.Warn("BookLesson: validation rejected enrollment=%d, instructor=%d",
			req.EnrollmentID, req.InstructorID)
		return &Response{Errors: validation.Errors}, nil
	}

	enrollment, err := uc.catalogRepo.GetEnrollment(ctx, req.EnrollmentID)
	if err != nil {
		uc.logger.Error("BookLesson: failed to get enrollment id=%d: %v", req.EnrollmentID, err)
		return nil, fmt.Errorf("%w: failed to get enrollment: %v", ErrInternal, err)
	}

	duration := req.DurationMinutes
	if duration == 0 {
		duration = domain.DefaultLessonDurationMinutes
	}

	local := req.ScheduledAt.In(uc.location)
	date := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, uc.location)
	startTime := types.NewTimeString(local)

	var created *domain.Booking

	// 2. Повторная проверка конфликтов и запись - атомарно.
	// Выборки внутри транзакции блокируют строки дня (FOR UPDATE),
	// так что два конкурирующих запроса на один слот сериализуются.
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		scans := []domain.BookingsFilter{
			{InstructorID: ptr.Ptr(req.InstructorID), Date: &date},
			{StudentID: ptr.Ptr(enrollment.StudentID), Date: &date},
		}
		if req.ResourceID != nil {
			scans = append(scans, domain.BookingsFilter{
				Kind:       ptr.Ptr(domain.KindLesson),
				ResourceID: req.ResourceID,
				Date:       &date,
			})
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
			Kind:            domain.KindLesson,
			InstructorID:    req.InstructorID,
			EnrollmentID:    ptr.Ptr(req.EnrollmentID),
			StudentID:       ptr.Ptr(enrollment.StudentID),
			ResourceID:      req.ResourceID,
			BookingDate:     date,
			StartTime:       startTime,
			DurationMinutes: duration,
			Status:          domain.StatusScheduled,
		}

		created, err = uc.bookingRepo.Create(txCtx, booking)
		if err != nil {
			return fmt.Errorf("%w: failed to create booking: %v", ErrInternal, err)
		}
		return nil
	})
	if err != nil {
		if err == ErrSlotTaken {
			uc.logger.Warn("BookLesson: slot taken concurrently, enrollment=%d, instructor=%d",
				req.EnrollmentID, req.InstructorID)
		} else {
			uc.logger.Error("BookLesson: transaction failed: %v", err)
		}
		return nil, err
	}

	uc.logger.Info("BookLesson: successfully created booking id=%d", created.ID)

	return &Response{
		Errors:          domain.NewValidationResult(),
		ID:              created.ID,
		EnrollmentID:    req.EnrollmentID,
		StudentID:       enrollment.StudentID,
		InstructorID:    created.InstructorID,
		ResourceID:      created.ResourceID,
		BookingDate:     created.BookingDate,
		StartTime:       created.StartTime,
		DurationMinutes: created.DurationMinutes,
		Status:          string(created.Status),
		CreatedAt:       created.CreatedAt,
		UpdatedAt:       created.UpdatedAt,
	}, nil
}

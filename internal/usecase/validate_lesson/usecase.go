package validate_lesson

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/DSM-SchedulingService/internal/domain"
	catalogRepo "github.com/m04kA/DSM-SchedulingService/internal/infra/storage/catalog"
	"github.com/m04kA/DSM-SchedulingService/pkg/ptr"
)

// UseCase use case валидации практического занятия.
//
// Все проверки независимы и накапливают ошибки в одной карте: падение одной
// проверки не скрывает остальные. Единственный ранний выход - отсутствие
// обязательных идентификаторов.
//
// Результат носит рекомендательный характер: между валидацией и созданием
// занятия слот может занять кто-то другой, поэтому создание повторяет
// проверку конфликтов в сериализуемой транзакции (см. book_lesson).
type UseCase struct {
	bookingRepo      BookingRepository
	availabilityRepo AvailabilityRepository
	catalogRepo      CatalogRepository
	location         *time.Location
	strictEmptyDays  bool
	logger           Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	availabilityRepo AvailabilityRepository,
	catalogRepo CatalogRepository,
	location *time.Location,
	strictEmptyDays bool,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:      bookingRepo,
		availabilityRepo: availabilityRepo,
		catalogRepo:      catalogRepo,
		location:         location,
		strictEmptyDays:  strictEmptyDays,
		logger:           logger,
	}
}

// Execute выполняет валидацию практического занятия
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("ValidateLesson: enrollment=%d, instructor=%d, at=%s",
		req.EnrollmentID, req.InstructorID, req.ScheduledAt.Format(time.RFC3339))

	result := domain.NewValidationResult()

	// 1. Обязательные идентификаторы. Единственный ранний выход:
	// без них дальнейшие проверки бессмысленны и выборки не выполняются.
	requireLessonFields(req, result)
	if !result.Valid() {
		uc.logger.Warn("ValidateLesson: missing required fields: %v", fieldNames(result))
		return &Response{Errors: result}, nil
	}

	duration, err := resolveDuration(req.DurationMinutes, domain.DefaultLessonDurationMinutes)
	if err != nil {
		return nil, err
	}

	// 2. День недели и время начала считаются в таймзоне автошколы,
	// а не клиента: расписание инструкторов привязано к ней.
	date, day, startTime := businessParts(req.ScheduledAt, uc.location)

	// 3. Загружаем связанные сущности
	enrollment, err := uc.catalogRepo.GetEnrollment(ctx, req.EnrollmentID)
	if err != nil {
		if errors.Is(err, catalogRepo.ErrEnrollmentNotFound) {
			uc.logger.Warn("ValidateLesson: enrollment id=%d not found", req.EnrollmentID)
			return nil, ErrEnrollmentNotFound
		}
		uc.logger.Error("ValidateLesson: failed to get enrollment id=%d: %v", req.EnrollmentID, err)
		return nil, fmt.Errorf("%w: failed to get enrollment: %v", ErrInternal, err)
	}

	course, err := uc.catalogRepo.GetCourse(ctx, enrollment.CourseID)
	if err != nil {
		if errors.Is(err, catalogRepo.ErrCourseNotFound) {
			uc.logger.Warn("ValidateLesson: course id=%d not found", enrollment.CourseID)
			return nil, ErrCourseNotFound
		}
		uc.logger.Error("ValidateLesson: failed to get course id=%d: %v", enrollment.CourseID, err)
		return nil, fmt.Errorf("%w: failed to get course: %v", ErrInternal, err)
	}

	instructor, err := uc.catalogRepo.GetInstructor(ctx, req.InstructorID)
	if err != nil {
		if errors.Is(err, catalogRepo.ErrInstructorNotFound) {
			uc.logger.Warn("ValidateLesson: instructor id=%d not found", req.InstructorID)
			return nil, ErrInstructorNotFound
		}
		uc.logger.Error("ValidateLesson: failed to get instructor id=%d: %v", req.InstructorID, err)
		return nil, fmt.Errorf("%w: failed to get instructor: %v", ErrInternal, err)
	}

	var resource *domain.Resource
	if req.ResourceID != nil {
		resource, err = uc.catalogRepo.GetResource(ctx, *req.ResourceID)
		if err != nil {
			if errors.Is(err, catalogRepo.ErrResourceNotFound) {
				uc.logger.Warn("ValidateLesson: resource id=%d not found", *req.ResourceID)
				return nil, ErrResourceNotFound
			}
			uc.logger.Error("ValidateLesson: failed to get resource id=%d: %v", *req.ResourceID, err)
			return nil, fmt.Errorf("%w: failed to get resource: %v", ErrInternal, err)
		}
	}

	// 4. Практические занятия назначаются только по практическим курсам
	if course.Type != domain.CoursePractice {
		result.Set(domain.FieldEnrollmentID, domain.KindPracticeEnrollmentRequired)
	}

	// 5. Занятие должно укладываться в сутки и попадать в окна
	// доступности инструктора
	checkFitsWithinDay(startTime, duration, result)

	windows, err := uc.availabilityRepo.GetByInstructorAndDay(ctx, req.InstructorID, day)
	if err != nil {
		uc.logger.Error("ValidateLesson: failed to get availability for instructor id=%d: %v", req.InstructorID, err)
		return nil, fmt.Errorf("%w: failed to get availability: %v", ErrInternal, err)
	}
	checkAvailability(windows, startTime, uc.strictEmptyDays, result)

	// 6. Совместимость категорий и лицензии инструктора
	checkCategoryMatch(course, resource, result)
	checkInstructorLicense(course, instructor, result)

	// 7. Конфликты инструктора: любые активные занятия (практика и теория)
	instructorBookings, err := uc.bookingRepo.GetWithFilter(ctx, domain.BookingsFilter{
		InstructorID: ptr.Ptr(req.InstructorID),
		Date:         &date,
		ExcludeID:    req.CurrentID,
	})
	if err != nil {
		uc.logger.Error("ValidateLesson: failed to get instructor bookings: %v", err)
		return nil, fmt.Errorf("%w: failed to get instructor bookings: %v", ErrInternal, err)
	}
	conflict, err := domain.HasOverlap(startTime, duration, instructorBookings, req.CurrentID)
	if err != nil {
		return nil, fmt.Errorf("%w: instructor conflict scan: %v", ErrInternal, err)
	}
	if conflict {
		result.Set(domain.FieldInstructorID, domain.KindInstructorConflict)
	}

	// 8. Конфликты студента: его практические занятия и теория, где он в группе
	studentBookings, err := uc.bookingRepo.GetWithFilter(ctx, domain.BookingsFilter{
		StudentID: ptr.Ptr(enrollment.StudentID),
		Date:      &date,
		ExcludeID: req.CurrentID,
	})
	if err != nil {
		uc.logger.Error("ValidateLesson: failed to get student bookings: %v", err)
		return nil, fmt.Errorf("%w: failed to get student bookings: %v", ErrInternal, err)
	}
	conflict, err = domain.HasOverlap(startTime, duration, studentBookings, req.CurrentID)
	if err != nil {
		return nil, fmt.Errorf("%w: student conflict scan: %v", ErrInternal, err)
	}
	if conflict {
		result.Set(domain.FieldEnrollmentID, domain.KindStudentConflict)
	}

	// 9. Конфликты ресурса: автомобили заняты только практическими занятиями,
	// поэтому скан ограничен занятиями того же типа
	if req.ResourceID != nil {
		resourceBookings, err := uc.bookingRepo.GetWithFilter(ctx, domain.BookingsFilter{
			Kind:       ptr.Ptr(domain.KindLesson),
			ResourceID: req.ResourceID,
			Date:       &date,
			ExcludeID:  req.CurrentID,
		})
		if err != nil {
			uc.logger.Error("ValidateLesson: failed to get resource bookings: %v", err)
			return nil, fmt.Errorf("%w: failed to get resource bookings: %v", ErrInternal, err)
		}
		conflict, err = domain.HasOverlap(startTime, duration, resourceBookings, req.CurrentID)
		if err != nil {
			return nil, fmt.Errorf("%w: resource conflict scan: %v", ErrInternal, err)
		}
		if conflict {
			result.Set(domain.FieldResourceID, domain.KindResourceConflict)
		}
	}

	if result.Valid() {
		uc.logger.Info("ValidateLesson: enrollment=%d, instructor=%d - admissible",
			req.EnrollmentID, req.InstructorID)
	} else {
		uc.logger.Info("ValidateLesson: enrollment=%d, instructor=%d - rejected: %v",
			req.EnrollmentID, req.InstructorID, fieldNames(result))
	}

	return &Response{Errors: result}, nil
}

package validate_class

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/DSM-SchedulingService/internal/domain"
	catalogRepo "github.com/m04kA/DSM-SchedulingService/internal/infra/storage/catalog"
	"github.com/m04kA/DSM-SchedulingService/pkg/ptr"
)

// UseCase use case валидации теоретического занятия.
//
// Как и для практических занятий, проверки независимы и накапливают ошибки;
// ранний выход только при отсутствии обязательных идентификаторов.
// При редактировании (CurrentID задан) занятие исключается из сканов
// конфликтов и потолок группы сверяется с уже записанными студентами.
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

// Execute выполняет валидацию теоретического занятия
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("ValidateClass: course=%d, instructor=%d, resource=%d, at=%s, students=%d",
		req.CourseID, req.InstructorID, req.ResourceID, req.ScheduledAt.Format(time.RFC3339), len(req.StudentIDs))

	result := domain.NewValidationResult()

	// 1. Обязательные поля - единственный ранний выход
	requireClassFields(req, result)
	if !result.Valid() {
		uc.logger.Warn("ValidateClass: missing required fields: %v", fieldNames(result))
		return &Response{Errors: result}, nil
	}

	duration, err := resolveDuration(req.DurationMinutes, domain.DefaultClassDurationMinutes)
	if err != nil {
		return nil, err
	}

	date, day, startTime := businessParts(req.ScheduledAt, uc.location)

	// 2. Загружаем связанные сущности
	course, err := uc.catalogRepo.GetCourse(ctx, req.CourseID)
	if err != nil {
		if errors.Is(err, catalogRepo.ErrCourseNotFound) {
			uc.logger.Warn("ValidateClass: course id=%d not found", req.CourseID)
			return nil, ErrCourseNotFound
		}
		uc.logger.Error("ValidateClass: failed to get course id=%d: %v", req.CourseID, err)
		return nil, fmt.Errorf("%w: failed to get course: %v", ErrInternal, err)
	}

	instructor, err := uc.catalogRepo.GetInstructor(ctx, req.InstructorID)
	if err != nil {
		if errors.Is(err, catalogRepo.ErrInstructorNotFound) {
			uc.logger.Warn("ValidateClass: instructor id=%d not found", req.InstructorID)
			return nil, ErrInstructorNotFound
		}
		uc.logger.Error("ValidateClass: failed to get instructor id=%d: %v", req.InstructorID, err)
		return nil, fmt.Errorf("%w: failed to get instructor: %v", ErrInternal, err)
	}

	resource, err := uc.catalogRepo.GetResource(ctx, req.ResourceID)
	if err != nil {
		if errors.Is(err, catalogRepo.ErrResourceNotFound) {
			uc.logger.Warn("ValidateClass: resource id=%d not found", req.ResourceID)
			return nil, ErrResourceNotFound
		}
		uc.logger.Error("ValidateClass: failed to get resource id=%d: %v", req.ResourceID, err)
		return nil, fmt.Errorf("%w: failed to get resource: %v", ErrInternal, err)
	}

	// 3. Теоретические занятия - только по теоретическим курсам
	// и только в учебных классах. Выборка классов фильтруется на уровне
	// запросов UI, но защитная проверка остается здесь.
	if course.Type != domain.CourseTheory {
		result.Set(domain.FieldCourseID, domain.KindTheoryOnly)
	}
	if !resource.IsClassroom() {
		result.Set(domain.FieldResourceID, domain.KindClassroomResourceRequired)
	}

	// 4. Занятие должно укладываться в сутки и попадать в окна
	// доступности инструктора
	checkFitsWithinDay(startTime, duration, result)

	windows, err := uc.availabilityRepo.GetByInstructorAndDay(ctx, req.InstructorID, day)
	if err != nil {
		uc.logger.Error("ValidateClass: failed to get availability for instructor id=%d: %v", req.InstructorID, err)
		return nil, fmt.Errorf("%w: failed to get availability: %v", ErrInternal, err)
	}
	checkAvailability(windows, startTime, uc.strictEmptyDays, result)

	// 5. Совместимость категорий и лицензии инструктора
	checkCategoryMatch(course, resource, result)
	checkInstructorLicense(course, instructor, result)

	// 6. Каждый выбранный студент должен иметь действующее зачисление на курс
	missing, err := uc.findStudentsWithoutEnrollment(ctx, req.StudentIDs, req.CourseID)
	if err != nil {
		return nil, err
	}
	if len(missing) > 0 {
		result.SetWithStudents(domain.FieldStudentIDs, domain.KindStudentNotEnrolledToCourse, missing)
	}

	// 7. Вместимость: потолок группы против вместимости класса,
	// выбранных студентов и (при редактировании) уже записанных
	enrolledCount := 0
	if req.CurrentID != nil {
		enrolledCount, err = uc.bookingRepo.CountStudents(ctx, *req.CurrentID)
		if err != nil {
			uc.logger.Error("ValidateClass: failed to count enrolled students for booking id=%d: %v", *req.CurrentID, err)
			return nil, fmt.Errorf("%w: failed to count enrolled students: %v", ErrInternal, err)
		}
	}
	checkCapacity(req, resource, enrolledCount, result)

	// 8. Конфликты инструктора: любые активные занятия (практика и теория)
	instructorBookings, err := uc.bookingRepo.GetWithFilter(ctx, domain.BookingsFilter{
		InstructorID: ptr.Ptr(req.InstructorID),
		Date:         &date,
		ExcludeID:    req.CurrentID,
	})
	if err != nil {
		uc.logger.Error("ValidateClass: failed to get instructor bookings: %v", err)
		return nil, fmt.Errorf("%w: failed to get instructor bookings: %v", ErrInternal, err)
	}
	conflict, err := domain.HasOverlap(startTime, duration, instructorBookings, req.CurrentID)
	if err != nil {
		return nil, fmt.Errorf("%w: instructor conflict scan: %v", ErrInternal, err)
	}
	if conflict {
		result.Set(domain.FieldInstructorID, domain.KindInstructorConflict)
	}

	// 9. Конфликты ресурса: классы заняты только теоретическими занятиями,
	// поэтому скан ограничен занятиями того же типа
	resourceBookings, err := uc.bookingRepo.GetWithFilter(ctx, domain.BookingsFilter{
		Kind:       ptr.Ptr(domain.KindClass),
		ResourceID: ptr.Ptr(req.ResourceID),
		Date:       &date,
		ExcludeID:  req.CurrentID,
	})
	if err != nil {
		uc.logger.Error("ValidateClass: failed to get resource bookings: %v", err)
		return nil, fmt.Errorf("%w: failed to get resource bookings: %v", ErrInternal, err)
	}
	conflict, err = domain.HasOverlap(startTime, duration, resourceBookings, req.CurrentID)
	if err != nil {
		return nil, fmt.Errorf("%w: resource conflict scan: %v", ErrInternal, err)
	}
	if conflict {
		result.Set(domain.FieldResourceID, domain.KindResourceConflict)
	}

	if result.Valid() {
		uc.logger.Info("ValidateClass: course=%d, instructor=%d - admissible", req.CourseID, req.InstructorID)
	} else {
		uc.logger.Info("ValidateClass: course=%d, instructor=%d - rejected: %v",
			req.CourseID, req.InstructorID, fieldNames(result))
	}

	return &Response{Errors: result}, nil
}

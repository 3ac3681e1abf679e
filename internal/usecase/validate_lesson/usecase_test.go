package validate_lesson

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/DSM-SchedulingService/internal/domain"
	catalogRepo "github.com/m04kA/DSM-SchedulingService/internal/infra/storage/catalog"
	"github.com/m04kA/DSM-SchedulingService/pkg/ptr"
	"github.com/m04kA/DSM-SchedulingService/pkg/types"
)

type nopLogger struct{}

func (nopLogger) Info(format string, v ...interface{})  {}
func (nopLogger) Warn(format string, v ...interface{})  {}
func (nopLogger) Error(format string, v ...interface{}) {}

// fakeBookingRepo раздает занятия по типу фильтра
type fakeBookingRepo struct {
	instructorBookings []*domain.Booking
	studentBookings    []*domain.Booking
	resourceBookings   []*domain.Booking
	calls              int
}

func (f *fakeBookingRepo) GetWithFilter(_ context.Context, filter domain.BookingsFilter) ([]*domain.Booking, error) {
	f.calls++
	switch {
	case filter.InstructorID != nil:
		return f.instructorBookings, nil
	case filter.StudentID != nil:
		return f.studentBookings, nil
	case filter.ResourceID != nil:
		return f.resourceBookings, nil
	}
	return nil, nil
}

type fakeAvailabilityRepo struct {
	startTimes []types.TimeString
	calls      int
}

func (f *fakeAvailabilityRepo) GetByInstructorAndDay(_ context.Context, instructorID int64, day time.Weekday) (*domain.WeeklyAvailability, error) {
	f.calls++
	return &domain.WeeklyAvailability{
		InstructorID: instructorID,
		DayOfWeek:    day,
		StartTimes:   f.startTimes,
	}, nil
}

type fakeCatalogRepo struct {
	enrollments map[int64]*domain.Enrollment
	courses     map[int64]*domain.Course
	instructors map[int64]*domain.Instructor
	resources   map[int64]*domain.Resource
	calls       int
}

func (f *fakeCatalogRepo) GetEnrollment(_ context.Context, id int64) (*domain.Enrollment, error) {
	f.calls++
	if e, ok := f.enrollments[id]; ok {
		return e, nil
	}
	return nil, catalogRepo.ErrEnrollmentNotFound
}

func (f *fakeCatalogRepo) GetCourse(_ context.Context, id int64) (*domain.Course, error) {
	f.calls++
	if c, ok := f.courses[id]; ok {
		return c, nil
	}
	return nil, catalogRepo.ErrCourseNotFound
}

func (f *fakeCatalogRepo) GetInstructor(_ context.Context, id int64) (*domain.Instructor, error) {
	f.calls++
	if i, ok := f.instructors[id]; ok {
		return i, nil
	}
	return nil, catalogRepo.ErrInstructorNotFound
}

func (f *fakeCatalogRepo) GetResource(_ context.Context, id int64) (*domain.Resource, error) {
	f.calls++
	if r, ok := f.resources[id]; ok {
		return r, nil
	}
	return nil, catalogRepo.ErrResourceNotFound
}

func defaultCatalog() *fakeCatalogRepo {
	return &fakeCatalogRepo{
		enrollments: map[int64]*domain.Enrollment{
			10: {ID: 10, StudentID: 100, CourseID: 20, Status: domain.EnrollmentStatusActive},
		},
		courses: map[int64]*domain.Course{
			20: {ID: 20, Name: "Вождение, категория B", Category: "B", Type: domain.CoursePractice},
		},
		instructors: map[int64]*domain.Instructor{
			30: {ID: 30, Name: "Иванов", LicenseCategories: "B, C"},
		},
		resources: map[int64]*domain.Resource{
			40: {ID: 40, Name: "Лада Гранта", Category: "B", MaxCapacity: 2},
		},
	}
}

// Понедельник 2026-09-07, 09:30 UTC
var mondayAt0930 = time.Date(2026, 9, 7, 9, 30, 0, 0, time.UTC)

func newTestUseCase(bookings *fakeBookingRepo, availability *fakeAvailabilityRepo, catalog *fakeCatalogRepo, strict bool) *UseCase {
	return NewUseCase(bookings, availability, catalog, time.UTC, strict, nopLogger{})
}

func validRequest() *Request {
	return &Request{
		EnrollmentID: 10,
		InstructorID: 30,
		ResourceID:   ptr.Ptr(int64(40)),
		ScheduledAt:  mondayAt0930,
	}
}

func TestExecute_MissingRequiredFields(t *testing.T) {
	bookings := &fakeBookingRepo{}
	availability := &fakeAvailabilityRepo{}
	catalog := defaultCatalog()
	uc := newTestUseCase(bookings, availability, catalog, false)

	resp, err := uc.Execute(context.Background(), &Request{})
	require.NoError(t, err)
	require.False(t, resp.Valid())

	assert.Equal(t, domain.KindRequiredField, resp.Errors[domain.FieldEnrollmentID].Kind)
	assert.Equal(t, domain.KindRequiredField, resp.Errors[domain.FieldInstructorID].Kind)
	assert.Equal(t, domain.KindRequiredField, resp.Errors[domain.FieldScheduledTime].Kind)

	// Ранний выход: никаких выборок при отсутствии обязательных полей
	assert.Zero(t, bookings.calls)
	assert.Zero(t, availability.calls)
	assert.Zero(t, catalog.calls)
}

func TestExecute_Admissible(t *testing.T) {
	bookings := &fakeBookingRepo{}
	availability := &fakeAvailabilityRepo{startTimes: []types.TimeString{"08:00", "12:00"}}
	uc := newTestUseCase(bookings, availability, defaultCatalog(), false)

	resp, err := uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)
	assert.True(t, resp.Valid())
}

func TestExecute_Idempotent(t *testing.T) {
	// Валидация ничего не сохраняет: повторный вызов дает тот же результат
	bookings := &fakeBookingRepo{
		instructorBookings: []*domain.Booking{
			{ID: 1, StartTime: "10:00", DurationMinutes: 90, Status: domain.StatusScheduled},
		},
	}
	availability := &fakeAvailabilityRepo{startTimes: []types.TimeString{"08:00", "12:00"}}
	uc := newTestUseCase(bookings, availability, defaultCatalog(), false)

	first, err := uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)
	second, err := uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)

	assert.Equal(t, first.Errors, second.Errors)
}

func TestExecute_InstructorConflict(t *testing.T) {
	// Кандидат 09:30-11:00 пересекается с занятием 10:00-11:30
	bookings := &fakeBookingRepo{
		instructorBookings: []*domain.Booking{
			{ID: 1, StartTime: "10:00", DurationMinutes: 90, Status: domain.StatusScheduled},
		},
	}
	availability := &fakeAvailabilityRepo{startTimes: []types.TimeString{"08:00", "12:00"}}
	uc := newTestUseCase(bookings, availability, defaultCatalog(), false)

	resp, err := uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)
	require.False(t, resp.Valid())
	assert.Equal(t, domain.KindInstructorConflict, resp.Errors[domain.FieldInstructorID].Kind)
}

func TestExecute_AdjacentBookingDoesNotConflict(t *testing.T) {
	// Занятие 11:00-12:30 идет встык с кандидатом 09:30-11:00
	bookings := &fakeBookingRepo{
		instructorBookings: []*domain.Booking{
			{ID: 1, StartTime: "11:00", DurationMinutes: 90, Status: domain.StatusScheduled},
		},
	}
	availability := &fakeAvailabilityRepo{startTimes: []types.TimeString{"08:00", "12:00"}}
	uc := newTestUseCase(bookings, availability, defaultCatalog(), false)

	resp, err := uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)
	assert.True(t, resp.Valid())
}

func TestExecute_StudentConflict(t *testing.T) {
	bookings := &fakeBookingRepo{
		studentBookings: []*domain.Booking{
			{ID: 2, Kind: domain.KindClass, StartTime: "09:00", DurationMinutes: 60, Status: domain.StatusScheduled},
		},
	}
	availability := &fakeAvailabilityRepo{startTimes: []types.TimeString{"08:00", "12:00"}}
	uc := newTestUseCase(bookings, availability, defaultCatalog(), false)

	resp, err := uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)
	require.False(t, resp.Valid())
	assert.Equal(t, domain.KindStudentConflict, resp.Errors[domain.FieldEnrollmentID].Kind)
}

func TestExecute_ResourceConflict(t *testing.T) {
	bookings := &fakeBookingRepo{
		resourceBookings: []*domain.Booking{
			{ID: 3, StartTime: "09:00", DurationMinutes: 120, Status: domain.StatusScheduled},
		},
	}
	availability := &fakeAvailabilityRepo{startTimes: []types.TimeString{"08:00", "12:00"}}
	uc := newTestUseCase(bookings, availability, defaultCatalog(), false)

	resp, err := uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)
	require.False(t, resp.Valid())
	assert.Equal(t, domain.KindResourceConflict, resp.Errors[domain.FieldResourceID].Kind)
}

func TestExecute_CanceledBookingIgnored(t *testing.T) {
	bookings := &fakeBookingRepo{
		instructorBookings: []*domain.Booking{
			{ID: 1, StartTime: "09:30", DurationMinutes: 90, Status: domain.StatusCanceled},
		},
	}
	availability := &fakeAvailabilityRepo{startTimes: []types.TimeString{"08:00", "12:00"}}
	uc := newTestUseCase(bookings, availability, defaultCatalog(), false)

	resp, err := uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)
	assert.True(t, resp.Valid())
}

func TestExecute_EditExcludesSelf(t *testing.T) {
	bookings := &fakeBookingRepo{
		instructorBookings: []*domain.Booking{
			{ID: 55, StartTime: "09:30", DurationMinutes: 90, Status: domain.StatusScheduled},
		},
	}
	availability := &fakeAvailabilityRepo{startTimes: []types.TimeString{"08:00", "12:00"}}
	uc := newTestUseCase(bookings, availability, defaultCatalog(), false)

	req := validRequest()
	req.CurrentID = ptr.Ptr(int64(55))

	resp, err := uc.Execute(context.Background(), req)
	require.NoError(t, err)
	assert.True(t, resp.Valid())
}

func TestExecute_OutsideAvailability(t *testing.T) {
	// 09:30 не на 30-минутной сетке окна [09:15, 11:15)
	bookings := &fakeBookingRepo{}
	availability := &fakeAvailabilityRepo{startTimes: []types.TimeString{"09:15", "11:15"}}
	uc := newTestUseCase(bookings, availability, defaultCatalog(), false)

	resp, err := uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)
	require.False(t, resp.Valid())
	assert.Equal(t, domain.KindOutsideAvailability, resp.Errors[domain.FieldScheduledTime].Kind)
}

func TestExecute_IntervalCrossingMidnightRejected(t *testing.T) {
	// 23:30 + 90 минут перешло бы через полночь: это вердикт валидации,
	// а не внутренняя ошибка. Пустые окна иначе не накладывают ограничений,
	// поэтому причина отказа ровно одна
	bookings := &fakeBookingRepo{}
	availability := &fakeAvailabilityRepo{}
	uc := newTestUseCase(bookings, availability, defaultCatalog(), false)

	req := validRequest()
	req.ScheduledAt = time.Date(2026, 9, 7, 23, 30, 0, 0, time.UTC)

	resp, err := uc.Execute(context.Background(), req)
	require.NoError(t, err)
	require.False(t, resp.Valid())
	assert.Equal(t, domain.KindOutsideAvailability, resp.Errors[domain.FieldScheduledTime].Kind)
}

func TestExecute_EmptyAvailability(t *testing.T) {
	bookings := &fakeBookingRepo{}
	availability := &fakeAvailabilityRepo{}

	// По умолчанию пустой день не накладывает ограничений
	uc := newTestUseCase(bookings, availability, defaultCatalog(), false)
	resp, err := uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)
	assert.True(t, resp.Valid())

	// В строгом режиме пустой день запрещает занятия
	strictUC := newTestUseCase(bookings, availability, defaultCatalog(), true)
	resp, err = strictUC.Execute(context.Background(), validRequest())
	require.NoError(t, err)
	require.False(t, resp.Valid())
	assert.Equal(t, domain.KindOutsideAvailability, resp.Errors[domain.FieldScheduledTime].Kind)
}

func TestExecute_TheoryCourseRejected(t *testing.T) {
	catalog := defaultCatalog()
	catalog.courses[20] = &domain.Course{ID: 20, Category: "B", Type: domain.CourseTheory}

	bookings := &fakeBookingRepo{}
	availability := &fakeAvailabilityRepo{startTimes: []types.TimeString{"08:00", "12:00"}}
	uc := newTestUseCase(bookings, availability, catalog, false)

	resp, err := uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)
	require.False(t, resp.Valid())
	assert.Equal(t, domain.KindPracticeEnrollmentRequired, resp.Errors[domain.FieldEnrollmentID].Kind)
}

func TestExecute_CategoryMismatch(t *testing.T) {
	catalog := defaultCatalog()
	catalog.resources[40] = &domain.Resource{ID: 40, Category: "C", MaxCapacity: 2}

	bookings := &fakeBookingRepo{}
	availability := &fakeAvailabilityRepo{startTimes: []types.TimeString{"08:00", "12:00"}}
	uc := newTestUseCase(bookings, availability, catalog, false)

	resp, err := uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)
	require.False(t, resp.Valid())
	assert.Equal(t, domain.KindCategoryMismatch, resp.Errors[domain.FieldResourceID].Kind)
}

func TestExecute_InstructorLicenseMismatch(t *testing.T) {
	catalog := defaultCatalog()
	catalog.instructors[30] = &domain.Instructor{ID: 30, LicenseCategories: "A"}

	bookings := &fakeBookingRepo{}
	availability := &fakeAvailabilityRepo{startTimes: []types.TimeString{"08:00", "12:00"}}
	uc := newTestUseCase(bookings, availability, catalog, false)

	resp, err := uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)
	require.False(t, resp.Valid())
	assert.Equal(t, domain.KindInstructorLicenseMismatch, resp.Errors[domain.FieldInstructorID].Kind)
}

func TestExecute_WithoutResource(t *testing.T) {
	// Ресурс опционален: без него нет проверок категории и конфликтов ресурса
	bookings := &fakeBookingRepo{
		resourceBookings: []*domain.Booking{
			{ID: 3, StartTime: "09:00", DurationMinutes: 120, Status: domain.StatusScheduled},
		},
	}
	availability := &fakeAvailabilityRepo{startTimes: []types.TimeString{"08:00", "12:00"}}
	uc := newTestUseCase(bookings, availability, defaultCatalog(), false)

	req := validRequest()
	req.ResourceID = nil

	resp, err := uc.Execute(context.Background(), req)
	require.NoError(t, err)
	assert.True(t, resp.Valid())
}

func TestExecute_EnrollmentNotFound(t *testing.T) {
	bookings := &fakeBookingRepo{}
	availability := &fakeAvailabilityRepo{startTimes: []types.TimeString{"08:00", "12:00"}}
	uc := newTestUseCase(bookings, availability, defaultCatalog(), false)

	req := validRequest()
	req.EnrollmentID = 999

	_, err := uc.Execute(context.Background(), req)
	require.ErrorIs(t, err, ErrEnrollmentNotFound)
}

func TestExecute_InvalidDuration(t *testing.T) {
	bookings := &fakeBookingRepo{}
	availability := &fakeAvailabilityRepo{startTimes: []types.TimeString{"08:00", "12:00"}}
	uc := newTestUseCase(bookings, availability, defaultCatalog(), false)

	req := validRequest()
	req.DurationMinutes = 15

	_, err := uc.Execute(context.Background(), req)
	require.ErrorIs(t, err, ErrInvalidInput)
}

func TestExecute_AccumulatesIndependentErrors(t *testing.T) {
	// Независимые проверки накапливаются, а не прерывают друг друга
	catalog := defaultCatalog()
	catalog.instructors[30] = &domain.Instructor{ID: 30, LicenseCategories: "A"}

	bookings := &fakeBookingRepo{
		instructorBookings: []*domain.Booking{
			{ID: 1, StartTime: "10:00", DurationMinutes: 90, Status: domain.StatusScheduled},
		},
	}
	availability := &fakeAvailabilityRepo{startTimes: []types.TimeString{"13:00", "15:00"}}
	uc := newTestUseCase(bookings, availability, catalog, false)

	resp, err := uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)
	require.False(t, resp.Valid())

	assert.Equal(t, domain.KindOutsideAvailability, resp.Errors[domain.FieldScheduledTime].Kind)
	// Первая ошибка поля сохраняется: лицензия проверяется раньше конфликтов
	assert.Equal(t, domain.KindInstructorLicenseMismatch, resp.Errors[domain.FieldInstructorID].Kind)
}

package validate_class

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

type fakeBookingRepo struct {
	instructorBookings []*domain.Booking
	resourceBookings   []*domain.Booking
	enrolledCount      int
}

func (f *fakeBookingRepo) GetWithFilter(_ context.Context, filter domain.BookingsFilter) ([]*domain.Booking, error) {
	switch {
	case filter.InstructorID != nil:
		return f.instructorBookings, nil
	case filter.ResourceID != nil:
		return f.resourceBookings, nil
	}
	return nil, nil
}

func (f *fakeBookingRepo) CountStudents(_ context.Context, _ int64) (int, error) {
	return f.enrolledCount, nil
}

type fakeAvailabilityRepo struct {
	startTimes []types.TimeString
}

func (f *fakeAvailabilityRepo) GetByInstructorAndDay(_ context.Context, instructorID int64, day time.Weekday) (*domain.WeeklyAvailability, error) {
	return &domain.WeeklyAvailability{
		InstructorID: instructorID,
		DayOfWeek:    day,
		StartTimes:   f.startTimes,
	}, nil
}

type fakeCatalogRepo struct {
	// enrolled: studentID -> курсы с действующим зачислением
	enrolled    map[int64]map[int64]bool
	courses     map[int64]*domain.Course
	instructors map[int64]*domain.Instructor
	resources   map[int64]*domain.Resource
}

func (f *fakeCatalogRepo) GetActiveEnrollment(_ context.Context, studentID, courseID int64) (*domain.Enrollment, error) {
	if f.enrolled[studentID][courseID] {
		return &domain.Enrollment{StudentID: studentID, CourseID: courseID, Status: domain.EnrollmentStatusActive}, nil
	}
	return nil, catalogRepo.ErrEnrollmentNotFound
}

func (f *fakeCatalogRepo) GetCourse(_ context.Context, id int64) (*domain.Course, error) {
	if c, ok := f.courses[id]; ok {
		return c, nil
	}
	return nil, catalogRepo.ErrCourseNotFound
}

func (f *fakeCatalogRepo) GetInstructor(_ context.Context, id int64) (*domain.Instructor, error) {
	if i, ok := f.instructors[id]; ok {
		return i, nil
	}
	return nil, catalogRepo.ErrInstructorNotFound
}

func (f *fakeCatalogRepo) GetResource(_ context.Context, id int64) (*domain.Resource, error) {
	if r, ok := f.resources[id]; ok {
		return r, nil
	}
	return nil, catalogRepo.ErrResourceNotFound
}

func defaultCatalog() *fakeCatalogRepo {
	return &fakeCatalogRepo{
		enrolled: map[int64]map[int64]bool{
			100: {20: true},
			101: {20: true},
			102: {20: true},
		},
		courses: map[int64]*domain.Course{
			20: {ID: 20, Name: "ПДД, категория B", Category: "B", Type: domain.CourseTheory},
		},
		instructors: map[int64]*domain.Instructor{
			30: {ID: 30, Name: "Петров", LicenseCategories: "B"},
		},
		resources: map[int64]*domain.Resource{
			50: {ID: 50, Name: "Класс 1", Category: "B", MaxCapacity: 20},
		},
	}
}

// Понедельник 2026-09-07, 09:30 UTC
var mondayAt0930 = time.Date(2026, 9, 7, 9, 30, 0, 0, time.UTC)

func newTestUseCase(bookings *fakeBookingRepo, availability *fakeAvailabilityRepo, catalog *fakeCatalogRepo) *UseCase {
	return NewUseCase(bookings, availability, catalog, time.UTC, false, nopLogger{})
}

func validRequest() *Request {
	return &Request{
		CourseID:     20,
		InstructorID: 30,
		ResourceID:   50,
		ScheduledAt:  mondayAt0930,
		MaxStudents:  15,
		StudentIDs:   []int64{100, 101},
	}
}

func defaultAvailability() *fakeAvailabilityRepo {
	return &fakeAvailabilityRepo{startTimes: []types.TimeString{"08:00", "12:00"}}
}

func TestExecute_MissingRequiredFields(t *testing.T) {
	uc := newTestUseCase(&fakeBookingRepo{}, defaultAvailability(), defaultCatalog())

	resp, err := uc.Execute(context.Background(), &Request{})
	require.NoError(t, err)
	require.False(t, resp.Valid())

	assert.Equal(t, domain.KindRequiredField, resp.Errors[domain.FieldCourseID].Kind)
	assert.Equal(t, domain.KindRequiredField, resp.Errors[domain.FieldInstructorID].Kind)
	assert.Equal(t, domain.KindRequiredField, resp.Errors[domain.FieldResourceID].Kind)
	assert.Equal(t, domain.KindRequiredField, resp.Errors[domain.FieldScheduledTime].Kind)
	assert.Equal(t, domain.KindRequiredField, resp.Errors[domain.FieldMaxStudents].Kind)
}

func TestExecute_Admissible(t *testing.T) {
	uc := newTestUseCase(&fakeBookingRepo{}, defaultAvailability(), defaultCatalog())

	resp, err := uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)
	assert.True(t, resp.Valid())
}

func TestExecute_PracticeCourseRejected(t *testing.T) {
	catalog := defaultCatalog()
	catalog.courses[20] = &domain.Course{ID: 20, Category: "B", Type: domain.CoursePractice}

	uc := newTestUseCase(&fakeBookingRepo{}, defaultAvailability(), catalog)

	resp, err := uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)
	require.False(t, resp.Valid())
	assert.Equal(t, domain.KindTheoryOnly, resp.Errors[domain.FieldCourseID].Kind)
}

func TestExecute_VehicleResourceRejected(t *testing.T) {
	catalog := defaultCatalog()
	catalog.resources[50] = &domain.Resource{ID: 50, Category: "B", MaxCapacity: 2}

	uc := newTestUseCase(&fakeBookingRepo{}, defaultAvailability(), catalog)

	resp, err := uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)
	require.False(t, resp.Valid())
	assert.Equal(t, domain.KindClassroomResourceRequired, resp.Errors[domain.FieldResourceID].Kind)
}

func TestExecute_StudentsWithoutEnrollment(t *testing.T) {
	catalog := defaultCatalog()
	delete(catalog.enrolled, 101)

	uc := newTestUseCase(&fakeBookingRepo{}, defaultAvailability(), catalog)

	req := validRequest()
	req.StudentIDs = []int64{101, 100, 103}

	resp, err := uc.Execute(context.Background(), req)
	require.NoError(t, err)
	require.False(t, resp.Valid())

	fieldErr := resp.Errors[domain.FieldStudentIDs]
	assert.Equal(t, domain.KindStudentNotEnrolledToCourse, fieldErr.Kind)
	// Нарушители агрегируются в один отсортированный список
	assert.Equal(t, []int64{101, 103}, fieldErr.StudentIDs)
}

func TestExecute_CapacityExceeded(t *testing.T) {
	uc := newTestUseCase(&fakeBookingRepo{}, defaultAvailability(), defaultCatalog())

	req := validRequest()
	req.MaxStudents = 25 // вместимость класса 20

	resp, err := uc.Execute(context.Background(), req)
	require.NoError(t, err)
	require.False(t, resp.Valid())
	assert.Equal(t, domain.KindCapacityExceeded, resp.Errors[domain.FieldMaxStudents].Kind)
}

func TestExecute_CapacityBelowEnrolledOnEdit(t *testing.T) {
	bookings := &fakeBookingRepo{enrolledCount: 12}
	uc := newTestUseCase(bookings, defaultAvailability(), defaultCatalog())

	req := validRequest()
	req.CurrentID = ptr.Ptr(int64(77))
	req.MaxStudents = 10 // уже записано 12

	resp, err := uc.Execute(context.Background(), req)
	require.NoError(t, err)
	require.False(t, resp.Valid())
	assert.Equal(t, domain.KindCapacityBelowEnrolled, resp.Errors[domain.FieldMaxStudents].Kind)
}

func TestExecute_CapacityBelowEnrolledTakesPrecedence(t *testing.T) {
	// При редактировании проверка против записанных идет раньше
	// проверки против выбранных: первая ошибка поля сохраняется
	bookings := &fakeBookingRepo{enrolledCount: 12}
	uc := newTestUseCase(bookings, defaultAvailability(), defaultCatalog())

	req := validRequest()
	req.CurrentID = ptr.Ptr(int64(77))
	req.MaxStudents = 1
	req.StudentIDs = []int64{100, 101}

	resp, err := uc.Execute(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, domain.KindCapacityBelowEnrolled, resp.Errors[domain.FieldMaxStudents].Kind)
}

func TestExecute_CapacityBelowSelected(t *testing.T) {
	uc := newTestUseCase(&fakeBookingRepo{}, defaultAvailability(), defaultCatalog())

	req := validRequest()
	req.MaxStudents = 1
	req.StudentIDs = []int64{100, 101}

	resp, err := uc.Execute(context.Background(), req)
	require.NoError(t, err)
	require.False(t, resp.Valid())
	assert.Equal(t, domain.KindCapacityBelowSelected, resp.Errors[domain.FieldMaxStudents].Kind)
}

func TestExecute_SelectedStudentsExceedCapacity(t *testing.T) {
	catalog := defaultCatalog()
	catalog.resources[50] = &domain.Resource{ID: 50, Category: "B", MaxCapacity: 3}
	catalog.enrolled[103] = map[int64]bool{20: true}
	catalog.enrolled[104] = map[int64]bool{20: true}

	uc := newTestUseCase(&fakeBookingRepo{}, defaultAvailability(), catalog)

	req := validRequest()
	req.MaxStudents = 3
	req.StudentIDs = []int64{100, 101, 102, 103}

	resp, err := uc.Execute(context.Background(), req)
	require.NoError(t, err)
	require.False(t, resp.Valid())
	assert.Equal(t, domain.KindSelectedStudentsExceedCapacity, resp.Errors[domain.FieldStudentIDs].Kind)
}

func TestExecute_IntervalCrossingMidnightRejected(t *testing.T) {
	// 23:30 + 60 минут (длительность по умолчанию) перешло бы через
	// полночь: вердикт валидации, а не внутренняя ошибка
	uc := newTestUseCase(&fakeBookingRepo{}, &fakeAvailabilityRepo{}, defaultCatalog())

	req := validRequest()
	req.ScheduledAt = time.Date(2026, 9, 7, 23, 30, 0, 0, time.UTC)

	resp, err := uc.Execute(context.Background(), req)
	require.NoError(t, err)
	require.False(t, resp.Valid())
	assert.Equal(t, domain.KindOutsideAvailability, resp.Errors[domain.FieldScheduledTime].Kind)
}

func TestExecute_InstructorConflict(t *testing.T) {
	bookings := &fakeBookingRepo{
		instructorBookings: []*domain.Booking{
			{ID: 1, StartTime: "09:00", DurationMinutes: 90, Status: domain.StatusScheduled},
		},
	}
	uc := newTestUseCase(bookings, defaultAvailability(), defaultCatalog())

	resp, err := uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)
	require.False(t, resp.Valid())
	assert.Equal(t, domain.KindInstructorConflict, resp.Errors[domain.FieldInstructorID].Kind)
}

func TestExecute_ResourceConflict(t *testing.T) {
	bookings := &fakeBookingRepo{
		resourceBookings: []*domain.Booking{
			{ID: 2, Kind: domain.KindClass, StartTime: "09:00", DurationMinutes: 120, Status: domain.StatusScheduled},
		},
	}
	uc := newTestUseCase(bookings, defaultAvailability(), defaultCatalog())

	resp, err := uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)
	require.False(t, resp.Valid())
	assert.Equal(t, domain.KindResourceConflict, resp.Errors[domain.FieldResourceID].Kind)
}

func TestExecute_CourseNotFound(t *testing.T) {
	uc := newTestUseCase(&fakeBookingRepo{}, defaultAvailability(), defaultCatalog())

	req := validRequest()
	req.CourseID = 999

	_, err := uc.Execute(context.Background(), req)
	require.ErrorIs(t, err, ErrCourseNotFound)
}

func TestExecute_EmptyStudentList(t *testing.T) {
	// Пустой состав группы допустим: студентов добавляют позже
	uc := newTestUseCase(&fakeBookingRepo{}, defaultAvailability(), defaultCatalog())

	req := validRequest()
	req.StudentIDs = nil

	resp, err := uc.Execute(context.Background(), req)
	require.NoError(t, err)
	assert.True(t, resp.Valid())
}

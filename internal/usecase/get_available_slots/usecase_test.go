package get_available_slots

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/DSM-SchedulingService/internal/domain"
	catalogRepo "github.com/m04kA/DSM-SchedulingService/internal/infra/storage/catalog"
	"github.com/m04kA/DSM-SchedulingService/pkg/types"
)

type nopLogger struct{}

func (nopLogger) Info(format string, v ...interface{})  {}
func (nopLogger) Warn(format string, v ...interface{})  {}
func (nopLogger) Error(format string, v ...interface{}) {}

type fakeBookingRepo struct {
	instructorBookings []*domain.Booking
	studentBookings    []*domain.Booking
}

func (f *fakeBookingRepo) GetWithFilter(_ context.Context, filter domain.BookingsFilter) ([]*domain.Booking, error) {
	switch {
	case filter.InstructorID != nil:
		return f.instructorBookings, nil
	case filter.StudentID != nil:
		return f.studentBookings, nil
	}
	return nil, nil
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
	enrollments map[int64]*domain.Enrollment
}

func (f *fakeCatalogRepo) GetEnrollment(_ context.Context, id int64) (*domain.Enrollment, error) {
	if e, ok := f.enrollments[id]; ok {
		return e, nil
	}
	return nil, catalogRepo.ErrEnrollmentNotFound
}

type fixedTimeProvider struct {
	now time.Time
}

func (f *fixedTimeProvider) Now() time.Time {
	return f.now
}

var (
	// Понедельник 2026-09-07; "сейчас" - воскресенье накануне
	requestDate = time.Date(2026, 9, 7, 0, 0, 0, 0, time.UTC)
	dayBefore   = time.Date(2026, 9, 6, 18, 0, 0, 0, time.UTC)
)

func newTestUseCase(bookings *fakeBookingRepo, availability *fakeAvailabilityRepo, now time.Time) *UseCase {
	catalog := &fakeCatalogRepo{
		enrollments: map[int64]*domain.Enrollment{
			10: {ID: 10, StudentID: 100, CourseID: 20, Status: domain.EnrollmentStatusActive},
		},
	}
	uc := NewUseCase(bookings, availability, catalog, time.UTC, nopLogger{})
	uc.timeProvider = &fixedTimeProvider{now: now}
	return uc
}

func validRequest() *Request {
	return &Request{
		InstructorID:    30,
		EnrollmentID:    10,
		Date:            requestDate,
		DurationMinutes: 90,
	}
}

func slotStrings(slots []types.TimeString) []string {
	out := make([]string, 0, len(slots))
	for _, s := range slots {
		out = append(out, s.String())
	}
	return out
}

func TestExecute_AllSlotsFree(t *testing.T) {
	availability := &fakeAvailabilityRepo{startTimes: []types.TimeString{"08:00", "10:00"}}
	uc := newTestUseCase(&fakeBookingRepo{}, availability, dayBefore)

	resp, err := uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)

	// Полуинтервал [08:00, 10:00) с шагом 30 минут плюс терминал 10:00
	assert.Equal(t, []string{"08:00", "08:30", "09:00", "09:30", "10:00"}, slotStrings(resp.Slots))
}

func TestExecute_ConflictingSlotsDropped(t *testing.T) {
	// Занятие 09:00-10:30 выбивает все кандидаты, чей интервал длительностью
	// 90 минут с ним пересекается
	bookings := &fakeBookingRepo{
		instructorBookings: []*domain.Booking{
			{ID: 1, StartTime: "09:00", DurationMinutes: 90, Status: domain.StatusScheduled},
		},
	}
	availability := &fakeAvailabilityRepo{startTimes: []types.TimeString{"08:00", "12:00"}}
	uc := newTestUseCase(bookings, availability, dayBefore)

	resp, err := uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)

	// 08:00-09:30 пересекается, как и все начала до 10:30; 10:30-12:00 свободно
	assert.Equal(t, []string{"10:30", "11:00", "11:30", "12:00"}, slotStrings(resp.Slots))
}

func TestExecute_StudentBookingsAlsoBlock(t *testing.T) {
	bookings := &fakeBookingRepo{
		studentBookings: []*domain.Booking{
			{ID: 2, Kind: domain.KindClass, StartTime: "08:00", DurationMinutes: 60, Status: domain.StatusScheduled},
		},
	}
	availability := &fakeAvailabilityRepo{startTimes: []types.TimeString{"08:00", "10:00"}}
	uc := newTestUseCase(bookings, availability, dayBefore)

	resp, err := uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)
	assert.Equal(t, []string{"09:00", "09:30", "10:00"}, slotStrings(resp.Slots))
}

func TestExecute_CanceledBookingsIgnored(t *testing.T) {
	bookings := &fakeBookingRepo{
		instructorBookings: []*domain.Booking{
			{ID: 1, StartTime: "08:00", DurationMinutes: 240, Status: domain.StatusCanceled},
		},
	}
	availability := &fakeAvailabilityRepo{startTimes: []types.TimeString{"08:00", "10:00"}}
	uc := newTestUseCase(bookings, availability, dayBefore)

	resp, err := uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)
	assert.Equal(t, []string{"08:00", "08:30", "09:00", "09:30", "10:00"}, slotStrings(resp.Slots))
}

func TestExecute_PastDateGivesNoSlots(t *testing.T) {
	availability := &fakeAvailabilityRepo{startTimes: []types.TimeString{"08:00", "10:00"}}
	now := time.Date(2026, 9, 8, 9, 0, 0, 0, time.UTC)
	uc := newTestUseCase(&fakeBookingRepo{}, availability, now)

	resp, err := uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)
	assert.Empty(t, resp.Slots)
}

func TestExecute_TodayPastSlotsDropped(t *testing.T) {
	availability := &fakeAvailabilityRepo{startTimes: []types.TimeString{"08:00", "10:00"}}
	now := time.Date(2026, 9, 7, 9, 10, 0, 0, time.UTC)
	uc := newTestUseCase(&fakeBookingRepo{}, availability, now)

	resp, err := uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)
	assert.Equal(t, []string{"09:30", "10:00"}, slotStrings(resp.Slots))
}

func TestExecute_EmptyAvailabilityGivesNoSlots(t *testing.T) {
	uc := newTestUseCase(&fakeBookingRepo{}, &fakeAvailabilityRepo{}, dayBefore)

	resp, err := uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)
	assert.Empty(t, resp.Slots)
}

func TestExecute_SplitWindows(t *testing.T) {
	// Общая граница окон 10:00 попадает в выдачу один раз
	availability := &fakeAvailabilityRepo{startTimes: []types.TimeString{"08:00", "10:00", "11:00"}}
	uc := newTestUseCase(&fakeBookingRepo{}, availability, dayBefore)

	resp, err := uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)
	assert.Equal(t, []string{"08:00", "08:30", "09:00", "09:30", "10:00", "10:30", "11:00"}, slotStrings(resp.Slots))
}

func TestExecute_LateWindowSlotsEndByMidnight(t *testing.T) {
	// Окно [22:00, 23:00]: кандидаты 22:00, 22:30 и терминал 23:00.
	// Занятие 90 минут с началом в 23:00 не успело бы закончиться до
	// полуночи, поэтому терминал выпадает, а остальные слоты остаются
	availability := &fakeAvailabilityRepo{startTimes: []types.TimeString{"22:00", "23:00"}}
	uc := newTestUseCase(&fakeBookingRepo{}, availability, dayBefore)

	resp, err := uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)
	assert.Equal(t, []string{"22:00", "22:30"}, slotStrings(resp.Slots))
}

func TestMergeBookings_DropsDuplicates(t *testing.T) {
	// Занятие студента у того же инструктора приходит из обеих выборок
	shared := &domain.Booking{ID: 1, StartTime: "09:00", DurationMinutes: 90, Status: domain.StatusScheduled}
	other := &domain.Booking{ID: 2, StartTime: "11:00", DurationMinutes: 60, Status: domain.StatusScheduled}

	merged := mergeBookings(
		[]*domain.Booking{shared},
		[]*domain.Booking{shared, other},
	)

	require.Len(t, merged, 2)
	assert.Same(t, shared, merged[0])
	assert.Same(t, other, merged[1])
}

func TestExecute_EnrollmentNotFound(t *testing.T) {
	availability := &fakeAvailabilityRepo{startTimes: []types.TimeString{"08:00", "10:00"}}
	uc := newTestUseCase(&fakeBookingRepo{}, availability, dayBefore)

	req := validRequest()
	req.EnrollmentID = 999

	_, err := uc.Execute(context.Background(), req)
	require.ErrorIs(t, err, ErrEnrollmentNotFound)
}

func TestExecute_InvalidInput(t *testing.T) {
	availability := &fakeAvailabilityRepo{startTimes: []types.TimeString{"08:00", "10:00"}}
	uc := newTestUseCase(&fakeBookingRepo{}, availability, dayBefore)

	req := validRequest()
	req.InstructorID = 0

	_, err := uc.Execute(context.Background(), req)
	require.ErrorIs(t, err, ErrInvalidInput)
}

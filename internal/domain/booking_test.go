package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/DSM-SchedulingService/pkg/ptr"
	"github.com/m04kA/DSM-SchedulingService/pkg/types"
)

func booking(id int64, start types.TimeString, durationMinutes int, status BookingStatus) *Booking {
	return &Booking{
		ID:              id,
		Kind:            KindLesson,
		InstructorID:    1,
		StartTime:       start,
		DurationMinutes: durationMinutes,
		Status:          status,
	}
}

func TestHasOverlap(t *testing.T) {
	tests := []struct {
		name     string
		start    types.TimeString
		duration int
		bookings []*Booking
		exclude  *int64
		want     bool
	}{
		{
			name:     "no bookings",
			start:    "10:00",
			duration: 90,
			want:     false,
		},
		{
			name:     "full overlap",
			start:    "10:00",
			duration: 90,
			bookings: []*Booking{booking(1, "10:00", 90, StatusScheduled)},
			want:     true,
		},
		{
			name:     "partial overlap from the left",
			start:    "09:00",
			duration: 90,
			bookings: []*Booking{booking(1, "10:00", 90, StatusScheduled)},
			want:     true,
		},
		{
			name:     "partial overlap from the right",
			start:    "11:00",
			duration: 90,
			bookings: []*Booking{booking(1, "10:00", 90, StatusScheduled)},
			want:     true,
		},
		{
			name:     "candidate inside existing",
			start:    "10:30",
			duration: 30,
			bookings: []*Booking{booking(1, "10:00", 120, StatusScheduled)},
			want:     true,
		},
		{
			name:     "existing inside candidate",
			start:    "09:00",
			duration: 240,
			bookings: []*Booking{booking(1, "10:00", 60, StatusScheduled)},
			want:     true,
		},
		{
			// Занятия встык не конфликтуют: интервалы полуоткрытые
			name:     "adjacent before does not conflict",
			start:    "08:30",
			duration: 90,
			bookings: []*Booking{booking(1, "10:00", 90, StatusScheduled)},
			want:     false,
		},
		{
			name:     "adjacent after does not conflict",
			start:    "11:30",
			duration: 90,
			bookings: []*Booking{booking(1, "10:00", 90, StatusScheduled)},
			want:     false,
		},
		{
			name:     "canceled booking never conflicts",
			start:    "10:00",
			duration: 90,
			bookings: []*Booking{booking(1, "10:00", 90, StatusCanceled)},
			want:     false,
		},
		{
			name:     "completed booking still conflicts",
			start:    "10:00",
			duration: 90,
			bookings: []*Booking{booking(1, "10:00", 90, StatusCompleted)},
			want:     true,
		},
		{
			// При редактировании занятие не конфликтует само с собой
			name:     "excluded booking is skipped",
			start:    "10:00",
			duration: 90,
			bookings: []*Booking{booking(7, "10:00", 90, StatusScheduled)},
			exclude:  ptr.Ptr(int64(7)),
			want:     false,
		},
		{
			name:  "exclusion does not hide other conflicts",
			start: "10:00", duration: 90,
			bookings: []*Booking{
				booking(7, "10:00", 90, StatusScheduled),
				booking(8, "10:30", 60, StatusScheduled),
			},
			exclude: ptr.Ptr(int64(7)),
			want:    true,
		},
		{
			// Интервал через полночь обрезается по "24:00", а не падает
			name:     "interval past midnight is clamped",
			start:    "23:00",
			duration: 90,
			bookings: []*Booking{booking(1, "23:30", 30, StatusScheduled)},
			want:     true,
		},
		{
			name:     "clamped interval with no bookings does not conflict",
			start:    "23:30",
			duration: 90,
			want:     false,
		},
		{
			// Занятие, которое само переходит через полночь, тоже обрезается
			name:     "booking past midnight still conflicts",
			start:    "23:00",
			duration: 60,
			bookings: []*Booking{booking(1, "23:30", 90, StatusScheduled)},
			want:     true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := HasOverlap(tt.start, tt.duration, tt.bookings, tt.exclude)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFitsWithinDay(t *testing.T) {
	assert.True(t, FitsWithinDay("22:00", 90))
	// Конец ровно в "24:00" допустим
	assert.True(t, FitsWithinDay("22:30", 90))
	assert.False(t, FitsWithinDay("23:00", 90))
	assert.False(t, FitsWithinDay("garbage", 30))
}

func TestBooking_EndTime(t *testing.T) {
	end, err := booking(1, "10:00", 90, StatusScheduled).EndTime()
	require.NoError(t, err)
	assert.Equal(t, types.TimeString("11:30"), end)
}

func TestBooking_HasStudent(t *testing.T) {
	lesson := booking(1, "10:00", 90, StatusScheduled)
	lesson.StudentID = ptr.Ptr(int64(42))
	assert.True(t, lesson.HasStudent(42))
	assert.False(t, lesson.HasStudent(43))

	class := booking(2, "12:00", 60, StatusScheduled)
	class.Kind = KindClass
	class.StudentIDs = []int64{10, 11}
	assert.True(t, class.HasStudent(11))
	assert.False(t, class.HasStudent(12))
}

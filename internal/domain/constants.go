package domain

// Default durations
const (
	// DefaultLessonDurationMinutes длительность практического занятия по умолчанию
	DefaultLessonDurationMinutes = 90

	// DefaultClassDurationMinutes длительность теоретического занятия по умолчанию
	DefaultClassDurationMinutes = 60
)

// Business validation constants
const (
	// SlotStepMinutes шаг сетки слотов: занятия начинаются только на границах,
	// кратных 30 минутам от начала окна доступности
	SlotStepMinutes = 30

	// VehicleMaxCapacity граница вместимости: ресурс с вместимостью <= 2 считается
	// автомобилем (индивидуальные занятия), > 2 - учебным классом
	VehicleMaxCapacity = 2

	// MinDurationMinutes минимально допустимая длительность занятия
	MinDurationMinutes = 30

	// MaxDurationMinutes максимально допустимая длительность занятия
	MaxDurationMinutes = 240
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// EnrollmentStatusActive статус действующего зачисления на курс
const EnrollmentStatusActive = "active"

// ActiveStatuses статусы занятий, учитываемых при поиске конфликтов.
// Отмененные занятия никогда не конфликтуют.
var ActiveStatuses = []BookingStatus{
	StatusScheduled,
	StatusCompleted,
}

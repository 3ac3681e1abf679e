package domain

// Field names of validation results. Совпадают с полями форм админки,
// чтобы клиент мог подсветить конкретное поле.
const (
	FieldEnrollmentID  = "enrollment_id"
	FieldCourseID      = "course_id"
	FieldInstructorID  = "instructor_id"
	FieldResourceID    = "resource_id"
	FieldScheduledTime = "scheduled_time"
	FieldStudentIDs    = "student_ids"
	FieldMaxStudents   = "max_students"
)

// ErrorKind код бизнес-ошибки валидации.
// Таксономия кодов - переносимый контракт: клиент сам решает,
// как отобразить каждый код на своем языке.
type ErrorKind string

const (
	KindRequiredField                 ErrorKind = "required_field"
	KindOutsideAvailability           ErrorKind = "outside_availability"
	KindCategoryMismatch              ErrorKind = "category_mismatch"
	KindInstructorLicenseMismatch     ErrorKind = "instructor_license_mismatch"
	KindPracticeEnrollmentRequired    ErrorKind = "practice_enrollment_required"
	KindTheoryOnly                    ErrorKind = "theory_only"
	KindClassroomResourceRequired     ErrorKind = "classroom_resource_required"
	KindInstructorConflict            ErrorKind = "instructor_conflict"
	KindStudentConflict               ErrorKind = "student_conflict"
	KindResourceConflict              ErrorKind = "resource_conflict"
	KindStudentNotEnrolledToCourse    ErrorKind = "student_not_enrolled_to_course"
	KindCapacityExceeded              ErrorKind = "capacity_exceeded"
	KindCapacityBelowEnrolled         ErrorKind = "capacity_below_enrolled"
	KindCapacityBelowSelected         ErrorKind = "capacity_below_selected"
	KindSelectedStudentsExceedCapacity ErrorKind = "selected_students_exceed_capacity"
)

// FieldError ошибка валидации одного поля
type FieldError struct {
	Kind ErrorKind

	// StudentIDs список студентов для агрегированных ошибок по составу группы
	StudentIDs []int64
}

// ValidationResult результат валидации: поле -> ошибка.
// Пустой результат означает, что занятие может быть назначено.
// Создается заново на каждый вызов валидации и нигде не сохраняется.
type ValidationResult map[string]FieldError

// NewValidationResult создает пустой результат валидации
func NewValidationResult() ValidationResult {
	return make(ValidationResult)
}

// Set записывает ошибку поля. Первая записанная ошибка поля сохраняется:
// более ранние проверки конвейера имеют приоритет.
func (r ValidationResult) Set(field string, kind ErrorKind) {
	if _, ok := r[field]; ok {
		return
	}
	r[field] = FieldError{Kind: kind}
}

// SetWithStudents записывает агрегированную ошибку с перечнем студентов
func (r ValidationResult) SetWithStudents(field string, kind ErrorKind, studentIDs []int64) {
	if _, ok := r[field]; ok {
		return
	}
	r[field] = FieldError{Kind: kind, StudentIDs: studentIDs}
}

// Valid returns true if no errors were recorded
func (r ValidationResult) Valid() bool {
	return len(r) == 0
}

package validate_lesson

import "errors"

// Ошибки доступа к данным не входят в таксономию бизнес-ошибок валидации:
// сбой выборки - это не "занятие нельзя назначить", а "ответить невозможно".
var (
	// ErrEnrollmentNotFound возвращается, когда зачисление не найдено
	ErrEnrollmentNotFound = errors.New("validate_lesson: enrollment not found")

	// ErrCourseNotFound возвращается, когда курс зачисления не найден
	ErrCourseNotFound = errors.New("validate_lesson: course not found")

	// ErrInstructorNotFound возвращается, когда инструктор не найден
	ErrInstructorNotFound = errors.New("validate_lesson: instructor not found")

	// ErrResourceNotFound возвращается, когда ресурс не найден
	ErrResourceNotFound = errors.New("validate_lesson: resource not found")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("validate_lesson: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("validate_lesson: internal error")
)

package availability

import "errors"

var (
	// ErrInstructorNotFound возвращается, если инструктор не найден
	ErrInstructorNotFound = errors.New("availability.service: instructor not found")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("availability.service: internal error")
)

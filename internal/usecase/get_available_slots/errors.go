package get_available_slots

import "errors"

var (
	// ErrEnrollmentNotFound возвращается, когда зачисление не найдено
	ErrEnrollmentNotFound = errors.New("get_available_slots: enrollment not found")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("get_available_slots: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("get_available_slots: internal error")
)

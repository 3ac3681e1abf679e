package catalog

import "errors"

var (
	// ErrEnrollmentNotFound возвращается, когда зачисление не найдено
	ErrEnrollmentNotFound = errors.New("catalog.repository: enrollment not found")

	// ErrCourseNotFound возвращается, когда курс не найден
	ErrCourseNotFound = errors.New("catalog.repository: course not found")

	// ErrInstructorNotFound возвращается, когда инструктор не найден
	ErrInstructorNotFound = errors.New("catalog.repository: instructor not found")

	// ErrResourceNotFound возвращается, когда ресурс не найден
	ErrResourceNotFound = errors.New("catalog.repository: resource not found")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("catalog.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("catalog.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("catalog.repository: failed to scan row")
)

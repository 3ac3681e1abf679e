package book_lesson

import "errors"

var (
	// ErrSlotTaken возвращается, когда слот заняли между валидацией и созданием
	ErrSlotTaken = errors.New("book_lesson: slot was taken concurrently")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("book_lesson: internal error")
)

package schedule_class

import "errors"

var (
	// ErrSlotTaken возвращается, когда слот заняли между валидацией и созданием
	ErrSlotTaken = errors.New("schedule_class: slot was taken concurrently")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("schedule_class: internal error")
)

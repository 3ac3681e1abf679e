package types

import (
	"errors"
	"fmt"
	"time"
)

// TimeString время в формате "HH:MM" (например, "09:30").
// Используется для времени начала занятий и границ окон доступности.
// Благодаря ведущим нулям строки сравниваются лексикографически.
type TimeString string

const (
	timeStringFormat = "15:04"

	// MinutesPerDay количество минут в сутках.
	// Значение "24:00" допустимо только как конец интервала.
	MinutesPerDay = 24 * 60
)

var (
	// ErrInvalidFormat возвращается при некорректном формате времени
	ErrInvalidFormat = errors.New("types: invalid time string format, expected HH:MM")

	// ErrOutOfRange возвращается, когда время выходит за пределы суток
	ErrOutOfRange = errors.New("types: time is out of day range")
)

// NewTimeString создает TimeString из time.Time (отбрасывает секунды)
func NewTimeString(t time.Time) TimeString {
	return TimeString(t.Format(timeStringFormat))
}

// NewTimeStringFromString парсит строку "HH:MM".
// Некорректный ввод - это ошибка, а не полночь: молчаливое приведение
// мусора к "00:00" скрывает проблемы в данных.
func NewTimeStringFromString(s string) (TimeString, error) {
	t := TimeString(s)
	if err := t.Validate(); err != nil {
		return "", err
	}
	return t, nil
}

// NewTimeStringFromMinutes создает TimeString из количества минут с начала суток
func NewTimeStringFromMinutes(minutes int) (TimeString, error) {
	if minutes < 0 || minutes > MinutesPerDay {
		return "", fmt.Errorf("%w: %d minutes", ErrOutOfRange, minutes)
	}
	return TimeString(fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)), nil
}

// Validate проверяет формат "HH:MM" и диапазон 00:00 - 23:59
func (t TimeString) Validate() error {
	if len(t) != 5 || t[2] != ':' {
		return fmt.Errorf("%w: %q", ErrInvalidFormat, string(t))
	}

	var hours, mins int
	if _, err := fmt.Sscanf(string(t), "%02d:%02d", &hours, &mins); err != nil {
		return fmt.Errorf("%w: %q", ErrInvalidFormat, string(t))
	}

	if hours < 0 || hours > 23 || mins < 0 || mins > 59 {
		return fmt.Errorf("%w: %q", ErrOutOfRange, string(t))
	}

	return nil
}

// IsZero возвращает true для пустого значения
func (t TimeString) IsZero() bool {
	return t == ""
}

// String возвращает строковое представление
func (t TimeString) String() string {
	return string(t)
}

// Minutes возвращает количество минут с начала суток
func (t TimeString) Minutes() (int, error) {
	var hours, mins int
	if _, err := fmt.Sscanf(string(t), "%02d:%02d", &hours, &mins); err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidFormat, string(t))
	}
	return hours*60 + mins, nil
}

// AddMinutes возвращает время, смещенное на указанное число минут.
// Результат может быть равен "24:00" (конец суток), но не может выходить
// за пределы суток: занятия через полночь не планируются.
func (t TimeString) AddMinutes(minutes int) (TimeString, error) {
	current, err := t.Minutes()
	if err != nil {
		return "", err
	}
	return NewTimeStringFromMinutes(current + minutes)
}

// MinutesBetween возвращает разницу в минутах (t - other)
func (t TimeString) MinutesBetween(other TimeString) (int, error) {
	a, err := t.Minutes()
	if err != nil {
		return 0, err
	}
	b, err := other.Minutes()
	if err != nil {
		return 0, err
	}
	return a - b, nil
}

// IsBefore возвращает true, если t строго раньше other
func (t TimeString) IsBefore(other TimeString) bool {
	return string(t) < string(other)
}

// IsAfter возвращает true, если t строго позже other
func (t TimeString) IsAfter(other TimeString) bool {
	return string(t) > string(other)
}

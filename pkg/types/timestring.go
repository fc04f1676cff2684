package types

import (
	"database/sql/driver"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

var (
	// ErrInvalidTimeFormat возвращается при некорректном формате времени
	ErrInvalidTimeFormat = errors.New("types: invalid time format")

	// ErrTimeOutOfRange возвращается, когда время выходит за пределы суток
	ErrTimeOutOfRange = errors.New("types: time out of range")
)

// TimeString represents a wall-clock time of day stored as "HH:MM:SS".
// The system is timezone-naive: all comparisons are minutes since midnight
// in the clinic's local frame.
type TimeString string

const minutesPerDay = 24 * 60

// NewTimeString создает TimeString из time.Time (берёт только время)
func NewTimeString(t time.Time) TimeString {
	return TimeString(t.Format("15:04:05"))
}

// NewTimeStringFromString создает TimeString из строки "HH:MM:SS" или "HH:MM"
// Значение приводится к каноничному виду "HH:MM:SS"
func NewTimeStringFromString(s string) (TimeString, error) {
	h, m, sec, err := parseParts(s)
	if err != nil {
		return "", err
	}
	return TimeString(fmt.Sprintf("%02d:%02d:%02d", h, m, sec)), nil
}

// MustTimeString создает TimeString и паникует при некорректном формате.
// Используется только в тестах и константах.
func MustTimeString(s string) TimeString {
	ts, err := NewTimeStringFromString(s)
	if err != nil {
		panic(err)
	}
	return ts
}

func parseParts(s string) (h, m, sec int, err error) {
	parts := strings.Split(strings.TrimSpace(s), ":")
	if len(parts) != 2 && len(parts) != 3 {
		return 0, 0, 0, fmt.Errorf("%w: %q", ErrInvalidTimeFormat, s)
	}

	h, err = strconv.Atoi(parts[0])
	if err != nil {
		return 0, 0, 0, fmt.Errorf("%w: %q", ErrInvalidTimeFormat, s)
	}
	m, err = strconv.Atoi(parts[1])
	if err != nil {
		return 0, 0, 0, fmt.Errorf("%w: %q", ErrInvalidTimeFormat, s)
	}
	if len(parts) == 3 {
		sec, err = strconv.Atoi(parts[2])
		if err != nil {
			return 0, 0, 0, fmt.Errorf("%w: %q", ErrInvalidTimeFormat, s)
		}
	}

	if h < 0 || h > 23 || m < 0 || m > 59 || sec < 0 || sec > 59 {
		return 0, 0, 0, fmt.Errorf("%w: %q", ErrTimeOutOfRange, s)
	}

	return h, m, sec, nil
}

// Validate проверяет корректность формата времени
func (t TimeString) Validate() error {
	_, _, _, err := parseParts(string(t))
	return err
}

// IsZero возвращает true для пустого значения
func (t TimeString) IsZero() bool {
	return t == ""
}

// String возвращает каноничное представление "HH:MM:SS"
func (t TimeString) String() string {
	return string(t)
}

// Short возвращает представление "HH:MM" (без секунд)
func (t TimeString) Short() string {
	h, m, _, err := parseParts(string(t))
	if err != nil {
		return string(t)
	}
	return fmt.Sprintf("%02d:%02d", h, m)
}

// Minutes возвращает количество минут с полуночи (секунды отбрасываются)
func (t TimeString) Minutes() (int, error) {
	h, m, _, err := parseParts(string(t))
	if err != nil {
		return 0, err
	}
	return h*60 + m, nil
}

// AddMinutes возвращает новое время, сдвинутое на указанное количество минут.
// Выход за пределы суток считается ошибкой.
func (t TimeString) AddMinutes(minutes int) (TimeString, error) {
	total, err := t.Minutes()
	if err != nil {
		return "", err
	}

	total += minutes
	if total < 0 || total > minutesPerDay {
		return "", fmt.Errorf("%w: %s + %d minutes", ErrTimeOutOfRange, t, minutes)
	}
	// 24:00 допускаем как верхнюю границу интервала, но каноничного
	// представления у неё нет - приводим к 23:59:59 нельзя, поэтому ошибка
	if total == minutesPerDay {
		return "", fmt.Errorf("%w: %s + %d minutes", ErrTimeOutOfRange, t, minutes)
	}

	return TimeString(fmt.Sprintf("%02d:%02d:00", total/60, total%60)), nil
}

// IsBefore возвращает true, если время строго раньше other.
// При некорректном формате возвращает false (fail closed).
func (t TimeString) IsBefore(other TimeString) bool {
	a, err := t.Minutes()
	if err != nil {
		return false
	}
	b, err := other.Minutes()
	if err != nil {
		return false
	}
	return a < b
}

// IsAfter возвращает true, если время строго позже other.
// При некорректном формате возвращает false (fail closed).
func (t TimeString) IsAfter(other TimeString) bool {
	a, err := t.Minutes()
	if err != nil {
		return false
	}
	b, err := other.Minutes()
	if err != nil {
		return false
	}
	return a > b
}

// Clock12 возвращает 12-часовое представление для UI, например "2:30 PM".
// Полночь - "12:00 AM", полдень - "12:00 PM".
func (t TimeString) Clock12() string {
	h, m, _, err := parseParts(string(t))
	if err != nil {
		return string(t)
	}

	period := "AM"
	if h >= 12 {
		period = "PM"
	}

	h12 := h % 12
	if h12 == 0 {
		h12 = 12
	}

	return fmt.Sprintf("%d:%02d %s", h12, m, period)
}

// ParseClock12 разбирает 12-часовую строку вида "2:30 PM" в TimeString.
// Единственная точка конвертации 12h -> 24h: гарантирует точный round-trip
// с Clock12 ("2:30 PM" -> 14:30:00 -> "2:30 PM").
func ParseClock12(s string) (TimeString, error) {
	fields := strings.Fields(strings.TrimSpace(s))
	if len(fields) != 2 {
		return "", fmt.Errorf("%w: %q", ErrInvalidTimeFormat, s)
	}

	var period string
	switch strings.ToUpper(fields[1]) {
	case "AM", "PM":
		period = strings.ToUpper(fields[1])
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidTimeFormat, s)
	}

	hm := strings.Split(fields[0], ":")
	if len(hm) != 2 {
		return "", fmt.Errorf("%w: %q", ErrInvalidTimeFormat, s)
	}

	h, err := strconv.Atoi(hm[0])
	if err != nil {
		return "", fmt.Errorf("%w: %q", ErrInvalidTimeFormat, s)
	}
	m, err := strconv.Atoi(hm[1])
	if err != nil {
		return "", fmt.Errorf("%w: %q", ErrInvalidTimeFormat, s)
	}

	if h < 1 || h > 12 || m < 0 || m > 59 {
		return "", fmt.Errorf("%w: %q", ErrTimeOutOfRange, s)
	}

	// 12:xx AM -> 00:xx, 12:xx PM -> 12:xx
	if h == 12 {
		h = 0
	}
	if period == "PM" {
		h += 12
	}

	return TimeString(fmt.Sprintf("%02d:%02d:00", h, m)), nil
}

// Value реализует driver.Valuer для сохранения в БД
func (t TimeString) Value() (driver.Value, error) {
	if t.IsZero() {
		return nil, nil
	}
	if err := t.Validate(); err != nil {
		return nil, err
	}
	return string(t), nil
}

// Scan реализует sql.Scanner для чтения из БД
// Поддерживает типы TIME (приходит как string/[]byte) и TIMESTAMP (time.Time)
func (t *TimeString) Scan(src interface{}) error {
	if src == nil {
		*t = ""
		return nil
	}

	switch v := src.(type) {
	case string:
		ts, err := NewTimeStringFromString(v)
		if err != nil {
			return err
		}
		*t = ts
	case []byte:
		ts, err := NewTimeStringFromString(string(v))
		if err != nil {
			return err
		}
		*t = ts
	case time.Time:
		*t = NewTimeString(v)
	default:
		return fmt.Errorf("%w: unsupported scan type %T", ErrInvalidTimeFormat, src)
	}

	return nil
}

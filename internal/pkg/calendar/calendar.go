package calendar

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ErrMalformedDate is returned by ParseSlashDate when a field is not numeric.
var ErrMalformedDate = errors.New("malformed D/M/Y date")

// Epoch is the reference date the portal counts calendar cell offsets from.
var Epoch = Date{Day: 1, Month: 1, Year: 2000}

// Date is a calendar day without a time-of-day or location.
type Date struct {
	Day   int
	Month int
	Year  int
}

// NewDate builds a Date from a time.Time, ignoring its clock and zone.
func NewDate(t time.Time) Date {
	y, m, d := t.Date()
	return Date{Day: d, Month: int(m), Year: y}
}

// Time returns midnight UTC of the date. Out-of-range fields are normalized
// the way time.Date normalizes them.
func (d Date) Time() time.Time {
	return time.Date(d.Year, time.Month(d.Month), d.Day, 0, 0, 0, 0, time.UTC)
}

// String formats the date as D/M/Y without zero padding.
func (d Date) String() string {
	return fmt.Sprintf("%d/%d/%d", d.Day, d.Month, d.Year)
}

// IsZero reports whether the date was never set.
func (d Date) IsZero() bool {
	return d == Date{}
}

// Compare orders dates by (year, month, day).
func (d Date) Compare(o Date) int {
	switch {
	case d.Year != o.Year:
		return cmpInt(d.Year, o.Year)
	case d.Month != o.Month:
		return cmpInt(d.Month, o.Month)
	default:
		return cmpInt(d.Day, o.Day)
	}
}

// Before reports whether d is strictly earlier than o.
func (d Date) Before(o Date) bool {
	return d.Compare(o) < 0
}

// Weekday returns the day of the week of d.
func (d Date) Weekday() time.Weekday {
	return d.Time().Weekday()
}

// AddDays returns the date n days after d.
func (d Date) AddDays(n int) Date {
	return NewDate(d.Time().AddDate(0, 0, n))
}

func cmpInt(a, b int) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

// DateFromEpochOffset returns Epoch plus offset days. Negative offsets are valid.
func DateFromEpochOffset(offset int) Date {
	return Epoch.AddDays(offset)
}

// EpochOffset is the inverse of DateFromEpochOffset.
func EpochOffset(d Date) int {
	return int(d.Time().Sub(Epoch.Time()).Hours() / 24)
}

// WeekdayName returns the English weekday name of d ("Sunday" ... "Saturday").
func WeekdayName(d Date) string {
	return d.Weekday().String()
}

// IsWeekendWeekday reports whether w is part of the Friday/Saturday weekend.
func IsWeekendWeekday(w time.Weekday) bool {
	return w == time.Friday || w == time.Saturday
}

// IsWeekendName is IsWeekendWeekday for an English weekday name.
func IsWeekendName(name string) bool {
	return name == time.Friday.String() || name == time.Saturday.String()
}

// IsShortDay reports whether w carries the reduced daily requirement.
func IsShortDay(w time.Weekday) bool {
	return w == time.Thursday
}

// DaysInMonth returns the number of days in the given month.
func DaysInMonth(month, year int) int {
	return time.Date(year, time.Month(month)+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// ParseSlashDate splits s on "/" into day, month and year. Ranges are not
// checked. Fields that are missing or not numeric are left as zero and
// ErrMalformedDate is returned alongside the partial date.
func ParseSlashDate(s string) (Date, error) {
	parts := strings.Split(strings.TrimSpace(s), "/")
	fields := make([]int, 3)
	var malformed bool
	for i := range fields {
		if i >= len(parts) {
			malformed = true
			continue
		}
		n, err := strconv.Atoi(strings.TrimSpace(parts[i]))
		if err != nil {
			malformed = true
			continue
		}
		fields[i] = n
	}
	if len(parts) != 3 {
		malformed = true
	}

	d := Date{Day: fields[0], Month: fields[1], Year: fields[2]}
	if malformed {
		return d, fmt.Errorf("%w: %q", ErrMalformedDate, s)
	}
	return d, nil
}

package validator

import (
	"regexp"
	"strings"

	"github.com/eldar-magrafta/hilan-calculator/internal/pkg/calendar"
)

type ValidationError struct {
	Field   string
	Message string
}

type ValidationErrors []ValidationError

func (v ValidationErrors) Error() string {
	var msgs []string
	for _, err := range v {
		msgs = append(msgs, err.Field+": "+err.Message)
	}
	return strings.Join(msgs, "; ")
}

func (v ValidationErrors) ToMap() map[string]string {
	result := make(map[string]string)
	for _, err := range v {
		result[err.Field] = err.Message
	}
	return result
}

// IsEmpty checks if a string is empty after trimming whitespace.
func IsEmpty(s string) bool {
	return strings.TrimSpace(s) == ""
}

// Slice contains check
func IsInSlice(value string, slice []string) bool {
	for _, item := range slice {
		if item == value {
			return true
		}
	}
	return false
}

var dayDateRegex = regexp.MustCompile(`^\d{1,2}[/-]\d{1,2}[/-]\d{4}$`)

// IsValidDayDate checks a D/M/Y (or D-M-Y) date that names a real calendar day.
func IsValidDayDate(s string) (calendar.Date, bool) {
	if !dayDateRegex.MatchString(s) {
		return calendar.Date{}, false
	}
	d, err := calendar.ParseSlashDate(strings.ReplaceAll(s, "-", "/"))
	if err != nil {
		return calendar.Date{}, false
	}
	if d.Month < 1 || d.Month > 12 || d.Day < 1 || d.Day > calendar.DaysInMonth(d.Month, d.Year) {
		return calendar.Date{}, false
	}
	return d, true
}

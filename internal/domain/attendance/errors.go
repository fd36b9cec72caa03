package attendance

import (
	"errors"
	"fmt"
)

// Attendance domain errors
var (
	// Extraction errors
	ErrNoEntries   = errors.New("no time entries found in the calendar page")
	ErrFutureMonth = errors.New("calendar shows a future month, no data is available yet")
	ErrPastMonth   = errors.New("calendar shows a past month")

	// Session errors
	ErrSessionNotFound = errors.New("session not found")
	ErrSessionExpired  = errors.New("session expired")

	// Classification errors
	ErrDateOutsideMonth        = errors.New("date is not part of the session month")
	ErrWeekendReclassification = errors.New("weekend days cannot be reclassified")
	ErrUnsupportedExportFormat = errors.New("unsupported export format")
)

// EmptyResultError reports an empty extraction together with the month the
// page displayed and the month it was fetched in.
type EmptyResultError struct {
	Err       error
	Displayed MonthYear
	Current   MonthYear
}

func (e *EmptyResultError) Error() string {
	return fmt.Sprintf("%s (displayed %s, current %s)", e.Err.Error(), e.Displayed, e.Current)
}

func (e *EmptyResultError) Unwrap() error {
	return e.Err
}

// Details returns the debug fields attached to the error response.
func (e *EmptyResultError) Details() map[string]string {
	return map[string]string{
		"displayedMonth": fmt.Sprint(e.Displayed.Month),
		"displayedYear":  fmt.Sprint(e.Displayed.Year),
		"currentMonth":   fmt.Sprint(e.Current.Month),
		"currentYear":    fmt.Sprint(e.Current.Year),
	}
}

// NewEmptyResultError picks the error category by comparing the displayed
// month against the current one.
func NewEmptyResultError(displayed, current MonthYear) *EmptyResultError {
	err := ErrNoEntries
	if !displayed.IsZero() {
		switch c := displayed.Compare(current); {
		case c > 0:
			err = ErrFutureMonth
		case c < 0:
			err = ErrPastMonth
		}
	}
	return &EmptyResultError{Err: err, Displayed: displayed, Current: current}
}

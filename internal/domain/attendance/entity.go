package attendance

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/eldar-magrafta/hilan-calculator/internal/pkg/calendar"
)

// NoTimePlaceholder is what the dashboard and exports show for a day without
// a valid punch.
const NoTimePlaceholder = "---"

// Required minutes per regular day.
const (
	MinutesPerWorkday  = 9 * 60
	MinutesPerShortDay = 8*60 + 30
)

// Classification is the working status of a day.
type Classification string

const (
	ClassificationRegular  Classification = "regular"
	ClassificationVacation Classification = "vacation"
)

func (c Classification) IsValid() bool {
	return c == ClassificationRegular || c == ClassificationVacation
}

// Label returns the dashboard label for c.
func (c Classification) Label(locale calendar.Locale) string {
	if locale == calendar.LocaleEnglish {
		if c == ClassificationVacation {
			return "Vacation"
		}
		return "Workday"
	}
	if c == ClassificationVacation {
		return "חופש"
	}
	return "יום עבודה"
}

var clockedTimeRegex = regexp.MustCompile(`^\d+:\d+$`)

// IsValidClockedTime reports whether s is a digits:digits duration.
func IsValidClockedTime(s string) bool {
	return clockedTimeRegex.MatchString(s)
}

// ParseClockedTime converts an H:MM duration to minutes.
func ParseClockedTime(s string) (int, bool) {
	if !IsValidClockedTime(s) {
		return 0, false
	}
	h, m, _ := strings.Cut(s, ":")
	hours, err := strconv.Atoi(h)
	if err != nil {
		return 0, false
	}
	minutes, err := strconv.Atoi(m)
	if err != nil {
		return 0, false
	}
	return hours*60 + minutes, true
}

// DayEntry is one calendar day of the attendance report.
type DayEntry struct {
	Date              calendar.Date
	Weekday           string
	ClockedTime       string // empty when no valid punch was recorded
	HolidayName       string
	IsHoliday         bool
	IsFutureOrUnknown bool
	EpochOffset       *int
}

// NewPlaceholderEntry builds the entry for a day the portal reported nothing
// for. Weekend placeholders are holidays.
func NewPlaceholderEntry(d calendar.Date) DayEntry {
	return DayEntry{
		Date:              d,
		Weekday:           calendar.WeekdayName(d),
		IsHoliday:         calendar.IsWeekendWeekday(d.Weekday()),
		IsFutureOrUnknown: true,
	}
}

// IsWeekend reports whether the entry falls on the Friday/Saturday weekend.
func (e DayEntry) IsWeekend() bool {
	return calendar.IsWeekendName(e.Weekday)
}

// ClockedMinutes returns the recorded duration in minutes.
func (e DayEntry) ClockedMinutes() (int, bool) {
	return ParseClockedTime(e.ClockedTime)
}

// HasClockedTime reports whether the entry carries a valid punch.
func (e DayEntry) HasClockedTime() bool {
	return IsValidClockedTime(e.ClockedTime)
}

// DefaultClassification is Vacation for weekends and holidays, Regular otherwise.
func (e DayEntry) DefaultClassification() Classification {
	if e.IsWeekend() || e.IsHoliday {
		return ClassificationVacation
	}
	return ClassificationRegular
}

type dayEntryJSON struct {
	Date        string  `json:"date"`
	Day         string  `json:"day"`
	Time        string  `json:"time"`
	HolidayName *string `json:"holidayName"`
	IsHoliday   bool    `json:"isHoliday"`
	IsFutureDay bool    `json:"isFutureDay,omitempty"`
	Offset      *int    `json:"offsetFromEpoch,omitempty"`
}

func (e DayEntry) MarshalJSON() ([]byte, error) {
	out := dayEntryJSON{
		Date:        e.Date.String(),
		Day:         e.Weekday,
		Time:        NoTimePlaceholder,
		IsHoliday:   e.IsHoliday,
		IsFutureDay: e.IsFutureOrUnknown,
		Offset:      e.EpochOffset,
	}
	if e.HasClockedTime() {
		out.Time = e.ClockedTime
	}
	if e.HolidayName != "" {
		name := e.HolidayName
		out.HolidayName = &name
	}
	return json.Marshal(out)
}

func (e *DayEntry) UnmarshalJSON(data []byte) error {
	var in dayEntryJSON
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}
	d, err := calendar.ParseSlashDate(in.Date)
	if err != nil {
		return fmt.Errorf("day entry: %w", err)
	}
	*e = DayEntry{
		Date:              d,
		Weekday:           in.Day,
		IsHoliday:         in.IsHoliday,
		IsFutureOrUnknown: in.IsFutureDay,
		EpochOffset:       in.Offset,
	}
	if IsValidClockedTime(in.Time) {
		e.ClockedTime = in.Time
	}
	if in.HolidayName != nil {
		e.HolidayName = *in.HolidayName
	}
	return nil
}

// MonthYear identifies the month a calendar page shows.
type MonthYear struct {
	Month int `json:"month"`
	Year  int `json:"year"`
}

func (m MonthYear) IsZero() bool {
	return m.Month == 0 || m.Year == 0
}

// Compare orders months chronologically.
func (m MonthYear) Compare(o MonthYear) int {
	return calendar.Date{Day: 1, Month: m.Month, Year: m.Year}.Compare(calendar.Date{Day: 1, Month: o.Month, Year: o.Year})
}

func (m MonthYear) String() string {
	return fmt.Sprintf("%d/%d", m.Month, m.Year)
}

// HoursMinutes is a duration split into whole hours and leftover minutes.
type HoursMinutes struct {
	Hours   int `json:"hours"`
	Minutes int `json:"minutes"`
}

// SplitMinutes splits a non-negative minute count into hours and minutes.
func SplitMinutes(total int) HoursMinutes {
	return HoursMinutes{Hours: total / 60, Minutes: total % 60}
}

// MonthlyRequirement is the completion status of a month.
type MonthlyRequirement struct {
	TotalRequiredMinutes   int          `json:"totalRequiredMinutes"`
	TotalRequired          HoursMinutes `json:"totalRequired"`
	TotalRequiredFormatted string       `json:"totalRequiredFormatted"`
	CompletedMinutes       int          `json:"completedMinutes"`
	Completed              HoursMinutes `json:"completed"`
	RemainingMinutes       int          `json:"remainingMinutes"`
	Remaining              HoursMinutes `json:"remaining"`
	RemainingFormatted     string       `json:"remainingFormatted"`
	RemainingWorkdays      int          `json:"remainingWorkdays"`
	DailyRequiredMinutes   int          `json:"dailyRequiredMinutes"`
	DailyRequired          HoursMinutes `json:"dailyRequired"`
	DailyRequiredFormatted string       `json:"dailyRequiredFormatted"`
	CompletionPercentage   float64      `json:"completionPercentage"`
	CompletionFormatted    string       `json:"completionFormatted"`
}

// Completion bands shown on the dashboard cards.
const (
	CompletionLow      = "low"
	CompletionMid      = "mid"
	CompletionHigh     = "high"
	CompletionComplete = "complete"

	RemainingCompleted       = "completed"
	RemainingNearlyCompleted = "nearly-completed"
	RemainingPending         = "pending"
)

// DashboardStats are the secondary figures of the summary cards.
type DashboardStats struct {
	RegularWorkdays int    `json:"regularWorkdays"`
	CompletedDays   int    `json:"completedDays"`
	DailyAverage    string `json:"dailyAverage"`
	CompletionBand  string `json:"completionBand"`
	RemainingBand   string `json:"remainingBand,omitempty"`
}

// HoursSummary is the result handed to the presentation layer.
type HoursSummary struct {
	Entries            []DayEntry                `json:"entries"`
	TotalHours         int                       `json:"totalHours"`
	TotalMinutes       int                       `json:"totalMinutes"`
	RemainingMinutes   int                       `json:"remainingMinutes"`
	Formatted          string                    `json:"formatted"`
	Duration           string                    `json:"duration"`
	MonthlyRequirement MonthlyRequirement        `json:"monthlyRequirement"`
	Month              MonthYear                 `json:"month"`
	Classifications    map[string]Classification `json:"classifications"`
	Stats              DashboardStats            `json:"stats"`
}

// Session is one user's working set: a month of entries plus the
// classification overrides made while viewing it.
type Session struct {
	ID              string
	Month           MonthYear
	Entries         []DayEntry
	Classifications map[calendar.Date]Classification
	CreatedAt       time.Time
	UpdatedAt       time.Time
	ExpiresAt       time.Time
}

// IsExpired reports whether the session outlived its TTL at now.
func (s Session) IsExpired(now time.Time) bool {
	return !s.ExpiresAt.IsZero() && !now.Before(s.ExpiresAt)
}

// EntryFor returns the entry for d, if the session holds one.
func (s Session) EntryFor(d calendar.Date) (DayEntry, bool) {
	for _, e := range s.Entries {
		if e.Date == d {
			return e, true
		}
	}
	return DayEntry{}, false
}

// ClassificationsByKey flattens the override map to D/M/Y keys.
func ClassificationsByKey(m map[calendar.Date]Classification) map[string]Classification {
	out := make(map[string]Classification, len(m))
	for d, c := range m {
		out[d.String()] = c
	}
	return out
}

// ClassificationsFromKeys is the inverse of ClassificationsByKey. Malformed
// keys are skipped.
func ClassificationsFromKeys(m map[string]Classification) map[calendar.Date]Classification {
	out := make(map[calendar.Date]Classification, len(m))
	for k, c := range m {
		d, err := calendar.ParseSlashDate(k)
		if err != nil {
			continue
		}
		out[d] = c
	}
	return out
}

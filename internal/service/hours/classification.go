package hours

import (
	"github.com/eldar-magrafta/hilan-calculator/internal/domain/attendance"
	"github.com/eldar-magrafta/hilan-calculator/internal/pkg/calendar"
)

// Resolver decides the classification of an entry.
type Resolver interface {
	Resolve(e attendance.DayEntry) attendance.Classification
}

// ResolverFunc adapts a function to Resolver.
type ResolverFunc func(e attendance.DayEntry) attendance.Classification

func (f ResolverFunc) Resolve(e attendance.DayEntry) attendance.Classification {
	return f(e)
}

// DefaultResolver applies the default rule only.
var DefaultResolver = ResolverFunc(attendance.DayEntry.DefaultClassification)

// SummaryResolver resolves from the classifications carried in s, falling
// back to the default rule.
func SummaryResolver(s attendance.HoursSummary) Resolver {
	return ResolverFunc(func(e attendance.DayEntry) attendance.Classification {
		if c, ok := s.Classifications[e.Date.String()]; ok {
			return c
		}
		return e.DefaultClassification()
	})
}

// ClassificationState holds the classification of every day of one month.
// It is not safe for concurrent use.
type ClassificationState struct {
	entries   map[calendar.Date]attendance.DayEntry
	overrides map[calendar.Date]attendance.Classification
}

// NewClassificationState builds a state over entries, starting from a copy of
// overrides (which may be nil).
func NewClassificationState(entries []attendance.DayEntry, overrides map[calendar.Date]attendance.Classification) *ClassificationState {
	s := &ClassificationState{
		entries:   make(map[calendar.Date]attendance.DayEntry, len(entries)),
		overrides: make(map[calendar.Date]attendance.Classification, len(entries)),
	}
	for _, e := range entries {
		s.entries[e.Date] = e
	}
	for d, c := range overrides {
		s.overrides[d] = c
	}
	return s
}

// Initialize stores the default classification for every day that has none.
func (s *ClassificationState) Initialize() {
	for d, e := range s.entries {
		if _, ok := s.overrides[d]; !ok {
			s.overrides[d] = e.DefaultClassification()
		}
	}
}

// Get returns the stored classification of d, or the default rule for the
// entry of d. Dates without an entry are Regular unless they fall on a
// weekend.
func (s *ClassificationState) Get(d calendar.Date) attendance.Classification {
	if c, ok := s.overrides[d]; ok {
		return c
	}
	if e, ok := s.entries[d]; ok {
		return e.DefaultClassification()
	}
	if calendar.IsWeekendWeekday(d.Weekday()) {
		return attendance.ClassificationVacation
	}
	return attendance.ClassificationRegular
}

// Set stores c for d, replacing any previous value.
func (s *ClassificationState) Set(d calendar.Date, c attendance.Classification) {
	s.overrides[d] = c
}

func (s *ClassificationState) Resolve(e attendance.DayEntry) attendance.Classification {
	return s.Get(e.Date)
}

// Map returns a copy of the stored classifications.
func (s *ClassificationState) Map() map[calendar.Date]attendance.Classification {
	out := make(map[calendar.Date]attendance.Classification, len(s.overrides))
	for d, c := range s.overrides {
		out[d] = c
	}
	return out
}

// Effective is the classification used for required minutes. Weekends are
// always Vacation whatever r says.
func Effective(e attendance.DayEntry, r Resolver) attendance.Classification {
	if e.IsWeekend() {
		return attendance.ClassificationVacation
	}
	return r.Resolve(e)
}

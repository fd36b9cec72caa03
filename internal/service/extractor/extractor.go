// Package extractor turns the portal's attendance calendar page into day
// entries. The page layout is outside our control, so extraction runs an
// ordered chain of strategies and the first one that finds anything wins.
package extractor

import (
	"log/slog"
	"sort"

	"github.com/eldar-magrafta/hilan-calculator/internal/domain/attendance"
)

// Page is the input shared by all strategies of one extraction run.
type Page struct {
	HTML string

	header     attendance.MonthYear
	headerDone bool
}

// NewPage wraps raw HTML for extraction.
func NewPage(html string) *Page {
	return &Page{HTML: html}
}

// Header returns the month/year the page displays, computed once.
func (p *Page) Header() attendance.MonthYear {
	if !p.headerDone {
		p.header = ExtractMonthYear(p.HTML)
		p.headerDone = true
	}
	return p.header
}

// Strategy is one way of reading day cells out of a page. Extract must not
// panic and returns nil when the page does not have the layout it expects.
type Strategy struct {
	Name    string
	Extract func(p *Page) []attendance.DayEntry
}

// DefaultStrategies returns the chain in the order it is tried.
func DefaultStrategies() []Strategy {
	return []Strategy{
		{Name: "primary", Extract: extractPrimary},
		{Name: "special-day", Extract: extractBySpecialDay},
		{Name: "month-anchored", Extract: extractByMonthAnchor},
	}
}

type Extractor struct {
	strategies []Strategy
}

// New returns an Extractor running strategies in order, or the default chain
// when none are given.
func New(strategies ...Strategy) *Extractor {
	if len(strategies) == 0 {
		strategies = DefaultStrategies()
	}
	return &Extractor{strategies: strategies}
}

// Extract returns the entries of the first strategy that finds any, sorted by
// date. It returns an empty, non-nil slice when no strategy matches.
func (x *Extractor) Extract(html string) []attendance.DayEntry {
	entries, _ := x.ExtractPage(NewPage(html))
	return entries
}

// ExtractPage is Extract that also reports which strategy matched.
func (x *Extractor) ExtractPage(p *Page) ([]attendance.DayEntry, string) {
	for _, s := range x.strategies {
		entries := run(s, p)
		if len(entries) == 0 {
			slog.Debug("Extraction strategy found nothing", "strategy", s.Name)
			continue
		}
		SortEntries(entries)
		slog.Debug("Extraction strategy matched", "strategy", s.Name, "entries", len(entries))
		return entries, s.Name
	}
	return []attendance.DayEntry{}, ""
}

func run(s Strategy, p *Page) (entries []attendance.DayEntry) {
	defer func() {
		if r := recover(); r != nil {
			slog.Error("Extraction strategy panicked", "strategy", s.Name, "panic", r)
			entries = nil
		}
	}()
	return s.Extract(p)
}

// SortEntries orders entries ascending by (year, month, day).
func SortEntries(entries []attendance.DayEntry) {
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Date.Before(entries[j].Date)
	})
}

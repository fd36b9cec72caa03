package extractor

import (
	"regexp"
	"strconv"

	"github.com/eldar-magrafta/hilan-calculator/internal/domain/attendance"
	"github.com/eldar-magrafta/hilan-calculator/internal/pkg/calendar"
)

// Looser patterns for layouts the primary regex does not recognise. They
// tolerate extra classes, single quotes, whitespace and different tags.
var (
	offsetMarkerRegex = regexp.MustCompile(`(?i)<td\b[^>]*\bDays\s*=\s*["']?(\d+)`)
	dayNumberRegex    = regexp.MustCompile(`class\s*=\s*["'][^"']*\bdTS\b[^"']*["'][^>]*>\s*(\d+)\s*<`)
	contentRegex      = regexp.MustCompile(`class\s*=\s*["'][^"']*\bcDM\b[^"']*["'][^>]*>([^<]*)<`)
	specialDayRegex   = regexp.MustCompile(`<[a-zA-Z]+\b[^>]*\bclass\s*=\s*["'][^"']*\bspecialDay\b[^"']*["'][^>]*>([^<]*)`)
	titleAttrRegex    = regexp.MustCompile(`\btitle\s*=\s*(?:"([^"]*)"|'([^']*)')`)
)

// cell is the loosely parsed content of one calendar cell.
type cell struct {
	offset    int
	hasOffset bool

	dayNumber int
	hasDay    bool

	content    string
	hasContent bool

	special      bool
	specialLabel string
}

func parseCell(chunk string) cell {
	var c cell
	if m := offsetMarkerRegex.FindStringSubmatch(chunk); m != nil {
		if n, err := strconv.Atoi(m[1]); err == nil {
			c.offset, c.hasOffset = n, true
		}
	}
	if m := dayNumberRegex.FindStringSubmatch(chunk); m != nil {
		if n, err := strconv.Atoi(m[1]); err == nil {
			c.dayNumber, c.hasDay = n, true
		}
	}
	if m := contentRegex.FindStringSubmatch(chunk); m != nil {
		c.content, c.hasContent = cellText(m[1]), true
	}
	if m := specialDayRegex.FindStringSubmatch(chunk); m != nil {
		c.special = true
		if t := titleAttrRegex.FindStringSubmatch(m[0]); t != nil {
			c.specialLabel = cellText(t[1] + t[2])
		}
		if c.specialLabel == "" {
			c.specialLabel = cellText(m[1])
		}
	}
	return c
}

// splitCells cuts html into chunks, each starting at a match of marker and
// running up to the next one.
func splitCells(html string, marker *regexp.Regexp) []cell {
	locs := marker.FindAllStringIndex(html, -1)
	cells := make([]cell, 0, len(locs))
	for i, loc := range locs {
		end := len(html)
		if i+1 < len(locs) {
			end = locs[i+1][0]
		}
		cells = append(cells, parseCell(html[loc[0]:end]))
	}
	return cells
}

// placeCell resolves the date of a cell and a key to deduplicate it by.
type placeCell func(c cell) (d calendar.Date, key int, ok bool)

// twoPass claims explicitly flagged special days first, then reads the
// remaining cells as generic (day number, content) triples.
func twoPass(cells []cell, place placeCell) []attendance.DayEntry {
	claimed := make(map[int]bool)
	var entries []attendance.DayEntry

	for _, c := range cells {
		if !c.special {
			continue
		}
		d, key, ok := place(c)
		if !ok || claimed[key] {
			continue
		}
		claimed[key] = true

		e := newEntry(d, c)
		if attendance.IsValidClockedTime(c.content) {
			e.ClockedTime = c.content
		}
		e.HolidayName = c.specialLabel
		if e.HolidayName == "" && !isEmptyMarker(c.content) && !attendance.IsValidClockedTime(c.content) {
			e.HolidayName = c.content
		}
		e.IsHoliday = true
		entries = append(entries, e)
	}

	for _, c := range cells {
		if c.special || !c.hasDay || !c.hasContent {
			continue
		}
		d, key, ok := place(c)
		if !ok || claimed[key] {
			continue
		}
		claimed[key] = true

		e := newEntry(d, c)
		applyContent(&e, c.content)
		entries = append(entries, e)
	}

	return entries
}

func newEntry(d calendar.Date, c cell) attendance.DayEntry {
	e := attendance.DayEntry{
		Date:    d,
		Weekday: calendar.WeekdayName(d),
	}
	offset := calendar.EpochOffset(d)
	if c.hasOffset {
		offset = c.offset
	}
	e.EpochOffset = &offset
	return e
}

// extractBySpecialDay handles offset-tagged pages whose markup drifted away
// from the primary layout.
func extractBySpecialDay(p *Page) []attendance.DayEntry {
	cells := splitCells(p.HTML, offsetMarkerRegex)
	if len(cells) == 0 {
		return nil
	}
	return twoPass(cells, func(c cell) (calendar.Date, int, bool) {
		if !c.hasOffset {
			return calendar.Date{}, 0, false
		}
		return calendar.DateFromEpochOffset(c.offset), c.offset, true
	})
}

// extractByMonthAnchor handles pages without offset markers by anchoring day
// numbers to the month and year from the page header.
func extractByMonthAnchor(p *Page) []attendance.DayEntry {
	if offsetMarkerRegex.MatchString(p.HTML) {
		return nil
	}
	header := p.Header()
	if header.IsZero() || header.Month < 1 || header.Month > 12 {
		return nil
	}
	days := calendar.DaysInMonth(header.Month, header.Year)

	cells := splitCells(p.HTML, dayNumberRegex)
	return twoPass(cells, func(c cell) (calendar.Date, int, bool) {
		if !c.hasDay || c.dayNumber < 1 || c.dayNumber > days {
			return calendar.Date{}, 0, false
		}
		return calendar.Date{Day: c.dayNumber, Month: header.Month, Year: header.Year}, c.dayNumber, true
	})
}

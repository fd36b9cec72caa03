package extractor

import (
	"html"
	"regexp"
	"strconv"
	"strings"

	"github.com/eldar-magrafta/hilan-calculator/internal/domain/attendance"
	"github.com/eldar-magrafta/hilan-calculator/internal/pkg/calendar"
)

// primaryCellRegex matches the calendar cell layout the portal normally
// serves: an offset-tagged cell, its day-number cell, then its content block.
var primaryCellRegex = regexp.MustCompile(`<td[^>]*Days="(\d+)"[^>]*>[\s\S]*?<td class="dTS">(\d+)</td>[\s\S]*?<div class="cDM[^"]*"[^>]*>([^<]+)</div>`)

func extractPrimary(p *Page) []attendance.DayEntry {
	matches := primaryCellRegex.FindAllStringSubmatch(p.HTML, -1)
	if len(matches) == 0 {
		return nil
	}

	seen := make(map[int]bool, len(matches))
	entries := make([]attendance.DayEntry, 0, len(matches))
	for _, m := range matches {
		offset, err := strconv.Atoi(m[1])
		if err != nil || seen[offset] {
			continue
		}
		seen[offset] = true
		entries = append(entries, entryFromOffset(offset, m[3]))
	}
	return entries
}

// entryFromOffset builds the entry for a cell tagged with an epoch offset.
// content is the raw text of the cell's content block.
func entryFromOffset(offset int, content string) attendance.DayEntry {
	d := calendar.DateFromEpochOffset(offset)
	e := attendance.DayEntry{
		Date:        d,
		Weekday:     calendar.WeekdayName(d),
		EpochOffset: &offset,
	}
	applyContent(&e, cellText(content))
	return e
}

// applyContent sets the clocked time or the holiday label from cell text.
// Weekends are holidays whatever the cell says.
func applyContent(e *attendance.DayEntry, text string) {
	switch {
	case attendance.IsValidClockedTime(text):
		e.ClockedTime = text
	case !isEmptyMarker(text):
		e.HolidayName = text
	}
	e.IsHoliday = e.IsWeekend() || e.HolidayName != ""
}

// cellText decodes entities and trims whitespace, including the
// non-breaking space the portal uses for empty cells.
func cellText(raw string) string {
	return strings.TrimSpace(html.UnescapeString(raw))
}

// isEmptyMarker reports whether decoded cell text carries nothing. Any other
// non-time text, the "---" marker included, is a holiday label.
func isEmptyMarker(text string) bool {
	return text == ""
}

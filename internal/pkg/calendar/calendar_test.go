package calendar

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDateFromEpochOffset(t *testing.T) {
	cases := []struct {
		offset  int
		want    Date
		weekday string
	}{
		{0, Date{1, 1, 2000}, "Saturday"},
		{-1, Date{31, 12, 1999}, "Friday"},
		{8766, Date{1, 1, 2024}, "Monday"},
		{8825, Date{29, 2, 2024}, "Thursday"},
		{9010, Date{1, 9, 2024}, "Sunday"},
		{9788, Date{19, 10, 2026}, "Monday"},
	}
	for _, c := range cases {
		got := DateFromEpochOffset(c.offset)
		assert.Equal(t, c.want, got, "offset %d", c.offset)
		assert.Equal(t, c.weekday, WeekdayName(got), "offset %d", c.offset)
		assert.Equal(t, c.offset, EpochOffset(got))
	}
}

func TestEpochRoundTripMatchesTimePackage(t *testing.T) {
	base := time.Date(2000, time.January, 1, 12, 0, 0, 0, time.UTC)
	for k := -400; k <= 12000; k += 7 {
		want := base.AddDate(0, 0, k)
		got := DateFromEpochOffset(k)
		require.Equal(t, want.Weekday().String(), WeekdayName(got), "offset %d", k)
		require.Equal(t, want.Day(), got.Day)
		require.Equal(t, int(want.Month()), got.Month)
		require.Equal(t, want.Year(), got.Year)
	}
}

func TestIsWeekendWeekday(t *testing.T) {
	weekend := map[time.Weekday]bool{time.Friday: true, time.Saturday: true}
	for wd := time.Sunday; wd <= time.Saturday; wd++ {
		assert.Equal(t, weekend[wd], IsWeekendWeekday(wd), wd.String())
		assert.Equal(t, weekend[wd], IsWeekendName(wd.String()), wd.String())
	}
	assert.True(t, IsShortDay(time.Thursday))
	assert.False(t, IsShortDay(time.Wednesday))
}

func TestDaysInMonth(t *testing.T) {
	assert.Equal(t, 29, DaysInMonth(2, 2024))
	assert.Equal(t, 28, DaysInMonth(2, 2023))
	assert.Equal(t, 30, DaysInMonth(9, 2024))
	assert.Equal(t, 31, DaysInMonth(12, 2024))
}

func TestParseSlashDate(t *testing.T) {
	d, err := ParseSlashDate("5/9/2024")
	require.NoError(t, err)
	assert.Equal(t, Date{Day: 5, Month: 9, Year: 2024}, d)
	assert.Equal(t, "5/9/2024", d.String())

	// ranges are not validated
	d, err = ParseSlashDate("42/13/2024")
	require.NoError(t, err)
	assert.Equal(t, Date{Day: 42, Month: 13, Year: 2024}, d)

	d, err = ParseSlashDate("x/9/2024")
	assert.ErrorIs(t, err, ErrMalformedDate)
	assert.Equal(t, Date{Day: 0, Month: 9, Year: 2024}, d)

	_, err = ParseSlashDate("")
	assert.ErrorIs(t, err, ErrMalformedDate)
}

func TestDateCompare(t *testing.T) {
	a := Date{Day: 31, Month: 1, Year: 2024}
	b := Date{Day: 1, Month: 2, Year: 2024}
	c := Date{Day: 1, Month: 1, Year: 2025}
	assert.True(t, a.Before(b))
	assert.True(t, b.Before(c))
	assert.Equal(t, 0, a.Compare(a))
	assert.Equal(t, 1, c.Compare(a))
}

func TestLocaleLabels(t *testing.T) {
	assert.Equal(t, 9, MonthFromText("ספטמבר 2024"))
	assert.Equal(t, 5, MonthFromText("May 2024"))
	assert.Equal(t, 0, MonthFromText("2024"))
	assert.Equal(t, "ספטמבר", MonthLabel(9, LocaleHebrew))
	assert.Equal(t, "September", MonthLabel(9, LocaleEnglish))
	assert.Equal(t, "", MonthLabel(13, LocaleHebrew))
	assert.Equal(t, "חמישי", WeekdayLabel("Thursday", LocaleHebrew))
	assert.Equal(t, "Thursday", WeekdayLabel("Thursday", LocaleEnglish))
	assert.Equal(t, LocaleEnglish, ParseLocale("EN"))
	assert.Equal(t, LocaleHebrew, ParseLocale("fr"))
}

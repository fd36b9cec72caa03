package validator

import (
	"testing"

	"github.com/eldar-magrafta/hilan-calculator/internal/pkg/calendar"
)

func TestIsEmpty(t *testing.T) {
	cases := []struct {
		input string
		want  bool
	}{
		{"", true},
		{"   ", true},
		{"abc", false},
		{" abc ", false},
	}
	for _, c := range cases {
		got := IsEmpty(c.input)
		if got != c.want {
			t.Errorf("IsEmpty(%q) = %v, want %v", c.input, got, c.want)
		}
	}
}

func TestIsInSlice(t *testing.T) {
	slice := []string{"csv", "xlsx", "pdf"}
	if !IsInSlice("xlsx", slice) {
		t.Errorf("IsInSlice(xlsx) = false, want true")
	}
	if IsInSlice("doc", slice) {
		t.Errorf("IsInSlice(doc) = true, want false")
	}
}

func TestIsValidDayDate(t *testing.T) {
	valid := map[string]calendar.Date{
		"1/9/2024":   {Day: 1, Month: 9, Year: 2024},
		"29-02-2024": {Day: 29, Month: 2, Year: 2024},
		"31/12/2023": {Day: 31, Month: 12, Year: 2023},
	}
	invalid := []string{"29/2/2023", "31/9/2024", "0/1/2024", "1/13/2024", "2024-09-01", "", "a/b/c"}

	for s, want := range valid {
		got, ok := IsValidDayDate(s)
		if !ok || got != want {
			t.Errorf("IsValidDayDate(%q) = %v, %v; want %v, true", s, got, ok, want)
		}
	}
	for _, s := range invalid {
		if _, ok := IsValidDayDate(s); ok {
			t.Errorf("IsValidDayDate(%q) = true, want false", s)
		}
	}
}

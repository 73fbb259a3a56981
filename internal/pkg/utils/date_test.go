package utils

import (
	"testing"
	"time"
)

func TestParseCalendarDate(t *testing.T) {
	cases := []struct {
		input any
		want  string
		ok    bool
	}{
		{"2026-01-05", "2026-01-05", true},
		{"2026-1-5", "2026-01-05", true},
		{"2026-01-05 00:00:00", "2026-01-05", true},
		{"05/01/2026", "2026-01-05", true},
		{"5/1/2026", "2026-01-05", true},
		{"05-01-2026", "2026-01-05", true},
		{"2026/01/05", "2026-01-05", true},
		{"05-Jan-2026", "2026-01-05", true},
		{"2026-01-05T08:00:00+07:00", "2026-01-05", true},
		{46027.0, "2026-01-05", true},
		{"46027", "2026-01-05", true},
		{"2026-02-30", "", false},
		{"2026-13-01", "", false},
		{"not a date", "", false},
		{"", "", false},
		{nil, "", false},
	}
	for _, c := range cases {
		got, ok := ParseCalendarDate(c.input)
		if ok != c.ok {
			t.Errorf("ParseCalendarDate(%#v) ok = %v, want %v", c.input, ok, c.ok)
			continue
		}
		if ok && got.Format("2006-01-02") != c.want {
			t.Errorf("ParseCalendarDate(%#v) = %s, want %s", c.input, got.Format("2006-01-02"), c.want)
		}
	}
}

func TestParseCalendarDateIsLocalMidnight(t *testing.T) {
	got, ok := ParseCalendarDate("2026-03-07")
	if !ok {
		t.Fatal("ParseCalendarDate failed")
	}
	if got.Location() != time.Local || got.Hour() != 0 || got.Day() != 7 {
		t.Errorf("ParseCalendarDate returned %v, want local midnight on the 7th", got)
	}
}

func TestIsWeekend(t *testing.T) {
	cases := []struct {
		input string
		want  bool
	}{
		{"2026-01-03", true},  // Saturday
		{"2026-01-04", true},  // Sunday
		{"2026-01-05", false}, // Monday
		{"2026-01-09", false}, // Friday
	}
	for _, c := range cases {
		d, _ := ParseCalendarDate(c.input)
		if got := IsWeekend(d); got != c.want {
			t.Errorf("IsWeekend(%s) = %v, want %v", c.input, got, c.want)
		}
	}
}

package utils

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"
)

// Fallback layouts tried after the hyphenated YYYY-MM-DD form.
// Slash dates are day-first, matching the Indonesian attendance export.
var dateLayouts = []string{
	"02/01/2006",
	"2/1/2006",
	"02-01-2006",
	"2-1-2006",
	"2006/01/02",
	"02-Jan-2006",
	"2 January 2006",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	time.RFC3339,
}

// ParseCalendarDate turns a cell into a civil date at local midnight.
// It never panics; ok is false when the value cannot be read as a date.
func ParseCalendarDate(value any) (date time.Time, ok bool) {
	defer func() {
		if r := recover(); r != nil {
			date, ok = time.Time{}, false
		}
	}()

	switch v := value.(type) {
	case nil:
		return time.Time{}, false
	case time.Time:
		if v.IsZero() {
			return time.Time{}, false
		}
		return civilDate(v.Year(), v.Month(), v.Day()), true
	case float64:
		return fromSerial(v)
	case int:
		return fromSerial(float64(v))
	case int64:
		return fromSerial(float64(v))
	case json.Number:
		f, err := v.Float64()
		if err != nil {
			return time.Time{}, false
		}
		return fromSerial(f)
	case string:
		return parseDateString(v)
	default:
		return parseDateString(fmt.Sprint(v))
	}
}

// IsWeekend reports whether t falls on Saturday or Sunday.
func IsWeekend(t time.Time) bool {
	wd := t.Weekday()
	return wd == time.Saturday || wd == time.Sunday
}

func parseDateString(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" || s == "0" || s == "-" {
		return time.Time{}, false
	}

	// YYYY-MM-DD is split by hand so the date never shifts through UTC.
	if len(s) >= 8 && s[4] == '-' {
		if d, ok := splitISODate(s); ok {
			return d, true
		}
	}

	for _, layout := range dateLayouts {
		t, err := time.ParseInLocation(layout, s, time.Local)
		if err == nil {
			return civilDate(t.Year(), t.Month(), t.Day()), true
		}
	}

	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return fromSerial(f)
	}

	return time.Time{}, false
}

func splitISODate(s string) (time.Time, bool) {
	parts := strings.SplitN(s, "-", 3)
	if len(parts) != 3 || len(parts[0]) != 4 {
		return time.Time{}, false
	}

	year, err := strconv.Atoi(parts[0])
	if err != nil {
		return time.Time{}, false
	}
	month, err := strconv.Atoi(parts[1])
	if err != nil {
		return time.Time{}, false
	}
	// day may carry a time suffix ("05 08:00:00", "05T08:00:00Z")
	day := leadingInt(parts[2])

	if month < 1 || month > 12 || day < 1 || day > daysIn(year, time.Month(month)) {
		return time.Time{}, false
	}
	return civilDate(year, time.Month(month), day), true
}

// fromSerial reads a spreadsheet serial day number (1900 date system).
func fromSerial(f float64) (time.Time, bool) {
	if f < 1 {
		return time.Time{}, false
	}
	t, err := excelize.ExcelDateToTime(f, false)
	if err != nil {
		return time.Time{}, false
	}
	return civilDate(t.Year(), t.Month(), t.Day()), true
}

func civilDate(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.Local)
}

func daysIn(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

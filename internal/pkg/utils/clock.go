package utils

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

const minutesPerDay = 24 * 60

// ParseClockTime converts a spreadsheet cell into minutes since midnight.
//
// Accepted shapes:
//   - "HH:MM", "H:MM", "HH:MM:SS" and "H:MM AM/PM"
//   - numbers (and numeric strings with a decimal point) as a fraction of a day
//   - a bare integer string as whole hours
//
// Empty sentinels ("", "0", "-", "00:00") and unparseable input yield 0.
func ParseClockTime(value any) int {
	switch v := value.(type) {
	case nil:
		return 0
	case string:
		return parseClockString(v)
	case float64:
		return fractionOfDay(v)
	case float32:
		return fractionOfDay(float64(v))
	case int:
		return fractionOfDay(float64(v))
	case int64:
		return fractionOfDay(float64(v))
	case json.Number:
		f, err := v.Float64()
		if err != nil {
			return 0
		}
		return fractionOfDay(f)
	case time.Time:
		if v.IsZero() {
			return 0
		}
		return v.Hour()*60 + v.Minute()
	default:
		return parseClockString(fmt.Sprint(v))
	}
}

// HasClockValue reports whether the cell carries a real (non-sentinel) time.
func HasClockValue(value any) bool {
	return ParseClockTime(value) > 0
}

// MinutesToClockTime formats minutes as zero padded "HH:MM".
func MinutesToClockTime(minutes int) string {
	if minutes < 0 {
		minutes = 0
	}
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}

// MinutesToHoursLabel formats minutes as decimal hours with two decimals, e.g. 90 -> "1.50".
func MinutesToHoursLabel(minutes int) string {
	return decimal.NewFromInt(int64(minutes)).Div(decimal.NewFromInt(60)).StringFixed(2)
}

// IsEmptySentinel reports whether a raw cell means "no value" in attendance exports.
func IsEmptySentinel(s string) bool {
	switch strings.TrimSpace(s) {
	case "", "0", "-", "0:00", "00:00", "00:00:00":
		return true
	}
	return false
}

func parseClockString(s string) int {
	s = strings.TrimSpace(s)
	if IsEmptySentinel(s) {
		return 0
	}

	upper := strings.ToUpper(s)
	if strings.Contains(s, ":") {
		pm := strings.HasSuffix(upper, "PM")
		am := strings.HasSuffix(upper, "AM")

		parts := strings.Split(s, ":")
		hours := leadingInt(parts[0])
		mins := 0
		if len(parts) > 1 {
			mins = leadingInt(parts[1])
		}

		if pm && hours < 12 {
			hours += 12
		}
		if am && hours == 12 {
			hours = 0
		}
		return hours*60 + mins
	}

	if strings.ContainsAny(s, ".eE") {
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0
		}
		return fractionOfDay(f)
	}

	// Jam bulat, misalnya "8"
	return leadingInt(s) * 60
}

func fractionOfDay(f float64) int {
	if f <= 0 || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return int(math.Round(f * minutesPerDay))
}

// leadingInt parses the leading run of digits, returning 0 when there is none.
func leadingInt(s string) int {
	s = strings.TrimSpace(s)
	end := 0
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == 0 {
		return 0
	}
	n, err := strconv.Atoi(s[:end])
	if err != nil {
		return 0
	}
	return n
}

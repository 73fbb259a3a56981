package utils

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"unicode"
)

var truthyCells = []string{"1", "true", "y", "yes", "ya"}

// NormalizeHeader lowercases and drops everything but letters and digits: "Emp No." -> "empno".
func NormalizeHeader(h string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(h) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// CellText renders a cell as trimmed text. Whole floats print without a fraction (1001.0 -> "1001").
func CellText(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(val)
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case json.Number:
		return val.String()
	default:
		return strings.TrimSpace(fmt.Sprint(val))
	}
}

// IsTruthy reads boolean-like cells: 1, true, y, yes, ya (any case) and JSON booleans.
func IsTruthy(v any) bool {
	switch val := v.(type) {
	case bool:
		return val
	case float64:
		return val == 1
	case int:
		return val == 1
	}
	s := strings.ToLower(CellText(v))
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return f == 1
	}
	for _, t := range truthyCells {
		if s == t {
			return true
		}
	}
	return false
}

// CellNumber parses a numeric cell; "Rp" prefixes and spaces are ignored, anything else yields 0.
func CellNumber(v any) float64 {
	switch val := v.(type) {
	case float64:
		return val
	case int:
		return float64(val)
	case int64:
		return float64(val)
	}
	s := CellText(v)
	s = strings.TrimPrefix(strings.TrimPrefix(s, "Rp"), "rp")
	s = strings.ReplaceAll(s, " ", "")
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return f
}

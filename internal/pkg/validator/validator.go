package validator

import (
	"path/filepath"
	"regexp"
	"strings"
	"time"
)

// MaxPage bounds page numbers so offsets never overflow.
const MaxPage = 100000

type ValidationError struct {
	Field   string
	Message string
}

type ValidationErrors []ValidationError

func (v ValidationErrors) Error() string {
	var msgs []string
	for _, err := range v {
		msgs = append(msgs, err.Field+": "+err.Message)
	}
	return strings.Join(msgs, "; ")
}

func (v ValidationErrors) ToMap() map[string]string {
	result := make(map[string]string)
	for _, err := range v {
		result[err.Field] = err.Message
	}
	return result
}

// IsEmpty checks if a string is empty after trimming whitespace.
func IsEmpty(s string) bool {
	return strings.TrimSpace(s) == ""
}

// UUIDv7 regex: version 7 (the 15th character must be '7'), all lowercase hex digits.
var uuidv7Regex = regexp.MustCompile(`^[0-9a-f]{8}-[0-9a-f]{4}-7[0-9a-f]{3}-[89ab][0-9a-f]{3}-[0-9a-f]{12}$`)

// UUIDv7 validation
func IsValidUUID(uuid string) bool {
	return uuidv7Regex.MatchString(strings.ToLower(uuid))
}

// IsValidDate parses "YYYY-MM-DD" as a civil date at local midnight.
func IsValidDate(dateStr string) (time.Time, bool) {
	date, err := time.ParseInLocation("2006-01-02", dateStr, time.Local)
	return date, err == nil
}

// Slice contains check
func IsInSlice(value string, slice []string) bool {
	for _, item := range slice {
		if item == value {
			return true
		}
	}
	return false
}

// IsAllowedExtension compares the file extension case-insensitively, e.g. ".XLSX" against ".xlsx".
func IsAllowedExtension(filename string, allowed []string) bool {
	return IsInSlice(strings.ToLower(filepath.Ext(filename)), allowed)
}

// IsYesNo accepts the tri-state query switches: "", "yes" and "no".
func IsYesNo(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "yes", "no":
		return true
	}
	return false
}

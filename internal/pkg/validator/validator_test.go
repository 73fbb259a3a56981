package validator

import (
	"testing"
	"time"
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

func TestIsValidUUID(t *testing.T) {
	valid := []string{
		"0188d0f2-7b8c-7b4a-8a2b-6b8b8b8b8b8b", // valid UUIDv7
		"0188D0F2-7B8C-7B4A-8A2B-6B8B8B8B8B8B", // valid UUIDv7 (uppercase)
	}
	invalid := []string{
		"123e4567-e89b-12d3-a456-426614174000", // not v7
		"0188d0f27b8c7b4a8a2b6b8b8b8b8b8b",     // missing dashes
		"g188d0f2-7b8c-7b4a-8a2b-6b8b8b8b8b8b", // invalid hex
		"",                                     // empty
	}
	for _, uuid := range valid {
		if !IsValidUUID(uuid) {
			t.Errorf("IsValidUUID(%q) = false, want true", uuid)
		}
	}
	for _, uuid := range invalid {
		if IsValidUUID(uuid) {
			t.Errorf("IsValidUUID(%q) = true, want false", uuid)
		}
	}
}

func TestIsValidDate(t *testing.T) {
	valid := []string{"2023-01-01", "2000-12-31", "2024-02-29"}
	invalid := []string{"2023-13-01", "2023-01-32", "2023-02-29", "2023/01/01", "01-01-2023", ""}
	for _, s := range valid {
		_, ok := IsValidDate(s)
		if !ok {
			t.Errorf("IsValidDate(%q) = false, want true", s)
		}
	}
	for _, s := range invalid {
		_, ok := IsValidDate(s)
		if ok {
			t.Errorf("IsValidDate(%q) = true, want false", s)
		}
	}
}

func TestIsValidDate_LocalMidnight(t *testing.T) {
	d, ok := IsValidDate("2026-01-05")
	if !ok {
		t.Fatal("IsValidDate rejected a valid date")
	}
	if d.Location() != time.Local || d.Hour() != 0 || d.Day() != 5 {
		t.Errorf("IsValidDate() = %v, want local midnight on the 5th", d)
	}
}

func TestIsInSlice(t *testing.T) {
	slice := []string{"a", "b", "c"}
	if !IsInSlice("a", slice) {
		t.Errorf("IsInSlice('a') = false, want true")
	}
	if IsInSlice("d", slice) {
		t.Errorf("IsInSlice('d') = true, want false")
	}
}

func TestIsAllowedExtension(t *testing.T) {
	allowed := []string{".xlsx", ".csv"}
	for _, name := range []string{"absen.xlsx", "REKAP.XLSX", "data.csv"} {
		if !IsAllowedExtension(name, allowed) {
			t.Errorf("IsAllowedExtension(%q) = false, want true", name)
		}
	}
	for _, name := range []string{"absen.xls", "report.pdf", "noext"} {
		if IsAllowedExtension(name, allowed) {
			t.Errorf("IsAllowedExtension(%q) = true, want false", name)
		}
	}
}

func TestIsYesNo(t *testing.T) {
	for _, s := range []string{"", "yes", "NO", " Yes "} {
		if !IsYesNo(s) {
			t.Errorf("IsYesNo(%q) = false, want true", s)
		}
	}
	for _, s := range []string{"y", "true", "maybe"} {
		if IsYesNo(s) {
			t.Errorf("IsYesNo(%q) = true, want false", s)
		}
	}
}

func TestValidationErrors_Error(t *testing.T) {
	errs := ValidationErrors{
		{Field: "kind", Message: "invalid"},
		{Field: "file", Message: "required"},
	}
	got := errs.Error()
	want := "kind: invalid; file: required"
	if got != want {
		t.Errorf("ValidationErrors.Error() = %q, want %q", got, want)
	}
}

func TestValidationErrors_ToMap(t *testing.T) {
	errs := ValidationErrors{
		{Field: "kind", Message: "invalid"},
		{Field: "file", Message: "required"},
	}
	got := errs.ToMap()
	want := map[string]string{"kind": "invalid", "file": "required"}
	if len(got) != len(want) {
		t.Errorf("ValidationErrors.ToMap() length = %d, want %d", len(got), len(want))
	}
	for k, v := range want {
		if got[k] != v {
			t.Errorf("ValidationErrors.ToMap()[%q] = %q, want %q", k, got[k], v)
		}
	}
}

package attendance

import (
	"strings"
	"time"
)

// Status is the terminal classification of one employee-day.
type Status string

const (
	StatusNonWorkingDay Status = "non_working"
	StatusPresent       Status = "present"
	StatusAbsent        Status = "absent"
	StatusPartial       Status = "partial"
)

// Names of the classifier rules, reported on every Classification.
const (
	RuleExplicitNonWorking  = "explicit-non-working"
	RuleExceptionNonWorking = "exception-other-non-working"
	RuleNoSchedule          = "no-schedule"
	RuleWeekendByDate       = "weekend-by-date"
	RuleSickOrUnpaid        = "exception-sick-or-unpaid"
	RuleExplicitAbsent      = "explicit-absent"
	RuleWorkingException    = "exception-working"
	RuleScanned             = "scanned"
	RulePartialScan         = "partial-scan"
	RuleCountAsPresent      = "count-as-present"
	RuleNoScan              = "no-scan"
)

// ExceptionCategory is the closed set an exception label resolves to.
type ExceptionCategory string

const (
	ExceptionNone            ExceptionCategory = ""
	ExceptionWorking         ExceptionCategory = "working"
	ExceptionSickOrUnpaid    ExceptionCategory = "sick_or_unpaid"
	ExceptionOtherNonWorking ExceptionCategory = "other_non_working"
	// ExceptionNote is a non-empty label that matched no keyword.
	ExceptionNote ExceptionCategory = "note"
)

// IsValid reports whether c is one of the configurable categories.
func (c ExceptionCategory) IsValid() bool {
	switch c {
	case ExceptionWorking, ExceptionSickOrUnpaid, ExceptionOtherNonWorking:
		return true
	}
	return false
}

// LeaveTag marks which leave tallies a label contributes to.
type LeaveTag uint8

const (
	TagSick LeaveTag = 1 << iota
	TagLeave
	TagBusinessTrip
	TagUnpaid
	TagWFH
)

func (t LeaveTag) Has(tag LeaveTag) bool {
	return t&tag != 0
}

// Exception is a free-text label resolved once at ingestion.
type Exception struct {
	Label    string
	Category ExceptionCategory
	Tags     LeaveTag
}

// HasLabel reports whether any label (even an unmatched note) is present.
func (e Exception) HasLabel() bool {
	return e.Category != ExceptionNone
}

// IsBlankLabel reports whether a raw label means "no exception".
func IsBlankLabel(label string) bool {
	switch strings.TrimSpace(label) {
	case "", "0", "-":
		return true
	}
	return false
}

// Record is one employee-day after normalization.
// Nil pointers mean the cell carried no value.
type Record struct {
	EmployeeID   string
	EmployeeName string
	Department   string

	DateText string
	Date     *time.Time

	ScheduledIn  *int
	ScheduledOut *int
	ActualIn     *int
	ActualOut    *int

	LateMinutes       *int
	EarlyLeaveMinutes *int
	OvertimeMinutes   *int
	WorkedMinutes     *int

	IsWeekend      bool
	IsHoliday      bool
	CountAsPresent bool
	ExplicitAbsent bool

	Exception Exception
}

func (r Record) HasAnyScan() bool {
	return r.ActualIn != nil || r.ActualOut != nil
}

func (r Record) HasSchedule() bool {
	return r.ScheduledIn != nil || r.ScheduledOut != nil
}

// Classification is the per-record decision of the classifier.
type Classification struct {
	Rule   string
	Status Status

	IsWorkingDay bool
	IsPresent    bool
	IsPartial    bool
	OnlyIn       bool
	OnlyOut      bool

	IsLate            bool
	LateMinutes       int
	IsEarlyLeave      bool
	EarlyLeaveMinutes int
	OvertimeMinutes   int
	WorkedMinutes     int
}

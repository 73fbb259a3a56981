package attendance

import (
	"github.com/cmlabs-hris/hris-analytics-go/internal/domain/attendance"
	"github.com/cmlabs-hris/hris-analytics-go/internal/pkg/utils"
)

// rule decides the status of a record when match holds. Rules run top-down, first match wins.
type rule struct {
	name   string
	status attendance.Status
	match  func(r *attendance.Record) bool
}

var classificationRules = []rule{
	{
		name:   attendance.RuleExplicitNonWorking,
		status: attendance.StatusNonWorkingDay,
		match: func(r *attendance.Record) bool {
			return r.IsWeekend || r.IsHoliday
		},
	},
	{
		name:   attendance.RuleExceptionNonWorking,
		status: attendance.StatusNonWorkingDay,
		match: func(r *attendance.Record) bool {
			return r.Exception.Category == attendance.ExceptionOtherNonWorking
		},
	},
	{
		name:   attendance.RuleNoSchedule,
		status: attendance.StatusNonWorkingDay,
		match: func(r *attendance.Record) bool {
			return !r.HasAnyScan() && !r.HasSchedule() && r.Exception.Category != attendance.ExceptionWorking
		},
	},
	{
		name:   attendance.RuleWeekendByDate,
		status: attendance.StatusNonWorkingDay,
		match: func(r *attendance.Record) bool {
			return r.Date != nil && utils.IsWeekend(*r.Date) && r.Exception.Category != attendance.ExceptionWorking
		},
	},
	// From here on the record is a working day.
	{
		name:   attendance.RuleSickOrUnpaid,
		status: attendance.StatusAbsent,
		match: func(r *attendance.Record) bool {
			return r.Exception.Category == attendance.ExceptionSickOrUnpaid
		},
	},
	{
		name:   attendance.RuleExplicitAbsent,
		status: attendance.StatusAbsent,
		match: func(r *attendance.Record) bool {
			return r.ExplicitAbsent
		},
	},
	{
		name:   attendance.RuleWorkingException,
		status: attendance.StatusPresent,
		match: func(r *attendance.Record) bool {
			return r.Exception.Category == attendance.ExceptionWorking
		},
	},
	{
		name:   attendance.RuleScanned,
		status: attendance.StatusPresent,
		match: func(r *attendance.Record) bool {
			return r.ActualIn != nil && r.ActualOut != nil
		},
	},
	{
		name:   attendance.RulePartialScan,
		status: attendance.StatusPartial,
		match: func(r *attendance.Record) bool {
			return r.HasAnyScan()
		},
	},
	{
		name:   attendance.RuleCountAsPresent,
		status: attendance.StatusPresent,
		match: func(r *attendance.Record) bool {
			return r.CountAsPresent
		},
	},
	{
		name:   attendance.RuleNoScan,
		status: attendance.StatusAbsent,
		match: func(r *attendance.Record) bool {
			return true
		},
	},
}

// Classifier turns one normalized record into a Classification.
type Classifier struct {
	policy attendance.Policy
}

func NewClassifier(policy attendance.Policy) *Classifier {
	return &Classifier{policy: policy}
}

func (c *Classifier) Classify(r attendance.Record) attendance.Classification {
	var out attendance.Classification
	for _, rl := range classificationRules {
		if rl.match(&r) {
			out.Rule = rl.name
			out.Status = rl.status
			break
		}
	}

	out.IsWorkingDay = out.Status != attendance.StatusNonWorkingDay
	out.IsPresent = out.Status == attendance.StatusPresent || out.Status == attendance.StatusPartial
	out.IsPartial = out.Status == attendance.StatusPartial
	if out.IsPartial {
		out.OnlyIn = r.ActualIn != nil
		out.OnlyOut = r.ActualOut != nil
	}

	// Any exception label, even a free-text note, suppresses late and early leave.
	if out.IsWorkingDay && !r.Exception.HasLabel() {
		out.LateMinutes = explicitOrDiff(r.LateMinutes, r.ActualIn, r.ScheduledIn)
		out.IsLate = out.LateMinutes > 0
		out.EarlyLeaveMinutes = explicitOrDiff(r.EarlyLeaveMinutes, r.ScheduledOut, r.ActualOut)
		out.IsEarlyLeave = out.EarlyLeaveMinutes > 0
	}

	out.OvertimeMinutes = explicitOrDiff(r.OvertimeMinutes, r.ActualOut, r.ScheduledOut)
	out.WorkedMinutes = c.workedMinutes(r)

	return out
}

func (c *Classifier) workedMinutes(r attendance.Record) int {
	if r.WorkedMinutes != nil && *r.WorkedMinutes > 0 {
		return *r.WorkedMinutes
	}
	if r.Exception.Category == attendance.ExceptionWorking {
		return c.policy.StandardDayMinutes
	}
	return 0
}

// explicitOrDiff prefers a recorded nonzero duration, else a - b when positive.
func explicitOrDiff(explicit, a, b *int) int {
	if explicit != nil && *explicit > 0 {
		return *explicit
	}
	return diff(a, b)
}

func diff(a, b *int) int {
	if a == nil || b == nil || *a <= *b {
		return 0
	}
	return *a - *b
}

package attendance

import (
	"sort"
	"strings"

	"github.com/cmlabs-hris/hris-analytics-go/internal/domain/attendance"
	"github.com/cmlabs-hris/hris-analytics-go/internal/pkg/utils"
)

// FilterRecords keeps records matching the record-level parts of the filter.
// Undated records pass a date range but never match a year.
func FilterRecords(records []attendance.Record, f attendance.Filter) []attendance.Record {
	out := make([]attendance.Record, 0, len(records))
	for _, r := range records {
		if matchRecord(r, f) {
			out = append(out, r)
		}
	}
	return out
}

func matchRecord(r attendance.Record, f attendance.Filter) bool {
	if f.EmployeeID != nil && *f.EmployeeID != "" && r.EmployeeID != strings.TrimSpace(*f.EmployeeID) {
		return false
	}
	if f.Department != nil && *f.Department != "" && !strings.EqualFold(departmentOf(r), strings.TrimSpace(*f.Department)) {
		return false
	}
	if f.Exception != nil && *f.Exception != "" && !strings.EqualFold(r.Exception.Label, strings.TrimSpace(*f.Exception)) {
		return false
	}
	if r.Date != nil {
		if f.Start != nil && r.Date.Before(*f.Start) {
			return false
		}
		if f.End != nil && r.Date.After(*f.End) {
			return false
		}
	}
	if f.Year != nil && (r.Date == nil || r.Date.Year() != *f.Year) {
		return false
	}
	return true
}

// matchClassification applies the yes/no switches of the daily log.
func matchClassification(c attendance.Classification, f attendance.Filter) bool {
	return matchSwitch(f.Late, c.IsLate) &&
		matchSwitch(f.EarlyLeave, c.IsEarlyLeave) &&
		matchSwitch(f.Absent, c.Status == attendance.StatusAbsent)
}

func matchSwitch(want *string, got bool) bool {
	if want == nil || *want == "" {
		return true
	}
	return (*want == "yes") == got
}

// ExceptionLabels returns the distinct non-empty labels, sorted.
func ExceptionLabels(records []attendance.Record) []string {
	seen := make(map[string]struct{})
	labels := []string{}
	for _, r := range records {
		if !r.Exception.HasLabel() {
			continue
		}
		if _, ok := seen[r.Exception.Label]; ok {
			continue
		}
		seen[r.Exception.Label] = struct{}{}
		labels = append(labels, r.Exception.Label)
	}
	sort.Strings(labels)
	return labels
}

func toDailyLog(r attendance.Record, c attendance.Classification) attendance.DailyLog {
	log := attendance.DailyLog{
		EmployeeID:   r.EmployeeID,
		EmployeeName: r.EmployeeName,
		Department:   departmentOf(r),
		Date:         r.DateText,
		ScheduledIn:  clockOrEmpty(r.ScheduledIn),
		ScheduledOut: clockOrEmpty(r.ScheduledOut),
		ActualIn:     clockOrEmpty(r.ActualIn),
		ActualOut:    clockOrEmpty(r.ActualOut),
		Exception:    r.Exception.Label,
		Status:       c.Status,
		Rule:         c.Rule,
		IsLate:       c.IsLate,
		IsEarlyLeave: c.IsEarlyLeave,
		WorkedHours:  utils.MinutesToHoursLabel(c.WorkedMinutes),
	}
	if r.Date != nil {
		log.Date = r.Date.Format("2006-01-02")
	}
	if c.IsLate {
		log.Late = utils.MinutesToClockTime(c.LateMinutes)
	}
	if c.IsEarlyLeave {
		log.EarlyLeave = utils.MinutesToClockTime(c.EarlyLeaveMinutes)
	}
	if c.OvertimeMinutes > 0 {
		log.Overtime = utils.MinutesToClockTime(c.OvertimeMinutes)
	}
	return log
}

func clockOrEmpty(m *int) string {
	if m == nil {
		return ""
	}
	return utils.MinutesToClockTime(*m)
}

package attendance

import (
	"github.com/cmlabs-hris/hris-analytics-go/internal/domain/attendance"
	"github.com/cmlabs-hris/hris-analytics-go/internal/pkg/utils"
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// classified pairs a record with its classification so every grouping classifies once.
type classified struct {
	record attendance.Record
	class  attendance.Classification
}

// tally is the one fold behind every aggregate.
type tally struct {
	m          attendance.Metrics
	employees  map[string]struct{}
	workedDays int
}

func newTally() *tally {
	return &tally{employees: make(map[string]struct{})}
}

func (t *tally) add(item classified, standardDay int) {
	r, c := item.record, item.class

	t.m.TotalRecords++
	t.employees[r.EmployeeID] = struct{}{}

	// Leave tallies and overtime cover every record, working day or not.
	tags := r.Exception.Tags
	if tags.Has(attendance.TagSick) {
		t.m.LeaveTypes.Sick++
	}
	if tags.Has(attendance.TagLeave) {
		t.m.LeaveTypes.Leave++
	}
	if tags.Has(attendance.TagBusinessTrip) {
		t.m.LeaveTypes.BusinessTrip++
	}
	if tags.Has(attendance.TagUnpaid) {
		t.m.LeaveTypes.Unpaid++
	}
	if tags.Has(attendance.TagWFH) {
		t.m.LeaveTypes.WFH++
	}
	if c.OvertimeMinutes > 0 {
		t.m.OvertimeDays++
		t.m.OvertimeMinutes += c.OvertimeMinutes
	}

	if !c.IsWorkingDay {
		t.m.NonWorkingDays++
		return
	}
	t.m.WorkingDays++

	switch c.Status {
	case attendance.StatusAbsent:
		t.m.AbsentDays++
	case attendance.StatusPresent, attendance.StatusPartial:
		t.m.PresentDays++
		t.m.StandardMinutes += standardDay
		t.m.WorkedMinutes += c.WorkedMinutes
		if c.WorkedMinutes > 0 {
			t.workedDays++
		}
	}
	if c.IsPartial {
		t.m.PartialDays++
		if c.OnlyIn {
			t.m.OnlyInDays++
		}
		if c.OnlyOut {
			t.m.OnlyOutDays++
		}
	}
	if c.IsLate {
		t.m.LateDays++
		t.m.LateMinutes += c.LateMinutes
	}
	if c.IsEarlyLeave {
		t.m.EarlyLeaveDays++
		t.m.EarlyLeaveMinutes += c.EarlyLeaveMinutes
	}
}

// metrics derives rates from the counts. Compliance uses the already rounded rates.
func (t *tally) metrics(policy attendance.Policy) attendance.Metrics {
	m := t.m
	prec := policy.RatePrecision

	m.EmployeeCount = len(t.employees)
	m.LateHours = utils.MinutesToHoursLabel(m.LateMinutes)
	m.EarlyLeaveHours = utils.MinutesToHoursLabel(m.EarlyLeaveMinutes)
	m.OvertimeHours = utils.MinutesToHoursLabel(m.OvertimeMinutes)

	m.AttendanceRate = percent(m.PresentDays, m.WorkingDays, prec)
	m.PunctualityRate = percent(max(0, m.PresentDays-m.LateDays), m.PresentDays, prec)
	m.LateRate = percent(m.LateDays, m.PresentDays, prec)
	m.EarlyLeaveRate = percent(m.EarlyLeaveDays, m.PresentDays, prec)
	m.OvertimeRate = percent(m.OvertimeDays, m.WorkingDays, prec)
	m.AbsentRate = percent(m.AbsentDays, m.WorkingDays, prec)
	m.ComplianceScore = ComplianceScore(m.AttendanceRate, m.PunctualityRate, policy)

	effective := percent(m.WorkedMinutes, m.StandardMinutes, prec)
	m.EffectiveHoursRate = min(100, effective)

	if t.workedDays > 0 {
		m.AverageWorkHours = decimal.NewFromInt(int64(m.WorkedMinutes)).
			Div(decimal.NewFromInt(int64(t.workedDays * 60))).
			Round(prec).
			InexactFloat64()
	}
	return m
}

// ComplianceScore weighs attendance and punctuality, e.g. 0.6*80 + 0.4*90 = 84.
func ComplianceScore(attendanceRate, punctualityRate float64, policy attendance.Policy) float64 {
	score := decimal.NewFromFloat(policy.AttendanceWeight).Mul(decimal.NewFromFloat(attendanceRate)).
		Add(decimal.NewFromFloat(policy.PunctualityWeight).Mul(decimal.NewFromFloat(punctualityRate)))
	return score.Round(policy.RatePrecision).InexactFloat64()
}

// percent is num/den*100 rounded; a zero denominator yields 0.
func percent(num, den int, precision int32) float64 {
	if den <= 0 {
		return 0
	}
	return decimal.NewFromInt(int64(num)).
		Mul(hundred).
		Div(decimal.NewFromInt(int64(den))).
		Round(precision).
		InexactFloat64()
}

// groupBy folds items per key, keeping keys in first-appearance order.
func groupBy(items []classified, key func(attendance.Record) string, standardDay int) ([]string, map[string]*tally) {
	var keys []string
	groups := make(map[string]*tally)
	for _, item := range items {
		k := key(item.record)
		t, ok := groups[k]
		if !ok {
			t = newTally()
			groups[k] = t
			keys = append(keys, k)
		}
		t.add(item, standardDay)
	}
	return keys, groups
}

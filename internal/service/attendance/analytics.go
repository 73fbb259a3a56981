package attendance

import (
	"sort"
	"strconv"

	"github.com/cmlabs-hris/hris-analytics-go/internal/domain/attendance"
	"github.com/shopspring/decimal"
)

const unknownDepartment = "Unknown"

var monthLabels = [...]string{"Jan", "Feb", "Mar", "Apr", "Mei", "Jun", "Jul", "Agu", "Sep", "Okt", "Nov", "Des"}

// Engine computes the aggregates. It holds no state besides the policy, so calls are idempotent.
type Engine struct {
	policy     attendance.Policy
	classifier *Classifier
}

func NewEngine(policy attendance.Policy) *Engine {
	return &Engine{
		policy:     policy,
		classifier: NewClassifier(policy),
	}
}

func (e *Engine) Classify(r attendance.Record) attendance.Classification {
	return e.classifier.Classify(r)
}

// Organization returns nil when there are no records.
func (e *Engine) Organization(records []attendance.Record) *attendance.OrganizationStats {
	if len(records) == 0 {
		return nil
	}

	t := newTally()
	departments := make(map[string]struct{})
	for _, item := range e.classifyAll(records) {
		t.add(item, e.policy.StandardDayMinutes)
		departments[departmentOf(item.record)] = struct{}{}
	}

	return &attendance.OrganizationStats{
		Metrics:         t.metrics(e.policy),
		DepartmentCount: len(departments),
	}
}

// Departments returns one entry per department in first-appearance order.
func (e *Engine) Departments(records []attendance.Record) []attendance.DepartmentStats {
	keys, groups := groupBy(e.classifyAll(records), departmentOf, e.policy.StandardDayMinutes)

	stats := make([]attendance.DepartmentStats, 0, len(keys))
	for _, k := range keys {
		stats = append(stats, attendance.DepartmentStats{
			Department: k,
			Metrics:    groups[k].metrics(e.policy),
		})
	}
	return stats
}

// Employees returns one entry per employee, highest compliance first; ties keep input order.
func (e *Engine) Employees(records []attendance.Record) []attendance.EmployeeStats {
	items := e.classifyAll(records)
	keys, groups := groupBy(items, func(r attendance.Record) string { return r.EmployeeID }, e.policy.StandardDayMinutes)

	first := make(map[string]attendance.Record, len(keys))
	for _, item := range items {
		if _, ok := first[item.record.EmployeeID]; !ok {
			first[item.record.EmployeeID] = item.record
		}
	}

	stats := make([]attendance.EmployeeStats, 0, len(keys))
	for _, k := range keys {
		r := first[k]
		stats = append(stats, attendance.EmployeeStats{
			EmployeeID:   k,
			EmployeeName: r.EmployeeName,
			Department:   departmentOf(r),
			Metrics:      groups[k].metrics(e.policy),
		})
	}

	sort.SliceStable(stats, func(i, j int) bool {
		return stats[i].ComplianceScore > stats[j].ComplianceScore
	})
	return stats
}

// MonthlyTrends buckets dated records by calendar month. Undated records are skipped.
// A non-empty metric fits a least-squares trendline over the buckets.
func (e *Engine) MonthlyTrends(records []attendance.Record, metric string) []attendance.MonthlyTrend {
	dated := make([]classified, 0, len(records))
	for _, item := range e.classifyAll(records) {
		if item.record.Date != nil {
			dated = append(dated, item)
		}
	}

	keys, groups := groupBy(dated, func(r attendance.Record) string {
		return r.Date.Format("2006-01")
	}, e.policy.StandardDayMinutes)
	sort.Strings(keys)

	trends := make([]attendance.MonthlyTrend, 0, len(keys))
	for _, k := range keys {
		trends = append(trends, attendance.MonthlyTrend{
			Month:   k,
			Label:   monthLabel(k),
			Metrics: groups[k].metrics(e.policy),
		})
	}

	if metric != "" {
		applyTrendline(trends, metric)
	}
	return trends
}

// classifyAll pairs records with their classification, in input order.
func (e *Engine) classifyAll(records []attendance.Record) []classified {
	items := make([]classified, len(records))
	for i, r := range records {
		items[i] = classified{record: r, class: e.classifier.Classify(r)}
	}
	return items
}

func departmentOf(r attendance.Record) string {
	if r.Department == "" {
		return unknownDepartment
	}
	return r.Department
}

// monthLabel turns "2026-01" into "Jan 2026".
func monthLabel(key string) string {
	month, err := strconv.Atoi(key[5:])
	if err != nil || month < 1 || month > 12 {
		return key
	}
	return monthLabels[month-1] + " " + key[:4]
}

func metricValue(m attendance.Metrics, metric string) (float64, bool) {
	switch metric {
	case "attendance":
		return m.AttendanceRate, true
	case "punctuality":
		return m.PunctualityRate, true
	case "compliance":
		return m.ComplianceScore, true
	case "late":
		return m.LateRate, true
	case "early_leave":
		return m.EarlyLeaveRate, true
	case "overtime":
		return m.OvertimeRate, true
	}
	return 0, false
}

// applyTrendline fits y = a + b*x with x the bucket index. Needs at least two buckets.
func applyTrendline(trends []attendance.MonthlyTrend, metric string) {
	n := len(trends)
	if n < 2 {
		return
	}

	var sumX, sumY, sumXY, sumXX float64
	for i, tr := range trends {
		y, ok := metricValue(tr.Metrics, metric)
		if !ok {
			return
		}
		x := float64(i)
		sumX += x
		sumY += y
		sumXY += x * y
		sumXX += x * x
	}

	fn := float64(n)
	denom := fn*sumXX - sumX*sumX
	if denom == 0 {
		return
	}
	slope := (fn*sumXY - sumX*sumY) / denom
	intercept := (sumY - slope*sumX) / fn

	for i := range trends {
		v := decimal.NewFromFloat(intercept + slope*float64(i)).Round(2).InexactFloat64()
		trends[i].Trend = &v
	}
}

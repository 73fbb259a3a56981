package attendance

import (
	"testing"
	"time"

	"github.com/cmlabs-hris/hris-analytics-go/internal/domain/attendance"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleRows() []map[string]any {
	return []map[string]any{
		// Budi: one on time, one late 15, one saturday
		{"Emp No.": "1001", "Nama": "Budi", "Departemen": "Engineering", "Tanggal": "2026-01-05", "Jam Masuk": "08:30", "Jam Pulang": "17:00", "Scan Masuk": "08:30", "Scan Pulang": "17:00"},
		{"Emp No.": "1001", "Nama": "Budi", "Departemen": "Engineering", "Tanggal": "2026-01-06", "Jam Masuk": "08:30", "Jam Pulang": "17:00", "Scan Masuk": "08:45", "Scan Pulang": "17:00"},
		{"Emp No.": "1001", "Nama": "Budi", "Departemen": "Engineering", "Tanggal": "2026-01-10", "Jam Masuk": "08:30", "Jam Pulang": "17:00", "Scan Masuk": "09:00", "Scan Pulang": "12:00"},
		// Sari: dinas, cuti, sick
		{"Emp No.": "1002", "Nama": "Sari", "Departemen": "Finance", "Tanggal": "2026-01-05", "Jam Masuk": "08:30", "Jam Pulang": "17:00", "Pengecualian": "Dinas"},
		{"Emp No.": "1002", "Nama": "Sari", "Departemen": "Finance", "Tanggal": "2026-01-06", "Jam Masuk": "08:30", "Jam Pulang": "17:00", "Pengecualian": "Cuti"},
		{"Emp No.": "1002", "Nama": "Sari", "Departemen": "Finance", "Tanggal": "2026-01-07", "Jam Masuk": "08:30", "Jam Pulang": "17:00", "Scan Masuk": "08:30", "Scan Pulang": "17:00", "Pengecualian": "Sakit"},
		// Andi: no department, partial scan in february
		{"Emp No.": "1003", "Nama": "Andi", "Tanggal": "2026-02-02", "Jam Masuk": "08:30", "Jam Pulang": "17:00", "Scan Masuk": "08:30"},
	}
}

func sampleRecords() []attendance.Record {
	return NewNormalizer(attendance.DefaultPolicy()).NormalizeAll(sampleRows())
}

func TestComplianceScore(t *testing.T) {
	policy := attendance.DefaultPolicy()
	assert.Equal(t, 84.0, ComplianceScore(80, 90, policy))
	assert.Equal(t, 100.0, ComplianceScore(100, 100, policy))
	assert.Equal(t, 0.0, ComplianceScore(0, 0, policy))
}

func TestEngine_EmptyInput(t *testing.T) {
	e := NewEngine(attendance.DefaultPolicy())

	assert.Nil(t, e.Organization(nil))
	assert.Nil(t, e.Organization([]attendance.Record{}))

	depts := e.Departments(nil)
	require.NotNil(t, depts)
	assert.Empty(t, depts)

	emps := e.Employees([]attendance.Record{})
	require.NotNil(t, emps)
	assert.Empty(t, emps)

	assert.Empty(t, e.MonthlyTrends(nil, "attendance"))
}

func TestEngine_Organization(t *testing.T) {
	e := NewEngine(attendance.DefaultPolicy())
	org := e.Organization(sampleRecords())
	require.NotNil(t, org)

	assert.Equal(t, 7, org.TotalRecords)
	assert.Equal(t, 3, org.EmployeeCount)
	assert.Equal(t, 3, org.DepartmentCount)

	// saturday and cuti are excluded
	assert.Equal(t, 5, org.WorkingDays)
	assert.Equal(t, 2, org.NonWorkingDays)
	assert.Equal(t, 4, org.PresentDays)
	assert.Equal(t, 1, org.AbsentDays)
	assert.Equal(t, 1, org.PartialDays)
	assert.Equal(t, 1, org.OnlyInDays)
	assert.Equal(t, 0, org.OnlyOutDays)

	assert.Equal(t, 1, org.LateDays)
	assert.Equal(t, 15, org.LateMinutes)
	assert.Equal(t, "0.25", org.LateHours)

	assert.Equal(t, 1, org.LeaveTypes.Sick)
	assert.Equal(t, 1, org.LeaveTypes.Leave)
	assert.Equal(t, 1, org.LeaveTypes.BusinessTrip)
	assert.Equal(t, 0, org.LeaveTypes.Unpaid)

	assert.Equal(t, 80.0, org.AttendanceRate)
	assert.Equal(t, 75.0, org.PunctualityRate)
	assert.Equal(t, 25.0, org.LateRate)
	assert.Equal(t, 20.0, org.AbsentRate)
	assert.Equal(t, 78.0, org.ComplianceScore)
	assert.LessOrEqual(t, org.EffectiveHoursRate, 100.0)
}

func TestEngine_EffectiveHoursIsCapped(t *testing.T) {
	e := NewEngine(attendance.DefaultPolicy())
	rows := []map[string]any{
		{"Emp No.": "1", "Tanggal": "2026-01-05", "Jam Masuk": "08:00", "Scan Masuk": "06:00", "Scan Pulang": "20:00", "Jml Jam Kerja": "14:00"},
	}
	org := e.Organization(NewNormalizer(attendance.DefaultPolicy()).NormalizeAll(rows))
	require.NotNil(t, org)
	assert.Equal(t, 100.0, org.EffectiveHoursRate)
	assert.Equal(t, 14.0, org.AverageWorkHours)
}

func TestEngine_EffectiveHoursWithoutWorkedColumn(t *testing.T) {
	e := NewEngine(attendance.DefaultPolicy())
	rows := []map[string]any{
		{"Emp No.": "1", "Tanggal": "2026-01-05", "Jam Masuk": "08:00", "Jam Pulang": "17:00", "Scan Masuk": "08:00", "Scan Pulang": "17:00"},
	}
	org := e.Organization(NewNormalizer(attendance.DefaultPolicy()).NormalizeAll(rows))
	require.NotNil(t, org)
	assert.Equal(t, 1, org.PresentDays)
	assert.Equal(t, 0, org.WorkedMinutes)
	assert.Equal(t, 0.0, org.EffectiveHoursRate)
	assert.Equal(t, 0.0, org.AverageWorkHours)
}

func TestEngine_Idempotent(t *testing.T) {
	e := NewEngine(attendance.DefaultPolicy())
	records := sampleRecords()

	assert.Equal(t, e.Organization(records), e.Organization(records))
	assert.Equal(t, e.Departments(records), e.Departments(records))
	assert.Equal(t, e.Employees(records), e.Employees(records))
	assert.Equal(t, e.MonthlyTrends(records, "compliance"), e.MonthlyTrends(records, "compliance"))
}

func TestEngine_Departments(t *testing.T) {
	e := NewEngine(attendance.DefaultPolicy())
	depts := e.Departments(sampleRecords())

	require.Len(t, depts, 3)
	assert.Equal(t, "Engineering", depts[0].Department)
	assert.Equal(t, "Finance", depts[1].Department)
	assert.Equal(t, "Unknown", depts[2].Department)

	assert.Equal(t, 2, depts[0].WorkingDays)
	assert.Equal(t, 50.0, depts[0].PunctualityRate)
	assert.Equal(t, 2, depts[1].WorkingDays)
	assert.Equal(t, 50.0, depts[1].AttendanceRate)
}

func TestEngine_EmployeesSortedByCompliance(t *testing.T) {
	e := NewEngine(attendance.DefaultPolicy())
	emps := e.Employees(sampleRecords())

	require.Len(t, emps, 3)
	// Andi 100/100, Budi 100/50, Sari 50/100
	assert.Equal(t, "1003", emps[0].EmployeeID)
	assert.Equal(t, "Unknown", emps[0].Department)
	assert.Equal(t, "1001", emps[1].EmployeeID)
	assert.Equal(t, "Budi", emps[1].EmployeeName)
	assert.Equal(t, 80.0, emps[1].ComplianceScore)
	assert.Equal(t, "1002", emps[2].EmployeeID)
	assert.Equal(t, 70.0, emps[2].ComplianceScore)

	for i := 1; i < len(emps); i++ {
		assert.GreaterOrEqual(t, emps[i-1].ComplianceScore, emps[i].ComplianceScore)
	}
}

func TestEngine_EmployeesStableOnTies(t *testing.T) {
	e := NewEngine(attendance.DefaultPolicy())
	var records []attendance.Record
	for _, id := range []string{"c", "a", "b"} {
		r := weekdayRecord()
		r.EmployeeID = id
		records = append(records, r)
	}

	emps := e.Employees(records)
	require.Len(t, emps, 3)
	assert.Equal(t, []string{"c", "a", "b"}, []string{emps[0].EmployeeID, emps[1].EmployeeID, emps[2].EmployeeID})
}

func TestEngine_MonthlyTrends(t *testing.T) {
	e := NewEngine(attendance.DefaultPolicy())
	records := sampleRecords()

	undated := weekdayRecord()
	undated.Date = nil
	records = append(records, undated)

	trends := e.MonthlyTrends(records, "")
	require.Len(t, trends, 2)
	assert.Equal(t, "2026-01", trends[0].Month)
	assert.Equal(t, "Jan 2026", trends[0].Label)
	assert.Equal(t, "2026-02", trends[1].Month)
	assert.Equal(t, "Feb 2026", trends[1].Label)
	assert.Equal(t, 6, trends[0].TotalRecords)
	assert.Nil(t, trends[0].Trend)

	withLine := e.MonthlyTrends(records, "attendance")
	require.NotNil(t, withLine[0].Trend)
	require.NotNil(t, withLine[1].Trend)
	// two points: the line passes through both
	assert.Equal(t, withLine[0].AttendanceRate, *withLine[0].Trend)
	assert.Equal(t, withLine[1].AttendanceRate, *withLine[1].Trend)
}

func TestMonthLabel(t *testing.T) {
	assert.Equal(t, "Mei 2025", monthLabel("2025-05"))
	assert.Equal(t, "Agu 2025", monthLabel("2025-08"))
	assert.Equal(t, "Des 2025", monthLabel("2025-12"))
}

func TestApplyTrendline(t *testing.T) {
	trends := []attendance.MonthlyTrend{
		{Metrics: attendance.Metrics{LateRate: 10}},
		{Metrics: attendance.Metrics{LateRate: 20}},
		{Metrics: attendance.Metrics{LateRate: 60}},
	}
	applyTrendline(trends, "late")

	// y = 5 + 25x
	require.NotNil(t, trends[0].Trend)
	assert.Equal(t, 5.0, *trends[0].Trend)
	assert.Equal(t, 30.0, *trends[1].Trend)
	assert.Equal(t, 55.0, *trends[2].Trend)

	single := []attendance.MonthlyTrend{{Month: "2026-01"}}
	applyTrendline(single, "late")
	assert.Nil(t, single[0].Trend)
}

func TestEngine_WeekendByDate(t *testing.T) {
	e := NewEngine(attendance.DefaultPolicy())
	r := weekdayRecord()
	r.Date = datePtr(2026, time.January, 10)

	org := e.Organization([]attendance.Record{r})
	require.NotNil(t, org)
	assert.Equal(t, 0, org.WorkingDays)
	assert.Equal(t, 1, org.NonWorkingDays)
	assert.Equal(t, 0.0, org.AttendanceRate)
}

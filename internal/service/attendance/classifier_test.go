package attendance

import (
	"testing"
	"time"

	"github.com/cmlabs-hris/hris-analytics-go/internal/domain/attendance"
	"github.com/stretchr/testify/assert"
)

func minutesPtr(m int) *int {
	return &m
}

func datePtr(year int, month time.Month, day int) *time.Time {
	d := time.Date(year, month, day, 0, 0, 0, 0, time.Local)
	return &d
}

// weekday is Monday 5 January 2026.
func weekdayRecord() attendance.Record {
	return attendance.Record{
		EmployeeID:   "1001",
		EmployeeName: "Budi",
		Department:   "Engineering",
		Date:         datePtr(2026, time.January, 5),
		ScheduledIn:  minutesPtr(8 * 60),
		ScheduledOut: minutesPtr(17 * 60),
		ActualIn:     minutesPtr(8 * 60),
		ActualOut:    minutesPtr(17 * 60),
	}
}

func TestClassifier_Rules(t *testing.T) {
	policy := attendance.DefaultPolicy()
	c := NewClassifier(policy)

	tests := []struct {
		name     string
		mutate   func(r *attendance.Record)
		rule     string
		status   attendance.Status
		late     int
		early    int
		overtime int
	}{
		{
			name:   "on time full day",
			mutate: func(r *attendance.Record) {},
			rule:   attendance.RuleScanned,
			status: attendance.StatusPresent,
		},
		{
			name: "late by 15 minutes",
			mutate: func(r *attendance.Record) {
				r.ActualIn = minutesPtr(8*60 + 45)
				r.ScheduledIn = minutesPtr(8*60 + 30)
			},
			rule:   attendance.RuleScanned,
			status: attendance.StatusPresent,
			late:   15,
		},
		{
			name: "explicit weekend flag",
			mutate: func(r *attendance.Record) {
				r.IsWeekend = true
			},
			rule:   attendance.RuleExplicitNonWorking,
			status: attendance.StatusNonWorkingDay,
		},
		{
			name: "holiday flag beats working exception",
			mutate: func(r *attendance.Record) {
				r.IsHoliday = true
				r.Exception = policy.ResolveException("Dinas")
			},
			rule:   attendance.RuleExplicitNonWorking,
			status: attendance.StatusNonWorkingDay,
		},
		{
			name: "cuti is excluded",
			mutate: func(r *attendance.Record) {
				r.Exception = policy.ResolveException("Cuti Tahunan")
			},
			rule:   attendance.RuleExceptionNonWorking,
			status: attendance.StatusNonWorkingDay,
		},
		{
			name: "no schedule and no scan",
			mutate: func(r *attendance.Record) {
				r.ScheduledIn, r.ScheduledOut, r.ActualIn, r.ActualOut = nil, nil, nil, nil
			},
			rule:   attendance.RuleNoSchedule,
			status: attendance.StatusNonWorkingDay,
		},
		{
			name: "saturday without flag",
			mutate: func(r *attendance.Record) {
				r.Date = datePtr(2026, time.January, 3)
			},
			rule:   attendance.RuleWeekendByDate,
			status: attendance.StatusNonWorkingDay,
		},
		{
			name: "working exception on saturday",
			mutate: func(r *attendance.Record) {
				r.Date = datePtr(2026, time.January, 3)
				r.ActualIn, r.ActualOut = nil, nil
				r.Exception = policy.ResolveException("Dinas Luar Kota")
			},
			rule:   attendance.RuleWorkingException,
			status: attendance.StatusPresent,
		},
		{
			name: "sick with both scans",
			mutate: func(r *attendance.Record) {
				r.Exception = policy.ResolveException("Sick")
			},
			rule:   attendance.RuleSickOrUnpaid,
			status: attendance.StatusAbsent,
		},
		{
			name: "unpaid leave is excluded as leave",
			mutate: func(r *attendance.Record) {
				r.Exception = policy.ResolveException("Unpaid Leave")
			},
			rule:   attendance.RuleExceptionNonWorking,
			status: attendance.StatusNonWorkingDay,
		},
		{
			name: "izin sakit is excluded as leave",
			mutate: func(r *attendance.Record) {
				r.Exception = policy.ResolveException("Izin Sakit")
			},
			rule:   attendance.RuleExceptionNonWorking,
			status: attendance.StatusNonWorkingDay,
		},
		{
			name: "bleave is excluded as leave",
			mutate: func(r *attendance.Record) {
				r.Exception = policy.ResolveException("BLeave")
			},
			rule:   attendance.RuleExceptionNonWorking,
			status: attendance.StatusNonWorkingDay,
		},
		{
			name: "explicit absent overrides scans",
			mutate: func(r *attendance.Record) {
				r.ExplicitAbsent = true
			},
			rule:   attendance.RuleExplicitAbsent,
			status: attendance.StatusAbsent,
		},
		{
			name: "explicit absent still records lateness",
			mutate: func(r *attendance.Record) {
				r.ExplicitAbsent = true
				r.ActualIn = minutesPtr(8*60 + 20)
			},
			rule:   attendance.RuleExplicitAbsent,
			status: attendance.StatusAbsent,
			late:   20,
		},
		{
			name: "explicit late column on a day without scans",
			mutate: func(r *attendance.Record) {
				r.ActualIn, r.ActualOut = nil, nil
				r.LateMinutes = minutesPtr(30)
			},
			rule:   attendance.RuleNoScan,
			status: attendance.StatusAbsent,
			late:   30,
		},
		{
			name: "weekend never records lateness",
			mutate: func(r *attendance.Record) {
				r.Date = datePtr(2026, time.January, 10)
				r.ActualIn = minutesPtr(9 * 60)
			},
			rule:   attendance.RuleWeekendByDate,
			status: attendance.StatusNonWorkingDay,
		},
		{
			name: "only scan in",
			mutate: func(r *attendance.Record) {
				r.ActualOut = nil
			},
			rule:   attendance.RulePartialScan,
			status: attendance.StatusPartial,
		},
		{
			name: "count as present without scans",
			mutate: func(r *attendance.Record) {
				r.ActualIn, r.ActualOut = nil, nil
				r.CountAsPresent = true
			},
			rule:   attendance.RuleCountAsPresent,
			status: attendance.StatusPresent,
		},
		{
			name: "scheduled but no scan",
			mutate: func(r *attendance.Record) {
				r.ActualIn, r.ActualOut = nil, nil
			},
			rule:   attendance.RuleNoScan,
			status: attendance.StatusAbsent,
		},
		{
			name: "early leave and overtime are independent",
			mutate: func(r *attendance.Record) {
				r.ActualOut = minutesPtr(16 * 60)
			},
			rule:   attendance.RuleScanned,
			status: attendance.StatusPresent,
			early:  60,
		},
		{
			name: "overtime derived from scans",
			mutate: func(r *attendance.Record) {
				r.ActualOut = minutesPtr(18*60 + 30)
			},
			rule:     attendance.RuleScanned,
			status:   attendance.StatusPresent,
			overtime: 90,
		},
		{
			name: "explicit durations preferred",
			mutate: func(r *attendance.Record) {
				r.LateMinutes = minutesPtr(7)
				r.OvertimeMinutes = minutesPtr(120)
			},
			rule:     attendance.RuleScanned,
			status:   attendance.StatusPresent,
			late:     7,
			overtime: 120,
		},
		{
			name: "free text note suppresses late but not overtime",
			mutate: func(r *attendance.Record) {
				r.ActualIn = minutesPtr(9 * 60)
				r.ActualOut = minutesPtr(18 * 60)
				r.Exception = policy.ResolveException("lupa absen")
			},
			rule:     attendance.RuleScanned,
			status:   attendance.StatusPresent,
			overtime: 60,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := weekdayRecord()
			tt.mutate(&r)

			got := c.Classify(r)
			assert.Equal(t, tt.rule, got.Rule)
			assert.Equal(t, tt.status, got.Status)
			assert.Equal(t, tt.late, got.LateMinutes)
			assert.Equal(t, tt.late > 0, got.IsLate)
			assert.Equal(t, tt.early, got.EarlyLeaveMinutes)
			assert.Equal(t, tt.early > 0, got.IsEarlyLeave)
			assert.Equal(t, tt.overtime, got.OvertimeMinutes)
		})
	}
}

func TestClassifier_PartitionIsExclusive(t *testing.T) {
	c := NewClassifier(attendance.DefaultPolicy())
	policy := attendance.DefaultPolicy()

	labels := []string{"", "Sick", "Cuti", "Dinas", "WFH", "catatan"}
	scans := [][2]*int{
		{nil, nil},
		{minutesPtr(480), nil},
		{nil, minutesPtr(1020)},
		{minutesPtr(480), minutesPtr(1020)},
	}
	dates := []*time.Time{nil, datePtr(2026, time.January, 5), datePtr(2026, time.January, 4)}

	for _, label := range labels {
		for _, scan := range scans {
			for _, d := range dates {
				for _, absent := range []bool{false, true} {
					r := attendance.Record{
						EmployeeID:     "1",
						Date:           d,
						ActualIn:       scan[0],
						ActualOut:      scan[1],
						ScheduledIn:    minutesPtr(480),
						ExplicitAbsent: absent,
						Exception:      policy.ResolveException(label),
					}
					got := c.Classify(r)

					states := 0
					for _, s := range []bool{
						got.Status == attendance.StatusNonWorkingDay,
						got.Status == attendance.StatusPresent,
						got.Status == attendance.StatusAbsent,
						got.Status == attendance.StatusPartial,
					} {
						if s {
							states++
						}
					}
					assert.Equal(t, 1, states, "label=%q absent=%v", label, absent)
					assert.Equal(t, got.Status != attendance.StatusNonWorkingDay, got.IsWorkingDay)
					if got.IsPartial {
						assert.True(t, got.OnlyIn != got.OnlyOut)
					}
				}
			}
		}
	}
}

func TestClassifier_WorkedMinutes(t *testing.T) {
	policy := attendance.DefaultPolicy()
	c := NewClassifier(policy)

	// Scans alone never count as worked time.
	r := weekdayRecord()
	assert.Equal(t, 0, c.Classify(r).WorkedMinutes)

	r.WorkedMinutes = minutesPtr(500)
	assert.Equal(t, 500, c.Classify(r).WorkedMinutes)

	trip := weekdayRecord()
	trip.ActualIn, trip.ActualOut = nil, nil
	trip.Exception = policy.ResolveException("WFH")
	assert.Equal(t, policy.StandardDayMinutes, c.Classify(trip).WorkedMinutes)

	zero := weekdayRecord()
	zero.WorkedMinutes = minutesPtr(0)
	assert.Equal(t, 0, c.Classify(zero).WorkedMinutes)
}

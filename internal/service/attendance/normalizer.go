package attendance

import (
	"sort"

	"github.com/cmlabs-hris/hris-analytics-go/internal/domain/attendance"
	"github.com/cmlabs-hris/hris-analytics-go/internal/pkg/utils"
)

type field int

const (
	fieldEmployeeID field = iota + 1
	fieldEmployeeName
	fieldDepartment
	fieldDate
	fieldScheduledIn
	fieldScheduledOut
	fieldActualIn
	fieldActualOut
	fieldLate
	fieldEarlyLeave
	fieldOvertime
	fieldWorked
	fieldAttendanceCount
	fieldWeekend
	fieldHoliday
	fieldException
	fieldAbsent
)

// headerAliases keys are headers after utils.NormalizeHeader.
var headerAliases = map[string]field{
	"empno":              fieldEmployeeID,
	"employeeid":         fieldEmployeeID,
	"nama":               fieldEmployeeName,
	"employeename":       fieldEmployeeName,
	"name":               fieldEmployeeName,
	"departemen":         fieldDepartment,
	"department":         fieldDepartment,
	"tanggal":            fieldDate,
	"date":               fieldDate,
	"jammasuk":           fieldScheduledIn,
	"scheduledin":        fieldScheduledIn,
	"jampulang":          fieldScheduledOut,
	"scheduledout":       fieldScheduledOut,
	"scanmasuk":          fieldActualIn,
	"actualin":           fieldActualIn,
	"scanpulang":         fieldActualOut,
	"actualout":          fieldActualOut,
	"terlambat":          fieldLate,
	"lateduration":       fieldLate,
	"plgcepat":           fieldEarlyLeave,
	"earlyleaveduration": fieldEarlyLeave,
	"lembur":             fieldOvertime,
	"overtimeduration":   fieldOvertime,
	"jmljamkerja":        fieldWorked,
	"workedduration":     fieldWorked,
	"jmlkehadiran":       fieldAttendanceCount,
	"attendancecount":    fieldAttendanceCount,
	"akhirpekan":         fieldWeekend,
	"isweekend":          fieldWeekend,
	"harilibur":          fieldHoliday,
	"isholiday":          fieldHoliday,
	"pengecualian":       fieldException,
	"exception":          fieldException,
	"exceptionlabel":     fieldException,
	"absent":             fieldAbsent,
	"isabsent":           fieldAbsent,
}

// Normalizer converts loosely typed spreadsheet rows into records.
// Sentinels become nil and the exception label is resolved here, once.
type Normalizer struct {
	policy attendance.Policy
}

func NewNormalizer(policy attendance.Policy) *Normalizer {
	return &Normalizer{policy: policy}
}

func (n *Normalizer) NormalizeAll(rows []map[string]any) []attendance.Record {
	records := make([]attendance.Record, 0, len(rows))
	for _, row := range rows {
		records = append(records, n.Normalize(row))
	}
	return records
}

func (n *Normalizer) Normalize(row map[string]any) attendance.Record {
	values := mapFields(row)

	r := attendance.Record{
		EmployeeID:   utils.CellText(values[fieldEmployeeID]),
		EmployeeName: utils.CellText(values[fieldEmployeeName]),
		Department:   utils.CellText(values[fieldDepartment]),
		DateText:     utils.CellText(values[fieldDate]),

		ScheduledIn:  minutes(values[fieldScheduledIn]),
		ScheduledOut: minutes(values[fieldScheduledOut]),
		ActualIn:     minutes(values[fieldActualIn]),
		ActualOut:    minutes(values[fieldActualOut]),

		LateMinutes:       minutes(values[fieldLate]),
		EarlyLeaveMinutes: minutes(values[fieldEarlyLeave]),
		OvertimeMinutes:   minutes(values[fieldOvertime]),
		WorkedMinutes:     minutes(values[fieldWorked]),

		IsWeekend:      utils.IsTruthy(values[fieldWeekend]),
		IsHoliday:      utils.IsTruthy(values[fieldHoliday]),
		CountAsPresent: utils.IsTruthy(values[fieldAttendanceCount]),
		ExplicitAbsent: utils.IsTruthy(values[fieldAbsent]),

		Exception: n.policy.ResolveException(utils.CellText(values[fieldException])),
	}

	if date, ok := utils.ParseCalendarDate(values[fieldDate]); ok {
		r.Date = &date
	}
	return r
}

// mapFields picks one value per field. Keys are visited sorted so duplicate aliases resolve the same way every call.
func mapFields(row map[string]any) map[field]any {
	keys := make([]string, 0, len(row))
	for k := range row {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	values := make(map[field]any, len(headerAliases))
	for _, k := range keys {
		f, ok := headerAliases[utils.NormalizeHeader(k)]
		if !ok {
			continue
		}
		if _, taken := values[f]; taken {
			continue
		}
		values[f] = row[k]
	}
	return values
}

func minutes(v any) *int {
	if !utils.HasClockValue(v) {
		return nil
	}
	m := utils.ParseClockTime(v)
	return &m
}

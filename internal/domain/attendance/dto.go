package attendance

import (
	"strings"
	"time"

	"github.com/cmlabs-hris/hris-analytics-go/internal/pkg/validator"
)

// LeaveTypeCounts tallies exception labels over every record, working day or not.
type LeaveTypeCounts struct {
	Sick         int `json:"sick"`
	Leave        int `json:"leave"`
	BusinessTrip int `json:"business_trip"`
	Unpaid       int `json:"unpaid"`
	WFH          int `json:"wfh"`
}

// Metrics is the shared shape of every aggregate.
type Metrics struct {
	TotalRecords   int `json:"total_records"`
	EmployeeCount  int `json:"employee_count"`
	WorkingDays    int `json:"working_days"`
	NonWorkingDays int `json:"non_working_days"`
	PresentDays    int `json:"present_days"`
	AbsentDays     int `json:"absent_days"`
	PartialDays    int `json:"partial_days"`
	OnlyInDays     int `json:"only_in_days"`
	OnlyOutDays    int `json:"only_out_days"`

	LateDays          int    `json:"late_days"`
	LateMinutes       int    `json:"late_minutes"`
	LateHours         string `json:"late_hours"`
	EarlyLeaveDays    int    `json:"early_leave_days"`
	EarlyLeaveMinutes int    `json:"early_leave_minutes"`
	EarlyLeaveHours   string `json:"early_leave_hours"`
	OvertimeDays      int    `json:"overtime_days"`
	OvertimeMinutes   int    `json:"overtime_minutes"`
	OvertimeHours     string `json:"overtime_hours"`

	WorkedMinutes    int     `json:"worked_minutes"`
	StandardMinutes  int     `json:"standard_minutes"`
	AverageWorkHours float64 `json:"average_work_hours"`

	LeaveTypes LeaveTypeCounts `json:"leave_types"`

	AttendanceRate     float64 `json:"attendance_rate"`
	PunctualityRate    float64 `json:"punctuality_rate"`
	LateRate           float64 `json:"late_rate"`
	EarlyLeaveRate     float64 `json:"early_leave_rate"`
	OvertimeRate       float64 `json:"overtime_rate"`
	AbsentRate         float64 `json:"absent_rate"`
	ComplianceScore    float64 `json:"compliance_score"`
	EffectiveHoursRate float64 `json:"effective_hours_rate"`
}

type OrganizationStats struct {
	Metrics
	DepartmentCount int `json:"department_count"`
}

type DepartmentStats struct {
	Department string `json:"department"`
	Metrics
}

type EmployeeStats struct {
	EmployeeID   string `json:"employee_id"`
	EmployeeName string `json:"employee_name"`
	Department   string `json:"department"`
	Metrics
}

// MonthlyTrend is one calendar-month bucket. Trend is set only when a trendline was requested.
type MonthlyTrend struct {
	Month string `json:"month"`
	Label string `json:"label"`
	Metrics
	Trend *float64 `json:"trend,omitempty"`
}

// Summary bundles the three aggregates for one input.
type Summary struct {
	Organization *OrganizationStats `json:"organization"`
	Departments  []DepartmentStats  `json:"departments"`
	Employees    []EmployeeStats    `json:"employees"`
}

// DailyLog is one classified record, formatted for display.
type DailyLog struct {
	EmployeeID   string `json:"employee_id"`
	EmployeeName string `json:"employee_name"`
	Department   string `json:"department"`
	Date         string `json:"date"`
	ScheduledIn  string `json:"scheduled_in"`
	ScheduledOut string `json:"scheduled_out"`
	ActualIn     string `json:"actual_in"`
	ActualOut    string `json:"actual_out"`
	Exception    string `json:"exception"`
	Status       Status `json:"status"`
	Rule         string `json:"rule"`
	IsLate       bool   `json:"is_late"`
	Late         string `json:"late"`
	IsEarlyLeave bool   `json:"is_early_leave"`
	EarlyLeave   string `json:"early_leave"`
	Overtime     string `json:"overtime"`
	WorkedHours  string `json:"worked_hours"`
}

type ListDailyLogResponse struct {
	TotalCount int64      `json:"total_count"`
	Page       int        `json:"page"`
	Limit      int        `json:"limit"`
	TotalPages int        `json:"total_pages"`
	Showing    string     `json:"showing"`
	Logs       []DailyLog `json:"logs"`
}

// Filter narrows the records fed to the aggregates and the daily log.
type Filter struct {
	EmployeeID *string
	Department *string
	Exception  *string
	StartDate  *string
	EndDate    *string
	Year       *int

	// yes / no
	Late       *string
	EarlyLeave *string
	Absent     *string

	Page  int
	Limit int

	Start *time.Time `json:"-"`
	End   *time.Time `json:"-"`
}

func (f *Filter) Validate() error {
	var errs validator.ValidationErrors

	if f.Page < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "page",
			Message: "page must be a positive number",
		})
	}
	if f.Page > validator.MaxPage {
		errs = append(errs, validator.ValidationError{
			Field:   "page",
			Message: "page must not exceed 100000",
		})
	}
	if f.Page == 0 {
		f.Page = 1
	}

	if f.Limit < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "limit",
			Message: "limit must be a positive number",
		})
	}
	if f.Limit == 0 {
		f.Limit = 20
	}
	if f.Limit > 100 {
		errs = append(errs, validator.ValidationError{
			Field:   "limit",
			Message: "limit must not exceed 100",
		})
	}

	if f.StartDate != nil && *f.StartDate != "" {
		start, valid := validator.IsValidDate(*f.StartDate)
		if !valid {
			errs = append(errs, validator.ValidationError{
				Field:   "start_date",
				Message: "start_date must be in YYYY-MM-DD format",
			})
		} else {
			f.Start = &start
		}
	}
	if f.EndDate != nil && *f.EndDate != "" {
		end, valid := validator.IsValidDate(*f.EndDate)
		if !valid {
			errs = append(errs, validator.ValidationError{
				Field:   "end_date",
				Message: "end_date must be in YYYY-MM-DD format",
			})
		} else {
			f.End = &end
		}
	}
	if f.Start != nil && f.End != nil && f.End.Before(*f.Start) {
		errs = append(errs, validator.ValidationError{
			Field:   "end_date",
			Message: "end_date must be after or equal to start_date",
		})
	}

	if f.Year != nil && (*f.Year < 1900 || *f.Year > 9999) {
		errs = append(errs, validator.ValidationError{
			Field:   "year",
			Message: "year must be between 1900 and 9999",
		})
	}

	switches := []struct {
		field string
		value *string
	}{{"late", f.Late}, {"early_leave", f.EarlyLeave}, {"absent", f.Absent}}
	for _, sw := range switches {
		if sw.value == nil {
			continue
		}
		if !validator.IsYesNo(*sw.value) {
			errs = append(errs, validator.ValidationError{
				Field:   sw.field,
				Message: sw.field + " must be one of: yes, no",
			})
			continue
		}
		*sw.value = strings.ToLower(strings.TrimSpace(*sw.value))
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// TrendRequest selects the metric a trendline is fitted to. Empty Metric means no trendline.
type TrendRequest struct {
	Filter
	Metric string
}

var TrendMetrics = []string{"attendance", "punctuality", "compliance", "late", "early_leave", "overtime"}

func (r *TrendRequest) Validate() error {
	var errs validator.ValidationErrors
	if err := r.Filter.Validate(); err != nil {
		if verrs, ok := err.(validator.ValidationErrors); ok {
			errs = append(errs, verrs...)
		}
	}
	if r.Metric != "" && !validator.IsInSlice(r.Metric, TrendMetrics) {
		errs = append(errs, validator.ValidationError{
			Field:   "metric",
			Message: "metric must be one of: " + strings.Join(TrendMetrics, ", "),
		})
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

// RecordKey selects stored rows by employee number and date.
type RecordKey struct {
	EmployeeID string `json:"employee_id"`
	Date       string `json:"date"`
}

func (k *RecordKey) Validate() error {
	var errs validator.ValidationErrors

	k.EmployeeID = strings.TrimSpace(k.EmployeeID)
	k.Date = strings.TrimSpace(k.Date)
	if validator.IsEmpty(k.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id is required",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// UpdateRecordRequest replaces cells, keyed by column header, of one employee-day.
type UpdateRecordRequest struct {
	RecordKey
	Fields map[string]string `json:"fields"`
}

func (r *UpdateRecordRequest) Validate() error {
	var errs validator.ValidationErrors
	if err := r.RecordKey.Validate(); err != nil {
		if verrs, ok := err.(validator.ValidationErrors); ok {
			errs = append(errs, verrs...)
		}
	}

	if validator.IsEmpty(r.Date) {
		errs = append(errs, validator.ValidationError{
			Field:   "date",
			Message: "date is required",
		})
	}
	if len(r.Fields) == 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "fields",
			Message: "fields must not be empty",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type RecordChangeResponse struct {
	Matched  int `json:"matched"`
	RowCount int `json:"row_count"`
}

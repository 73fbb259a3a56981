package http

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/cmlabs-hris/hris-analytics-go/internal/domain/attendance"
	"github.com/cmlabs-hris/hris-analytics-go/internal/domain/dataset"
	"github.com/cmlabs-hris/hris-analytics-go/internal/handler/http/response"
	"github.com/cmlabs-hris/hris-analytics-go/internal/pkg/validator"
)

type AnalyticsHandler interface {
	// Stored dataset analytics
	Organization(w http.ResponseWriter, r *http.Request)
	Departments(w http.ResponseWriter, r *http.Request)
	Employees(w http.ResponseWriter, r *http.Request)
	Trends(w http.ResponseWriter, r *http.Request)
	Records(w http.ResponseWriter, r *http.Request)
	Exceptions(w http.ResponseWriter, r *http.Request)

	// Stateless: rows in, aggregates out
	Summarize(w http.ResponseWriter, r *http.Request)
}

type analyticsHandlerImpl struct {
	analyticsService attendance.AnalyticsService
}

func NewAnalyticsHandler(analyticsService attendance.AnalyticsService) AnalyticsHandler {
	return &analyticsHandlerImpl{
		analyticsService: analyticsService,
	}
}

// Organization handles GET /datasets/{id}/analytics/organization
func (h *analyticsHandlerImpl) Organization(w http.ResponseWriter, r *http.Request) {
	id, ok := datasetID(w, r)
	if !ok {
		return
	}
	filter, err := parseAttendanceFilter(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.analyticsService.Organization(r.Context(), id, filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// Departments handles GET /datasets/{id}/analytics/departments
func (h *analyticsHandlerImpl) Departments(w http.ResponseWriter, r *http.Request) {
	id, ok := datasetID(w, r)
	if !ok {
		return
	}
	filter, err := parseAttendanceFilter(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.analyticsService.Departments(r.Context(), id, filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// Employees handles GET /datasets/{id}/analytics/employees
func (h *analyticsHandlerImpl) Employees(w http.ResponseWriter, r *http.Request) {
	id, ok := datasetID(w, r)
	if !ok {
		return
	}
	filter, err := parseAttendanceFilter(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.analyticsService.Employees(r.Context(), id, filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// Trends handles GET /datasets/{id}/analytics/trends?metric=
func (h *analyticsHandlerImpl) Trends(w http.ResponseWriter, r *http.Request) {
	id, ok := datasetID(w, r)
	if !ok {
		return
	}
	filter, err := parseAttendanceFilter(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	req := attendance.TrendRequest{
		Filter: filter,
		Metric: r.URL.Query().Get("metric"),
	}

	result, err := h.analyticsService.MonthlyTrends(r.Context(), id, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// Records handles GET /datasets/{id}/analytics/records
func (h *analyticsHandlerImpl) Records(w http.ResponseWriter, r *http.Request) {
	id, ok := datasetID(w, r)
	if !ok {
		return
	}
	filter, err := parseAttendanceFilter(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.analyticsService.DailyLogs(r.Context(), id, filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMeta(w, result.Logs, &response.Meta{
		Page:       result.Page,
		Limit:      result.Limit,
		TotalItems: result.TotalCount,
		TotalPages: result.TotalPages,
		Showing:    result.Showing,
	})
}

// Exceptions handles GET /datasets/{id}/analytics/exceptions
func (h *analyticsHandlerImpl) Exceptions(w http.ResponseWriter, r *http.Request) {
	id, ok := datasetID(w, r)
	if !ok {
		return
	}

	result, err := h.analyticsService.ExceptionLabels(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// Summarize handles POST /analytics/attendance with a JSON array of rows.
func (h *analyticsHandlerImpl) Summarize(w http.ResponseWriter, r *http.Request) {
	rows, ok := decodeRows(w, r)
	if !ok {
		return
	}
	filter, err := parseAttendanceFilter(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.analyticsService.Summarize(r.Context(), rows, filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// parseAttendanceFilter reads the query string; Validate runs in the service.
func parseAttendanceFilter(r *http.Request) (attendance.Filter, error) {
	q := r.URL.Query()
	filter := attendance.Filter{}

	optional := func(key string) *string {
		if v := q.Get(key); v != "" {
			return &v
		}
		return nil
	}
	filter.EmployeeID = optional("employee_id")
	filter.Department = optional("department")
	filter.Exception = optional("exception")
	filter.StartDate = optional("start_date")
	filter.EndDate = optional("end_date")
	filter.Late = optional("late")
	filter.EarlyLeave = optional("early_leave")
	filter.Absent = optional("absent")

	if y := q.Get("year"); y != "" {
		year, err := strconv.Atoi(y)
		if err != nil {
			return filter, validator.ValidationErrors{{Field: "year", Message: "year must be a number"}}
		}
		filter.Year = &year
	}

	// Pagination
	if p := q.Get("page"); p != "" {
		if pageNum, err := strconv.Atoi(p); err == nil && pageNum > 0 {
			filter.Page = pageNum
		}
	}
	if l := q.Get("limit"); l != "" {
		if limitNum, err := strconv.Atoi(l); err == nil && limitNum > 0 {
			filter.Limit = limitNum
		}
	}

	return filter, nil
}

// decodeRows reads a JSON array of row objects. Numbers stay json.Number so
// spreadsheet serials and clock fractions keep their precision.
func decodeRows(w http.ResponseWriter, r *http.Request) ([]map[string]any, bool) {
	r.Body = http.MaxBytesReader(w, r.Body, dataset.MaxUploadSize)

	decoder := json.NewDecoder(r.Body)
	decoder.UseNumber()

	var rows []map[string]any
	if err := decoder.Decode(&rows); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return nil, false
	}
	return rows, true
}

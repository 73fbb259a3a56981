package attendance

import (
	"context"
	"fmt"
	"math"

	"github.com/cmlabs-hris/hris-analytics-go/internal/domain/attendance"
	"github.com/cmlabs-hris/hris-analytics-go/internal/domain/dataset"
)

type AnalyticsServiceImpl struct {
	datasetService dataset.DatasetService
	normalizer     *Normalizer
	engine         *Engine
}

func NewAnalyticsService(policy attendance.Policy, datasetService dataset.DatasetService) attendance.AnalyticsService {
	return &AnalyticsServiceImpl{
		datasetService: datasetService,
		normalizer:     NewNormalizer(policy),
		engine:         NewEngine(policy),
	}
}

// Summarize implements attendance.AnalyticsService.
func (s *AnalyticsServiceImpl) Summarize(ctx context.Context, rows []map[string]any, filter attendance.Filter) (attendance.Summary, error) {
	if err := filter.Validate(); err != nil {
		return attendance.Summary{}, err
	}
	if len(rows) > dataset.MaxRows {
		return attendance.Summary{}, dataset.ErrTooManyRows
	}

	records := FilterRecords(s.normalizer.NormalizeAll(rows), filter)
	return attendance.Summary{
		Organization: s.engine.Organization(records),
		Departments:  s.engine.Departments(records),
		Employees:    s.engine.Employees(records),
	}, nil
}

// Organization implements attendance.AnalyticsService.
func (s *AnalyticsServiceImpl) Organization(ctx context.Context, datasetID string, filter attendance.Filter) (*attendance.OrganizationStats, error) {
	records, err := s.load(ctx, datasetID, &filter)
	if err != nil {
		return nil, err
	}
	return s.engine.Organization(records), nil
}

// Departments implements attendance.AnalyticsService.
func (s *AnalyticsServiceImpl) Departments(ctx context.Context, datasetID string, filter attendance.Filter) ([]attendance.DepartmentStats, error) {
	records, err := s.load(ctx, datasetID, &filter)
	if err != nil {
		return nil, err
	}
	return s.engine.Departments(records), nil
}

// Employees implements attendance.AnalyticsService.
func (s *AnalyticsServiceImpl) Employees(ctx context.Context, datasetID string, filter attendance.Filter) ([]attendance.EmployeeStats, error) {
	records, err := s.load(ctx, datasetID, &filter)
	if err != nil {
		return nil, err
	}
	return s.engine.Employees(records), nil
}

// MonthlyTrends implements attendance.AnalyticsService.
func (s *AnalyticsServiceImpl) MonthlyTrends(ctx context.Context, datasetID string, req attendance.TrendRequest) ([]attendance.MonthlyTrend, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	records, err := s.load(ctx, datasetID, &req.Filter)
	if err != nil {
		return nil, err
	}
	return s.engine.MonthlyTrends(records, req.Metric), nil
}

// DailyLogs implements attendance.AnalyticsService.
func (s *AnalyticsServiceImpl) DailyLogs(ctx context.Context, datasetID string, filter attendance.Filter) (attendance.ListDailyLogResponse, error) {
	records, err := s.load(ctx, datasetID, &filter)
	if err != nil {
		return attendance.ListDailyLogResponse{}, err
	}

	logs := make([]attendance.DailyLog, 0, len(records))
	for _, r := range records {
		c := s.engine.Classify(r)
		if !matchClassification(c, filter) {
			continue
		}
		logs = append(logs, toDailyLog(r, c))
	}

	total := len(logs)
	start := total
	if filter.Page-1 <= total/filter.Limit {
		start = min((filter.Page-1)*filter.Limit, total)
	}
	end := min(start+filter.Limit, total)

	totalPages := int(math.Ceil(float64(total) / float64(filter.Limit)))
	showing := fmt.Sprintf("%d-%d of %d", start+1, end, total)
	if start == end {
		showing = fmt.Sprintf("0 of %d", total)
	}

	return attendance.ListDailyLogResponse{
		TotalCount: int64(total),
		Page:       filter.Page,
		Limit:      filter.Limit,
		TotalPages: totalPages,
		Showing:    showing,
		Logs:       logs[start:end],
	}, nil
}

// ExceptionLabels implements attendance.AnalyticsService.
func (s *AnalyticsServiceImpl) ExceptionLabels(ctx context.Context, datasetID string) ([]string, error) {
	rows, err := s.datasetService.Rows(ctx, datasetID, dataset.KindAttendance)
	if err != nil {
		return nil, err
	}
	return ExceptionLabels(s.normalizer.NormalizeAll(toMaps(rows))), nil
}

// load validates the filter, then reads, normalizes and filters a stored dataset.
func (s *AnalyticsServiceImpl) load(ctx context.Context, datasetID string, filter *attendance.Filter) ([]attendance.Record, error) {
	if err := filter.Validate(); err != nil {
		return nil, err
	}

	rows, err := s.datasetService.Rows(ctx, datasetID, dataset.KindAttendance)
	if err != nil {
		return nil, err
	}

	return FilterRecords(s.normalizer.NormalizeAll(toMaps(rows)), *filter), nil
}

func toMaps(rows []dataset.Row) []map[string]any {
	out := make([]map[string]any, len(rows))
	for i, r := range rows {
		out[i] = r
	}
	return out
}

package attendance

import (
	"context"
)

// AnalyticsService serves attendance aggregates over stored datasets.
type AnalyticsService interface {
	// Summarize computes all three aggregates from raw rows (no persistence)
	Summarize(ctx context.Context, rows []map[string]any, filter Filter) (Summary, error)

	// Organization returns nil stats when the filtered dataset is empty
	Organization(ctx context.Context, datasetID string, filter Filter) (*OrganizationStats, error)

	Departments(ctx context.Context, datasetID string, filter Filter) ([]DepartmentStats, error)

	Employees(ctx context.Context, datasetID string, filter Filter) ([]EmployeeStats, error)

	MonthlyTrends(ctx context.Context, datasetID string, req TrendRequest) ([]MonthlyTrend, error)

	// DailyLogs lists classified records, paginated
	DailyLogs(ctx context.Context, datasetID string, filter Filter) (ListDailyLogResponse, error)

	// ExceptionLabels returns the distinct exception labels of a dataset
	ExceptionLabels(ctx context.Context, datasetID string) ([]string, error)
}

// RecordService edits the stored rows of an attendance dataset. Rows are keyed by
// employee number and date.
type RecordService interface {
	// UpdateRecord overwrites cells of every row matching the key
	UpdateRecord(ctx context.Context, datasetID string, req UpdateRecordRequest) (RecordChangeResponse, error)

	// DeleteRecords removes the matching rows; an empty date removes all rows of the employee
	DeleteRecords(ctx context.Context, datasetID string, key RecordKey) (RecordChangeResponse, error)
}

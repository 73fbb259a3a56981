package recruitment

import "context"

type RecruitmentService interface {
	// Analyze computes KPIs for a stored recruitment dataset; nil when it has no rows
	Analyze(ctx context.Context, datasetID string) (*Analytics, error)

	// Summarize computes KPIs from raw rows without persistence
	Summarize(ctx context.Context, rows []map[string]any) (*Analytics, error)
}

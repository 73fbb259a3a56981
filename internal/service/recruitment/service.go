package recruitment

import (
	"context"

	"github.com/cmlabs-hris/hris-analytics-go/internal/domain/dataset"
	"github.com/cmlabs-hris/hris-analytics-go/internal/domain/recruitment"
)

type RecruitmentServiceImpl struct {
	datasetService dataset.DatasetService
	precision      int32
}

func NewRecruitmentService(precision int32, datasetService dataset.DatasetService) recruitment.RecruitmentService {
	return &RecruitmentServiceImpl{
		datasetService: datasetService,
		precision:      precision,
	}
}

// Analyze implements recruitment.RecruitmentService.
func (s *RecruitmentServiceImpl) Analyze(ctx context.Context, datasetID string) (*recruitment.Analytics, error) {
	rows, err := s.datasetService.Rows(ctx, datasetID, dataset.KindRecruitment)
	if err != nil {
		return nil, err
	}

	records := make([]recruitment.Record, 0, len(rows))
	for _, row := range rows {
		records = append(records, Normalize(row))
	}
	return Analyze(records, s.precision), nil
}

// Summarize implements recruitment.RecruitmentService.
func (s *RecruitmentServiceImpl) Summarize(ctx context.Context, rows []map[string]any) (*recruitment.Analytics, error) {
	if len(rows) > dataset.MaxRows {
		return nil, dataset.ErrTooManyRows
	}
	return Analyze(NormalizeAll(rows), s.precision), nil
}

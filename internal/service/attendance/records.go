package attendance

import (
	"context"
	"log/slog"
	"slices"
	"sort"
	"time"

	"github.com/cmlabs-hris/hris-analytics-go/internal/domain/attendance"
	"github.com/cmlabs-hris/hris-analytics-go/internal/domain/dataset"
	"github.com/cmlabs-hris/hris-analytics-go/internal/pkg/utils"
	"github.com/cmlabs-hris/hris-analytics-go/internal/pkg/validator"
)

type RecordServiceImpl struct {
	datasetService dataset.DatasetService
	normalizer     *Normalizer
}

func NewRecordService(policy attendance.Policy, datasetService dataset.DatasetService) attendance.RecordService {
	return &RecordServiceImpl{
		datasetService: datasetService,
		normalizer:     NewNormalizer(policy),
	}
}

// UpdateRecord implements attendance.RecordService.
func (s *RecordServiceImpl) UpdateRecord(ctx context.Context, datasetID string, req attendance.UpdateRecordRequest) (attendance.RecordChangeResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.RecordChangeResponse{}, err
	}

	ds, err := s.datasetService.Get(ctx, datasetID)
	if err != nil {
		return attendance.RecordChangeResponse{}, err
	}

	columns := make([]string, 0, len(req.Fields))
	for col := range req.Fields {
		columns = append(columns, col)
	}
	sort.Strings(columns)

	var errs validator.ValidationErrors
	for _, col := range columns {
		if !slices.Contains(ds.Columns, col) {
			errs = append(errs, validator.ValidationError{
				Field:   "fields." + col,
				Message: "column does not exist in the dataset",
			})
		}
	}
	if len(errs) > 0 {
		return attendance.RecordChangeResponse{}, errs
	}

	rows, err := s.datasetService.Rows(ctx, datasetID, dataset.KindAttendance)
	if err != nil {
		return attendance.RecordChangeResponse{}, err
	}

	match := s.matcher(req.RecordKey)
	matched := 0
	for _, row := range rows {
		if !match(row) {
			continue
		}
		for col, value := range req.Fields {
			row[col] = value
		}
		matched++
	}
	if matched == 0 {
		return attendance.RecordChangeResponse{}, attendance.ErrRecordNotFound
	}

	if err := s.datasetService.ReplaceRows(ctx, datasetID, dataset.KindAttendance, rows); err != nil {
		return attendance.RecordChangeResponse{}, err
	}

	slog.Info("attendance record updated", "dataset_id", datasetID, "employee_id", req.EmployeeID, "date", req.Date, "matched", matched)
	return attendance.RecordChangeResponse{Matched: matched, RowCount: len(rows)}, nil
}

// DeleteRecords implements attendance.RecordService.
func (s *RecordServiceImpl) DeleteRecords(ctx context.Context, datasetID string, key attendance.RecordKey) (attendance.RecordChangeResponse, error) {
	if err := key.Validate(); err != nil {
		return attendance.RecordChangeResponse{}, err
	}

	rows, err := s.datasetService.Rows(ctx, datasetID, dataset.KindAttendance)
	if err != nil {
		return attendance.RecordChangeResponse{}, err
	}

	match := s.matcher(key)
	kept := make([]dataset.Row, 0, len(rows))
	for _, row := range rows {
		if !match(row) {
			kept = append(kept, row)
		}
	}

	matched := len(rows) - len(kept)
	if matched == 0 {
		return attendance.RecordChangeResponse{}, attendance.ErrRecordNotFound
	}

	if err := s.datasetService.ReplaceRows(ctx, datasetID, dataset.KindAttendance, kept); err != nil {
		return attendance.RecordChangeResponse{}, err
	}

	slog.Info("attendance records deleted", "dataset_id", datasetID, "employee_id", key.EmployeeID, "date", key.Date, "deleted", matched)
	return attendance.RecordChangeResponse{Matched: matched, RowCount: len(kept)}, nil
}

// matcher compares dates as calendar days when both sides parse, else as raw text.
func (s *RecordServiceImpl) matcher(key attendance.RecordKey) func(dataset.Row) bool {
	var keyDate *time.Time
	if d, ok := utils.ParseCalendarDate(key.Date); ok {
		keyDate = &d
	}

	return func(row dataset.Row) bool {
		r := s.normalizer.Normalize(row)
		if r.EmployeeID != key.EmployeeID {
			return false
		}
		if key.Date == "" {
			return true
		}
		if keyDate != nil && r.Date != nil {
			return r.Date.Equal(*keyDate)
		}
		return r.DateText == key.Date
	}
}

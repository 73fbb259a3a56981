package dataset

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"
	"path/filepath"
	"time"

	"github.com/cmlabs-hris/hris-analytics-go/internal/domain/dataset"
	"github.com/cmlabs-hris/hris-analytics-go/internal/pkg/jwt"
	"github.com/cmlabs-hris/hris-analytics-go/internal/pkg/spreadsheet"
	"github.com/cmlabs-hris/hris-analytics-go/internal/pkg/storage"
	"github.com/cmlabs-hris/hris-analytics-go/internal/service/file"
	"github.com/google/uuid"
)

type DatasetServiceImpl struct {
	dataset.DatasetRepository
	fileService file.FileService
	maxRows     int
}

func NewDatasetService(repo dataset.DatasetRepository, fileService file.FileService) dataset.DatasetService {
	return &DatasetServiceImpl{
		DatasetRepository: repo,
		fileService:       fileService,
		maxRows:           dataset.MaxRows,
	}
}

// Upload implements dataset.DatasetService.
func (s *DatasetServiceImpl) Upload(ctx context.Context, req dataset.UploadRequest) (dataset.DatasetResponse, error) {
	if err := req.Validate(); err != nil {
		return dataset.DatasetResponse{}, err
	}

	companyID, err := companyIDFromContext(ctx)
	if err != nil {
		return dataset.DatasetResponse{}, err
	}

	// The body is read twice: once to parse, once to archive.
	content, err := io.ReadAll(req.File)
	if err != nil {
		return dataset.DatasetResponse{}, fmt.Errorf("failed to read uploaded file: %w", err)
	}

	sheet, err := spreadsheet.Read(bytes.NewReader(content), req.FileHeader.Filename)
	if err != nil {
		if errors.Is(err, spreadsheet.ErrEmptySheet) {
			return dataset.DatasetResponse{}, dataset.ErrEmptyDataset
		}
		return dataset.DatasetResponse{}, fmt.Errorf("%w: %v", dataset.ErrUnreadableFile, err)
	}
	if len(sheet.Rows) == 0 {
		return dataset.DatasetResponse{}, dataset.ErrEmptyDataset
	}
	if len(sheet.Rows) > s.maxRows {
		return dataset.DatasetResponse{}, dataset.ErrTooManyRows
	}

	id, err := uuid.NewV7()
	if err != nil {
		return dataset.DatasetResponse{}, fmt.Errorf("failed to generate dataset id: %w", err)
	}

	sourcePath, err := s.fileService.ArchiveSpreadsheet(ctx, companyID, bytes.NewReader(content), req.FileHeader.Filename)
	if err != nil {
		return dataset.DatasetResponse{}, err
	}

	rows := make([]dataset.Row, len(sheet.Rows))
	for i, r := range sheet.Rows {
		row := make(dataset.Row, len(r))
		for k, v := range r {
			row[k] = v
		}
		rows[i] = row
	}

	ds := dataset.Dataset{
		ID:         id.String(),
		CompanyID:  companyID,
		Kind:       dataset.Kind(req.Kind),
		Name:       req.Name,
		SheetName:  sheet.Name,
		SourcePath: &sourcePath,
		RowCount:   len(rows),
		Columns:    sheet.Header,
		CreatedAt:  time.Now().UTC(),
	}

	if err := s.DatasetRepository.Create(ctx, ds, rows); err != nil {
		if delErr := s.fileService.DeleteFile(ctx, sourcePath); delErr != nil {
			slog.Warn("failed to remove archived file after store error", "path", sourcePath, "error", delErr)
		}
		return dataset.DatasetResponse{}, fmt.Errorf("failed to store dataset: %w", err)
	}

	slog.Info("dataset uploaded", "dataset_id", ds.ID, "company_id", companyID, "kind", ds.Kind, "rows", ds.RowCount)
	return s.toResponse(ctx, ds), nil
}

// List implements dataset.DatasetService.
func (s *DatasetServiceImpl) List(ctx context.Context, filter dataset.DatasetFilter) (dataset.ListDatasetResponse, error) {
	if err := filter.Validate(); err != nil {
		return dataset.ListDatasetResponse{}, err
	}

	companyID, err := companyIDFromContext(ctx)
	if err != nil {
		return dataset.ListDatasetResponse{}, err
	}

	datasets, total, err := s.DatasetRepository.List(ctx, filter, companyID)
	if err != nil {
		return dataset.ListDatasetResponse{}, fmt.Errorf("failed to list datasets: %w", err)
	}

	responses := make([]dataset.DatasetResponse, 0, len(datasets))
	for _, ds := range datasets {
		responses = append(responses, s.toResponse(ctx, ds))
	}

	totalPages := int(math.Ceil(float64(total) / float64(filter.Limit)))
	offset := (filter.Page - 1) * filter.Limit
	showing := fmt.Sprintf("%d-%d of %d", offset+1, min(offset+filter.Limit, int(total)), total)
	if int64(offset) >= total {
		showing = fmt.Sprintf("0 of %d", total)
	}

	return dataset.ListDatasetResponse{
		TotalCount: total,
		Page:       filter.Page,
		Limit:      filter.Limit,
		TotalPages: totalPages,
		Showing:    showing,
		Datasets:   responses,
	}, nil
}

// Get implements dataset.DatasetService.
func (s *DatasetServiceImpl) Get(ctx context.Context, id string) (dataset.DatasetResponse, error) {
	companyID, err := companyIDFromContext(ctx)
	if err != nil {
		return dataset.DatasetResponse{}, err
	}

	ds, err := s.DatasetRepository.GetByID(ctx, id, companyID)
	if err != nil {
		return dataset.DatasetResponse{}, err
	}
	return s.toResponse(ctx, ds), nil
}

// Rows implements dataset.DatasetService.
func (s *DatasetServiceImpl) Rows(ctx context.Context, id string, kind dataset.Kind) ([]dataset.Row, error) {
	companyID, err := companyIDFromContext(ctx)
	if err != nil {
		return nil, err
	}

	ds, err := s.DatasetRepository.GetByID(ctx, id, companyID)
	if err != nil {
		return nil, err
	}
	if ds.Kind != kind {
		return nil, dataset.ErrKindMismatch
	}

	rows, err := s.DatasetRepository.Rows(ctx, id, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to load dataset rows: %w", err)
	}
	return rows, nil
}

// Source implements dataset.DatasetService.
func (s *DatasetServiceImpl) Source(ctx context.Context, id string) (dataset.SourceFile, error) {
	companyID, err := companyIDFromContext(ctx)
	if err != nil {
		return dataset.SourceFile{}, err
	}

	ds, err := s.DatasetRepository.GetByID(ctx, id, companyID)
	if err != nil {
		return dataset.SourceFile{}, err
	}
	if ds.SourcePath == nil {
		return dataset.SourceFile{}, dataset.ErrSourceNotFound
	}

	body, contentType, err := s.fileService.OpenFile(ctx, *ds.SourcePath)
	if err != nil {
		if errors.Is(err, storage.ErrFileNotFound) {
			return dataset.SourceFile{}, dataset.ErrSourceNotFound
		}
		return dataset.SourceFile{}, fmt.Errorf("failed to open dataset source: %w", err)
	}

	return dataset.SourceFile{
		Filename:    ds.Name + filepath.Ext(*ds.SourcePath),
		ContentType: contentType,
		Body:        body,
	}, nil
}

// ReplaceRows implements dataset.DatasetService.
func (s *DatasetServiceImpl) ReplaceRows(ctx context.Context, id string, kind dataset.Kind, rows []dataset.Row) error {
	companyID, err := companyIDFromContext(ctx)
	if err != nil {
		return err
	}

	ds, err := s.DatasetRepository.GetByID(ctx, id, companyID)
	if err != nil {
		return err
	}
	if ds.Kind != kind {
		return dataset.ErrKindMismatch
	}
	if len(rows) > s.maxRows {
		return dataset.ErrTooManyRows
	}

	if err := s.DatasetRepository.ReplaceRows(ctx, id, companyID, rows); err != nil {
		return fmt.Errorf("failed to replace dataset rows: %w", err)
	}
	return nil
}

// Delete implements dataset.DatasetService.
func (s *DatasetServiceImpl) Delete(ctx context.Context, id string) error {
	companyID, err := companyIDFromContext(ctx)
	if err != nil {
		return err
	}

	ds, err := s.DatasetRepository.GetByID(ctx, id, companyID)
	if err != nil {
		return err
	}

	if err := s.DatasetRepository.Delete(ctx, id, companyID); err != nil {
		return err
	}
	s.removeSource(ctx, ds)
	return nil
}

// PurgeOlderThan implements dataset.DatasetService.
func (s *DatasetServiceImpl) PurgeOlderThan(ctx context.Context, cutoff time.Time) (dataset.PurgeResult, error) {
	deleted, err := s.DatasetRepository.DeleteCreatedBefore(ctx, cutoff)
	if err != nil {
		return dataset.PurgeResult{}, fmt.Errorf("failed to purge datasets: %w", err)
	}

	for _, ds := range deleted {
		s.removeSource(ctx, ds)
	}
	return dataset.PurgeResult{Cutoff: cutoff, Deleted: len(deleted)}, nil
}

// removeSource drops the archived spreadsheet; failures only leave an orphan file.
func (s *DatasetServiceImpl) removeSource(ctx context.Context, ds dataset.Dataset) {
	if ds.SourcePath == nil {
		return
	}
	if err := s.fileService.DeleteFile(ctx, *ds.SourcePath); err != nil {
		slog.Warn("failed to remove dataset source file", "dataset_id", ds.ID, "path", *ds.SourcePath, "error", err)
	}
}

func (s *DatasetServiceImpl) toResponse(ctx context.Context, ds dataset.Dataset) dataset.DatasetResponse {
	resp := dataset.DatasetResponse{
		ID:        ds.ID,
		Kind:      string(ds.Kind),
		Name:      ds.Name,
		SheetName: ds.SheetName,
		RowCount:  ds.RowCount,
		Columns:   ds.Columns,
		CreatedAt: ds.CreatedAt.Format(time.RFC3339),
	}
	if resp.Columns == nil {
		resp.Columns = []string{}
	}
	if ds.SourcePath != nil {
		if url, err := s.fileService.GetFileURL(ctx, *ds.SourcePath, time.Hour); err == nil {
			resp.SourceURL = &url
		}
	}
	return resp
}

func companyIDFromContext(ctx context.Context) (string, error) {
	companyID, err := jwt.CompanyIDFromContext(ctx)
	if err != nil {
		return "", fmt.Errorf("%w: %v", dataset.ErrCompanyRequired, err)
	}
	return companyID, nil
}

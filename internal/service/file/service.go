package file

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/cmlabs-hris/hris-analytics-go/internal/pkg/storage"
	"github.com/google/uuid"
)

var spreadsheetContentTypes = map[string]string{
	".xlsx": "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
	".xlsm": "application/vnd.ms-excel.sheet.macroEnabled.12",
	".csv":  "text/csv",
}

type FileService interface {
	// ArchiveSpreadsheet stores the uploaded source file of a dataset and returns its path
	ArchiveSpreadsheet(ctx context.Context, companyID string, file io.Reader, filename string) (string, error)

	// OpenFile streams a stored file and reports its content type
	OpenFile(ctx context.Context, path string) (io.ReadCloser, string, error)

	// Generic operations
	DeleteFile(ctx context.Context, path string) error
	GetFileURL(ctx context.Context, path string, expiry time.Duration) (string, error)
}

type fileServiceImpl struct {
	storage storage.FileStorage
}

func NewFileService(storage storage.FileStorage) FileService {
	return &fileServiceImpl{
		storage: storage,
	}
}

// ArchiveSpreadsheet uploads a dataset source file under datasets/<company>/
func (s *fileServiceImpl) ArchiveSpreadsheet(ctx context.Context, companyID string, file io.Reader, filename string) (string, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	contentType, ok := spreadsheetContentTypes[ext]
	if !ok {
		return "", fmt.Errorf("invalid file type: only xlsx, xlsm, csv allowed")
	}

	// Generate unique filename
	uniqueID := uuid.New().String()
	newFilename := fmt.Sprintf("%s-%s%s", time.Now().Format("20060102"), uniqueID, ext)
	path := filepath.Join("datasets", companyID, newFilename)

	uploadedPath, err := s.storage.Upload(ctx, file, path, contentType)
	if err != nil {
		return "", fmt.Errorf("failed to archive spreadsheet: %w", err)
	}

	return uploadedPath, nil
}

func (s *fileServiceImpl) OpenFile(ctx context.Context, path string) (io.ReadCloser, string, error) {
	contentType, ok := spreadsheetContentTypes[strings.ToLower(filepath.Ext(path))]
	if !ok {
		contentType = "application/octet-stream"
	}

	body, err := s.storage.Download(ctx, path)
	if err != nil {
		return nil, "", err
	}
	return body, contentType, nil
}

// DeleteFile deletes file from storage
func (s *fileServiceImpl) DeleteFile(ctx context.Context, path string) error {
	return s.storage.Delete(ctx, path)
}

// GetFileURL generates URL to access file
func (s *fileServiceImpl) GetFileURL(ctx context.Context, path string, expiry time.Duration) (string, error) {
	return s.storage.GetURL(ctx, path, expiry)
}

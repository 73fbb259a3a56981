package dataset

import (
	"io"
	"mime/multipart"
	"path/filepath"
	"strings"
	"time"

	"github.com/cmlabs-hris/hris-analytics-go/internal/pkg/validator"
)

// MaxRows caps the data rows of one dataset.
const MaxRows = 100000

// MaxUploadSize caps the multipart file (20MB).
const MaxUploadSize = 20 << 20

var allowedExts = []string{".xlsx", ".xlsm", ".csv"}

type UploadRequest struct {
	Kind       string                `json:"kind"`
	Name       string                `json:"name"`
	File       multipart.File        `json:"-"`
	FileHeader *multipart.FileHeader `json:"-"`
}

func (r *UploadRequest) Validate() error {
	var errs validator.ValidationErrors

	if !Kind(r.Kind).IsValid() {
		errs = append(errs, validator.ValidationError{
			Field:   "kind",
			Message: "kind must be one of: attendance, recruitment",
		})
	}

	if r.FileHeader == nil || r.File == nil {
		errs = append(errs, validator.ValidationError{
			Field:   "file",
			Message: "file is required",
		})
		return errs
	}

	if !validator.IsAllowedExtension(r.FileHeader.Filename, allowedExts) {
		errs = append(errs, validator.ValidationError{
			Field:   "file",
			Message: "invalid file type: only xlsx, xlsm, csv allowed",
		})
	}
	if r.FileHeader.Size > MaxUploadSize {
		errs = append(errs, validator.ValidationError{
			Field:   "file",
			Message: "file size must not exceed 20MB",
		})
	}

	if len(r.Name) > 255 {
		errs = append(errs, validator.ValidationError{
			Field:   "name",
			Message: "name must not exceed 255 characters",
		})
	}
	if validator.IsEmpty(r.Name) {
		r.Name = strings.TrimSuffix(r.FileHeader.Filename, filepath.Ext(r.FileHeader.Filename))
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type DatasetFilter struct {
	Kind   *string
	Search *string
	Page   int
	Limit  int
}

func (f *DatasetFilter) Validate() error {
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

	if f.Kind != nil && *f.Kind != "" && !Kind(*f.Kind).IsValid() {
		errs = append(errs, validator.ValidationError{
			Field:   "kind",
			Message: "kind must be one of: attendance, recruitment",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type DatasetResponse struct {
	ID        string   `json:"id"`
	Kind      string   `json:"kind"`
	Name      string   `json:"name"`
	SheetName string   `json:"sheet_name"`
	SourceURL *string  `json:"source_url,omitempty"`
	RowCount  int      `json:"row_count"`
	Columns   []string `json:"columns"`
	CreatedAt string   `json:"created_at"`
}

type ListDatasetResponse struct {
	TotalCount int64             `json:"total_count"`
	Page       int               `json:"page"`
	Limit      int               `json:"limit"`
	TotalPages int               `json:"total_pages"`
	Showing    string            `json:"showing"`
	Datasets   []DatasetResponse `json:"datasets"`
}

// SourceFile is the archived upload; the caller closes Body.
type SourceFile struct {
	Filename    string
	ContentType string
	Body        io.ReadCloser
}

// PurgeResult reports a retention sweep.
type PurgeResult struct {
	Cutoff  time.Time
	Deleted int
}

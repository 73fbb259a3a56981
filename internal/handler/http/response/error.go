package response

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/cmlabs-hris/hris-analytics-go/internal/domain/attendance"
	"github.com/cmlabs-hris/hris-analytics-go/internal/domain/dataset"
	"github.com/cmlabs-hris/hris-analytics-go/internal/pkg/jwt"
	"github.com/cmlabs-hris/hris-analytics-go/internal/pkg/storage"
	"github.com/cmlabs-hris/hris-analytics-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Auth errors
	case errors.Is(err, jwt.ErrInvalidToken):
		Unauthorized(w, "Invalid or expired token")
	case errors.Is(err, jwt.ErrMissingCompany), errors.Is(err, dataset.ErrCompanyRequired):
		Forbidden(w, "Company access required")

	// Dataset domain errors
	case errors.Is(err, dataset.ErrDatasetNotFound):
		NotFound(w, "Dataset not found")
	case errors.Is(err, dataset.ErrKindMismatch):
		BadRequest(w, "Dataset kind does not match the requested analytics", nil)
	case errors.Is(err, dataset.ErrTooManyRows):
		PayloadTooLarge(w, "Dataset exceeds the maximum number of rows")
	case errors.Is(err, dataset.ErrEmptyDataset):
		BadRequest(w, "Uploaded sheet has no data rows", nil)
	case errors.Is(err, dataset.ErrSourceNotFound):
		NotFound(w, "Dataset source file not found")
	case errors.Is(err, dataset.ErrUnreadableFile):
		BadRequest(w, "Uploaded file could not be read as a spreadsheet", nil)

	// Attendance record errors
	case errors.Is(err, attendance.ErrRecordNotFound):
		NotFound(w, "Attendance record not found")

	// Storage errors
	case errors.Is(err, storage.ErrFileNotFound):
		NotFound(w, "File not found")

	// Default
	default:
		slog.Error("unhandled error", "error", err)
		InternalServerError(w, "An unexpected error occurred")
	}
}

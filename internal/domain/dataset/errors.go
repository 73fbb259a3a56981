package dataset

import "errors"

// Dataset domain errors
var (
	ErrDatasetNotFound = errors.New("dataset not found")
	ErrTooManyRows     = errors.New("dataset exceeds the maximum number of rows")
	ErrEmptyDataset    = errors.New("uploaded sheet has no data rows")
	ErrUnreadableFile  = errors.New("uploaded file could not be read as a spreadsheet")
	ErrCompanyRequired = errors.New("company_id claim is missing or invalid")
	ErrKindMismatch    = errors.New("dataset kind does not match the requested analytics")
	ErrSourceNotFound  = errors.New("dataset source file not found")
)

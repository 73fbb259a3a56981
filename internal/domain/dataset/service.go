package dataset

import (
	"context"
	"time"
)

type DatasetService interface {
	// Upload parses the spreadsheet, archives the source file and stores the rows
	Upload(ctx context.Context, req UploadRequest) (DatasetResponse, error)

	List(ctx context.Context, filter DatasetFilter) (ListDatasetResponse, error)

	Get(ctx context.Context, id string) (DatasetResponse, error)

	// Rows loads the raw rows of a dataset of the given kind
	Rows(ctx context.Context, id string, kind Kind) ([]Row, error)

	// Source opens the archived spreadsheet the dataset was parsed from
	Source(ctx context.Context, id string) (SourceFile, error)

	// ReplaceRows overwrites the rows of a dataset of the given kind
	ReplaceRows(ctx context.Context, id string, kind Kind, rows []Row) error

	Delete(ctx context.Context, id string) error

	// PurgeOlderThan is the retention sweep; it is not company scoped
	PurgeOlderThan(ctx context.Context, cutoff time.Time) (PurgeResult, error)
}

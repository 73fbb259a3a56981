package dataset

import (
	"context"
	"time"
)

type DatasetRepository interface {
	// Create stores the dataset and its rows atomically
	Create(ctx context.Context, ds Dataset, rows []Row) error

	GetByID(ctx context.Context, id string, companyID string) (Dataset, error)

	List(ctx context.Context, filter DatasetFilter, companyID string) ([]Dataset, int64, error)

	// Rows returns the raw rows in upload order
	Rows(ctx context.Context, id string, companyID string) ([]Row, error)

	// ReplaceRows swaps the stored rows of a dataset and updates its row count
	ReplaceRows(ctx context.Context, id string, companyID string, rows []Row) error

	Delete(ctx context.Context, id string, companyID string) error

	// DeleteCreatedBefore removes every dataset older than cutoff across companies and returns them
	DeleteCreatedBefore(ctx context.Context, cutoff time.Time) ([]Dataset, error)
}

package cron

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/cmlabs-hris/hris-analytics-go/internal/domain/dataset"
)

// PurgeInterval is how often expired datasets are looked for.
const PurgeInterval = 1 * time.Hour

// DatasetJobs removes uploaded datasets once they outlive the retention window.
type DatasetJobs struct {
	datasetService dataset.DatasetService
	retention      time.Duration
	now            func() time.Time
}

func NewDatasetJobs(datasetService dataset.DatasetService, retention time.Duration) *DatasetJobs {
	return &DatasetJobs{
		datasetService: datasetService,
		retention:      retention,
		now:            time.Now,
	}
}

// RegisterJobs registers the purge job; a zero retention keeps datasets forever.
func (j *DatasetJobs) RegisterJobs(scheduler *Scheduler) {
	if j.retention <= 0 {
		slog.Info("Cron: dataset retention disabled")
		return
	}
	scheduler.AddJob("purge_expired_datasets", PurgeInterval, j.PurgeExpiredDatasets)
}

func (j *DatasetJobs) PurgeExpiredDatasets(ctx context.Context) error {
	cutoff := j.now().Add(-j.retention)

	result, err := j.datasetService.PurgeOlderThan(ctx, cutoff)
	if err != nil {
		return fmt.Errorf("failed to purge datasets: %w", err)
	}

	if result.Deleted == 0 {
		slog.Debug("Cron: No expired datasets found", "cutoff", result.Cutoff)
		return nil
	}
	slog.Info("Cron: Purged expired datasets", "count", result.Deleted, "cutoff", result.Cutoff)
	return nil
}

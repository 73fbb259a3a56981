package postgresql

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/cmlabs-hris/hris-analytics-go/internal/domain/dataset"
	"github.com/cmlabs-hris/hris-analytics-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

const datasetSchema = `
	CREATE TABLE IF NOT EXISTS datasets (
		id UUID PRIMARY KEY,
		company_id TEXT NOT NULL,
		kind TEXT NOT NULL,
		name TEXT NOT NULL,
		sheet_name TEXT NOT NULL DEFAULT '',
		source_path TEXT,
		row_count INTEGER NOT NULL DEFAULT 0,
		columns JSONB NOT NULL DEFAULT '[]',
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);

	CREATE INDEX IF NOT EXISTS idx_datasets_company_created
		ON datasets(company_id, created_at DESC);

	CREATE TABLE IF NOT EXISTS dataset_rows (
		dataset_id UUID NOT NULL REFERENCES datasets(id) ON DELETE CASCADE,
		row_index INTEGER NOT NULL,
		data JSONB NOT NULL,
		PRIMARY KEY (dataset_id, row_index)
	);
`

type datasetRepository struct {
	db *database.DB
}

func NewDatasetRepository(db *database.DB) dataset.DatasetRepository {
	return &datasetRepository{db: db}
}

// Migrate creates the dataset tables when missing.
func Migrate(ctx context.Context, db *database.DB) error {
	if _, err := db.Exec(ctx, datasetSchema); err != nil {
		return fmt.Errorf("failed to migrate dataset schema: %w", err)
	}
	return nil
}

// Create implements dataset.DatasetRepository.
func (d *datasetRepository) Create(ctx context.Context, ds dataset.Dataset, rows []dataset.Row) error {
	return WithTransaction(ctx, d.db, func(ctx context.Context, tx pgx.Tx) error {
		query := `
			INSERT INTO datasets (id, company_id, kind, name, sheet_name, source_path, row_count, columns, created_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		`
		_, err := tx.Exec(ctx, query,
			ds.ID, ds.CompanyID, string(ds.Kind), ds.Name, ds.SheetName, ds.SourcePath,
			ds.RowCount, ds.Columns, ds.CreatedAt,
		)
		if err != nil {
			return fmt.Errorf("failed to insert dataset: %w", err)
		}

		return copyRows(ctx, tx, ds.ID, rows)
	})
}

// ReplaceRows implements dataset.DatasetRepository.
func (d *datasetRepository) ReplaceRows(ctx context.Context, id string, companyID string, rows []dataset.Row) error {
	return WithTransaction(ctx, d.db, func(ctx context.Context, tx pgx.Tx) error {
		commandTag, err := tx.Exec(ctx,
			`UPDATE datasets SET row_count = $1 WHERE id = $2 AND company_id = $3`,
			len(rows), id, companyID,
		)
		if err != nil {
			return fmt.Errorf("failed to update dataset: %w", err)
		}
		if commandTag.RowsAffected() == 0 {
			return dataset.ErrDatasetNotFound
		}

		if _, err := tx.Exec(ctx, `DELETE FROM dataset_rows WHERE dataset_id = $1`, id); err != nil {
			return fmt.Errorf("failed to clear dataset rows: %w", err)
		}

		return copyRows(ctx, tx, id, rows)
	})
}

func copyRows(ctx context.Context, tx pgx.Tx, datasetID string, rows []dataset.Row) error {
	_, err := tx.CopyFrom(ctx,
		pgx.Identifier{"dataset_rows"},
		[]string{"dataset_id", "row_index", "data"},
		pgx.CopyFromSlice(len(rows), func(i int) ([]any, error) {
			data, err := json.Marshal(rows[i])
			if err != nil {
				return nil, err
			}
			return []any{datasetID, i, data}, nil
		}),
	)
	if err != nil {
		return fmt.Errorf("failed to copy dataset rows: %w", err)
	}
	return nil
}

// GetByID implements dataset.DatasetRepository.
func (d *datasetRepository) GetByID(ctx context.Context, id string, companyID string) (dataset.Dataset, error) {
	q := GetQuerier(ctx, d.db)

	query := `
		SELECT id, company_id, kind, name, sheet_name, source_path, row_count, columns, created_at
		FROM datasets
		WHERE id = $1 AND company_id = $2
	`

	ds, err := scanDataset(q.QueryRow(ctx, query, id, companyID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return dataset.Dataset{}, dataset.ErrDatasetNotFound
		}
		return dataset.Dataset{}, fmt.Errorf("failed to get dataset: %w", err)
	}
	return ds, nil
}

// List implements dataset.DatasetRepository.
func (d *datasetRepository) List(ctx context.Context, filter dataset.DatasetFilter, companyID string) ([]dataset.Dataset, int64, error) {
	q := GetQuerier(ctx, d.db)

	baseWhere := "company_id = $1"
	args := []interface{}{companyID}
	argIdx := 2

	if filter.Kind != nil && *filter.Kind != "" {
		baseWhere += fmt.Sprintf(" AND kind = $%d", argIdx)
		args = append(args, *filter.Kind)
		argIdx++
	}
	if filter.Search != nil && *filter.Search != "" {
		baseWhere += fmt.Sprintf(" AND name ILIKE $%d", argIdx)
		args = append(args, "%"+*filter.Search+"%")
		argIdx++
	}

	var total int64
	if err := q.QueryRow(ctx, "SELECT COUNT(*) FROM datasets WHERE "+baseWhere, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count datasets: %w", err)
	}

	selectQuery := fmt.Sprintf(`
		SELECT id, company_id, kind, name, sheet_name, source_path, row_count, columns, created_at
		FROM datasets
		WHERE %s
		ORDER BY created_at DESC
		LIMIT $%d OFFSET $%d
	`, baseWhere, argIdx, argIdx+1)
	args = append(args, filter.Limit, (filter.Page-1)*filter.Limit)

	rows, err := q.Query(ctx, selectQuery, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list datasets: %w", err)
	}
	defer rows.Close()

	var datasets []dataset.Dataset
	for rows.Next() {
		ds, err := scanDataset(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan dataset: %w", err)
		}
		datasets = append(datasets, ds)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to iterate datasets: %w", err)
	}

	return datasets, total, nil
}

// Rows implements dataset.DatasetRepository.
func (d *datasetRepository) Rows(ctx context.Context, id string, companyID string) ([]dataset.Row, error) {
	q := GetQuerier(ctx, d.db)

	query := `
		SELECT r.data
		FROM dataset_rows r
		JOIN datasets ds ON ds.id = r.dataset_id
		WHERE r.dataset_id = $1 AND ds.company_id = $2
		ORDER BY r.row_index
	`

	rows, err := q.Query(ctx, query, id, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to get dataset rows: %w", err)
	}
	defer rows.Close()

	result := []dataset.Row{}
	for rows.Next() {
		var raw []byte
		if err := rows.Scan(&raw); err != nil {
			return nil, fmt.Errorf("failed to scan dataset row: %w", err)
		}
		var row dataset.Row
		if err := json.Unmarshal(raw, &row); err != nil {
			return nil, fmt.Errorf("failed to decode dataset row: %w", err)
		}
		result = append(result, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate dataset rows: %w", err)
	}

	return result, nil
}

// Delete implements dataset.DatasetRepository.
func (d *datasetRepository) Delete(ctx context.Context, id string, companyID string) error {
	q := GetQuerier(ctx, d.db)

	commandTag, err := q.Exec(ctx, `DELETE FROM datasets WHERE id = $1 AND company_id = $2`, id, companyID)
	if err != nil {
		return fmt.Errorf("failed to delete dataset: %w", err)
	}

	if commandTag.RowsAffected() == 0 {
		return dataset.ErrDatasetNotFound
	}

	return nil
}

// DeleteCreatedBefore implements dataset.DatasetRepository.
func (d *datasetRepository) DeleteCreatedBefore(ctx context.Context, cutoff time.Time) ([]dataset.Dataset, error) {
	q := GetQuerier(ctx, d.db)

	query := `
		DELETE FROM datasets
		WHERE created_at < $1
		RETURNING id, company_id, kind, name, sheet_name, source_path, row_count, columns, created_at
	`

	rows, err := q.Query(ctx, query, cutoff)
	if err != nil {
		return nil, fmt.Errorf("failed to purge datasets: %w", err)
	}
	defer rows.Close()

	var deleted []dataset.Dataset
	for rows.Next() {
		ds, err := scanDataset(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan purged dataset: %w", err)
		}
		deleted = append(deleted, ds)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate purged datasets: %w", err)
	}

	return deleted, nil
}

func scanDataset(row pgx.Row) (dataset.Dataset, error) {
	var ds dataset.Dataset
	var kind string
	err := row.Scan(
		&ds.ID, &ds.CompanyID, &kind, &ds.Name, &ds.SheetName, &ds.SourcePath,
		&ds.RowCount, &ds.Columns, &ds.CreatedAt,
	)
	ds.Kind = dataset.Kind(kind)
	return ds, err
}

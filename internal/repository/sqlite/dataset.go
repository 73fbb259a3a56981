package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/cmlabs-hris/hris-analytics-go/internal/domain/dataset"
	_ "github.com/mattn/go-sqlite3"
)

// timeLayout has fixed-width fractions so stored timestamps sort as text.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

var _ dataset.DatasetRepository = (*DatasetStore)(nil)

// DatasetStore keeps datasets in a single SQLite file. Writes are serialized by mu.
type DatasetStore struct {
	db *sql.DB
	mu sync.RWMutex
}

// New opens (and migrates) the database at path. Use ":memory:" for tests.
func New(path string) (*DatasetStore, error) {
	db, err := sql.Open("sqlite3", path+"?_foreign_keys=on&_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if path == ":memory:" {
		// every pooled connection would get its own empty database
		db.SetMaxOpenConns(1)
	}

	store := &DatasetStore{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return store, nil
}

func (s *DatasetStore) Close() error {
	return s.db.Close()
}

func (s *DatasetStore) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS datasets (
		id TEXT PRIMARY KEY,
		company_id TEXT NOT NULL,
		kind TEXT NOT NULL,
		name TEXT NOT NULL,
		sheet_name TEXT NOT NULL DEFAULT '',
		source_path TEXT,
		row_count INTEGER NOT NULL DEFAULT 0,
		columns_json TEXT NOT NULL DEFAULT '[]',
		created_at TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_datasets_company_created
		ON datasets(company_id, created_at);

	CREATE TABLE IF NOT EXISTS dataset_rows (
		dataset_id TEXT NOT NULL REFERENCES datasets(id) ON DELETE CASCADE,
		row_index INTEGER NOT NULL,
		data_json TEXT NOT NULL,
		PRIMARY KEY (dataset_id, row_index)
	);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Create implements dataset.DatasetRepository.
func (s *DatasetStore) Create(ctx context.Context, ds dataset.Dataset, rows []dataset.Row) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	columnsJSON, err := json.Marshal(ds.Columns)
	if err != nil {
		return fmt.Errorf("failed to encode columns: %w", err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO datasets (id, company_id, kind, name, sheet_name, source_path, row_count, columns_json, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`,
		ds.ID, ds.CompanyID, string(ds.Kind), ds.Name, ds.SheetName, nullString(ds.SourcePath),
		ds.RowCount, string(columnsJSON), ds.CreatedAt.UTC().Format(timeLayout),
	)
	if err != nil {
		return fmt.Errorf("failed to insert dataset: %w", err)
	}

	if err := insertRows(ctx, tx, ds.ID, rows); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// ReplaceRows implements dataset.DatasetRepository.
func (s *DatasetStore) ReplaceRows(ctx context.Context, id string, companyID string, rows []dataset.Row) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx,
		`UPDATE datasets SET row_count = ? WHERE id = ? AND company_id = ?`,
		len(rows), id, companyID,
	)
	if err != nil {
		return fmt.Errorf("failed to update dataset: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to update dataset: %w", err)
	}
	if affected == 0 {
		return dataset.ErrDatasetNotFound
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM dataset_rows WHERE dataset_id = ?`, id); err != nil {
		return fmt.Errorf("failed to clear dataset rows: %w", err)
	}
	if err := insertRows(ctx, tx, id, rows); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

func insertRows(ctx context.Context, tx *sql.Tx, datasetID string, rows []dataset.Row) error {
	stmt, err := tx.PrepareContext(ctx, `INSERT INTO dataset_rows (dataset_id, row_index, data_json) VALUES (?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("failed to prepare row insert: %w", err)
	}
	defer stmt.Close()

	for i, row := range rows {
		data, err := json.Marshal(row)
		if err != nil {
			return fmt.Errorf("failed to encode row %d: %w", i, err)
		}
		if _, err := stmt.ExecContext(ctx, datasetID, i, string(data)); err != nil {
			return fmt.Errorf("failed to insert row %d: %w", i, err)
		}
	}
	return nil
}

// GetByID implements dataset.DatasetRepository.
func (s *DatasetStore) GetByID(ctx context.Context, id string, companyID string) (dataset.Dataset, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	row := s.db.QueryRowContext(ctx, `
		SELECT id, company_id, kind, name, sheet_name, source_path, row_count, columns_json, created_at
		FROM datasets
		WHERE id = ? AND company_id = ?
	`, id, companyID)

	ds, err := scanDataset(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return dataset.Dataset{}, dataset.ErrDatasetNotFound
		}
		return dataset.Dataset{}, fmt.Errorf("failed to get dataset: %w", err)
	}
	return ds, nil
}

// List implements dataset.DatasetRepository.
func (s *DatasetStore) List(ctx context.Context, filter dataset.DatasetFilter, companyID string) ([]dataset.Dataset, int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	where := "company_id = ?"
	args := []any{companyID}
	if filter.Kind != nil && *filter.Kind != "" {
		where += " AND kind = ?"
		args = append(args, *filter.Kind)
	}
	if filter.Search != nil && *filter.Search != "" {
		where += " AND name LIKE ?"
		args = append(args, "%"+*filter.Search+"%")
	}

	var total int64
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM datasets WHERE "+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count datasets: %w", err)
	}

	query := `
		SELECT id, company_id, kind, name, sheet_name, source_path, row_count, columns_json, created_at
		FROM datasets
		WHERE ` + where + `
		ORDER BY created_at DESC
		LIMIT ? OFFSET ?
	`
	args = append(args, filter.Limit, (filter.Page-1)*filter.Limit)

	rows, err := s.db.QueryContext(ctx, query, args...)
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
	return datasets, total, rows.Err()
}

// Rows implements dataset.DatasetRepository.
func (s *DatasetStore) Rows(ctx context.Context, id string, companyID string) ([]dataset.Row, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx, `
		SELECT r.data_json
		FROM dataset_rows r
		JOIN datasets d ON d.id = r.dataset_id
		WHERE r.dataset_id = ? AND d.company_id = ?
		ORDER BY r.row_index
	`, id, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to get dataset rows: %w", err)
	}
	defer rows.Close()

	result := []dataset.Row{}
	for rows.Next() {
		var raw string
		if err := rows.Scan(&raw); err != nil {
			return nil, fmt.Errorf("failed to scan dataset row: %w", err)
		}
		var row dataset.Row
		if err := json.Unmarshal([]byte(raw), &row); err != nil {
			return nil, fmt.Errorf("failed to decode dataset row: %w", err)
		}
		result = append(result, row)
	}
	return result, rows.Err()
}

// Delete implements dataset.DatasetRepository.
func (s *DatasetStore) Delete(ctx context.Context, id string, companyID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.ExecContext(ctx, `DELETE FROM datasets WHERE id = ? AND company_id = ?`, id, companyID)
	if err != nil {
		return fmt.Errorf("failed to delete dataset: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to delete dataset: %w", err)
	}
	if affected == 0 {
		return dataset.ErrDatasetNotFound
	}
	return nil
}

// DeleteCreatedBefore implements dataset.DatasetRepository.
func (s *DatasetStore) DeleteCreatedBefore(ctx context.Context, cutoff time.Time) ([]dataset.Dataset, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	bound := cutoff.UTC().Format(timeLayout)
	rows, err := tx.QueryContext(ctx, `
		SELECT id, company_id, kind, name, sheet_name, source_path, row_count, columns_json, created_at
		FROM datasets
		WHERE created_at < ?
	`, bound)
	if err != nil {
		return nil, fmt.Errorf("failed to find expired datasets: %w", err)
	}

	var expired []dataset.Dataset
	for rows.Next() {
		ds, err := scanDataset(rows)
		if err != nil {
			rows.Close()
			return nil, fmt.Errorf("failed to scan expired dataset: %w", err)
		}
		expired = append(expired, ds)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM datasets WHERE created_at < ?`, bound); err != nil {
		return nil, fmt.Errorf("failed to purge datasets: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit transaction: %w", err)
	}
	return expired, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanDataset(row scanner) (dataset.Dataset, error) {
	var (
		ds          dataset.Dataset
		kind        string
		sourcePath  sql.NullString
		columnsJSON string
		createdAt   string
	)
	if err := row.Scan(&ds.ID, &ds.CompanyID, &kind, &ds.Name, &ds.SheetName, &sourcePath, &ds.RowCount, &columnsJSON, &createdAt); err != nil {
		return dataset.Dataset{}, err
	}

	ds.Kind = dataset.Kind(kind)
	if sourcePath.Valid {
		ds.SourcePath = &sourcePath.String
	}
	if err := json.Unmarshal([]byte(columnsJSON), &ds.Columns); err != nil {
		return dataset.Dataset{}, fmt.Errorf("failed to decode columns: %w", err)
	}
	t, err := time.Parse(timeLayout, createdAt)
	if err != nil {
		return dataset.Dataset{}, fmt.Errorf("failed to parse created_at: %w", err)
	}
	ds.CreatedAt = t
	return ds, nil
}

func nullString(s *string) any {
	if s == nil {
		return nil
	}
	return *s
}

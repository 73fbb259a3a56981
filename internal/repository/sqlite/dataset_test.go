package sqlite

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/cmlabs-hris/hris-analytics-go/internal/domain/dataset"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *DatasetStore {
	t.Helper()
	store, err := New(filepath.Join(t.TempDir(), "datasets.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func testDataset(id, companyID string, kind dataset.Kind, createdAt time.Time) dataset.Dataset {
	path := "datasets/" + id + ".xlsx"
	return dataset.Dataset{
		ID:         id,
		CompanyID:  companyID,
		Kind:       kind,
		Name:       "Dataset " + id,
		SheetName:  "Sheet1",
		SourcePath: &path,
		RowCount:   1,
		Columns:    []string{"Emp No.", "Tanggal"},
		CreatedAt:  createdAt,
	}
}

func TestDatasetStore_CreateAndGet(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	created := time.Date(2026, 1, 5, 8, 30, 0, 0, time.UTC)
	ds := testDataset("ds-1", "company-a", dataset.KindAttendance, created)
	rows := []dataset.Row{
		{"Emp No.": "1001", "Tanggal": "2026-01-05"},
		{"Emp No.": "1002", "Tanggal": "2026-01-06"},
	}
	require.NoError(t, store.Create(ctx, ds, rows))

	got, err := store.GetByID(ctx, "ds-1", "company-a")
	require.NoError(t, err)
	assert.Equal(t, ds.Name, got.Name)
	assert.Equal(t, dataset.KindAttendance, got.Kind)
	assert.Equal(t, ds.Columns, got.Columns)
	require.NotNil(t, got.SourcePath)
	assert.Equal(t, "datasets/ds-1.xlsx", *got.SourcePath)
	assert.True(t, created.Equal(got.CreatedAt))

	_, err = store.GetByID(ctx, "ds-1", "company-b")
	assert.ErrorIs(t, err, dataset.ErrDatasetNotFound)

	stored, err := store.Rows(ctx, "ds-1", "company-a")
	require.NoError(t, err)
	require.Len(t, stored, 2)
	assert.Equal(t, "1001", stored[0]["Emp No."])
	assert.Equal(t, "2026-01-06", stored[1]["Tanggal"])

	other, err := store.Rows(ctx, "ds-1", "company-b")
	require.NoError(t, err)
	assert.Empty(t, other)
}

func TestDatasetStore_DuplicateIDRollsBack(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	ds := testDataset("ds-1", "company-a", dataset.KindAttendance, time.Now())
	require.NoError(t, store.Create(ctx, ds, []dataset.Row{{"a": "1"}}))
	assert.Error(t, store.Create(ctx, ds, []dataset.Row{{"a": "2"}, {"a": "3"}}))

	rows, err := store.Rows(ctx, "ds-1", "company-a")
	require.NoError(t, err)
	assert.Len(t, rows, 1)
}

func TestDatasetStore_ReplaceRows(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	ds := testDataset("ds-1", "company-a", dataset.KindAttendance, time.Now())
	require.NoError(t, store.Create(ctx, ds, []dataset.Row{
		{"Emp No.": "1001", "Tanggal": "2026-01-05"},
		{"Emp No.": "1002", "Tanggal": "2026-01-05"},
		{"Emp No.": "1002", "Tanggal": "2026-01-06"},
	}))

	assert.ErrorIs(t,
		store.ReplaceRows(ctx, "ds-1", "company-b", []dataset.Row{}),
		dataset.ErrDatasetNotFound,
	)

	require.NoError(t, store.ReplaceRows(ctx, "ds-1", "company-a", []dataset.Row{
		{"Emp No.": "1002", "Tanggal": "2026-01-06"},
	}))

	rows, err := store.Rows(ctx, "ds-1", "company-a")
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "1002", rows[0]["Emp No."])

	got, err := store.GetByID(ctx, "ds-1", "company-a")
	require.NoError(t, err)
	assert.Equal(t, 1, got.RowCount)
}

func TestDatasetStore_List(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 5; i++ {
		kind := dataset.KindAttendance
		if i%2 == 1 {
			kind = dataset.KindRecruitment
		}
		ds := testDataset(fmt.Sprintf("ds-%d", i), "company-a", kind, base.Add(time.Duration(i)*time.Hour))
		require.NoError(t, store.Create(ctx, ds, nil))
	}
	require.NoError(t, store.Create(ctx, testDataset("other", "company-b", dataset.KindAttendance, base), nil))

	list, total, err := store.List(ctx, dataset.DatasetFilter{Page: 1, Limit: 2}, "company-a")
	require.NoError(t, err)
	assert.Equal(t, int64(5), total)
	require.Len(t, list, 2)
	assert.Equal(t, "ds-4", list[0].ID)
	assert.Equal(t, "ds-3", list[1].ID)

	kind := string(dataset.KindRecruitment)
	list, total, err = store.List(ctx, dataset.DatasetFilter{Kind: &kind, Page: 1, Limit: 20}, "company-a")
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	assert.Len(t, list, 2)

	search := "ds-2"
	list, total, err = store.List(ctx, dataset.DatasetFilter{Search: &search, Page: 1, Limit: 20}, "company-a")
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Len(t, list, 1)
}

func TestDatasetStore_DeleteAndPurge(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	now := time.Now()
	require.NoError(t, store.Create(ctx, testDataset("old", "company-a", dataset.KindAttendance, now.Add(-72*time.Hour)), []dataset.Row{{"a": "1"}}))
	require.NoError(t, store.Create(ctx, testDataset("older", "company-b", dataset.KindAttendance, now.Add(-96*time.Hour)), nil))
	require.NoError(t, store.Create(ctx, testDataset("fresh", "company-a", dataset.KindAttendance, now), []dataset.Row{{"a": "2"}}))

	purged, err := store.DeleteCreatedBefore(ctx, now.Add(-24*time.Hour))
	require.NoError(t, err)
	assert.Len(t, purged, 2)

	_, err = store.GetByID(ctx, "old", "company-a")
	assert.ErrorIs(t, err, dataset.ErrDatasetNotFound)

	rows, err := store.Rows(ctx, "old", "company-a")
	require.NoError(t, err)
	assert.Empty(t, rows)

	assert.ErrorIs(t, store.Delete(ctx, "fresh", "company-b"), dataset.ErrDatasetNotFound)
	require.NoError(t, store.Delete(ctx, "fresh", "company-a"))
	assert.ErrorIs(t, store.Delete(ctx, "fresh", "company-a"), dataset.ErrDatasetNotFound)
}

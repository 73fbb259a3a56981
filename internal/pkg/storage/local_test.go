package storage

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalStorage_RoundTrip(t *testing.T) {
	ctx := context.Background()
	s, err := NewLocalStorage(t.TempDir(), "http://localhost:8080/uploads/")
	require.NoError(t, err)

	path, err := s.Upload(ctx, strings.NewReader("hello"), "datasets/a/file.csv", "text/csv")
	require.NoError(t, err)
	assert.Equal(t, "datasets/a/file.csv", path)

	exists, err := s.Exists(ctx, path)
	require.NoError(t, err)
	assert.True(t, exists)

	url, err := s.GetURL(ctx, path, time.Hour)
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:8080/uploads/datasets/a/file.csv", url)

	require.NoError(t, s.Delete(ctx, path))
	require.NoError(t, s.Delete(ctx, path))

	_, err = s.Download(ctx, path)
	assert.ErrorIs(t, err, ErrFileNotFound)
}

func TestLocalStorage_RejectsTraversal(t *testing.T) {
	ctx := context.Background()
	s, err := NewLocalStorage(t.TempDir(), "")
	require.NoError(t, err)

	_, err = s.Upload(ctx, strings.NewReader("x"), "../../etc/passwd", "text/plain")
	assert.ErrorIs(t, err, ErrInvalidPath)

	_, err = s.Exists(ctx, "../outside")
	assert.ErrorIs(t, err, ErrInvalidPath)
}

func TestNew(t *testing.T) {
	_, err := New("s3", t.TempDir(), "")
	assert.Error(t, err)

	s, err := New("local", t.TempDir(), "")
	require.NoError(t, err)
	assert.NotNil(t, s)
}

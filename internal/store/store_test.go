package store

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testRoundTrip(t *testing.T, s Store) {
	t.Helper()
	ctx := context.Background()

	_, err := s.Get(ctx)
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, s.Set(ctx, []byte(`{"42":{"id":42}}`)))
	blob, err := s.Get(ctx)
	require.NoError(t, err)
	assert.JSONEq(t, `{"42":{"id":42}}`, string(blob))

	// Whole-blob replacement, not a merge.
	require.NoError(t, s.Set(ctx, []byte(`{"7":{"id":7}}`)))
	blob, err = s.Get(ctx)
	require.NoError(t, err)
	assert.JSONEq(t, `{"7":{"id":7}}`, string(blob))
}

func TestFileStore(t *testing.T) {
	s, err := NewFileStore(filepath.Join(t.TempDir(), "nested", "records.json"))
	require.NoError(t, err)
	defer func() { _ = s.Close() }()
	testRoundTrip(t, s)
}

func TestFileStore_EmptyPath(t *testing.T) {
	_, err := NewFileStore("")
	assert.Error(t, err)
}

func TestSQLiteStore(t *testing.T) {
	s, err := OpenSQLite(context.Background(), filepath.Join(t.TempDir(), "records.db"))
	require.NoError(t, err)
	defer func() { _ = s.Close() }()
	testRoundTrip(t, s)
}

func TestMemStore(t *testing.T) {
	s := NewMemStore()
	testRoundTrip(t, s)
}

func TestCtxCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	s, err := NewFileStore(filepath.Join(t.TempDir(), "records.json"))
	require.NoError(t, err)
	_, err = s.Get(ctx)
	assert.Error(t, err)
	assert.Error(t, s.Set(ctx, []byte("{}")))
}

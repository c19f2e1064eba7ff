package blobstore

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testStore(t *testing.T, s Store) {
	ctx := context.Background()

	_, err := s.Get(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, s.Put(ctx, "run/centers", []byte("1 2\n")))
	require.NoError(t, s.Put(ctx, "run/centers-tmp", []byte("0 0\n")))
	require.NoError(t, s.Put(ctx, "other", []byte("x")))
	require.NoError(t, s.Put(ctx, "run/centers", []byte("3 4\n")))

	data, err := s.Get(ctx, "run/centers")
	require.NoError(t, err)
	assert.Equal(t, "3 4\n", string(data))

	names, err := s.List(ctx, "run/")
	require.NoError(t, err)
	assert.Equal(t, []string{"run/centers", "run/centers-tmp"}, names)

	all, err := s.List(ctx, "")
	require.NoError(t, err)
	assert.Len(t, all, 3)

	require.NoError(t, s.Delete(ctx, "other"))
	require.NoError(t, s.Delete(ctx, "other"))
	_, err = s.Get(ctx, "other")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryStore(t *testing.T) {
	testStore(t, NewMemoryStore())
}

func TestMemoryStore_CopiesData(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	data := []byte("abc")
	require.NoError(t, s.Put(ctx, "a", data))
	data[0] = 'x'

	got, err := s.Get(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, "abc", string(got))
}

func TestLocalStore(t *testing.T) {
	testStore(t, NewLocalStore(t.TempDir()))
}

func TestLocalStore_MissingRoot(t *testing.T) {
	s := NewLocalStore(filepath.Join(t.TempDir(), "absent"))
	names, err := s.List(context.Background(), "")
	require.NoError(t, err)
	assert.Empty(t, names)
}

func TestPublishFile(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "centers")
	require.NoError(t, os.WriteFile(path, []byte("0.5 0.5\n"), 0o644))

	s := NewMemoryStore()
	require.NoError(t, PublishFile(ctx, s, "run/centers", path))

	got, err := s.Get(ctx, "run/centers")
	require.NoError(t, err)
	assert.Equal(t, "0.5 0.5\n", string(got))

	assert.Error(t, PublishFile(ctx, s, "x", path+".missing"))
}

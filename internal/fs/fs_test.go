package fs

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalFS(t *testing.T) {
	dir := t.TempDir()
	lfs := LocalFS{}

	f, err := lfs.CreateTemp(dir, "centers.tmp-*")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(filepath.Base(f.Name()), "centers.tmp-"))

	_, err = io.WriteString(f, "1 2\n")
	require.NoError(t, err)
	require.NoError(t, f.Sync())
	require.NoError(t, f.Chmod(0o644))
	require.NoError(t, f.Close())

	target := filepath.Join(dir, "centers")
	require.NoError(t, lfs.Rename(f.Name(), target))
	require.NoError(t, lfs.SyncDir(dir))

	data, err := os.ReadFile(target)
	require.NoError(t, err)
	assert.Equal(t, "1 2\n", string(data))

	require.NoError(t, lfs.Remove(target))
	_, err = os.Stat(target)
	assert.True(t, os.IsNotExist(err))

	_, err = lfs.CreateTemp(filepath.Join(dir, "missing"), "x-*")
	assert.Error(t, err)
}

func TestFaultyFS_WriteLimit(t *testing.T) {
	dir := t.TempDir()
	ffs := NewFaultyFS(nil, Fault{Match: "param", Ops: OpWrite, AfterBytes: 5})

	f, err := ffs.CreateTemp(dir, "param.tmp-*")
	require.NoError(t, err)

	n, err := f.Write([]byte("hel"))
	assert.NoError(t, err)
	assert.Equal(t, 3, n)

	n, err = f.Write([]byte("lo!"))
	assert.ErrorIs(t, err, ErrInjected)
	assert.Equal(t, 2, n)
	require.NoError(t, f.Close())

	data, err := os.ReadFile(f.Name())
	require.NoError(t, err)
	assert.Equal(t, "hello", string(data))
}

func TestFaultyFS_Ops(t *testing.T) {
	dir := t.TempDir()
	boom := errors.New("boom")

	ffs := NewFaultyFS(LocalFS{})
	ffs.Inject(Fault{Match: "sync", Ops: OpSync, Err: boom})
	ffs.Inject(Fault{Match: "close", Ops: OpClose})
	ffs.Inject(Fault{Match: "rename", Ops: OpRename})

	f, err := ffs.CreateTemp(dir, "sync-*")
	require.NoError(t, err)
	assert.ErrorIs(t, f.Sync(), boom)
	require.NoError(t, f.Close())

	f, err = ffs.CreateTemp(dir, "close-*")
	require.NoError(t, err)
	assert.NoError(t, f.Sync())
	assert.ErrorIs(t, f.Close(), ErrInjected)

	f, err = ffs.CreateTemp(dir, "rename-*")
	require.NoError(t, err)
	require.NoError(t, f.Close())
	assert.ErrorIs(t, ffs.Rename(f.Name(), filepath.Join(dir, "other")), ErrInjected)
	assert.NoError(t, ffs.Remove(f.Name()))
}

func TestFaultyFS_FirstMatchWins(t *testing.T) {
	dir := t.TempDir()
	ffs := NewFaultyFS(nil,
		Fault{Match: "centers", Ops: OpRename},
		Fault{Match: "centers-tmp", Ops: OpSync},
	)

	f, err := ffs.CreateTemp(dir, "centers-tmp.tmp-*")
	require.NoError(t, err)
	assert.NoError(t, f.Sync())
	require.NoError(t, f.Close())
	assert.ErrorIs(t, ffs.Rename(f.Name(), filepath.Join(dir, "centers-tmp")), ErrInjected)
}

func TestFaultyFS_Passthrough(t *testing.T) {
	dir := t.TempDir()
	ffs := NewFaultyFS(nil, Fault{Match: "never", Ops: OpWrite | OpSync | OpClose | OpRename})

	f, err := ffs.CreateTemp(dir, "out-*")
	require.NoError(t, err)
	_, err = io.WriteString(f, "data")
	require.NoError(t, err)
	require.NoError(t, f.Sync())
	require.NoError(t, f.Chmod(0o644))
	require.NoError(t, f.Close())

	target := filepath.Join(dir, "out")
	require.NoError(t, ffs.Rename(f.Name(), target))
	require.NoError(t, ffs.SyncDir(dir))
	assert.FileExists(t, target)
}

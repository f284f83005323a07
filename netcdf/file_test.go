package netcdf

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func tempPath(t *testing.T) string {
	t.Helper()
	return filepath.Join(t.TempDir(), "test.nc")
}

// createFile creates a fresh file and closes it on test cleanup.
func createFile(t *testing.T) *File {
	t.Helper()
	f, err := Create(tempPath(t))
	require.NoError(t, err)
	t.Cleanup(func() { f.Close() })
	return f
}

func TestCreateOpenClose(t *testing.T) {
	path := tempPath(t)
	f, err := Create(path)
	require.NoError(t, err)
	require.True(t, f.Writable())
	require.Equal(t, path, f.Path())
	require.NoError(t, f.Close())
	// Close is a no-op after the first call.
	require.NoError(t, f.Close())

	f, err = Open(path)
	require.NoError(t, err)
	require.False(t, f.Writable())
	require.NoError(t, f.Close())
}

func TestOpenMissing(t *testing.T) {
	_, err := Open(filepath.Join(t.TempDir(), "nope.nc"))
	require.Error(t, err)
}

func TestOpenNotNetCDF(t *testing.T) {
	path := tempPath(t)
	require.NoError(t, os.WriteFile(path, []byte("not a data file at all"), 0o644))
	_, err := Open(path)
	require.Error(t, err)
	var ncErr *Error
	require.ErrorAs(t, err, &ncErr)
	// An unreadable container surfaces at open time, as IO or Unknown.
	require.Contains(t, []Kind{IO, Unknown}, ncErr.Kind)
}

func TestCreateExclusive(t *testing.T) {
	path := tempPath(t)
	f, err := CreateExclusive(path)
	require.NoError(t, err)
	require.NoError(t, f.Close())

	_, err = CreateExclusive(path)
	require.ErrorIs(t, err, ErrAlreadyExists)
}

func TestCreateTruncates(t *testing.T) {
	path := tempPath(t)
	f, err := Create(path)
	require.NoError(t, err)
	_, err = f.Root().AddDimension("x", 3)
	require.NoError(t, err)
	require.NoError(t, f.Close())

	f, err = Create(path)
	require.NoError(t, err)
	defer f.Close()
	dims, err := f.Root().Dimensions()
	require.NoError(t, err)
	require.Empty(t, dims)
}

func TestUseAfterClosePanics(t *testing.T) {
	f := createFile(t)
	root := f.Root()
	require.NoError(t, f.Close())
	require.Panics(t, func() { f.Root() })
	require.Panics(t, func() { root.Dimensions() })
}

func TestSetFill(t *testing.T) {
	f := createFile(t)
	prev, err := f.SetFill(false)
	require.NoError(t, err)
	// Filling is the engine default.
	require.True(t, prev)
	prev, err = f.SetFill(true)
	require.NoError(t, err)
	require.False(t, prev)
}

func TestSetFillReadOnly(t *testing.T) {
	path := tempPath(t)
	f, err := Create(path)
	require.NoError(t, err)
	require.NoError(t, f.Close())

	f, err = Open(path)
	require.NoError(t, err)
	defer f.Close()
	_, err = f.SetFill(false)
	require.ErrorIs(t, err, ErrPermission)
}

func TestSync(t *testing.T) {
	f := createFile(t)
	_, err := f.Root().AddDimension("x", 2)
	require.NoError(t, err)
	require.NoError(t, f.Sync())
}

func TestSetChunkCache(t *testing.T) {
	require.NoError(t, SetChunkCache(4<<20, 1009, 0.75))
}

// The full create, write, close, reopen read-only cycle.
func TestReopenScenario(t *testing.T) {
	path := tempPath(t)
	f, err := Create(path)
	require.NoError(t, err)
	root := f.Root()
	_, err = root.AddDimension("x", 3)
	require.NoError(t, err)
	v, err := root.AddVariable("v", Int, []string{"x"})
	require.NoError(t, err)
	require.NoError(t, v.Put([]int32{1, 2, 3}))
	require.NoError(t, f.Close())

	f, err = Open(path)
	require.NoError(t, err)
	defer f.Close()
	v, err = f.Root().Variable("v")
	require.NoError(t, err)
	got, err := v.Get()
	require.NoError(t, err)
	require.Equal(t, []int32{1, 2, 3}, got)

	err = v.PutRegion(Selection{{Start: 0, Count: 3, Stride: 1}}, []int32{4, 5, 6})
	require.ErrorIs(t, err, ErrPermission)
	got, err = v.Get()
	require.NoError(t, err)
	require.Equal(t, []int32{1, 2, 3}, got)
}

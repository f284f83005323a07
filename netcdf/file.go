package netcdf

import (
	"github.com/batchatco/go-thrower"

	"github.com/batchatco/go-netcdf/internal/engine"
)

// File owns a native engine handle and, through it, every Group,
// Dimension, Variable and Attribute handle derived from it.  Those
// handles are valid only while the File is open; using one after Close
// is a caller bug and panics rather than handing a stale numeric ID to
// the engine.
type File struct {
	ncid     int
	path     string
	writable bool
	closed   bool
}

// Open opens an existing file read-only.  A path that is not a
// readable NetCDF container fails here, never at first use.
func Open(path string) (*File, error) {
	return open(path, engine.NC_NOWRITE, false)
}

// OpenWrite opens an existing file for reading and writing.
func OpenWrite(path string) (*File, error) {
	return open(path, engine.NC_WRITE, true)
}

// Create creates a NetCDF-4 file, truncating any existing file at path.
func Create(path string) (*File, error) {
	return create(path, engine.NC_CLOBBER|engine.NC_NETCDF4)
}

// CreateExclusive is Create, but fails with AlreadyExists if the path
// already exists.
func CreateExclusive(path string) (*File, error) {
	return create(path, engine.NC_NOCLOBBER|engine.NC_NETCDF4)
}

func open(path string, mode int, writable bool) (*File, error) {
	ncid, err := engine.Open(path, mode)
	if err != nil {
		return nil, wrap(err)
	}
	return &File{ncid: ncid, path: path, writable: writable}, nil
}

func create(path string, mode int) (*File, error) {
	ncid, err := engine.Create(path, mode)
	if err != nil {
		return nil, wrap(err)
	}
	return &File{ncid: ncid, path: path, writable: true}, nil
}

// Close releases the engine handle.  The first call closes; later calls
// are no-ops.  Every handle derived from the File is invalid afterward.
func (f *File) Close() error {
	if f.closed {
		return nil
	}
	f.closed = true
	return wrap(engine.Close(f.ncid))
}

// Path returns the path the file was opened or created with.
func (f *File) Path() string {
	return f.path
}

// Writable reports whether mutating operations are permitted.
func (f *File) Writable() bool {
	return f.writable
}

// Root returns the top-level group.
func (f *File) Root() *Group {
	f.ensureOpen()
	return &Group{file: f, ncid: f.ncid, name: "/"}
}

// Sync flushes buffered writes to storage.
func (f *File) Sync() error {
	f.ensureOpen()
	return wrap(engine.Sync(f.ncid))
}

// SetFill enables or disables fill-on-define for subsequently created
// variables, returning whether filling was previously enabled.
func (f *File) SetFill(fill bool) (prev bool, err error) {
	defer thrower.RecoverError(&err)
	f.ensureOpen()
	f.ensureWritable()
	mode := engine.NC_NOFILL
	if fill {
		mode = engine.NC_FILL
	}
	old, err := engine.SetFill(f.ncid, mode)
	if err != nil {
		return false, wrap(err)
	}
	return old == engine.NC_FILL, nil
}

func (f *File) ensureOpen() {
	if f.closed {
		panic("netcdf: use of closed File")
	}
}

// ensureWritable throws Permission; callers recover it into their error
// return.
func (f *File) ensureWritable() {
	if !f.writable {
		thrower.Throw(newError(Permission, "file %q is read-only", f.path))
	}
}

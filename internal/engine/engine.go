package engine

/*
#cgo LDFLAGS: -lnetcdf
#include <stdlib.h>
#include <netcdf.h>
*/
import "C"

import (
	"fmt"
	"sync"
	"unsafe"
)

// mu serializes every call into the C library.  It is the sole
// concurrency primitive in the module; nothing above this package
// performs synchronization.
var mu sync.Mutex

// Status is a non-success return from the C library: the raw status
// code plus the nc_strerror message for it.
type Status struct {
	Code    int
	Message string
}

func (s *Status) Error() string {
	return fmt.Sprintf("%s (status %d)", s.Message, s.Code)
}

// check converts a native status code to an error.  Callers must hold mu,
// which they always do: check is only reachable from exported functions.
func check(status C.int) error {
	if status == C.NC_NOERR {
		return nil
	}
	return &Status{
		Code:    int(status),
		Message: C.GoString(C.nc_strerror(status)),
	}
}

// Mode and special-ID constants.
const (
	NC_NOWRITE   = C.NC_NOWRITE
	NC_WRITE     = C.NC_WRITE
	NC_CLOBBER   = C.NC_CLOBBER
	NC_NOCLOBBER = C.NC_NOCLOBBER
	NC_NETCDF4   = C.NC_NETCDF4

	NC_GLOBAL    = C.NC_GLOBAL
	NC_UNLIMITED = C.NC_UNLIMITED
	NC_MAX_NAME  = C.NC_MAX_NAME

	NC_FILL   = C.NC_FILL
	NC_NOFILL = C.NC_NOFILL

	NC_CHUNKED    = C.NC_CHUNKED
	NC_CONTIGUOUS = C.NC_CONTIGUOUS

	NC_ENDIAN_NATIVE = C.NC_ENDIAN_NATIVE
	NC_ENDIAN_LITTLE = C.NC_ENDIAN_LITTLE
	NC_ENDIAN_BIG    = C.NC_ENDIAN_BIG
)

// External type codes.
const (
	NC_BYTE   = C.NC_BYTE
	NC_CHAR   = C.NC_CHAR
	NC_SHORT  = C.NC_SHORT
	NC_INT    = C.NC_INT
	NC_FLOAT  = C.NC_FLOAT
	NC_DOUBLE = C.NC_DOUBLE
	NC_UBYTE  = C.NC_UBYTE
	NC_USHORT = C.NC_USHORT
	NC_UINT   = C.NC_UINT
	NC_INT64  = C.NC_INT64
	NC_UINT64 = C.NC_UINT64
	NC_STRING = C.NC_STRING
)

// Status codes with a specific meaning to the error model above.
const (
	NC_EPERM        = C.NC_EPERM
	NC_EINVALCOORDS = C.NC_EINVALCOORDS
	NC_ENAMEINUSE   = C.NC_ENAMEINUSE
	NC_ENOTATT      = C.NC_ENOTATT
	NC_EBADTYPE     = C.NC_EBADTYPE
	NC_EBADDIM      = C.NC_EBADDIM
	NC_EUNLIMPOS    = C.NC_EUNLIMPOS
	NC_ENOTVAR      = C.NC_ENOTVAR
	NC_ENOTNC       = C.NC_ENOTNC
	NC_EUNLIMIT     = C.NC_EUNLIMIT
	NC_ECHAR        = C.NC_ECHAR
	NC_EEDGE        = C.NC_EEDGE
	NC_ESTRIDE      = C.NC_ESTRIDE
	NC_EBADNAME     = C.NC_EBADNAME
	NC_EDIMSIZE     = C.NC_EDIMSIZE
	NC_ETRUNC       = C.NC_ETRUNC
	NC_EEXIST       = C.NC_EEXIST
	NC_EHDFERR      = C.NC_EHDFERR
	NC_ECANTREAD    = C.NC_ECANTREAD
	NC_ECANTWRITE   = C.NC_ECANTWRITE
	NC_ECANTCREATE  = C.NC_ECANTCREATE
	NC_EATTEXISTS   = C.NC_EATTEXISTS
	NC_ENOGRP       = C.NC_ENOGRP
)

// Slice conversions.  The C API wants size_t offsets/counts and
// ptrdiff_t strides; nil is accepted everywhere for rank-0 access.

func sizeTs(v []uint64) []C.size_t {
	if len(v) == 0 {
		return nil
	}
	out := make([]C.size_t, len(v))
	for i, x := range v {
		out[i] = C.size_t(x)
	}
	return out
}

func ptrdiffTs(v []uint64) []C.ptrdiff_t {
	if len(v) == 0 {
		return nil
	}
	out := make([]C.ptrdiff_t, len(v))
	for i, x := range v {
		out[i] = C.ptrdiff_t(x)
	}
	return out
}

func sizePtr(v []C.size_t) *C.size_t {
	if len(v) == 0 {
		return nil
	}
	return &v[0]
}

func ptrdiffPtr(v []C.ptrdiff_t) *C.ptrdiff_t {
	if len(v) == 0 {
		return nil
	}
	return &v[0]
}

// Open opens an existing file and returns its ncid.
func Open(path string, mode int) (int, error) {
	mu.Lock()
	defer mu.Unlock()
	cpath := C.CString(path)
	defer C.free(unsafe.Pointer(cpath))
	var ncid C.int
	if err := check(C.nc_open(cpath, C.int(mode), &ncid)); err != nil {
		return 0, err
	}
	return int(ncid), nil
}

// Create creates a new file and returns its ncid.
func Create(path string, mode int) (int, error) {
	mu.Lock()
	defer mu.Unlock()
	cpath := C.CString(path)
	defer C.free(unsafe.Pointer(cpath))
	var ncid C.int
	if err := check(C.nc_create(cpath, C.int(mode), &ncid)); err != nil {
		return 0, err
	}
	return int(ncid), nil
}

// Close releases the native handle.  The caller is responsible for
// calling it exactly once per ncid.
func Close(ncid int) error {
	mu.Lock()
	defer mu.Unlock()
	return check(C.nc_close(C.int(ncid)))
}

// Sync flushes buffered data to storage.
func Sync(ncid int) error {
	mu.Lock()
	defer mu.Unlock()
	return check(C.nc_sync(C.int(ncid)))
}

// SetFill sets the fill mode for a file and returns the previous mode.
func SetFill(ncid int, fillMode int) (int, error) {
	mu.Lock()
	defer mu.Unlock()
	var old C.int
	if err := check(C.nc_set_fill(C.int(ncid), C.int(fillMode), &old)); err != nil {
		return 0, err
	}
	return int(old), nil
}

// SetChunkCache sets the library-wide default chunk cache.  This is
// process-global state inside the C library, which is exactly why it
// lives behind the same lock as everything else.
func SetChunkCache(size, nelems uint64, preemption float64) error {
	mu.Lock()
	defer mu.Unlock()
	return check(C.nc_set_chunk_cache(C.size_t(size), C.size_t(nelems), C.float(preemption)))
}

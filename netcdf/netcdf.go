// Package netcdf reads and writes NetCDF files through the installed
// NetCDF C library.  The C library does all byte-level work; this
// package provides the ownership, type and error discipline on top of
// it: handles that cannot outlive the File that produced them, a closed
// element-type set checked before any native call, and structured
// errors in place of raw status codes.
//
// Calls into the C library are serialized on a single process-wide
// lock because the library keeps global mutable state.  Handles from
// one File are not otherwise synchronized; concurrent use of a single
// File needs caller-side locking.
package netcdf

import (
	"github.com/batchatco/go-netcdf/internal"
	"github.com/batchatco/go-netcdf/internal/engine"
)

var (
	logger = internal.NewLogger()
	log    = "don't use the log package" // prevents usage of standard log package
)

// SetLogLevel sets the log level for the package's stderr diagnostics:
// 0 for errors only, 1 adds warnings, 2 adds informational messages.
// It returns the previous level.
func SetLogLevel(level int) int {
	return int(logger.SetLogLevel(internal.LogLevel(level)))
}

// SetChunkCache sets the C library's default chunk cache.  The setting
// is process-wide and applies to files opened afterwards.
func SetChunkCache(size, nelems uint64, preemption float64) error {
	return wrap(engine.SetChunkCache(size, nelems, preemption))
}

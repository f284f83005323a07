// Package engine is the only package that calls into the NetCDF C
// library.  Every exported function takes and returns plain Go types,
// checks the native status code, and holds the package-wide lock for
// the duration of the call: the C library keeps process-wide mutable
// state (open-file tables, default chunk-cache settings) and is not
// safe for concurrent use, even across independent file handles.
//
// Constants keep their C names, syscall style, so callers can be read
// against the NetCDF documentation.
package engine

package netcdf

import (
	"errors"
	"fmt"

	"github.com/batchatco/go-netcdf/internal/engine"
)

// Kind classifies every failure the library can surface.  The set is
// closed: any native status without a specific mapping becomes Unknown,
// with the raw code and engine message preserved.
type Kind int

const (
	NotFound Kind = iota + 1
	TypeMismatch
	ShapeMismatch
	AlreadyExists
	Permission
	IO
	Unknown
)

// Sentinels for errors.Is matching.  Every *Error unwraps to the
// sentinel of its kind.
var (
	ErrNotFound      = errors.New("not found")
	ErrTypeMismatch  = errors.New("type mismatch")
	ErrShapeMismatch = errors.New("shape mismatch")
	ErrAlreadyExists = errors.New("already exists")
	ErrPermission    = errors.New("permission denied")
	ErrIO            = errors.New("i/o failure")
	ErrUnknown       = errors.New("unknown error")
)

func (k Kind) sentinel() error {
	switch k {
	case NotFound:
		return ErrNotFound
	case TypeMismatch:
		return ErrTypeMismatch
	case ShapeMismatch:
		return ErrShapeMismatch
	case AlreadyExists:
		return ErrAlreadyExists
	case Permission:
		return ErrPermission
	case IO:
		return ErrIO
	}
	return ErrUnknown
}

func (k Kind) String() string {
	return k.sentinel().Error()
}

// Error is the structured error returned by every fallible operation.
// Code is the raw native status when the failure came from the engine,
// and zero when this layer rejected the operation before calling it.
type Error struct {
	Kind    Kind
	Code    int
	Message string
}

func (e *Error) Error() string {
	if e.Code != 0 {
		return fmt.Sprintf("netcdf: %s (status %d)", e.Message, e.Code)
	}
	return "netcdf: " + e.Message
}

func (e *Error) Unwrap() error {
	return e.Kind.sentinel()
}

// newError builds a client-side error, one this layer raised without
// touching the engine.
func newError(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// kindOf maps a native status code onto the taxonomy.  System errors
// (positive errno values) count as IO.
func kindOf(code int) Kind {
	if code > 0 {
		return IO
	}
	switch code {
	case engine.NC_ENOTVAR, engine.NC_EBADDIM, engine.NC_ENOTATT, engine.NC_ENOGRP:
		return NotFound
	case engine.NC_ENAMEINUSE, engine.NC_EEXIST, engine.NC_EATTEXISTS:
		return AlreadyExists
	case engine.NC_EPERM:
		return Permission
	case engine.NC_EBADTYPE, engine.NC_ECHAR:
		return TypeMismatch
	case engine.NC_EINVALCOORDS, engine.NC_EEDGE, engine.NC_ESTRIDE,
		engine.NC_EUNLIMPOS, engine.NC_EUNLIMIT, engine.NC_EDIMSIZE:
		return ShapeMismatch
	case engine.NC_ENOTNC, engine.NC_EHDFERR, engine.NC_ECANTREAD,
		engine.NC_ECANTWRITE, engine.NC_ECANTCREATE, engine.NC_ETRUNC:
		return IO
	}
	return Unknown
}

// wrap converts a gateway status into an *Error.  Nil and already
// wrapped errors pass through.
func wrap(err error) error {
	if err == nil {
		return nil
	}
	var st *engine.Status
	if errors.As(err, &st) {
		return &Error{Kind: kindOf(st.Code), Code: st.Code, Message: st.Message}
	}
	return err
}

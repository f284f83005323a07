package netcdf

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/batchatco/go-netcdf/internal/engine"
)

func TestErrorFormatting(t *testing.T) {
	err := newError(NotFound, "dimension %q not found", "x")
	require.ErrorIs(t, err, ErrNotFound)
	require.EqualError(t, err, `netcdf: dimension "x" not found`)
	require.Equal(t, "not found", NotFound.String())

	withCode := &Error{Kind: Permission, Code: engine.NC_EPERM, Message: "write to read-only"}
	require.ErrorIs(t, withCode, ErrPermission)
	require.Contains(t, withCode.Error(), "status")
}

func TestStatusKinds(t *testing.T) {
	cases := map[int]Kind{
		engine.NC_ENOTVAR:    NotFound,
		engine.NC_EBADDIM:    NotFound,
		engine.NC_ENOTATT:    NotFound,
		engine.NC_ENOGRP:     NotFound,
		engine.NC_ENAMEINUSE: AlreadyExists,
		engine.NC_EEXIST:     AlreadyExists,
		engine.NC_EPERM:      Permission,
		engine.NC_EBADTYPE:   TypeMismatch,
		engine.NC_EEDGE:      ShapeMismatch,
		engine.NC_ESTRIDE:    ShapeMismatch,
		engine.NC_ENOTNC:     IO,
		engine.NC_EHDFERR:    IO,
		2:                    IO, // errno
		-9999:                Unknown,
	}
	for code, want := range cases {
		require.Equal(t, want, kindOf(code), "status %d", code)
	}

	wrapped := wrap(&engine.Status{Code: engine.NC_EPERM, Message: "boom"})
	var ncErr *Error
	require.ErrorAs(t, wrapped, &ncErr)
	require.Equal(t, Permission, ncErr.Kind)
	require.Equal(t, engine.NC_EPERM, ncErr.Code)
	require.Nil(t, wrap(nil))
}

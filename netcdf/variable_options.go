package netcdf

import (
	"unsafe"

	"github.com/batchatco/go-thrower"

	"github.com/batchatco/go-netcdf/internal/engine"
)

// Storage controls recovered from the C surface.  All of them must be
// applied after defining the variable and before the first write.

// Endianness is the on-disk byte order of a variable.
type Endianness int

const (
	NativeEndian Endianness = iota
	LittleEndian
	BigEndian
)

func (e Endianness) native() int {
	switch e {
	case LittleEndian:
		return engine.NC_ENDIAN_LITTLE
	case BigEndian:
		return engine.NC_ENDIAN_BIG
	}
	return engine.NC_ENDIAN_NATIVE
}

// SetCompression enables zlib compression, level 0 (off) through 9.
func (v *Variable) SetCompression(level int) (err error) {
	defer thrower.RecoverError(&err)
	v.file.ensureOpen()
	v.file.ensureWritable()
	if level < 0 || level > 9 {
		return newError(Unknown, "compression level %d outside 0..9", level)
	}
	return wrap(engine.DefVarDeflate(v.ncid, v.varid, false, level))
}

// SetChunking switches the variable to chunked storage with the given
// chunk shape, one size per stored dimension (for char variables this
// includes the character axis).
func (v *Variable) SetChunking(sizes []uint64) (err error) {
	defer thrower.RecoverError(&err)
	v.file.ensureOpen()
	v.file.ensureWritable()
	if len(sizes) != len(v.dims) {
		return newError(ShapeMismatch,
			"%d chunk sizes for %d stored dimensions", len(sizes), len(v.dims))
	}
	return wrap(engine.DefVarChunking(v.ncid, v.varid, engine.NC_CHUNKED, sizes))
}

// SetEndianness sets the on-disk byte order.
func (v *Variable) SetEndianness(e Endianness) (err error) {
	defer thrower.RecoverError(&err)
	v.file.ensureOpen()
	v.file.ensureWritable()
	return wrap(engine.DefVarEndian(v.ncid, v.varid, e.native()))
}

// Endianness returns the on-disk byte order.
func (v *Variable) Endianness() (Endianness, error) {
	v.file.ensureOpen()
	e, err := engine.InqVarEndian(v.ncid, v.varid)
	if err != nil {
		return NativeEndian, wrap(err)
	}
	switch e {
	case engine.NC_ENDIAN_LITTLE:
		return LittleEndian, nil
	case engine.NC_ENDIAN_BIG:
		return BigEndian, nil
	}
	return NativeEndian, nil
}

// SetFillValue sets the value used for unwritten elements.  The value
// must be a scalar of the variable's Go type; char and string
// variables take no fill value here.
func (v *Variable) SetFillValue(value any) (err error) {
	defer thrower.RecoverError(&err)
	v.file.ensureOpen()
	v.file.ensureWritable()
	if !v.dtype.numeric() {
		return newError(TypeMismatch, "no fill value for %v variables", v.dtype)
	}
	switch v.dtype {
	case Byte:
		return setFill[int8](v, value)
	case UByte:
		return setFill[uint8](v, value)
	case Short:
		return setFill[int16](v, value)
	case UShort:
		return setFill[uint16](v, value)
	case Int:
		return setFill[int32](v, value)
	case UInt:
		return setFill[uint32](v, value)
	case Int64:
		return setFill[int64](v, value)
	case UInt64:
		return setFill[uint64](v, value)
	case Float:
		return setFill[float32](v, value)
	}
	return setFill[float64](v, value)
}

// FillValue returns the variable's fill value and whether filling is
// enabled.
func (v *Variable) FillValue() (any, bool, error) {
	v.file.ensureOpen()
	if !v.dtype.numeric() {
		return nil, false, newError(TypeMismatch, "no fill value for %v variables", v.dtype)
	}
	switch v.dtype {
	case Byte:
		return fillValue[int8](v)
	case UByte:
		return fillValue[uint8](v)
	case Short:
		return fillValue[int16](v)
	case UShort:
		return fillValue[uint16](v)
	case Int:
		return fillValue[int32](v)
	case UInt:
		return fillValue[uint32](v)
	case Int64:
		return fillValue[int64](v)
	case UInt64:
		return fillValue[uint64](v)
	case Float:
		return fillValue[float32](v)
	}
	return fillValue[float64](v)
}

func setFill[T any](v *Variable, value any) error {
	buf, err := numericBuffer[T](v.dtype, value, 1)
	if err != nil {
		return err
	}
	return wrap(engine.DefVarFill(v.ncid, v.varid, false, unsafe.Pointer(&buf[0])))
}

func fillValue[T any](v *Variable) (any, bool, error) {
	buf := make([]T, 1)
	set, err := engine.InqVarFill(v.ncid, v.varid, unsafe.Pointer(&buf[0]))
	if err != nil {
		return nil, false, wrap(err)
	}
	return buf[0], set, nil
}

package netcdf

import (
	"unsafe"

	"github.com/batchatco/go-thrower"

	"github.com/batchatco/go-netcdf/internal/engine"
)

// Variable is a named, typed, shape-bearing array inside one group.
//
// Values move through the API as the Go type matching the stored type
// (Type.GoType); no numeric widening or narrowing is ever performed.
// Reads return a flat slice in row-major order, or a bare scalar for a
// rank-0 variable.  Char variables trade in Go strings: the trailing
// dimension holds the characters and is not addressable through the
// Variable, so a char variable over dimensions [n, w] reads and writes
// as n strings of at most w characters.
type Variable struct {
	file  *File
	ncid  int
	varid int
	name  string
	dtype Type
	dims  []*Dimension
}

// Name returns the variable's name.
func (v *Variable) Name() string {
	return v.name
}

// Type returns the element type.
func (v *Variable) Type() Type {
	return v.dtype
}

// Dimensions returns the addressable dimensions in storage order.  For
// char variables this excludes the trailing character axis.
func (v *Variable) Dimensions() []*Dimension {
	return v.exposedDims()
}

// Shape returns the current length of every addressable dimension.
func (v *Variable) Shape() (shape []uint64, err error) {
	defer thrower.RecoverError(&err)
	v.file.ensureOpen()
	return v.liveLengths(), nil
}

// Len returns the current total number of addressable elements.
func (v *Variable) Len() (n uint64, err error) {
	defer thrower.RecoverError(&err)
	v.file.ensureOpen()
	n = 1
	for _, length := range v.liveLengths() {
		n *= length
	}
	return n, nil
}

// Get reads the variable's full current extent.  The length of the
// unlimited axis, if any, is queried first, so the result reflects all
// completed writes.
func (v *Variable) Get() (val any, err error) {
	defer thrower.RecoverError(&err)
	v.file.ensureOpen()
	lengths := v.liveLengths()
	sel := make(Selection, len(lengths))
	for i, length := range lengths {
		if length == 0 {
			return emptyValue(v.dtype), nil
		}
		sel[i] = Extent{Start: 0, Count: length, Stride: 1}
	}
	return v.getRegion(sel)
}

// GetRegion reads the sub-region addressed by sel, which must have one
// extent per addressable dimension.
func (v *Variable) GetRegion(sel Selection) (val any, err error) {
	defer thrower.RecoverError(&err)
	v.file.ensureOpen()
	sel.validate()
	return v.getRegion(sel)
}

// Put writes the variable's full extent from values.  When the first
// axis is unlimited its new length is defined by the buffer: the write
// covers [0, len(values)/rowSize).
func (v *Variable) Put(values any) (err error) {
	defer thrower.RecoverError(&err)
	v.file.ensureOpen()
	v.file.ensureWritable()
	bufLen, ok := bufferLen(values)
	if !ok {
		return newError(TypeMismatch, "unsupported buffer type %T", values)
	}
	sel, empty := v.fullPutSelection(uint64(bufLen))
	if empty {
		return nil
	}
	return v.putRegion(sel, values)
}

// PutRegion writes values over the sub-region addressed by sel.
// Writing past the current length of an unlimited axis extends it; on
// any fixed axis that is a ShapeMismatch.
func (v *Variable) PutRegion(sel Selection, values any) (err error) {
	defer thrower.RecoverError(&err)
	v.file.ensureOpen()
	v.file.ensureWritable()
	sel.validate()
	return v.putRegion(sel, values)
}

func (v *Variable) getRegion(sel Selection) (any, error) {
	n := v.checkSelection(sel, false)
	switch v.dtype {
	case String:
		vals, err := engine.GetVarsString(v.ncid, v.varid,
			sel.starts(), sel.counts(), sel.strides(), int(n))
		if err != nil {
			return nil, wrap(err)
		}
		if v.scalar() {
			return vals[0], nil
		}
		return vals, nil
	case Char:
		return v.getChars(sel, n)
	}
	return v.getNumericRegion(sel, n)
}

func (v *Variable) putRegion(sel Selection, values any) error {
	n := v.checkSelection(sel, true)
	switch v.dtype {
	case String:
		vals, err := stringBuffer(values, n)
		if err != nil {
			return err
		}
		return wrap(engine.PutVarsString(v.ncid, v.varid,
			sel.starts(), sel.counts(), sel.strides(), vals))
	case Char:
		return v.putChars(sel, values, n)
	}
	return v.putNumericRegion(sel, values, n)
}

func (v *Variable) getNumericRegion(sel Selection, n uint64) (any, error) {
	switch v.dtype {
	case Byte:
		return getNumeric[int8](v, sel, n)
	case UByte:
		return getNumeric[uint8](v, sel, n)
	case Short:
		return getNumeric[int16](v, sel, n)
	case UShort:
		return getNumeric[uint16](v, sel, n)
	case Int:
		return getNumeric[int32](v, sel, n)
	case UInt:
		return getNumeric[uint32](v, sel, n)
	case Int64:
		return getNumeric[int64](v, sel, n)
	case UInt64:
		return getNumeric[uint64](v, sel, n)
	case Float:
		return getNumeric[float32](v, sel, n)
	case Double:
		return getNumeric[float64](v, sel, n)
	}
	return nil, newError(TypeMismatch, "%v is not a supported variable type", v.dtype)
}

func (v *Variable) putNumericRegion(sel Selection, values any, n uint64) error {
	switch v.dtype {
	case Byte:
		return putNumeric[int8](v, sel, values, n)
	case UByte:
		return putNumeric[uint8](v, sel, values, n)
	case Short:
		return putNumeric[int16](v, sel, values, n)
	case UShort:
		return putNumeric[uint16](v, sel, values, n)
	case Int:
		return putNumeric[int32](v, sel, values, n)
	case UInt:
		return putNumeric[uint32](v, sel, values, n)
	case Int64:
		return putNumeric[int64](v, sel, values, n)
	case UInt64:
		return putNumeric[uint64](v, sel, values, n)
	case Float:
		return putNumeric[float32](v, sel, values, n)
	case Double:
		return putNumeric[float64](v, sel, values, n)
	}
	return newError(TypeMismatch, "%v is not a supported variable type", v.dtype)
}

func getNumeric[T any](v *Variable, sel Selection, n uint64) (any, error) {
	buf := make([]T, n)
	err := engine.GetVars(v.ncid, v.varid,
		sel.starts(), sel.counts(), sel.strides(), unsafe.Pointer(&buf[0]))
	if err != nil {
		return nil, wrap(err)
	}
	if v.scalar() {
		return buf[0], nil
	}
	return buf, nil
}

func putNumeric[T any](v *Variable, sel Selection, values any, n uint64) error {
	buf, err := numericBuffer[T](v.dtype, values, n)
	if err != nil {
		return err
	}
	return wrap(engine.PutVars(v.ncid, v.varid,
		sel.starts(), sel.counts(), sel.strides(), unsafe.Pointer(&buf[0])))
}

// numericBuffer checks the caller's buffer against the stored type
// before anything reaches the engine.  A bare scalar stands in for a
// one-element buffer.
func numericBuffer[T any](t Type, values any, n uint64) ([]T, error) {
	switch b := values.(type) {
	case []T:
		if uint64(len(b)) != n {
			return nil, newError(ShapeMismatch,
				"buffer has %d elements, selection has %d", len(b), n)
		}
		return b, nil
	case T:
		if n != 1 {
			return nil, newError(ShapeMismatch,
				"scalar buffer for a selection of %d elements", n)
		}
		return []T{b}, nil
	}
	return nil, newError(TypeMismatch,
		"buffer type %T does not match variable type %v (%s)", values, t, t.GoType())
}

func stringBuffer(values any, n uint64) ([]string, error) {
	switch b := values.(type) {
	case []string:
		if uint64(len(b)) != n {
			return nil, newError(ShapeMismatch,
				"buffer has %d strings, selection has %d", len(b), n)
		}
		return b, nil
	case string:
		if n != 1 {
			return nil, newError(ShapeMismatch,
				"scalar buffer for a selection of %d elements", n)
		}
		return []string{b}, nil
	}
	return nil, newError(TypeMismatch, "buffer type %T is not string-valued", values)
}

func (v *Variable) getChars(sel Selection, n uint64) (any, error) {
	width := v.charWidth()
	out := make([]string, n)
	if width > 0 {
		nativeSel := v.charSelection(sel, width)
		buf := make([]byte, n*width)
		err := engine.GetVars(v.ncid, v.varid,
			nativeSel.starts(), nativeSel.counts(), nativeSel.strides(),
			unsafe.Pointer(&buf[0]))
		if err != nil {
			return nil, wrap(err)
		}
		for i := range out {
			out[i] = cutAtNul(buf[uint64(i)*width : uint64(i+1)*width])
		}
	}
	if v.scalar() {
		return out[0], nil
	}
	return out, nil
}

func (v *Variable) putChars(sel Selection, values any, n uint64) error {
	vals, err := stringBuffer(values, n)
	if err != nil {
		return err
	}
	width := v.charWidth()
	if v.charAxisUnlimited() {
		// Write defines the width, up to the current high-water mark.
		for _, s := range vals {
			if uint64(len(s)) > width {
				width = uint64(len(s))
			}
		}
	}
	for _, s := range vals {
		if uint64(len(s)) > width {
			return newError(ShapeMismatch,
				"string of length %d exceeds character axis length %d", len(s), width)
		}
	}
	if width == 0 {
		return nil
	}
	buf := make([]byte, n*width)
	for i, s := range vals {
		copy(buf[uint64(i)*width:], s)
	}
	nativeSel := v.charSelection(sel, width)
	return wrap(engine.PutVars(v.ncid, v.varid,
		nativeSel.starts(), nativeSel.counts(), nativeSel.strides(),
		unsafe.Pointer(&buf[0])))
}

// charSelection appends the hidden character axis, always read and
// written across its full width.
func (v *Variable) charSelection(sel Selection, width uint64) Selection {
	if !v.hasCharAxis() {
		return sel
	}
	native := make(Selection, len(sel), len(sel)+1)
	copy(native, sel)
	return append(native, Extent{Start: 0, Count: width, Stride: 1})
}

// checkSelection validates rank and bounds against live extents and
// returns the element count.  A put may run past the end of an
// unlimited axis; everything else past an extent is a ShapeMismatch,
// raised before any native call.
func (v *Variable) checkSelection(sel Selection, putting bool) uint64 {
	dims := v.exposedDims()
	if len(sel) != len(dims) {
		thrower.Throw(newError(ShapeMismatch,
			"selection rank %d does not match variable rank %d", len(sel), len(dims)))
	}
	for i, e := range sel {
		length := dimLen(dims[i])
		if e.last() >= length && !(putting && dims[i].unlimited) {
			thrower.Throw(newError(ShapeMismatch,
				"selection start %d count %d stride %d exceeds length %d of dimension %q",
				e.Start, e.Count, e.Stride, length, dims[i].name))
		}
	}
	return sel.size()
}

// fullPutSelection builds the degenerate whole-variable selection for a
// put of bufLen elements.  The unlimited axis, when present, takes its
// count from the buffer: rows written define the new length.
func (v *Variable) fullPutSelection(bufLen uint64) (Selection, bool) {
	dims := v.exposedDims()
	lengths := v.liveLengths()
	unlimIdx := -1
	rowSize := uint64(1)
	for i, d := range dims {
		if d.unlimited {
			unlimIdx = i
			continue
		}
		rowSize *= lengths[i]
	}
	if unlimIdx >= 0 {
		if bufLen == 0 {
			return nil, true
		}
		if rowSize == 0 || bufLen%rowSize != 0 {
			thrower.Throw(newError(ShapeMismatch,
				"buffer of %d elements is not a whole number of rows of %d", bufLen, rowSize))
		}
		lengths[unlimIdx] = bufLen / rowSize
	} else {
		total := uint64(1)
		for _, length := range lengths {
			total *= length
		}
		if total != bufLen {
			thrower.Throw(newError(ShapeMismatch,
				"buffer has %d elements, variable has %d", bufLen, total))
		}
		if total == 0 {
			return nil, true
		}
	}
	sel := make(Selection, len(lengths))
	for i, length := range lengths {
		sel[i] = Extent{Start: 0, Count: length, Stride: 1}
	}
	return sel, false
}

func (v *Variable) exposedDims() []*Dimension {
	if v.dtype == Char && len(v.dims) > 0 {
		return v.dims[:len(v.dims)-1]
	}
	return v.dims
}

func (v *Variable) hasCharAxis() bool {
	return v.dtype == Char && len(v.dims) > 0
}

func (v *Variable) charAxisUnlimited() bool {
	return v.hasCharAxis() && v.dims[len(v.dims)-1].unlimited
}

// charWidth is the live length of the hidden character axis, or 1 for
// a rank-0 char variable holding a single character.
func (v *Variable) charWidth() uint64 {
	if !v.hasCharAxis() {
		return 1
	}
	return dimLen(v.dims[len(v.dims)-1])
}

func (v *Variable) scalar() bool {
	return len(v.exposedDims()) == 0
}

func (v *Variable) liveLengths() []uint64 {
	dims := v.exposedDims()
	out := make([]uint64, len(dims))
	for i, d := range dims {
		out[i] = dimLen(d)
	}
	return out
}

// dimLen is the throwing form of Dimension.Len for use inside
// recovered call paths.
func dimLen(d *Dimension) uint64 {
	_, length, err := engine.InqDim(d.ncid, d.id)
	thrower.ThrowIfError(wrap(err))
	return length
}

func cutAtNul(b []byte) string {
	for i, c := range b {
		if c == 0 {
			return string(b[:i])
		}
	}
	return string(b)
}

// bufferLen counts the elements in a caller buffer of any supported
// form; scalars count one.
func bufferLen(values any) (int, bool) {
	switch b := values.(type) {
	case []int8:
		return len(b), true
	case []uint8:
		return len(b), true
	case []int16:
		return len(b), true
	case []uint16:
		return len(b), true
	case []int32:
		return len(b), true
	case []uint32:
		return len(b), true
	case []int64:
		return len(b), true
	case []uint64:
		return len(b), true
	case []float32:
		return len(b), true
	case []float64:
		return len(b), true
	case []string:
		return len(b), true
	case int8, uint8, int16, uint16, int32, uint32,
		int64, uint64, float32, float64, string:
		return 1, true
	}
	return 0, false
}

func emptyValue(t Type) any {
	switch t {
	case Byte:
		return []int8{}
	case UByte:
		return []uint8{}
	case Short:
		return []int16{}
	case UShort:
		return []uint16{}
	case Int:
		return []int32{}
	case UInt:
		return []uint32{}
	case Int64:
		return []int64{}
	case UInt64:
		return []uint64{}
	case Float:
		return []float32{}
	case Double:
		return []float64{}
	}
	return []string{}
}

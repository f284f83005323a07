package netcdf

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// Round-trip law: a put followed by a get over the identical selection
// returns what was written, for every supported element type.
func TestRoundTripAllTypes(t *testing.T) {
	cases := []struct {
		name   string
		dtype  Type
		values any
	}{
		{"i8", Byte, []int8{-10, 0, 10}},
		{"ui8", UByte, []uint8{10, 20, 30}},
		{"i16", Short, []int16{-10000, 0, 10000}},
		{"ui16", UShort, []uint16{10000, 20000, 30000}},
		{"i32", Int, []int32{-100000, 0, 100000}},
		{"ui32", UInt, []uint32{100000, 200000, 300000}},
		{"i64", Int64, []int64{-10000000000, 0, 10000000000}},
		{"ui64", UInt64, []uint64{10000000000, 20000000000, 30000000000}},
		{"f32", Float, []float32{-10.1, 0, 10.1}},
		{"f64", Double, []float64{-10.1, 0, 10.1}},
		{"str", String, []string{"a", "bc", "def"}},
	}

	f := createFile(t)
	root := f.Root()
	_, err := root.AddDimension("dim", 3)
	require.NoError(t, err)

	for _, c := range cases {
		v, err := root.AddVariable(c.name, c.dtype, []string{"dim"})
		require.NoError(t, err, c.name)
		require.Equal(t, c.dtype, v.Type())
		require.NoError(t, v.Put(c.values), c.name)
		got, err := v.Get()
		require.NoError(t, err, c.name)
		require.Equal(t, c.values, got, c.name)
	}

	// The same through fresh handles after reopening.
	path := f.Path()
	require.NoError(t, f.Close())
	f, err = Open(path)
	require.NoError(t, err)
	defer f.Close()
	for _, c := range cases {
		v, err := f.Root().Variable(c.name)
		require.NoError(t, err, c.name)
		got, err := v.Get()
		require.NoError(t, err, c.name)
		require.Equal(t, c.values, got, c.name)
	}
}

func TestScalarVariable(t *testing.T) {
	f := createFile(t)
	v, err := f.Root().AddVariable("answer", Int, nil)
	require.NoError(t, err)
	require.Empty(t, v.Dimensions())
	require.NoError(t, v.Put(int32(42)))
	got, err := v.Get()
	require.NoError(t, err)
	require.Equal(t, int32(42), got)

	n, err := v.Len()
	require.NoError(t, err)
	require.Equal(t, uint64(1), n)
}

func TestRegionsAndStrides(t *testing.T) {
	f := createFile(t)
	root := f.Root()
	_, err := root.AddDimension("row", 4)
	require.NoError(t, err)
	_, err = root.AddDimension("col", 5)
	require.NoError(t, err)
	v, err := root.AddVariable("m", Int, []string{"row", "col"})
	require.NoError(t, err)

	values := make([]int32, 20)
	for i := range values {
		values[i] = int32(i)
	}
	require.NoError(t, v.Put(values))

	// One interior row.
	got, err := v.GetRegion(Selection{
		{Start: 2, Count: 1, Stride: 1},
		{Start: 0, Count: 5, Stride: 1},
	})
	require.NoError(t, err)
	require.Equal(t, []int32{10, 11, 12, 13, 14}, got)

	// Every other column of every other row.
	got, err = v.GetRegion(Selection{
		{Start: 0, Count: 2, Stride: 2},
		{Start: 0, Count: 3, Stride: 2},
	})
	require.NoError(t, err)
	require.Equal(t, []int32{0, 2, 4, 10, 12, 14}, got)

	// Strided write-back over the same selection round-trips.
	sel := Selection{
		{Start: 1, Count: 2, Stride: 2},
		{Start: 1, Count: 2, Stride: 3},
	}
	require.NoError(t, v.PutRegion(sel, []int32{-1, -2, -3, -4}))
	got, err = v.GetRegion(sel)
	require.NoError(t, err)
	require.Equal(t, []int32{-1, -2, -3, -4}, got)
}

func TestShapeMismatch(t *testing.T) {
	f := createFile(t)
	root := f.Root()
	_, err := root.AddDimension("x", 3)
	require.NoError(t, err)
	v, err := root.AddVariable("v", Float, []string{"x"})
	require.NoError(t, err)
	require.NoError(t, v.Put([]float32{1, 2, 3}))

	// Rank mismatch.
	_, err = v.GetRegion(Selection{{0, 1, 1}, {0, 1, 1}})
	require.ErrorIs(t, err, ErrShapeMismatch)

	// Past the extent, directly and via stride.
	_, err = v.GetRegion(Selection{{Start: 1, Count: 3, Stride: 1}})
	require.ErrorIs(t, err, ErrShapeMismatch)
	_, err = v.GetRegion(Selection{{Start: 0, Count: 2, Stride: 3}})
	require.ErrorIs(t, err, ErrShapeMismatch)

	// Fixed dimensions never grow on writes.
	err = v.PutRegion(Selection{{Start: 3, Count: 1, Stride: 1}}, []float32{9})
	require.ErrorIs(t, err, ErrShapeMismatch)

	// Buffer length must match the selection.
	err = v.PutRegion(Selection{{Start: 0, Count: 3, Stride: 1}}, []float32{1, 2})
	require.ErrorIs(t, err, ErrShapeMismatch)
	err = v.Put([]float32{1, 2, 3, 4})
	require.ErrorIs(t, err, ErrShapeMismatch)
}

func TestTypeMismatch(t *testing.T) {
	f := createFile(t)
	root := f.Root()
	_, err := root.AddDimension("x", 3)
	require.NoError(t, err)
	v, err := root.AddVariable("v", Int, []string{"x"})
	require.NoError(t, err)

	// No implicit numeric conversion, not even widening.
	err = v.Put([]int16{1, 2, 3})
	require.ErrorIs(t, err, ErrTypeMismatch)
	err = v.Put([]int64{1, 2, 3})
	require.ErrorIs(t, err, ErrTypeMismatch)
	err = v.Put("strings neither")
	require.ErrorIs(t, err, ErrTypeMismatch)

	_, err = root.AddVariable("bad", Type(-1), nil)
	require.ErrorIs(t, err, ErrTypeMismatch)
}

func TestZeroSelectionPanics(t *testing.T) {
	f := createFile(t)
	root := f.Root()
	_, err := root.AddDimension("x", 3)
	require.NoError(t, err)
	v, err := root.AddVariable("v", Int, []string{"x"})
	require.NoError(t, err)

	require.Panics(t, func() {
		v.GetRegion(Selection{{Start: 0, Count: 0, Stride: 1}})
	})
	require.Panics(t, func() {
		v.PutRegion(Selection{{Start: 0, Count: 1, Stride: 0}}, []int32{1})
	})
}

// Writes define the length of an unlimited axis.
func TestUnlimitedGrowth(t *testing.T) {
	f := createFile(t)
	root := f.Root()
	_, err := root.AddUnlimitedDimension("t")
	require.NoError(t, err)
	v, err := root.AddVariable("temp", Double, []string{"t"})
	require.NoError(t, err)

	// Nothing written yet: empty, not an error.
	got, err := v.Get()
	require.NoError(t, err)
	require.Equal(t, []float64{}, got)

	require.NoError(t, v.PutRegion(Selection{{Start: 0, Count: 2, Stride: 1}},
		[]float64{10.0, 20.0}))
	require.NoError(t, v.PutRegion(Selection{{Start: 2, Count: 1, Stride: 1}},
		[]float64{30.0}))

	got, err = v.Get()
	require.NoError(t, err)
	require.Equal(t, []float64{10.0, 20.0, 30.0}, got)

	n, err := v.Len()
	require.NoError(t, err)
	require.Equal(t, uint64(3), n)

	// The prior region is untouched by the growth.
	got, err = v.GetRegion(Selection{{Start: 0, Count: 2, Stride: 1}})
	require.NoError(t, err)
	require.Equal(t, []float64{10.0, 20.0}, got)

	// Reads past the live extent still fail.
	_, err = v.GetRegion(Selection{{Start: 0, Count: 4, Stride: 1}})
	require.ErrorIs(t, err, ErrShapeMismatch)
}

func TestUnlimitedFullPut(t *testing.T) {
	f := createFile(t)
	root := f.Root()
	_, err := root.AddUnlimitedDimension("t")
	require.NoError(t, err)
	_, err = root.AddDimension("x", 2)
	require.NoError(t, err)
	v, err := root.AddVariable("v", Int, []string{"t", "x"})
	require.NoError(t, err)

	// Six elements over rows of two: three records.
	require.NoError(t, v.Put([]int32{1, 2, 3, 4, 5, 6}))
	shape, err := v.Shape()
	require.NoError(t, err)
	require.Equal(t, []uint64{3, 2}, shape)

	// A ragged buffer is not a whole number of records.
	err = v.Put([]int32{1, 2, 3})
	require.ErrorIs(t, err, ErrShapeMismatch)
}

func TestCharVariable(t *testing.T) {
	f := createFile(t)
	root := f.Root()
	_, err := root.AddDimension("station", 2)
	require.NoError(t, err)
	_, err = root.AddDimension("name_len", 6)
	require.NoError(t, err)
	v, err := root.AddVariable("names", Char, []string{"station", "name_len"})
	require.NoError(t, err)

	// The character axis is hidden from the addressable shape.
	require.Len(t, v.Dimensions(), 1)
	shape, err := v.Shape()
	require.NoError(t, err)
	require.Equal(t, []uint64{2}, shape)

	require.NoError(t, v.Put([]string{"oslo", "bergen"}))
	got, err := v.Get()
	require.NoError(t, err)
	require.Equal(t, []string{"oslo", "bergen"}, got)

	err = v.Put([]string{"toolongname", "x"})
	require.ErrorIs(t, err, ErrShapeMismatch)

	one, err := v.GetRegion(Selection{{Start: 1, Count: 1, Stride: 1}})
	require.NoError(t, err)
	require.Equal(t, []string{"bergen"}, one)
}

func TestVariableListing(t *testing.T) {
	f := createFile(t)
	root := f.Root()
	_, err := root.AddDimension("x", 2)
	require.NoError(t, err)
	for _, name := range []string{"first", "second"} {
		_, err := root.AddVariable(name, Float, []string{"x"})
		require.NoError(t, err)
	}
	vars, err := root.Variables()
	require.NoError(t, err)
	require.Len(t, vars, 2)
	require.Equal(t, "first", vars[0].Name())
	require.Equal(t, "second", vars[1].Name())

	_, err = root.Variable("missing")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestVariableOptions(t *testing.T) {
	f := createFile(t)
	root := f.Root()
	_, err := root.AddDimension("row", 4)
	require.NoError(t, err)
	_, err = root.AddDimension("col", 6)
	require.NoError(t, err)
	v, err := root.AddVariable("m", Double, []string{"row", "col"})
	require.NoError(t, err)

	require.NoError(t, v.SetFillValue(float64(-999)))
	fill, set, err := v.FillValue()
	require.NoError(t, err)
	require.True(t, set)
	require.Equal(t, float64(-999), fill)

	require.NoError(t, v.SetChunking([]uint64{2, 6}))
	require.NoError(t, v.SetCompression(5))
	require.NoError(t, v.SetEndianness(LittleEndian))
	e, err := v.Endianness()
	require.NoError(t, err)
	require.Equal(t, LittleEndian, e)

	err = v.SetChunking([]uint64{2})
	require.ErrorIs(t, err, ErrShapeMismatch)
	err = v.SetFillValue(int32(0))
	require.ErrorIs(t, err, ErrTypeMismatch)

	// Unwritten elements read back as the fill value.
	require.NoError(t, v.PutRegion(Selection{
		{Start: 0, Count: 1, Stride: 1},
		{Start: 0, Count: 6, Stride: 1},
	}, []float64{1, 2, 3, 4, 5, 6}))
	got, err := v.GetRegion(Selection{
		{Start: 3, Count: 1, Stride: 1},
		{Start: 0, Count: 1, Stride: 1},
	})
	require.NoError(t, err)
	require.Equal(t, []float64{-999}, got)
}

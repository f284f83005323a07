package netcdf

// Extent selects Count elements along one axis, starting at Start and
// stepping Stride elements between them.  Stride 1 is contiguous.
type Extent struct {
	Start  uint64
	Count  uint64
	Stride uint64
}

// last is the index of the final element addressed along the axis.
func (e Extent) last() uint64 {
	return e.Start + (e.Count-1)*e.Stride
}

// Selection addresses a rectangular sub-region of a variable, one
// Extent per dimension in storage order.  A full read or write is the
// degenerate selection with Start 0, Count equal to the extent and
// Stride 1 on every axis.
type Selection []Extent

// validate panics on zero counts or strides.  Those are caller bugs,
// not data conditions, and must never reach the engine.
func (s Selection) validate() {
	for _, e := range s {
		if e.Count == 0 {
			panic("netcdf: selection with zero count")
		}
		if e.Stride == 0 {
			panic("netcdf: selection with zero stride")
		}
	}
}

// size is the number of elements the selection addresses.
func (s Selection) size() uint64 {
	n := uint64(1)
	for _, e := range s {
		n *= e.Count
	}
	return n
}

func (s Selection) starts() []uint64 {
	out := make([]uint64, len(s))
	for i, e := range s {
		out[i] = e.Start
	}
	return out
}

func (s Selection) counts() []uint64 {
	out := make([]uint64, len(s))
	for i, e := range s {
		out[i] = e.Count
	}
	return out
}

func (s Selection) strides() []uint64 {
	out := make([]uint64, len(s))
	for i, e := range s {
		out[i] = e.Stride
	}
	return out
}

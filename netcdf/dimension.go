package netcdf

import (
	"github.com/batchatco/go-netcdf/internal/engine"
)

// Dimension is a named axis.  Its length is queried from the engine on
// every use: an unlimited dimension grows when writes run past its
// current length, so a cached extent would go stale.
type Dimension struct {
	file      *File
	ncid      int // a group the dimension is visible from
	id        int
	name      string
	unlimited bool
}

// Name returns the dimension's name.
func (d *Dimension) Name() string {
	return d.name
}

// IsUnlimited reports whether the dimension can grow.
func (d *Dimension) IsUnlimited() bool {
	return d.unlimited
}

// Len returns the current length.  For unlimited dimensions this is the
// high-water mark of all writes so far.
func (d *Dimension) Len() (uint64, error) {
	d.file.ensureOpen()
	_, length, err := engine.InqDim(d.ncid, d.id)
	if err != nil {
		return 0, wrap(err)
	}
	return length, nil
}

package netcdf

import (
	"unsafe"

	"github.com/batchatco/go-thrower"

	"github.com/batchatco/go-netcdf/internal/engine"
)

// Attribute is typed metadata attached to a group or a variable (file
// attributes are the root group's).  Attributes have a length but no
// shape, and no partial writes: every put replaces the whole value.
type Attribute struct {
	file  *File
	ncid  int
	varid int
	name  string
}

// Name returns the attribute's name.
func (a *Attribute) Name() string {
	return a.name
}

// Type returns the stored element type.
func (a *Attribute) Type() (Type, error) {
	a.file.ensureOpen()
	xtype, _, err := engine.InqAtt(a.ncid, a.varid, a.name)
	if err != nil {
		return 0, wrap(err)
	}
	return Type(xtype), nil
}

// Len returns the number of stored values (characters, for char
// attributes).
func (a *Attribute) Len() (uint64, error) {
	a.file.ensureOpen()
	_, n, err := engine.InqAtt(a.ncid, a.varid, a.name)
	if err != nil {
		return 0, wrap(err)
	}
	return n, nil
}

// Value reads the attribute in its stored representation: a string for
// char attributes, a typed slice otherwise, collapsed to a bare scalar
// when a single value is stored.  A stored type outside the supported
// set is a TypeMismatch.
func (a *Attribute) Value() (val any, err error) {
	defer thrower.RecoverError(&err)
	a.file.ensureOpen()
	xtype, n, err := engine.InqAtt(a.ncid, a.varid, a.name)
	if err != nil {
		return nil, wrap(err)
	}
	switch Type(xtype) {
	case Char:
		s, err := engine.GetAttText(a.ncid, a.varid, a.name, n)
		return s, wrap(err)
	case String:
		vals, err := engine.GetAttString(a.ncid, a.varid, a.name, n)
		if err != nil {
			return nil, wrap(err)
		}
		if n == 1 {
			return vals[0], nil
		}
		return vals, nil
	case Byte:
		return getAtt[int8](a, n)
	case UByte:
		return getAtt[uint8](a, n)
	case Short:
		return getAtt[int16](a, n)
	case UShort:
		return getAtt[uint16](a, n)
	case Int:
		return getAtt[int32](a, n)
	case UInt:
		return getAtt[uint32](a, n)
	case Int64:
		return getAtt[int64](a, n)
	case UInt64:
		return getAtt[uint64](a, n)
	case Float:
		return getAtt[float32](a, n)
	case Double:
		return getAtt[float64](a, n)
	}
	return nil, newError(TypeMismatch,
		"attribute %q has unsupported stored type %d", a.name, xtype)
}

func getAtt[T any](a *Attribute, n uint64) (any, error) {
	if n == 0 {
		return []T{}, nil
	}
	buf := make([]T, n)
	err := engine.GetAtt(a.ncid, a.varid, a.name, unsafe.Pointer(&buf[0]))
	if err != nil {
		return nil, wrap(err)
	}
	if n == 1 {
		return buf[0], nil
	}
	return buf, nil
}

func listAttributes(f *File, ncid, varid int) ([]*Attribute, error) {
	f.ensureOpen()
	n, err := engine.InqNatts(ncid, varid)
	if err != nil {
		return nil, wrap(err)
	}
	out := make([]*Attribute, 0, n)
	for i := 0; i < n; i++ {
		name, err := engine.InqAttName(ncid, varid, i)
		if err != nil {
			return nil, wrap(err)
		}
		out = append(out, &Attribute{file: f, ncid: ncid, varid: varid, name: name})
	}
	return out, nil
}

func findAttribute(f *File, ncid, varid int, name string) (*Attribute, error) {
	f.ensureOpen()
	if _, _, err := engine.InqAtt(ncid, varid, name); err != nil {
		return nil, wrap(err)
	}
	return &Attribute{file: f, ncid: ncid, varid: varid, name: name}, nil
}

// putAttribute creates or replaces; the stored type follows the Go
// type of value, with plain strings stored as char attributes.
func putAttribute(f *File, ncid, varid int, name string, value any) (err error) {
	defer thrower.RecoverError(&err)
	f.ensureOpen()
	f.ensureWritable()
	checkName(name)
	switch val := value.(type) {
	case string:
		return wrap(engine.PutAttText(ncid, varid, name, val))
	case []string:
		return wrap(engine.PutAttString(ncid, varid, name, val))
	case int8:
		return putAtt(ncid, varid, name, engine.NC_BYTE, []int8{val})
	case []int8:
		return putAtt(ncid, varid, name, engine.NC_BYTE, val)
	case uint8:
		return putAtt(ncid, varid, name, engine.NC_UBYTE, []uint8{val})
	case []uint8:
		return putAtt(ncid, varid, name, engine.NC_UBYTE, val)
	case int16:
		return putAtt(ncid, varid, name, engine.NC_SHORT, []int16{val})
	case []int16:
		return putAtt(ncid, varid, name, engine.NC_SHORT, val)
	case uint16:
		return putAtt(ncid, varid, name, engine.NC_USHORT, []uint16{val})
	case []uint16:
		return putAtt(ncid, varid, name, engine.NC_USHORT, val)
	case int32:
		return putAtt(ncid, varid, name, engine.NC_INT, []int32{val})
	case []int32:
		return putAtt(ncid, varid, name, engine.NC_INT, val)
	case uint32:
		return putAtt(ncid, varid, name, engine.NC_UINT, []uint32{val})
	case []uint32:
		return putAtt(ncid, varid, name, engine.NC_UINT, val)
	case int64:
		return putAtt(ncid, varid, name, engine.NC_INT64, []int64{val})
	case []int64:
		return putAtt(ncid, varid, name, engine.NC_INT64, val)
	case uint64:
		return putAtt(ncid, varid, name, engine.NC_UINT64, []uint64{val})
	case []uint64:
		return putAtt(ncid, varid, name, engine.NC_UINT64, val)
	case float32:
		return putAtt(ncid, varid, name, engine.NC_FLOAT, []float32{val})
	case []float32:
		return putAtt(ncid, varid, name, engine.NC_FLOAT, val)
	case float64:
		return putAtt(ncid, varid, name, engine.NC_DOUBLE, []float64{val})
	case []float64:
		return putAtt(ncid, varid, name, engine.NC_DOUBLE, val)
	}
	return newError(TypeMismatch, "unsupported attribute value type %T", value)
}

func putAtt[T any](ncid, varid int, name string, xtype int, vals []T) error {
	var p unsafe.Pointer
	if len(vals) > 0 {
		p = unsafe.Pointer(&vals[0])
	}
	return wrap(engine.PutAtt(ncid, varid, name, xtype, uint64(len(vals)), p))
}

func deleteAttribute(f *File, ncid, varid int, name string) (err error) {
	defer thrower.RecoverError(&err)
	f.ensureOpen()
	f.ensureWritable()
	return wrap(engine.DelAtt(ncid, varid, name))
}

func renameAttribute(f *File, ncid, varid int, name, newName string) (err error) {
	defer thrower.RecoverError(&err)
	f.ensureOpen()
	f.ensureWritable()
	checkName(newName)
	return wrap(engine.RenameAtt(ncid, varid, name, newName))
}

// Attributes lists the group's attributes in engine enumeration order.
func (g *Group) Attributes() ([]*Attribute, error) {
	return listAttributes(g.file, g.ncid, engine.NC_GLOBAL)
}

// Attribute finds a group attribute by name.
func (g *Group) Attribute(name string) (*Attribute, error) {
	return findAttribute(g.file, g.ncid, engine.NC_GLOBAL, name)
}

// PutAttribute creates or replaces a group attribute.
func (g *Group) PutAttribute(name string, value any) error {
	return putAttribute(g.file, g.ncid, engine.NC_GLOBAL, name, value)
}

// DeleteAttribute removes a group attribute.
func (g *Group) DeleteAttribute(name string) error {
	return deleteAttribute(g.file, g.ncid, engine.NC_GLOBAL, name)
}

// RenameAttribute renames a group attribute.
func (g *Group) RenameAttribute(name, newName string) error {
	return renameAttribute(g.file, g.ncid, engine.NC_GLOBAL, name, newName)
}

// Attributes lists the variable's attributes in engine enumeration
// order.
func (v *Variable) Attributes() ([]*Attribute, error) {
	return listAttributes(v.file, v.ncid, v.varid)
}

// Attribute finds a variable attribute by name.
func (v *Variable) Attribute(name string) (*Attribute, error) {
	return findAttribute(v.file, v.ncid, v.varid, name)
}

// PutAttribute creates or replaces a variable attribute.
func (v *Variable) PutAttribute(name string, value any) error {
	return putAttribute(v.file, v.ncid, v.varid, name, value)
}

// DeleteAttribute removes a variable attribute.
func (v *Variable) DeleteAttribute(name string) error {
	return deleteAttribute(v.file, v.ncid, v.varid, name)
}

// RenameAttribute renames a variable attribute.
func (v *Variable) RenameAttribute(name, newName string) error {
	return renameAttribute(v.file, v.ncid, v.varid, name, newName)
}

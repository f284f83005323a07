package netcdf

import (
	"errors"
	"strings"

	"github.com/batchatco/go-thrower"

	"github.com/batchatco/go-netcdf/internal"
	"github.com/batchatco/go-netcdf/internal/engine"
)

// Group is one level of the file's namespace tree.  The root group is
// obtained from File.Root; every other Group comes from creation,
// lookup or listing on an existing Group.
type Group struct {
	file *File
	ncid int
	name string
}

// Name returns the group's simple name; the root group is named "/".
func (g *Group) Name() string {
	return g.name
}

// File returns the owning file.
func (g *Group) File() *File {
	return g.file
}

// CreateGroup creates a direct subgroup.
func (g *Group) CreateGroup(name string) (sub *Group, err error) {
	defer thrower.RecoverError(&err)
	g.file.ensureOpen()
	g.file.ensureWritable()
	checkName(name)
	ncid, err := engine.DefGrp(g.ncid, name)
	if err != nil {
		return nil, wrap(err)
	}
	return &Group{file: g.file, ncid: ncid, name: name}, nil
}

// Group finds a subgroup by path.  The path descends one level per
// slash-separated segment; a leading slash starts from the root group.
// The first missing segment yields NotFound.
func (g *Group) Group(path string) (*Group, error) {
	g.file.ensureOpen()
	cur := g
	if strings.HasPrefix(path, "/") {
		cur = g.file.Root()
	}
	for _, segment := range strings.Split(path, "/") {
		if segment == "" {
			continue
		}
		ncid, err := engine.GrpNcid(cur.ncid, segment)
		if err != nil {
			return nil, wrap(err)
		}
		cur = &Group{file: g.file, ncid: ncid, name: segment}
	}
	return cur, nil
}

// Parent returns the enclosing group, or NotFound for the root group.
func (g *Group) Parent() (*Group, error) {
	g.file.ensureOpen()
	parent, err := engine.GrpParent(g.ncid)
	if err != nil {
		return nil, wrap(err)
	}
	name, err := engine.GrpName(parent)
	if err != nil {
		return nil, wrap(err)
	}
	return &Group{file: g.file, ncid: parent, name: name}, nil
}

// Groups lists the direct subgroups in engine enumeration order.
func (g *Group) Groups() ([]*Group, error) {
	g.file.ensureOpen()
	ids, err := engine.InqGrps(g.ncid)
	if err != nil {
		return nil, wrap(err)
	}
	out := make([]*Group, 0, len(ids))
	for _, ncid := range ids {
		name, err := engine.GrpName(ncid)
		if err != nil {
			return nil, wrap(err)
		}
		out = append(out, &Group{file: g.file, ncid: ncid, name: name})
	}
	return out, nil
}

// AddDimension defines a dimension in this group.  A length of zero
// defines an unlimited dimension.
func (g *Group) AddDimension(name string, length uint64) (dim *Dimension, err error) {
	defer thrower.RecoverError(&err)
	g.file.ensureOpen()
	g.file.ensureWritable()
	checkName(name)
	id, err := engine.DefDim(g.ncid, name, length)
	if err != nil {
		return nil, wrap(err)
	}
	return &Dimension{
		file:      g.file,
		ncid:      g.ncid,
		id:        id,
		name:      name,
		unlimited: length == engine.NC_UNLIMITED,
	}, nil
}

// AddUnlimitedDimension defines a growable dimension in this group.
func (g *Group) AddUnlimitedDimension(name string) (*Dimension, error) {
	return g.AddDimension(name, engine.NC_UNLIMITED)
}

// Dimension finds a dimension by name, walking from this group up
// through its ancestors and returning the nearest enclosing
// definition.  Dimensions in sibling groups are never visible.
func (g *Group) Dimension(name string) (*Dimension, error) {
	g.file.ensureOpen()
	return g.findDimension(name)
}

// Dimensions lists the dimensions defined in this group itself, in
// engine enumeration order.
func (g *Group) Dimensions() ([]*Dimension, error) {
	g.file.ensureOpen()
	return g.localDimensions()
}

func (g *Group) localDimensions() ([]*Dimension, error) {
	ids, err := engine.InqDimIDs(g.ncid, false)
	if err != nil {
		return nil, wrap(err)
	}
	unlimited, err := unlimitedSet(g.ncid)
	if err != nil {
		return nil, err
	}
	out := make([]*Dimension, 0, len(ids))
	for _, id := range ids {
		name, _, err := engine.InqDim(g.ncid, id)
		if err != nil {
			return nil, wrap(err)
		}
		out = append(out, &Dimension{
			file:      g.file,
			ncid:      g.ncid,
			id:        id,
			name:      name,
			unlimited: unlimited[id],
		})
	}
	return out, nil
}

// findDimension is the visibility walk: this group first, then each
// ancestor toward the root.  It is not a tree search.
func (g *Group) findDimension(name string) (*Dimension, error) {
	cur := g.ncid
	for {
		ids, err := engine.InqDimIDs(cur, false)
		if err != nil {
			return nil, wrap(err)
		}
		for _, id := range ids {
			dname, _, err := engine.InqDim(cur, id)
			if err != nil {
				return nil, wrap(err)
			}
			if dname != name {
				continue
			}
			unlimited, err := unlimitedSet(cur)
			if err != nil {
				return nil, err
			}
			return &Dimension{
				file:      g.file,
				ncid:      cur,
				id:        id,
				name:      name,
				unlimited: unlimited[id],
			}, nil
		}
		parent, err := engine.GrpParent(cur)
		if err != nil {
			// Root reached.
			break
		}
		cur = parent
	}
	return nil, newError(NotFound, "dimension %q not found", name)
}

// unlimitedSet collects the IDs of every unlimited dimension visible
// from the given group, ancestors included.
func unlimitedSet(ncid int) (map[int]bool, error) {
	out := map[int]bool{}
	cur := ncid
	for {
		ids, err := engine.InqUnlimDims(cur)
		if err != nil {
			return nil, wrap(err)
		}
		for _, id := range ids {
			out[id] = true
		}
		parent, err := engine.GrpParent(cur)
		if err != nil {
			return out, nil
		}
		cur = parent
	}
}

// AddVariable defines a variable over named dimensions.  Each name is
// resolved with the ancestor-chain walk; at most one resolved
// dimension may be unlimited and it must come first.
func (g *Group) AddVariable(name string, t Type, dimNames []string) (v *Variable, err error) {
	defer thrower.RecoverError(&err)
	g.file.ensureOpen()
	g.file.ensureWritable()
	checkName(name)
	if !t.valid() {
		return nil, newError(TypeMismatch, "%v is not a supported variable type", t)
	}
	dims := make([]*Dimension, len(dimNames))
	dimids := make([]int, len(dimNames))
	for i, dimName := range dimNames {
		dim, err := g.findDimension(dimName)
		if err != nil {
			return nil, err
		}
		if dim.unlimited && i != 0 {
			return nil, newError(ShapeMismatch,
				"unlimited dimension %q must be the first dimension", dimName)
		}
		dims[i] = dim
		dimids[i] = dim.id
	}
	varid, err := engine.DefVar(g.ncid, name, int(t), dimids)
	if err != nil {
		return nil, wrap(err)
	}
	return &Variable{
		file:  g.file,
		ncid:  g.ncid,
		varid: varid,
		name:  name,
		dtype: t,
		dims:  dims,
	}, nil
}

// Variable finds a variable in this group by name.
func (g *Group) Variable(name string) (*Variable, error) {
	g.file.ensureOpen()
	varid, err := engine.VarID(g.ncid, name)
	if err != nil {
		return nil, wrap(err)
	}
	return g.variableByID(varid)
}

// Variables lists the variables in this group in engine enumeration
// order.  Variables with stored types outside the supported set are
// skipped with a warning.
func (g *Group) Variables() ([]*Variable, error) {
	g.file.ensureOpen()
	ids, err := engine.InqVarIDs(g.ncid)
	if err != nil {
		return nil, wrap(err)
	}
	out := make([]*Variable, 0, len(ids))
	for _, varid := range ids {
		v, err := g.variableByID(varid)
		if err != nil {
			var ncErr *Error
			if errors.As(err, &ncErr) && ncErr.Kind == TypeMismatch {
				logger.Warnf("skipping variable id %d: %v", varid, err)
				continue
			}
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

func (g *Group) variableByID(varid int) (*Variable, error) {
	name, xtype, dimids, err := engine.InqVar(g.ncid, varid)
	if err != nil {
		return nil, wrap(err)
	}
	t := Type(xtype)
	if !t.valid() {
		return nil, newError(TypeMismatch,
			"variable %q has unsupported stored type %d", name, xtype)
	}
	unlimited, err := unlimitedSet(g.ncid)
	if err != nil {
		return nil, err
	}
	dims := make([]*Dimension, len(dimids))
	for i, id := range dimids {
		dimName, _, err := engine.InqDim(g.ncid, id)
		if err != nil {
			return nil, wrap(err)
		}
		dims[i] = &Dimension{
			file:      g.file,
			ncid:      g.ncid,
			id:        id,
			name:      dimName,
			unlimited: unlimited[id],
		}
	}
	return &Variable{
		file:  g.file,
		ncid:  g.ncid,
		varid: varid,
		name:  name,
		dtype: t,
		dims:  dims,
	}, nil
}

// checkName throws on names the engine would reject, so the caller
// gets a message naming the offender instead of a bare status code.
func checkName(name string) {
	if !internal.IsValidNetCDFName(name) {
		thrower.Throw(newError(Unknown, "%q is not a valid NetCDF name", name))
	}
}

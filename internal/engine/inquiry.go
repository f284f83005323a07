package engine

/*
#include <stdlib.h>
#include <netcdf.h>
*/
import "C"

import "unsafe"

// DefGrp creates a subgroup and returns its ncid.
func DefGrp(parent int, name string) (int, error) {
	mu.Lock()
	defer mu.Unlock()
	cname := C.CString(name)
	defer C.free(unsafe.Pointer(cname))
	var ncid C.int
	if err := check(C.nc_def_grp(C.int(parent), cname, &ncid)); err != nil {
		return 0, err
	}
	return int(ncid), nil
}

// GrpNcid looks up an immediate subgroup by name.
func GrpNcid(parent int, name string) (int, error) {
	mu.Lock()
	defer mu.Unlock()
	cname := C.CString(name)
	defer C.free(unsafe.Pointer(cname))
	var ncid C.int
	if err := check(C.nc_inq_grp_ncid(C.int(parent), cname, &ncid)); err != nil {
		return 0, err
	}
	return int(ncid), nil
}

// GrpName returns a group's simple name ("/" for the root group).
func GrpName(ncid int) (string, error) {
	mu.Lock()
	defer mu.Unlock()
	var buf [C.NC_MAX_NAME + 1]C.char
	if err := check(C.nc_inq_grpname(C.int(ncid), &buf[0])); err != nil {
		return "", err
	}
	return C.GoString(&buf[0]), nil
}

// GrpParent returns the ncid of the enclosing group.  The root group
// has no parent and yields NC_ENOGRP.
func GrpParent(ncid int) (int, error) {
	mu.Lock()
	defer mu.Unlock()
	var parent C.int
	if err := check(C.nc_inq_grp_parent(C.int(ncid), &parent)); err != nil {
		return 0, err
	}
	return int(parent), nil
}

// InqGrps enumerates immediate subgroup ncids in native order.
func InqGrps(ncid int) ([]int, error) {
	mu.Lock()
	defer mu.Unlock()
	var n C.int
	if err := check(C.nc_inq_grps(C.int(ncid), &n, nil)); err != nil {
		return nil, err
	}
	if n == 0 {
		return nil, nil
	}
	ids := make([]C.int, n)
	if err := check(C.nc_inq_grps(C.int(ncid), nil, &ids[0])); err != nil {
		return nil, err
	}
	return ints(ids), nil
}

// DefDim defines a dimension.  A length of NC_UNLIMITED (zero) makes it
// unlimited.
func DefDim(ncid int, name string, length uint64) (int, error) {
	mu.Lock()
	defer mu.Unlock()
	cname := C.CString(name)
	defer C.free(unsafe.Pointer(cname))
	var dimid C.int
	if err := check(C.nc_def_dim(C.int(ncid), cname, C.size_t(length), &dimid)); err != nil {
		return 0, err
	}
	return int(dimid), nil
}

// InqDim returns a dimension's name and current length.  For unlimited
// dimensions the length is live, never cached by this layer.
func InqDim(ncid, dimid int) (string, uint64, error) {
	mu.Lock()
	defer mu.Unlock()
	var buf [C.NC_MAX_NAME + 1]C.char
	var length C.size_t
	if err := check(C.nc_inq_dim(C.int(ncid), C.int(dimid), &buf[0], &length)); err != nil {
		return "", 0, err
	}
	return C.GoString(&buf[0]), uint64(length), nil
}

// InqDimIDs enumerates dimension IDs defined in a group, optionally
// including those inherited from ancestor groups.
func InqDimIDs(ncid int, includeParents bool) ([]int, error) {
	mu.Lock()
	defer mu.Unlock()
	include := C.int(0)
	if includeParents {
		include = 1
	}
	var n C.int
	if err := check(C.nc_inq_dimids(C.int(ncid), &n, nil, include)); err != nil {
		return nil, err
	}
	if n == 0 {
		return nil, nil
	}
	ids := make([]C.int, n)
	if err := check(C.nc_inq_dimids(C.int(ncid), nil, &ids[0], include)); err != nil {
		return nil, err
	}
	return ints(ids), nil
}

// InqUnlimDims enumerates the unlimited dimension IDs visible in a group.
func InqUnlimDims(ncid int) ([]int, error) {
	mu.Lock()
	defer mu.Unlock()
	var n C.int
	if err := check(C.nc_inq_unlimdims(C.int(ncid), &n, nil)); err != nil {
		return nil, err
	}
	if n == 0 {
		return nil, nil
	}
	ids := make([]C.int, n)
	if err := check(C.nc_inq_unlimdims(C.int(ncid), nil, &ids[0])); err != nil {
		return nil, err
	}
	return ints(ids), nil
}

// DefVar defines a variable over previously defined dimensions.
func DefVar(ncid int, name string, xtype int, dimids []int) (int, error) {
	mu.Lock()
	defer mu.Unlock()
	cname := C.CString(name)
	defer C.free(unsafe.Pointer(cname))
	cdims := make([]C.int, len(dimids))
	for i, id := range dimids {
		cdims[i] = C.int(id)
	}
	var dimPtr *C.int
	if len(cdims) > 0 {
		dimPtr = &cdims[0]
	}
	var varid C.int
	err := check(C.nc_def_var(C.int(ncid), cname, C.nc_type(xtype),
		C.int(len(dimids)), dimPtr, &varid))
	if err != nil {
		return 0, err
	}
	return int(varid), nil
}

// VarID looks up a variable by name within one group.
func VarID(ncid int, name string) (int, error) {
	mu.Lock()
	defer mu.Unlock()
	cname := C.CString(name)
	defer C.free(unsafe.Pointer(cname))
	var varid C.int
	if err := check(C.nc_inq_varid(C.int(ncid), cname, &varid)); err != nil {
		return 0, err
	}
	return int(varid), nil
}

// InqVar returns a variable's name, external type and dimension IDs.
func InqVar(ncid, varid int) (string, int, []int, error) {
	mu.Lock()
	defer mu.Unlock()
	var ndims C.int
	if err := check(C.nc_inq_varndims(C.int(ncid), C.int(varid), &ndims)); err != nil {
		return "", 0, nil, err
	}
	var buf [C.NC_MAX_NAME + 1]C.char
	var xtype C.nc_type
	var dimPtr *C.int
	dimids := make([]C.int, ndims)
	if ndims > 0 {
		dimPtr = &dimids[0]
	}
	err := check(C.nc_inq_var(C.int(ncid), C.int(varid), &buf[0], &xtype, nil, dimPtr, nil))
	if err != nil {
		return "", 0, nil, err
	}
	return C.GoString(&buf[0]), int(xtype), ints(dimids), nil
}

// InqVarIDs enumerates the variable IDs in a group in native order.
func InqVarIDs(ncid int) ([]int, error) {
	mu.Lock()
	defer mu.Unlock()
	var n C.int
	if err := check(C.nc_inq_varids(C.int(ncid), &n, nil)); err != nil {
		return nil, err
	}
	if n == 0 {
		return nil, nil
	}
	ids := make([]C.int, n)
	if err := check(C.nc_inq_varids(C.int(ncid), nil, &ids[0])); err != nil {
		return nil, err
	}
	return ints(ids), nil
}

func ints(v []C.int) []int {
	if len(v) == 0 {
		return nil
	}
	out := make([]int, len(v))
	for i, x := range v {
		out[i] = int(x)
	}
	return out
}

package engine

/*
#include <stdlib.h>
#include <netcdf.h>
*/
import "C"

import "unsafe"

// GetVars reads a strided region into p, which must point at a buffer
// of the variable's stored external type.  No conversion happens in the
// C library on this path; type agreement is the caller's contract.
func GetVars(ncid, varid int, start, count, stride []uint64, p unsafe.Pointer) error {
	mu.Lock()
	defer mu.Unlock()
	st, ct, sd := sizeTs(start), sizeTs(count), ptrdiffTs(stride)
	return check(C.nc_get_vars(C.int(ncid), C.int(varid),
		sizePtr(st), sizePtr(ct), ptrdiffPtr(sd), p))
}

// PutVars writes a strided region from p, under the same no-conversion
// contract as GetVars.
func PutVars(ncid, varid int, start, count, stride []uint64, p unsafe.Pointer) error {
	mu.Lock()
	defer mu.Unlock()
	st, ct, sd := sizeTs(start), sizeTs(count), ptrdiffTs(stride)
	return check(C.nc_put_vars(C.int(ncid), C.int(varid),
		sizePtr(st), sizePtr(ct), ptrdiffPtr(sd), p))
}

// GetVarsString reads n variable-length strings from a strided region.
// The C-allocated strings are copied and released before returning.
func GetVarsString(ncid, varid int, start, count, stride []uint64, n int) ([]string, error) {
	if n == 0 {
		return nil, nil
	}
	mu.Lock()
	defer mu.Unlock()
	st, ct, sd := sizeTs(start), sizeTs(count), ptrdiffTs(stride)
	ptrs := make([]*C.char, n)
	err := check(C.nc_get_vars_string(C.int(ncid), C.int(varid),
		sizePtr(st), sizePtr(ct), ptrdiffPtr(sd), &ptrs[0]))
	if err != nil {
		return nil, err
	}
	out := make([]string, n)
	for i, p := range ptrs {
		out[i] = C.GoString(p)
	}
	C.nc_free_string(C.size_t(n), &ptrs[0])
	return out, nil
}

// PutVarsString writes variable-length strings to a strided region.
func PutVarsString(ncid, varid int, start, count, stride []uint64, values []string) error {
	if len(values) == 0 {
		return nil
	}
	mu.Lock()
	defer mu.Unlock()
	st, ct, sd := sizeTs(start), sizeTs(count), ptrdiffTs(stride)
	cstrs := make([]*C.char, len(values))
	for i, s := range values {
		cstrs[i] = C.CString(s)
	}
	defer func() {
		for _, p := range cstrs {
			C.free(unsafe.Pointer(p))
		}
	}()
	return check(C.nc_put_vars_string(C.int(ncid), C.int(varid),
		sizePtr(st), sizePtr(ct), ptrdiffPtr(sd), &cstrs[0]))
}

// InqAtt returns an attribute's external type and length.
func InqAtt(ncid, varid int, name string) (int, uint64, error) {
	mu.Lock()
	defer mu.Unlock()
	cname := C.CString(name)
	defer C.free(unsafe.Pointer(cname))
	var xtype C.nc_type
	var length C.size_t
	err := check(C.nc_inq_att(C.int(ncid), C.int(varid), cname, &xtype, &length))
	if err != nil {
		return 0, 0, err
	}
	return int(xtype), uint64(length), nil
}

// InqAttName returns the name of the attribute at the given index.
func InqAttName(ncid, varid, idx int) (string, error) {
	mu.Lock()
	defer mu.Unlock()
	var buf [C.NC_MAX_NAME + 1]C.char
	err := check(C.nc_inq_attname(C.int(ncid), C.int(varid), C.int(idx), &buf[0]))
	if err != nil {
		return "", err
	}
	return C.GoString(&buf[0]), nil
}

// InqNatts counts the attributes of a variable, or of a group when
// varid is NC_GLOBAL.
func InqNatts(ncid, varid int) (int, error) {
	mu.Lock()
	defer mu.Unlock()
	var n C.int
	var err error
	if varid == NC_GLOBAL {
		err = check(C.nc_inq_natts(C.int(ncid), &n))
	} else {
		err = check(C.nc_inq_varnatts(C.int(ncid), C.int(varid), &n))
	}
	if err != nil {
		return 0, err
	}
	return int(n), nil
}

// GetAtt reads an attribute's values into p, stored type, no conversion.
func GetAtt(ncid, varid int, name string, p unsafe.Pointer) error {
	mu.Lock()
	defer mu.Unlock()
	cname := C.CString(name)
	defer C.free(unsafe.Pointer(cname))
	return check(C.nc_get_att(C.int(ncid), C.int(varid), cname, p))
}

// PutAtt creates or replaces an attribute from p, which holds length
// values of the external type xtype.
func PutAtt(ncid, varid int, name string, xtype int, length uint64, p unsafe.Pointer) error {
	mu.Lock()
	defer mu.Unlock()
	cname := C.CString(name)
	defer C.free(unsafe.Pointer(cname))
	return check(C.nc_put_att(C.int(ncid), C.int(varid), cname,
		C.nc_type(xtype), C.size_t(length), p))
}

// GetAttText reads an NC_CHAR attribute of known length.  Text
// attributes are not NUL-terminated in the file.
func GetAttText(ncid, varid int, name string, length uint64) (string, error) {
	if length == 0 {
		return "", nil
	}
	mu.Lock()
	defer mu.Unlock()
	cname := C.CString(name)
	defer C.free(unsafe.Pointer(cname))
	buf := make([]byte, length)
	err := check(C.nc_get_att_text(C.int(ncid), C.int(varid), cname,
		(*C.char)(unsafe.Pointer(&buf[0]))))
	if err != nil {
		return "", err
	}
	return string(buf), nil
}

// PutAttText creates or replaces an NC_CHAR attribute.
func PutAttText(ncid, varid int, name, value string) error {
	mu.Lock()
	defer mu.Unlock()
	cname := C.CString(name)
	defer C.free(unsafe.Pointer(cname))
	cval := C.CString(value)
	defer C.free(unsafe.Pointer(cval))
	return check(C.nc_put_att_text(C.int(ncid), C.int(varid), cname,
		C.size_t(len(value)), cval))
}

// GetAttString reads an NC_STRING attribute of known length.
func GetAttString(ncid, varid int, name string, length uint64) ([]string, error) {
	if length == 0 {
		return nil, nil
	}
	mu.Lock()
	defer mu.Unlock()
	cname := C.CString(name)
	defer C.free(unsafe.Pointer(cname))
	ptrs := make([]*C.char, length)
	err := check(C.nc_get_att_string(C.int(ncid), C.int(varid), cname, &ptrs[0]))
	if err != nil {
		return nil, err
	}
	out := make([]string, length)
	for i, p := range ptrs {
		out[i] = C.GoString(p)
	}
	C.nc_free_string(C.size_t(length), &ptrs[0])
	return out, nil
}

// PutAttString creates or replaces an NC_STRING attribute.
func PutAttString(ncid, varid int, name string, values []string) error {
	mu.Lock()
	defer mu.Unlock()
	cname := C.CString(name)
	defer C.free(unsafe.Pointer(cname))
	cstrs := make([]*C.char, len(values))
	for i, s := range values {
		cstrs[i] = C.CString(s)
	}
	defer func() {
		for _, p := range cstrs {
			C.free(unsafe.Pointer(p))
		}
	}()
	var p **C.char
	if len(cstrs) > 0 {
		p = &cstrs[0]
	}
	return check(C.nc_put_att_string(C.int(ncid), C.int(varid), cname,
		C.size_t(len(values)), p))
}

// DelAtt removes an attribute.
func DelAtt(ncid, varid int, name string) error {
	mu.Lock()
	defer mu.Unlock()
	cname := C.CString(name)
	defer C.free(unsafe.Pointer(cname))
	return check(C.nc_del_att(C.int(ncid), C.int(varid), cname))
}

// RenameAtt renames an attribute.
func RenameAtt(ncid, varid int, name, newName string) error {
	mu.Lock()
	defer mu.Unlock()
	cname := C.CString(name)
	defer C.free(unsafe.Pointer(cname))
	cnew := C.CString(newName)
	defer C.free(unsafe.Pointer(cnew))
	return check(C.nc_rename_att(C.int(ncid), C.int(varid), cname, cnew))
}

// DefVarDeflate enables zlib compression for a variable.
func DefVarDeflate(ncid, varid int, shuffle bool, level int) error {
	mu.Lock()
	defer mu.Unlock()
	sh := C.int(0)
	if shuffle {
		sh = 1
	}
	deflate := C.int(0)
	if level > 0 {
		deflate = 1
	}
	return check(C.nc_def_var_deflate(C.int(ncid), C.int(varid), sh, deflate, C.int(level)))
}

// DefVarChunking sets the storage layout for a variable.
func DefVarChunking(ncid, varid int, storage int, sizes []uint64) error {
	mu.Lock()
	defer mu.Unlock()
	cs := sizeTs(sizes)
	return check(C.nc_def_var_chunking(C.int(ncid), C.int(varid), C.int(storage), sizePtr(cs)))
}

// DefVarEndian sets the on-disk byte order for a variable.
func DefVarEndian(ncid, varid int, endian int) error {
	mu.Lock()
	defer mu.Unlock()
	return check(C.nc_def_var_endian(C.int(ncid), C.int(varid), C.int(endian)))
}

// InqVarEndian returns the on-disk byte order of a variable.
func InqVarEndian(ncid, varid int) (int, error) {
	mu.Lock()
	defer mu.Unlock()
	var endian C.int
	if err := check(C.nc_inq_var_endian(C.int(ncid), C.int(varid), &endian)); err != nil {
		return 0, err
	}
	return int(endian), nil
}

// DefVarFill sets or disables the fill value for a variable.  When
// noFill is false, p points at one value of the variable's type.
func DefVarFill(ncid, varid int, noFill bool, p unsafe.Pointer) error {
	mu.Lock()
	defer mu.Unlock()
	nf := C.int(0)
	if noFill {
		nf = 1
	}
	return check(C.nc_def_var_fill(C.int(ncid), C.int(varid), nf, p))
}

// InqVarFill reads the fill setting; when filling is enabled the fill
// value is copied into p, which must hold one value of the variable's
// type.
func InqVarFill(ncid, varid int, p unsafe.Pointer) (bool, error) {
	mu.Lock()
	defer mu.Unlock()
	var noFill C.int
	if err := check(C.nc_inq_var_fill(C.int(ncid), C.int(varid), &noFill, p)); err != nil {
		return false, err
	}
	return noFill == 0, nil
}

package netcdf

import "github.com/batchatco/go-netcdf/internal/engine"

// Type identifies the element type of a Variable or Attribute.  The set
// is closed; user-defined (compound, enum, opaque) types stored in a
// file are reported as a TypeMismatch when accessed.
type Type int

const (
	Byte   = Type(engine.NC_BYTE)   // int8
	Char   = Type(engine.NC_CHAR)   // text, one string per row
	Short  = Type(engine.NC_SHORT)  // int16
	Int    = Type(engine.NC_INT)    // int32
	Float  = Type(engine.NC_FLOAT)  // float32
	Double = Type(engine.NC_DOUBLE) // float64
	UByte  = Type(engine.NC_UBYTE)  // uint8
	UShort = Type(engine.NC_USHORT) // uint16
	UInt   = Type(engine.NC_UINT)   // uint32
	Int64  = Type(engine.NC_INT64)  // int64
	UInt64 = Type(engine.NC_UINT64) // uint64
	String = Type(engine.NC_STRING) // variable-length string
)

// String returns the CDL name of the type.
func (t Type) String() string {
	switch t {
	case Byte:
		return "byte"
	case Char:
		return "char"
	case Short:
		return "short"
	case Int:
		return "int"
	case Float:
		return "float"
	case Double:
		return "double"
	case UByte:
		return "ubyte"
	case UShort:
		return "ushort"
	case UInt:
		return "uint"
	case Int64:
		return "int64"
	case UInt64:
		return "uint64"
	case String:
		return "string"
	}
	return "unknown"
}

// GoType returns the Go type the values of a variable or attribute of
// this type are presented as.
func (t Type) GoType() string {
	switch t {
	case Byte:
		return "int8"
	case Short:
		return "int16"
	case Int:
		return "int32"
	case Float:
		return "float32"
	case Double:
		return "float64"
	case UByte:
		return "uint8"
	case UShort:
		return "uint16"
	case UInt:
		return "uint32"
	case Int64:
		return "int64"
	case UInt64:
		return "uint64"
	case Char, String:
		return "string"
	}
	return "unknown"
}

func (t Type) valid() bool {
	switch t {
	case Byte, Char, Short, Int, Float, Double,
		UByte, UShort, UInt, Int64, UInt64, String:
		return true
	}
	return false
}

// numeric reports whether values are fixed-size numbers, the types the
// typeless native get/put path can move without translation.
func (t Type) numeric() bool {
	return t.valid() && t != Char && t != String
}

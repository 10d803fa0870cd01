// Package lsxtype maps raw LSX type tokens to canonical type names.
//
// Attribute elements carry their type either symbolically (type="FixedString") or as
// the format's data-type ordinal (type="22"). Resolve normalizes both spellings to one
// canonical Name so later stages dispatch on a single vocabulary.
package lsxtype

// Name is a canonical attribute type name.
type Name string

const (
	None               Name = "None"
	UInt8              Name = "uint8"
	Int16              Name = "int16"
	UInt16             Name = "uint16"
	Int32              Name = "int32"
	UInt32             Name = "uint32"
	Float              Name = "float"
	Double             Name = "double"
	IVec2              Name = "ivec2"
	IVec3              Name = "ivec3"
	IVec4              Name = "ivec4"
	FVec2              Name = "fvec2"
	FVec3              Name = "fvec3"
	FVec4              Name = "fvec4"
	Mat2x2             Name = "mat2x2"
	Mat3x3             Name = "mat3x3"
	Mat3x4             Name = "mat3x4"
	Mat4x3             Name = "mat4x3"
	Mat4x4             Name = "mat4x4"
	Bool               Name = "bool"
	String             Name = "string"
	Path               Name = "path"
	FixedString        Name = "FixedString"
	LSString           Name = "LSString"
	UInt64             Name = "uint64"
	ScratchBuffer      Name = "ScratchBuffer"
	OldInt64           Name = "old_int64"
	Int8               Name = "int8"
	TranslatedString   Name = "TranslatedString"
	WString            Name = "WString"
	LSWString          Name = "LSWString"
	GUID               Name = "guid"
	Int64              Name = "int64"
	TranslatedFSString Name = "TranslatedFSString"
)

// defaultOrdinals is indexed by the format's data-type ordinal.
var defaultOrdinals = [...]Name{
	None,
	UInt8,
	Int16,
	UInt16,
	Int32,
	UInt32,
	Float,
	Double,
	IVec2,
	IVec3,
	IVec4,
	FVec2,
	FVec3,
	FVec4,
	Mat2x2,
	Mat3x3,
	Mat3x4,
	Mat4x3,
	Mat4x4,
	Bool,
	String,
	Path,
	FixedString,
	LSString,
	UInt64,
	ScratchBuffer,
	OldInt64,
	Int8,
	TranslatedString,
	WString,
	LSWString,
	GUID,
	Int64,
	TranslatedFSString,
}

// MaxDefaultOrdinal is the highest ordinal in the built-in table.
const MaxDefaultOrdinal = len(defaultOrdinals) - 1

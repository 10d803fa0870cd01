package attrvalue

import (
	"fmt"
	"math"
	"slices"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/jacoelho/lsx/pkg/lsxtype"
)

// Kind identifies the variant held by a Value.
type Kind uint8

const (
	KindInvalid Kind = iota
	KindBool
	KindInt8
	KindInt16
	KindInt32
	KindInt64
	KindUint8
	KindUint16
	KindUint32
	KindUint64
	KindFloat32
	KindFloat64
	KindGUID
	KindVector
	KindString
	KindRaw
)

var kindNames = [...]string{
	KindInvalid: "Invalid",
	KindBool:    "Bool",
	KindInt8:    "Int8",
	KindInt16:   "Int16",
	KindInt32:   "Int32",
	KindInt64:   "Int64",
	KindUint8:   "Uint8",
	KindUint16:  "Uint16",
	KindUint32:  "Uint32",
	KindUint64:  "Uint64",
	KindFloat32: "Float32",
	KindFloat64: "Float64",
	KindGUID:    "GUID",
	KindVector:  "Vector",
	KindString:  "String",
	KindRaw:     "Raw",
}

// String returns a stable label for the kind.
func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "Kind(" + strconv.Itoa(int(k)) + ")"
}

// StringTag discriminates the text-valued variants. All tags behave as plain text;
// the tag preserves what the format meant by the field.
type StringTag uint8

const (
	TagPlain StringTag = iota
	TagFixed
	TagLS
	TagTranslated
)

// String returns the format's name for the tag.
func (t StringTag) String() string {
	switch t {
	case TagFixed:
		return "FixedString"
	case TagLS:
		return "LSString"
	case TagTranslated:
		return "TranslatedString"
	default:
		return "PlainString"
	}
}

// Value is an immutable typed attribute value.
//
// The zero Value has KindInvalid. Accessors report ok=false when called on the wrong
// variant instead of coercing.
type Value struct {
	typ  lsxtype.Name
	text string
	vec  []float64
	i    int64
	u    uint64
	f    float64
	guid uuid.UUID
	kind Kind
	tag  StringTag
	b    bool
}

func Bool(v bool) Value { return Value{kind: KindBool, typ: lsxtype.Bool, b: v} }

func Int8(v int8) Value   { return Value{kind: KindInt8, typ: lsxtype.Int8, i: int64(v)} }
func Int16(v int16) Value { return Value{kind: KindInt16, typ: lsxtype.Int16, i: int64(v)} }
func Int32(v int32) Value { return Value{kind: KindInt32, typ: lsxtype.Int32, i: int64(v)} }
func Int64(v int64) Value { return Value{kind: KindInt64, typ: lsxtype.Int64, i: v} }

func Uint8(v uint8) Value   { return Value{kind: KindUint8, typ: lsxtype.UInt8, u: uint64(v)} }
func Uint16(v uint16) Value { return Value{kind: KindUint16, typ: lsxtype.UInt16, u: uint64(v)} }
func Uint32(v uint32) Value { return Value{kind: KindUint32, typ: lsxtype.UInt32, u: uint64(v)} }
func Uint64(v uint64) Value { return Value{kind: KindUint64, typ: lsxtype.UInt64, u: v} }

func Float32(v float32) Value { return Value{kind: KindFloat32, typ: lsxtype.Float, f: float64(v)} }
func Float64(v float64) Value { return Value{kind: KindFloat64, typ: lsxtype.Double, f: v} }

func GUID(v uuid.UUID) Value { return Value{kind: KindGUID, typ: lsxtype.GUID, guid: v} }

// Vector builds a vector or matrix value of canonical type typ.
func Vector(typ lsxtype.Name, components ...float64) Value {
	return Value{kind: KindVector, typ: typ, vec: slices.Clone(components)}
}

// String builds plain text of type string.
func String(s string) Value { return tagged(lsxtype.String, TagPlain, s) }

// FixedString builds an identifier-like string.
func FixedString(s string) Value { return tagged(lsxtype.FixedString, TagFixed, s) }

// LSString builds an engine string.
func LSString(s string) Value { return tagged(lsxtype.LSString, TagLS, s) }

// TranslatedString builds a localization handle.
func TranslatedString(handle string) Value {
	return tagged(lsxtype.TranslatedString, TagTranslated, handle)
}

// Raw carries text whose type could not be resolved. typ is the unresolved token.
func Raw(typ, text string) Value {
	return Value{kind: KindRaw, typ: lsxtype.Name(typ), text: text}
}

func tagged(typ lsxtype.Name, tag StringTag, s string) Value {
	return Value{kind: KindString, typ: typ, tag: tag, text: s}
}

// Kind returns the variant.
func (v Value) Kind() Kind { return v.kind }

// Type returns the canonical type the value was decoded from.
func (v Value) Type() lsxtype.Name { return v.typ }

// IsValid reports whether v holds a variant.
func (v Value) IsValid() bool { return v.kind != KindInvalid }

// Bool returns the boolean payload.
func (v Value) Bool() (bool, bool) {
	return v.b, v.kind == KindBool
}

// Int returns the payload of the signed integer kinds.
func (v Value) Int() (int64, bool) {
	switch v.kind {
	case KindInt8, KindInt16, KindInt32, KindInt64:
		return v.i, true
	}
	return 0, false
}

// Uint returns the payload of the unsigned integer kinds.
func (v Value) Uint() (uint64, bool) {
	switch v.kind {
	case KindUint8, KindUint16, KindUint32, KindUint64:
		return v.u, true
	}
	return 0, false
}

// Float returns the payload of Float32 and Float64.
func (v Value) Float() (float64, bool) {
	switch v.kind {
	case KindFloat32, KindFloat64:
		return v.f, true
	}
	return 0, false
}

// GUID returns the GUID payload.
func (v Value) GUID() (uuid.UUID, bool) {
	return v.guid, v.kind == KindGUID
}

// Vector returns a copy of the vector components.
func (v Value) Vector() ([]float64, bool) {
	if v.kind != KindVector {
		return nil, false
	}
	return slices.Clone(v.vec), true
}

// Text returns the text of a String value, whatever its tag.
func (v Value) Text() (string, bool) {
	if v.kind != KindString {
		return "", false
	}
	return v.text, true
}

// StringTag returns the discriminator of a String value.
func (v Value) StringTag() (StringTag, bool) {
	if v.kind != KindString {
		return TagPlain, false
	}
	return v.tag, true
}

// RawText returns the text of a Raw value.
func (v Value) RawText() (string, bool) {
	if v.kind != KindRaw {
		return "", false
	}
	return v.text, true
}

// Lexical renders the value in the format's textual form; decoding the result with
// Type() yields an equal Value.
func (v Value) Lexical() string {
	switch v.kind {
	case KindBool:
		if v.b {
			return "True"
		}
		return "False"
	case KindInt8, KindInt16, KindInt32, KindInt64:
		return strconv.FormatInt(v.i, 10)
	case KindUint8, KindUint16, KindUint32, KindUint64:
		return strconv.FormatUint(v.u, 10)
	case KindFloat32:
		return strconv.FormatFloat(v.f, 'g', -1, 32)
	case KindFloat64:
		return strconv.FormatFloat(v.f, 'g', -1, 64)
	case KindGUID:
		return v.guid.String()
	case KindVector:
		parts := make([]string, len(v.vec))
		for i, c := range v.vec {
			parts[i] = strconv.FormatFloat(c, 'f', -1, 64)
		}
		return strings.Join(parts, " ")
	case KindString, KindRaw:
		return v.text
	}
	return ""
}

// String formats the value with its variant for debugging, e.g. FixedString("ABC").
func (v Value) String() string {
	switch v.kind {
	case KindInvalid:
		return "Invalid"
	case KindString:
		return fmt.Sprintf("%s(%q)", v.tag, v.text)
	case KindRaw:
		return fmt.Sprintf("Raw[%s](%q)", v.typ, v.text)
	case KindVector:
		return fmt.Sprintf("Vector[%s](%s)", v.typ, v.Lexical())
	}
	return fmt.Sprintf("%s(%s)", v.kind, v.Lexical())
}

// Interface returns the payload as a native Go value.
func (v Value) Interface() any {
	switch v.kind {
	case KindBool:
		return v.b
	case KindInt8:
		return int8(v.i)
	case KindInt16:
		return int16(v.i)
	case KindInt32:
		return int32(v.i)
	case KindInt64:
		return v.i
	case KindUint8:
		return uint8(v.u)
	case KindUint16:
		return uint16(v.u)
	case KindUint32:
		return uint32(v.u)
	case KindUint64:
		return v.u
	case KindFloat32:
		return float32(v.f)
	case KindFloat64:
		return v.f
	case KindGUID:
		return v.guid.String()
	case KindVector:
		return slices.Clone(v.vec)
	case KindString, KindRaw:
		return v.text
	}
	return nil
}

// Equal reports whether v and o hold the same variant, type and payload.
// Floats compare by bit pattern so NaN payloads round-trip as equal.
func (v Value) Equal(o Value) bool {
	if v.kind != o.kind || v.typ != o.typ {
		return false
	}
	switch v.kind {
	case KindInvalid:
		return true
	case KindBool:
		return v.b == o.b
	case KindInt8, KindInt16, KindInt32, KindInt64:
		return v.i == o.i
	case KindUint8, KindUint16, KindUint32, KindUint64:
		return v.u == o.u
	case KindFloat32, KindFloat64:
		return math.Float64bits(v.f) == math.Float64bits(o.f)
	case KindGUID:
		return v.guid == o.guid
	case KindVector:
		return slices.EqualFunc(v.vec, o.vec, func(a, b float64) bool {
			return math.Float64bits(a) == math.Float64bits(b)
		})
	case KindString:
		return v.tag == o.tag && v.text == o.text
	case KindRaw:
		return v.text == o.text
	}
	return false
}

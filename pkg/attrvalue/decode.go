// Package attrvalue decodes raw attribute text into typed values.
//
// Decode is pure: it dispatches on the canonical type name produced by lsxtype and
// either returns a Value or an *errors.DecodeError describing why the text does not
// fit the declared type.
package attrvalue

import (
	"errors"
	"strconv"

	"github.com/google/uuid"

	lsxerrors "github.com/jacoelho/lsx/errors"
	"github.com/jacoelho/lsx/pkg/lsxtype"
)

type decodeFunc func(typ lsxtype.Name, raw string) (Value, error)

func decoderFor[T any](parse func(string) (T, error), newValue func(lsxtype.Name, T) Value) decodeFunc {
	return func(typ lsxtype.Name, raw string) (Value, error) {
		native, err := parse(raw)
		if err != nil {
			return Value{}, err
		}
		return newValue(typ, native), nil
	}
}

func textDecoder(tag StringTag) decodeFunc {
	return func(typ lsxtype.Name, raw string) (Value, error) {
		return tagged(typ, tag, raw), nil
	}
}

func signedValue(kind Kind) func(lsxtype.Name, int64) Value {
	return func(typ lsxtype.Name, v int64) Value { return Value{kind: kind, typ: typ, i: v} }
}

func unsignedValue(kind Kind) func(lsxtype.Name, uint64) Value {
	return func(typ lsxtype.Name, v uint64) Value { return Value{kind: kind, typ: typ, u: v} }
}

func vectorValue(typ lsxtype.Name, v []float64) Value {
	return Value{kind: KindVector, typ: typ, vec: v}
}

// decoders maps canonical type names to their decode rule.
var decoders = map[lsxtype.Name]decodeFunc{
	lsxtype.Bool: decoderFor(ParseBool, func(typ lsxtype.Name, v bool) Value {
		return Value{kind: KindBool, typ: typ, b: v}
	}),

	lsxtype.Int8:     decoderFor(parseSigned(8), signedValue(KindInt8)),
	lsxtype.Int16:    decoderFor(parseSigned(16), signedValue(KindInt16)),
	lsxtype.Int32:    decoderFor(parseSigned(32), signedValue(KindInt32)),
	lsxtype.Int64:    decoderFor(parseSigned(64), signedValue(KindInt64)),
	lsxtype.OldInt64: decoderFor(parseSigned(64), signedValue(KindInt64)),
	lsxtype.UInt8:    decoderFor(parseUnsigned(8), unsignedValue(KindUint8)),
	lsxtype.UInt16:   decoderFor(parseUnsigned(16), unsignedValue(KindUint16)),
	lsxtype.UInt32:   decoderFor(parseUnsigned(32), unsignedValue(KindUint32)),
	lsxtype.UInt64:   decoderFor(parseUnsigned(64), unsignedValue(KindUint64)),

	lsxtype.Float: decoderFor(ParseFloat32, func(typ lsxtype.Name, v float32) Value {
		return Value{kind: KindFloat32, typ: typ, f: float64(v)}
	}),
	lsxtype.Double: decoderFor(ParseFloat64, func(typ lsxtype.Name, v float64) Value {
		return Value{kind: KindFloat64, typ: typ, f: v}
	}),

	lsxtype.GUID: decoderFor(ParseGUID, func(typ lsxtype.Name, v uuid.UUID) Value {
		return Value{kind: KindGUID, typ: typ, guid: v}
	}),

	lsxtype.IVec2:  decoderFor(parseVector(2, true), vectorValue),
	lsxtype.IVec3:  decoderFor(parseVector(3, true), vectorValue),
	lsxtype.IVec4:  decoderFor(parseVector(4, true), vectorValue),
	lsxtype.FVec2:  decoderFor(parseVector(2, false), vectorValue),
	lsxtype.FVec3:  decoderFor(parseVector(3, false), vectorValue),
	lsxtype.FVec4:  decoderFor(parseVector(4, false), vectorValue),
	lsxtype.Mat2x2: decoderFor(parseVector(4, false), vectorValue),
	lsxtype.Mat3x3: decoderFor(parseVector(9, false), vectorValue),
	lsxtype.Mat3x4: decoderFor(parseVector(12, false), vectorValue),
	lsxtype.Mat4x3: decoderFor(parseVector(12, false), vectorValue),
	lsxtype.Mat4x4: decoderFor(parseVector(16, false), vectorValue),

	lsxtype.String:             textDecoder(TagPlain),
	lsxtype.Path:               textDecoder(TagPlain),
	lsxtype.WString:            textDecoder(TagPlain),
	lsxtype.LSWString:          textDecoder(TagPlain),
	lsxtype.FixedString:        textDecoder(TagFixed),
	lsxtype.LSString:           textDecoder(TagLS),
	lsxtype.TranslatedString:   textDecoder(TagTranslated),
	lsxtype.TranslatedFSString: textDecoder(TagTranslated),

	lsxtype.ScratchBuffer: func(typ lsxtype.Name, raw string) (Value, error) {
		return Raw(string(typ), raw), nil
	},
}

// Decode converts raw text for attribute name into a Value of canonicalType.
//
// A canonical type consisting only of digits is an ordinal the resolver did not know;
// its text is carried as Raw. A symbolic type without a decode rule yields an
// UnknownType error, and text that does not parse yields DecodeFormat or
// DecodeOverflow.
func Decode(name, canonicalType, raw string) (Value, error) {
	if lsxtype.IsOrdinal(canonicalType) {
		return Raw(canonicalType, raw), nil
	}
	typ := lsxtype.Name(canonicalType)
	decode, ok := decoders[typ]
	if !ok {
		return Value{}, lsxerrors.NewDecodeError(lsxerrors.ErrUnknownType, name, canonicalType, raw, nil)
	}
	v, err := decode(typ, raw)
	if err != nil {
		code := lsxerrors.ErrDecodeFormat
		if errors.Is(err, strconv.ErrRange) {
			code = lsxerrors.ErrDecodeOverflow
		}
		return Value{}, lsxerrors.NewDecodeError(code, name, canonicalType, raw, err)
	}
	return v, nil
}

// Supported reports whether canonicalType has a decode rule.
func Supported(canonicalType string) bool {
	_, ok := decoders[lsxtype.Name(canonicalType)]
	return ok
}

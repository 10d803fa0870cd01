package attrvalue

import (
	"math"
	"testing"

	"github.com/google/uuid"

	lsxerrors "github.com/jacoelho/lsx/errors"
	"github.com/jacoelho/lsx/pkg/lsxtype"
)

func TestDecodeValid(t *testing.T) {
	guid := uuid.MustParse("6f1c3b2e-0d7a-4c55-9a0e-2b1f4e8d9c01")
	tests := []struct {
		want Value
		typ  string
		raw  string
	}{
		{typ: "bool", raw: "True", want: Bool(true)},
		{typ: "bool", raw: "false", want: Bool(false)},
		{typ: "bool", raw: "1", want: Bool(true)},
		{typ: "bool", raw: "0", want: Bool(false)},
		{typ: "int8", raw: "-128", want: Int8(-128)},
		{typ: "int16", raw: "32767", want: Int16(32767)},
		{typ: "int32", raw: " 42 ", want: Int32(42)},
		{typ: "int64", raw: "-9223372036854775808", want: Int64(math.MinInt64)},
		{typ: "uint8", raw: "255", want: Uint8(255)},
		{typ: "uint16", raw: "65535", want: Uint16(65535)},
		{typ: "uint32", raw: "4294967295", want: Uint32(math.MaxUint32)},
		{typ: "uint64", raw: "18446744073709551615", want: Uint64(math.MaxUint64)},
		{typ: "float", raw: "1.5", want: Float32(1.5)},
		{typ: "double", raw: "-2.25e3", want: Float64(-2250)},
		{typ: "double", raw: ".5", want: Float64(0.5)},
		{typ: "double", raw: "+2.", want: Float64(2)},
		{typ: "float", raw: "-Inf", want: Float32(float32(math.Inf(-1)))},
		{typ: "guid", raw: "6f1c3b2e-0d7a-4c55-9a0e-2b1f4e8d9c01", want: GUID(guid)},
		{typ: "guid", raw: "{6F1C3B2E-0D7A-4C55-9A0E-2B1F4E8D9C01}", want: GUID(guid)},
		{typ: "fvec3", raw: "1 2.5 -3", want: Vector(lsxtype.FVec3, 1, 2.5, -3)},
		{typ: "ivec2", raw: "4  -5", want: Vector(lsxtype.IVec2, 4, -5)},
		{typ: "mat2x2", raw: "1 0 0 1", want: Vector(lsxtype.Mat2x2, 1, 0, 0, 1)},
		{typ: "string", raw: " keep spaces ", want: String(" keep spaces ")},
		{typ: "FixedString", raw: "ABC123", want: FixedString("ABC123")},
		{typ: "LSString", raw: "Some text", want: LSString("Some text")},
		{typ: "TranslatedString", raw: "h123abc", want: TranslatedString("h123abc")},
		{typ: "ScratchBuffer", raw: "AAEC", want: Raw("ScratchBuffer", "AAEC")},
		{typ: "77", raw: "anything", want: Raw("77", "anything")},
	}
	for _, tt := range tests {
		t.Run(tt.typ+"/"+tt.raw, func(t *testing.T) {
			got, err := Decode("Field", tt.typ, tt.raw)
			if err != nil {
				t.Fatalf("Decode() error = %v", err)
			}
			if !got.Equal(tt.want) {
				t.Fatalf("Decode() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestDecodeKeepsCanonicalType(t *testing.T) {
	tests := []struct {
		typ  string
		kind Kind
		tag  StringTag
	}{
		{typ: "path", kind: KindString, tag: TagPlain},
		{typ: "WString", kind: KindString, tag: TagPlain},
		{typ: "LSWString", kind: KindString, tag: TagPlain},
		{typ: "TranslatedFSString", kind: KindString, tag: TagTranslated},
		{typ: "old_int64", kind: KindInt64},
	}
	for _, tt := range tests {
		got, err := Decode("Field", tt.typ, "7")
		if err != nil {
			t.Fatalf("Decode(%s) error = %v", tt.typ, err)
		}
		if got.Kind() != tt.kind {
			t.Fatalf("Decode(%s) kind = %s, want %s", tt.typ, got.Kind(), tt.kind)
		}
		if string(got.Type()) != tt.typ {
			t.Fatalf("Decode(%s) type = %s", tt.typ, got.Type())
		}
		if tag, ok := got.StringTag(); ok && tag != tt.tag {
			t.Fatalf("Decode(%s) tag = %s, want %s", tt.typ, tag, tt.tag)
		}
	}
}

func TestDecodeErrors(t *testing.T) {
	tests := []struct {
		typ  string
		raw  string
		code lsxerrors.ErrorCode
	}{
		{typ: "None", raw: "x", code: lsxerrors.ErrUnknownType},
		{typ: "quaternion", raw: "1 2 3 4", code: lsxerrors.ErrUnknownType},
		{typ: "bool", raw: "yes", code: lsxerrors.ErrDecodeFormat},
		{typ: "int32", raw: "12abc", code: lsxerrors.ErrDecodeFormat},
		{typ: "int32", raw: "", code: lsxerrors.ErrDecodeFormat},
		{typ: "int8", raw: "128", code: lsxerrors.ErrDecodeOverflow},
		{typ: "uint8", raw: "256", code: lsxerrors.ErrDecodeOverflow},
		{typ: "uint16", raw: "-1", code: lsxerrors.ErrDecodeFormat},
		{typ: "int64", raw: "9223372036854775808", code: lsxerrors.ErrDecodeOverflow},
		{typ: "float", raw: "1,5", code: lsxerrors.ErrDecodeFormat},
		{typ: "double", raw: "1e400", code: lsxerrors.ErrDecodeOverflow},
		{typ: "double", raw: "0x1p3", code: lsxerrors.ErrDecodeFormat},
		{typ: "double", raw: "1_0", code: lsxerrors.ErrDecodeFormat},
		{typ: "float", raw: "0x1_0p0", code: lsxerrors.ErrDecodeFormat},
		{typ: "float", raw: "inf", code: lsxerrors.ErrDecodeFormat},
		{typ: "double", raw: "nan", code: lsxerrors.ErrDecodeFormat},
		{typ: "double", raw: "Infinity", code: lsxerrors.ErrDecodeFormat},
		{typ: "double", raw: ".", code: lsxerrors.ErrDecodeFormat},
		{typ: "double", raw: "1e", code: lsxerrors.ErrDecodeFormat},
		{typ: "fvec3", raw: "1 0x2 3", code: lsxerrors.ErrDecodeFormat},
		{typ: "fvec2", raw: "1_5 2", code: lsxerrors.ErrDecodeFormat},
		{typ: "guid", raw: "6f1c3b2e0d7a4c559a0e2b1f4e8d9c01", code: lsxerrors.ErrDecodeFormat},
		{typ: "guid", raw: "zz1c3b2e-0d7a-4c55-9a0e-2b1f4e8d9c01", code: lsxerrors.ErrDecodeFormat},
		{typ: "fvec3", raw: "1 2", code: lsxerrors.ErrDecodeFormat},
		{typ: "ivec2", raw: "1 2.5", code: lsxerrors.ErrDecodeFormat},
	}
	for _, tt := range tests {
		t.Run(tt.typ+"/"+tt.raw, func(t *testing.T) {
			_, err := Decode("Field", tt.typ, tt.raw)
			if err == nil {
				t.Fatalf("Decode() error = nil, want %s", tt.code)
			}
			decodeErr, ok := lsxerrors.AsDecodeError(err)
			if !ok {
				t.Fatalf("Decode() error = %T, want *errors.DecodeError", err)
			}
			if decodeErr.Code != tt.code {
				t.Fatalf("Decode() code = %s, want %s", decodeErr.Code, tt.code)
			}
			if decodeErr.Attribute != "Field" || decodeErr.Type != tt.typ {
				t.Fatalf("Decode() context = (%q, %q)", decodeErr.Attribute, decodeErr.Type)
			}
		})
	}
}

func TestLexicalRoundTrip(t *testing.T) {
	values := []Value{
		Bool(true),
		Bool(false),
		Int8(-7),
		Int64(math.MaxInt64),
		Uint32(123456),
		Uint64(math.MaxUint64),
		Float32(0.1),
		Float32(float32(math.Inf(-1))),
		Float64(math.Pi),
		Float64(1e300),
		GUID(uuid.MustParse("00000000-0000-0000-0000-00000000002a")),
		Vector(lsxtype.FVec4, 0.1, 1e-9, 12345678.5, -0),
		Vector(lsxtype.IVec3, 1000000, -2, 3),
		String("plain"),
		FixedString("fixed"),
		LSString("ls"),
		TranslatedString("h1"),
		Raw("99", "opaque"),
	}
	for _, v := range values {
		got, err := Decode("Field", string(v.Type()), v.Lexical())
		if err != nil {
			t.Fatalf("Decode(%s, %q) error = %v", v.Type(), v.Lexical(), err)
		}
		if !got.Equal(v) {
			t.Fatalf("round trip %v -> %q -> %v", v, v.Lexical(), got)
		}
	}
}

func TestAccessorsRejectOtherKinds(t *testing.T) {
	v := FixedString("ABC")
	if _, ok := v.Int(); ok {
		t.Fatalf("Int() ok on string value")
	}
	if _, ok := v.RawText(); ok {
		t.Fatalf("RawText() ok on string value")
	}
	if text, ok := v.Text(); !ok || text != "ABC" {
		t.Fatalf("Text() = (%q, %v), want (ABC, true)", text, ok)
	}
	if tag, ok := v.StringTag(); !ok || tag != TagFixed {
		t.Fatalf("StringTag() = (%s, %v), want (FixedString, true)", tag, ok)
	}
	raw := Raw("99", "r")
	if _, ok := raw.Text(); ok {
		t.Fatalf("Text() ok on raw value")
	}
	var zero Value
	if zero.IsValid() {
		t.Fatalf("zero Value IsValid() = true")
	}
}

func TestVectorIsCopied(t *testing.T) {
	comps := []float64{1, 2, 3}
	v := Vector(lsxtype.FVec3, comps...)
	comps[0] = 9
	got, _ := v.Vector()
	if got[0] != 1 {
		t.Fatalf("Vector() shares caller slice")
	}
	got[1] = 9
	again, _ := v.Vector()
	if again[1] != 2 {
		t.Fatalf("Vector() exposes internal slice")
	}
}

func TestValueString(t *testing.T) {
	tests := []struct {
		want string
		v    Value
	}{
		{v: FixedString("ABC123"), want: `FixedString("ABC123")`},
		{v: TranslatedString("h1"), want: `TranslatedString("h1")`},
		{v: Int32(5), want: "Int32(5)"},
		{v: Bool(true), want: "Bool(True)"},
		{v: Raw("99", "x"), want: `Raw[99]("x")`},
		{v: Value{}, want: "Invalid"},
	}
	for _, tt := range tests {
		if got := tt.v.String(); got != tt.want {
			t.Fatalf("String() = %q, want %q", got, tt.want)
		}
	}
}

func TestSupported(t *testing.T) {
	if !Supported("FixedString") {
		t.Fatalf("Supported(FixedString) = false")
	}
	if Supported("None") {
		t.Fatalf("Supported(None) = true")
	}
}

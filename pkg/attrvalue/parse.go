package attrvalue

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"
)

var (
	errEmpty          = errors.New("empty string")
	errGUIDForm       = errors.New("not a hyphenated GUID")
	errComponentCount = errors.New("wrong number of components")
	errNotDecimal     = errors.New("not a decimal number")
)

// ParseBool parses the format's boolean spellings: True/False in any case, or 1/0.
func ParseBool(lexical string) (bool, error) {
	lexical = trimSpace(lexical)
	switch {
	case lexical == "1", strings.EqualFold(lexical, "true"):
		return true, nil
	case lexical == "0", strings.EqualFold(lexical, "false"):
		return false, nil
	}
	return false, fmt.Errorf("invalid bool: %s (must be 'True', 'False', '1', or '0')", lexical)
}

func parseSigned(bits int) func(string) (int64, error) {
	return func(lexical string) (int64, error) {
		lexical = trimSpace(lexical)
		if lexical == "" {
			return 0, fmt.Errorf("invalid int%d: %w", bits, errEmpty)
		}
		v, err := strconv.ParseInt(lexical, 10, bits)
		if err != nil {
			return 0, fmt.Errorf("invalid int%d: %w", bits, err)
		}
		return v, nil
	}
}

func parseUnsigned(bits int) func(string) (uint64, error) {
	return func(lexical string) (uint64, error) {
		lexical = trimSpace(lexical)
		if lexical == "" {
			return 0, fmt.Errorf("invalid uint%d: %w", bits, errEmpty)
		}
		v, err := strconv.ParseUint(lexical, 10, bits)
		if err != nil {
			return 0, fmt.Errorf("invalid uint%d: %w", bits, err)
		}
		return v, nil
	}
}

// ParseFloat32 parses a locale-invariant single precision number.
func ParseFloat32(lexical string) (float32, error) {
	lexical = trimSpace(lexical)
	if lexical == "" {
		return 0, fmt.Errorf("invalid float: %w", errEmpty)
	}
	if !isDecimal(lexical) {
		return 0, fmt.Errorf("invalid float %q: %w", lexical, errNotDecimal)
	}
	f, err := strconv.ParseFloat(lexical, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid float: %w", err)
	}
	return float32(f), nil
}

// ParseFloat64 parses a locale-invariant double precision number.
func ParseFloat64(lexical string) (float64, error) {
	lexical = trimSpace(lexical)
	if lexical == "" {
		return 0, fmt.Errorf("invalid double: %w", errEmpty)
	}
	if !isDecimal(lexical) {
		return 0, fmt.Errorf("invalid double %q: %w", lexical, errNotDecimal)
	}
	f, err := strconv.ParseFloat(lexical, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid double: %w", err)
	}
	return f, nil
}

// ParseGUID parses the 36 character hyphenated form, optionally wrapped in braces.
func ParseGUID(lexical string) (uuid.UUID, error) {
	lexical = trimSpace(lexical)
	if len(lexical) == 38 && lexical[0] == '{' && lexical[37] == '}' {
		lexical = lexical[1:37]
	}
	if len(lexical) != 36 {
		return uuid.UUID{}, fmt.Errorf("invalid guid %q: %w", lexical, errGUIDForm)
	}
	id, err := uuid.Parse(lexical)
	if err != nil {
		return uuid.UUID{}, fmt.Errorf("invalid guid %q: %w", lexical, err)
	}
	return id, nil
}

func parseVector(count int, integral bool) func(string) ([]float64, error) {
	return func(lexical string) ([]float64, error) {
		fields := strings.Fields(lexical)
		if len(fields) != count {
			return nil, fmt.Errorf("invalid vector: got %d components, want %d: %w", len(fields), count, errComponentCount)
		}
		out := make([]float64, count)
		for i, field := range fields {
			if integral {
				n, err := strconv.ParseInt(field, 10, 32)
				if err != nil {
					return nil, fmt.Errorf("invalid vector component %d: %w", i, err)
				}
				out[i] = float64(n)
				continue
			}
			if !isDecimal(field) {
				return nil, fmt.Errorf("invalid vector component %d %q: %w", i, field, errNotDecimal)
			}
			f, err := strconv.ParseFloat(field, 64)
			if err != nil {
				return nil, fmt.Errorf("invalid vector component %d: %w", i, err)
			}
			out[i] = f
		}
		return out, nil
	}
}

// isDecimal reports whether s is [+-]digits[.digits][(e|E)[+-]digits], with digits
// required on at least one side of the point, or one of the spellings Lexical
// writes for non-finite values (Inf, +Inf, -Inf, NaN).
func isDecimal(s string) bool {
	switch s {
	case "Inf", "+Inf", "-Inf", "NaN":
		return true
	}
	i := 0
	if i < len(s) && (s[i] == '+' || s[i] == '-') {
		i++
	}
	intDigits := countDigits(s[i:])
	i += intDigits
	fracDigits := 0
	if i < len(s) && s[i] == '.' {
		i++
		fracDigits = countDigits(s[i:])
		i += fracDigits
	}
	if intDigits == 0 && fracDigits == 0 {
		return false
	}
	if i < len(s) && (s[i] == 'e' || s[i] == 'E') {
		i++
		if i < len(s) && (s[i] == '+' || s[i] == '-') {
			i++
		}
		expDigits := countDigits(s[i:])
		if expDigits == 0 {
			return false
		}
		i += expDigits
	}
	return i == len(s)
}

func countDigits(s string) int {
	n := 0
	for n < len(s) && s[n] >= '0' && s[n] <= '9' {
		n++
	}
	return n
}

// trimSpace removes XML whitespace (space, tab, CR, LF) from both ends.
func trimSpace(s string) string {
	return strings.Trim(s, " \t\r\n")
}

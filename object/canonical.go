package object

import (
	"bytes"
	"encoding/base64"
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/tradle/protocol/errors"
)

// SortKeys sorts property names case-insensitively: comparison folds to
// lowercase, and keys that fold to the same string fall back to byte-wise
// order so the sort stays total and deterministic.
func SortKeys(keys []string) {
	sort.SliceStable(keys, func(i, j int) bool {
		li, lj := strings.ToLower(keys[i]), strings.ToLower(keys[j])
		if li != lj {
			return li < lj
		}
		return keys[i] < keys[j]
	})
}

// SortedKeys returns the object's property names in canonical order.
func SortedKeys(o Object) []string {
	keys := make([]string, 0, len(o))
	for k := range o {
		keys = append(keys, k)
	}
	SortKeys(keys)
	return keys
}

// Stringify produces the deterministic serialized form of a value: JSON
// with keys sorted canonically at every nesting level, no insignificant
// whitespace, and no HTML escaping. Two semantically identical values
// always stringify to identical bytes regardless of construction order.
//
// Byte slices are encoded as base64 JSON strings. Values containing
// Undefined anywhere fail with ErrInvalidProperty.
func Stringify(v any) ([]byte, error) {
	var buf bytes.Buffer
	if err := stringifyValue(&buf, v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func stringifyValue(buf *bytes.Buffer, v any) error {
	switch t := v.(type) {
	case nil:
		buf.WriteString("null")
	case bool:
		if t {
			buf.WriteString("true")
		} else {
			buf.WriteString("false")
		}
	case string:
		writeJSONString(buf, t)
	case []byte:
		writeJSONString(buf, base64.StdEncoding.EncodeToString(t))
	case int:
		buf.WriteString(strconv.FormatInt(int64(t), 10))
	case int32:
		buf.WriteString(strconv.FormatInt(int64(t), 10))
	case int64:
		buf.WriteString(strconv.FormatInt(t, 10))
	case uint:
		buf.WriteString(strconv.FormatUint(uint64(t), 10))
	case uint32:
		buf.WriteString(strconv.FormatUint(uint64(t), 10))
	case uint64:
		buf.WriteString(strconv.FormatUint(t, 10))
	case float64:
		return writeJSONNumber(buf, t)
	case float32:
		return writeJSONNumber(buf, float64(t))
	case Object:
		return stringifyMap(buf, t)
	case map[string]any:
		return stringifyMap(buf, Object(t))
	case []any:
		buf.WriteByte('[')
		for i, el := range t {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := stringifyValue(buf, el); err != nil {
				return err
			}
		}
		buf.WriteByte(']')
	case undefinedType:
		return errors.Wrap(errors.ErrInvalidProperty, "must not have undefined values")
	default:
		return errors.InvalidPropertyf("cannot stringify value of type %T", v)
	}
	return nil
}

func stringifyMap(buf *bytes.Buffer, o Object) error {
	keys := SortedKeys(o)
	buf.WriteByte('{')
	for i, k := range keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		writeJSONString(buf, k)
		buf.WriteByte(':')
		if err := stringifyValue(buf, o[k]); err != nil {
			return err
		}
	}
	buf.WriteByte('}')
	return nil
}

// writeJSONString escapes quote, backslash and control characters; all
// other bytes, including multi-byte UTF-8, pass through unchanged.
func writeJSONString(buf *bytes.Buffer, s string) {
	const hexDigits = "0123456789abcdef"
	buf.WriteByte('"')
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c == '"':
			buf.WriteString(`\"`)
		case c == '\\':
			buf.WriteString(`\\`)
		case c == '\b':
			buf.WriteString(`\b`)
		case c == '\f':
			buf.WriteString(`\f`)
		case c == '\n':
			buf.WriteString(`\n`)
		case c == '\r':
			buf.WriteString(`\r`)
		case c == '\t':
			buf.WriteString(`\t`)
		case c < 0x20:
			buf.WriteString(`\u00`)
			buf.WriteByte(hexDigits[c>>4])
			buf.WriteByte(hexDigits[c&0xf])
		default:
			buf.WriteByte(c)
		}
	}
	buf.WriteByte('"')
}

// writeJSONNumber formats floats the way the reference serialization
// does: plain decimal inside [1e-6, 1e21), exponent notation outside,
// with no zero-padded exponents. NaN and infinities are not serializable.
func writeJSONNumber(buf *bytes.Buffer, f float64) error {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return errors.InvalidPropertyf("cannot stringify non-finite number")
	}
	abs := math.Abs(f)
	if f == 0 || (abs >= 1e-6 && abs < 1e21) {
		buf.WriteString(strconv.FormatFloat(f, 'f', -1, 64))
		return nil
	}
	s := strconv.FormatFloat(f, 'e', -1, 64)
	// strip zero-padded exponents: 1e+21 not 1e+21, 1e-07 -> 1e-7
	if idx := strings.IndexByte(s, 'e'); idx >= 0 {
		mant, exp := s[:idx], s[idx+1:]
		sign := ""
		if exp[0] == '+' || exp[0] == '-' {
			sign, exp = string(exp[0]), exp[1:]
		}
		exp = strings.TrimLeft(exp, "0")
		if exp == "" {
			exp = "0"
		}
		s = mant + "e" + sign + exp
	}
	buf.WriteString(s)
	return nil
}

// CheckNoUndefined walks the full nested structure and fails if any
// value is the Undefined marker. Explicit nil is allowed.
func CheckNoUndefined(v any) error {
	switch t := v.(type) {
	case undefinedType:
		return errors.Wrap(errors.ErrInvalidProperty, "must not have undefined values")
	case Object:
		for _, val := range t {
			if err := CheckNoUndefined(val); err != nil {
				return err
			}
		}
	case map[string]any:
		for _, val := range t {
			if err := CheckNoUndefined(val); err != nil {
				return err
			}
		}
	case []any:
		for _, el := range t {
			if err := CheckNoUndefined(el); err != nil {
				return err
			}
		}
	}
	return nil
}

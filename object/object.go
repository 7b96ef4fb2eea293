// Package object defines the protocol's object data model: a mapping of
// string property names to JSON-like values, a fixed set of reserved
// property codes, the header/body split, and deterministic canonical
// serialization. The reserved single-character codes are part of the wire
// contract; changing any of them breaks interoperability with existing
// signed objects.
package object

import (
	"github.com/tradle/protocol/errors"
)

// Reserved property codes. These identifiers are fixed for
// interoperability and must never be renamed.
const (
	TypeProp       = "_t"
	SigProp        = "_s"
	VersionProp    = "_v"
	PrevLinkProp   = "_p"
	PermalinkProp  = "_r"
	PrevHeaderProp = "_ph"
	TimestampProp  = "_time"
	AuthorProp     = "_author"
	WitnessesProp  = "_w"
	OrgSigProp     = "_o"
	ProtocolProp   = "_protocol"
)

// ProtocolVersion is the protocol version written into new objects.
const ProtocolVersion = "4.0.0"

// IdentityType is the one object type whose zero version may omit an
// author: the object that defines the author's identity.
const IdentityType = "tradle.Identity"

// HeaderProps are the reserved properties excluded from the merkle tree
// and hashed separately to produce the link.
var HeaderProps = []string{SigProp, WitnessesProp, OrgSigProp}

// Object is a mapping of property names to JSON-like values. Key order
// is irrelevant; canonicalization imposes a deterministic order.
type Object map[string]any

// undefinedType is the explicit absent-value marker. Explicit null is a
// legal property value; Undefined is not and fails canonicalization.
type undefinedType struct{}

// Undefined marks a value as absent. Objects containing it anywhere in
// their nested structure are rejected.
var Undefined = undefinedType{}

// Copy returns a deep copy of the object. Nested maps and slices are
// copied; scalar values are shared.
func (o Object) Copy() Object {
	return copyValue(o).(Object)
}

func copyValue(v any) any {
	switch t := v.(type) {
	case Object:
		out := make(Object, len(t))
		for k, val := range t {
			out[k] = copyValue(val)
		}
		return out
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, val := range t {
			out[k] = copyValue(val)
		}
		return out
	case []any:
		out := make([]any, len(t))
		for i, val := range t {
			out[i] = copyValue(val)
		}
		return out
	case []byte:
		out := make([]byte, len(t))
		copy(out, t)
		return out
	default:
		return v
	}
}

// Type returns the object's type code, or "" when absent.
func (o Object) Type() string {
	s, _ := o[TypeProp].(string)
	return s
}

// Protocol returns the object's declared protocol version, defaulting to
// ProtocolVersion when absent.
func (o Object) Protocol() string {
	if s, ok := o[ProtocolProp].(string); ok {
		return s
	}
	return ProtocolVersion
}

// Version returns the object's version number. Absent means 0.
func (o Object) Version() (int64, error) {
	v, ok := o[VersionProp]
	if !ok {
		return 0, nil
	}
	n, ok := asInt64(v)
	if !ok || n < 0 {
		return 0, errors.InvalidPropertyf("expected %s to be a non-negative integer, got %v", VersionProp, v)
	}
	return n, nil
}

// Timestamp returns the object's timestamp.
func (o Object) Timestamp() (int64, error) {
	v, ok := o[TimestampProp]
	if !ok {
		return 0, errors.InvalidPropertyf("expected object to have %s", TimestampProp)
	}
	n, ok := asInt64(v)
	if !ok {
		return 0, errors.InvalidPropertyf("expected %s to be an integer, got %v", TimestampProp, v)
	}
	return n, nil
}

// Permalink returns the hex content hash of the chain's first version,
// or "" when the object is itself a first version.
func (o Object) Permalink() string {
	s, _ := o[PermalinkProp].(string)
	return s
}

// PrevLink returns the hex link of the previous version, or "".
func (o Object) PrevLink() string {
	s, _ := o[PrevLinkProp].(string)
	return s
}

// PrevHeader returns the hex header hash of the previous version, or "".
func (o Object) PrevHeader() string {
	s, _ := o[PrevHeaderProp].(string)
	return s
}

// Author returns the object's author identity reference, or "".
func (o Object) Author() string {
	s, _ := o[AuthorProp].(string)
	return s
}

// IsSigned reports whether the object carries a primary signature.
func (o Object) IsSigned() bool {
	switch s := o[SigProp].(type) {
	case string:
		return s != ""
	case []byte:
		return len(s) > 0
	default:
		return false
	}
}

// asInt64 accepts the integer representations that survive JSON decoding
// and programmatic construction.
func asInt64(v any) (int64, bool) {
	switch n := v.(type) {
	case int:
		return int64(n), true
	case int32:
		return int64(n), true
	case int64:
		return n, true
	case uint:
		return int64(n), true
	case uint32:
		return int64(n), true
	case uint64:
		return int64(n), true
	case float64:
		if n == float64(int64(n)) {
			return int64(n), true
		}
		return 0, false
	default:
		return 0, false
	}
}

package object

import (
	"encoding/base64"

	"github.com/tradle/protocol/errors"
)

// RemoveHeader returns a copy of the object without the reserved header
// properties. The input is never mutated.
func RemoveHeader(o Object) Object {
	out := make(Object, len(o))
	for k, v := range o {
		if isHeaderProp(k) {
			continue
		}
		out[k] = v
	}
	return out
}

// PickHeader returns an object containing only the reserved header
// properties. Raw byte values are re-encoded as base64 text so the
// header always stringifies the same way regardless of how the caller
// represented signature bytes. Calling on an unsigned object is an
// error.
func PickHeader(o Object) (Object, error) {
	if !o.IsSigned() {
		return nil, errors.Wrap(errors.ErrNotSigned, "pick header")
	}
	out := make(Object, len(HeaderProps))
	for _, k := range HeaderProps {
		v, ok := o[k]
		if !ok {
			continue
		}
		if b, isBytes := v.([]byte); isBytes {
			out[k] = base64.StdEncoding.EncodeToString(b)
		} else {
			out[k] = v
		}
	}
	return out, nil
}

func isHeaderProp(k string) bool {
	for _, h := range HeaderProps {
		if k == h {
			return true
		}
	}
	return false
}

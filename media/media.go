// Package media normalizes embedded media before hashing. Above the
// protocol-version threshold, data URIs and keeper URIs inside an
// object are replaced by content hashes so large blobs are bound to the
// signed payload by hash instead of by their literal bytes.
package media

import (
	"encoding/base64"
	"encoding/hex"
	"net/url"
	"strings"

	"github.com/Masterminds/semver/v3"

	"github.com/tradle/protocol/logger"
	"github.com/tradle/protocol/merkle"
	"github.com/tradle/protocol/object"
)

// PreprocessMajorThreshold is the protocol major version above which
// normalization is active.
const PreprocessMajorThreshold = 3

const (
	dataURIPrefix   = "data:"
	keeperURIPrefix = "keeper://"
)

// Active reports whether the given protocol version enables
// normalization. Unparseable versions disable it; structural validation
// rejects them elsewhere.
func Active(protocolVersion string) bool {
	v, err := semver.NewVersion(protocolVersion)
	if err != nil {
		return false
	}
	return v.Major() > PreprocessMajorThreshold
}

// Normalize returns the object with embedded media replaced by content
// hashes, using the same leaf hash the merkle engine hashes with so the
// substitution stays in one hash space. Below the version threshold the
// object is returned unchanged (same reference). Above it, the walk
// operates on a deep copy; the caller's object is never mutated.
// Normalization is idempotent: replaced values are bare hex and no
// longer URI-shaped.
func Normalize(o object.Object, opts merkle.Opts) object.Object {
	if !Active(o.Protocol()) {
		return o
	}
	return normalizeValue(o.Copy(), opts).(object.Object)
}

func normalizeValue(v any, opts merkle.Opts) any {
	switch t := v.(type) {
	case object.Object:
		for k, val := range t {
			t[k] = normalizeValue(val, opts)
		}
		return t
	case map[string]any:
		for k, val := range t {
			t[k] = normalizeValue(val, opts)
		}
		return t
	case []any:
		for i, el := range t {
			t[i] = normalizeValue(el, opts)
		}
		return t
	case string:
		return normalizeString(t, opts)
	default:
		return v
	}
}

func normalizeString(s string, opts merkle.Opts) any {
	switch {
	case strings.HasPrefix(s, dataURIPrefix):
		if h, ok := dataURIHash(s, opts); ok {
			logger.Debugw("replaced embedded data uri", "hash", h)
			return h
		}
		return s
	case strings.HasPrefix(s, keeperURIPrefix):
		if h, ok := keeperURIHash(s); ok {
			logger.Debugw("replaced keeper uri", "hash", h)
			return h
		}
		return s
	default:
		return s
	}
}

// dataURIHash decodes data:[<mediatype>][;base64],<payload> and returns
// the hex leaf hash of the decoded bytes. Malformed URIs report ok=false
// and are left untouched by the caller; a bad embed is not worth
// aborting the whole hashing operation.
func dataURIHash(s string, opts merkle.Opts) (string, bool) {
	rest := s[len(dataURIPrefix):]
	comma := strings.IndexByte(rest, ',')
	if comma < 0 {
		return "", false
	}
	meta, payload := rest[:comma], rest[comma+1:]

	var data []byte
	if strings.HasSuffix(meta, ";base64") {
		decoded, err := base64.StdEncoding.DecodeString(payload)
		if err != nil {
			return "", false
		}
		data = decoded
	} else {
		decoded, err := url.PathUnescape(payload)
		if err != nil {
			return "", false
		}
		data = []byte(decoded)
	}
	return hex.EncodeToString(opts.HashLeaf(data)), true
}

// keeperURIHash extracts the embedded content hash from
// keeper://<algorithm>/<hex-hash>.
func keeperURIHash(s string) (string, bool) {
	rest := s[len(keeperURIPrefix):]
	slash := strings.IndexByte(rest, '/')
	if slash <= 0 {
		return "", false
	}
	h := rest[slash+1:]
	if h == "" {
		return "", false
	}
	if _, err := hex.DecodeString(h); err != nil {
		return "", false
	}
	return h, true
}

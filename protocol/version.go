package protocol

import (
	"bytes"
	"time"

	"github.com/tradle/protocol/errors"
	"github.com/tradle/protocol/merkle"
	"github.com/tradle/protocol/object"
)

// VersionOpts carries a version-chain validation. Prev is the signed
// previous version; Orig identifies the chain's first version and may
// be a signed object, a raw link digest or its hex form. Both are nil
// for a first version.
type VersionOpts struct {
	Object object.Object
	Prev   object.Object
	Orig   any
	Merkle merkle.Opts
}

// ValidateVersioning checks an object's chain claims against the actual
// previous version and chain origin:
//
//   - a version 0 object admits no previous version or origin
//   - a later version requires both, its prevlink and prevheader must
//     match the previous version's recomputed link and header hash, its
//     permalink must match the origin's link, and its timestamp must
//     strictly increase
//
// Prev must be signed; its link does not exist otherwise.
func ValidateVersioning(opts VersionOpts) error {
	o := opts.Object
	if err := object.Validate(o); err != nil {
		return err
	}
	version, err := o.Version()
	if err != nil {
		return err
	}

	if version == 0 {
		if opts.Prev != nil || opts.Orig != nil {
			return errors.InvalidVersionf("expected object.%s to be non-zero when a previous version is supplied", object.VersionProp)
		}
		return nil
	}

	if opts.Prev == nil {
		return errors.InvalidVersionf("expected a previous version for object with non-zero %s", object.VersionProp)
	}
	if opts.Orig == nil {
		return errors.InvalidVersionf("expected a chain origin for object with non-zero %s", object.VersionProp)
	}

	prevLink, err := Link(opts.Prev, opts.Merkle)
	if err != nil {
		return errors.Wrap(err, "previous version")
	}
	claimedPrev, err := LinkOf(o.PrevLink(), opts.Merkle)
	if err != nil {
		return errors.Wrap(err, object.PrevLinkProp)
	}
	if !bytes.Equal(claimedPrev, prevLink) {
		return errors.InvalidVersionf("object.%s does not match the previous version's link", object.PrevLinkProp)
	}

	prevHeader, err := HeaderHash(opts.Prev, opts.Merkle)
	if err != nil {
		return errors.Wrap(err, "previous version")
	}
	claimedHeader, err := LinkOf(o.PrevHeader(), opts.Merkle)
	if err != nil {
		return errors.Wrap(err, object.PrevHeaderProp)
	}
	if !bytes.Equal(claimedHeader, prevHeader) {
		return errors.InvalidVersionf("object.%s does not match the previous version's header hash", object.PrevHeaderProp)
	}

	origLink, err := LinkOf(opts.Orig, opts.Merkle)
	if err != nil {
		return errors.Wrap(err, "chain origin")
	}
	claimedOrig, err := LinkOf(o.Permalink(), opts.Merkle)
	if err != nil {
		return errors.Wrap(err, object.PermalinkProp)
	}
	if !bytes.Equal(claimedOrig, origLink) {
		return errors.InvalidVersionf("object.%s does not match the chain origin's link", object.PermalinkProp)
	}

	// a previous version that is itself versioned must agree on the origin
	if prevPermalink := opts.Prev.Permalink(); prevPermalink != "" {
		prevOrig, err := LinkOf(prevPermalink, opts.Merkle)
		if err != nil {
			return errors.Wrap(err, "previous version permalink")
		}
		if !bytes.Equal(prevOrig, origLink) {
			return errors.InvalidVersionf("previous version disagrees on the chain origin")
		}
	}

	ts, err := o.Timestamp()
	if err != nil {
		return err
	}
	prevTS, err := opts.Prev.Timestamp()
	if err != nil {
		return errors.Wrap(err, "previous version")
	}
	if ts <= prevTS {
		return errors.InvalidVersionf("expected object.%s to increase monotonically across versions", object.TimestampProp)
	}
	return nil
}

// NextVersion derives the unsigned successor of a signed object: the
// body is carried over, the version is incremented, the chain links are
// recomputed from the previous version, and the timestamp is refreshed.
// The caller edits the returned object and signs it.
func NextVersion(prev object.Object, opts merkle.Opts) (object.Object, error) {
	if !prev.IsSigned() {
		return nil, errors.Wrap(errors.ErrNotSigned, "next version")
	}
	version, err := prev.Version()
	if err != nil {
		return nil, err
	}
	link, err := Link(prev, opts)
	if err != nil {
		return nil, err
	}
	headerHash, err := HeaderHash(prev, opts)
	if err != nil {
		return nil, err
	}

	permalink := prev.Permalink()
	if permalink == "" {
		permalink = LinkString(link)
	}

	ts := time.Now().UnixMilli()
	if prevTS, err := prev.Timestamp(); err == nil && ts <= prevTS {
		ts = prevTS + 1
	}

	out := object.RemoveHeader(prev).Copy()
	out[object.VersionProp] = version + 1
	out[object.PrevLinkProp] = LinkString(link)
	out[object.PrevHeaderProp] = LinkString(headerHash)
	out[object.PermalinkProp] = permalink
	out[object.TimestampProp] = ts
	return out, nil
}

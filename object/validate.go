package object

import (
	"github.com/Masterminds/semver/v3"

	"github.com/tradle/protocol/errors"
)

// Validate enforces the structural rules on an object. It never mutates
// the input:
//
//   - a non-empty string type is required
//   - no Undefined values anywhere in the nested structure
//   - a declared protocol version must parse as semver
//   - version 0 objects carry none of prevlink/permalink/prevheader;
//     version > 0 objects carry all three
//   - a timestamp integer is required
//   - an author is required unless the object is the zero-version
//     identity-defining object
func Validate(o Object) error {
	if o.Type() == "" {
		return errors.InvalidPropertyf("expected object to have a string %s", TypeProp)
	}
	if err := CheckNoUndefined(o); err != nil {
		return err
	}
	if pv, ok := o[ProtocolProp]; ok {
		s, isStr := pv.(string)
		if !isStr {
			return errors.InvalidPropertyf("expected %s to be a semver string", ProtocolProp)
		}
		if _, err := semver.NewVersion(s); err != nil {
			return errors.InvalidPropertyf("expected %s to be a semver string, got %q", ProtocolProp, s)
		}
	}

	version, err := o.Version()
	if err != nil {
		return err
	}
	if err := validateVersionShape(o, version); err != nil {
		return err
	}

	if _, err := o.Timestamp(); err != nil {
		return err
	}

	if o.Author() == "" {
		if !(version == 0 && o.Type() == IdentityType) {
			return errors.InvalidPropertyf("expected object to have %s", AuthorProp)
		}
	}
	return nil
}

// validateVersionShape checks the exactly-one-of invariant: either the
// object is a first version with no chain links, or it is a later
// version with all of prevlink, permalink and prevheader.
func validateVersionShape(o Object, version int64) error {
	if version == 0 {
		for _, prop := range []string{PrevLinkProp, PermalinkProp, PrevHeaderProp} {
			if _, present := o[prop]; present {
				return errors.InvalidVersionf("expected object.%s to be non-zero when %s is present", VersionProp, prop)
			}
		}
		return nil
	}
	for _, prop := range []string{PrevLinkProp, PermalinkProp, PrevHeaderProp} {
		s, _ := o[prop].(string)
		if s == "" {
			return errors.InvalidVersionf("expected object to have %s when %s is non-zero", prop, VersionProp)
		}
	}
	return nil
}

// ValidateFresh checks an object about to be signed: structurally valid
// and not yet signed.
func ValidateFresh(o Object) error {
	if o.IsSigned() {
		return errors.Wrap(errors.ErrSigned, "sign")
	}
	return Validate(o)
}

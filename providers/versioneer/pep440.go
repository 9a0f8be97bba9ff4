package versioneer

import (
	"fmt"

	pep440 "github.com/aquasecurity/go-pep440-version"
)

/*
PEP-440 version semantic parsing implementation.

The full grammar is:

	[N!]N(.N)*[{a|b|rc}N][.postN][.devN]

covering epoch, release, pre-release, post-release and development release
segments, with the total ordering defined by the scheme. See
https://www.python.org/dev/peps/pep-0440/#version-scheme for detail.
*/

// NewPEP440Version constructs ready-to-use PEP-440 Version instance.
//
// An error is returned if the value does not conform to the scheme, in which
// case the value cannot be ordered and must not be compared.
func NewPEP440Version(value string) (Version, error) {
	parsed, err := pep440.Parse(value)
	if err != nil {
		return nil, fmt.Errorf("version %q is not a valid PEP-440 identifier: %w", value, err)
	}
	return PEP440Version{value: value, parsed: parsed}, nil
}

// PEP440Version represents Version implementation for the PEP-440 scheme.
type PEP440Version struct {
	value  string
	parsed pep440.Version
}

// Compare method returns -1, 0 or 1 if the version is below, equal to or above the argument.
//
// Comparing against a Version produced by a different constructor is not
// supported and orders the receiver first.
func (pv PEP440Version) Compare(b Version) int {
	other, ok := b.(PEP440Version)
	if !ok {
		return -1
	}
	return pv.parsed.Compare(other.parsed)
}

// LessThan method reports whether the version orders strictly before the argument.
func (pv PEP440Version) LessThan(b Version) bool {
	return pv.Compare(b) < 0
}

// Value method returns original unmodified raw value of the version.
func (pv PEP440Version) Value() string {
	return pv.value
}

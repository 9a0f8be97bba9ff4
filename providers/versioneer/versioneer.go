/*
Package versioneer provides parsing and ordering for public version identifiers
following the PEP-440 version scheme.

Usage:
	todo:
*/
package versioneer

// Version represents a fixed public version identifier (e.g. '1.0.3' or '2!1.0.0rc1').
type Version interface {
	Compare(b Version) int   // Compare method returns -1, 0 or 1 if the version is below, equal to or above the argument.
	LessThan(b Version) bool // LessThan method reports whether the version orders strictly before the argument.
	Value() string           // Value method returns original unmodified raw value of the version.
}

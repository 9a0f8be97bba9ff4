package gitvck

import (
	"errors"
	"path"
	"runtime/debug"
)

var (
	ErrNotInstalled = errors.New("project is not installed")
)

// InstalledVersioner interface defines the installed-project metadata lookup.
type InstalledVersioner interface {
	// Version returns the installed version of the named project, or
	// ErrNotInstalled when no version information is available for it.
	Version(name string) (string, error)
}

// BuildInfoVersioner resolves installed versions from the running binary's
// embedded module metadata.
//
// The name is matched against the full module path or its final element, so
// 'project-spam' finds 'github.com/s3dev/project-spam'. The main module of a
// development build carries no usable version and reports ErrNotInstalled.
type BuildInfoVersioner struct{}

// Version returns the installed version of the named project.
func (bv BuildInfoVersioner) Version(name string) (string, error) {
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return "", ErrNotInstalled
	}

	modules := make([]*debug.Module, 0, len(info.Deps)+1)
	modules = append(modules, &info.Main)
	modules = append(modules, info.Deps...)

	for _, m := range modules {
		if m == nil || (m.Path != name && path.Base(m.Path) != name) {
			continue
		}
		if m.Version == "" || m.Version == "(devel)" {
			return "", ErrNotInstalled
		}
		return m.Version, nil
	}

	return "", ErrNotInstalled
}

// StaticVersioner stores installed versions in memory (usefull for debugging/testing or for building custom lookup logic)
type StaticVersioner struct {
	Versions map[string]string
}

// Version returns the stored version of the named project.
func (sv StaticVersioner) Version(name string) (string, error) {
	v, ok := sv.Versions[name]
	if !ok {
		return "", ErrNotInstalled
	}
	return v, nil
}

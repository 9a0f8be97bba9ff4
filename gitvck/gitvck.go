/*
Package gitvck provides a notification-only version check for a project
against the latest version available in source configuration.

The version can be checked against PyPI, GitHub or even a local (offline)
Git repository. If the project's version number is behind the version number
obtained from the source, the user is notified - as a notification-only
service. The check is not designed to prevent the caller from carrying on.

When checking against a Git(Hub) repository, the repository's tags are used
to determine the latest version. Therefore, the tag on the release must be
the version number itself and follow the PEP-440 version scheme:

	[N!]N(.N)*[{a|b|rc}N][.postN][.devN]

Usage:

	Check the version against a local Git repository:

		gitvck.New(gitvck.Config{
			Name:    "project-spam",
			Source:  gitvck.SourceGit,
			Path:    "/path/to/git/project-spam",
			Version: version,
		}).Test()

	Check the version against GitHub:

		gitvck.New(gitvck.Config{
			Name:   "project-spam",
			Source: gitvck.SourceGitHub,
			Path:   "https://github.com/s3dev/project-spam",
		}).Test()

	Check the version against PyPI, using the installed version:

		gitvck.New(gitvck.Config{
			Name:   "project-spam",
			Source: gitvck.SourcePyPI,
		}).Test()
*/
package gitvck

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"runtime/debug"
	"strings"
	"time"

	"github.com/s3dev/gitvck/providers/api/pypi"
	"github.com/s3dev/gitvck/providers/fetchers"
	"github.com/s3dev/gitvck/providers/ui"
	"github.com/s3dev/gitvck/providers/versioneer"
)

// Source represents version source type flag.
type Source string

// Available version sources
const (
	// SourceGit checks tags of a Git repository, local path or remote URL.
	SourceGit = Source("git")
	// SourceGitHub checks tags of a GitHub repository through the API.
	SourceGitHub = Source("github")
	// SourcePyPI checks the latest version published on the PyPI register.
	SourcePyPI = Source("pypi")
)

// Config holds the per-check configuration, passed explicitly on construction.
type Config struct {
	// Name of the project.
	Name string
	// Source against which the version is checked.
	Source Source
	// Path to the project's local Git repository, its remote URL, or the
	// GitHub repository address. Required for the git and github sources,
	// unused for pypi.
	Path string
	// Version of the project. If empty, the version of the installed
	// project is collected from the build metadata instead.
	Version string
	// StripLeadingV strips a leading 'v' from a tag-derived version
	// (e.g. 'v1.2.3' -> '1.2.3'). Registry versions are never modified.
	StripLeadingV bool
	// GitTimeout bounds the git subprocess call, 30 seconds if zero.
	GitTimeout time.Duration
}

// New constructs a VersionCheck with production collaborators.
//
// No I/O happens here, all lookups run inside Test.
func New(cfg Config) *VersionCheck {
	return &VersionCheck{
		cfg:       cfg,
		git:       fetchers.NewGitTagLister(cfg.GitTimeout),
		github:    fetchers.NewGitHubTagFetcher(nil),
		register:  pypi.NewClient(nil, nil),
		installed: BuildInfoVersioner{},
		printer:   ui.NewConsolePrinter(),
	}
}

// VersionCheck compares a project's version against the version in source
// configuration.
//
// This type is simply a warning mechanism. Processes are not stopped nor
// prevented, once preliminary internal checks pass. If the version test
// fails, the user is simply warned and allowed to carry on.
type VersionCheck struct {
	cfg Config

	git       fetchers.TagLister
	github    fetchers.TagLister
	register  pypi.Client
	installed InstalledVersioner
	printer   ui.Printer
}

// Test method checks the version numbers between the project and its source.
//
// If the version of the project is behind the source, the user is alerted.
// Otherwise, no further action is taken. The following processing steps are
// carried out:
//
//  - Verify the arguments are valid.
//  - Get the version number for the internal project.
//  - Get the version number from the project's configured source.
//  - Verify the two version numbers are valid per PEP-440.
//  - Compare the internal and external version numbers.
//  - Notify the user if the version of the project is behind the source.
//
// The return value is true if the versions compared successfully and the
// source is not ahead of the tested project, otherwise false. Configuration
// misuse (an unknown source, or a git/github source without a path) is
// reported with a full diagnostic trace, the check itself never panics
// through to the caller.
func (vc *VersionCheck) Test() (ok bool) {
	defer func() {
		if r := recover(); r != nil {
			vc.printer.Alert("\n%v\n\n%s", r, debug.Stack())
			ok = false
		}
	}()

	vc.verifyArgs()

	vers, resolved := vc.internalVersion()
	if !resolved {
		return false
	}
	extvers, resolved := vc.externalVersion()
	if !resolved {
		return false
	}
	if !vc.verifyVersionNumbers(vers, extvers) {
		return false
	}
	return vc.compare(vers, extvers)
}

// verifyArgs verifies the configuration arguments are valid.
//
// Configuration misuse is the caller's bug, not environmental flakiness, so
// it is raised as a panic (recovered and traced at the Test boundary) rather
// than folded into the boolean result.
func (vc *VersionCheck) verifyArgs() {
	switch vc.cfg.Source {
	case SourceGit, SourceGitHub:
		if vc.cfg.Path == "" {
			panic(fmt.Errorf("a path argument must be provided for a %q source", vc.cfg.Source))
		}
	case SourcePyPI:
	default:
		panic(fmt.Errorf("invalid source argument provided: %q", vc.cfg.Source))
	}
}

// internalVersion collects the project's version to be compared.
//
// If the Version argument is empty, the version for the installed project is
// obtained from the build metadata. Otherwise, the configured string is used
// as-is and validated later with the external version.
func (vc *VersionCheck) internalVersion() (string, bool) {
	if vc.cfg.Version != "" {
		return vc.cfg.Version, true
	}

	v, err := vc.installed.Version(vc.cfg.Name)
	if err != nil {
		vc.printer.Warning("\n[ERROR]: The '%s' project is not installed. Cannot collect version information.", vc.cfg.Name)
		return "", false
	}
	if !vc.verifyVersionIsValid(v) {
		return "", false
	}
	return v, true
}

// externalVersion gets the version from the configured external source.
//
//  - git: use the Path argument to obtain and parse the latest tag.
//  - github: use the Path argument to query the API for the latest tag.
//  - pypi: use the Name argument to query PyPI for the latest version held.
func (vc *VersionCheck) externalVersion() (string, bool) {
	var extvers string
	switch vc.cfg.Source {
	case SourceGit:
		extvers = vc.versionFromGit()
	case SourceGitHub:
		extvers = vc.versionFromGitHub()
	case SourcePyPI:
		extvers = vc.versionFromPyPI()
	}
	if extvers == "" {
		vc.printer.Warning("\n[ERROR]: The external version for '%s' could not be found.", vc.cfg.Name)
		return "", false
	}
	return extvers, true
}

// versionFromGit collects and parses the latest tag from a Git repository.
//
// The repository is queried with 'git ls-remote', which relies on the
// version number being the commit's tag.
func (vc *VersionCheck) versionFromGit() string {
	if !vc.verifyPathIsValid() {
		return ""
	}
	lines, err := vc.git.Tags(context.Background(), vc.cfg.Path)
	if err != nil {
		if err != fetchers.ErrNoTags {
			vc.printer.Warning("\n%v", err)
		}
		return ""
	}
	return vc.parseTagLines(lines)
}

// versionFromGitHub collects the latest tag from the GitHub API.
func (vc *VersionCheck) versionFromGitHub() string {
	names, err := vc.github.Tags(context.Background(), vc.cfg.Path)
	if err != nil {
		if err != fetchers.ErrNoTags {
			vc.printer.Warning("\n%v", err)
		}
		return ""
	}
	return vc.parseTagLines(names)
}

// versionFromPyPI collects the latest version from the PyPI register.
//
// Any register failure leaves the version unresolved, reported by the
// caller as a single not-found warning.
func (vc *VersionCheck) versionFromPyPI() string {
	project, _, err := vc.register.Project(context.Background(), vc.cfg.Name)
	if err != nil {
		return ""
	}
	return project.Info.Version
}

// parseTagLines extracts the version candidate from tag listing output.
//
// The candidate is the final path segment of the last line, which is the
// latest tag given the listing's ascending version order. The tag is only a
// candidate at this point, it is verified against the version scheme before
// the versions are compared, in the event the tag is not a version number.
func (vc *VersionCheck) parseTagLines(lines []string) string {
	if len(lines) == 0 {
		return ""
	}
	latest := lines[len(lines)-1]
	parts := strings.Split(latest, "/")
	candidate := strings.TrimSpace(parts[len(parts)-1])
	if vc.cfg.StripLeadingV {
		candidate = strings.TrimPrefix(candidate, "v")
	}
	return candidate
}

// verifyPathIsValid verifies the Path argument points at something usable,
// a GitHub URL or an existing filesystem path.
func (vc *VersionCheck) verifyPathIsValid() bool {
	p, err := url.Parse(vc.cfg.Path)
	if err == nil && (p.Scheme == "http" || p.Scheme == "https") && p.Host == "github.com" {
		return true
	}
	if _, err := os.Stat(vc.cfg.Path); err == nil {
		return true
	}
	vc.printer.Warning("\n[ERROR]: The following path cannot be found: '%s'", vc.cfg.Path)
	return false
}

// verifyVersionNumbers verifies the version numbers are valid per PEP-440.
//
// Both the internal and external version numbers are tested, not
// short-circuited, so every offending value is reported in one pass.
func (vc *VersionCheck) verifyVersionNumbers(vers, extvers string) bool {
	iOK := vc.verifyVersionIsValid(vers)
	eOK := vc.verifyVersionIsValid(extvers)
	return iOK && eOK
}

// verifyVersionIsValid verifies a single version string against PEP-440,
// warning about the offending value on failure.
func (vc *VersionCheck) verifyVersionIsValid(version string) bool {
	if _, err := versioneer.NewPEP440Version(version); err != nil {
		vc.printer.Warning("\n[ERROR]: The following version number is invalid: '%s'", version)
		return false
	}
	return true
}

// compare compares the internal and external version numbers.
//
// Returns false if the internal version is behind (less than) the external
// version. Otherwise, true.
func (vc *VersionCheck) compare(vers, extvers string) bool {
	internal, err := versioneer.NewPEP440Version(vers)
	if err != nil {
		return false
	}
	external, err := versioneer.NewPEP440Version(extvers)
	if err != nil {
		return false
	}
	if internal.LessThan(external) {
		vc.newVersionAvailable(vers, extvers)
		return false
	}
	return true
}

// newVersionAvailable alerts the user that a new version is available.
func (vc *VersionCheck) newVersionAvailable(vers, extvers string) {
	vc.printer.Warning("\nNote: A later version of %s is available.\n- Installed version: %s\n- Repo version: %s\n",
		vc.cfg.Name, vers, extvers)
}

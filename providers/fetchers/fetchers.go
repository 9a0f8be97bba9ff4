/*
Package fetchers provides version tag fetching functions for local and remote
repositories.

Usage:
	todo:
*/
package fetchers

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"time"
)

var (
	ErrNoTags = errors.New("repository has no tags")
)

// defaultGitTimeout bounds the git subprocess call. The original design left
// this unbounded, a hung remote would hang the caller's import.
var defaultGitTimeout = 30 * time.Second

// TagLister interface defines tag listing for a repository location.
//
// Implementations return tag reference lines sorted ascending by version,
// the latest tag last. A line may be a bare tag name or a full ref line
// (e.g. '<hash>	refs/tags/v1.2.3'), the caller extracts the final path
// segment.
type TagLister interface {
	Tags(ctx context.Context, location string) ([]string, error)
}

// StaticTagLister is used for storing tag lines in memory (usefull for debugging/testing or for building custom repositories logic)
type StaticTagLister struct {
	Lines []string
	Err   error
}

// Tags returns the stored tag lines unchanged.
func (sl StaticTagLister) Tags(ctx context.Context, location string) ([]string, error) {
	if sl.Err != nil {
		return nil, sl.Err
	}
	return sl.Lines, nil
}

// NewGitTagLister constructs a TagLister backed by the git executable.
//
// A zero timeout falls back to the 30 second default.
func NewGitTagLister(timeout time.Duration) TagLister {
	if timeout <= 0 {
		timeout = defaultGitTimeout
	}
	return &GitTagLister{Timeout: timeout}
}

// GitTagLister lists repository tags by shelling out to 'git ls-remote'.
//
// The location can be a local repository path or a remote URL, anything the
// git executable accepts. Tags are sorted ascending by version-aware refname
// ordering, so the latest tag is the last output line.
type GitTagLister struct {
	Timeout time.Duration
}

// Tags runs 'git ls-remote --tags --refs --sort=version:refname' against the location.
//
// A non-zero exit (including timeout expiry) is returned as an error carrying
// the command's stderr diagnostic text.
func (gl GitTagLister) Tags(ctx context.Context, location string) ([]string, error) {
	ctx, cancel := context.WithTimeout(ctx, gl.Timeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, "git", "ls-remote", "--tags", "--refs", "--sort=version:refname", location)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		diag := strings.TrimSpace(stderr.String())
		if diag == "" {
			diag = err.Error()
		}
		return nil, fmt.Errorf("git error:\n%s", diag)
	}

	// Drop any empty lines, keeping the command's ordering.
	var lines []string
	for _, line := range strings.Split(stdout.String(), "\n") {
		if strings.TrimSpace(line) != "" {
			lines = append(lines, line)
		}
	}
	if len(lines) == 0 {
		return nil, ErrNoTags
	}

	return lines, nil
}

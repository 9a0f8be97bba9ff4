package fetchers

import (
	"context"
	"fmt"
	"net/http"
	"regexp"
	"sort"
	"strings"

	"github.com/google/go-github/v33/github"

	"github.com/s3dev/gitvck/providers/versioneer"
)

// githubRepoRgx is used to parse repository info from a GitHub address string.
//
// Examples matching the regexp:
//     'https://github.com/vendor/reponame'
//     'git@github.com:vendor/reponame.git'
//     'vendor/reponame'
// Groups:
//     4: full repo name (e.g. 'vendor/reponame')
var githubRepoRgx string = `^((http[s]?:\/\/github\.com\/)|(git@github\.com:))?([\w\.\-~]+\/[\w\.\-~]+?)(\.git)?(\/)?$`

// githubRepoRgxCompiled is compiled from githubRepoRgx.
var githubRepoRgxCompiled *regexp.Regexp

func init() {
	githubRepoRgxCompiled = regexp.MustCompile(githubRepoRgx)
}

// NewGitHubTagFetcher constructs a TagLister backed by the GitHub API.
//
// httpClient can be used as OAuth2 or BasicAuth http transport, for example
// to raise the unauthenticated API rate limits.
func NewGitHubTagFetcher(httpClient *http.Client) TagLister {
	return &GitHubTagFetcher{githubClient: github.NewClient(httpClient)}
}

// GitHubTagFetcher lists repository tags through the GitHub API, without
// requiring a git executable on the host.
type GitHubTagFetcher struct {
	githubClient *github.Client
}

// Tags lists the repository's tag names, sorted ascending by version.
//
// The location argument is the repository address ('owner/repo', the GitHub
// URL, or the SSH form). The API serves tags in an unspecified order, so the
// names are re-sorted here to uphold the latest-tag-last contract; names that
// do not parse as versions sort first, among themselves lexically.
func (gf GitHubTagFetcher) Tags(ctx context.Context, location string) ([]string, error) {
	owner, repo, err := parseGitHubAddr(location)
	if err != nil {
		return nil, err
	}

	var names []string
	opts := &github.ListOptions{PerPage: 100}
	for {
		tags, resp, err := gf.githubClient.Repositories.ListTags(ctx, owner, repo, opts)
		if err != nil {
			return nil, fmt.Errorf("unable to list tags for '%s/%s' from github: %w", owner, repo, err)
		}
		for _, tag := range tags {
			if tag.GetName() != "" {
				names = append(names, tag.GetName())
			}
		}
		if resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}

	if len(names) == 0 {
		return nil, ErrNoTags
	}

	sortTagNames(names)
	return names, nil
}

// sortTagNames orders tag names ascending by version, mirroring git's
// 'version:refname' sort as closely as the scheme allows.
func sortTagNames(names []string) {
	sort.SliceStable(names, func(i, j int) bool {
		vi, erri := versioneer.NewPEP440Version(names[i])
		vj, errj := versioneer.NewPEP440Version(names[j])
		switch {
		case erri == nil && errj == nil:
			return vi.LessThan(vj)
		case erri == nil:
			return false
		case errj == nil:
			return true
		default:
			return names[i] < names[j]
		}
	})
}

// parseGitHubAddr - helper to parse owner and repository from a GitHub address string.
func parseGitHubAddr(addr string) (string, string, error) {
	matches := githubRepoRgxCompiled.FindStringSubmatch(addr)
	if matches == nil || matches[4] == "" {
		return "", "", fmt.Errorf("unsupported github repository format %q", addr)
	}

	parts := strings.Split(matches[4], "/")
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return "", "", fmt.Errorf("unable to parse owner from name %q", matches[4])
	}

	return parts[0], parts[1], nil
}

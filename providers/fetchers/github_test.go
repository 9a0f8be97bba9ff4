package fetchers

import (
	"context"
	"crypto/tls"
	"net"
	"net/http"
	"net/http/httptest"
	"reflect"
	"testing"
)

// configureClient configures client that intercepts ALL requests and forwards them into the specified handler.
func configureClient(t *testing.T, handleFunc http.Handler) *http.Client {
	t.Helper()
	srv := httptest.NewTLSServer(handleFunc)
	t.Cleanup(srv.Close)

	// Configuring so that all the request go into our handler.
	return &http.Client{
		Transport: &http.Transport{
			DialContext: func(_ context.Context, network, _ string) (net.Conn, error) {
				return net.Dial(network, srv.Listener.Addr().String())
			},
			TLSClientConfig: &tls.Config{InsecureSkipVerify: true},
		},
	}
}

func TestGitHubTagsMethod(t *testing.T) {
	cl := configureClient(t, http.HandlerFunc(func(rw http.ResponseWriter, r *http.Request) {
		_, _ = rw.Write([]byte(`[
			{"name": "v1.3.0", "commit": {"sha": "aaa"}},
			{"name": "v0.9.0", "commit": {"sha": "bbb"}},
			{"name": "v1.2.3", "commit": {"sha": "ccc"}}
		  ]`))
	}))

	fetcher := NewGitHubTagFetcher(cl)
	tags, err := fetcher.Tags(context.Background(), "test/testing")
	if err != nil {
		t.Error(err)
	}

	// Latest tag must come last, regardless of API ordering.
	expected := []string{"v0.9.0", "v1.2.3", "v1.3.0"}
	if !reflect.DeepEqual(tags, expected) {
		t.Errorf("expected tags %v, got %v", expected, tags)
	}
}

func TestGitHubTagsMethod_NoTags(t *testing.T) {
	cl := configureClient(t, http.HandlerFunc(func(rw http.ResponseWriter, r *http.Request) {
		_, _ = rw.Write([]byte(`[]`))
	}))

	fetcher := NewGitHubTagFetcher(cl)
	_, err := fetcher.Tags(context.Background(), "test/testing")
	if err != ErrNoTags {
		t.Errorf("expected ErrNoTags, got %v", err)
	}
}

func TestGitHubTagsMethod_HttpNotFound(t *testing.T) {
	cl := configureClient(t, http.HandlerFunc(func(rw http.ResponseWriter, r *http.Request) {
		rw.WriteHeader(http.StatusNotFound)
		_, _ = rw.Write([]byte(`{
			"message": "Not Found",
			"documentation_url": "https://docs.github.com/rest/reference/repos#list-repository-tags"
		  }`))
	}))

	fetcher := NewGitHubTagFetcher(cl)
	if _, err := fetcher.Tags(context.Background(), "test/testing"); err == nil {
		t.Error("expected an error on a 404 API response, got none")
	}
}

func TestParseGitHubAddr(t *testing.T) {
	valid := map[string][2]string{
		"vendor/reponame":                       {"vendor", "reponame"},
		"https://github.com/s3dev/utils4":       {"s3dev", "utils4"},
		"https://github.com/s3dev/utils4/":      {"s3dev", "utils4"},
		"http://github.com/vendor/repo.git":     {"vendor", "repo"},
		"git@github.com:vendor/reponame.git":    {"vendor", "reponame"},
		"https://github.com/some-org/some.proj": {"some-org", "some.proj"},
	}
	for addr, expected := range valid {
		owner, repo, err := parseGitHubAddr(addr)
		if err != nil {
			t.Errorf("unexpected error parsing %q: %v", addr, err)
			continue
		}
		if owner != expected[0] || repo != expected[1] {
			t.Errorf("expected %q -> %v, got [%s %s]", addr, expected, owner, repo)
		}
	}

	invalid := []string{
		"",
		"justaname",
		"https://gitlab.com/vendor/repo",
		"a/b/c",
	}
	for _, addr := range invalid {
		if _, _, err := parseGitHubAddr(addr); err == nil {
			t.Errorf("expected a parse error for %q, got none", addr)
		}
	}
}

func TestSortTagNames(t *testing.T) {
	names := []string{"v1.10.0", "not-a-version", "v1.2.0", "also-not", "v1.9.0"}
	sortTagNames(names)

	expected := []string{"also-not", "not-a-version", "v1.2.0", "v1.9.0", "v1.10.0"}
	if !reflect.DeepEqual(names, expected) {
		t.Errorf("expected order %v, got %v", expected, names)
	}
}

/*
Package pypi provides a client for using the PyPI public JSON API.

Usage:
	todo:
*/
package pypi

import (
	"context"
	"encoding/json"
	"fmt"
	"io/ioutil"
	"net/http"
	"net/url"
	"time"
)

// pyPiBaseURL - PyPI base API url (used as default client baseURL)
var pyPiBaseURL *url.URL

// pyPiHostname - PyPI API hostname (used as default API).
//
// PyPI is the main Python package register. The JSON API serves the latest
// published metadata for a project at '/pypi/{name}/json'.
var pyPiHostname string = "https://pypi.org"

// registerTimeout bounds every register call, any expiry is treated the same
// as a network failure.
var registerTimeout = 5 * time.Second

func init() {
	pyPiBaseURL, _ = url.Parse(pyPiHostname)
}

// Client interface defines the register lookup used by the version checker.
type Client interface {
	Project(ctx context.Context, name string) (*Project, *http.Response, error)
}

// NewClient constructs a new PyPI Client.
//
// If httpClient or URL is nil - default values will be used. The default
// client carries a 5 second timeout. Pass URL only if you are sure that the
// address is compatible with the PyPI public JSON API.
func NewClient(httpClient *http.Client, URL *url.URL) *PyPIClient {
	if URL == nil {
		URL = pyPiBaseURL
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: registerTimeout}
	}
	return &PyPIClient{httpClient: httpClient, baseUrl: *URL}
}

// PyPIClient is used to communicate with PyPI compatible API service.
type PyPIClient struct {
	httpClient *http.Client
	baseUrl    url.URL
}

// Project method is used to get the latest published metadata for a project.
//
// The register returns the metadata of the latest release, so the version
// held in the 'info' block is the latest version known to the register.
func (pc PyPIClient) Project(ctx context.Context, name string) (*Project, *http.Response, error) {
	if name == "" {
		return nil, nil, fmt.Errorf("project name is required and can't be empty")
	}

	path := fmt.Sprintf("%s/pypi/%s/json", &pc.baseUrl, name)

	req, err := http.NewRequestWithContext(ctx, "GET", path, nil)
	if err != nil {
		return nil, nil, fmt.Errorf("unable to create a request: %w", err)
	}
	resp, err := pc.httpClient.Do(req)
	if err != nil {
		return nil, nil, fmt.Errorf("unable to send the request: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != 200 {
		return nil, resp, fmt.Errorf("PyPI returned with !=200 status code")
	}
	body, err := ioutil.ReadAll(resp.Body)
	if err != nil {
		return nil, resp, fmt.Errorf("unable to read the response body: %w", err)
	}

	pp := Project{}
	if err = json.Unmarshal(body, &pp); err != nil {
		return nil, resp, fmt.Errorf("unable to parse the response body: %w", err)
	}

	return &pp, resp, nil
}

// Project represents the project metadata document served by the register.
type Project struct {
	Info       ProjectInfo `json:"info"`
	LastSerial int         `json:"last_serial"`
}

// ProjectInfo represents the metadata fields of the latest release.
type ProjectInfo struct {
	Author     string `json:"author"`
	HomePage   string `json:"home_page"`
	License    string `json:"license"`
	Name       string `json:"name"`
	PackageURL string `json:"package_url"`
	ReleaseURL string `json:"release_url"`
	Summary    string `json:"summary"`
	Version    string `json:"version"`
	Yanked     bool   `json:"yanked"`
}

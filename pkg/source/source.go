// Package source reads raw documents from local files, HTTP(S) URLs and
// GitHub repositories.
//
// Locations take one of these forms:
//
//	seeds.json
//	file:///srv/site/seeds.json
//	https://example.com/seeds.json
//	github://owner/repo/path/to/seeds.json@main
package source

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/go-github/v68/github"
	"golang.org/x/oauth2"
)

const githubScheme = "github://"

// ErrEmptyLocation is returned when no location was configured.
var ErrEmptyLocation = errors.New("either file, url or github location must be provided")

// StatusError reports a non-200 HTTP response.
type StatusError struct {
	URL  string
	Code int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected status %d from %s", e.Code, e.URL)
}

// RepositoryContents is the subset of the GitHub repositories API used to
// download files. *github.RepositoriesService satisfies it.
type RepositoryContents interface {
	DownloadContents(ctx context.Context, owner, repo, filepath string, opts *github.RepositoryContentGetOptions) (io.ReadCloser, *github.Response, error)
}

// Reader fetches documents. The zero value reads files and uses
// http.DefaultClient; GitHub locations need GitHub to be set.
type Reader struct {
	HTTP   *http.Client
	GitHub RepositoryContents
}

// NewReader returns a Reader with a bounded HTTP client and an anonymous or
// token-authenticated GitHub client.
func NewReader(ctx context.Context, githubToken string) *Reader {
	return &Reader{
		HTTP:   &http.Client{Timeout: 30 * time.Second},
		GitHub: NewGitHubClient(ctx, githubToken).Repositories,
	}
}

// NewGitHubClient builds a GitHub client, authenticated when token is set.
func NewGitHubClient(ctx context.Context, token string) *github.Client {
	if token == "" {
		return github.NewClient(nil)
	}
	ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
	return github.NewClient(oauth2.NewClient(ctx, ts))
}

// Read returns the content at location.
func (r *Reader) Read(ctx context.Context, location string) ([]byte, error) {
	location = strings.TrimSpace(location)
	switch {
	case location == "":
		return nil, ErrEmptyLocation
	case strings.HasPrefix(location, githubScheme):
		return r.readGitHub(ctx, location)
	case IsURL(location):
		return r.readHTTP(ctx, location)
	default:
		return os.ReadFile(strings.TrimPrefix(location, "file://"))
	}
}

// Join appends a relative path to a base location of any supported form.
func Join(base, rel string) string {
	if base == "" {
		return rel
	}
	if IsURL(base) || strings.HasPrefix(base, githubScheme) {
		ref := ""
		if strings.HasPrefix(base, githubScheme) {
			if i := strings.LastIndex(base, "@"); i > len(githubScheme) {
				base, ref = base[:i], base[i:]
			}
		}
		return strings.TrimSuffix(base, "/") + "/" + strings.TrimPrefix(path.Clean("/"+rel), "/") + ref
	}
	return filepath.Join(strings.TrimPrefix(base, "file://"), filepath.FromSlash(rel))
}

// IsURL reports whether location is an HTTP(S) URL.
func IsURL(location string) bool {
	return strings.HasPrefix(location, "http://") || strings.HasPrefix(location, "https://")
}

func (r *Reader) readHTTP(ctx context.Context, url string) ([]byte, error) {
	client := r.HTTP
	if client == nil {
		client = http.DefaultClient
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &StatusError{URL: url, Code: resp.StatusCode}
	}
	return io.ReadAll(resp.Body)
}

// GitHubLocation is a parsed github:// location.
type GitHubLocation struct {
	Owner string
	Repo  string
	Path  string
	Ref   string
}

// ParseGitHub parses github://owner/repo/path[@ref].
func ParseGitHub(location string) (GitHubLocation, error) {
	rest := strings.TrimPrefix(location, githubScheme)

	var loc GitHubLocation
	if i := strings.LastIndex(rest, "@"); i >= 0 {
		rest, loc.Ref = rest[:i], rest[i+1:]
	}

	parts := strings.SplitN(rest, "/", 3)
	if len(parts) != 3 || parts[0] == "" || parts[1] == "" || parts[2] == "" {
		return GitHubLocation{}, fmt.Errorf("invalid github location %q: want github://owner/repo/path[@ref]", location)
	}
	loc.Owner, loc.Repo, loc.Path = parts[0], parts[1], parts[2]
	return loc, nil
}

func (r *Reader) readGitHub(ctx context.Context, location string) ([]byte, error) {
	if r.GitHub == nil {
		return nil, fmt.Errorf("github location %q: no github client configured", location)
	}

	loc, err := ParseGitHub(location)
	if err != nil {
		return nil, err
	}

	var opts *github.RepositoryContentGetOptions
	if loc.Ref != "" {
		opts = &github.RepositoryContentGetOptions{Ref: loc.Ref}
	}

	body, resp, err := r.GitHub.DownloadContents(ctx, loc.Owner, loc.Repo, loc.Path, opts)
	if err != nil {
		if resp != nil && resp.StatusCode == http.StatusNotFound {
			return nil, &StatusError{URL: location, Code: resp.StatusCode}
		}
		return nil, fmt.Errorf("downloading %s/%s/%s: %w", loc.Owner, loc.Repo, loc.Path, err)
	}
	defer body.Close()

	return io.ReadAll(body)
}

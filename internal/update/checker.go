// Package update checks whether a newer version of the tool
// has been published on GitHub.
package update

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/go-github/v57/github"
	"golang.org/x/mod/semver"
	"golang.org/x/oauth2"
)

// Release is a published release newer than the running version.
type Release struct {
	// Version is the release's tag, e.g. "v1.2.3".
	Version string

	// URL is the release's web page, if known.
	URL string
}

// Checker queries GitHub for the latest published release of a repository
// and compares it against the running version.
type Checker struct {
	client *github.Client
	owner  string
	repo   string
}

// Options customizes a [Checker].
type Options struct {
	// Token authenticates requests to the GitHub API, if set.
	// Unauthenticated requests are subject to stricter rate limits.
	Token string

	// GitHub is the API client to use.
	// If set, Token is ignored.
	// Intended for tests.
	GitHub *github.Client
}

// NewChecker builds a Checker for the given GitHub repository.
func NewChecker(owner, repo string, opts *Options) *Checker {
	if opts == nil {
		opts = &Options{}
	}

	client := opts.GitHub
	if client == nil {
		if opts.Token != "" {
			httpClient := oauth2.NewClient(
				context.Background(),
				oauth2.StaticTokenSource(&oauth2.Token{AccessToken: opts.Token}),
			)
			client = github.NewClient(httpClient)
		} else {
			client = github.NewClient(nil)
		}
	}

	return &Checker{
		client: client,
		owner:  owner,
		repo:   repo,
	}
}

// Check reports the latest published release
// if it is newer than the given version.
// It returns nil if the running version is up to date.
//
// version may carry a "v" prefix or not.
func (c *Checker) Check(ctx context.Context, version string) (*Release, error) {
	if !strings.HasPrefix(version, "v") {
		version = "v" + version
	}
	if !semver.IsValid(version) {
		return nil, fmt.Errorf("invalid running version %q", version)
	}

	rel, _, err := c.client.Repositories.GetLatestRelease(ctx, c.owner, c.repo)
	if err != nil {
		return nil, fmt.Errorf("get latest release: %w", err)
	}

	latest := rel.GetTagName()
	if !semver.IsValid(latest) {
		return nil, fmt.Errorf("invalid release tag %q", latest)
	}

	if semver.Compare(latest, version) <= 0 {
		return nil, nil
	}

	return &Release{
		Version: latest,
		URL:     rel.GetHTMLURL(),
	}, nil
}

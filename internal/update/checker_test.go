package update

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/google/go-github/v57/github"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestChecker builds a Checker backed by a fake GitHub API
// that serves the given tag as the latest release of gmoji.
func newTestChecker(t testing.TB, latestTag string) *Checker {
	t.Helper()

	mux := http.NewServeMux()
	mux.HandleFunc("GET /repos/abhinav/gmoji/releases/latest",
		func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprintf(w,
				`{"tag_name": %q, "html_url": "https://example.com/%v"}`,
				latestTag, latestTag)
		})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	baseURL, err := url.Parse(srv.URL + "/")
	require.NoError(t, err)

	client := github.NewClient(nil)
	client.BaseURL = baseURL

	return NewChecker("abhinav", "gmoji", &Options{GitHub: client})
}

func TestCheck(t *testing.T) {
	tests := []struct {
		name    string
		latest  string
		version string
		want    string // version of the reported release; "" for none
	}{
		{
			name:    "newer available",
			latest:  "v1.2.0",
			version: "1.1.3",
			want:    "v1.2.0",
		},
		{
			name:    "up to date",
			latest:  "v1.2.0",
			version: "v1.2.0",
		},
		{
			name:    "running ahead of latest",
			latest:  "v1.2.0",
			version: "v1.3.0-rc1",
		},
		{
			name:    "prerelease upgrade",
			latest:  "v1.3.0",
			version: "v1.3.0-rc1",
			want:    "v1.3.0",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			checker := newTestChecker(t, tt.latest)

			rel, err := checker.Check(t.Context(), tt.version)
			require.NoError(t, err)

			if tt.want == "" {
				assert.Nil(t, rel)
				return
			}

			require.NotNil(t, rel)
			assert.Equal(t, tt.want, rel.Version)
			assert.NotEmpty(t, rel.URL)
		})
	}
}

func TestCheck_badVersions(t *testing.T) {
	t.Run("running version", func(t *testing.T) {
		checker := newTestChecker(t, "v1.0.0")
		_, err := checker.Check(t.Context(), "dev")
		assert.ErrorContains(t, err, "invalid running version")
	})

	t.Run("release tag", func(t *testing.T) {
		checker := newTestChecker(t, "nightly")
		_, err := checker.Check(t.Context(), "v1.0.0")
		assert.ErrorContains(t, err, "invalid release tag")
	})
}

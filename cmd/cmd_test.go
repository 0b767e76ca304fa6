package cmd_test

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"rating-dashboard/cmd"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func fakeRatingAPI(t *testing.T) *httptest.Server {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/getAllRatings":
			_, _ = w.Write([]byte(`{"items":[
				{"itemId":"a","ratingCounts":{"3":1},"updatedAt":"2023-01-01T00:00:00Z"},
				{"itemId":"b","ratingCounts":{"5":2},"updatedAt":"2024-01-01T00:00:00Z"}
			]}`))
		case "/getRating":
			_, _ = w.Write([]byte(`{"itemId":"` + r.URL.Query().Get("itemId") + `","ratingCounts":{"1":1,"5":3}}`))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	t.Cleanup(srv.Close)
	return srv
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := cmd.NewRootCommand()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestRatingsList_Table(t *testing.T) {
	srv := fakeRatingAPI(t)

	out, err := run(t, "--base-url", srv.URL, "ratings", "list")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 3)
	assert.True(t, strings.HasPrefix(lines[1], "b "))
	assert.True(t, strings.HasPrefix(lines[2], "a "))
	assert.Contains(t, lines[1], "5.0")
}

func TestRatingsList_YAML(t *testing.T) {
	srv := fakeRatingAPI(t)

	out, err := run(t, "--base-url", srv.URL, "ratings", "list", "-o", "yaml")
	require.NoError(t, err)

	var decoded struct {
		Items []struct {
			ItemID string `yaml:"itemId"`
		} `yaml:"items"`
	}
	require.NoError(t, yaml.Unmarshal([]byte(out), &decoded))
	require.Len(t, decoded.Items, 2)
	assert.Equal(t, "b", decoded.Items[0].ItemID)
}

func TestRatingsList_UnknownFormat(t *testing.T) {
	srv := fakeRatingAPI(t)
	_, err := run(t, "--base-url", srv.URL, "ratings", "list", "-o", "xml")
	assert.Error(t, err)
}

func TestRatingsGet(t *testing.T) {
	srv := fakeRatingAPI(t)

	out, err := run(t, "--base-url", srv.URL, "ratings", "get", "x")
	require.NoError(t, err)
	assert.Contains(t, out, "Item:     x")
	assert.Contains(t, out, "Average:  4.0 ★★★★☆")
	assert.Contains(t, out, " 75.0% (3)")
}

func TestRatingsGet_UpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	_, err := run(t, "--base-url", srv.URL, "ratings", "get", "x")
	assert.ErrorContains(t, err, "unexpected status 500")
}

func TestWidgetDeploy(t *testing.T) {
	dist := t.TempDir()
	public := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dist, "rating-widget.js"), []byte("js"), 0o644))

	out, err := run(t, "widget", "deploy", "--dist", dist, "--public", public)
	require.NoError(t, err)
	assert.Contains(t, out, "✓ rating-widget.js copied")
	assert.Contains(t, out, "- rating-widget.js.map not built, skipped")
	assert.FileExists(t, filepath.Join(public, "rating-widget.js"))
}

func TestWidgetDeploy_Embedded(t *testing.T) {
	public := t.TempDir()
	_, err := run(t, "widget", "deploy", "--embedded", "--public", public)
	require.NoError(t, err)
	assert.FileExists(t, filepath.Join(public, "rating-widget.js"))
}

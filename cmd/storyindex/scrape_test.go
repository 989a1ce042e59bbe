package main_test

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/fwojciec/storyindex"
	main "github.com/fwojciec/storyindex/cmd/storyindex"
	"github.com/fwojciec/storyindex/fs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fastConfig keeps pacing and retries out of the test's wall time.
const fastConfig = `
requests_per_second: 1000
retry_backoff: 1ms
`

// newSiteServer serves a tag page linking two articles, only one of which
// has a title. Every other path is a 404.
func newSiteServer(t *testing.T) *httptest.Server {
	t.Helper()

	pages := map[string]string{
		"/t/stories": `<html><body>
			<a href="/p/first-story">First</a>
			<a href="/p/second-story?utm_source=tag">Second</a>
			<a href="/about">About</a>
		</body></html>`,
		"/archive": `<html><body>
			<div class="archive-item"><a href="/p/second-story">Second</a></div>
		</body></html>`,
		"/p/first-story": `<html><body><article>
			<h1 class="post-title">Protocols Everywhere</h1>
			<h3 class="subtitle">A short tour</h3>
			<div class="author-name">Ada Lovelace</div>
			<p>Protocols shape how strangers cooperate at scale.</p>
			<p>Subscribe now</p>
		</article></body></html>`,
		"/p/second-story": `<html><body><div class="post-content">
			<p>This page has content but no heading to use as a title.</p>
		</div></body></html>`,
	}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, ok := pages[r.URL.Path]
		if !ok {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestScrapeCmd(t *testing.T) {
	t.Parallel()

	t.Run("writes all artifacts and reports the run", func(t *testing.T) {
		t.Parallel()

		srv := newSiteServer(t)
		out := t.TempDir()
		cfg := writeConfig(t, fastConfig)
		var stdout, stderr bytes.Buffer

		err := newMain().Run(context.Background(), []string{"scrape", "--config", cfg, "--out", out, srv.URL}, &stdout, &stderr)

		require.NoError(t, err)
		assert.Contains(t, stdout.String(), "Found 2 article URLs")
		assert.Contains(t, stdout.String(), "skip")
		assert.Contains(t, stdout.String(), "1 succeeded, 1 failed, 2 total")
		assert.Contains(t, stdout.String(), "Fingerprint:")

		records, err := fs.LoadSearchRecords(filepath.Join(out, storyindex.SearchIndexFile))
		require.NoError(t, err)
		assert.Equal(t, []storyindex.SearchRecord{{
			ID:       0,
			Title:    "Protocols Everywhere",
			Subtitle: "A short tour",
			Author:   "Ada Lovelace",
			Content:  []string{"Protocols shape how strangers cooperate at scale."},
			Tags:     []string{},
		}}, records)

		_, err = os.Stat(filepath.Join(out, storyindex.MetadataFile))
		assert.NoError(t, err)

		cloud, err := os.ReadFile(filepath.Join(out, storyindex.WordCloudFile))
		require.NoError(t, err)
		want, err := storyindex.MarshalArtifact(storyindex.AnalyzeWordFrequency(records, storyindex.DefaultWordCloudSize), true)
		require.NoError(t, err)
		assert.Equal(t, string(want), string(cloud), "word cloud matches the written search index")
		assert.Contains(t, stderr.String(), "run=", "log lines carry the run identifier")
	})

	t.Run("dry run writes nothing", func(t *testing.T) {
		t.Parallel()

		srv := newSiteServer(t)
		out := t.TempDir()
		cfg := writeConfig(t, fastConfig)
		var stdout, stderr bytes.Buffer

		err := newMain().Run(context.Background(), []string{"scrape", "--dry-run", "--config", cfg, "--out", out, srv.URL}, &stdout, &stderr)

		require.NoError(t, err)
		assert.Contains(t, stdout.String(), "Dry run")
		assert.Contains(t, stdout.String(), "Stories:            1")
		entries, err := os.ReadDir(out)
		require.NoError(t, err)
		assert.Empty(t, entries)
	})

	t.Run("limit caps processed articles", func(t *testing.T) {
		t.Parallel()

		srv := newSiteServer(t)
		cfg := writeConfig(t, fastConfig)
		var stdout, stderr bytes.Buffer

		err := newMain().Run(context.Background(), []string{"scrape", "--dry-run", "--limit", "1", "--config", cfg, srv.URL}, &stdout, &stderr)

		require.NoError(t, err)
		assert.Contains(t, stdout.String(), "1 succeeded, 0 failed, 1 total")
	})

	t.Run("fails when nothing is discovered", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(http.NotFoundHandler())
		t.Cleanup(srv.Close)
		out := t.TempDir()
		cfg := writeConfig(t, fastConfig)
		var stdout, stderr bytes.Buffer

		err := newMain().Run(context.Background(), []string{"scrape", "--config", cfg, "--out", out, srv.URL}, &stdout, &stderr)

		require.Error(t, err)
		assert.Equal(t, storyindex.ENOTFOUND, storyindex.ErrorCode(err))
		assert.Equal(t, main.ExitFailure, main.ExitCode(err))
		assert.Contains(t, stdout.String(), "0 succeeded, 0 failed, 0 total")
		entries, err := os.ReadDir(out)
		require.NoError(t, err)
		assert.Empty(t, entries)
	})

	t.Run("leaves existing artifacts alone when interrupted", func(t *testing.T) {
		t.Parallel()

		srv := newSiteServer(t)
		out := t.TempDir()
		previous := filepath.Join(out, storyindex.SearchIndexFile)
		require.NoError(t, os.WriteFile(previous, []byte("[]"), 0644))
		cfg := writeConfig(t, fastConfig)

		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		var stdout, stderr bytes.Buffer

		err := newMain().Run(ctx, []string{"scrape", "--config", cfg, "--out", out, srv.URL}, &stdout, &stderr)

		require.ErrorIs(t, err, context.Canceled)
		assert.Equal(t, main.ExitFailure, main.ExitCode(err))
		data, err := os.ReadFile(previous)
		require.NoError(t, err)
		assert.Equal(t, "[]", string(data))
	})

	t.Run("config file selects the sources", func(t *testing.T) {
		t.Parallel()

		srv := newSiteServer(t)
		cfg := writeConfig(t, fastConfig+`
sources:
  tag_path: ""
  archive_path: /archive
  sitemap: false
  feed_path: ""
`)
		var stdout, stderr bytes.Buffer

		err := newMain().Run(context.Background(), []string{"scrape", "--dry-run", "--config", cfg, srv.URL}, &stdout, &stderr)

		require.Error(t, err, "the archive only links the untitled story")
		assert.Contains(t, stdout.String(), "0 succeeded, 1 failed, 1 total")
	})
}

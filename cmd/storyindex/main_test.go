package main_test

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	main "github.com/fwojciec/storyindex/cmd/storyindex"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newMain returns a Main that does not read a .env file.
func newMain() *main.Main {
	m := main.NewMain()
	m.EnvFile = ""
	return m
}

// writeConfig writes a config file into a temp dir and returns its path.
func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "storyindex.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0644))
	return path
}

func TestMain_Run_Help(t *testing.T) {
	t.Parallel()

	var stdout, stderr bytes.Buffer

	err := newMain().Run(context.Background(), []string{"--help"}, &stdout, &stderr)

	require.NoError(t, err)
	for _, cmd := range []string{"scrape", "wordcloud"} {
		assert.Contains(t, stdout.String(), cmd, "Help should mention %s command", cmd)
	}
	assert.Contains(t, stdout.String(), "Usage:")
}

func TestMain_Run_CommandHelp(t *testing.T) {
	t.Parallel()

	var stdout, stderr bytes.Buffer

	err := newMain().Run(context.Background(), []string{"scrape", "--help"}, &stdout, &stderr)

	require.NoError(t, err)
	assert.Contains(t, stdout.String(), "--dry-run")
	assert.Contains(t, stdout.String(), "--concurrency")
}

func TestMain_Run_UsageErrors(t *testing.T) {
	t.Parallel()

	for _, tc := range []struct {
		name string
		args []string
	}{
		{"no arguments", []string{}},
		{"unknown command", []string{"crawl"}},
		{"unknown flag", []string{"scrape", "--bogus"}},
		{"negative limit", []string{"scrape", "--limit=-1"}},
		{"malformed timeout", []string{"scrape", "--timeout", "soon"}},
		{"relative base URL", []string{"scrape", "/relative"}},
	} {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			var stdout, stderr bytes.Buffer
			err := newMain().Run(context.Background(), tc.args, &stdout, &stderr)

			require.Error(t, err)
			assert.Equal(t, main.ExitUsage, main.ExitCode(err))
		})
	}
}

func TestMain_Run_ConfigErrorsAreUsageErrors(t *testing.T) {
	t.Parallel()

	t.Run("missing config file", func(t *testing.T) {
		t.Parallel()

		var stdout, stderr bytes.Buffer
		missing := filepath.Join(t.TempDir(), "missing.yaml")

		err := newMain().Run(context.Background(), []string{"scrape", "--config", missing}, &stdout, &stderr)

		require.Error(t, err)
		assert.Equal(t, main.ExitUsage, main.ExitCode(err))
	})

	t.Run("unknown config key", func(t *testing.T) {
		t.Parallel()

		var stdout, stderr bytes.Buffer
		path := writeConfig(t, "base_urll: https://example.com\n")

		err := newMain().Run(context.Background(), []string{"wordcloud", "--config", path}, &stdout, &stderr)

		require.Error(t, err)
		assert.Equal(t, main.ExitUsage, main.ExitCode(err))
	})

	t.Run("invalid config value", func(t *testing.T) {
		t.Parallel()

		var stdout, stderr bytes.Buffer
		path := writeConfig(t, "retry_attempts: 0\n")

		err := newMain().Run(context.Background(), []string{"scrape", "--config", path}, &stdout, &stderr)

		require.Error(t, err)
		assert.Equal(t, main.ExitUsage, main.ExitCode(err))
	})
}

func TestExitCode(t *testing.T) {
	t.Parallel()

	assert.Equal(t, main.ExitOK, main.ExitCode(nil))
	assert.Equal(t, main.ExitFailure, main.ExitCode(errors.New("boom")))
	assert.Equal(t, main.ExitFailure, main.ExitCode(context.Canceled))
}

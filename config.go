package storyindex

import (
	"net/url"
	"time"
)

// Defaults for a run against the default site.
const (
	DefaultBaseURL           = "https://protocolized.summerofprotocols.com"
	DefaultUserAgent         = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) Protocolized-Search-Bot/1.0"
	DefaultTimeout           = 15 * time.Second
	DefaultRetryAttempts     = 3
	DefaultRetryBackoff      = 2 * time.Second
	DefaultRequestsPerSecond = 1.0
	DefaultOutputDir         = "docs"
)

// Config holds the settings of a scrape run.
type Config struct {
	BaseURL      string        `yaml:"base_url"`
	ArticleInfix string        `yaml:"article_infix"`
	Sources      SourcesConfig `yaml:"sources"`

	// Include and Exclude are regular expressions applied to discovered
	// canonical URLs.
	Include []string `yaml:"include"`
	Exclude []string `yaml:"exclude"`

	OutputDir string          `yaml:"output_dir"`
	Artifacts ArtifactsConfig `yaml:"artifacts"`

	UserAgent         string        `yaml:"user_agent"`
	Timeout           time.Duration `yaml:"timeout"`
	RetryAttempts     int           `yaml:"retry_attempts"`
	RetryBackoff      time.Duration `yaml:"retry_backoff"`
	RequestsPerSecond float64       `yaml:"requests_per_second"`
	Concurrency       int           `yaml:"concurrency"`

	Extract ExtractPolicy `yaml:"extract"`
}

// SourcesConfig locates the listing endpoints relative to the base URL.
// An empty path disables the source.
type SourcesConfig struct {
	TagPath         string `yaml:"tag_path"`
	ArchivePath     string `yaml:"archive_path"`
	ArchiveMaxPages int    `yaml:"archive_max_pages"`
	Sitemap         bool   `yaml:"sitemap"`
	FeedPath        string `yaml:"feed_path"`
}

// ArtifactsConfig names the files written to the output directory.
type ArtifactsConfig struct {
	SearchIndex string `yaml:"search_index"`
	Metadata    string `yaml:"metadata"`
	WordCloud   string `yaml:"wordcloud"`
}

// DefaultConfig returns the configuration used when no file is given.
func DefaultConfig() Config {
	return Config{
		BaseURL:      DefaultBaseURL,
		ArticleInfix: DefaultArticleInfix,
		Sources: SourcesConfig{
			TagPath:         "/t/stories",
			ArchivePath:     "/archive",
			ArchiveMaxPages: 1,
			Sitemap:         true,
			FeedPath:        "/feed",
		},
		OutputDir: DefaultOutputDir,
		Artifacts: ArtifactsConfig{
			SearchIndex: SearchIndexFile,
			Metadata:    MetadataFile,
			WordCloud:   WordCloudFile,
		},
		UserAgent:         DefaultUserAgent,
		Timeout:           DefaultTimeout,
		RetryAttempts:     DefaultRetryAttempts,
		RetryBackoff:      DefaultRetryBackoff,
		RequestsPerSecond: DefaultRequestsPerSecond,
		Concurrency:       1,
		Extract:           DefaultExtractPolicy(),
	}
}

// Validate returns an error if the configuration cannot drive a run.
func (c *Config) Validate() error {
	if c.BaseURL == "" {
		return Errorf(EINVALID, "base URL required")
	}
	u, err := url.Parse(c.BaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return Errorf(EINVALID, "invalid base URL %q", c.BaseURL)
	}
	if c.RetryAttempts < 1 {
		return Errorf(EINVALID, "retry attempts must be at least 1")
	}
	if c.RequestsPerSecond <= 0 {
		return Errorf(EINVALID, "requests per second must be positive")
	}
	if c.Concurrency < 1 {
		return Errorf(EINVALID, "concurrency must be at least 1")
	}
	if c.OutputDir == "" {
		return Errorf(EINVALID, "output directory required")
	}
	if c.Artifacts.SearchIndex == "" || c.Artifacts.Metadata == "" || c.Artifacts.WordCloud == "" {
		return Errorf(EINVALID, "artifact file names required")
	}
	if _, err := NewURLFilter(c.Include, c.Exclude); err != nil {
		return err
	}
	return nil
}
